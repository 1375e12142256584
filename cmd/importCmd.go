/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"spotify-history-tools/internal/store"
)

type ImportConfig struct {
	DbPath  string
	DataDir string
	Force   bool
}

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Loads the JSON export into a local SQLite database",
	Long: `Reads the streaming-history shards from the export directory, normalizes
them, and mirrors them into the database given by --database. Reporting
commands then read from the database instead of re-parsing the export.`,
	Run: func(cmd *cobra.Command, args []string) {
		config := ImportConfig{
			DbPath:  viper.GetString("database"),
			DataDir: viper.GetString("data-dir"),
			Force:   viper.GetBool("force"),
		}
		err := importExport(config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	var force bool
	importCmd.Flags().BoolVarP(&force, "force", "f", false, "Re-import even if the database already holds a recent import")
	viper.BindPFlag("force", importCmd.Flags().Lookup("force"))
}

func importExport(config ImportConfig) error {
	if config.DbPath == "" {
		return fmt.Errorf("--database is required for import")
	}

	db, err := store.New(config.DbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	for category, pattern := range map[string]string{
		categoryMusic:   musicShardPattern,
		categoryPodcast: podcastShardPattern,
	} {
		last, imported, err := db.LastImport(category)
		if err != nil {
			return err
		}
		if imported && !config.Force {
			fmt.Printf("%s already imported at %s, use --force to re-import\n",
				category, last.ImportedAt.Format("2006-01-02 15:04"))
			continue
		}

		events, shards, err := loadCategory(config.DataDir, pattern)
		if err != nil {
			return fmt.Errorf("loading %s history: %w", category, err)
		}

		if err := db.ImportPlays(category, events, shards); err != nil {
			return fmt.Errorf("importing %s history: %w", category, err)
		}
		fmt.Printf("Imported %d %s events from %d shards\n", len(events), category, shards)
	}

	return nil
}
