package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/avast/retry-go"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

var spotifyQuery string

var spotifyCheckCmd = &cobra.Command{
	Use:   "spotify-check",
	Short: "Verifies Spotify Web API connectivity",
	Long: `Authenticates with the client-credentials flow and runs an artist search.
Credentials come from SPOTIFY_ID and SPOTIFY_SECRET (a .env file in the
working directory is read if present).`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := spotifyCheck(cmd.Context(), spotifyQuery); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(spotifyCheckCmd)
	spotifyCheckCmd.Flags().StringVarP(&spotifyQuery, "query", "q", "ariana grande", "Artist search query")
}

func spotifyCheck(ctx context.Context, query string) error {
	godotenv.Load()

	clientID := os.Getenv("SPOTIFY_ID")
	clientSecret := os.Getenv("SPOTIFY_SECRET")
	if clientID == "" || clientSecret == "" {
		return errors.New("SPOTIFY_ID and SPOTIFY_SECRET must be set")
	}

	authConfig := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := authConfig.Token(ctx)
	if err != nil {
		return fmt.Errorf("getting token: %w", err)
	}

	client := spotify.New(spotifyauth.New().Client(ctx, token))
	limiter := rate.NewLimiter(rate.Every(1*time.Second), 1)

	limiter.Wait(ctx)
	var results *spotify.SearchResult
	err = retry.Do(
		func() error {
			var err error
			results, err = client.Search(ctx, query, spotify.SearchTypeArtist)
			return err
		},
		retry.RetryIf(func(err error) bool {
			var serr spotify.Error
			if errors.As(err, &serr) {
				if serr.Status/100 == 5 {
					fmt.Printf("Spotify errored, retrying: %v\n", serr)
					return true
				}
			}
			return false
		}),
	)
	if err != nil {
		return fmt.Errorf("searching artists: %w", err)
	}

	if results.Artists == nil || len(results.Artists.Artists) == 0 {
		return fmt.Errorf("no artists found for %q", query)
	}

	top := results.Artists.Artists[0]
	fmt.Printf("Got %d artists, top match: %s (%s)\n",
		results.Artists.Total, top.Name, top.ID)
	return nil
}
