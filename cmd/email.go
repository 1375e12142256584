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
	"net/smtp"
	"os"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type SendEmailConfig struct {
	From           string
	To             string
	DryRun         bool
	SMTPUsername   string
	SMTPPassword   string
	SendgridAPIKey string
	Start          time.Time
	End            time.Time
}

var emailCmd = &cobra.Command{
	Use:   "email <address> [from] [to]",
	Short: "Sends the listening overview as an email report",
	Long: `Emails the overview tables (totals, top artists, daily activity, top
tracks) to the given address. Optional trailing date arguments restrict the
covered period. Uses SendGrid when --sendgrid_api_key is set, SMTP otherwise.`,
	Args: cobra.RangeArgs(1, 3),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		start, end, err := parseDateRangeFromArgs(args[1:])
		if err != nil {
			fmt.Printf("Error parsing dates: %v\n", err)
			os.Exit(1)
		}

		config := SendEmailConfig{
			From:           viper.GetString("from"),
			To:             args[0],
			DryRun:         viper.GetBool("dryRun"),
			SMTPUsername:   viper.GetString("smtp_username"),
			SMTPPassword:   viper.GetString("smtp_password"),
			SendgridAPIKey: viper.GetString("sendgrid_api_key"),
			Start:          start,
			End:            end,
		}
		if err := sendEmail(config); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	var dryRun bool
	emailCmd.Flags().BoolVarP(&dryRun, "dry_run", "n", false, "When true, just print instead of emailing")
	viper.BindPFlag("dryRun", emailCmd.Flags().Lookup("dry_run"))

	var from string
	emailCmd.Flags().StringVar(&from, "from", "", "From email address")
	viper.BindPFlag("from", emailCmd.Flags().Lookup("from"))

	var smtpUsername string
	emailCmd.Flags().StringVar(&smtpUsername, "smtp_username", "", "SMTP username")
	viper.BindPFlag("smtp_username", emailCmd.Flags().Lookup("smtp_username"))

	var smtpPassword string
	emailCmd.Flags().StringVar(&smtpPassword, "smtp_password", "", "SMTP password")
	viper.BindPFlag("smtp_password", emailCmd.Flags().Lookup("smtp_password"))

	var sendgridAPIKey string
	emailCmd.Flags().StringVar(&sendgridAPIKey, "sendgrid_api_key", "", "SendGrid API key")
	viper.BindPFlag("sendgrid_api_key", emailCmd.Flags().Lookup("sendgrid_api_key"))
}

func sendEmail(config SendEmailConfig) error {
	data, err := loadDataset()
	if err != nil {
		return err
	}

	subject, out, err := generateEmailContent(config, data, overviewAnalysers())
	if err != nil {
		return err
	}

	if config.DryRun {
		fmt.Printf("Would have sent email: \nsubject: %s\n%s\n", subject, out)
		return nil
	}

	if config.SendgridAPIKey != "" {
		from := mail.NewEmail("spotify-history-tools", config.From)
		to := mail.NewEmail(config.To, config.To)
		message := mail.NewSingleEmail(from, subject, to, out, out)
		client := sendgrid.NewSendClient(config.SendgridAPIKey)
		if _, err := client.Send(message); err != nil {
			return fmt.Errorf("sendEmail: %w", err)
		}
		return nil
	}

	if config.SMTPUsername == "" || config.SMTPPassword == "" {
		return fmt.Errorf("smtp_username and smtp_password must be set in order to send emails")
	}

	msg := "From: spotify-history-tools <" + config.From + ">\r\n" +
		"To: " + config.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" +
		out

	auth := smtp.PlainAuth("", config.SMTPUsername, config.SMTPPassword, "smtp.gmail.com")
	err = smtp.SendMail("smtp.gmail.com:587", auth, config.From, []string{config.To}, []byte(msg))
	if err != nil {
		return fmt.Errorf("sendEmail: %w", err)
	}

	return nil
}

func generateEmailContent(config SendEmailConfig, data Dataset, analysers []Analyser) (subject string, body string, err error) {
	out := `
<html>
  <head>
<style>
td {
  padding: 0.1em 0.2em;
}
table, th, td {
  border: 1px solid black;
  border-collapse: collapse;
}
</style>
  </head>
  <body>
`
	for _, analyser := range analysers {
		out += "<div>\n"
		out += fmt.Sprintf("<h2>%s:</h2>\n", analyser.GetName())

		analysis, err := analyser.GetResults(data, config.Start, config.End)
		if err != nil {
			return "", "", fmt.Errorf("getting results for %s: %w", analyser.GetName(), err)
		}

		out += "<table>\n"
		for i, row := range analysis.results {
			cell := "td"
			if i == 0 {
				cell = "th"
			}
			out += "<tr>"
			for _, value := range row {
				out += fmt.Sprintf("<%s>%s</%s>", cell, value, cell)
			}
			out += "</tr>\n"
		}
		out += "</table>\n"
		out += fmt.Sprintf("<p>%s</p>\n</div>\n", analysis.summary)
	}
	out += `
  </body>
</html>
`

	subject = "Listening report"
	if !config.Start.IsZero() {
		subject = fmt.Sprintf("Listening report %s to %s",
			config.Start.Format("2006-01-02"), config.End.Format("2006-01-02"))
	}
	return subject, out, nil
}
