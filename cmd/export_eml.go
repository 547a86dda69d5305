package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mailsift/mailsift/internal/export"
)

func newExportEmlCmd() *cobra.Command {
	var (
		account    string
		query      string
		maxResults int64
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "export-eml",
		Short: "Save Gmail messages as .eml files",
		Long: `Fetch messages and write each one to an .eml file in the output
directory. Filenames are derived from the subject plus a message ID prefix, so
re-running the export overwrites the same files rather than duplicating them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newGmailClient(cmd.Context(), account)
			if err != nil {
				return err
			}

			emails, err := client.FetchEmails(query, maxResults)
			if err != nil {
				return fmt.Errorf("failed to fetch messages: %w", err)
			}

			if len(emails) == 0 {
				fmt.Println("No messages found.")
				return nil
			}

			saved, err := export.ExportToEML(client, emails, outputDir, os.Stdout)
			if err != nil {
				return err
			}

			fmt.Printf("Exported %d message(s) to %s\n", len(saved), outputDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Gmail search query")
	cmd.Flags().Int64VarP(&maxResults, "max-results", "n", 50, "Maximum number of messages to fetch")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "downloads", "Directory for exported .eml files")
	return cmd
}
