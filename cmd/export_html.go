package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mailsift/mailsift/internal/export"
)

func newExportHTMLCmd() *cobra.Command {
	var (
		account     string
		query       string
		maxResults  int64
		outputFile  string
		newestFirst bool
	)

	cmd := &cobra.Command{
		Use:   "export-html",
		Short: "Render Gmail messages into one HTML document",
		Long: `Fetch messages and render them into a single self-contained HTML file,
sorted chronologically (oldest first unless --newest-first is set). Inline
images referenced from HTML bodies are embedded as data URIs.`,
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

			for _, e := range emails {
				client.HydrateInlineImages(e)
			}

			path, err := export.ExportToHTML(emails, outputFile, true, newestFirst, os.Stdout)
			if err != nil {
				return err
			}

			fmt.Printf("Exported %d message(s) to %s\n", len(emails), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Gmail search query")
	cmd.Flags().Int64VarP(&maxResults, "max-results", "n", 50, "Maximum number of messages to fetch")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "emails.html", "Path of the HTML document to write")
	cmd.Flags().BoolVar(&newestFirst, "newest-first", false, "Sort newest messages first")
	return cmd
}
