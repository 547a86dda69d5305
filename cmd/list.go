package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		account    string
		query      string
		maxResults int64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List Gmail messages",
		Long: `Fetch messages from the account's mailbox and print a numbered summary
with subject, sender, date, and snippet. The query flag accepts Gmail search
syntax (e.g. 'in:inbox', 'from:user@example.com', 'newer_than:7d').`,
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

			printEmails(emails)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Gmail search query")
	cmd.Flags().Int64VarP(&maxResults, "max-results", "n", 10, "Maximum number of messages to fetch")
	return cmd
}
