package cmd

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/mailsift/mailsift/internal/gmail"
	"github.com/mailsift/mailsift/internal/google"
)

// snippetLimit caps the snippet column in list output.
const snippetLimit = 80

// newGmailClient creates a Gmail client for the account. When no token is
// cached and stdin is a terminal, the interactive authorization flow runs
// first; otherwise the missing token is an error that points the user at
// the auth command.
func newGmailClient(ctx context.Context, account string) (*gmail.Client, error) {
	if !gmail.HasTokenForAccount(account) {
		if !isTerminal() {
			return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
		}
		if err := google.Authorize(ctx, account); err != nil {
			return nil, fmt.Errorf("authorization failed: %w", err)
		}
	}

	client, err := gmail.NewClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail client for account %s: %w", account, err)
	}
	return client, nil
}

// isTerminal checks if stdin is connected to a terminal (CLI mode)
func isTerminal() bool {
	fileInfo, _ := os.Stdin.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// printEmails writes a numbered summary of the emails to stdout.
func printEmails(emails []*gmail.Email) {
	for i, e := range emails {
		subject := e.Subject
		if subject == "" {
			subject = "(No Subject)"
		}
		fmt.Printf("%d. %s\n", i+1, subject)
		fmt.Printf("   From: %s\n", e.From)
		fmt.Printf("   Date: %s\n", e.Date)
		if snippet := truncateSnippet(e.Snippet, snippetLimit); snippet != "" {
			fmt.Printf("   %s\n", snippet)
		}
		fmt.Println()
	}
}

// truncateSnippet shortens s to at most limit runes, appending an ellipsis
// when anything was cut.
func truncateSnippet(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
