package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mailsift/mailsift/internal/gmail"
	"github.com/mailsift/mailsift/internal/google"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Gmail access and save the OAuth token",
		Long: `Run the interactive OAuth flow for a Google account and cache the
resulting token. Client credentials are read from the GOOGLE_OAUTH2_CLIENT_ID
and GOOGLE_OAUTH2_CLIENT_SECRET environment variables, or from a
credentials.json file in the working directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := google.Authorize(ctx, account); err != nil {
				return fmt.Errorf("authorization failed: %w", err)
			}

			// Confirm the token works by fetching the profile.
			client, err := gmail.NewClientForAccount(ctx, account)
			if err != nil {
				return fmt.Errorf("token saved but client creation failed: %w", err)
			}
			profile, err := client.GetProfile()
			if err != nil {
				return fmt.Errorf("token saved but profile lookup failed: %w", err)
			}

			fmt.Printf("Authenticated as %s\n", profile.EmailAddress)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	return cmd
}
