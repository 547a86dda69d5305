package google

import gmail "google.golang.org/api/gmail/v1"

// DefaultOAuthScopes are the Google OAuth scopes the tool requests.
//
// Listing, filtering, and exporting never modify the mailbox, so read-only
// access is sufficient. Requesting anything broader would force users through
// a scarier consent screen for no benefit.
var DefaultOAuthScopes = []string{
	gmail.GmailReadonlyScope,
}
