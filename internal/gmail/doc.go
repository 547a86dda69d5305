// Package gmail provides a read-only client for fetching and sifting Gmail
// messages.
//
// The package covers:
//   - Listing messages with Gmail search queries and pagination
//   - Parsing full messages into a flat Email value (headers, decoded text
//     and HTML bodies, inline image references)
//   - Fetching raw RFC 822 message bytes for EML export
//   - Client-side filtering by keyword, sender, and date range
//   - Chronological sorting with tolerant Date header parsing
//
// Authentication uses the per-account OAuth tokens managed by the google
// package. All operations only require the gmail.readonly scope; nothing in
// this package modifies the mailbox.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := gmail.NewClientForAccount(ctx, "default")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	emails, err := client.FetchEmails("in:inbox", 50)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	matched := gmail.FilterByKeywords(emails, []string{"invoice"}, true, true, false)
//	gmail.SortByDate(matched, false)
package gmail
