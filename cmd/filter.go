package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mailsift/mailsift/internal/export"
	"github.com/mailsift/mailsift/internal/gmail"
)

// dateFlagLayouts are accepted by the --after and --before flags.
var dateFlagLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// parseDateFlag parses a date bound. A date-only value used as an end bound
// is extended to the end of that day so --before covers the named day.
func parseDateFlag(value string, endOfDay bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateFlagLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		if endOfDay && layout == "2006-01-02" {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or RFC 3339)", value)
}

func newFilterCmd() *cobra.Command {
	var (
		account       string
		query         string
		maxResults    int64
		keywords      []string
		subjectOnly   bool
		bodyOnly      bool
		caseSensitive bool
		fromPatterns  []string
		afterStr      string
		beforeStr     string
		outputDir     string
		htmlFile      string
		emlExport     bool
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter Gmail messages by keyword",
		Long: `Fetch messages, match them against one or more keywords, and print the
matches. Keywords match case-insensitively against the subject and body unless
narrowed with --subject-only or --body-only. Matched messages can be exported
to .eml files (--eml) and/or a consolidated HTML document (--html).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(keywords) == 0 {
				return fmt.Errorf("at least one --keyword is required")
			}
			if subjectOnly && bodyOnly {
				return fmt.Errorf("--subject-only and --body-only are mutually exclusive")
			}

			after, err := parseDateFlag(afterStr, false)
			if err != nil {
				return err
			}
			before, err := parseDateFlag(beforeStr, true)
			if err != nil {
				return err
			}

			client, err := newGmailClient(cmd.Context(), account)
			if err != nil {
				return err
			}

			emails, err := client.FetchEmails(query, maxResults)
			if err != nil {
				return fmt.Errorf("failed to fetch messages: %w", err)
			}

			searchSubject := !bodyOnly
			searchBody := !subjectOnly
			matched := gmail.FilterByKeywords(emails, keywords, searchSubject, searchBody, caseSensitive)
			matched = gmail.FilterBySender(matched, fromPatterns)
			matched = gmail.FilterByDateRange(matched, after, before)

			if len(matched) == 0 {
				fmt.Println("No messages found.")
				return nil
			}

			fmt.Printf("Found %d matching message(s):\n\n", len(matched))
			printEmails(matched)

			if emlExport {
				if _, err := export.ExportToEML(client, matched, outputDir, os.Stdout); err != nil {
					return fmt.Errorf("EML export failed: %w", err)
				}
			}
			if htmlFile != "" {
				for _, e := range matched {
					client.HydrateInlineImages(e)
				}
				path, err := export.ExportToHTML(matched, htmlFile, true, false, os.Stdout)
				if err != nil {
					return fmt.Errorf("HTML export failed: %w", err)
				}
				fmt.Printf("Saved: %s\n", path)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Gmail search query applied server-side before filtering")
	cmd.Flags().Int64VarP(&maxResults, "max-results", "n", 50, "Maximum number of messages to fetch")
	cmd.Flags().StringArrayVarP(&keywords, "keyword", "k", nil, "Keyword to match (repeatable; any match counts)")
	cmd.Flags().BoolVar(&subjectOnly, "subject-only", false, "Match keywords against the subject only")
	cmd.Flags().BoolVar(&bodyOnly, "body-only", false, "Match keywords against the body only")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Match keywords case-sensitively")
	cmd.Flags().StringArrayVar(&fromPatterns, "from", nil, "Keep only messages whose From header contains this text (repeatable)")
	cmd.Flags().StringVar(&afterStr, "after", "", "Keep only messages dated on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&beforeStr, "before", "", "Keep only messages dated on or before this date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "downloads", "Directory for exported .eml files")
	cmd.Flags().StringVar(&htmlFile, "html", "", "Write matched messages to this consolidated HTML file")
	cmd.Flags().BoolVar(&emlExport, "eml", false, "Export matched messages as .eml files")
	return cmd
}
