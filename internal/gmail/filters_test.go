package gmail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testEmail(id, subject, from, date, bodyText string) *Email {
	return &Email{
		ID:       id,
		Subject:  subject,
		From:     from,
		Date:     date,
		BodyText: bodyText,
	}
}

func TestMatchesKeywords(t *testing.T) {
	email := &Email{
		Subject:  "Quarterly Invoice Reminder",
		BodyText: "Please find the payment details attached.",
		BodyHTML: "<p>Please find the payment details attached.</p>",
		Snippet:  "Please find the payment details",
	}

	tests := []struct {
		name          string
		keywords      []string
		searchSubject bool
		searchBody    bool
		caseSensitive bool
		want          bool
	}{
		{"subject match", []string{"invoice"}, true, true, false, true},
		{"body match", []string{"payment"}, true, true, false, true},
		{"no match", []string{"refund"}, true, true, false, false},
		{"subject only misses body", []string{"payment"}, true, false, false, false},
		{"body only misses subject", []string{"invoice"}, false, true, false, false},
		{"snippet counts as body", []string{"find the payment"}, false, true, false, true},
		{"case sensitive miss", []string{"invoice"}, true, true, true, false},
		{"case sensitive hit", []string{"Invoice"}, true, true, true, true},
		{"any keyword suffices", []string{"refund", "payment"}, true, true, false, true},
		{"empty keywords match all", nil, true, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchesKeywords(email, tt.keywords, tt.searchSubject, tt.searchBody, tt.caseSensitive)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterByKeywords(t *testing.T) {
	emails := []*Email{
		testEmail("1", "Invoice for March", "billing@example.com", "", "amount due"),
		testEmail("2", "Team lunch", "boss@example.com", "", "see you at noon"),
		testEmail("3", "Re: invoice question", "client@example.com", "", "thanks"),
	}

	matched := FilterByKeywords(emails, []string{"invoice"}, true, true, false)
	assert.Len(t, matched, 2)
	assert.Equal(t, "1", matched[0].ID)
	assert.Equal(t, "3", matched[1].ID)

	// Empty keywords pass everything through unchanged.
	assert.Len(t, FilterByKeywords(emails, nil, true, true, false), 3)
}

func TestFilterBySender(t *testing.T) {
	emails := []*Email{
		testEmail("1", "a", "Billing <billing@example.com>", "", ""),
		testEmail("2", "b", "Boss <boss@example.com>", "", ""),
	}

	matched := FilterBySender(emails, []string{"BILLING@"})
	assert.Len(t, matched, 1)
	assert.Equal(t, "1", matched[0].ID)

	assert.Len(t, FilterBySender(emails, nil), 2)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		internal int64
		want     string
		ok       bool
	}{
		{"rfc1123z", "Mon, 02 Jan 2023 15:04:05 +0100", 0, "2023-01-02T14:04:05Z", true},
		{"single digit day", "Mon, 2 Jan 2023 15:04:05 +0000", 0, "2023-01-02T15:04:05Z", true},
		{"zone comment", "Mon, 02 Jan 2023 15:04:05 +0000 (UTC)", 0, "2023-01-02T15:04:05Z", true},
		{"no weekday", "2 Jan 2023 15:04:05 +0000", 0, "2023-01-02T15:04:05Z", true},
		{"named zone", "Mon, 02 Jan 2023 15:04:05 GMT", 0, "2023-01-02T15:04:05Z", true},
		{"garbage with internal fallback", "tomorrow-ish", 1672671845000, "2023-01-02T15:04:05Z", true},
		{"garbage without fallback", "tomorrow-ish", 0, "", false},
		{"empty without fallback", "", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Email{Date: tt.date, InternalDate: tt.internal}
			got, ok := ParseDate(e)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.UTC().Format(time.RFC3339))
			}
		})
	}
}

func TestFilterByDateRange(t *testing.T) {
	emails := []*Email{
		testEmail("old", "a", "", "Mon, 02 Jan 2023 10:00:00 +0000", ""),
		testEmail("mid", "b", "", "Tue, 14 Feb 2023 10:00:00 +0000", ""),
		testEmail("new", "c", "", "Wed, 15 Mar 2023 10:00:00 +0000", ""),
		testEmail("undated", "d", "", "", ""),
	}

	start := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)

	matched := FilterByDateRange(emails, start, end)
	assert.Len(t, matched, 1)
	assert.Equal(t, "mid", matched[0].ID)

	// Open-ended bounds.
	assert.Len(t, FilterByDateRange(emails, start, time.Time{}), 2)
	assert.Len(t, FilterByDateRange(emails, time.Time{}, end), 2)
	assert.Len(t, FilterByDateRange(emails, time.Time{}, time.Time{}), 4)
}

func TestSortByDate(t *testing.T) {
	emails := []*Email{
		testEmail("new", "", "", "Wed, 15 Mar 2023 10:00:00 +0000", ""),
		testEmail("undated", "", "", "", ""),
		testEmail("old", "", "", "Mon, 02 Jan 2023 10:00:00 +0000", ""),
		testEmail("mid", "", "", "Tue, 14 Feb 2023 10:00:00 +0000", ""),
	}

	// An undated email sorts as the zero time: before everything ascending,
	// after everything newest-first.
	SortByDate(emails, false)
	got := []string{emails[0].ID, emails[1].ID, emails[2].ID, emails[3].ID}
	assert.Equal(t, []string{"undated", "old", "mid", "new"}, got)

	SortByDate(emails, true)
	got = []string{emails[0].ID, emails[1].ID, emails[2].ID, emails[3].ID}
	assert.Equal(t, []string{"new", "mid", "old", "undated"}, got)
}
