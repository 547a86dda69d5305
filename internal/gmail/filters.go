package gmail

import (
	"net/mail"
	"sort"
	"strings"
	"time"
)

// searchText builds the haystack for keyword matching over the chosen scopes.
func searchText(e *Email, searchSubject, searchBody bool) string {
	var b strings.Builder
	if searchSubject {
		b.WriteString(e.Subject)
		b.WriteString(" ")
	}
	if searchBody {
		b.WriteString(e.BodyText)
		b.WriteString(" ")
		b.WriteString(e.BodyHTML)
		b.WriteString(" ")
		b.WriteString(e.Snippet)
	}
	return b.String()
}

// MatchesKeywords reports whether any keyword occurs in the email's subject
// or body, per the chosen scopes. An empty keyword list matches everything.
func MatchesKeywords(e *Email, keywords []string, searchSubject, searchBody, caseSensitive bool) bool {
	if len(keywords) == 0 {
		return true
	}

	haystack := searchText(e, searchSubject, searchBody)
	if !caseSensitive {
		haystack = strings.ToLower(haystack)
	}

	for _, kw := range keywords {
		if !caseSensitive {
			kw = strings.ToLower(kw)
		}
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// FilterByKeywords returns the emails matching any of the keywords. An empty
// keyword list returns the input unchanged.
func FilterByKeywords(emails []*Email, keywords []string, searchSubject, searchBody, caseSensitive bool) []*Email {
	if len(keywords) == 0 {
		return emails
	}

	matched := make([]*Email, 0, len(emails))
	for _, e := range emails {
		if MatchesKeywords(e, keywords, searchSubject, searchBody, caseSensitive) {
			matched = append(matched, e)
		}
	}
	return matched
}

// FilterBySender returns the emails whose From header contains any of the
// given patterns, ignoring case.
func FilterBySender(emails []*Email, senders []string) []*Email {
	if len(senders) == 0 {
		return emails
	}

	matched := make([]*Email, 0, len(emails))
	for _, e := range emails {
		from := strings.ToLower(e.From)
		for _, s := range senders {
			if strings.Contains(from, strings.ToLower(s)) {
				matched = append(matched, e)
				break
			}
		}
	}
	return matched
}

// FilterByDateRange returns the emails received within [start, end]. A zero
// bound is open; emails whose date cannot be determined are dropped.
func FilterByDateRange(emails []*Email, start, end time.Time) []*Email {
	if start.IsZero() && end.IsZero() {
		return emails
	}

	matched := make([]*Email, 0, len(emails))
	for _, e := range emails {
		ts, ok := ParseDate(e)
		if !ok {
			continue
		}
		if !start.IsZero() && ts.Before(start) {
			continue
		}
		if !end.IsZero() && ts.After(end) {
			continue
		}
		matched = append(matched, e)
	}
	return matched
}

// dateLayouts are tried in order for Date headers net/mail cannot handle.
var dateLayouts = []string{
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04 -0700",
}

// ParseDate interprets the email's Date header, falling back to Gmail's
// internal receive time when the header is missing or malformed.
func ParseDate(e *Email) (time.Time, bool) {
	raw := strings.TrimSpace(e.Date)
	if raw != "" {
		if t, err := mail.ParseDate(raw); err == nil {
			return t, true
		}
		// Strip a trailing zone comment like "(UTC)".
		if i := strings.Index(raw, " ("); i > 0 {
			raw = strings.TrimSpace(raw[:i])
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, true
			}
		}
	}
	if e.InternalDate > 0 {
		return time.UnixMilli(e.InternalDate), true
	}
	return time.Time{}, false
}

// SortByDate orders emails chronologically, oldest first. With reverse set
// the newest email comes first. Emails without a usable date sort as the
// zero time: first ascending, last with reverse.
func SortByDate(emails []*Email, reverse bool) {
	sort.SliceStable(emails, func(i, j int) bool {
		ti, _ := ParseDate(emails[i])
		tj, _ := ParseDate(emails[j])
		if reverse {
			return tj.Before(ti)
		}
		return ti.Before(tj)
	})
}
