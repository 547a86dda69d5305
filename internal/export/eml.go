package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mailsift/mailsift/internal/gmail"
)

// maxFilenameLength caps the subject-derived part of EML filenames.
const maxFilenameLength = 50

// RawMessageFetcher fetches the RFC 822 bytes of a message.
type RawMessageFetcher interface {
	GetRawMessage(messageID string) ([]byte, error)
}

// ExportToEML saves each email as an .eml file under outputDir, which is
// created when missing. Per-file progress lines go to out when non-nil.
// Messages whose raw form cannot be fetched are reported and skipped.
func ExportToEML(fetcher RawMessageFetcher, emails []*gmail.Email, outputDir string, out io.Writer) ([]string, error) {
	if out == nil {
		out = io.Discard
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var saved []string
	for _, e := range emails {
		raw, err := fetcher.GetRawMessage(e.ID)
		if err != nil {
			fmt.Fprintf(out, "Error fetching raw message %s: %v\n", e.ID, err)
			continue
		}

		path := filepath.Join(outputDir, EMLFilename(e.Subject, e.ID))
		if err := os.WriteFile(path, raw, 0644); err != nil {
			return saved, fmt.Errorf("failed to write %s: %w", path, err)
		}

		saved = append(saved, path)
		fmt.Fprintf(out, "Saved: %s\n", path)
	}

	return saved, nil
}

// ExportEmailToEML saves a single email as an .eml file under outputDir and
// returns the written path. Unlike ExportToEML, a fetch failure is reported
// as an error rather than skipped, so callers can surface per-message results.
func ExportEmailToEML(fetcher RawMessageFetcher, e *gmail.Email, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	raw, err := fetcher.GetRawMessage(e.ID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch raw message: %w", err)
	}

	path := filepath.Join(outputDir, EMLFilename(e.Subject, e.ID))
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// EMLFilename builds a collision-resistant filename from the subject and the
// message ID prefix. Re-running an export produces the same names, so files
// are overwritten in place rather than duplicated.
func EMLFilename(subject, messageID string) string {
	idPart := messageID
	if len(idPart) > 8 {
		idPart = idPart[:8]
	}
	return fmt.Sprintf("%s_%s.eml", SanitizeFilename(subject), idPart)
}

// SanitizeFilename reduces a subject to filesystem-safe characters: letters,
// digits, dashes, underscores, and spaces survive, spaces become underscores,
// and the result is capped at 50 runes with trailing underscores trimmed. An
// empty result falls back to "email".
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune(r)
		}
	}

	safe := strings.ReplaceAll(b.String(), " ", "_")
	if utf8.RuneCountInString(safe) > maxFilenameLength {
		runes := []rune(safe)
		safe = string(runes[:maxFilenameLength])
	}
	safe = strings.TrimRight(safe, "_")
	if safe == "" {
		return "email"
	}
	return safe
}
