package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"html/template"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mailsift/mailsift/internal/gmail"
)

// reportTemplate renders the standalone digest. Every email sits in its own
// card so the file reads well offline, without external assets.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Gmail Export</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f5f5f5;
        }
        .email-container {
            background-color: white;
            margin-bottom: 20px;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            overflow: hidden;
        }
        .email-header {
            background-color: #f8f9fa;
            padding: 15px 20px;
            border-bottom: 1px solid #dee2e6;
        }
        .email-subject {
            font-size: 18px;
            font-weight: bold;
            margin-bottom: 8px;
            color: #212529;
        }
        .email-meta {
            font-size: 13px;
            color: #6c757d;
            margin: 3px 0;
        }
        .email-body {
            padding: 20px;
            line-height: 1.6;
        }
        .email-body iframe {
            width: 100%;
            border: none;
            min-height: 400px;
        }
        .label {
            font-weight: 600;
            margin-right: 5px;
        }
        h1 {
            color: #212529;
            border-bottom: 3px solid #007bff;
            padding-bottom: 10px;
        }
        .summary {
            background-color: white;
            padding: 15px 20px;
            border-radius: 8px;
            margin-bottom: 20px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
    </style>
</head>
<body>
    <h1>Gmail Export</h1>
    <div class="summary">
        <p><strong>Total Emails:</strong> {{.Total}}</p>
        <p><strong>Generated:</strong> {{.Generated}}</p>
    </div>
{{range .Emails}}    <div class="email-container" id="email-{{.Index}}">
        <div class="email-header">
            <div class="email-subject">{{.Subject}}</div>
            <div class="email-meta"><span class="label">From:</span>{{.From}}</div>
            <div class="email-meta"><span class="label">To:</span>{{.To}}</div>
            <div class="email-meta"><span class="label">Date:</span>{{.Date}}</div>
        </div>
        <div class="email-body">
            {{.Body}}
        </div>
    </div>
{{end}}</body>
</html>
`))

type reportData struct {
	Total     int
	Generated string
	Emails    []reportEmail
}

type reportEmail struct {
	Index   int
	Subject string
	From    string
	To      string
	Date    string
	Body    template.HTML
}

// ExportToHTML writes the emails into a single standalone HTML file.
// Chronological sorting puts the oldest email first; reverse flips to newest
// first. Progress lines go to out when non-nil.
func ExportToHTML(emails []*gmail.Email, outputFile string, sortChronological, reverse bool, out io.Writer) (string, error) {
	if out == nil {
		out = io.Discard
	}

	if sortChronological {
		sorted := make([]*gmail.Email, len(emails))
		copy(sorted, emails)
		gmail.SortByDate(sorted, reverse)
		emails = sorted
	}

	data := reportData{
		Total:     len(emails),
		Generated: time.Now().Format("2006-01-02 15:04:05"),
		Emails:    make([]reportEmail, 0, len(emails)),
	}

	for i, e := range emails {
		subject := e.Subject
		if subject == "" {
			subject = "(No Subject)"
		}
		data.Emails = append(data.Emails, reportEmail{
			Index:   i + 1,
			Subject: subject,
			From:    e.From,
			To:      e.To,
			Date:    e.Date,
			Body:    renderBody(e),
		})
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}

	if err := os.WriteFile(outputFile, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write HTML file: %w", err)
	}

	fmt.Fprintf(out, "Saved HTML: %s\n", outputFile)
	return outputFile, nil
}

// renderBody picks the best body representation. HTML bodies are kept as-is
// apart from cid: references, which become data: URIs so inline images
// survive offline. Text-only mail is wrapped in <pre>; the snippet stands in
// when a message has no body at all.
func renderBody(e *gmail.Email) template.HTML {
	if e.BodyHTML != "" {
		return template.HTML(spliceInlineImages(e.BodyHTML, e.InlineImages))
	}
	text := e.BodyText
	if text == "" {
		text = e.Snippet
	}
	return template.HTML("<pre>" + html.EscapeString(text) + "</pre>")
}

// spliceInlineImages rewrites cid: references to data URIs for every inline
// image whose bytes were hydrated. Unresolved references stay untouched.
func spliceInlineImages(body string, images []gmail.InlineImage) string {
	for _, img := range images {
		if img.ContentID == "" || len(img.Data) == 0 {
			continue
		}
		dataURI := "data:" + img.MimeType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
		body = strings.ReplaceAll(body, "cid:"+img.ContentID, dataURI)
	}
	return body
}
