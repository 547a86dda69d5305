package gmail

import (
	"encoding/base64"
	"fmt"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// ParseMessage converts a full-format Gmail message into an Email. Bodies
// are decoded and concatenated across MIME parts; inline images are collected
// but not fetched.
func ParseMessage(msg *gmail.Message) *Email {
	email := &Email{
		ID:           msg.Id,
		ThreadID:     msg.ThreadId,
		Snippet:      msg.Snippet,
		LabelIDs:     msg.LabelIds,
		InternalDate: msg.InternalDate,
	}

	if msg.Payload == nil {
		return email
	}

	email.Subject = HeaderValue(msg, "Subject")
	email.From = HeaderValue(msg, "From")
	email.To = HeaderValue(msg, "To")
	email.Date = HeaderValue(msg, "Date")

	walkParts(msg.Payload, func(part *gmail.MessagePart) {
		switch {
		case part.MimeType == "text/plain":
			email.BodyText += decodePartData(part)
		case part.MimeType == "text/html":
			email.BodyHTML += decodePartData(part)
		case strings.HasPrefix(part.MimeType, "image/"):
			if img, ok := inlineImageFromPart(part); ok {
				email.InlineImages = append(email.InlineImages, img)
			}
		}
	})

	return email
}

// walkParts recursively walks through message parts
func walkParts(part *gmail.MessagePart, fn func(*gmail.MessagePart)) {
	if part == nil {
		return
	}

	fn(part)

	for _, subpart := range part.Parts {
		walkParts(subpart, fn)
	}
}

// inlineImageFromPart turns an image part into an InlineImage. Only parts
// carrying a Content-ID header can be referenced from HTML, so anything else
// is skipped.
func inlineImageFromPart(part *gmail.MessagePart) (InlineImage, bool) {
	cid := partHeader(part, "Content-ID")
	if cid == "" {
		return InlineImage{}, false
	}

	img := InlineImage{
		ContentID: strings.Trim(cid, "<>"),
		MimeType:  part.MimeType,
		Filename:  part.Filename,
	}
	if part.Body != nil {
		img.AttachmentID = part.Body.AttachmentId
		if part.Body.Data != "" {
			if data, err := decodeBase64(part.Body.Data); err == nil {
				img.Data = data
			}
		}
	}
	return img, true
}

// HeaderValue extracts a header value from a Gmail message, ignoring case.
func HeaderValue(m *gmail.Message, header string) string {
	if m.Payload == nil {
		return ""
	}
	return partHeader(m.Payload, header)
}

// partHeader returns the named MIME header of a part, ignoring case.
func partHeader(part *gmail.MessagePart, name string) string {
	for _, h := range part.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// decodePartData returns the decoded body of a part, or "" when the part has
// no inline data.
func decodePartData(part *gmail.MessagePart) string {
	if part.Body == nil || part.Body.Data == "" {
		return ""
	}
	data, err := decodeBase64(part.Body.Data)
	if err != nil {
		return ""
	}
	return string(data)
}

// decodeBase64 decodes Gmail's base64url payloads, tolerating missing padding.
func decodeBase64(s string) ([]byte, error) {
	data, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.RawURLEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("failed to decode part data: %w", err)
		}
	}
	return data, nil
}
