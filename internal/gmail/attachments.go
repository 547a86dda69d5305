package gmail

import (
	"fmt"
)

const (
	// MaxAttachmentSize defines the maximum attachment size in bytes (25MB)
	MaxAttachmentSize = 25 * 1024 * 1024
)

// GetAttachment retrieves the content of an attachment (returns []byte)
func (c *Client) GetAttachment(messageID, attachmentID string) ([]byte, error) {
	if messageID == "" {
		return nil, fmt.Errorf("messageID is required")
	}
	if attachmentID == "" {
		return nil, fmt.Errorf("attachmentID is required")
	}

	attachment, err := c.svc.Messages.Attachments.Get("me", messageID, attachmentID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment %s: %w", attachmentID, err)
	}

	if attachment.Size > MaxAttachmentSize {
		return nil, fmt.Errorf("attachment size %d exceeds maximum size %d", attachment.Size, MaxAttachmentSize)
	}

	data, err := decodeBase64(attachment.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode attachment data: %w", err)
	}

	return data, nil
}

// HydrateInlineImages fetches image data for inline parts that were delivered
// as attachment references. Images that fail to load keep empty data; the
// HTML exporter leaves their cid: references untouched.
func (c *Client) HydrateInlineImages(email *Email) {
	for i := range email.InlineImages {
		img := &email.InlineImages[i]
		if len(img.Data) > 0 || img.AttachmentID == "" {
			continue
		}
		data, err := c.GetAttachment(email.ID, img.AttachmentID)
		if err != nil {
			continue
		}
		img.Data = data
	}
}
