package gmail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAttachment_Validation(t *testing.T) {
	// Validation runs before any API call, so a zero client suffices.
	c := &Client{}

	_, err := c.GetAttachment("", "att1")
	assert.ErrorContains(t, err, "messageID is required")

	_, err = c.GetAttachment("msg1", "")
	assert.ErrorContains(t, err, "attachmentID is required")
}

func TestHydrateInlineImages_NoFetchNeeded(t *testing.T) {
	c := &Client{}
	email := &Email{
		ID: "msg1",
		InlineImages: []InlineImage{
			{ContentID: "a", Data: []byte{1, 2, 3}},
			{ContentID: "b"},
		},
	}

	// Neither image needs an API call: one already carries data, the other
	// has no attachment reference to fetch.
	c.HydrateInlineImages(email)

	assert.Equal(t, []byte{1, 2, 3}, email.InlineImages[0].Data)
	assert.Empty(t, email.InlineImages[1].Data)
}
