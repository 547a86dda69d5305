package gmail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientAccount(t *testing.T) {
	c := &Client{account: "work"}
	assert.Equal(t, "work", c.Account())
}

func TestGetRawMessage_Validation(t *testing.T) {
	// Validation runs before any API call, so a zero client suffices.
	c := &Client{}

	_, err := c.GetRawMessage("")
	assert.ErrorContains(t, err, "messageID is required")
}
