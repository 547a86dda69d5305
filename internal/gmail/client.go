package gmail

import (
	"context"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/mailsift/mailsift/internal/google"
)

// Client wraps the Gmail Users service for a single account.
type Client struct {
	svc     *gmail.UsersService
	account string
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// HasToken checks if a valid OAuth token exists for the default account
func HasToken() bool {
	return google.HasToken()
}

// NewClientForAccount creates a Gmail client authenticated as the specified
// account. It fails when no cached OAuth token exists for the account.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Client{
		svc:     svc.Users,
		account: account,
	}, nil
}

// NewClient creates a Gmail client for the default account.
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// NewClientWithToken creates a Gmail client from a token obtained through a
// google.TokenProvider, bypassing the on-disk token cache.
func NewClientWithToken(ctx context.Context, account string, tok *oauth2.Token) (*Client, error) {
	client, err := google.NewHTTPClientForToken(ctx, tok)
	if err != nil {
		return nil, err
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Client{
		svc:     svc.Users,
		account: account,
	}, nil
}

// ListMessages lists message stubs matching the query with pagination.
// It will fetch up to maxResults messages, making multiple API calls if
// necessary. The returned messages carry only IDs; use GetParsedMessage for
// content.
func (c *Client) ListMessages(q string, maxResults int64) ([]*gmail.Message, error) {
	var allMessages []*gmail.Message
	pageToken := ""

	for {
		remaining := maxResults - int64(len(allMessages))
		if remaining <= 0 {
			break
		}

		// Gmail caps page sizes at 100.
		pageSize := remaining
		if pageSize > 100 {
			pageSize = 100
		}

		req := c.svc.Messages.List("me").MaxResults(pageSize)
		if q != "" {
			req = req.Q(q)
		}
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}

		res, err := req.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}

		allMessages = append(allMessages, res.Messages...)

		if res.NextPageToken == "" || int64(len(allMessages)) >= maxResults {
			break
		}

		pageToken = res.NextPageToken
	}

	if int64(len(allMessages)) > maxResults {
		allMessages = allMessages[:maxResults]
	}

	return allMessages, nil
}

// GetMessage retrieves a full Gmail message
func (c *Client) GetMessage(messageID string) (*gmail.Message, error) {
	msg, err := c.svc.Messages.Get("me", messageID).Format("full").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return msg, nil
}

// GetParsedMessage retrieves a message and parses it into an Email.
func (c *Client) GetParsedMessage(messageID string) (*Email, error) {
	msg, err := c.GetMessage(messageID)
	if err != nil {
		return nil, err
	}
	return ParseMessage(msg), nil
}

// FetchEmails lists messages matching the query and fetches each one in turn.
// Messages that fail to load are skipped so one bad message cannot sink a
// whole export.
func (c *Client) FetchEmails(q string, maxResults int64) ([]*Email, error) {
	stubs, err := c.ListMessages(q, maxResults)
	if err != nil {
		return nil, err
	}

	emails := make([]*Email, 0, len(stubs))
	for _, stub := range stubs {
		email, err := c.GetParsedMessage(stub.Id)
		if err != nil {
			continue
		}
		emails = append(emails, email)
	}

	return emails, nil
}

// GetRawMessage retrieves the complete RFC 822 form of a message, as needed
// for EML export.
func (c *Client) GetRawMessage(messageID string) ([]byte, error) {
	if messageID == "" {
		return nil, fmt.Errorf("messageID is required")
	}

	msg, err := c.svc.Messages.Get("me", messageID).Format("raw").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get raw message %s: %w", messageID, err)
	}

	data, err := base64.URLEncoding.DecodeString(msg.Raw)
	if err != nil {
		// Some gateways hand back standard base64.
		data, err = base64.StdEncoding.DecodeString(msg.Raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode raw message %s: %w", messageID, err)
		}
	}

	return data, nil
}

// GetProfile retrieves the Gmail profile of the authenticated account.
func (c *Client) GetProfile() (*gmail.Profile, error) {
	profile, err := c.svc.GetProfile("me").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}
