package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailsift/mailsift/internal/server"
)

// RegisterAccountResources registers per-account resources with the MCP server.
// These resources expose information about the authorized Google accounts.
func RegisterAccountResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	profileTemplate := mcp.NewResourceTemplate(
		"mailsift://accounts/{account}/profile",
		"Account Profile",
		mcp.WithTemplateDescription("Gmail profile of an authorized account: address and message totals"),
		mcp.WithTemplateMIMEType("application/json"),
	)

	s.AddResourceTemplate(profileTemplate, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleAccountProfile(ctx, request, sc)
	})

	return nil
}

// accountFromURI extracts the account name from a
// mailsift://accounts/{account}/profile URI.
func accountFromURI(uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, "mailsift://accounts/")
	if !ok {
		return "", fmt.Errorf("unexpected resource URI: %s", uri)
	}
	account, ok := strings.CutSuffix(rest, "/profile")
	if !ok || account == "" || strings.Contains(account, "/") {
		return "", fmt.Errorf("unexpected resource URI: %s", uri)
	}
	return account, nil
}

// handleAccountProfile returns the Gmail profile of the requested account
func handleAccountProfile(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	account, err := accountFromURI(request.Params.URI)
	if err != nil {
		return nil, err
	}

	client := sc.GmailClientForAccount(account)
	if client == nil {
		return nil, fmt.Errorf("no Gmail client available for account: %s", account)
	}

	profile, err := client.GetProfile()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profileData := map[string]interface{}{
		"account":       account,
		"email":         profile.EmailAddress,
		"historyId":     profile.HistoryId,
		"messagesTotal": profile.MessagesTotal,
		"threadsTotal":  profile.ThreadsTotal,
	}

	jsonData, err := json.MarshalIndent(profileData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
