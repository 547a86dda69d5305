package gmail_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailsift/mailsift/internal/gmail"
	"github.com/mailsift/mailsift/internal/google"
	"github.com/mailsift/mailsift/internal/instrumentation"
	"github.com/mailsift/mailsift/internal/server"
	"github.com/mailsift/mailsift/internal/tools/common"
)

// RegisterGmailTools registers all Gmail-related tools with the MCP server
func RegisterGmailTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Register filter tools
	if err := RegisterFilterTools(s, sc); err != nil {
		return fmt.Errorf("failed to register filter tools: %w", err)
	}

	// Register export tools
	if err := RegisterExportTools(s, sc); err != nil {
		return fmt.Errorf("failed to register export tools: %w", err)
	}

	// List emails tool
	listEmailsTool := mcp.NewTool("gmail_list_emails",
		mcp.WithDescription("List Gmail messages matching a query"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Description("Gmail search query (e.g., 'in:inbox', 'from:user@example.com')"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
	)

	s.AddTool(listEmailsTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_list_emails", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListEmails(ctx, request, sc)
		}))

	return nil
}

// clientForAccount returns the Gmail client for the account named in args.
// When no client can be built it returns a tool error result explaining how
// to authorize the account.
func clientForAccount(ctx context.Context, sc *server.ServerContext, account string) (*gmail.Client, *mcp.CallToolResult) {
	client := sc.GmailClientForAccount(account)
	if client != nil {
		return client, nil
	}

	tokens := sc.TokenProvider()
	if !tokens.HasTokenForAccount(account) {
		return nil, mcp.NewToolResultError(google.GetAuthenticationErrorMessage(account))
	}

	tok, err := tokens.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("Failed to get token for account %s: %v", account, err))
	}

	client, err = gmail.NewClientWithToken(ctx, account, tok)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("Failed to create Gmail client for account %s: %v", account, err))
	}
	sc.SetGmailClientForAccount(account, client)
	return client, nil
}

// maxResultsFromArgs reads the maxResults argument, falling back to def.
// JSON numbers arrive as float64.
func maxResultsFromArgs(args map[string]interface{}, def int64) int64 {
	if v, ok := args["maxResults"]; ok {
		if f, ok := v.(float64); ok && f > 0 {
			return int64(f)
		}
	}
	return def
}

// queryFromArgs reads the optional Gmail search query argument.
func queryFromArgs(args map[string]interface{}) string {
	if q, ok := args["query"].(string); ok {
		return q
	}
	return ""
}

// formatEmails renders messages as a numbered text listing.
func formatEmails(emails []*gmail.Email) string {
	var b strings.Builder
	for i, e := range emails {
		subject := e.Subject
		if subject == "" {
			subject = "(No Subject)"
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, subject)
		fmt.Fprintf(&b, "   From: %s\n", e.From)
		fmt.Fprintf(&b, "   Date: %s\n", e.Date)
		fmt.Fprintf(&b, "   ID: %s\n", e.ID)
		if e.Snippet != "" {
			fmt.Fprintf(&b, "   Snippet: %s\n", e.Snippet)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func handleListEmails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	account := common.GetAccountFromArgs(args)
	query := queryFromArgs(args)
	maxResults := maxResultsFromArgs(args, 10)

	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	emails, err := client.FetchEmails(query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list messages: %v", err)), nil
	}

	if len(emails) == 0 {
		return mcp.NewToolResultText("No messages found."), nil
	}

	result := fmt.Sprintf("Found %d message(s):\n\n%s", len(emails), formatEmails(emails))
	return mcp.NewToolResultText(result), nil
}
