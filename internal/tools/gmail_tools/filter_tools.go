package gmail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailsift/mailsift/internal/gmail"
	"github.com/mailsift/mailsift/internal/instrumentation"
	"github.com/mailsift/mailsift/internal/server"
	"github.com/mailsift/mailsift/internal/tools/batch"
	"github.com/mailsift/mailsift/internal/tools/common"
)

// keywordFilter holds the parsed keyword matching arguments shared by the
// filter and export tools.
type keywordFilter struct {
	keywords      []string
	searchSubject bool
	searchBody    bool
	caseSensitive bool
}

// apply returns the messages matching the filter. A filter without keywords
// matches everything.
func (f *keywordFilter) apply(emails []*gmail.Email) []*gmail.Email {
	if f == nil || len(f.keywords) == 0 {
		return emails
	}
	return gmail.FilterByKeywords(emails, f.keywords, f.searchSubject, f.searchBody, f.caseSensitive)
}

// keywordFilterFromArgs parses the keywords, subjectOnly, bodyOnly and
// caseSensitive arguments. When required is false a missing keywords argument
// yields a filter that matches everything.
func keywordFilterFromArgs(args map[string]interface{}, required bool) (*keywordFilter, *mcp.CallToolResult) {
	f := &keywordFilter{}

	if args["keywords"] == nil && !required {
		f.searchSubject = true
		f.searchBody = true
		return f, nil
	}

	keywords, err := batch.ParseStringOrArray(args["keywords"], "keywords")
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	f.keywords = keywords

	subjectOnly, _ := args["subjectOnly"].(bool)
	bodyOnly, _ := args["bodyOnly"].(bool)
	if subjectOnly && bodyOnly {
		return nil, mcp.NewToolResultError("subjectOnly and bodyOnly are mutually exclusive")
	}
	f.searchSubject = !bodyOnly
	f.searchBody = !subjectOnly
	f.caseSensitive, _ = args["caseSensitive"].(bool)

	return f, nil
}

// RegisterFilterTools registers keyword filtering tools with the MCP server
func RegisterFilterTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	filterEmailsTool := mcp.NewTool("gmail_filter_emails",
		mcp.WithDescription("Fetch Gmail messages and keep only those matching one or more keywords"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Description("Gmail search query applied server-side before keyword filtering"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of messages to fetch before filtering (default: 50)"),
		),
		mcp.WithString("keywords",
			mcp.Required(),
			mcp.Description("Keyword (string) or array of keywords; a message matches if it contains any of them"),
		),
		mcp.WithBoolean("subjectOnly",
			mcp.Description("Match keywords against the subject only"),
		),
		mcp.WithBoolean("bodyOnly",
			mcp.Description("Match keywords against the body only"),
		),
		mcp.WithBoolean("caseSensitive",
			mcp.Description("Match keywords case-sensitively (default: false)"),
		),
	)

	s.AddTool(filterEmailsTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_filter_emails", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFilterEmails(ctx, request, sc)
		}))

	return nil
}

func handleFilterEmails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	account := common.GetAccountFromArgs(args)
	query := queryFromArgs(args)
	maxResults := maxResultsFromArgs(args, 50)

	filter, errResult := keywordFilterFromArgs(args, true)
	if errResult != nil {
		return errResult, nil
	}

	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	emails, err := client.FetchEmails(query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch messages: %v", err)), nil
	}

	matched := filter.apply(emails)
	if len(matched) == 0 {
		return mcp.NewToolResultText("No messages matched the given keywords."), nil
	}

	result := fmt.Sprintf("Found %d matching message(s):\n\n%s", len(matched), formatEmails(matched))
	return mcp.NewToolResultText(result), nil
}
