package gmail_tools

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailsift/mailsift/internal/export"
	"github.com/mailsift/mailsift/internal/gmail"
	"github.com/mailsift/mailsift/internal/instrumentation"
	"github.com/mailsift/mailsift/internal/server"
	"github.com/mailsift/mailsift/internal/tools/batch"
	"github.com/mailsift/mailsift/internal/tools/common"
)

// RegisterExportTools registers EML and HTML export tools with the MCP server
func RegisterExportTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Export to .eml files tool
	exportEMLTool := mcp.NewTool("gmail_export_eml",
		mcp.WithDescription("Download Gmail messages as RFC 822 .eml files"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Description("Gmail search query selecting the messages to export"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of messages to export (default: 50)"),
		),
		mcp.WithString("keywords",
			mcp.Description("Optional keyword (string) or array of keywords to filter messages before exporting"),
		),
		mcp.WithString("outputDir",
			mcp.Description("Directory for the exported .eml files (default: 'downloads')"),
		),
	)

	s.AddTool(exportEMLTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_export_eml", instrumentation.OperationGetRaw, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleExportEML(ctx, request, sc)
		}))

	// Export to consolidated HTML tool
	exportHTMLTool := mcp.NewTool("gmail_export_html",
		mcp.WithDescription("Write Gmail messages into a single consolidated HTML document"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Description("Gmail search query selecting the messages to export"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of messages to export (default: 50)"),
		),
		mcp.WithString("keywords",
			mcp.Description("Optional keyword (string) or array of keywords to filter messages before exporting"),
		),
		mcp.WithString("output",
			mcp.Description("Path of the HTML file to write (default: 'emails.html')"),
		),
		mcp.WithBoolean("newestFirst",
			mcp.Description("Order messages newest first instead of oldest first"),
		),
	)

	s.AddTool(exportHTMLTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_export_html", instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleExportHTML(ctx, request, sc)
		}))

	return nil
}

// fetchForExport runs the shared fetch-then-filter step of both export tools.
func fetchForExport(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*gmail.Client, []*gmail.Email, *mcp.CallToolResult) {
	account := common.GetAccountFromArgs(args)
	query := queryFromArgs(args)
	maxResults := maxResultsFromArgs(args, 50)

	filter, errResult := keywordFilterFromArgs(args, false)
	if errResult != nil {
		return nil, nil, errResult
	}

	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return nil, nil, errResult
	}

	emails, err := client.FetchEmails(query, maxResults)
	if err != nil {
		return nil, nil, mcp.NewToolResultError(fmt.Sprintf("Failed to fetch messages: %v", err))
	}

	return client, filter.apply(emails), nil
}

func handleExportEML(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	outputDir := "downloads"
	if dir, ok := args["outputDir"].(string); ok && dir != "" {
		outputDir = dir
	}

	client, emails, errResult := fetchForExport(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}
	if len(emails) == 0 {
		return mcp.NewToolResultText("No messages to export."), nil
	}

	byID := make(map[string]*gmail.Email, len(emails))
	ids := make([]string, 0, len(emails))
	for _, e := range emails {
		byID[e.ID] = e
		ids = append(ids, e.ID)
	}

	start := time.Now()
	results := batch.ProcessBatch(ids, func(id string) (string, error) {
		path, err := export.ExportEmailToEML(client, byID[id], outputDir)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("saved as %s", path), nil
	})
	recordExportMetrics(ctx, sc, instrumentation.FormatEML, results, time.Since(start))

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleExportHTML(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	outputFile := "emails.html"
	if out, ok := args["output"].(string); ok && out != "" {
		outputFile = out
	}
	newestFirst, _ := args["newestFirst"].(bool)

	client, emails, errResult := fetchForExport(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}
	if len(emails) == 0 {
		return mcp.NewToolResultText("No messages to export."), nil
	}

	for _, e := range emails {
		client.HydrateInlineImages(e)
	}

	start := time.Now()
	path, err := export.ExportToHTML(emails, outputFile, true, newestFirst, io.Discard)
	if err != nil {
		if metrics := sc.Metrics(); metrics != nil {
			metrics.RecordExport(ctx, instrumentation.FormatHTML, instrumentation.StatusError, 0, time.Since(start))
		}
		return mcp.NewToolResultError(fmt.Sprintf("HTML export failed: %v", err)), nil
	}
	if metrics := sc.Metrics(); metrics != nil {
		metrics.RecordExport(ctx, instrumentation.FormatHTML, instrumentation.StatusSuccess, int64(len(emails)), time.Since(start))
	}

	return mcp.NewToolResultText(fmt.Sprintf("Exported %d message(s) to %s", len(emails), path)), nil
}

// recordExportMetrics records one export run from per-message batch results.
func recordExportMetrics(ctx context.Context, sc *server.ServerContext, format string, results []batch.Result, duration time.Duration) {
	metrics := sc.Metrics()
	if metrics == nil {
		return
	}

	exported := int64(0)
	status := instrumentation.StatusSuccess
	for _, r := range results {
		if r.Status == "success" {
			exported++
		} else {
			status = instrumentation.StatusError
		}
	}
	metrics.RecordExport(ctx, format, status, exported, duration)
}
