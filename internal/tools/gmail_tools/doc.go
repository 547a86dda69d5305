// Package gmail_tools provides MCP (Model Context Protocol) tools for interacting with Gmail.
//
// This package exposes Gmail functionality through MCP tools that can be called by
// AI agents or other MCP clients. It provides capabilities for:
//
// Listing and filtering:
//   - gmail_list_emails: List Gmail messages matching a search query
//   - gmail_filter_emails: Fetch messages and keep only those matching keywords,
//     optionally restricted to subject or body, case-sensitive on request
//
// Exporting:
//   - gmail_export_eml: Download messages as RFC 822 .eml files with per-message
//     batch results
//   - gmail_export_html: Write messages into a single consolidated HTML document
//     with inline images embedded as data URIs
//
// All tools are read-only: they never modify, label, or delete anything in the
// mailbox. Each tool accepts an optional account argument so multiple Google
// accounts can be used side by side; clients are created lazily from the token
// cache and reused through the server context.
//
// Example usage:
//
//	// List recent inbox messages
//	gmail_list_emails(query: "in:inbox", maxResults: 20)
//
//	// Filter by keywords in the subject
//	gmail_filter_emails(keywords: ["invoice", "receipt"], subjectOnly: true)
//
//	// Export matches as .eml files
//	gmail_export_eml(query: "from:billing@example.com", outputDir: "downloads")
//
// Tool handlers run through the instrumented wrapper, which records invocation
// metrics and writes audit log entries when instrumentation is enabled.
package gmail_tools
