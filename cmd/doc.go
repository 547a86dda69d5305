// Package cmd implements the command-line interface for mailsift.
//
// This package provides the following commands:
//   - auth: Run the interactive OAuth flow and save the account token
//   - list: List Gmail messages matching a query
//   - filter: Filter messages by keyword and optionally export the matches
//   - export-eml: Save messages as individual .eml archive files
//   - export-html: Render messages into one consolidated HTML document
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The list command is the default command when no subcommand is specified.
package cmd
