package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the mailsift application
var rootCmd = &cobra.Command{
	Use:   "mailsift",
	Short: "List, filter, and export Gmail messages",
	Long: `mailsift authenticates to the Gmail API and lets you list messages,
sift them by keyword, and export them to .eml archive files or a single
consolidated HTML document.

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mailsift version %s\n" .Version}}`)

	// If no subcommand is provided, run the list command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "list")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newFilterCmd())
	rootCmd.AddCommand(newExportEmlCmd())
	rootCmd.AddCommand(newExportHTMLCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
