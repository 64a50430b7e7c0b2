/*
Package main is the entry point for the support-helper CLI.

support-helper answers customer support questions with structured JSON
responses. Each question passes a moderation gate, is formatted into a
prompt template, and is sent to a chat completion endpoint in JSON mode.
Token usage, latency, and estimated cost are logged per query.

Usage:
  support-helper [question...]     Answer a question (or run demo questions)
  support-helper check <text>      Run the safety checks only
  support-helper summary           Print aggregate query statistics
  support-helper export            Write the statistics to a JSON file

Examples:
  # Answer a single question
  support-helper How do I reset my password?

  # Skip the moderation gate
  support-helper --no-safety What are your business hours?

  # Inspect accumulated metrics
  support-helper summary --dir metrics
*/
package main

import (
	"fmt"
	"os"

	"support-helper/internal/cli"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cli.NewRootCmd()
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	rootCmd.AddCommand(cli.NewCheckCmd())
	rootCmd.AddCommand(cli.NewSummaryCmd())
	rootCmd.AddCommand(cli.NewExportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
