package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"support-helper/internal/metricstore"
)

// NewSummaryCmd creates the 'summary' command. It reads the metrics
// files directly and needs no API credentials.
func NewSummaryCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print aggregate statistics over all logged queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "metrics", "Metrics directory")

	return cmd
}

func runSummary(dir string) error {
	store, err := metricstore.New(dir)
	if err != nil {
		return err
	}

	summary, err := store.Summary()
	if err != nil {
		return err
	}

	return printJSON(summary)
}

// NewExportCmd creates the 'export' command, which writes the summary
// statistics to a JSON file.
func NewExportCmd() *cobra.Command {
	var dir string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export summary statistics to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(dir, output)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "metrics", "Metrics directory")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: summary.json in the metrics directory)")

	return cmd
}

func runExport(dir, output string) error {
	store, err := metricstore.New(dir)
	if err != nil {
		return err
	}

	summary, err := store.ExportSummary(output)
	if err != nil {
		return err
	}

	if output == "" {
		output = filepath.Join(dir, "summary.json")
	}
	fmt.Printf("Summary exported to: %s\n", output)

	return printJSON(summary)
}
