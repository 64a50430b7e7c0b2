// cmd/tools/metrics-report/main.go
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"support-helper/internal/metricstore"
)

func main() {
	summaryCmd := flag.NewFlagSet("summary", flag.ExitOnError)
	summaryDir := summaryCmd.String("dir", "metrics", "Metrics directory")

	tailCmd := flag.NewFlagSet("tail", flag.ExitOnError)
	tailDir := tailCmd.String("dir", "metrics", "Metrics directory")
	tailCount := tailCmd.Int("n", 10, "Number of rows to show")

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportDir := exportCmd.String("dir", "metrics", "Metrics directory")
	exportOut := exportCmd.String("output", "", "Output file (default: summary.json in the metrics directory)")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "summary":
		summaryCmd.Parse(os.Args[2:])
		err = printSummary(*summaryDir)
	case "tail":
		tailCmd.Parse(os.Args[2:])
		err = printTail(*tailDir, *tailCount)
	case "export":
		exportCmd.Parse(os.Args[2:])
		err = exportSummary(*exportDir, *exportOut)
	default:
		help()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printSummary(dir string) error {
	store, err := metricstore.New(dir)
	if err != nil {
		return err
	}

	summary, err := store.Summary()
	if err != nil {
		return err
	}

	fmt.Printf("Queries:            %d\n", summary.TotalQueries)
	fmt.Printf("Total tokens:       %d\n", summary.TotalTokens)
	fmt.Printf("Total cost (USD):   %.6f\n", summary.TotalCostUSD)
	fmt.Printf("Avg latency (ms):   %.2f\n", summary.AvgLatencyMs)
	fmt.Printf("Avg cost per query: %.6f\n", summary.AvgCostPerQuery)
	fmt.Printf("Avg tokens:         %.2f\n", summary.AvgTokensPerQuery)
	fmt.Printf("Safety flagged:     %d (%.1f%%)\n", summary.SafetyFlaggedCount, summary.SafetyFlagRate*100)

	return nil
}

func printTail(dir string, n int) error {
	f, err := os.Open(filepath.Join(dir, "metrics.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return err
	}

	if len(rows) <= 1 {
		fmt.Println("No records.")
		return nil
	}

	header, records := rows[0], rows[1:]
	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}

	for _, record := range records {
		for i, value := range record {
			if i < len(header) {
				fmt.Printf("%s=%s ", header[i], value)
			}
		}
		fmt.Println()
	}

	return nil
}

func exportSummary(dir, output string) error {
	store, err := metricstore.New(dir)
	if err != nil {
		return err
	}

	if _, err := store.ExportSummary(output); err != nil {
		return err
	}

	if output == "" {
		output = filepath.Join(dir, "summary.json")
	}
	fmt.Printf("Summary written to %s\n", output)

	return nil
}

func help() {
	fmt.Println("Usage: metrics-report <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  summary   Print aggregate statistics for logged queries")
	fmt.Println("  tail      Show the most recent CSV records")
	fmt.Println("  export    Write summary statistics to a JSON file")
	fmt.Println()
	fmt.Println("Run 'metrics-report <command> -h' for command flags.")
}
