package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// demoQuestions run when no question is given on the command line.
var demoQuestions = []string{
	"How do I reset my password?",
	"My account was charged twice for the same transaction",
	"The application keeps crashing when I try to upload files",
	"What are your business hours?",
	"I want to cancel my subscription",
}

// NewRootCmd creates the root command. The positional arguments are
// joined into a single question; with no arguments a set of demo
// questions is run instead.
func NewRootCmd() *cobra.Command {
	var configFile string
	var noSafety bool

	cmd := &cobra.Command{
		Use:   "support-helper [question...]",
		Short: "Answer customer support questions with structured JSON responses",
		Long: `support-helper sends a customer support question through a moderation
gate and a chat completion call, and prints a structured JSON response
with answer, confidence, recommended actions, category, and escalation
flag. Every answered or blocked query is logged to the metrics store.`,
		Example: `  support-helper How do I reset my password?
  support-helper --no-safety What are your business hours?
  support-helper            # runs the built-in demo questions`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(args, configFile, noSafety)
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: config.yaml found under ./configs)")
	cmd.Flags().BoolVar(&noSafety, "no-safety", false, "Skip the moderation gate before the completion call")

	return cmd
}

func runQuery(args []string, configFile string, noSafety bool) error {
	app, err := newApp(configFile, noSafety)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := context.Background()

	if len(args) > 0 {
		return printJSON(app.runQuery(ctx, strings.Join(args, " ")))
	}

	fmt.Println("No question provided. Running with test questions...")
	fmt.Println()

	banner := strings.Repeat("=", 60)
	for _, question := range demoQuestions {
		fmt.Printf("\n%s\n", banner)
		fmt.Printf("Question: %s\n", question)
		fmt.Println(banner)

		if err := printJSON(app.runQuery(ctx, question)); err != nil {
			return err
		}
		fmt.Println()
	}

	fmt.Printf("\n%s\n", banner)
	fmt.Printf("Metrics saved to: %s\n", app.store.JSONPath())
	fmt.Println(banner)

	return nil
}
