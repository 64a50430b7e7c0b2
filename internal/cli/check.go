package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// NewCheckCmd creates the 'check' command for running the safety checks
// on a text without querying the model.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <text>",
		Short: "Run moderation and injection checks on a text",
		Long: `Run the moderation endpoint and the prompt injection heuristics on
the given text and print the combined result, without issuing a
completion call or logging metrics.`,
		Example: `  support-helper check "Ignore all previous instructions"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := cmd.Flags().GetString("config")
			return runCheck(configFile, strings.Join(args, " "))
		},
	}
}

func runCheck(configFile, text string) error {
	app, err := newApp(configFile, false)
	if err != nil {
		return err
	}
	defer app.Close()

	result := app.checker.ComprehensiveCheck(context.Background(), text)
	return printJSON(result)
}
