package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoQuestions(t *testing.T) {
	assert.Equal(t, []string{
		"How do I reset my password?",
		"My account was charged twice for the same transaction",
		"The application keeps crashing when I try to upload files",
		"What are your business hours?",
		"I want to cancel my subscription",
	}, demoQuestions)
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "support-helper [question...]", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("no-safety"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestSubcommandNames(t *testing.T) {
	assert.Equal(t, "check <text>", NewCheckCmd().Use)
	assert.Equal(t, "summary", NewSummaryCmd().Use)
	assert.Equal(t, "export", NewExportCmd().Use)
}

func TestRunSummary_FreshDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "metrics")

	require.NoError(t, runSummary(dir))

	assert.FileExists(t, filepath.Join(dir, "metrics.json"))
	assert.FileExists(t, filepath.Join(dir, "metrics.csv"))
}

func TestRunExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "metrics")

	require.NoError(t, runExport(dir, ""))
	assert.FileExists(t, filepath.Join(dir, "summary.json"))

	custom := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, runExport(dir, custom))
	assert.FileExists(t, custom)
}
