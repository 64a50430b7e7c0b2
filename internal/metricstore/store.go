// internal/metricstore/store.go
package metricstore

import (
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"support-helper/internal/common/errors"
	"support-helper/internal/models"
)

const (
	jsonFileName    = "metrics.json"
	csvFileName     = "metrics.csv"
	summaryFileName = "summary.json"

	// questionLimit caps the question text written to the CSV file.
	questionLimit = 100
)

var csvHeader = []string{
	"timestamp",
	"question",
	"model",
	"tokens_prompt",
	"tokens_completion",
	"total_tokens",
	"latency_ms",
	"estimated_cost_usd",
	"safety_flagged",
}

// metricsFile is the on-disk JSON layout.
type metricsFile struct {
	Metrics []models.MetricsRecord `json:"metrics"`
}

// Store persists one record per query to paired JSON and CSV files under
// a single output directory. The JSON file holds the full records and is
// rewritten on every append; the CSV file is append-only and carries a
// flat subset. Writes are serialized with an in-process lock.
type Store struct {
	outputDir string
	jsonPath  string
	csvPath   string
	mu        sync.Mutex
}

// New creates the output directory and initializes both files if they do
// not exist yet. Existing files are left untouched.
func New(outputDir string) (*Store, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, errors.NewMetricsIOError("create output dir", err)
	}

	s := &Store{
		outputDir: outputDir,
		jsonPath:  filepath.Join(outputDir, jsonFileName),
		csvPath:   filepath.Join(outputDir, csvFileName),
	}

	if _, err := os.Stat(s.jsonPath); os.IsNotExist(err) {
		if err := s.writeJSON(&metricsFile{Metrics: []models.MetricsRecord{}}); err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(s.csvPath); os.IsNotExist(err) {
		if err := s.initCSV(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// JSONPath returns the path of the JSON metrics file.
func (s *Store) JSONPath() string {
	return s.jsonPath
}

// CSVPath returns the path of the CSV metrics file.
func (s *Store) CSVPath() string {
	return s.csvPath
}

// Append logs one record to both files.
func (s *Store) Append(record models.MetricsRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.appendJSON(record); err != nil {
		return err
	}
	return s.appendCSV(record)
}

// Summary computes aggregate statistics over every logged record.
func (s *Store) Summary() (*models.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readJSON()
	if err != nil {
		return nil, err
	}

	summary := &models.Summary{}
	if len(data.Metrics) == 0 {
		return summary, nil
	}

	var totalCost, totalLatency float64
	var totalTokens, flaggedCount int
	for _, record := range data.Metrics {
		totalCost += record.EstimatedCostUSD
		totalLatency += record.LatencyMs
		totalTokens += record.TotalTokens
		if record.SafetyFlagged {
			flaggedCount++
		}
	}

	queries := len(data.Metrics)
	summary.TotalQueries = queries
	summary.TotalCostUSD = round(totalCost, 6)
	summary.TotalTokens = totalTokens
	summary.AvgLatencyMs = round(totalLatency/float64(queries), 2)
	summary.AvgCostPerQuery = round(totalCost/float64(queries), 6)
	summary.AvgTokensPerQuery = round(float64(totalTokens)/float64(queries), 2)
	summary.SafetyFlaggedCount = flaggedCount
	summary.SafetyFlagRate = round(float64(flaggedCount)/float64(queries), 3)

	return summary, nil
}

// ExportSummary writes the summary statistics to outputFile, which
// defaults to summary.json next to the metrics files, and returns them.
func (s *Store) ExportSummary(outputFile string) (*models.Summary, error) {
	if outputFile == "" {
		outputFile = filepath.Join(s.outputDir, summaryFileName)
	}

	summary, err := s.Summary()
	if err != nil {
		return nil, err
	}

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, errors.NewMetricsIOError("marshal summary", err)
	}

	if err := os.WriteFile(outputFile, jsonData, 0o644); err != nil {
		return nil, errors.NewMetricsIOError("write summary", err)
	}

	return summary, nil
}

func (s *Store) readJSON() (*metricsFile, error) {
	raw, err := os.ReadFile(s.jsonPath)
	if err != nil {
		return nil, errors.NewMetricsIOError("read metrics file", err)
	}

	var data metricsFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.NewMetricsIOError("parse metrics file", err)
	}

	return &data, nil
}

func (s *Store) writeJSON(data *metricsFile) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.NewMetricsIOError("marshal metrics", err)
	}

	if err := os.WriteFile(s.jsonPath, jsonData, 0o644); err != nil {
		return errors.NewMetricsIOError("write metrics file", err)
	}

	return nil
}

func (s *Store) appendJSON(record models.MetricsRecord) error {
	data, err := s.readJSON()
	if err != nil {
		return err
	}

	data.Metrics = append(data.Metrics, record)
	return s.writeJSON(data)
}

func (s *Store) initCSV() error {
	f, err := os.OpenFile(s.csvPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.NewMetricsIOError("create csv file", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return errors.NewMetricsIOError("write csv header", err)
	}
	w.Flush()

	if err := w.Error(); err != nil {
		return errors.NewMetricsIOError("flush csv header", err)
	}
	return nil
}

func (s *Store) appendCSV(record models.MetricsRecord) error {
	f, err := os.OpenFile(s.csvPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.NewMetricsIOError("open csv file", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvRow(record)); err != nil {
		return errors.NewMetricsIOError("write csv row", err)
	}
	w.Flush()

	if err := w.Error(); err != nil {
		return errors.NewMetricsIOError("flush csv row", err)
	}
	return nil
}

func csvRow(record models.MetricsRecord) []string {
	return []string{
		record.Timestamp,
		truncate(record.Question, questionLimit),
		record.Model,
		strconv.Itoa(record.TokensPrompt),
		strconv.Itoa(record.TokensCompletion),
		strconv.Itoa(record.TotalTokens),
		strconv.FormatFloat(record.LatencyMs, 'f', -1, 64),
		strconv.FormatFloat(record.EstimatedCostUSD, 'f', -1, 64),
		strconv.FormatBool(record.SafetyFlagged),
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
