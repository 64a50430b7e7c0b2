package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"support-helper/internal/common/config"
	"support-helper/internal/common/logger"
	"support-helper/internal/common/observability"
	"support-helper/internal/metricstore"
	"support-helper/internal/models"
	"support-helper/internal/openai"
	"support-helper/internal/safety"
	"support-helper/internal/support"
)

// app bundles the wired components behind the query-running commands.
type app struct {
	cfg       *config.Config
	logger    logger.Logger
	processor *support.Processor
	checker   *safety.Checker
	store     *metricstore.Store
	obs       *observability.Observability
}

func newApp(configFile string, disableSafety bool) (*app, error) {
	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.LoadFromFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if disableSafety {
		cfg.Safety.Enabled = false
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)

	store, err := metricstore.New(cfg.Metrics.OutputDir)
	if err != nil {
		return nil, err
	}

	client := openai.NewClient(cfg.OpenAI, log)
	checker := safety.NewChecker(client, log)
	processor := support.New(cfg, client, checker, store, log)

	return &app{
		cfg:       cfg,
		logger:    log,
		processor: processor,
		checker:   checker,
		store:     store,
		obs:       observability.New(cfg.App.Name),
	}, nil
}

func (a *app) Close() {
	a.obs.Shutdown()
}

func (a *app) runQuery(ctx context.Context, question string) *models.QueryResponse {
	start := time.Now()
	resp := a.processor.Process(ctx, question)
	a.obs.RecordQueryProcessed(ctx, string(resp.Status))
	a.obs.RecordQueryDuration(ctx, time.Since(start), string(resp.Status))
	return resp
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
