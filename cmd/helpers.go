package cmd

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yogeshramchandani7/cr360-backend/internal/catalog"
	"github.com/yogeshramchandani7/cr360-backend/internal/config"
	"github.com/yogeshramchandani7/cr360-backend/internal/database"
	"github.com/yogeshramchandani7/cr360-backend/internal/llm"
	"github.com/yogeshramchandani7/cr360-backend/internal/logging"
	"github.com/yogeshramchandani7/cr360-backend/internal/memory"
	"github.com/yogeshramchandani7/cr360-backend/internal/pipeline"
	"github.com/yogeshramchandani7/cr360-backend/internal/validator"
)

// loadConfig loads and validates the config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `cr360 init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger honoring the --verbose flag.
func newLogger() (*zap.Logger, error) {
	return logging.New(verbose)
}

// loadCatalog loads the configured semantic model, or the built-in one
// when no path is set.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("loading semantic model: %w", err)
	}
	return cat, nil
}

// buildEngine assembles the full query pipeline from configuration. The
// returned DB handle must be closed by the caller.
func buildEngine(cfg *config.Config, log *zap.Logger) (*pipeline.Engine, *sql.DB, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}

	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, nil, fmt.Errorf("creating LLM provider: %w", err)
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, nil, err
	}

	executor := database.NewSQLExecutor(db,
		time.Duration(cfg.Database.QueryTimeoutSeconds)*time.Second,
		cfg.Database.MaxRows)

	orch := pipeline.NewOrchestrator(
		provider,
		validator.New(cat),
		executor,
		pipeline.RetryBudgets{
			SchemaHallucination: cfg.Retry.SchemaHallucination,
			Syntax:              cfg.Retry.Syntax,
			Semantic:            cfg.Retry.Semantic,
			Execution:           cfg.Retry.Execution,
			MaxAttempts:         cfg.Retry.MaxAttempts,
		},
		pipeline.GenerationSettings{
			Model:       cfg.Model,
			Temperature: cfg.Generation.Temperature,
			MaxTokens:   cfg.Generation.MaxTokens,
		},
		llm.SQLSystemPrompt(cat.ContextForLLM()),
		cat.ExampleQuestions(),
		log,
	)

	sessions := memory.NewManager(cfg.Memory.MaxTurns, cat.Patterns())

	engine, err := pipeline.NewEngine(cat, orch, sessions, log)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return engine, db, nil
}
