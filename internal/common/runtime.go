package common

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/dtnitsch/readmoo-summary/models"
	"github.com/dtnitsch/readmoo-summary/pkg/archive"
	"github.com/dtnitsch/readmoo-summary/pkg/coordinator"
	"github.com/dtnitsch/readmoo-summary/pkg/db"
	"github.com/dtnitsch/readmoo-summary/pkg/fetcher"
	"github.com/dtnitsch/readmoo-summary/pkg/langdetect"
	"github.com/dtnitsch/readmoo-summary/pkg/observer"
	"github.com/dtnitsch/readmoo-summary/pkg/protocol"
	"github.com/dtnitsch/readmoo-summary/pkg/settings"
	"github.com/dtnitsch/readmoo-summary/pkg/summarizer"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// DefaultConfigPath is config.yaml under the XDG config directory.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "readmoo-summary", "config.yaml")
}

// NewLogger builds the JSON stderr logger from the global --quiet and
// --debug flags. The returned level can be raised later.
func NewLogger(c *cli.Context) (*slog.Logger, *slog.LevelVar) {
	level := new(slog.LevelVar)
	if c.Bool("quiet") {
		level.Set(slog.LevelError)
	} else if c.Bool("debug") {
		level.Set(slog.LevelDebug)
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})), level
}

// LoadConfig reads .env, the config file and then applies flag overrides.
func LoadConfig(c *cli.Context) (*models.Config, error) {
	_ = godotenv.Load()

	path := c.String("config")
	if path == "" {
		path = DefaultConfigPath()
	}
	cfg, err := models.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("listen") {
		cfg.Listen = c.String("listen")
	}
	return cfg, nil
}

// Runtime is the process-scoped worker: one coordinator, one database.
type Runtime struct {
	Config      *models.Config
	Logger      *slog.Logger
	DB          *db.DB
	Fetcher     *fetcher.Fetcher
	Settings    *settings.Store
	Archive     *archive.Archive
	Coordinator *coordinator.Coordinator
	Feed        *observer.Feed
	Dispatcher  *protocol.Dispatcher
}

// NewRuntime opens the database and wires every service. The caller owns
// Close.
func NewRuntime(ctx context.Context, c *cli.Context) (*Runtime, error) {
	logger, level := NewLogger(c)

	cfg, err := LoadConfig(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	rt, err := newRuntime(ctx, cfg, logger, database)
	if err != nil {
		database.Close()
		return nil, err
	}

	// The debugMode setting raises verbosity unless --quiet was given.
	if cur, err := rt.Settings.Get(ctx); err == nil && cur.DebugMode && !c.Bool("quiet") {
		level.Set(slog.LevelDebug)
	}
	return rt, nil
}

func newRuntime(ctx context.Context, cfg *models.Config, logger *slog.Logger, database *db.DB) (*Runtime, error) {
	llm, err := summarizer.New(cfg.AI, cfg.AIKey())
	if err != nil {
		return nil, fmt.Errorf("failed to configure summarizer: %w", err)
	}
	detector, err := langdetect.NewLingua(cfg.Languages)
	if err != nil {
		return nil, fmt.Errorf("failed to configure language detector: %w", err)
	}

	store := settings.NewStore(database)
	if err := store.EnsureDefaults(ctx); err != nil {
		return nil, err
	}

	f := fetcher.NewFetcher(cfg.FetchTimeoutDuration(), cfg.UserAgent)
	coord := coordinator.New(coordinator.Config{
		Fetcher:    f,
		Summarizer: llm,
		Detector:   detector,
		Settings:   store,
		Store:      database,
		Logger:     logger,
	})

	if rec, err := database.LastSummary(ctx); err != nil {
		logger.Warn("Failed to load last summary", "error", err)
	} else if rec != nil {
		coord.Restore(*rec)
	}

	feed := observer.NewFeed(coord, logger)
	archiveSvc := archive.New(database)

	return &Runtime{
		Config:      cfg,
		Logger:      logger,
		DB:          database,
		Fetcher:     f,
		Settings:    store,
		Archive:     archiveSvc,
		Coordinator: coord,
		Feed:        feed,
		Dispatcher: protocol.NewDispatcher(protocol.Deps{
			Summaries: coord,
			Settings:  store,
			Archive:   archiveSvc,
			Feed:      feed,
			Fetcher:   f,
			Logger:    logger,
		}),
	}, nil
}

func (rt *Runtime) Close() error {
	return rt.DB.Close()
}
