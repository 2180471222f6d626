// Package app holds the application context shared by every selector and
// builds the selector chain from configuration.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jask/paintingdb/internal/config"
	"github.com/jask/paintingdb/internal/database"
	"github.com/jask/paintingdb/internal/logging"
	"github.com/jask/paintingdb/internal/selector"
)

// Context is constructed once at startup and passed to everything that
// needs the database or the logger.
type Context struct {
	Config config.Config
	DB     *sql.DB
	Logger zerolog.Logger

	logCloser io.Closer
}

// Open prepares the store described by cfg: it creates the directory,
// applies migrations and seeds an empty catalogue when enabled.
func Open(ctx context.Context, cfg config.Config) (*Context, error) {
	logger, closer, err := logging.Open(cfg.Log)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("open db: %w", err)
	}
	ac := &Context{Config: cfg, DB: db, Logger: logger, logCloser: closer}

	if err := database.RunMigrations(db); err != nil {
		_ = ac.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if cfg.Database.Seed {
		if err := database.SeedDefaults(ctx, db); err != nil {
			_ = ac.Close()
			return nil, fmt.Errorf("seed defaults: %w", err)
		}
	}
	logger.Info().Str("component", "app").Str("db", cfg.Database.Path).Msg("database ready")
	return ac, nil
}

// Close releases the database and the log file.
func (c *Context) Close() error {
	var errs []error
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	if c.logCloser != nil {
		errs = append(errs, c.logCloser.Close())
	}
	return errors.Join(errs...)
}

// QueryHook returns the logging hook every selector is built with.
func (c *Context) QueryHook() selector.QueryHook {
	return logging.QueryHook(c.Logger)
}
