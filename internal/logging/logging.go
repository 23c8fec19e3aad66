// Package logging builds the application's zap logger.
package logging

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ashmilgit15/nursing-mcq-website/internal/config"
	"github.com/ashmilgit15/nursing-mcq-website/internal/store"
)

// New builds a logger from cfg. Output goes to cfg.File when set, otherwise
// to stderr. The TUI must pass a file since it owns the terminal.
func New(cfg config.Log) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		lvl, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		zc.Level = lvl
	}

	if cfg.File != "" {
		if err := store.EnsureDir(cfg.File); err != nil {
			return nil, err
		}
		zc.OutputPaths = []string{cfg.File}
		zc.ErrorOutputPaths = []string{cfg.File}
	}

	return zc.Build()
}

// DefaultFile is the log file used by the TUI when none is configured.
func DefaultFile() (string, error) {
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "nursing-mcq.log"), nil
}
