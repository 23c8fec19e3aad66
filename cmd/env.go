package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ashmilgit15/nursing-mcq-website/internal/bank"
	"github.com/ashmilgit15/nursing-mcq-website/internal/config"
	"github.com/ashmilgit15/nursing-mcq-website/internal/llm"
	"github.com/ashmilgit15/nursing-mcq-website/internal/logging"
	"github.com/ashmilgit15/nursing-mcq-website/internal/progress"
	"github.com/ashmilgit15/nursing-mcq-website/internal/replenish"
	"github.com/ashmilgit15/nursing-mcq-website/internal/sources"
	"github.com/ashmilgit15/nursing-mcq-website/internal/store"
)

// env holds what a command opened. Close releases it in reverse order.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
	pg     *store.PostgresKV
	kv     store.KV
}

// services are the domain objects built on top of an env.
type services struct {
	bank        *bank.Store
	coordinator *replenish.Coordinator
	progress    *progress.Store
}

// openEnv loads config, builds the logger and opens the store. With
// toFile set, logs go to a file so they don't corrupt the TUI.
func openEnv(cmd *cobra.Command, toFile bool) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logCfg := cfg.Log
	if toFile && logCfg.File == "" {
		if logCfg.File, err = logging.DefaultFile(); err != nil {
			return nil, fmt.Errorf("resolve log file: %w", err)
		}
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	e := &env{cfg: cfg, logger: logger, store: st, kv: st.KV(logger)}
	if cfg.PostgresURL != "" {
		pg, err := store.OpenPostgresKV(cmd.Context(), cfg.PostgresURL, logger)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.pg = pg
		e.kv = pg
	}
	logger.Debug("environment ready",
		zap.String("db", dbPath),
		zap.Bool("postgres", e.pg != nil))
	return e, nil
}

func (e *env) Close() {
	if e.pg != nil {
		e.pg.Close()
	}
	if e.store != nil {
		_ = e.store.Close()
	}
	_ = e.logger.Sync()
}

// services builds the bank, the coordinator with its sources and the
// progress store. A misconfigured LLM only disables the llm source.
func (e *env) services(ctx context.Context) (*services, error) {
	b := bank.New(ctx, e.kv, e.logger)

	provider, err := llm.NewProvider(ctx, e.cfg.LLM(), e.store.EventRepo(), e.logger)
	switch {
	case errors.Is(err, llm.ErrDisabled):
		e.logger.Debug("llm source disabled")
	case err != nil:
		e.logger.Warn("llm provider unavailable", zap.Error(err))
	}

	srcs, err := sources.Build(e.cfg.Sources, sources.Deps{
		Provider: provider,
		LLM:      e.cfg.LLMSourceConfig(),
		Prior:    priorTexts(b),
	})
	if err != nil {
		return nil, err
	}

	coord := replenish.New(b, srcs,
		replenish.WithConfig(e.cfg.ReplenishConfig()),
		replenish.WithLogger(e.logger))

	return &services{
		bank:        b,
		coordinator: coord,
		progress:    progress.New(ctx, e.kv, e.logger),
	}, nil
}

// priorTexts feeds stored question texts to the llm source so it avoids
// repeating them.
func priorTexts(b *bank.Store) sources.PriorQuestionsFunc {
	return func(subject string) []string {
		qs := b.GetAll(subject)
		out := make([]string, len(qs))
		for i, q := range qs {
			out[i] = q.Text
		}
		return out
	}
}
