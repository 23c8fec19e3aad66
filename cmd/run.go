package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ashmilgit15/nursing-mcq-website/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	svc, err := e.services(cmd.Context())
	if err != nil {
		return err
	}

	return app.Run(app.Options{
		Bank:        svc.bank,
		Coordinator: svc.coordinator,
		Progress:    svc.progress,
		Logger:      e.logger,
		TimeLimit:   e.cfg.Quiz.TimeLimit,
		BulkOnStart: e.cfg.Replenish.BulkOnStart,
		BulkDelay:   e.cfg.Replenish.BulkDelay,
	})
}
