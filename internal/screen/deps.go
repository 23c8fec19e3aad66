package screen

import (
	"time"

	"go.uber.org/zap"

	"github.com/ashmilgit15/nursing-mcq-website/internal/bank"
	"github.com/ashmilgit15/nursing-mcq-website/internal/progress"
	"github.com/ashmilgit15/nursing-mcq-website/internal/replenish"
)

// Deps carries the services screens read from and write to.
type Deps struct {
	Bank        *bank.Store
	Coordinator *replenish.Coordinator
	Progress    *progress.Store
	Logger      *zap.Logger
	TimeLimit   time.Duration
}

// Log returns the logger, or a no-op logger when none is set.
func (d Deps) Log() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
