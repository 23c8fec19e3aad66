package session

import (
	"context"
	"time"

	"github.com/ashmilgit15/nursing-mcq-website/internal/replenish"
	"go.uber.org/zap"
)

// DefaultTimeLimit is the per-question time limit.
const DefaultTimeLimit = 60 * time.Second

// Replenisher tops up a subject's bank. StartNextRound waits for it.
type Replenisher interface {
	RequestReplenishment(ctx context.Context, subject string) replenish.Result
}

// Recorder receives one call per submitted answer.
type Recorder interface {
	RecordAnswer(ctx context.Context, subject string, correct bool)
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed resumes with a known seed instead of drawing a fresh one.
func WithSeed(seed uint32) Option {
	return func(e *Engine) {
		e.seed = seed
		e.seedSet = true
	}
}

// WithRoundStart resumes at a known round offset.
func WithRoundStart(start int) Option {
	return func(e *Engine) {
		if start >= 0 {
			e.roundStart = start
		}
	}
}

// WithSeedFunc sets the source of fresh seeds.
func WithSeedFunc(fn func() uint32) Option {
	return func(e *Engine) { e.newSeed = fn }
}

// WithReplenisher sets the replenisher awaited before a new round.
func WithReplenisher(r Replenisher) Option {
	return func(e *Engine) { e.replenisher = r }
}

// WithRecorder sets the progress recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithTimeLimit sets the per-question time limit. Zero disables the timer.
func WithTimeLimit(d time.Duration) Option {
	return func(e *Engine) { e.timeLimit = d }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock overrides the time source used by the question timer.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}
