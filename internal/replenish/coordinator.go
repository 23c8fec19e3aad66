package replenish

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ashmilgit15/nursing-mcq-website/internal/bank"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config tunes replenishment.
type Config struct {
	// Threshold is the "needs more" cutoff shared by lazy top-up and bulk.
	Threshold int
	// BatchSize caps accepted candidates per collection.
	BatchSize int
	// SourceTimeout bounds each individual source call.
	SourceTimeout time.Duration
	// FallbackLimit caps fallback templates used per collection.
	FallbackLimit int
	// BulkConcurrency caps concurrent collections in a bulk pass.
	BulkConcurrency int
}

// DefaultConfig returns the default replenishment settings.
func DefaultConfig() Config {
	return Config{
		Threshold:       50,
		BatchSize:       20,
		SourceTimeout:   10 * time.Second,
		FallbackLimit:   10,
		BulkConcurrency: 4,
	}
}

// Result describes the outcome of one collection.
type Result struct {
	Subject      string
	Fetched      int
	Accepted     int
	Inserted     int
	UsedFallback bool
	// Skipped is set when the request was dropped because a collection for
	// the subject, or a bulk pass, was already running.
	Skipped bool
	// Err joins the errors of sources that failed. It is informational: a
	// collection with source errors may still have inserted questions.
	Err error
}

// SubjectStats summarizes a subject for status displays.
type SubjectStats struct {
	Count       int
	NeedsMore   bool
	Collecting  bool
	LastFailure time.Time
}

// Coordinator fetches, filters and appends questions for subjects whose
// bank is below the threshold. At most one collection runs per subject;
// overlapping requests are dropped, not queued.
type Coordinator struct {
	bank    *bank.Store
	sources []Source
	filter  Filter
	cfg     Config
	logger  *zap.Logger
	now     func() time.Time
	shuffle ShuffleFunc

	mu         sync.Mutex
	collecting map[string]bool
	bulk       bool

	subs       subscribers
	background sync.WaitGroup
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithConfig overrides the default configuration.
func WithConfig(cfg Config) Option {
	return func(c *Coordinator) { c.cfg = cfg }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithFilter overrides the content filter.
func WithFilter(f Filter) Option {
	return func(c *Coordinator) { c.filter = f }
}

// WithClock overrides the time source for failure markers.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// WithShuffle overrides how candidate options are shuffled.
func WithShuffle(fn ShuffleFunc) Option {
	return func(c *Coordinator) { c.shuffle = fn }
}

// New creates a Coordinator that appends into b using sources in priority
// order.
func New(b *bank.Store, sources []Source, opts ...Option) *Coordinator {
	c := &Coordinator{
		bank:       b,
		sources:    sources,
		filter:     DefaultFilter(),
		cfg:        DefaultConfig(),
		logger:     zap.NewNop(),
		now:        time.Now,
		shuffle:    rand.Shuffle,
		collecting: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bank returns the underlying bank store.
func (c *Coordinator) Bank() *bank.Store {
	return c.bank
}

// Threshold returns the configured "needs more" cutoff.
func (c *Coordinator) Threshold() int {
	return c.cfg.Threshold
}

// NeedsMore reports whether subject is below the threshold.
func (c *Coordinator) NeedsMore(subject string) bool {
	return c.bank.Count(subject) < c.cfg.Threshold
}

// IsCollecting reports whether a collection for subject is in flight.
func (c *Coordinator) IsCollecting(subject string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collecting[subject]
}

// Subscribe registers fn for BankUpdated events. fn runs synchronously on
// the collecting goroutine and must not block. The returned func
// unsubscribes.
func (c *Coordinator) Subscribe(fn func(BankUpdated)) func() {
	return c.subs.add(fn)
}

// Questions returns the subject's questions and, when the bank is below the
// threshold, starts a background collection. The collection outlives ctx
// cancellation; use Wait to join it.
func (c *Coordinator) Questions(ctx context.Context, subject string) []bank.Question {
	qs := c.bank.GetAll(subject)
	if len(qs) < c.cfg.Threshold {
		bg := context.WithoutCancel(ctx)
		c.background.Add(1)
		go func() {
			defer c.background.Done()
			c.RequestReplenishment(bg, subject)
		}()
	}
	return qs
}

// Wait blocks until background collections started by Questions finish.
func (c *Coordinator) Wait() {
	c.background.Wait()
}

// RequestReplenishment runs one collection for subject. It returns a
// skipped Result when a collection for the subject or a bulk pass is
// already running.
func (c *Coordinator) RequestReplenishment(ctx context.Context, subject string) Result {
	return c.collect(ctx, subject, false)
}

// BulkReplenish collects for every subject below the threshold
// concurrently. It returns nil when a bulk pass is already running.
// Individual failures never abort the other collections.
func (c *Coordinator) BulkReplenish(ctx context.Context) []Result {
	c.mu.Lock()
	if c.bulk {
		c.mu.Unlock()
		return nil
	}
	c.bulk = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.bulk = false
		c.mu.Unlock()
	}()

	var needy []string
	for _, subject := range c.bank.Subjects() {
		if c.NeedsMore(subject) {
			needy = append(needy, subject)
		}
	}

	c.logger.Info("bulk replenishment started", zap.Int("subjects", len(needy)))

	results := make([]Result, len(needy))
	var g errgroup.Group
	if c.cfg.BulkConcurrency > 0 {
		g.SetLimit(c.cfg.BulkConcurrency)
	}
	for i, subject := range needy {
		g.Go(func() error {
			results[i] = c.collect(ctx, subject, true)
			return nil
		})
	}
	_ = g.Wait()

	c.logger.Info("bulk replenishment completed", zap.Int("subjects", len(needy)))
	return results
}

// SubjectStats returns the status of a single subject.
func (c *Coordinator) SubjectStats(subject string) SubjectStats {
	st := SubjectStats{
		Count:      c.bank.Count(subject),
		Collecting: c.IsCollecting(subject),
	}
	st.NeedsMore = st.Count < c.cfg.Threshold
	if at, ok := c.bank.LastFailure(subject); ok {
		st.LastFailure = at
	}
	return st
}

// Stats returns the status of every known subject.
func (c *Coordinator) Stats() map[string]SubjectStats {
	subjects := c.bank.Subjects()
	out := make(map[string]SubjectStats, len(subjects))
	for _, subject := range subjects {
		out[subject] = c.SubjectStats(subject)
	}
	return out
}

func (c *Coordinator) begin(subject string, fromBulk bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.collecting[subject] || (c.bulk && !fromBulk) {
		return false
	}
	c.collecting[subject] = true
	return true
}

func (c *Coordinator) end(subject string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.collecting, subject)
}

func (c *Coordinator) collect(ctx context.Context, subject string, fromBulk bool) Result {
	res := Result{Subject: subject}
	if !c.begin(subject, fromBulk) {
		res.Skipped = true
		return res
	}
	defer c.end(subject)

	log := c.logger.With(zap.String("subject", subject))
	log.Debug("collecting questions")

	accepted, fetched, err := c.fetch(ctx, subject, log)
	res.Fetched = fetched
	res.Err = err

	if len(accepted) == 0 {
		accepted = Fallback(subject, c.cfg.FallbackLimit)
		res.UsedFallback = len(accepted) > 0
	}
	res.Accepted = len(accepted)

	// Results are applied even if the caller went away.
	writeCtx := context.WithoutCancel(ctx)
	res.Inserted = c.bank.Append(writeCtx, subject, accepted)

	if res.Inserted > 0 {
		c.bank.ClearFailure(writeCtx, subject)
		log.Info("questions added",
			zap.Int("inserted", res.Inserted),
			zap.Bool("fallback", res.UsedFallback))
		c.subs.emit(BankUpdated{Subject: subject, Inserted: res.Inserted})
	} else {
		c.bank.RecordFailure(writeCtx, subject, c.now())
		log.Warn("no new questions found", zap.Int("fetched", res.Fetched))
	}
	return res
}

func (c *Coordinator) fetch(ctx context.Context, subject string, log *zap.Logger) ([]bank.Question, int, error) {
	keywords := bank.Keywords(subject)

	var (
		accepted []bank.Question
		fetched  int
		errs     []error
	)
	for _, src := range c.sources {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		raws, err := c.fetchOne(ctx, src, keywords, subject)
		if err != nil {
			log.Warn("source failed", zap.String("source", src.Name()), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		fetched += len(raws)

		for _, raw := range raws {
			q, ok := toQuestion(raw, c.shuffle)
			if !ok {
				continue
			}
			if !c.filter.Accept(subject, q.Text) {
				continue
			}
			accepted = append(accepted, q)
		}

		if len(accepted) >= c.cfg.BatchSize {
			break
		}
	}

	if c.cfg.BatchSize > 0 && len(accepted) > c.cfg.BatchSize {
		accepted = accepted[:c.cfg.BatchSize]
	}
	return accepted, fetched, errors.Join(errs...)
}

func (c *Coordinator) fetchOne(ctx context.Context, src Source, keywords []string, subject string) ([]RawCandidate, error) {
	if c.cfg.SourceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.SourceTimeout)
		defer cancel()
	}
	return src.Fetch(ctx, keywords, subject)
}
