package bank

import (
	"context"
	"encoding/json"
	"slices"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/ashmilgit15/nursing-mcq-website/internal/store"
	"go.uber.org/zap"
)

// Persisted key names.
const (
	KeyQuestions      = "bank.questions"
	KeyLastUpdate     = "bank.last_update"
	KeyFailedSubjects = "bank.failed_subjects"
)

// Store is the subject → questions mapping. It is safe for concurrent use;
// each mutation is a single read-modify-persist step under the write lock.
type Store struct {
	mu         sync.RWMutex
	kv         store.KV
	logger     *zap.Logger
	now        func() time.Time
	questions  map[string][]Question
	failures   map[string]time.Time
	lastUpdate time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for update stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New loads the bank from kv. Stored subjects override the builtin seeds;
// absent or unreadable data falls back to the seeds.
func New(ctx context.Context, kv store.KV, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		kv:     kv,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.questions = s.loadQuestions(ctx)
	s.failures = s.loadFailures(ctx)
	s.lastUpdate = s.loadLastUpdate(ctx)
	return s
}

func (s *Store) loadQuestions(ctx context.Context) map[string][]Question {
	questions := Builtin()

	raw, ok := s.kv.Get(ctx, KeyQuestions)
	if !ok {
		return questions
	}

	var stored map[string][]Question
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn("stored question bank unreadable, using builtin seeds", zap.Error(err))
		return questions
	}

	for subject, qs := range stored {
		valid := make([]Question, 0, len(qs))
		for _, q := range qs {
			if err := q.Validate(); err != nil {
				s.logger.Warn("dropping invalid stored question",
					zap.String("subject", subject), zap.Error(err))
				continue
			}
			if q.Source == "" {
				q.Source = SourceBuiltin
			}
			valid = append(valid, q)
		}
		questions[subject] = valid
	}
	return questions
}

func (s *Store) loadFailures(ctx context.Context) map[string]time.Time {
	failures := make(map[string]time.Time)

	raw, ok := s.kv.Get(ctx, KeyFailedSubjects)
	if !ok {
		return failures
	}

	var stored map[string]int64
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn("stored failure markers unreadable", zap.Error(err))
		return failures
	}
	for subject, ms := range stored {
		failures[subject] = time.UnixMilli(ms)
	}
	return failures
}

func (s *Store) loadLastUpdate(ctx context.Context) time.Time {
	raw, ok := s.kv.Get(ctx, KeyLastUpdate)
	if !ok {
		return time.Time{}
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.logger.Warn("stored last update unreadable", zap.String("value", raw))
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// GetAll returns a copy of the subject's questions. Unknown subjects yield
// an empty slice.
func (s *Store) GetAll(subject string) []Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	qs := s.questions[subject]
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}

// Count returns the number of questions stored for subject.
func (s *Store) Count(subject string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.questions[subject])
}

// At returns the question at index within subject.
func (s *Store) At(subject string, index int) (Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	qs := s.questions[subject]
	if index < 0 || index >= len(qs) {
		return Question{}, false
	}
	return qs[index].Clone(), true
}

// Append adds candidates whose normalized text is not yet present in the
// subject, including repeats inside candidates itself, and persists the
// result. Invalid candidates are dropped. It returns the number inserted.
func (s *Store) Append(ctx context.Context, subject string, candidates []Question) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.questions[subject]
	seen := make(map[string]struct{}, len(existing)+len(candidates))
	for _, q := range existing {
		seen[q.Key()] = struct{}{}
	}

	var added []Question
	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			s.logger.Debug("dropping invalid candidate",
				zap.String("subject", subject), zap.Error(err))
			continue
		}
		key := c.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		added = append(added, c.Clone())
	}

	if len(added) == 0 {
		return 0
	}

	s.questions[subject] = append(slices.Clip(existing), added...)
	s.persistLocked(ctx)
	return len(added)
}

// ResetToDefault restores the builtin seeds for the named subjects, or for
// the whole bank when none are named, and clears their failure markers.
// Non-builtin subjects are removed by a reset.
func (s *Store) ResetToDefault(ctx context.Context, subjects ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(subjects) == 0 {
		s.questions = Builtin()
		s.failures = make(map[string]time.Time)
		s.persistLocked(ctx)
		s.persistFailuresLocked(ctx)
		return
	}

	for _, subject := range subjects {
		if IsBuiltinSubject(subject) {
			s.questions[subject] = builtinFor(subject)
		} else {
			delete(s.questions, subject)
		}
		delete(s.failures, subject)
	}
	s.persistLocked(ctx)
	s.persistFailuresLocked(ctx)
}

// Subjects lists builtin subjects in display order followed by any other
// stored subjects sorted by name.
func (s *Store) Subjects() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := BuiltinSubjects()
	var extra []string
	for subject := range s.questions {
		if !IsBuiltinSubject(subject) {
			extra = append(extra, subject)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// LastUpdate returns when the bank was last persisted, or the zero time.
func (s *Store) LastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}

func (s *Store) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.questions)
	if err != nil {
		s.logger.Error("encode question bank", zap.Error(err))
		return
	}
	s.lastUpdate = s.now()
	s.kv.Set(ctx, KeyQuestions, string(data))
	s.kv.Set(ctx, KeyLastUpdate, strconv.FormatInt(s.lastUpdate.UnixMilli(), 10))
}
