// Package session implements the round state machine: deterministic
// shuffled rounds over a subject's question bank, answer recording and
// round transitions.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/ashmilgit15/nursing-mcq-website/internal/bank"
	"github.com/ashmilgit15/nursing-mcq-website/internal/progress"
	"github.com/ashmilgit15/nursing-mcq-website/internal/shuffle"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Bank is the read-only view of the question bank the engine needs.
type Bank interface {
	Count(subject string) int
	At(subject string, index int) (bank.Question, bool)
}

// Engine serves one subject in rounds of RoundSize positions. Question
// order is a permutation of the bank derived from the seed; it is recomputed
// whenever the bank length changes.
type Engine struct {
	subject     string
	bank        Bank
	replenisher Replenisher
	recorder    Recorder
	logger      *zap.Logger
	now         func() time.Time
	newSeed     func() uint32
	timeLimit   time.Duration
	id          string

	mu           sync.Mutex
	seed         uint32
	seedSet      bool
	order        []int
	orderLen     int
	roundStart   int
	pos          int
	answers      map[int]Answer
	phase        Phase
	timerStart   time.Time
	timerRunning bool
}

// New creates an engine for subject. Without WithSeed a fresh seed is drawn.
func New(subject string, b Bank, opts ...Option) *Engine {
	e := &Engine{
		subject:   subject,
		bank:      b,
		logger:    zap.NewNop(),
		now:       time.Now,
		newSeed:   shuffle.NewSeed,
		timeLimit: DefaultTimeLimit,
		id:        uuid.NewString(),
		answers:   make(map[int]Answer),
		orderLen:  -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if !e.seedSet {
		e.seed = e.newSeed()
	}
	e.startTimerLocked()

	e.logger.Debug("session started",
		zap.String("session_id", e.id),
		zap.String("subject", subject),
		zap.Uint32("seed", e.seed),
		zap.Int("round_start", e.roundStart))
	return e
}

// SessionID returns the unique id of this session.
func (e *Engine) SessionID() string { return e.id }

// Subject returns the subject being practiced.
func (e *Engine) Subject() string { return e.subject }

// Seed returns the current shuffle seed.
func (e *Engine) Seed() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seed
}

// RoundStart returns the offset of the current round within the order.
func (e *Engine) RoundStart() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.roundStart
}

// Position returns the zero-based position within the round.
func (e *Engine) Position() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pos
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// BankSize returns the current number of questions for the subject.
func (e *Engine) BankSize() int {
	return e.bank.Count(e.subject)
}

// Current returns the question at the current position. It reports false
// when the round is finished or the bank is empty.
func (e *Engine) Current() (View, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseActive {
		return View{}, false
	}
	return e.viewLocked(e.pos)
}

func (e *Engine) viewLocked(pos int) (View, bool) {
	idx, ok := e.resolveLocked(pos)
	if !ok {
		return View{}, false
	}
	q, ok := e.bank.At(e.subject, idx)
	if !ok {
		return View{}, false
	}

	v := View{
		Ref:      progress.QuestionRef{Subject: e.subject, Index: idx},
		Question: q,
		Position: pos,
	}
	if a, answered := e.answers[pos]; answered {
		v.Answer = &a
	}
	return v, true
}

// resolveLocked maps a round position to a bank index. Large banks walk
// disjoint blocks of the order, wrapping past the end; banks smaller than a
// round repeat their order.
func (e *Engine) resolveLocked(pos int) (int, bool) {
	n := e.ensureOrderLocked()
	if n == 0 {
		return 0, false
	}
	if n >= RoundSize {
		i := e.roundStart + pos
		if i >= n {
			i %= n
		}
		return e.order[i], true
	}
	return e.order[pos%n], true
}

func (e *Engine) ensureOrderLocked() int {
	n := e.bank.Count(e.subject)
	if n != e.orderLen {
		e.order = shuffle.Permute(n, e.seed)
		e.orderLen = n
	}
	return n
}

// Submit records picked as the answer for the current position and
// notifies the recorder. Each position accepts exactly one answer.
func (e *Engine) Submit(ctx context.Context, picked int) (Answer, error) {
	e.mu.Lock()
	if e.phase != PhaseActive {
		e.mu.Unlock()
		return Answer{}, ErrRoundFinished
	}
	v, ok := e.viewLocked(e.pos)
	if !ok {
		e.mu.Unlock()
		return Answer{}, ErrNoQuestion
	}
	if picked < 0 || picked >= len(v.Question.Options) {
		e.mu.Unlock()
		return Answer{}, ErrOptionOutOfRange
	}
	if v.Answer != nil {
		e.mu.Unlock()
		return Answer{}, ErrAlreadyAnswered
	}

	a := Answer{Picked: picked, Correct: v.Question.IsCorrect(picked)}
	e.answers[e.pos] = a
	e.timerRunning = false
	e.mu.Unlock()

	if e.recorder != nil {
		e.recorder.RecordAnswer(ctx, e.subject, a.Correct)
	}
	return a, nil
}

// Advance moves to the next position, or finishes the round after the
// last one. The timer restarts on unanswered positions.
func (e *Engine) Advance() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseActive {
		return e.phase
	}
	if e.pos+1 >= RoundSize {
		e.phase = PhaseFinished
		e.timerRunning = false
		return e.phase
	}
	e.pos++
	if _, answered := e.answers[e.pos]; !answered {
		e.startTimerLocked()
	} else {
		e.timerRunning = false
	}
	return e.phase
}

// Retreat moves to the previous position. The timer is not restarted and
// the recorded answer stays visible.
func (e *Engine) Retreat() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseActive || e.pos == 0 {
		return
	}
	e.pos--
	e.timerRunning = false
}

// StartNextRound begins the next round once the current one is finished.
// It waits for the replenisher, then moves to the next disjoint block of
// the order if one remains, or reshuffles with a fresh seed.
func (e *Engine) StartNextRound(ctx context.Context) error {
	if e.Phase() != PhaseFinished {
		return ErrRoundActive
	}

	if e.replenisher != nil {
		res := e.replenisher.RequestReplenishment(ctx, e.subject)
		e.logger.Debug("replenished before next round",
			zap.String("subject", e.subject),
			zap.Int("inserted", res.Inserted),
			zap.Bool("skipped", res.Skipped))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseFinished {
		return ErrRoundActive
	}

	n := e.ensureOrderLocked()
	next := e.roundStart + RoundSize
	if n >= RoundSize && next < len(e.order) {
		e.roundStart = next
	} else {
		e.reseedLocked()
	}
	e.resetRoundLocked()

	e.logger.Debug("next round",
		zap.String("subject", e.subject),
		zap.Uint32("seed", e.seed),
		zap.Int("round_start", e.roundStart))
	return nil
}

// Restart abandons the current round and starts over with a fresh seed.
// It never replenishes.
func (e *Engine) Restart() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reseedLocked()
	e.resetRoundLocked()
}

func (e *Engine) reseedLocked() {
	e.seed = e.newSeed()
	e.orderLen = -1
	e.ensureOrderLocked()
	e.roundStart = 0
}

func (e *Engine) resetRoundLocked() {
	e.pos = 0
	e.answers = make(map[int]Answer)
	e.phase = PhaseActive
	e.startTimerLocked()
}

// Score returns the number of correct answers and answered positions in
// the current round.
func (e *Engine) Score() (correct, answered int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, a := range e.answers {
		answered++
		if a.Correct {
			correct++
		}
	}
	return correct, answered
}

// Review returns every position of the round with its question and answer.
// It is empty when the bank is empty.
func (e *Engine) Review() []ReviewEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []ReviewEntry
	for pos := 0; pos < RoundSize; pos++ {
		v, ok := e.viewLocked(pos)
		if !ok {
			break
		}
		out = append(out, ReviewEntry{
			Position: pos,
			Ref:      v.Ref,
			Question: v.Question,
			Answer:   v.Answer,
		})
	}
	return out
}

func (e *Engine) startTimerLocked() {
	e.timerStart = e.now()
	e.timerRunning = e.timeLimit > 0
}

// TimeLimit returns the per-question time limit.
func (e *Engine) TimeLimit() time.Duration { return e.timeLimit }

// TimerRunning reports whether the question timer is counting down.
func (e *Engine) TimerRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timerRunning
}

// Remaining returns the time left on the question timer at now. A stopped
// timer reports zero.
func (e *Engine) Remaining(now time.Time) time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.timerRunning {
		return 0
	}
	left := e.timeLimit - now.Sub(e.timerStart)
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the running question timer has run out at now.
func (e *Engine) Expired(now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timerRunning && now.Sub(e.timerStart) >= e.timeLimit
}

// AdvanceIfExpired advances past an unanswered question whose timer ran
// out. It reports whether it advanced.
func (e *Engine) AdvanceIfExpired(now time.Time) bool {
	if !e.Expired(now) {
		return false
	}
	e.Advance()
	return true
}
