// Package progress tracks answer totals, per-subject accuracy and
// bookmarks, persisted as a single document in a key-value store.
package progress

import (
	"context"
	"encoding/json"
	"maps"
	"math"
	"slices"
	"sync"

	"github.com/ashmilgit15/nursing-mcq-website/internal/store"
	"go.uber.org/zap"
)

// KeyStats is the key the progress document is stored under.
const KeyStats = "progress.stats"

// SubjectStat holds answer counts for one subject.
type SubjectStat struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// Accuracy returns the rounded percentage of correct answers.
func (s SubjectStat) Accuracy() int {
	return percent(s.Correct, s.Total)
}

// Record is the persisted progress document.
type Record struct {
	TotalQuestions int                    `json:"totalQuestions"`
	CorrectAnswers int                    `json:"correctAnswers"`
	SubjectStats   map[string]SubjectStat `json:"subjectStats"`
	Bookmarked     []string               `json:"bookmarkedQuestions"`
}

// Accuracy returns the rounded overall percentage of correct answers.
func (r Record) Accuracy() int {
	return percent(r.CorrectAnswers, r.TotalQuestions)
}

func percent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

func emptyRecord() Record {
	return Record{
		SubjectStats: make(map[string]SubjectStat),
		Bookmarked:   []string{},
	}
}

func (r Record) clone() Record {
	r.SubjectStats = maps.Clone(r.SubjectStats)
	r.Bookmarked = slices.Clone(r.Bookmarked)
	return r
}

// Store owns the progress record. Every mutation is persisted.
type Store struct {
	mu     sync.Mutex
	kv     store.KV
	logger *zap.Logger
	rec    Record
}

// New loads progress from kv, starting empty when nothing usable is stored.
func New(ctx context.Context, kv store.KV, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{kv: kv, logger: logger}
	s.rec = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) Record {
	raw, ok := s.kv.Get(ctx, KeyStats)
	if !ok {
		return emptyRecord()
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		s.logger.Warn("stored progress unreadable, starting fresh", zap.Error(err))
		return emptyRecord()
	}
	if rec.SubjectStats == nil {
		rec.SubjectStats = make(map[string]SubjectStat)
	}
	if rec.Bookmarked == nil {
		rec.Bookmarked = []string{}
	}
	return rec
}

func (s *Store) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.rec)
	if err != nil {
		s.logger.Error("encode progress", zap.Error(err))
		return
	}
	s.kv.Set(ctx, KeyStats, string(data))
}

// Snapshot returns a copy of the current record.
func (s *Store) Snapshot() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.clone()
}

// RecordAnswer counts one answer for subject.
func (s *Store) RecordAnswer(ctx context.Context, subject string, correct bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.rec.SubjectStats[subject]
	st.Total++
	s.rec.TotalQuestions++
	if correct {
		st.Correct++
		s.rec.CorrectAnswers++
	}
	s.rec.SubjectStats[subject] = st
	s.persistLocked(ctx)
}

// ToggleBookmark flips the bookmark for ref and reports whether it is now
// bookmarked.
func (s *Store) ToggleBookmark(ctx context.Context, ref QuestionRef) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := ref.String()
	if i := slices.Index(s.rec.Bookmarked, id); i >= 0 {
		s.rec.Bookmarked = slices.Delete(s.rec.Bookmarked, i, i+1)
		s.persistLocked(ctx)
		return false
	}
	s.rec.Bookmarked = append(s.rec.Bookmarked, id)
	s.persistLocked(ctx)
	return true
}

// IsBookmarked reports whether ref is bookmarked.
func (s *Store) IsBookmarked(ref QuestionRef) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.rec.Bookmarked, ref.String())
}

// RemoveBookmark removes ref from the bookmarks if present.
func (s *Store) RemoveBookmark(ctx context.Context, ref QuestionRef) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.rec.Bookmarked, ref.String())
	if i < 0 {
		return
	}
	s.rec.Bookmarked = slices.Delete(s.rec.Bookmarked, i, i+1)
	s.persistLocked(ctx)
}

// Bookmarks returns bookmarked refs in the order they were added.
// Unparseable entries are skipped.
func (s *Store) Bookmarks() []QuestionRef {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]QuestionRef, 0, len(s.rec.Bookmarked))
	for _, id := range s.rec.Bookmarked {
		ref, err := ParseRef(id)
		if err != nil {
			s.logger.Debug("skipping bookmark", zap.String("id", id), zap.Error(err))
			continue
		}
		out = append(out, ref)
	}
	return out
}

// Reload re-reads the record from the store.
func (s *Store) Reload(ctx context.Context) {
	rec := s.load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = rec
}

// Reset clears all progress and bookmarks.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec = emptyRecord()
	s.kv.Remove(ctx, KeyStats)
}
