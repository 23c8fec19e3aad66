package bank

import (
	"context"
	"encoding/json"
	"maps"
	"time"

	"go.uber.org/zap"
)

// RecordFailure marks subject as having had a replenishment that inserted
// nothing.
func (s *Store) RecordFailure(ctx context.Context, subject string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[subject] = at
	s.persistFailuresLocked(ctx)
}

// ClearFailure removes the failure marker for subject, if any.
func (s *Store) ClearFailure(ctx context.Context, subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.failures[subject]; !ok {
		return
	}
	delete(s.failures, subject)
	s.persistFailuresLocked(ctx)
}

// Failures returns a copy of the failure markers.
func (s *Store) Failures() map[string]time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.failures)
}

// LastFailure returns the failure marker for subject.
func (s *Store) LastFailure(subject string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	at, ok := s.failures[subject]
	return at, ok
}

func (s *Store) persistFailuresLocked(ctx context.Context) {
	if len(s.failures) == 0 {
		s.kv.Remove(ctx, KeyFailedSubjects)
		return
	}

	stored := make(map[string]int64, len(s.failures))
	for subject, at := range s.failures {
		stored[subject] = at.UnixMilli()
	}
	data, err := json.Marshal(stored)
	if err != nil {
		s.logger.Error("encode failure markers", zap.Error(err))
		return
	}
	s.kv.Set(ctx, KeyFailedSubjects, string(data))
}
