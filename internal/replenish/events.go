package replenish

import "sync"

// BankUpdated is emitted after a replenishment inserted questions.
type BankUpdated struct {
	Subject  string
	Inserted int
}

type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(BankUpdated)
}

func (s *subscribers) add(fn func(BankUpdated)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fns == nil {
		s.fns = make(map[int]func(BankUpdated))
	}
	id := s.next
	s.next++
	s.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.fns, id)
		})
	}
}

func (s *subscribers) emit(ev BankUpdated) {
	s.mu.Lock()
	fns := make([]func(BankUpdated), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
