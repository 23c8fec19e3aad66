// Package bank owns the per-subject question banks: built-in seed data,
// deduplicating appends, reset-to-default and persistence through a
// key-value store.
package bank

import (
	"errors"
	"fmt"
	"strings"
)

// Source records where a question came from.
type Source string

const (
	SourceBuiltin  Source = "builtin"
	SourceFetched  Source = "fetched"
	SourceFallback Source = "fallback"
)

// Difficulty is an optional difficulty label.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps free-form labels onto a Difficulty. Unknown labels
// yield the empty value.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyMedium:
		return DifficultyMedium
	case DifficultyHard:
		return DifficultyHard
	}
	return ""
}

// Question is a single multiple-choice item. Questions are immutable once
// stored; identity is the normalized text within a subject.
type Question struct {
	Text         string     `json:"question"`
	Options      []string   `json:"options"`
	CorrectIndex int        `json:"answer"`
	Explanation  string     `json:"explanation,omitempty"`
	Source       Source     `json:"source,omitempty"`
	Difficulty   Difficulty `json:"difficulty,omitempty"`
}

var (
	ErrEmptyText      = errors.New("question text is empty")
	ErrTooFewOptions  = errors.New("question needs at least two options")
	ErrAnswerOutOfRng = errors.New("correct index out of range")
)

// Validate checks the question invariants.
func (q Question) Validate() error {
	if NormalizeText(q.Text) == "" {
		return ErrEmptyText
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewOptions, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: %d of %d", ErrAnswerOutOfRng, q.CorrectIndex, len(q.Options))
	}
	return nil
}

// Key returns the deduplication key.
func (q Question) Key() string {
	return NormalizeText(q.Text)
}

// IsCorrect reports whether option index picked is the correct answer.
func (q Question) IsCorrect(picked int) bool {
	return picked == q.CorrectIndex
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// Clone returns a deep copy.
func (q Question) Clone() Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}

// NormalizeText lowercases and trims question text.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
