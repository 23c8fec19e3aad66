// Package replenish tops up question banks from external sources when a
// subject runs low.
package replenish

import (
	"context"
	"strings"

	"github.com/ashmilgit15/nursing-mcq-website/internal/bank"
)

// RawCandidate is an unvalidated question as returned by a Source.
type RawCandidate struct {
	Question      string
	Options       []string
	CorrectAnswer string
	Explanation   string
	Difficulty    string
}

// Source fetches raw question candidates for a subject.
type Source interface {
	Name() string
	Fetch(ctx context.Context, keywords []string, subject string) ([]RawCandidate, error)
}

// ShuffleFunc permutes n elements through swap, matching rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

// toQuestion shuffles the candidate's options and locates the correct answer
// among them. Candidates whose correct answer is missing from the options,
// or that otherwise fail validation, are rejected.
func toQuestion(raw RawCandidate, shuffle ShuffleFunc) (bank.Question, bool) {
	options := make([]string, 0, len(raw.Options))
	for _, o := range raw.Options {
		options = append(options, strings.TrimSpace(o))
	}
	shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correct := strings.TrimSpace(raw.CorrectAnswer)
	idx := -1
	for i, o := range options {
		if o == correct {
			idx = i
			break
		}
	}
	if idx < 0 || correct == "" {
		return bank.Question{}, false
	}

	q := bank.Question{
		Text:         strings.TrimSpace(raw.Question),
		Options:      options,
		CorrectIndex: idx,
		Explanation:  strings.TrimSpace(raw.Explanation),
		Source:       bank.SourceFetched,
		Difficulty:   bank.ParseDifficulty(raw.Difficulty),
	}
	if q.Validate() != nil {
		return bank.Question{}, false
	}
	return q, true
}
