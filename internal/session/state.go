package session

import (
	"github.com/ashmilgit15/nursing-mcq-website/internal/bank"
	"github.com/ashmilgit15/nursing-mcq-website/internal/progress"
)

// RoundSize is the number of positions in a round.
const RoundSize = 50

// Phase represents the current phase of a round.
type Phase int

const (
	PhaseActive   Phase = iota // Serving questions
	PhaseFinished              // Round complete, showing results
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// Answer is the recorded answer for one position of a round.
type Answer struct {
	Picked  int
	Correct bool
}

// View is everything a renderer needs for the current position.
type View struct {
	Ref      progress.QuestionRef
	Question bank.Question
	// Position is the zero-based position within the round.
	Position int
	// Answer is nil until the position has been answered.
	Answer *Answer
}

// ReviewEntry pairs a round position with its question and answer.
type ReviewEntry struct {
	Position int
	Ref      progress.QuestionRef
	Question bank.Question
	Answer   *Answer
}
