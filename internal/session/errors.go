package session

import "errors"

// Submit and StartNextRound rejections. These are the only errors callers
// of the engine need to handle.
var (
	ErrRoundFinished    = errors.New("round is finished")
	ErrNoQuestion       = errors.New("no question available")
	ErrOptionOutOfRange = errors.New("option index out of range")
	ErrAlreadyAnswered  = errors.New("position already answered")
	ErrRoundActive      = errors.New("round is still active")
)
