package progress

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// QuestionRef identifies a question by subject and bank index. Refs are
// positional: they stay valid because banks only grow, except on reset.
type QuestionRef struct {
	Subject string
	Index   int
}

// String formats the ref as "Subject-Index".
func (r QuestionRef) String() string {
	return r.Subject + "-" + strconv.Itoa(r.Index)
}

var ErrInvalidRef = errors.New("invalid question ref")

// ParseRef parses a "Subject-Index" ref. Subjects may themselves contain
// hyphens, so the split is on the last one.
func ParseRef(s string) (QuestionRef, error) {
	i := strings.LastIndex(s, "-")
	if i <= 0 || i == len(s)-1 {
		return QuestionRef{}, fmt.Errorf("%w: %q", ErrInvalidRef, s)
	}
	idx, err := strconv.Atoi(s[i+1:])
	if err != nil || idx < 0 {
		return QuestionRef{}, fmt.Errorf("%w: %q", ErrInvalidRef, s)
	}
	return QuestionRef{Subject: s[:i], Index: idx}, nil
}
