// Package quiz implements the question and round results screens.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/ashmilgit15/nursing-mcq-website/internal/router"
	"github.com/ashmilgit15/nursing-mcq-website/internal/screen"
	"github.com/ashmilgit15/nursing-mcq-website/internal/session"
	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/components"
	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/layout"
)

// QuizScreen serves the questions of one subject. All round state lives in
// the engine; the screen only renders it and forwards input.
type QuizScreen struct {
	deps    screen.Deps
	engine  *session.Engine
	keys    keyMap
	now     func() time.Time
	choices components.MultiChoice
	shown   string
	notice  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a quiz over subject with a freshly seeded engine.
func New(deps screen.Deps, subject string, opts ...session.Option) *QuizScreen {
	base := []session.Option{
		session.WithTimeLimit(deps.TimeLimit),
		session.WithLogger(deps.Log()),
	}
	if deps.Coordinator != nil {
		base = append(base, session.WithReplenisher(deps.Coordinator))
	}
	if deps.Progress != nil {
		base = append(base, session.WithRecorder(deps.Progress))
	}
	e := session.New(subject, deps.Bank, append(base, opts...)...)
	return Resume(deps, e)
}

// Resume creates a quiz screen over an existing engine.
func Resume(deps screen.Deps, e *session.Engine) *QuizScreen {
	s := &QuizScreen{
		deps:   deps,
		engine: e,
		keys:   defaultKeys(),
		now:    time.Now,
	}
	s.sync()
	return s
}

// Engine returns the session engine behind the screen.
func (s *QuizScreen) Engine() *session.Engine {
	return s.engine
}

func (s *QuizScreen) Init() tea.Cmd {
	coord := s.deps.Coordinator
	if coord == nil {
		return nil
	}
	subject := s.engine.Subject()
	return func() tea.Msg {
		coord.Questions(context.Background(), subject)
		return nil
	}
}

func (s *QuizScreen) Title() string {
	return s.engine.Subject()
}

func (s *QuizScreen) Status() string {
	correct, answered := s.engine.Score()
	return fmt.Sprintf("Q %d/%d   ✓ %d/%d",
		s.engine.Position()+1, session.RoundSize, correct, answered)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	v, ok := s.engine.Current()
	if !ok {
		return []layout.KeyHint{{Key: "Esc", Description: "Home"}}
	}
	hints := make([]layout.KeyHint, 0, 6)
	if v.Answer == nil {
		hints = append(hints, hint(s.keys.Choose))
	}
	hints = append(hints,
		hint(s.keys.Next),
		hint(s.keys.Prev),
		hint(s.keys.Bookmark),
		hint(s.keys.Restart),
		layout.KeyHint{Key: "Esc", Description: "Home"},
	)
	return hints
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.TickMsg:
		if s.engine.AdvanceIfExpired(time.Time(msg)) {
			s.notice = "Time's up"
			return s, s.afterMove()
		}
		return s, nil

	case screen.BankUpdatedMsg:
		if msg.Subject == s.engine.Subject() {
			s.notice = fmt.Sprintf("%d new questions added", msg.Inserted)
			s.sync()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	v, ok := s.engine.Current()
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(msg, s.keys.Bookmark):
		s.toggleBookmark(v)
		return s, nil
	case key.Matches(msg, s.keys.Restart):
		s.engine.Restart()
		s.notice = "Reshuffled"
		s.sync()
		return s, nil
	case key.Matches(msg, s.keys.Prev):
		s.engine.Retreat()
		s.notice = ""
		s.sync()
		return s, nil
	}

	if v.Answer == nil {
		var picked int
		s.choices, picked = s.choices.Update(msg)
		if picked >= 0 {
			s.submit(picked)
			return s, nil
		}
		if msg.String() == "enter" {
			return s, nil
		}
	}

	if key.Matches(msg, s.keys.Next) {
		s.engine.Advance()
		s.notice = ""
		return s, s.afterMove()
	}
	return s, nil
}

func (s *QuizScreen) submit(picked int) {
	a, err := s.engine.Submit(context.Background(), picked)
	switch {
	case errors.Is(err, session.ErrAlreadyAnswered):
	case err != nil:
		s.deps.Log().Warn("submit rejected", zap.Error(err))
		s.notice = err.Error()
	case a.Correct:
		s.notice = "Correct!"
	default:
		s.notice = "Incorrect"
	}
	s.sync()
}

func (s *QuizScreen) toggleBookmark(v session.View) {
	if s.deps.Progress == nil {
		return
	}
	if s.deps.Progress.ToggleBookmark(context.Background(), v.Ref) {
		s.notice = "Bookmarked"
	} else {
		s.notice = "Bookmark removed"
	}
}

// afterMove refreshes the view after the position changed and hands over
// to the results screen once the round is finished.
func (s *QuizScreen) afterMove() tea.Cmd {
	if s.engine.Phase() == session.PhaseFinished {
		result := NewResult(s.deps, s.engine)
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: result}
		}
	}
	s.sync()
	return nil
}

// sync rebuilds the choice list when the question under the cursor
// changed, which also happens when the bank grows and the order is
// recomputed.
func (s *QuizScreen) sync() {
	v, ok := s.engine.Current()
	if !ok {
		s.shown = ""
		s.choices = components.NewMultiChoice(nil)
		return
	}
	id := fmt.Sprintf("%d/%s", v.Position, v.Ref)
	answered := v.Answer != nil
	if id == s.shown && answered == s.choices.Revealed {
		return
	}
	s.shown = id
	s.choices = components.NewMultiChoice(v.Question.Options)
	if answered {
		s.choices = s.choices.Reveal(v.Answer.Picked, v.Question.CorrectIndex)
	}
}
