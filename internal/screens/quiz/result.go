package quiz

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/ashmilgit15/nursing-mcq-website/internal/router"
	"github.com/ashmilgit15/nursing-mcq-website/internal/screen"
	"github.com/ashmilgit15/nursing-mcq-website/internal/session"
	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/components"
	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/layout"
	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/theme"
)

// ResultScreen shows the score and review of a finished round.
type ResultScreen struct {
	deps      screen.Deps
	engine    *session.Engine
	summary   session.Summary
	review    []session.ReviewEntry
	keys      keyMap
	offset    int
	preparing bool
	errMsg    string
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// NewResult snapshots the finished round of e.
func NewResult(deps screen.Deps, e *session.Engine) *ResultScreen {
	return &ResultScreen{
		deps:    deps,
		engine:  e,
		summary: session.BuildSummary(e),
		review:  e.Review(),
		keys:    defaultKeys(),
	}
}

func (r *ResultScreen) Init() tea.Cmd {
	r.deps.Log().Info("round finished",
		zap.String("session_id", r.engine.SessionID()),
		zap.String("subject", r.summary.Subject),
		zap.Int("correct", r.summary.Correct),
		zap.Int("answered", r.summary.Answered))
	return nil
}

func (r *ResultScreen) Title() string {
	return "Round Results"
}

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	if r.preparing {
		return []layout.KeyHint{{Key: "Esc", Description: "Home"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next round"},
		hint(r.keys.Restart),
		hint(r.keys.Scroll),
		{Key: "Esc", Description: "Home"},
	}
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case nextRoundMsg:
		r.preparing = false
		if msg.Err != nil {
			r.errMsg = msg.Err.Error()
			return r, nil
		}
		next := Resume(r.deps, r.engine)
		return r, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyMsg:
		if r.preparing {
			return r, nil
		}
		switch {
		case key.Matches(msg, r.keys.Next):
			r.preparing = true
			r.errMsg = ""
			e := r.engine
			return r, func() tea.Msg {
				return nextRoundMsg{Err: e.StartNextRound(context.Background())}
			}
		case key.Matches(msg, r.keys.Restart):
			r.engine.Restart()
			next := Resume(r.deps, r.engine)
			return r, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		case msg.String() == "up" || msg.String() == "k":
			if r.offset > 0 {
				r.offset--
			}
		case msg.String() == "down" || msg.String() == "j":
			if r.offset < len(r.review)-1 {
				r.offset++
			}
		}
	}
	return r, nil
}

func (r *ResultScreen) View(width, height int) string {
	sum := r.summary
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(components.Center(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Round complete!"), width))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Answered: %d of %d        Correct: %d        Accuracy: %.0f%%",
		sum.Answered, sum.Total, sum.Correct, sum.Accuracy*100)
	b.WriteString(components.Center(theme.Body.Render(stats), width))
	b.WriteString("\n")
	b.WriteString(components.Center(
		components.NewRatioBar("Score", sum.Correct, sum.Total, min(cw, 60)).View(), width))
	b.WriteString("\n\n")

	switch {
	case r.preparing:
		b.WriteString(components.Center(theme.Hint.Render("Preparing the next round..."), width))
		b.WriteString("\n\n")
	case r.errMsg != "":
		b.WriteString(components.Center(theme.Incorrect.Render(r.errMsg), width))
		b.WriteString("\n\n")
	}

	used := lipgloss.Height(b.String())
	b.WriteString(r.renderReview(cw, height-used-1))

	return lipgloss.NewStyle().Width(width).Padding(0, 2).Render(b.String())
}

// renderReview lists answered positions, starting at the scroll offset.
func (r *ResultScreen) renderReview(cw, rows int) string {
	if rows <= 0 {
		return ""
	}
	var lines []string
	for _, entry := range r.review[min(r.offset, len(r.review)):] {
		if len(lines) >= rows {
			break
		}
		lines = append(lines, reviewLine(entry, cw))
	}
	return strings.Join(lines, "\n")
}

func reviewLine(e session.ReviewEntry, cw int) string {
	text := truncate(e.Question.Text, cw-8)
	switch {
	case e.Answer == nil:
		return theme.Dim.Render(fmt.Sprintf("  · %2d. %s", e.Position+1, text))
	case e.Answer.Correct:
		return theme.Correct.Render(fmt.Sprintf("  ✓ %2d. ", e.Position+1)) + theme.Body.Render(text)
	default:
		return theme.Incorrect.Render(fmt.Sprintf("  ✗ %2d. ", e.Position+1)) + theme.Body.Render(text) +
			"\n" + theme.Dim.Render("        → "+truncate(e.Question.CorrectOption(), cw-10))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
