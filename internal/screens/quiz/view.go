package quiz

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/ashmilgit15/nursing-mcq-website/internal/session"
	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/components"
	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	v, ok := s.engine.Current()
	if !ok {
		return s.renderEmpty(width, height)
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(s.renderInfoLine(v, cw))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(v.Question.Text))
	b.WriteString("\n\n")
	b.WriteString(s.choices.View())

	if v.Answer != nil {
		b.WriteString("\n")
		b.WriteString(renderVerdict(v))
		if v.Question.Explanation != "" {
			b.WriteString("\n")
			b.WriteString(theme.Explanation.Width(cw).Render(v.Question.Explanation))
		}
		b.WriteString("\n")
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(s.notice))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(b.String())
}

func (s *QuizScreen) renderInfoLine(v session.View, cw int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Question %d of %d", v.Position+1, session.RoundSize))

	var parts []string
	if s.deps.Progress != nil && s.deps.Progress.IsBookmarked(v.Ref) {
		parts = append(parts, theme.BadgeBookmark.Render("★ saved"))
	}
	parts = append(parts, theme.Dim.Render(fmt.Sprintf("bank %d", s.engine.BankSize())))
	if s.engine.TimerRunning() {
		parts = append(parts, renderTimer(s.engine.Remaining(s.now()), s.engine.TimeLimit()))
	}
	right := strings.Join(parts, "   ")

	pad := cw - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func renderTimer(left, limit time.Duration) string {
	secs := int(left.Round(time.Second) / time.Second)
	style := lipgloss.NewStyle().Foreground(theme.Accent)
	if limit > 0 && left <= limit/6 {
		style = style.Foreground(theme.Error).Bold(true)
	}
	return style.Render(fmt.Sprintf("⏱ %d:%02d", secs/60, secs%60))
}

func renderVerdict(v session.View) string {
	if v.Answer.Correct {
		return theme.Correct.Render("Correct!")
	}
	return theme.Incorrect.Render("Incorrect.") + " " +
		theme.Body.Render("Answer: "+v.Question.CorrectOption())
}

func (s *QuizScreen) renderEmpty(width, height int) string {
	subject := s.engine.Subject()
	msg := fmt.Sprintf("No questions for %s yet.", subject)
	sub := "Press Esc to go back."
	if s.deps.Coordinator != nil && s.deps.Coordinator.IsCollecting(subject) {
		sub = "Collecting questions, this screen updates when they arrive."
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Body.Render(msg)+"\n\n"+theme.Hint.Render(sub))
}
