// Package stats implements the progress overview screen.
package stats

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ashmilgit15/nursing-mcq-website/internal/screen"
	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/components"
	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/theme"
)

// StatsScreen shows overall and per-subject accuracy.
type StatsScreen struct {
	deps screen.Deps
}

var _ screen.Screen = (*StatsScreen)(nil)

// New creates the statistics screen.
func New(deps screen.Deps) *StatsScreen {
	return &StatsScreen{deps: deps}
}

func (s *StatsScreen) Init() tea.Cmd { return nil }

func (s *StatsScreen) Title() string { return "Statistics" }

func (s *StatsScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }

func (s *StatsScreen) View(width, height int) string {
	if s.deps.Progress == nil {
		return ""
	}
	rec := s.deps.Progress.Snapshot()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Your progress"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf(
		"Answered: %d    Correct: %d    Accuracy: %d%%    Bookmarks: %d",
		rec.TotalQuestions, rec.CorrectAnswers, rec.Accuracy(), len(rec.Bookmarked))))
	b.WriteString("\n\n")

	if rec.TotalQuestions == 0 {
		b.WriteString(theme.Hint.Render("Answer a few questions to see per-subject accuracy."))
		return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	}

	labelWidth := 0
	for _, subject := range s.deps.Bank.Subjects() {
		labelWidth = max(labelWidth, lipgloss.Width(subject))
	}
	for _, subject := range s.deps.Bank.Subjects() {
		st, ok := rec.SubjectStats[subject]
		if !ok || st.Total == 0 {
			continue
		}
		label := fmt.Sprintf("%-*s", labelWidth, subject)
		bar := components.NewRatioBar(label, st.Correct, st.Total, cw-12).View()
		b.WriteString(bar)
		b.WriteString(theme.Dim.Render(fmt.Sprintf("  %d/%d", st.Correct, st.Total)))
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
