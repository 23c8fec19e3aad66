package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ashmilgit15/nursing-mcq-website/internal/router"
	"github.com/ashmilgit15/nursing-mcq-website/internal/screen"
	"github.com/ashmilgit15/nursing-mcq-website/internal/screens/bookmarks"
	"github.com/ashmilgit15/nursing-mcq-website/internal/screens/quiz"
	"github.com/ashmilgit15/nursing-mcq-website/internal/screens/stats"
	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/components"
	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/layout"
	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/theme"
)

// HomeScreen lists the subjects with their collection status.
type HomeScreen struct {
	deps     screen.Deps
	subjects []string
	menu     components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.StatusProvider = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps screen.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.refresh()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Subjects"
}

func (h *HomeScreen) Status() string {
	if h.deps.Progress == nil {
		return ""
	}
	rec := h.deps.Progress.Snapshot()
	if rec.TotalQuestions == 0 {
		return ""
	}
	return fmt.Sprintf("%d answered · %d%%", rec.TotalQuestions, rec.Accuracy())
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case screen.TickMsg, screen.BankUpdatedMsg:
		h.refresh()
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// refresh rebuilds the menu from the bank, keeping the cursor.
func (h *HomeScreen) refresh() {
	selected := h.menu.Selected
	h.subjects = h.deps.Bank.Subjects()

	items := make([]components.MenuItem, 0, len(h.subjects)+3)
	for _, subject := range h.subjects {
		items = append(items, components.MenuItem{
			Label:  subject,
			Detail: h.subjectDetail(subject),
			Action: push(func() screen.Screen { return quiz.New(h.deps, subject) }),
		})
	}
	items = append(items,
		components.MenuItem{
			Label:  "Bookmarks",
			Detail: h.bookmarkDetail(),
			Action: push(func() screen.Screen { return bookmarks.New(h.deps) }),
		},
		components.MenuItem{
			Label:  "Statistics",
			Action: push(func() screen.Screen { return stats.New(h.deps) }),
		},
		components.MenuItem{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)

	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) subjectDetail(subject string) string {
	coord := h.deps.Coordinator
	if coord == nil {
		return fmt.Sprintf("%d questions", h.deps.Bank.Count(subject))
	}
	st := coord.SubjectStats(subject)
	parts := []string{fmt.Sprintf("%d questions", st.Count)}
	switch {
	case st.Collecting:
		parts = append(parts, theme.BadgeCollecting.Render("collecting…"))
	case st.NeedsMore:
		parts = append(parts, theme.BadgeLow.Render("needs more"))
	}
	if !st.LastFailure.IsZero() && !st.Collecting {
		parts = append(parts, theme.Dim.Render("last fetch failed "+st.LastFailure.Format("Jan 2 15:04")))
	}
	return strings.Join(parts, " · ")
}

func (h *HomeScreen) bookmarkDetail() string {
	if h.deps.Progress == nil {
		return ""
	}
	n := len(h.deps.Progress.Bookmarks())
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d saved", n)
}

func push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s := build()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Choose a subject to practice")

	menu := scrollWindow(h.menu.View(), h.menu.Selected, height-4)

	content := title + "\n\n" + components.Card(menu, cw)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

// scrollWindow keeps the selected line visible when the menu is taller
// than rows.
func scrollWindow(menu string, selected, rows int) string {
	lines := strings.Split(strings.TrimRight(menu, "\n"), "\n")
	if rows <= 0 || len(lines) <= rows {
		return strings.Join(lines, "\n")
	}
	start := selected - rows/2
	start = max(0, min(start, len(lines)-rows))
	return strings.Join(lines[start:start+rows], "\n")
}
