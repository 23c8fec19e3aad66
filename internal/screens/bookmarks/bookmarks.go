// Package bookmarks implements the saved-question review screen.
package bookmarks

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ashmilgit15/nursing-mcq-website/internal/bank"
	"github.com/ashmilgit15/nursing-mcq-website/internal/progress"
	"github.com/ashmilgit15/nursing-mcq-website/internal/screen"
	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/components"
	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/layout"
	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/theme"
)

// BookmarksScreen lists bookmarked questions with their answers.
type BookmarksScreen struct {
	deps     screen.Deps
	refs     []progress.QuestionRef
	selected int
}

var _ screen.Screen = (*BookmarksScreen)(nil)
var _ screen.KeyHintProvider = (*BookmarksScreen)(nil)

// New creates the bookmarks screen.
func New(deps screen.Deps) *BookmarksScreen {
	s := &BookmarksScreen{deps: deps}
	s.reload()
	return s
}

func (s *BookmarksScreen) reload() {
	s.refs = nil
	if s.deps.Progress != nil {
		s.refs = s.deps.Progress.Bookmarks()
	}
	if s.selected >= len(s.refs) {
		s.selected = max(0, len(s.refs)-1)
	}
}

func (s *BookmarksScreen) Init() tea.Cmd {
	return nil
}

func (s *BookmarksScreen) Title() string {
	return "Bookmarks"
}

func (s *BookmarksScreen) KeyHints() []layout.KeyHint {
	if len(s.refs) == 0 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "D", Description: "Remove"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BookmarksScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.refs)-1 {
			s.selected++
		}
	case "d", "x", "delete", "backspace":
		if s.selected < len(s.refs) && s.deps.Progress != nil {
			s.deps.Progress.RemoveBookmark(context.Background(), s.refs[s.selected])
			s.reload()
		}
	}
	return s, nil
}

// lookup resolves a ref against the current bank. Refs go stale when a
// subject is reset.
func (s *BookmarksScreen) lookup(ref progress.QuestionRef) (bank.Question, bool) {
	return s.deps.Bank.At(ref.Subject, ref.Index)
}

func (s *BookmarksScreen) View(width, height int) string {
	if len(s.refs) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No bookmarks yet. Press B during a quiz to save a question."))
	}

	cw := components.ContentWidth(width)
	var list strings.Builder
	listRows := max(3, height/3)
	start := max(0, min(s.selected-listRows/2, len(s.refs)-listRows))
	for i := start; i < len(s.refs) && i < start+listRows; i++ {
		ref := s.refs[i]
		text := "(question no longer in bank)"
		if q, ok := s.lookup(ref); ok {
			text = q.Text
		}
		line := fmt.Sprintf("%s · %s", ref.Subject, truncate(text, cw-len(ref.Subject)-8))
		if i == s.selected {
			list.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			list.WriteString(theme.Unselected.Render("  " + line))
		}
		list.WriteString("\n")
	}

	detail := s.renderDetail(cw)
	header := theme.Dim.Render(fmt.Sprintf("%d saved", len(s.refs)))
	content := header + "\n\n" + list.String() + "\n" + components.Card(detail, cw)
	return lipgloss.NewStyle().Padding(0, 2).Render(content)
}

func (s *BookmarksScreen) renderDetail(cw int) string {
	ref := s.refs[s.selected]
	q, ok := s.lookup(ref)
	if !ok {
		return theme.Dim.Render(fmt.Sprintf("%s no longer exists. Press D to remove it.", ref))
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(cw - 4).Bold(true).Foreground(theme.Text).Render(q.Text))
	b.WriteString("\n\n")
	for i, opt := range q.Options {
		line := fmt.Sprintf("%d)  %s", i+1, opt)
		if i == q.CorrectIndex {
			b.WriteString(theme.Correct.Render(line + "  ✓"))
		} else {
			b.WriteString(theme.Dim.Render(line))
		}
		b.WriteString("\n")
	}
	if q.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(theme.Explanation.Width(cw - 4).Render(q.Explanation))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
