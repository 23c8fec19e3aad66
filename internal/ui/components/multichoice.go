package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/theme"
)

// MultiChoice renders a question's options and tracks the cursor. It does
// not decide correctness; the owner reveals the answer with Reveal.
type MultiChoice struct {
	Options      []string
	Selected     int
	Revealed     bool
	CorrectIndex int
	ChosenIndex  int
}

// NewMultiChoice creates a selector with the cursor on the first option.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options:      options,
		CorrectIndex: -1,
		ChosenIndex:  -1,
	}
}

// Reveal marks chosen and correct so the view colors them.
func (m MultiChoice) Reveal(chosen, correct int) MultiChoice {
	m.Revealed = true
	m.ChosenIndex = chosen
	m.CorrectIndex = correct
	m.Selected = chosen
	return m
}

// Update moves the cursor. It returns the chosen option index when enter
// or a number key picks one, or -1.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, int) {
	if m.Revealed {
		return m, -1
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, -1
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		if len(m.Options) > 0 {
			return m, m.Selected
		}
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
			m.Selected = n - 1
			return m, n - 1
		}
	}
	return m, -1
}

// View renders the options, numbered from 1.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.Revealed && i == m.CorrectIndex:
			style = theme.Correct
			line += "  ✓"
		case m.Revealed && i == m.ChosenIndex:
			style = theme.Incorrect
			line += "  ✗"
		case m.Revealed:
			style = theme.Dim
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
