package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "one"},
		{Label: "two", Disabled: true},
		{Label: "three"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(press('k'))
	if m.Selected != 1 {
		t.Errorf("after k = %d, want 1", m.Selected)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !ran {
		t.Error("expected action to run on enter")
	}
}

func TestMenuViewShowsDetail(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Nutrition", Detail: "12 questions"}})
	v := m.View()
	if !strings.Contains(v, "Nutrition") || !strings.Contains(v, "12 questions") {
		t.Errorf("view = %q", v)
	}
}

func TestMultiChoiceNumberKeys(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b", "c", "d", "e"})

	mc, picked := mc.Update(press('5'))
	if picked != 4 {
		t.Errorf("picked = %d, want 4", picked)
	}
	if mc.Selected != 4 {
		t.Errorf("selected = %d, want 4", mc.Selected)
	}

	_, picked = mc.Update(press('6'))
	if picked != -1 {
		t.Errorf("out-of-range key picked %d", picked)
	}
}

func TestMultiChoiceArrowsAndEnter(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b", "c"})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, picked := mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != 2 {
		t.Errorf("picked = %d, want 2", picked)
	}
}

func TestMultiChoiceRevealedIgnoresKeys(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b"}).Reveal(1, 0)
	_, picked := mc.Update(press('1'))
	if picked != -1 {
		t.Errorf("revealed choice accepted key, picked %d", picked)
	}
	v := mc.View()
	if !strings.Contains(v, "✓") || !strings.Contains(v, "✗") {
		t.Errorf("revealed view lacks marks: %q", v)
	}
}

func TestProgressBarClamps(t *testing.T) {
	p := NewProgressBar("", 1.5, true, 20)
	if !strings.Contains(p.View(), "100%") {
		t.Errorf("expected clamped label, got %q", p.View())
	}

	r := NewRatioBar("Round", 1, 3, 30)
	if !strings.Contains(r.View(), "33%") {
		t.Errorf("ratio label = %q", r.View())
	}
}
