package quiz

import (
	"charm.land/bubbles/v2/key"

	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/layout"
)

type keyMap struct {
	Choose   key.Binding
	Next     key.Binding
	Prev     key.Binding
	Bookmark key.Binding
	Restart  key.Binding
	Scroll   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Choose: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "Answer"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "n", "enter"),
			key.WithHelp("→", "Next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "p"),
			key.WithHelp("←", "Back"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("B", "Bookmark"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("R", "Reshuffle"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "k", "j"),
			key.WithHelp("↑↓", "Scroll"),
		),
	}
}

func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}
