package screen

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show a short
// status in the right side of the header.
type StatusProvider interface {
	Status() string
}

// TickMsg is broadcast by the app once per second.
type TickMsg time.Time

// BankUpdatedMsg is delivered to the active screen after a collection
// added questions to a subject.
type BankUpdatedMsg struct {
	Subject  string
	Inserted int
}
