package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/ashmilgit15/nursing-mcq-website/internal/bank"
	"github.com/ashmilgit15/nursing-mcq-website/internal/progress"
	"github.com/ashmilgit15/nursing-mcq-website/internal/replenish"
	"github.com/ashmilgit15/nursing-mcq-website/internal/router"
	"github.com/ashmilgit15/nursing-mcq-website/internal/screen"
	"github.com/ashmilgit15/nursing-mcq-website/internal/screens/home"
	"github.com/ashmilgit15/nursing-mcq-website/internal/ui/layout"
)

// bankEventBuffer bounds queued BankUpdated events; extra events are
// dropped because the screens re-read the bank on every event anyway.
const bankEventBuffer = 16

// Options wires the services into the TUI.
type Options struct {
	Bank        *bank.Store
	Coordinator *replenish.Coordinator
	Progress    *progress.Store
	Logger      *zap.Logger
	TimeLimit   time.Duration
	// BulkOnStart schedules one bulk collection BulkDelay after startup.
	BulkOnStart bool
	BulkDelay   time.Duration
}

type bankEventMsg replenish.BankUpdated

type bulkStartMsg struct{}

type bulkDoneMsg struct {
	Results []replenish.Result
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	logger *zap.Logger
	events chan replenish.BankUpdated
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	deps := screen.Deps{
		Bank:        opts.Bank,
		Coordinator: opts.Coordinator,
		Progress:    opts.Progress,
		Logger:      logger,
		TimeLimit:   opts.TimeLimit,
	}
	return AppModel{
		router: router.New(home.New(deps)),
		opts:   opts,
		logger: logger,
		events: make(chan replenish.BankUpdated, bankEventBuffer),
	}
}

// subscribe forwards coordinator events into the model's channel. It
// never blocks the collecting goroutine.
func (m AppModel) subscribe() func() {
	if m.opts.Coordinator == nil {
		return func() {}
	}
	return m.opts.Coordinator.Subscribe(func(ev replenish.BankUpdated) {
		select {
		case m.events <- ev:
		default:
			m.logger.Debug("dropping bank event", zap.String("subject", ev.Subject))
		}
	})
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tick(), waitForBankEvent(m.events)}
	if m.opts.BulkOnStart && m.opts.Coordinator != nil {
		cmds = append(cmds, tea.Tick(m.opts.BulkDelay, func(time.Time) tea.Msg {
			return bulkStartMsg{}
		}))
	}
	return tea.Batch(cmds...)
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return screen.TickMsg(t)
	})
}

func waitForBankEvent(ch <-chan replenish.BankUpdated) tea.Cmd {
	return func() tea.Msg {
		return bankEventMsg(<-ch)
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case screen.TickMsg:
		return m, tea.Batch(m.router.Update(msg), tick())

	case bankEventMsg:
		fwd := screen.BankUpdatedMsg{Subject: msg.Subject, Inserted: msg.Inserted}
		return m, tea.Batch(m.router.Update(fwd), waitForBankEvent(m.events))

	case bulkStartMsg:
		coord := m.opts.Coordinator
		return m, func() tea.Msg {
			return bulkDoneMsg{Results: coord.BulkReplenish(context.Background())}
		}

	case bulkDoneMsg:
		inserted := 0
		for _, r := range msg.Results {
			inserted += r.Inserted
		}
		m.logger.Info("startup collection finished",
			zap.Int("subjects", len(msg.Results)),
			zap.Int("inserted", inserted))
		return m, nil
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if frame := m.render(); frame != "" {
		v.SetContent(frame)
	}
	return v
}

// render composes header, active screen and footer. It returns "" until
// the terminal size is known.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		if hints := kp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := newAppModel(opts)
	unsubscribe := m.subscribe()
	defer unsubscribe()

	p := tea.NewProgram(m)
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
