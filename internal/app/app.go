// Package app wires the screens together: setup → connecting →
// streaming → errored. Each screen accepts only its own messages, so an
// event arriving in the wrong state is simply not representable.
package app

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/elusive-m/online-filtering/internal/config"
	"github.com/elusive-m/online-filtering/internal/export"
	"github.com/elusive-m/online-filtering/internal/link"
	"github.com/elusive-m/online-filtering/internal/protocol"
	"github.com/elusive-m/online-filtering/internal/session"
	"github.com/elusive-m/online-filtering/internal/theme"
	"github.com/elusive-m/online-filtering/internal/views/graph"
	"github.com/elusive-m/online-filtering/internal/views/setup"
)

// screen identifies the active view.
type screen int

const (
	screenSetup screen = iota
	screenConnecting
	screenStreaming
	screenErrored
)

// Dialer opens the transport to the device. Injected so the app model
// can be driven in tests without hardware.
type Dialer func() (link.Link, error)

// connectedMsg carries everything produced off the UI loop by a
// successful connection: the handshaken link and the evaluated series.
type connectedMsg struct {
	link     link.Link
	interval float32
	times    []float32
	input    []float32
}

// connectFailedMsg reports a terminal connection failure.
type connectFailedMsg struct {
	err error
}

// tickMsg drives window recomputation and handle reclamation.
type tickMsg time.Time

// Model is the root Bubble Tea model.
type Model struct {
	cfg  *config.Config
	dial Dialer
	keys KeyMap

	screen screen
	width  int
	height int

	// Setup.
	setup setup.Model

	// Connecting.
	spin spinner.Model

	// Streaming. sess is non-nil exactly while this screen or its
	// terminal aftermath is shown.
	sess   *session.Session
	graph  graph.Model
	status string

	// Errored.
	connErr error
}

// New creates the root model.
func New(cfg *config.Config, dial Dialer) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorAccent)

	return Model{
		cfg:    cfg,
		dial:   dial,
		keys:   DefaultKeyMap(),
		screen: screenSetup,
		setup:  setup.New(),
		spin:   sp,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.setup.Width = size.Width
		m.setup.Height = size.Height
		m.graph.Width = size.Width
		m.graph.Height = size.Height
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Quit) {
		m.teardown()
		return m, tea.Quit
	}

	switch m.screen {
	case screenSetup:
		return m.updateSetup(msg)
	case screenConnecting:
		return m.updateConnecting(msg)
	case screenStreaming:
		return m.updateStreaming(msg)
	case screenErrored:
		return m.updateErrored(msg)
	}
	return m, nil
}

func (m Model) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Validate):
			m.setup = m.setup.Validate()
			return m, nil

		case key.Matches(k, m.keys.StopUp):
			m.setup = m.setup.AdjustStopTime(1)
			return m, nil

		case key.Matches(k, m.keys.StopDown):
			m.setup = m.setup.AdjustStopTime(-1)
			return m, nil

		case key.Matches(k, m.keys.Start):
			if !m.setup.Ready() {
				return m, nil
			}
			m.screen = screenConnecting
			return m, tea.Batch(m.spin.Tick, m.connectCmd())
		}
	}

	var cmd tea.Cmd
	m.setup, cmd = m.setup.Update(msg)
	return m, cmd
}

func (m Model) updateConnecting(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case connectedMsg:
		// The session and its series come to life together.
		m.sess = session.Start(msg.link, msg.interval, msg.times, msg.input)
		m.graph = graph.New(msg.times, msg.input, m.sess.Output(),
			m.cfg.UI.MinWindowSize, m.cfg.UI.StreamingLookback, m.cfg.UI.RefreshRate)
		m.graph.Width = m.width
		m.graph.Height = m.height
		m.status = ""
		m.screen = screenStreaming
		return m, m.tickCmd()

	case connectFailedMsg:
		m.connErr = msg.err
		m.screen = screenErrored
		return m, nil
	}
	return m, nil
}

func (m Model) updateStreaming(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.graph = m.graph.Tick()
		if m.sess.Poll() {
			// Both handles reclaimed; stop ticking.
			return m, nil
		}
		return m, m.tickCmd()

	case tea.KeyMsg:
		return m.handleStreamingKey(msg)
	}
	return m, nil
}

func (m Model) handleStreamingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleMode):
		m.graph = m.graph.ToggleMode()
		return m, nil

	case key.Matches(msg, m.keys.PanLeft):
		m.graph = m.graph.AdjustOffset(-m.panStep())
		return m, nil

	case key.Matches(msg, m.keys.PanRight):
		m.graph = m.graph.AdjustOffset(m.panStep())
		return m, nil

	case key.Matches(msg, m.keys.Grow):
		m.graph = m.graph.AdjustSize(m.panStep())
		return m, nil

	case key.Matches(msg, m.keys.Shrink):
		m.graph = m.graph.AdjustSize(-m.panStep())
		return m, nil

	case key.Matches(msg, m.keys.Finish):
		// Deliberate terminal action: cancel then join, blocking.
		m.sess.Finish()
		m.graph = m.graph.Tick()
		return m, nil

	case key.Matches(msg, m.keys.Export):
		if m.sess.Active() {
			m.status = "still streaming, finish before exporting"
			return m, nil
		}
		path := m.cfg.Export.Filename
		if err := export.Write(path, m.sess.Input(), m.sess.Output().Snapshot()); err != nil {
			log.Printf("export failed: %v", err)
			m.status = fmt.Sprintf("export failed: %v", err)
		} else {
			log.Printf("exported series to %s", path)
			m.status = "exported to " + path
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.teardown()
		m.sess = nil
		m.setup = setup.New()
		m.setup.Width = m.width
		m.setup.Height = m.height
		m.screen = screenSetup
		return m, nil
	}
	return m, nil
}

func (m Model) updateErrored(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(k, m.keys.Back) || key.Matches(k, m.keys.Validate) {
			m.connErr = nil
			m.setup = setup.New()
			m.setup.Width = m.width
			m.setup.Height = m.height
			m.screen = screenSetup
			return m, nil
		}
	}
	return m, nil
}

// connectCmd opens the transport, runs the handshake, and evaluates the
// waveform over the negotiated grid, all off the UI loop. Exactly one
// message comes back.
func (m Model) connectCmd() tea.Cmd {
	dial := m.dial
	cfg := m.cfg.Serial
	program := m.setup.Program()
	stopTime := m.setup.StopTime()

	return func() tea.Msg {
		l, err := dial()
		if err != nil {
			log.Printf("unable to establish connection: %v", err)
			return connectFailedMsg{err: err}
		}

		interval, err := protocol.Handshake(l, cfg)
		if err != nil {
			log.Printf("unable to establish connection: %v", err)
			l.Close()
			return connectFailedMsg{err: err}
		}
		log.Printf("sampling interval: %v", interval)

		times, input, err := program.Sample(stopTime, interval)
		if err != nil {
			log.Printf("waveform evaluation failed: %v", err)
			l.Close()
			return connectFailedMsg{err: err}
		}

		return connectedMsg{link: l, interval: interval, times: times, input: input}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.RefreshInterval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// panStep scales window adjustments so holding a key moves at a useful
// rate regardless of series length.
func (m Model) panStep() int {
	step := m.sess.Output().Len() / 50
	if step < 1 {
		step = 1
	}
	return step
}

// teardown drains and releases an active session, if any.
func (m *Model) teardown() {
	if m.sess == nil {
		return
	}
	m.sess.Finish()
	if err := m.sess.Close(); err != nil {
		log.Printf("close link: %v", err)
	}
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	switch m.screen {
	case screenSetup:
		return m.setup.View()

	case screenConnecting:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spin.View()+" Establishing connection...")

	case screenStreaming:
		return m.viewStreaming()

	case screenErrored:
		body := lipgloss.JoinVertical(lipgloss.Center,
			theme.StyleError.Render("Unable to connect"),
			theme.StyleDimmed.Render(m.connErr.Error()),
			"",
			theme.StyleDimmed.Render("esc/enter: back to setup"),
		)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return ""
}

func (m Model) viewStreaming() string {
	title := theme.StyleTitle.Render("Online filtering")

	var state string
	if m.sess.Active() {
		state = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("● streaming")
	} else {
		state = theme.StyleDimmed.Render("○ drained")
	}

	help := "f: finish  esc: back"
	if !m.sess.Active() {
		help = "e: export  esc: back"
	}

	lines := []string{
		title + "  " + state,
		m.graph.View(),
		theme.StyleDimmed.Render(help),
	}
	if m.status != "" {
		lines = append(lines, theme.StyleDimmed.Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
