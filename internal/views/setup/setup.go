// Package setup implements the waveform entry screen: the f(t)
// expression, its validity flag, and the stop time.
package setup

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/elusive-m/online-filtering/internal/theme"
	"github.com/elusive-m/online-filtering/internal/wave"
)

const (
	minStopTime  = 1.0
	maxStopTime  = 30.0
	stopTimeStep = 0.5
)

// Model holds the setup screen state.
type Model struct {
	expr textinput.Model

	// program is non-nil only while the current text has been validated.
	program *wave.Program
	exprErr error

	stopTime float32

	Width  int
	Height int
}

// New creates the setup screen.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "sin(2 * pi * t)"
	ti.Prompt = "f(t) = "
	ti.Focus()

	return Model{
		expr:     ti,
		stopTime: minStopTime,
	}
}

// Program returns the validated waveform, or nil when the expression has
// not been accepted yet.
func (m Model) Program() *wave.Program { return m.program }

// StopTime returns the selected simulation length in seconds.
func (m Model) StopTime() float32 { return m.stopTime }

// Ready reports whether streaming may begin.
func (m Model) Ready() bool { return m.program != nil }

// Validate compiles the current expression and updates the validity
// flag. An invalid expression blocks progression to streaming.
func (m Model) Validate() Model {
	p, err := wave.Compile(m.expr.Value())
	if err != nil {
		m.program = nil
		m.exprErr = err
		return m
	}
	m.program = p
	m.exprErr = nil
	return m
}

// AdjustStopTime steps the stop time by delta half-second increments,
// clamped to [1, 30] seconds.
func (m Model) AdjustStopTime(delta int) Model {
	m.stopTime += float32(delta) * stopTimeStep
	if m.stopTime < minStopTime {
		m.stopTime = minStopTime
	}
	if m.stopTime > maxStopTime {
		m.stopTime = maxStopTime
	}
	return m
}

// Update feeds key input to the expression editor. Any edit invalidates
// the previous validation.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	before := m.expr.Value()
	var cmd tea.Cmd
	m.expr, cmd = m.expr.Update(msg)
	if m.expr.Value() != before {
		m.program = nil
		m.exprErr = nil
	}
	return m, cmd
}

// View renders the setup screen.
func (m Model) View() string {
	title := theme.StyleTitle.Render("Online filtering")

	var validity string
	switch {
	case m.program != nil:
		validity = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("✓ expression accepted")
	case m.exprErr != nil:
		validity = theme.StyleError.Render("✗ " + m.exprErr.Error())
	default:
		validity = theme.StyleDimmed.Render("enter to validate")
	}

	stop := fmt.Sprintf("Stop time: %.2fs  %s", m.stopTime,
		theme.StyleDimmed.Render("[↑/↓ to adjust]"))

	var start string
	if m.Ready() {
		start = theme.StyleHeader.Render("ctrl+s: start filtering")
	} else {
		start = theme.StyleDimmed.Render("ctrl+s: start filtering (validate first)")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.expr.View(),
		validity,
		"",
		stop,
		"",
		start,
		theme.StyleDimmed.Render("ctrl+c: quit"),
	)

	return theme.StyleBorder.Render(body)
}
