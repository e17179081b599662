// Package graph renders the live input/output chart. The visible slice
// of the series is chosen by the window selector; the vertical scale
// follows the data through a spring so it does not jump between ticks.
package graph

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/elusive-m/online-filtering/internal/session"
	"github.com/elusive-m/online-filtering/internal/theme"
	"github.com/elusive-m/online-filtering/internal/window"
)

const (
	yLabelWidth = 7
	chrome      = 6 // legend, mode line, axis, progress
)

// Model holds the chart state for one session.
type Model struct {
	times  []float32
	input  []float32
	output *session.Buffer

	mode      window.Mode
	minWindow int
	lookback  int

	Width  int
	Height int

	spring   harmonica.Spring
	scale    float64
	scaleVel float64

	bar progress.Model
}

// New creates a chart over the session's series.
func New(times, input []float32, output *session.Buffer, minWindow, lookback, fps int) Model {
	return Model{
		times:     times,
		input:     input,
		output:    output,
		mode:      window.Streaming{},
		minWindow: minWindow,
		lookback:  lookback,
		spring:    harmonica.NewSpring(harmonica.FPS(fps), 6.0, 0.9),
		scale:     1,
		bar:       progress.New(progress.WithDefaultGradient()),
	}
}

// Streaming reports whether the chart trails the receive buffer.
func (m Model) Streaming() bool {
	_, ok := m.mode.(window.Streaming)
	return ok
}

// ToggleMode switches between streaming and static display.
func (m Model) ToggleMode() Model {
	m.mode = window.Toggle(m.mode, m.minWindow)
	return m
}

// AdjustSize grows or shrinks a static window. No-op while streaming.
func (m Model) AdjustSize(delta int) Model {
	s, ok := m.mode.(window.Static)
	if !ok {
		return m
	}
	s.Size += delta
	m.mode = window.ClampStatic(s, m.output.Len(), m.minWindow)
	return m
}

// AdjustOffset pans a static window. No-op while streaming.
func (m Model) AdjustOffset(delta int) Model {
	s, ok := m.mode.(window.Static)
	if !ok {
		return m
	}
	s.Offset += delta
	m.mode = window.ClampStatic(s, m.output.Len(), m.minWindow)
	return m
}

// Tick advances the vertical-scale spring toward the current window's
// amplitude extent. Driven by the refresh ticker.
func (m Model) Tick() Model {
	target := m.targetScale()
	m.scale, m.scaleVel = m.spring.Update(m.scale, m.scaleVel, target)
	if m.scale < 1e-3 {
		m.scale = 1e-3
	}
	return m
}

// targetScale returns the largest amplitude visible in the current
// window, with a floor so a flat series still has a usable axis.
func (m Model) targetScale() float64 {
	snap := m.output.Snapshot()
	total := len(snap)
	if total == 0 {
		return 1
	}

	start, end := window.Bounds(m.mode, total, m.lookback)
	if start > end {
		return 1
	}

	peak := 0.0
	for i := start; i <= end && i < total; i++ {
		if v := abs(float64(m.input[i])); v > peak {
			peak = v
		}
		if v := abs(float64(snap[i])); v > peak {
			peak = v
		}
	}
	if peak < 0.5 {
		peak = 0.5
	}
	return peak * 1.1
}

// View renders the chart, legend, window controls, and progress bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}
	height := m.Height - chrome
	if height < 8 {
		height = 8
	}

	snap := m.output.Snapshot()
	total := len(snap)

	var chart string
	if total == 0 {
		chart = lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.StyleDimmed.Render("Waiting for samples..."))
	} else {
		chart = m.renderSeries(snap, width, height)
	}

	percent := 0.0
	if len(m.input) > 0 {
		percent = float64(total) / float64(len(m.input))
	}
	bar := m.bar
	bar.Width = width - 2

	return lipgloss.JoinVertical(lipgloss.Left,
		m.legend(),
		chart,
		m.modeLine(total),
		bar.ViewAs(percent),
	)
}

func (m Model) renderSeries(snap []float32, width, height int) string {
	total := len(snap)
	start, end := window.Bounds(m.mode, total, m.lookback)
	if start > end {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.StyleDimmed.Render("Window past end of data"))
	}

	cols := width - yLabelWidth
	if cols < 8 {
		cols = 8
	}

	scale := m.scale
	if scale <= 0 {
		scale = 1
	}

	// One sample index per column; a cell may hold the input marker, the
	// output marker, or both (output wins, it is drawn on top).
	const (
		empty = iota
		markInput
		markOutput
	)
	grid := make([][]byte, height)
	for r := range grid {
		grid[r] = make([]byte, cols)
	}

	span := end - start
	for c := 0; c < cols; c++ {
		idx := start
		if cols > 1 && span > 0 {
			idx = start + c*span/(cols-1)
		}
		if idx >= total {
			idx = total - 1
		}

		if r := rowFor(float64(m.input[idx]), scale, height); r >= 0 {
			grid[r][c] = markInput
		}
		if r := rowFor(float64(snap[idx]), scale, height); r >= 0 {
			grid[r][c] = markOutput
		}
	}

	rows := make([]string, height)
	for r := range grid {
		label := strings.Repeat(" ", yLabelWidth)
		switch r {
		case 0:
			label = fmt.Sprintf("%+6.2f ", scale)
		case height / 2:
			label = fmt.Sprintf("%+6.2f ", 0.0)
		case height - 1:
			label = fmt.Sprintf("%+6.2f ", -scale)
		}

		var b strings.Builder
		b.WriteString(theme.StyleDimmed.Render(label))
		run := func(mark byte, from, to int) {
			seg := strings.Repeat(cellRune(mark), to-from)
			switch mark {
			case markInput:
				b.WriteString(theme.StyleInput.Render(seg))
			case markOutput:
				b.WriteString(theme.StyleOutput.Render(seg))
			default:
				b.WriteString(seg)
			}
		}
		// Batch identical cells into one styled segment per run.
		segStart := 0
		for c := 1; c <= cols; c++ {
			if c == cols || grid[r][c] != grid[r][segStart] {
				run(grid[r][segStart], segStart, c)
				segStart = c
			}
		}
		rows[r] = b.String()
	}

	axis := fmt.Sprintf("%st = %.3fs%st = %.3fs",
		strings.Repeat(" ", yLabelWidth),
		m.times[start],
		strings.Repeat(" ", max(1, cols-22)),
		m.times[end])

	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(rows, "\n"),
		theme.StyleDimmed.Render(axis),
	)
}

func (m Model) legend() string {
	return theme.StyleInput.Render("── input") + "   " +
		theme.StyleOutput.Render("── output")
}

func (m Model) modeLine(total int) string {
	switch mode := m.mode.(type) {
	case window.Static:
		return theme.StyleDimmed.Render(fmt.Sprintf(
			"static  size=%d offset=%d of %d  [w] streaming  [h/l] offset  [+/-] size",
			mode.Size, mode.Offset, total))
	default:
		return theme.StyleDimmed.Render(fmt.Sprintf(
			"streaming  last %d samples  [w] static", m.lookback))
	}
}

// rowFor maps an amplitude in [-scale, scale] to a grid row, top row
// first. Out-of-range values are clipped to the edge rows.
func rowFor(v, scale float64, height int) int {
	norm := (v/scale + 1) / 2 // 0 at the bottom, 1 at the top
	r := int((1 - norm) * float64(height-1))
	if r < 0 {
		r = 0
	}
	if r > height-1 {
		r = height - 1
	}
	return r
}

func cellRune(mark byte) string {
	if mark == 0 {
		return " "
	}
	return "•"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
