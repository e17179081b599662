// Package window selects which index range of the sample series is
// visible. The two display modes are a closed union so that static
// parameters cannot leak into streaming display logic.
package window

// Mode is either Streaming or Static. The two implementations are the
// only members of the union.
type Mode interface {
	isMode()
}

// Streaming shows the most recent samples, trailing the receive buffer.
type Streaming struct{}

// Static pins the view to a user-adjustable slice of the series.
type Static struct {
	// Size is the number of points displayed.
	Size int
	// Offset is the window's distance from the first sample.
	Offset int
}

func (Streaming) isMode() {}
func (Static) isMode()    {}

// Bounds computes the visible index range [start, end] for the given
// mode over a series of total received samples. lookback is the number
// of trailing samples shown in streaming mode. total must be ≥ 1.
func Bounds(m Mode, total, lookback int) (start, end int) {
	switch m := m.(type) {
	case Streaming:
		start = total - min(total, lookback)
		end = total - 1
	case Static:
		start = min(m.Offset, total)
		end = min(start+m.Size, total-1)
	}
	return start, end
}

// Toggle switches between the two modes. Entering static mode starts
// from the smallest window at the origin; returning to streaming
// discards the static parameters.
func Toggle(m Mode, minSize int) Mode {
	if _, ok := m.(Streaming); ok {
		return Static{Size: minSize, Offset: 0}
	}
	return Streaming{}
}

// ClampStatic bounds a static window's parameters to the series: size
// within [minSize, total-1], offset within [0, total-1].
func ClampStatic(s Static, total, minSize int) Static {
	if s.Size < minSize {
		s.Size = minSize
	}
	if total > 0 && s.Size > total-1 {
		s.Size = max(minSize, total-1)
	}
	if s.Offset < 0 {
		s.Offset = 0
	}
	if total > 0 && s.Offset > total-1 {
		s.Offset = total - 1
	}
	return s
}
