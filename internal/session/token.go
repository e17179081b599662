package session

import "sync/atomic"

// Token is the one-shot cancellation flag shared between the UI and the
// transmitter. It transitions false→true at most once and is never reset.
// The receiver is deliberately not wired to it; reception drains via the
// sentinel echoed by the device, or its read timeout.
type Token struct {
	cancelled atomic.Bool
}

// Cancel requests early termination of the transmission.
func (t *Token) Cancel() {
	t.cancelled.Store(true)
}

// Cancelled reports whether cancellation has been requested.
func (t *Token) Cancelled() bool {
	return t.cancelled.Load()
}
