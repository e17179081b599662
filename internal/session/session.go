// Package session implements the streaming session engine: the shared
// receive buffer, the one-shot cancellation token, the transmit/receive
// worker pair, and the handle discipline that reclaims them.
package session

import (
	"github.com/elusive-m/online-filtering/internal/link"
)

// Session owns one connect → stream → (export) cycle with a single
// device: the immutable time/input series, the growing output buffer,
// the cancellation token, and — while the workers run — their handles.
type Session struct {
	link     link.Link
	interval float32
	time     []float32
	input    []float32
	output   *Buffer
	token    *Token

	// pair is nil once both workers have been reclaimed, so a drained
	// session structurally cannot hold stale handles.
	pair *Pair
}

// Start creates the session over an already-handshaken link and spawns
// the worker pair. time and input must be equal length; the output
// buffer is pre-sized to that length.
func Start(l link.Link, interval float32, time, input []float32) *Session {
	s := &Session{
		link:     l,
		interval: interval,
		time:     time,
		input:    input,
		output:   NewBuffer(len(input)),
		token:    &Token{},
	}
	s.pair = StartWorkers(l, input, s.token, s.output)
	return s
}

// Interval returns the sampling interval negotiated at handshake.
func (s *Session) Interval() float32 { return s.interval }

// Time returns the time series. Callers must not mutate it.
func (s *Session) Time() []float32 { return s.time }

// Input returns the generated input series. Callers must not mutate it.
func (s *Session) Input() []float32 { return s.input }

// Output returns the shared receive buffer.
func (s *Session) Output() *Buffer { return s.output }

// Active reports whether worker handles are still held.
func (s *Session) Active() bool { return s.pair != nil }

// Poll opportunistically reclaims the workers: if the receiver has
// finished, both handles are joined and dropped. The join is bounded by
// the link's short read timeout, so a periodic refresh can call this
// without freezing the UI. Returns true once the session is drained.
func (s *Session) Poll() bool {
	if s.pair == nil {
		return true
	}
	if !s.pair.ReceiverFinished() {
		return false
	}
	s.pair.Join()
	s.pair = nil
	return true
}

// Finish requests cancellation and blocks until both workers are
// reclaimed. Calling it again after the handles are gone performs no
// join and returns immediately.
func (s *Session) Finish() {
	if s.pair == nil {
		return
	}
	s.token.Cancel()
	s.pair.Join()
	s.pair = nil
}

// Close releases the link. The workers must have been reclaimed first.
func (s *Session) Close() error {
	return s.link.Close()
}
