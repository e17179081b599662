package session

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/elusive-m/online-filtering/internal/protocol"
)

// echoLink emulates the filter device in-memory: every payload frame the
// host writes comes back through Read transformed by apply, and the
// sentinel is echoed as-is, exactly like the firmware does before
// resetting. Reads time out like a real port.
type echoLink struct {
	mu       sync.Mutex
	wbuf     []byte                     // partial frame assembly
	frames   [][protocol.FrameSize]byte // every complete frame the host sent
	failTxAt int                        // payload writes fail from this count on; -1 disables
	apply    func(float32) float32      // the simulated filter

	out      chan [protocol.FrameSize]byte
	leftover []byte
	timeout  time.Duration
}

func newEchoLink(capacity int, apply func(float32) float32) *echoLink {
	return &echoLink{
		failTxAt: -1,
		apply:    apply,
		out:      make(chan [protocol.FrameSize]byte, capacity+1),
		timeout:  50 * time.Millisecond,
	}
}

func (l *echoLink) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.wbuf = append(l.wbuf, p...)
	for len(l.wbuf) >= protocol.FrameSize {
		var frame [protocol.FrameSize]byte
		copy(frame[:], l.wbuf[:protocol.FrameSize])
		l.wbuf = l.wbuf[protocol.FrameSize:]
		l.frames = append(l.frames, frame)

		if l.failTxAt >= 0 && len(l.frames) > l.failTxAt && !protocol.IsSentinel(frame) {
			return 0, errors.New("device unplugged")
		}

		// A nil apply models a mute device: nothing comes back, not
		// even the sentinel echo.
		if l.apply == nil {
			continue
		}
		if protocol.IsSentinel(frame) {
			l.out <- protocol.Sentinel()
		} else {
			l.out <- protocol.EncodeSample(l.apply(protocol.DecodeSample(frame)))
		}
	}
	return len(p), nil
}

func (l *echoLink) Read(p []byte) (int, error) {
	if len(l.leftover) == 0 {
		select {
		case frame := <-l.out:
			l.leftover = append(l.leftover, frame[:]...)
		case <-time.After(l.timeout):
			return 0, os.ErrDeadlineExceeded
		}
	}
	n := copy(p, l.leftover)
	l.leftover = l.leftover[n:]
	return n, nil
}

func (l *echoLink) SetReadTimeout(d time.Duration) error {
	l.timeout = d
	return nil
}

func (l *echoLink) Close() error { return nil }

// sentFrames returns a copy of every frame the host wrote, including
// frames whose write was reported as failed (they were still attempted).
func (l *echoLink) sentFrames() [][protocol.FrameSize]byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([][protocol.FrameSize]byte, len(l.frames))
	copy(out, l.frames)
	return out
}
