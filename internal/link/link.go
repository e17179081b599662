// Package link abstracts the byte-oriented duplex connection to the
// filter device. The session layer only sees the Link interface; the
// physical transport is either a local serial port or a network serial
// bridge speaking websocket.
package link

import (
	"io"
	"time"
)

// Link is a duplex byte stream with an adjustable read timeout. The
// handshake reads with a long timeout, then switches to a short one for
// per-sample polling during streaming.
type Link interface {
	io.ReadWriteCloser

	// SetReadTimeout bounds every subsequent Read. A Read that sees no
	// data within the timeout returns an error.
	SetReadTimeout(d time.Duration) error
}
