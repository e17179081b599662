// Package protocol implements the wire framing spoken with the filter
// device: a fixed synchronization marker answered by the sampling
// frequency, then 4-byte little-endian float32 frames in both directions,
// terminated by a reserved NaN sentinel.
package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/elusive-m/online-filtering/internal/config"
	"github.com/elusive-m/online-filtering/internal/link"
)

// FrameSize is the length of every frame on the wire, in both directions.
const FrameSize = 4

// sentinelBits is the bit pattern of the end-of-transmission marker, a
// quiet NaN. The device echoes it back once its own stream ends.
const sentinelBits = 0x7FC00000

// syncMarker opens the handshake; the device answers with its sampling
// frequency.
var syncMarker = [FrameSize]byte{'S', 'Y', 'N', 0}

// ErrHandshake is wrapped by every handshake failure. It is terminal for
// the session; the caller returns to device selection without retrying.
var ErrHandshake = errors.New("connection failed")

// EncodeSample returns the wire form of a sample.
func EncodeSample(v float32) [FrameSize]byte {
	var frame [FrameSize]byte
	binary.LittleEndian.PutUint32(frame[:], math.Float32bits(v))
	return frame
}

// DecodeSample decodes a payload frame.
func DecodeSample(frame [FrameSize]byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(frame[:]))
}

// Sentinel returns the end-of-transmission frame.
func Sentinel() [FrameSize]byte {
	var frame [FrameSize]byte
	binary.LittleEndian.PutUint32(frame[:], sentinelBits)
	return frame
}

// IsSentinel reports whether a received frame is the end-of-transmission
// marker. The comparison is on the exact bit pattern: an arbitrary NaN
// payload is not a sentinel.
func IsSentinel(frame [FrameSize]byte) bool {
	return binary.LittleEndian.Uint32(frame[:]) == sentinelBits
}

// Handshake negotiates the sampling frequency over a freshly opened link
// and returns the sampling interval in seconds. On success the link's
// read timeout has been switched to the short per-sample value; on error
// the link is in an unspecified state and must be closed.
func Handshake(l link.Link, cfg config.SerialConfig) (float32, error) {
	// Give the device time to settle after the port is opened; opening
	// resets some boards.
	time.Sleep(cfg.SettleDelay)

	if _, err := l.Write(syncMarker[:]); err != nil {
		return 0, fmt.Errorf("%w: write sync: %v", ErrHandshake, err)
	}

	if err := l.SetReadTimeout(cfg.HandshakeTimeout); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrHandshake, err)
	}

	var reply [FrameSize]byte
	if _, err := io.ReadFull(l, reply[:]); err != nil {
		return 0, fmt.Errorf("%w: read frequency: %v", ErrHandshake, err)
	}

	frequency := binary.LittleEndian.Uint32(reply[:])
	if frequency == 0 {
		return 0, fmt.Errorf("%w: device reported zero sampling frequency", ErrHandshake)
	}

	if err := l.SetReadTimeout(cfg.ReadTimeout); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrHandshake, err)
	}

	return 1 / float32(frequency), nil
}
