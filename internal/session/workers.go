package session

import (
	"io"
	"log"

	"github.com/elusive-m/online-filtering/internal/link"
	"github.com/elusive-m/online-filtering/internal/protocol"
)

// Pair holds the handles of the two streaming workers. Each done channel
// is closed exactly once when its worker returns.
type Pair struct {
	txDone chan struct{}
	rxDone chan struct{}
}

// StartWorkers spawns the transmitter and receiver over the link. The
// input series must not be mutated while the workers run; the buffer is
// written only by the receiver.
func StartWorkers(l link.Link, input []float32, tok *Token, buf *Buffer) *Pair {
	p := &Pair{
		txDone: make(chan struct{}),
		rxDone: make(chan struct{}),
	}

	go func() {
		defer close(p.txDone)
		transmit(l, input, tok)
	}()

	go func() {
		defer close(p.rxDone)
		receive(l, buf)
	}()

	return p
}

// ReceiverFinished reports, without blocking, whether the receiver has
// returned.
func (p *Pair) ReceiverFinished() bool {
	select {
	case <-p.rxDone:
		return true
	default:
		return false
	}
}

// Join blocks until both workers have returned.
func (p *Pair) Join() {
	<-p.txDone
	<-p.rxDone
}

// transmit writes the input series in order as float32 frames, polling
// the cancellation token before each sample. Whatever ends the loop, one
// sentinel frame is always attempted so the device can detect
// end-of-stream even under early cancellation.
func transmit(w io.Writer, samples []float32, tok *Token) {
	for _, v := range samples {
		if tok.Cancelled() {
			log.Printf("tx: ending transmission, cancellation requested")
			break
		}

		frame := protocol.EncodeSample(v)
		if _, err := w.Write(frame[:]); err != nil {
			log.Printf("tx: failed to transmit %v: %v", v, err)
			break
		}
	}

	sentinel := protocol.Sentinel()
	if _, err := w.Write(sentinel[:]); err != nil {
		log.Printf("tx: failed to complete transmission: %v", err)
		return
	}
	log.Printf("tx: transmission ended")
}

// receive reads float32 frames and appends them to the buffer, in
// arrival order, until the sentinel, a read error, or a read timeout.
func receive(r io.Reader, buf *Buffer) {
	var frame [protocol.FrameSize]byte

	for {
		if _, err := io.ReadFull(r, frame[:]); err != nil {
			log.Printf("rx: failed to read sample: %v", err)
			break
		}

		if protocol.IsSentinel(frame) {
			log.Printf("rx: ending reception, end-of-transmission received")
			break
		}

		buf.Append(protocol.DecodeSample(frame))
	}

	log.Printf("rx: reception ended")
}
