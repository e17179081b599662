package session

import (
	"testing"

	"github.com/elusive-m/online-filtering/internal/protocol"
)

func double(v float32) float32 { return 2 * v }

func makeInput(n int) []float32 {
	input := make([]float32, n)
	for i := range input {
		input[i] = float32(i) * 0.5
	}
	return input
}

func TestWorkersFullStream(t *testing.T) {
	input := makeInput(100)
	l := newEchoLink(len(input), double)
	buf := NewBuffer(len(input))

	pair := StartWorkers(l, input, &Token{}, buf)
	pair.Join()

	got := buf.Snapshot()
	if len(got) != len(input) {
		t.Fatalf("received %d samples, want %d", len(got), len(input))
	}
	for i, v := range got {
		if want := double(input[i]); v != want {
			t.Fatalf("output[%d] = %v, want %v (arrival order broken)", i, v, want)
		}
	}

	frames := l.sentFrames()
	if len(frames) != len(input)+1 {
		t.Fatalf("host sent %d frames, want %d payload + 1 sentinel", len(frames), len(input))
	}
	for i, f := range frames[:len(input)] {
		if protocol.IsSentinel(f) {
			t.Fatalf("frame %d is a sentinel, want payload only before the end", i)
		}
	}
	if !protocol.IsSentinel(frames[len(frames)-1]) {
		t.Fatal("last frame is not the sentinel")
	}
}

func TestCancelBeforeFirstSample(t *testing.T) {
	input := makeInput(64)
	l := newEchoLink(len(input), double)
	buf := NewBuffer(len(input))

	tok := &Token{}
	tok.Cancel()

	pair := StartWorkers(l, input, tok, buf)
	pair.Join()

	frames := l.sentFrames()
	if len(frames) != 1 || !protocol.IsSentinel(frames[0]) {
		t.Fatalf("sent %d frames, want exactly one sentinel and no payload", len(frames))
	}
	if buf.Len() != 0 {
		t.Errorf("buffer has %d samples, want 0", buf.Len())
	}
}

func TestWriteErrorStillSendsSentinel(t *testing.T) {
	input := makeInput(50)
	l := newEchoLink(len(input), double)
	l.failTxAt = 10
	buf := NewBuffer(len(input))

	pair := StartWorkers(l, input, &Token{}, buf)
	pair.Join()

	frames := l.sentFrames()
	if len(frames) == 0 {
		t.Fatal("no frames sent")
	}
	last := frames[len(frames)-1]
	if !protocol.IsSentinel(last) {
		t.Fatal("sentinel not attempted after write error")
	}

	sentinels := 0
	for _, f := range frames {
		if protocol.IsSentinel(f) {
			sentinels++
		}
	}
	if sentinels != 1 {
		t.Errorf("sent %d sentinels, want exactly 1", sentinels)
	}
	if payload := len(frames) - 1; payload > len(input) {
		t.Errorf("sent %d payload frames, want at most %d", payload, len(input))
	}
}

func TestReceiverStopsOnReadTimeout(t *testing.T) {
	// A mute device: nothing is ever echoed, so the receiver unblocks
	// only via its read timeout.
	l := newEchoLink(4, nil)
	buf := NewBuffer(4)

	pair := StartWorkers(l, makeInput(4), &Token{}, buf)
	pair.Join()

	if buf.Len() != 0 {
		t.Errorf("buffer has %d samples, want 0", buf.Len())
	}
}

func TestOutputNeverExceedsInputLength(t *testing.T) {
	input := makeInput(32)
	l := newEchoLink(len(input), double)
	buf := NewBuffer(len(input))

	pair := StartWorkers(l, input, &Token{}, buf)
	pair.Join()

	if buf.Len() > len(input) {
		t.Errorf("buffer grew to %d, input length is %d", buf.Len(), len(input))
	}
}
