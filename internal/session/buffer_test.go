package session

import (
	"sync"
	"testing"
)

func TestBufferAppendOrder(t *testing.T) {
	b := NewBuffer(8)
	for i := 0; i < 8; i++ {
		b.Append(float32(i))
	}

	snap := b.Snapshot()
	if len(snap) != 8 {
		t.Fatalf("Len = %d, want 8", len(snap))
	}
	for i, v := range snap {
		if v != float32(i) {
			t.Errorf("snapshot[%d] = %v, want %v", i, v, float32(i))
		}
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	b := NewBuffer(4)
	b.Append(1)

	snap := b.Snapshot()
	b.Append(2)

	if len(snap) != 1 {
		t.Errorf("snapshot grew with the buffer: len = %d", len(snap))
	}
}

func TestBufferConcurrentReaders(t *testing.T) {
	const n = 1000
	b := NewBuffer(n)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			b.Append(float32(i))
		}
	}()

	// Readers poll length and snapshots while the writer runs; the race
	// detector verifies the locking discipline.
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				snap := b.Snapshot()
				for i, v := range snap {
					if v != float32(i) {
						t.Errorf("snapshot[%d] = %v during growth", i, v)
						return
					}
				}
				if len(snap) == n {
					return
				}
			}
		}()
	}

	wg.Wait()
}

func TestTokenIsOneShot(t *testing.T) {
	var tok Token
	if tok.Cancelled() {
		t.Fatal("fresh token is cancelled")
	}

	tok.Cancel()
	if !tok.Cancelled() {
		t.Fatal("Cancel did not latch")
	}

	// Cancelling again must not reset anything.
	tok.Cancel()
	if !tok.Cancelled() {
		t.Fatal("token reset after second Cancel")
	}
}
