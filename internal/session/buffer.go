package session

import "sync"

// Buffer is the shared receive store: a growable series of samples with
// exactly one writer (the receiver) and any number of readers. It is
// pre-sized to the input length so appends never reallocate mid-session.
type Buffer struct {
	mu      sync.Mutex
	samples []float32
}

// NewBuffer returns an empty buffer with the given capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{samples: make([]float32, 0, capacity)}
}

// Append adds a received sample. Called only by the receiver.
func (b *Buffer) Append(v float32) {
	b.mu.Lock()
	b.samples = append(b.samples, v)
	b.mu.Unlock()
}

// Len returns the number of samples received so far.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples)
}

// Snapshot copies the current contents. The copy is independent of
// subsequent appends.
func (b *Buffer) Snapshot() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]float32, len(b.samples))
	copy(out, b.samples)
	return out
}
