package history

import (
	"sync"
	"time"

	"github.com/motortwin/motortwin/pkg/types"
)

// Buffer is a thread-safe fixed-capacity FIFO of readings.
type Buffer struct {
	mu    sync.RWMutex
	buf   []types.Reading
	head  int // index of the oldest reading
	count int
}

// New creates a Buffer holding at most capacity readings.
// A capacity below 1 is raised to 1.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{buf: make([]types.Reading, capacity)}
}

// Append adds r as the newest reading, evicting the oldest when full.
func (b *Buffer) Append(r types.Reading) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.count < len(b.buf) {
		b.buf[(b.head+b.count)%len(b.buf)] = r
		b.count++
		return
	}
	b.buf[b.head] = r
	b.head = (b.head + 1) % len(b.buf)
}

// Snapshot returns the readings oldest first. The slice is a copy.
func (b *Buffer) Snapshot() []types.Reading {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]types.Reading, b.count)
	for i := range out {
		out[i] = b.buf[(b.head+i)%len(b.buf)]
	}
	return out
}

// Latest returns the newest reading and false when the buffer is empty.
func (b *Buffer) Latest() (types.Reading, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.count == 0 {
		return types.Reading{}, false
	}
	return b.buf[(b.head+b.count-1)%len(b.buf)], true
}

// Series returns the values of p oldest first, with their timestamps.
// An unknown parameter yields empty slices.
func (b *Buffer) Series(p types.Parameter) ([]float64, []time.Time) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if _, ok := (types.Reading{}).Value(p); !ok {
		return []float64{}, []time.Time{}
	}
	values := make([]float64, b.count)
	times := make([]time.Time, b.count)
	for i := 0; i < b.count; i++ {
		r := b.buf[(b.head+i)%len(b.buf)]
		values[i], _ = r.Value(p)
		times[i] = r.Timestamp
	}
	return values, times
}

// Len returns the number of readings held.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Cap returns the configured capacity.
func (b *Buffer) Cap() int {
	return len(b.buf)
}

// Reset empties the buffer without changing its capacity.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.buf)
	b.head = 0
	b.count = 0
}
