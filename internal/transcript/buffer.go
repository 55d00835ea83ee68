// Package transcript holds the textual record of what was transmitted.
package transcript

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
)

// DefaultCapacity matches the size of the original device FIFO
const DefaultCapacity = 1024

// ErrBufferFull is returned when a byte is rejected because the buffer is at capacity
var ErrBufferFull = errors.New("transcript buffer full")

// Policy decides what happens when a byte arrives and the buffer is full
type Policy int

const (
	// PolicyDrop rejects the byte, counts it and logs it. Queued data is untouched.
	PolicyDrop Policy = iota
	// PolicyBlock makes the producer wait until a reader frees space
	PolicyBlock
	// PolicyGrow doubles the capacity
	PolicyGrow
)

func (p Policy) String() string {
	switch p {
	case PolicyDrop:
		return "drop"
	case PolicyBlock:
		return "block"
	case PolicyGrow:
		return "grow"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps a config value to a Policy
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "drop":
		return PolicyDrop, nil
	case "block":
		return PolicyBlock, nil
	case "grow":
		return PolicyGrow, nil
	}
	return PolicyDrop, fmt.Errorf("unknown transcript policy %q", s)
}

// Buffer is a bounded FIFO of transcript characters.
// One producer and any number of readers may use it concurrently.
type Buffer struct {
	mu       sync.Mutex
	space    *sync.Cond
	buffer   []byte
	head     int
	tail     int
	size     int
	capacity int
	policy   Policy
	dropped  uint64
	name     string
	logger   *log.Logger
}

// New creates a transcript buffer. A nil logger disables overflow logging.
func New(capacity int, policy Policy, logger *log.Logger) *Buffer {
	if capacity <= 0 {
		panic("transcript capacity must be > 0")
	}

	b := &Buffer{
		buffer:   make([]byte, capacity),
		capacity: capacity,
		policy:   policy,
		name:     "morse-code",
		logger:   logger,
	}
	b.space = sync.NewCond(&b.mu)
	return b
}

// WriteByte appends one character
func (b *Buffer) WriteByte(c byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.size == b.capacity {
		switch b.policy {
		case PolicyBlock:
			for b.size == b.capacity {
				b.space.Wait()
			}
		case PolicyGrow:
			b.grow()
		default:
			b.dropped++
			if b.logger != nil {
				b.logger.Printf("Transcript[%s]: buffer full, dropped %q (%d dropped so far)",
					b.name, c, b.dropped)
			}
			return ErrBufferFull
		}
	}

	b.buffer[b.head] = c
	b.head = (b.head + 1) % b.capacity
	b.size++
	return nil
}

// Write appends p one byte at a time. It stops at the first rejected byte and
// reports how many were stored.
func (b *Buffer) Write(p []byte) (int, error) {
	for i, c := range p {
		if err := b.WriteByte(c); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// Read drains up to len(p) bytes in FIFO order. It never blocks and returns
// 0, nil when the buffer is empty.
func (b *Buffer) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for n < len(p) && b.size > 0 {
		p[n] = b.buffer[b.tail]
		b.tail = (b.tail + 1) % b.capacity
		b.size--
		n++
	}

	if n > 0 && b.policy == PolicyBlock {
		b.space.Broadcast()
	}
	return n, nil
}

// grow doubles the backing array, keeping queued bytes in order. Caller holds mu.
func (b *Buffer) grow() {
	next := make([]byte, b.capacity*2)
	for i := 0; i < b.size; i++ {
		next[i] = b.buffer[(b.tail+i)%b.capacity]
	}
	if b.logger != nil {
		b.logger.Printf("Transcript[%s]: growing capacity %d -> %d", b.name, b.capacity, len(next))
	}
	b.buffer = next
	b.tail = 0
	b.head = b.size
	b.capacity = len(next)
}

// FreeSpace returns the number of bytes that can be written before the buffer is full
func (b *Buffer) FreeSpace() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.capacity - b.size
}

// DataSize returns the number of queued bytes
func (b *Buffer) DataSize() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// HasData returns true if there is anything to read
func (b *Buffer) HasData() bool {
	return b.DataSize() > 0
}

// IsEmpty returns true if nothing is queued
func (b *Buffer) IsEmpty() bool {
	return b.DataSize() == 0
}

// Capacity returns the current capacity
func (b *Buffer) Capacity() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.capacity
}

// Dropped returns how many bytes were rejected under PolicyDrop
func (b *Buffer) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Policy returns the full-buffer policy
func (b *Buffer) Policy() Policy {
	return b.policy
}

// String returns a string representation for debugging
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fmt.Sprintf("Transcript[%s]: size=%d, capacity=%d, head=%d, tail=%d, dropped=%d, policy=%s",
		b.name, b.size, b.capacity, b.head, b.tail, b.dropped, b.policy)
}
