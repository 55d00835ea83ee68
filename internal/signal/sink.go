// Package signal drives the physical Morse output.
package signal

import (
	"log"
	"sync"
)

// Sink is the on/off output the timing engine keys.
// Both calls are expected to return quickly compared to a timing unit.
type Sink interface {
	On()
	Off()
}

// Nop discards every transition
type Nop struct{}

func (Nop) On()  {}
func (Nop) Off() {}

// Logger writes each transition to a log. Useful without hardware attached.
type Logger struct {
	log *log.Logger
}

// NewLogger creates a logging sink; a nil logger uses the standard logger
func NewLogger(l *log.Logger) *Logger {
	if l == nil {
		l = log.Default()
	}
	return &Logger{log: l}
}

func (s *Logger) On()  { s.log.Printf("signal ON") }
func (s *Logger) Off() { s.log.Printf("signal OFF") }

// Recorder keeps every transition in order
type Recorder struct {
	mu     sync.Mutex
	states []bool
	on     bool
}

func (r *Recorder) On() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, true)
	r.on = true
}

func (r *Recorder) Off() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, false)
	r.on = false
}

// States returns a copy of the recorded transitions (true = on)
func (r *Recorder) States() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.states...)
}

// Pulses counts off->on transitions
func (r *Recorder) Pulses() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	prev := false
	for _, s := range r.states {
		if s && !prev {
			n++
		}
		prev = s
	}
	return n
}

// IsOn reports the last state
func (r *Recorder) IsOn() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.on
}

// Reset clears the recording
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = nil
	r.on = false
}

type tee []Sink

func (t tee) On() {
	for _, s := range t {
		s.On()
	}
}

func (t tee) Off() {
	for _, s := range t {
		s.Off()
	}
}

// Tee fans transitions out to every sink in order
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}
