// Package timing keys a signal sink with standard Morse timing.
//
// All durations derive from one base unit:
//
//	dot              1 unit on
//	dash             3 units on
//	element gap      1 unit off
//	letter gap       3 units off
//	word gap         7 units off
package timing

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/dbehnke/morseled/internal/morse"
	"github.com/dbehnke/morseled/internal/signal"
	"github.com/dbehnke/morseled/internal/transcript"
)

// DefaultUnit is the base duration of a dot
const DefaultUnit = 200 * time.Millisecond

// Ratios of each interval to the base unit
const (
	DotUnits        = 1
	DashUnits       = 3
	ElementGapUnits = 1
	LetterGapUnits  = 3
	WordGapUnits    = 7
)

// Transcript receives the characters describing what was keyed
type Transcript interface {
	WriteByte(c byte) error
}

// Config holds optional engine settings
type Config struct {
	Unit   time.Duration // Base unit (default: 200ms)
	Clock  Clock         // Clock used to hold intervals (default: RealClock)
	Logger *log.Logger   // Optional debug logger
}

// Stats accumulates what the engine has keyed
type Stats struct {
	OnTime  time.Duration
	OffTime time.Duration
	Pulses  int
	Symbols int
	Letters int
	Dropped int // transcript bytes that were rejected
}

// Engine sequences on/off intervals on a sink and records the matching transcript.
// Every call blocks the calling goroutine for the real duration of what it keys;
// there is no way to interrupt a call once it starts.
type Engine struct {
	sink   signal.Sink
	out    Transcript
	unit   time.Duration
	clock  Clock
	logger *log.Logger

	mu    sync.Mutex
	stats Stats
}

// NewEngine creates an engine with default settings
func NewEngine(sink signal.Sink, out Transcript) *Engine {
	return NewEngineWithConfig(sink, out, Config{})
}

// NewEngineWithConfig creates an engine with custom configuration
func NewEngineWithConfig(sink signal.Sink, out Transcript, config Config) *Engine {
	if config.Unit <= 0 {
		config.Unit = DefaultUnit
	}
	if config.Clock == nil {
		config.Clock = RealClock{}
	}
	if sink == nil {
		sink = signal.Nop{}
	}

	return &Engine{
		sink:   sink,
		out:    out,
		unit:   config.Unit,
		clock:  config.Clock,
		logger: config.Logger,
	}
}

// Unit returns the base unit
func (e *Engine) Unit() time.Duration {
	return e.unit
}

// Duration returns the length of n units
func (e *Engine) Duration(units int) time.Duration {
	return time.Duration(units) * e.unit
}

// EmitLetter keys the symbols of one letter. Each symbol is followed by an
// element gap except the last one; the letter is terminated in the transcript
// with a single space.
func (e *Engine) EmitLetter(symbols []morse.Symbol) {
	for i, s := range symbols {
		e.sink.On()
		e.hold(s.Units(), true)
		e.sink.Off()
		e.mark(s.Mark())

		e.mu.Lock()
		e.stats.Pulses++
		e.stats.Symbols++
		e.mu.Unlock()

		if i < len(symbols)-1 {
			e.InterElementGap()
		}
	}
	e.mark(' ')

	e.mu.Lock()
	e.stats.Letters++
	e.mu.Unlock()
}

// InterElementGap holds the signal off for one unit
func (e *Engine) InterElementGap() {
	e.gap(ElementGapUnits)
}

// InterLetterGap holds the signal off for three units
func (e *Engine) InterLetterGap() {
	e.gap(LetterGapUnits)
}

// InterWordGap holds the signal off for seven units
func (e *Engine) InterWordGap() {
	e.gap(WordGapUnits)
}

// Mark appends a raw character to the transcript
func (e *Engine) Mark(c byte) {
	e.mark(c)
}

// Stats returns a snapshot of the accumulated statistics
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

func (e *Engine) gap(units int) {
	e.sink.Off()
	e.hold(units, false)
}

func (e *Engine) hold(units int, on bool) {
	d := e.Duration(units)
	e.clock.Sleep(d)

	e.mu.Lock()
	if on {
		e.stats.OnTime += d
	} else {
		e.stats.OffTime += d
	}
	e.mu.Unlock()
}

func (e *Engine) mark(c byte) {
	if e.out == nil {
		return
	}
	if err := e.out.WriteByte(c); err != nil {
		e.mu.Lock()
		e.stats.Dropped++
		e.mu.Unlock()
		// the buffer reports its own overflow
		if e.logger != nil && !errors.Is(err, transcript.ErrBufferFull) {
			e.logger.Printf("ERROR: couldn't put %q into transcript: %v", c, err)
		}
	}
}
