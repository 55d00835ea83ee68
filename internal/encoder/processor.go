// Package encoder turns text into keyed Morse through a timing engine.
package encoder

import (
	"log"

	"github.com/dbehnke/morseled/internal/morse"
	"github.com/dbehnke/morseled/internal/timing"
)

// lettersPerGap is how many consecutive letters are keyed before an
// inter-letter gap is forced.
const lettersPerGap = 2

// wordMarks is the number of extra spaces written to the transcript for a word break
const wordMarks = 3

// Processor classifies input bytes and drives the engine
type Processor struct {
	engine *timing.Engine
	logger *log.Logger
	debug  bool
}

// NewProcessor creates a text processor. A nil logger disables logging.
func NewProcessor(engine *timing.Engine, logger *log.Logger) *Processor {
	return &Processor{engine: engine, logger: logger}
}

// SetDebug enables per-character logging
func (p *Processor) SetDebug(enabled bool) {
	p.debug = enabled
}

// Process keys every letter and space in text and terminates the transcript
// record with a newline. Other bytes are skipped. It blocks for the whole
// transmission and always consumes all of text.
func (p *Processor) Process(text []byte) int {
	if len(text) == 0 {
		p.logf("No characters provided to flash")
	}

	sinceGap := 0
	for _, ch := range text {
		switch {
		case morse.IsLetter(ch):
			if sinceGap == lettersPerGap {
				p.engine.InterLetterGap()
				sinceGap = 0
			}
			if p.debug {
				p.logf("character being processed is %c", ch)
			}
			// the gate above makes this infallible
			_ = p.EmitLetter(ch)
			sinceGap++

		case ch == ' ':
			// word gaps leave the letter counter alone
			p.engine.InterWordGap()
			for i := 0; i < wordMarks; i++ {
				p.engine.Mark(' ')
			}
		}
	}

	p.engine.Mark('\n')
	return len(text)
}

// EmitLetter keys a single letter with no surrounding gaps.
// Non-letters are rejected with morse.ErrInvalidSymbol.
func (p *Processor) EmitLetter(ch byte) error {
	symbols, err := morse.Symbols(ch)
	if err != nil {
		p.logf("ERROR: passed an invalid character to flash: %v", err)
		return err
	}
	p.engine.EmitLetter(symbols)
	return nil
}

// Engine returns the timing engine being driven
func (p *Processor) Engine() *timing.Engine {
	return p.engine
}

func (p *Processor) logf(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}
