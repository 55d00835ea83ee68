package timing

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/dbehnke/morseled/internal/morse"
	"github.com/dbehnke/morseled/internal/signal"
	"github.com/dbehnke/morseled/internal/transcript"
)

const testUnit = 10 * time.Millisecond

func newTestEngine(out Transcript) (*Engine, *signal.Recorder, *ManualClock) {
	rec := &signal.Recorder{}
	clock := &ManualClock{}
	e := NewEngineWithConfig(rec, out, Config{Unit: testUnit, Clock: clock})
	return e, rec, clock
}

func TestEngine_EmitLetter(t *testing.T) {
	tests := []struct {
		letter     byte
		transcript string
		on, off    int // units
		sleeps     []int
	}{
		{'E', ". ", 1, 0, []int{1}},
		{'T', "- ", 3, 0, []int{3}},
		{'A', ".- ", 4, 1, []int{1, 1, 3}},
		{'S', "... ", 3, 2, []int{1, 1, 1, 1, 1}},
		{'O', "--- ", 9, 2, []int{3, 1, 3, 1, 3}},
	}

	for _, tt := range tests {
		t.Run(string(tt.letter), func(t *testing.T) {
			var out bytes.Buffer
			e, rec, clock := newTestEngine(&out)

			syms, _ := morse.Symbols(tt.letter)
			e.EmitLetter(syms)

			if out.String() != tt.transcript {
				t.Errorf("transcript = %q, want %q", out.String(), tt.transcript)
			}
			if rec.Pulses() != len(syms) {
				t.Errorf("Pulses() = %d, want %d", rec.Pulses(), len(syms))
			}
			if rec.IsOn() {
				t.Error("signal left on after letter")
			}

			stats := e.Stats()
			if stats.OnTime != time.Duration(tt.on)*testUnit {
				t.Errorf("OnTime = %v, want %v", stats.OnTime, time.Duration(tt.on)*testUnit)
			}
			if stats.OffTime != time.Duration(tt.off)*testUnit {
				t.Errorf("OffTime = %v, want %v", stats.OffTime, time.Duration(tt.off)*testUnit)
			}

			sleeps := clock.Sleeps()
			if len(sleeps) != len(tt.sleeps) {
				t.Fatalf("sleeps = %v, want %v units", sleeps, tt.sleeps)
			}
			for i, u := range tt.sleeps {
				if sleeps[i] != time.Duration(u)*testUnit {
					t.Errorf("sleep[%d] = %v, want %v", i, sleeps[i], time.Duration(u)*testUnit)
				}
			}
		})
	}
}

func TestEngine_TranscriptRoundTrip(t *testing.T) {
	for _, entry := range morse.Table() {
		var out bytes.Buffer
		e, _, _ := newTestEngine(&out)
		e.EmitLetter(entry.Symbols)

		got := out.String()
		want := morse.Notation(entry.Symbols) + " "
		if got != want {
			t.Errorf("%c: transcript = %q, want %q", entry.Letter, got, want)
		}
	}
}

func TestEngine_Gaps(t *testing.T) {
	tests := []struct {
		name  string
		call  func(*Engine)
		units int
	}{
		{"element", (*Engine).InterElementGap, 1},
		{"letter", (*Engine).InterLetterGap, 3},
		{"word", (*Engine).InterWordGap, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			e, rec, clock := newTestEngine(&out)
			rec.On()

			tt.call(e)

			if rec.IsOn() {
				t.Error("gap did not turn the signal off")
			}
			if clock.Elapsed() != time.Duration(tt.units)*testUnit {
				t.Errorf("Elapsed() = %v, want %v", clock.Elapsed(), time.Duration(tt.units)*testUnit)
			}
			if out.Len() != 0 {
				t.Errorf("gap wrote %q to the transcript", out.String())
			}
		})
	}
}

func TestEngine_TranscriptFull(t *testing.T) {
	buf := transcript.New(2, transcript.PolicyDrop, nil)
	e, rec, _ := newTestEngine(buf)

	syms, _ := morse.Symbols('H') // ....
	e.EmitLetter(syms)

	if rec.Pulses() != 4 {
		t.Errorf("Pulses() = %d, want 4; a full transcript must not stop the signal", rec.Pulses())
	}
	if got := e.Stats().Dropped; got != 3 {
		t.Errorf("Stats().Dropped = %d, want 3", got)
	}
	if buf.Dropped() != 3 {
		t.Errorf("buffer Dropped() = %d, want 3", buf.Dropped())
	}

	out := make([]byte, 4)
	n, _ := buf.Read(out)
	if string(out[:n]) != ".." {
		t.Errorf("queued = %q, want %q", out[:n], "..")
	}
}

type brokenTranscript struct{}

func (brokenTranscript) WriteByte(byte) error { return errors.New("device gone") }

func TestEngine_TranscriptErrorLogging(t *testing.T) {
	tests := []struct {
		name  string
		out   Transcript
		lines int
	}{
		// the buffer logs its own drops
		{"buffer full", transcript.New(1, transcript.PolicyDrop, nil), 0},
		{"other error", brokenTranscript{}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			e := NewEngineWithConfig(nil, tt.out, Config{
				Unit:   testUnit,
				Clock:  &ManualClock{},
				Logger: log.New(&logs, "", 0),
			})

			e.EmitLetter([]morse.Symbol{morse.Dot})

			if got := strings.Count(logs.String(), "\n"); got != tt.lines {
				t.Errorf("logged %d lines, want %d:\n%s", got, tt.lines, logs.String())
			}
			if e.Stats().Dropped == 0 {
				t.Error("Stats().Dropped = 0, want the rejected bytes counted")
			}
		})
	}
}

func TestNewEngine_Defaults(t *testing.T) {
	e := NewEngine(nil, nil)
	if e.Unit() != DefaultUnit {
		t.Errorf("Unit() = %v, want %v", e.Unit(), DefaultUnit)
	}
	if e.Duration(WordGapUnits) != 7*DefaultUnit {
		t.Errorf("Duration(WordGapUnits) = %v, want %v", e.Duration(WordGapUnits), 7*DefaultUnit)
	}
	if _, ok := e.clock.(RealClock); !ok {
		t.Errorf("default clock = %T, want RealClock", e.clock)
	}
}

func TestRealClock(t *testing.T) {
	start := time.Now()
	RealClock{}.Sleep(5 * time.Millisecond)
	if time.Since(start) < 5*time.Millisecond {
		t.Error("RealClock.Sleep returned early")
	}
}
