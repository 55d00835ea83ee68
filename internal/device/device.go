// Package device exposes the transmitter as write/read entry points.
package device

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dbehnke/morseled/internal/encoder"
	"github.com/dbehnke/morseled/internal/signal"
	"github.com/dbehnke/morseled/internal/timing"
	"github.com/dbehnke/morseled/internal/transcript"
)

// ErrTransferFault is returned when input cannot be moved into the device
var ErrTransferFault = errors.New("transfer fault")

// Entry describes one completed write
type Entry struct {
	Text       string
	Transcript string // what readers were offered; dropped bytes are left out
	Unit       time.Duration
	StartedAt  time.Time
	KeyedTime  time.Duration // on + off time the write held the signal for
	Letters    int
	Dropped    int
}

// Journal receives an entry after every write
type Journal interface {
	Record(entry Entry) error
}

// Config holds device settings
type Config struct {
	Unit     time.Duration     // Base unit (default: 200ms)
	Capacity int               // Transcript capacity (default: 1024)
	Policy   transcript.Policy // Full transcript policy (default: drop)
	Clock    timing.Clock      // default: RealClock
	Logger   *log.Logger       // Optional logger
	Journal  Journal           // Optional write history
	Debug    bool              // Log each processed character
}

// Stats holds device counters
type Stats struct {
	Writes       uint64
	BytesWritten uint64
	BytesRead    uint64
	Dropped      uint64
	Queued       int
}

// Device owns the transcript buffer and the keying pipeline.
// Writers are serialized; readers may drain at any time.
type Device struct {
	writeMu sync.Mutex
	buffer  *transcript.Buffer
	capture *captureWriter
	engine  *timing.Engine
	proc    *encoder.Processor
	journal Journal
	logger  *log.Logger

	writes       atomic.Uint64
	bytesWritten atomic.Uint64
	bytesRead    atomic.Uint64
}

// captureWriter forwards to the shared buffer and keeps a copy of the bytes
// the buffer accepted during the current write. Only the writer touches current.
type captureWriter struct {
	buffer  *transcript.Buffer
	current bytes.Buffer
}

func (c *captureWriter) WriteByte(b byte) error {
	if err := c.buffer.WriteByte(b); err != nil {
		return err
	}
	c.current.WriteByte(b)
	return nil
}

// New creates a device keying sink. A nil sink discards the signal.
func New(sink signal.Sink, config Config) *Device {
	if config.Capacity <= 0 {
		config.Capacity = transcript.DefaultCapacity
	}

	buffer := transcript.New(config.Capacity, config.Policy, config.Logger)
	capture := &captureWriter{buffer: buffer}
	engine := timing.NewEngineWithConfig(sink, capture, timing.Config{
		Unit:   config.Unit,
		Clock:  config.Clock,
		Logger: config.Logger,
	})
	proc := encoder.NewProcessor(engine, config.Logger)
	proc.SetDebug(config.Debug)

	return &Device{
		buffer:  buffer,
		capture: capture,
		engine:  engine,
		proc:    proc,
		journal: config.Journal,
		logger:  config.Logger,
	}
}

// Write keys p and returns len(p). It blocks for the full transmission time
// and cannot be interrupted once started; a long input holds the caller for
// its whole Morse duration.
func (d *Device) Write(p []byte) (int, error) {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	before := d.engine.Stats()
	started := time.Now()
	d.capture.current.Reset()

	n := d.proc.Process(p)

	after := d.engine.Stats()
	d.writes.Add(1)
	d.bytesWritten.Add(uint64(n))

	if d.journal != nil {
		entry := Entry{
			Text:       string(p),
			Transcript: d.capture.current.String(),
			Unit:       d.engine.Unit(),
			StartedAt:  started,
			KeyedTime:  (after.OnTime + after.OffTime) - (before.OnTime + before.OffTime),
			Letters:    after.Letters - before.Letters,
			Dropped:    after.Dropped - before.Dropped,
		}
		if err := d.journal.Record(entry); err != nil && d.logger != nil {
			d.logger.Printf("Failed to record transmission: %v", err)
		}
	}

	return n, nil
}

// WriteString is Write for strings
func (d *Device) WriteString(s string) (int, error) {
	return d.Write([]byte(s))
}

// ReadFrom reads r to EOF and keys it as a single write. If r fails nothing is
// keyed and the error is reported as ErrTransferFault.
func (d *Device) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTransferFault, err)
	}
	n, err := d.Write(data)
	return int64(n), err
}

// Read drains up to len(p) transcript bytes. It never blocks; 0, nil means
// nothing is queued right now.
func (d *Device) Read(p []byte) (int, error) {
	n, err := d.buffer.Read(p)
	d.bytesRead.Add(uint64(n))
	return n, err
}

// WriteTo drains everything currently queued into w
func (d *Device) WriteTo(w io.Writer) (int64, error) {
	var total int64
	chunk := make([]byte, 256)
	for {
		n, _ := d.Read(chunk)
		if n == 0 {
			return total, nil
		}
		m, err := w.Write(chunk[:n])
		total += int64(m)
		if err != nil {
			return total, fmt.Errorf("%w: %v", ErrTransferFault, err)
		}
	}
}

// Stats returns the device counters
func (d *Device) Stats() Stats {
	return Stats{
		Writes:       d.writes.Load(),
		BytesWritten: d.bytesWritten.Load(),
		BytesRead:    d.bytesRead.Load(),
		Dropped:      d.buffer.Dropped(),
		Queued:       d.buffer.DataSize(),
	}
}

// Engine returns the timing engine
func (d *Device) Engine() *timing.Engine {
	return d.engine
}

// Buffer returns the transcript buffer
func (d *Device) Buffer() *transcript.Buffer {
	return d.buffer
}
