package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/dbehnke/morseled/internal/device"
	"github.com/dbehnke/morseled/internal/signal"
	"github.com/dbehnke/morseled/internal/timing"
)

func newLineDevice() (*device.Device, *signal.Recorder) {
	rec := &signal.Recorder{}
	dev := device.New(rec, device.Config{Unit: time.Millisecond, Clock: &timing.ManualClock{}})
	return dev, rec
}

func TestSendLines(t *testing.T) {
	dev, rec := newLineDevice()

	err := sendLines(context.Background(), dev, strings.NewReader("E\n\nt\n"), io.Discard)
	if err != nil {
		t.Fatalf("sendLines() error = %v", err)
	}

	if got := dev.Stats().Writes; got != 3 {
		t.Errorf("Stats().Writes = %d, want 3", got)
	}
	if rec.Pulses() != 2 {
		t.Errorf("Pulses() = %d, want 2", rec.Pulses())
	}
	var out bytes.Buffer
	dev.WriteTo(&out)
	if out.String() != ". \n\n- \n" {
		t.Errorf("transcript = %q, want %q", out.String(), ". \n\n- \n")
	}
}

func TestSendLines_InterruptedAtPrompt(t *testing.T) {
	dev, rec := newLineDevice()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw := io.Pipe()
	defer pw.Close()

	done := make(chan error, 1)
	go func() {
		done <- sendLines(ctx, dev, pr, io.Discard)
	}()

	// the user types a line after pressing Ctrl+C
	go pw.Write([]byte("SOS\n"))

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("sendLines() error = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("sendLines() kept waiting for input after the interrupt")
	}

	if rec.Pulses() != 0 {
		t.Errorf("Pulses() = %d after interrupt, want 0", rec.Pulses())
	}
	if dev.Stats().Writes != 0 {
		t.Errorf("Stats().Writes = %d after interrupt, want 0", dev.Stats().Writes)
	}
}

func TestSendLines_ReadError(t *testing.T) {
	dev, _ := newLineDevice()

	err := sendLines(context.Background(), dev, iotest.ErrReader(errors.New("bad address")), io.Discard)
	if !errors.Is(err, device.ErrTransferFault) {
		t.Errorf("sendLines() error = %v, want ErrTransferFault", err)
	}
}
