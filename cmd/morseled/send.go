package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	ossignal "os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dbehnke/morseled/internal/device"
)

func newSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send [text...]",
		Short: "Key text as Morse code and print the transcript",
		Long: "Keys the arguments, joined by spaces, or each line read from stdin.\n" +
			"A write that has started always runs to completion; Ctrl+C stops\n" +
			"after the current line.",
		RunE: runSendCmd,
	}
}

func runSendCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sink, err := openSink(cfg)
	if err != nil {
		return fmt.Errorf("failed to open signal output: %w", err)
	}

	db, journal := openHistory(cfg)
	if db != nil {
		defer func() {
			if cerr := db.Close(); cerr != nil {
				log.Printf("Failed to close history database: %v", cerr)
			}
		}()
	}

	dev, err := newDevice(cfg, sink, journal)
	if err != nil {
		return err
	}

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	drainCtx, stopDrain := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		drain(drainCtx, dev, out, cfg.GetUnit())
	}()

	log.Printf("morseled v%s: unit %v, transcript %d (%s), signal %s",
		VERSION, cfg.GetUnit(), cfg.GetTranscriptCapacity(), cfg.GetTranscriptPolicy(), cfg.GetSignalDriver())

	if len(args) > 0 {
		_, err = dev.WriteString(strings.Join(args, " "))
	} else {
		err = sendLines(ctx, dev, cmd.InOrStdin(), cmd.ErrOrStderr())
	}

	stopDrain()
	wg.Wait()
	if _, derr := dev.WriteTo(out); derr != nil && err == nil {
		err = derr
	}

	stats := dev.Stats()
	log.Printf("Stats: writes %d, bytes in %d, transcript out %d, dropped %d",
		stats.Writes, stats.BytesWritten, stats.BytesRead, stats.Dropped)
	return err
}

// sendLines keys each input line as its own write until EOF or ctx is done.
// Input is scanned on its own goroutine so an interrupt at the prompt ends
// the loop at once.
func sendLines(ctx context.Context, dev *device.Device, in io.Reader, prompt io.Writer) error {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		if interactive {
			fmt.Fprint(prompt, "> ")
		}

		select {
		case <-ctx.Done():
			log.Printf("Interrupted, nothing more will be keyed")
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("%w: %v", device.ErrTransferFault, err)
					}
				default:
				}
				return nil
			}
			// both cases may be ready at once
			if ctx.Err() != nil {
				log.Printf("Interrupted, nothing more will be keyed")
				return nil
			}
			if _, err := dev.WriteString(line); err != nil {
				return err
			}
		}
	}
}

// drain copies the transcript to out while the writer is keying
func drain(ctx context.Context, dev *device.Device, out io.Writer, unit time.Duration) {
	ticker := time.NewTicker(unit)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := dev.WriteTo(out); err != nil {
				log.Printf("Transcript output error: %v", err)
				return
			}
		}
	}
}
