package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dbehnke/morseled/internal/config"
	"github.com/dbehnke/morseled/internal/database"
	"github.com/dbehnke/morseled/internal/device"
	"github.com/dbehnke/morseled/internal/history"
	"github.com/dbehnke/morseled/internal/signal"
	"github.com/dbehnke/morseled/internal/transcript"
)

// openSink opens every signal output named in the config. Several drivers
// are keyed together through a tee.
func openSink(cfg *config.Config) (signal.Sink, error) {
	sigLog := log.New(os.Stderr, "[SIG] ", log.LstdFlags)

	var sinks []signal.Sink
	for _, driver := range cfg.GetSignalDrivers() {
		sink, err := openDriver(cfg, driver, sigLog)
		if err != nil {
			return nil, fmt.Errorf("signal %s: %w", driver, err)
		}
		sinks = append(sinks, sink)
	}

	switch len(sinks) {
	case 0:
		return signal.Nop{}, nil
	case 1:
		return sinks[0], nil
	default:
		return signal.Tee(sinks...), nil
	}
}

func openDriver(cfg *config.Config, driver string, sigLog *log.Logger) (signal.Sink, error) {
	switch driver {
	case "none":
		return signal.Nop{}, nil
	case "sysfs":
		led, err := signal.OpenSysfsLED(cfg.GetSignalSysfsRoot(), cfg.GetSignalLED(), sigLog)
		if err != nil {
			return nil, err
		}
		return led, nil
	case "gpio":
		pin, err := signal.OpenGPIO(cfg.GetSignalPin(), cfg.GetSignalActiveLow(), sigLog)
		if err != nil {
			return nil, err
		}
		return pin, nil
	default:
		return signal.NewLogger(sigLog), nil
	}
}

// openHistory opens the history database when enabled. A failure is logged
// and the transmitter runs without history.
func openHistory(cfg *config.Config) (*database.DB, *history.DatabaseJournal) {
	if !cfg.GetDatabaseEnabled() {
		return nil, nil
	}

	dbLog := log.New(os.Stderr, "[DB] ", log.LstdFlags)
	db, err := database.NewDB(database.Config{
		Path:  cfg.GetDatabasePath(),
		Debug: cfg.GetDatabaseDebug(),
	}, dbLog)
	if err != nil {
		log.Printf("Failed to initialize history database: %v", err)
		log.Printf("Continuing without transmission history...")
		return nil, nil
	}
	if err := db.Health(); err != nil {
		log.Printf("History database not responding: %v", err)
		log.Printf("Continuing without transmission history...")
		db.Close()
		return nil, nil
	}

	journal := history.NewDatabaseJournal(database.NewTransmissionRepository(db.GetDB()), dbLog)
	journal.SetDebug(cfg.GetDatabaseDebug())
	return db, journal
}

// newDevice assembles the transmitter described by the config
func newDevice(cfg *config.Config, sink signal.Sink, journal *history.DatabaseJournal) (*device.Device, error) {
	policy, err := transcript.ParsePolicy(cfg.GetTranscriptPolicy())
	if err != nil {
		return nil, err
	}

	dcfg := device.Config{
		Unit:     cfg.GetUnit(),
		Capacity: int(cfg.GetTranscriptCapacity()),
		Policy:   policy,
		Logger:   log.Default(),
		Debug:    cfg.GetLogDebug(),
	}
	if journal != nil {
		dcfg.Journal = journal
	}
	return device.New(sink, dcfg), nil
}
