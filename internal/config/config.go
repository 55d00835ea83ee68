package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the transmitter configuration
type Config struct {
	filename string

	// Morse section
	unitMS uint32

	// Transcript section
	transcriptCapacity uint32
	transcriptPolicy   string

	// Signal section
	signalDriver    string
	signalLED       string
	signalSysfsRoot string
	signalPin       string
	signalActiveLow bool

	// Database section
	databaseEnabled bool
	databasePath    string
	databaseDebug   bool

	// Log section
	logDebug bool
}

// NewConfig creates a new configuration instance
func NewConfig(filename string) *Config {
	return &Config{
		filename: filename,
		// Set reasonable defaults
		unitMS:             200,
		transcriptCapacity: 1024,
		transcriptPolicy:   "drop",
		signalDriver:       "log",
		signalLED:          "morse-code",
		signalSysfsRoot:    "/sys/class/leds",

		databaseEnabled: false,
		databasePath:    "data/morseled.db",
	}
}

// Load loads configuration from the specified file. Files ending in .toml are
// decoded as TOML, everything else as INI.
func (c *Config) Load() error {
	if strings.EqualFold(filepath.Ext(c.filename), ".toml") {
		if _, err := os.Stat(c.filename); err != nil {
			return fmt.Errorf("failed to open config file %s: %w", c.filename, err)
		}
		var doc tomlDocument
		if _, err := toml.DecodeFile(c.filename, &doc); err != nil {
			return fmt.Errorf("failed to decode config file %s: %w", c.filename, err)
		}
		c.applyTOML(doc)
		return nil
	}

	file, err := os.Open(c.filename)
	if err != nil {
		return fmt.Errorf("failed to open config file %s: %w", c.filename, err)
	}
	defer file.Close()

	return c.parseINI(file)
}

// LoadFromString loads INI configuration from a string (useful for testing)
func (c *Config) LoadFromString(data string) error {
	return c.parseINI(strings.NewReader(data))
}

// LoadTOMLString loads TOML configuration from a string
func (c *Config) LoadTOMLString(data string) error {
	var doc tomlDocument
	if _, err := toml.Decode(data, &doc); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	c.applyTOML(doc)
	return nil
}

func (c *Config) parseINI(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if len(line) == 0 || line[0] == '#' || line[0] == ';' {
			continue
		}

		if line[0] == '[' && line[len(line)-1] == ']' {
			currentSection = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch currentSection {
		case "Morse":
			c.parseMorseSection(key, value)
		case "Transcript":
			c.parseTranscriptSection(key, value)
		case "Signal":
			c.parseSignalSection(key, value)
		case "Database":
			c.parseDatabaseSection(key, value)
		case "Log":
			c.parseLogSection(key, value)
		}
	}

	return scanner.Err()
}

func (c *Config) parseMorseSection(key, value string) {
	switch key {
	case "Unit":
		if v, err := strconv.ParseUint(value, 10, 32); err == nil {
			c.unitMS = uint32(v)
		}
	}
}

func (c *Config) parseTranscriptSection(key, value string) {
	switch key {
	case "Capacity":
		if v, err := strconv.ParseUint(value, 10, 32); err == nil {
			c.transcriptCapacity = uint32(v)
		}
	case "Policy":
		c.transcriptPolicy = strings.ToLower(value)
	}
}

func (c *Config) parseSignalSection(key, value string) {
	switch key {
	case "Driver":
		c.signalDriver = strings.ToLower(value)
	case "LED":
		c.signalLED = value
	case "SysfsRoot":
		c.signalSysfsRoot = value
	case "Pin":
		c.signalPin = value
	case "ActiveLow":
		c.signalActiveLow = c.parseBool(value)
	}
}

func (c *Config) parseDatabaseSection(key, value string) {
	switch key {
	case "Enabled":
		c.databaseEnabled = c.parseBool(value)
	case "Path":
		c.databasePath = value
	case "Debug":
		c.databaseDebug = c.parseBool(value)
	}
}

func (c *Config) parseLogSection(key, value string) {
	switch key {
	case "Debug":
		c.logDebug = c.parseBool(value)
	}
}

func (c *Config) parseBool(value string) bool {
	return value == "1" || strings.ToLower(value) == "true" || strings.ToLower(value) == "yes"
}

// tomlDocument mirrors the INI sections. Pointers distinguish unset keys from zero values.
type tomlDocument struct {
	Morse struct {
		Unit *uint32 `toml:"unit"`
	} `toml:"morse"`
	Transcript struct {
		Capacity *uint32 `toml:"capacity"`
		Policy   *string `toml:"policy"`
	} `toml:"transcript"`
	Signal struct {
		Driver    *string `toml:"driver"`
		LED       *string `toml:"led"`
		SysfsRoot *string `toml:"sysfs-root"`
		Pin       *string `toml:"pin"`
		ActiveLow *bool   `toml:"active-low"`
	} `toml:"signal"`
	Database struct {
		Enabled *bool   `toml:"enabled"`
		Path    *string `toml:"path"`
		Debug   *bool   `toml:"debug"`
	} `toml:"database"`
	Log struct {
		Debug *bool `toml:"debug"`
	} `toml:"log"`
}

func (c *Config) applyTOML(doc tomlDocument) {
	setUint(&c.unitMS, doc.Morse.Unit)
	setUint(&c.transcriptCapacity, doc.Transcript.Capacity)
	if doc.Transcript.Policy != nil {
		c.transcriptPolicy = strings.ToLower(*doc.Transcript.Policy)
	}
	if doc.Signal.Driver != nil {
		c.signalDriver = strings.ToLower(*doc.Signal.Driver)
	}
	setString(&c.signalLED, doc.Signal.LED)
	setString(&c.signalSysfsRoot, doc.Signal.SysfsRoot)
	setString(&c.signalPin, doc.Signal.Pin)
	setBool(&c.signalActiveLow, doc.Signal.ActiveLow)
	setBool(&c.databaseEnabled, doc.Database.Enabled)
	setString(&c.databasePath, doc.Database.Path)
	setBool(&c.databaseDebug, doc.Database.Debug)
	setBool(&c.logDebug, doc.Log.Debug)
}

func setUint(dst *uint32, v *uint32) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Validate checks values that would make the transmitter unusable
func (c *Config) Validate() error {
	if c.unitMS == 0 {
		return fmt.Errorf("morse unit must be > 0")
	}
	if c.transcriptCapacity == 0 {
		return fmt.Errorf("transcript capacity must be > 0")
	}
	switch c.transcriptPolicy {
	case "drop", "block", "grow":
	default:
		return fmt.Errorf("unknown transcript policy %q", c.transcriptPolicy)
	}
	drivers := c.GetSignalDrivers()
	if len(drivers) == 0 {
		return fmt.Errorf("no signal driver")
	}
	for _, d := range drivers {
		switch d {
		case "log", "none", "sysfs":
		case "gpio":
			if c.signalPin == "" {
				return fmt.Errorf("signal driver gpio requires Pin")
			}
		default:
			return fmt.Errorf("unknown signal driver %q", d)
		}
	}
	if c.databaseEnabled && c.databasePath == "" {
		return fmt.Errorf("database enabled without a path")
	}
	return nil
}

// SetUnit overrides the base unit in milliseconds
func (c *Config) SetUnit(ms uint32) { c.unitMS = ms }

// SetTranscriptCapacity overrides the transcript capacity
func (c *Config) SetTranscriptCapacity(n uint32) { c.transcriptCapacity = n }

// SetTranscriptPolicy overrides the full transcript policy
func (c *Config) SetTranscriptPolicy(p string) { c.transcriptPolicy = strings.ToLower(p) }

// SetSignalDriver overrides the signal driver
func (c *Config) SetSignalDriver(d string) { c.signalDriver = strings.ToLower(d) }

// Getter methods for Morse section
func (c *Config) GetUnitMS() uint32      { return c.unitMS }
func (c *Config) GetUnit() time.Duration { return time.Duration(c.unitMS) * time.Millisecond }

// Getter methods for Transcript section
func (c *Config) GetTranscriptCapacity() uint32 { return c.transcriptCapacity }
func (c *Config) GetTranscriptPolicy() string   { return c.transcriptPolicy }

// Getter methods for Signal section
func (c *Config) GetSignalDriver() string    { return c.signalDriver }
func (c *Config) GetSignalLED() string       { return c.signalLED }
func (c *Config) GetSignalSysfsRoot() string { return c.signalSysfsRoot }
func (c *Config) GetSignalPin() string       { return c.signalPin }
func (c *Config) GetSignalActiveLow() bool   { return c.signalActiveLow }

// GetSignalDrivers splits a driver list such as "log,gpio"; every listed
// driver is keyed together.
func (c *Config) GetSignalDrivers() []string {
	var drivers []string
	for _, d := range strings.Split(c.signalDriver, ",") {
		if d = strings.TrimSpace(d); d != "" {
			drivers = append(drivers, d)
		}
	}
	return drivers
}

// Getter methods for Database section
func (c *Config) GetDatabaseEnabled() bool { return c.databaseEnabled }
func (c *Config) GetDatabasePath() string  { return c.databasePath }
func (c *Config) GetDatabaseDebug() bool   { return c.databaseDebug }

// Getter methods for Log section
func (c *Config) GetLogDebug() bool { return c.logDebug }

// GetFilename returns the file the configuration was created for
func (c *Config) GetFilename() string { return c.filename }
