package signal

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// DefaultLEDRoot is where the kernel exposes LED class devices
	DefaultLEDRoot = "/sys/class/leds"
	// DefaultLEDName is the trigger name the transmitter has always used
	DefaultLEDName = "morse-code"

	ledFull = 255
)

// SysfsLED keys an LED class device by writing its brightness attribute
type SysfsLED struct {
	path   string
	full   int
	logger *log.Logger
}

// OpenSysfsLED resolves <root>/<name>/brightness. When the device publishes
// max_brightness that value is used for "on", otherwise 255.
func OpenSysfsLED(root, name string, logger *log.Logger) (*SysfsLED, error) {
	if root == "" {
		root = DefaultLEDRoot
	}
	if name == "" {
		name = DefaultLEDName
	}
	dir := filepath.Join(root, name)

	path := filepath.Join(dir, "brightness")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("led %s: %w", name, err)
	}

	full := ledFull
	if raw, err := os.ReadFile(filepath.Join(dir, "max_brightness")); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(string(raw))); err == nil && v > 0 {
			full = v
		}
	}

	return &SysfsLED{path: path, full: full, logger: logger}, nil
}

func (s *SysfsLED) On()  { s.set(s.full) }
func (s *SysfsLED) Off() { s.set(0) }

func (s *SysfsLED) set(v int) {
	if err := os.WriteFile(s.path, []byte(strconv.Itoa(v)+"\n"), 0o644); err != nil && s.logger != nil {
		s.logger.Printf("LED write %s failed: %v", s.path, err)
	}
}

// Path returns the brightness file being driven
func (s *SysfsLED) Path() string {
	return s.path
}
