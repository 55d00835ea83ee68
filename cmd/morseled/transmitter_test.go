package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dbehnke/morseled/internal/config"
	"github.com/dbehnke/morseled/internal/signal"
)

func TestOpenSink_DriverList(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "led0")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	brightness := filepath.Join(dir, "brightness")
	os.WriteFile(brightness, []byte("0\n"), 0o644)

	cfg := config.NewConfig("")
	if err := cfg.LoadFromString("[Signal]\nDriver=sysfs,none\nLED=led0\nSysfsRoot=" + root); err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}

	sink, err := openSink(cfg)
	if err != nil {
		t.Fatalf("openSink() error = %v", err)
	}
	if _, ok := sink.(*signal.SysfsLED); ok {
		t.Error("two drivers should be keyed through a tee")
	}

	sink.On()
	if got, _ := os.ReadFile(brightness); strings.TrimSpace(string(got)) != "255" {
		t.Errorf("brightness after On = %q, want 255", got)
	}
	sink.Off()
	if got, _ := os.ReadFile(brightness); strings.TrimSpace(string(got)) != "0" {
		t.Errorf("brightness after Off = %q, want 0", got)
	}
}

func TestOpenSink_Single(t *testing.T) {
	cfg := config.NewConfig("")
	cfg.SetSignalDriver("none")

	sink, err := openSink(cfg)
	if err != nil {
		t.Fatalf("openSink() error = %v", err)
	}
	if _, ok := sink.(signal.Nop); !ok {
		t.Errorf("openSink() = %T, want signal.Nop", sink)
	}
}

func TestOpenSink_MissingLED(t *testing.T) {
	cfg := config.NewConfig("")
	if err := cfg.LoadFromString("[Signal]\nDriver=log,sysfs\nLED=absent\nSysfsRoot=" + t.TempDir()); err != nil {
		t.Fatal(err)
	}
	if _, err := openSink(cfg); err == nil {
		t.Error("openSink() with a missing LED should fail")
	}
}
