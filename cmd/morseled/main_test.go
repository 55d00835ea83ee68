package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := execute(root); err != nil {
		t.Fatalf("morseled %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestTableCommand(t *testing.T) {
	out := runCLI(t, "table")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 26 {
		t.Fatalf("table printed %d lines, want 26", len(lines))
	}
	if !strings.HasPrefix(lines[0], "A  0xB800") || !strings.HasSuffix(lines[0], ".-") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[25], "--..") {
		t.Errorf("last line = %q", lines[25])
	}
}

func TestSendCommand(t *testing.T) {
	out := runCLI(t, "send", "--signal", "none", "--unit", "1", "SOS")
	if out != "... --- ... \n" {
		t.Errorf("transcript = %q", out)
	}
}

func TestSendWithHistory(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "morseled.toml")
	db := filepath.Join(dir, "history.db")
	data := "[morse]\nunit = 1\n\n[signal]\ndriver = \"none\"\n\n[database]\nenabled = true\npath = \"" + db + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	runCLI(t, "send", "--config", cfgPath, "ab c")

	out := runCLI(t, "history", "--config", cfgPath)
	if !strings.Contains(out, ".- -...    -.-. ") {
		t.Errorf("history output missing transcript:\n%s", out)
	}
	if !strings.Contains(out, "1 transmissions, 3 letters") {
		t.Errorf("history output missing totals:\n%s", out)
	}

	out = runCLI(t, "history", "--config", cfgPath, "--id", "1")
	if !strings.Contains(out, `"ab c"`) || strings.Contains(out, "transmissions,") {
		t.Errorf("history --id output:\n%s", out)
	}

	out = runCLI(t, "history", "--config", cfgPath, "--since", "1h")
	if !strings.Contains(out, ".- -...    -.-. ") {
		t.Errorf("history --since output missing transcript:\n%s", out)
	}

	out = runCLI(t, "history", "--config", cfgPath, "--prune", "1ns")
	if out != "pruned 1 transmissions, 0 remaining\n" {
		t.Errorf("history --prune output = %q", out)
	}
}

func TestLoadConfigRejectsPolicy(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"send", "--signal", "none", "--policy", "sometimes", "x"})
	if err := execute(root); err == nil {
		t.Error("unknown policy should be rejected")
	}
}

func TestProfileFlushedOnFailure(t *testing.T) {
	dir := t.TempDir()
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"send", "--profile", dir, "--signal", "none", "--policy", "sometimes", "x"})

	if err := execute(root); err == nil {
		t.Fatal("unknown policy should be rejected")
	}
	if activeProfile != nil {
		t.Error("profile still running after a failed command")
	}
	info, err := os.Stat(filepath.Join(dir, "cpu.pprof"))
	if err != nil {
		t.Fatalf("cpu profile not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("cpu profile is empty")
	}
}
