package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	cmd := newConfigInitCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--path", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[pipeline]") {
		t.Errorf("sample config missing [pipeline] section:\n%s", data)
	}
	if !strings.Contains(out.String(), target) {
		t.Errorf("output should mention target path, got %q", out.String())
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("existing"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	cmd := newConfigInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"--path", target})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error without --overwrite")
	}

	cmd = newConfigInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"--path", target, "--overwrite"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if string(data) == "existing" {
		t.Error("overwrite should replace the file")
	}
}
