package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestPrintLog(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "shelf.log")
	if err := os.WriteFile(logPath, []byte("boot\npoll ok\npoll failed\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	configPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configPath, []byte("log_file = "+strconv.Quote(logPath)+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out bytes.Buffer
	if err := PrintLog(configPath, 2, &out); err != nil {
		t.Fatalf("PrintLog: %v", err)
	}
	if got, want := out.String(), "poll ok\npoll failed\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}
