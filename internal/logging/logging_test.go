package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalogue.log")

	logger, err := New(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hello", zap.String("key", "favourites"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) || !strings.Contains(string(data), `"key":"favourites"`) {
		t.Fatalf("log file = %q, want JSON entry with msg and key", string(data))
	}
}

func TestNew_LevelFiltersEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.log")

	logger, err := New(Options{Level: "WARN", File: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("quiet")
	logger.Warn("loud")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "quiet") {
		t.Fatalf("info entry written at warn level: %q", string(data))
	}
	if !strings.Contains(string(data), "loud") {
		t.Fatalf("warn entry missing: %q", string(data))
	}
}

func TestNew_EmptyFileIsNop(t *testing.T) {
	logger, err := New(Options{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if logger == nil {
		t.Fatalf("New returned nil logger")
	}
	logger.Info("discarded")
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(Options{Level: "loudest", File: filepath.Join(t.TempDir(), "x.log")}); err == nil {
		t.Fatalf("New returned nil error for invalid level")
	}
}

func TestTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	var content strings.Builder
	var all []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		all = append(all, line)
	}
	if err := os.WriteFile(path, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"zero", 0, nil},
		{"negative", -1, nil},
		{"partial", 3, all[7:]},
		{"exact", 10, all},
		{"more than file", 25, all},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tail(path, tt.n)
			if err != nil {
				t.Fatalf("Tail returned error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Tail(%d) mismatch (-want +got):\n%s", tt.n, diff)
			}
		})
	}
}

func TestTail_MissingFile(t *testing.T) {
	lines, err := Tail(filepath.Join(t.TempDir(), "missing.log"), 5)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("Tail = %v, want no lines", lines)
	}
}
