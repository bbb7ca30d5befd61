package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PageSize != defaultPageSize {
		t.Fatalf("PageSize = %d, want %d", cfg.PageSize, defaultPageSize)
	}
	if cfg.Debounce != defaultDebounceMS*time.Millisecond {
		t.Fatalf("Debounce = %v, want %v", cfg.Debounce, defaultDebounceMS*time.Millisecond)
	}
	if cfg.StorageBackend != BackendFile {
		t.Fatalf("StorageBackend = %q, want %q", cfg.StorageBackend, BackendFile)
	}
	want := filepath.Join(home, ".local/share/catalogue", fileStoreName)
	if cfg.StoragePath != want {
		t.Fatalf("StoragePath = %q, want %q", cfg.StoragePath, want)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.SourcePath != "" || cfg.SourceURL != "" {
		t.Fatalf("source = %q/%q, want both empty", cfg.SourcePath, cfg.SourceURL)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
theme = "  Slate "

[source]
path = "  ~/items.yaml  "
watch = true

[storage]
backend = " SQLite "

[view]
page_size = 12
debounce_ms = 0
locale = "sv"

[log]
level = "DEBUG"
file = "~/logs/c.log"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SourcePath != filepath.Join(home, "items.yaml") {
		t.Fatalf("SourcePath = %q, want %q", cfg.SourcePath, filepath.Join(home, "items.yaml"))
	}
	if !cfg.Watch {
		t.Fatalf("Watch = false, want true")
	}
	if cfg.StorageBackend != BackendSQLite {
		t.Fatalf("StorageBackend = %q, want %q", cfg.StorageBackend, BackendSQLite)
	}
	if filepath.Base(cfg.StoragePath) != sqliteStoreName {
		t.Fatalf("StoragePath = %q, want basename %q", cfg.StoragePath, sqliteStoreName)
	}
	if cfg.PageSize != 12 {
		t.Fatalf("PageSize = %d, want 12", cfg.PageSize)
	}
	if cfg.Debounce != 0 {
		t.Fatalf("Debounce = %v, want 0", cfg.Debounce)
	}
	if cfg.Locale != "sv" {
		t.Fatalf("Locale = %q, want sv", cfg.Locale)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.LogFile != filepath.Join(home, "logs/c.log") {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, filepath.Join(home, "logs/c.log"))
	}
	if cfg.Theme != "Slate" {
		t.Fatalf("Theme = %q, want Slate", cfg.Theme)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
theme = "   "
[view]
locale = ""
[log]
level = " "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", cfg.Theme, defaultTheme)
	}
	if cfg.Locale != defaultLocale {
		t.Fatalf("Locale = %q, want %q", cfg.Locale, defaultLocale)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
}

func TestLoad_Rejections(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"invalid toml", `theme = [`, "parse config"},
		{"both sources", "[source]\npath = \"/a.json\"\nurl = \"http://x\"\n", "mutually exclusive"},
		{"unknown backend", "[storage]\nbackend = \"redis\"\n", "unknown backend"},
		{"page size too large", "[view]\npage_size = 1000\n", "page_size"},
		{"negative debounce", "[view]\ndebounce_ms = -5\n", "debounce_ms"},
		{"negative max bytes", "[storage]\nmax_bytes = -1\n", "max_bytes"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.body), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load returned nil error, want %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tc.want)
			}
		})
	}
}

func TestLoad_MemoryBackendHasNoPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[storage]\nbackend = \"memory\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.StoragePath != "" {
		t.Fatalf("StoragePath = %q, want empty", cfg.StoragePath)
	}
}

func TestLoad_StorageMaxBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[storage]\nmax_bytes = 4096\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.StorageMaxBytes != 4096 {
		t.Fatalf("StorageMaxBytes = %d, want 4096", cfg.StorageMaxBytes)
	}
	if Default().StorageMaxBytes != 0 {
		t.Fatalf("default StorageMaxBytes = %d, want 0", Default().StorageMaxBytes)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := ExpandPath("   "); err == nil {
		t.Fatalf("ExpandPath returned nil error, want error")
	}
}
