package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Storage backends understood by the kv layer.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config captures everything catalogue reads from its config file.
type Config struct {
	// SourcePath is a local item file (.json, .yaml, .yml or .toml).
	SourcePath string
	// SourceURL is an HTTP endpoint serving the item list as JSON.
	SourceURL string
	// Watch reloads SourcePath when it changes on disk.
	Watch bool

	StorageBackend string
	StoragePath    string
	// StorageMaxBytes caps the file backend's document size. Zero means
	// unlimited.
	StorageMaxBytes int

	PageSize int
	Debounce time.Duration
	Locale   string

	LogLevel string
	LogFile  string

	Theme string
}

const (
	defaultConfigPath  = "~/.config/catalogue/config.toml"
	defaultStateDir    = "~/.local/share/catalogue"
	defaultLogFile     = "~/.local/state/catalogue/catalogue.log"
	defaultPageSize    = 8
	defaultDebounceMS  = 300
	defaultLocale      = "en"
	defaultLogLevel    = "info"
	defaultTheme       = "Nightfox"
	maxPageSize        = 100
	fileStoreName      = "state.toml"
	sqliteStoreName    = "state.db"
	defaultStorageKind = BackendFile
)

type rawConfig struct {
	Theme  string `toml:"theme"`
	Source struct {
		Path  string `toml:"path"`
		URL   string `toml:"url"`
		Watch bool   `toml:"watch"`
	} `toml:"source"`
	Storage struct {
		Backend  string `toml:"backend"`
		Path     string `toml:"path"`
		MaxBytes int    `toml:"max_bytes"`
	} `toml:"storage"`
	View struct {
		PageSize   int    `toml:"page_size"`
		DebounceMS *int   `toml:"debounce_ms"`
		Locale     string `toml:"locale"`
	} `toml:"view"`
	Log struct {
		Level string `toml:"level"`
		File  string `toml:"file"`
	} `toml:"log"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	cfg := Config{
		StorageBackend: defaultStorageKind,
		PageSize:       defaultPageSize,
		Debounce:       defaultDebounceMS * time.Millisecond,
		Locale:         defaultLocale,
		LogLevel:       defaultLogLevel,
		LogFile:        mustExpand(defaultLogFile),
		Theme:          defaultTheme,
	}
	cfg.StoragePath = defaultStoragePath(cfg.StorageBackend)
	return cfg
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return fromRaw(raw)
}

func fromRaw(raw rawConfig) (Config, error) {
	cfg := Default()

	if p := strings.TrimSpace(raw.Source.Path); p != "" {
		expanded, err := expandPath(p)
		if err != nil {
			return Config{}, fmt.Errorf("source path: %w", err)
		}
		cfg.SourcePath = expanded
	}
	cfg.SourceURL = strings.TrimSpace(raw.Source.URL)
	if cfg.SourcePath != "" && cfg.SourceURL != "" {
		return Config{}, fmt.Errorf("source: path and url are mutually exclusive")
	}
	cfg.Watch = raw.Source.Watch

	backend := strings.ToLower(strings.TrimSpace(raw.Storage.Backend))
	switch backend {
	case "":
		backend = defaultStorageKind
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return Config{}, fmt.Errorf("storage: unknown backend %q", raw.Storage.Backend)
	}
	cfg.StorageBackend = backend
	cfg.StoragePath = defaultStoragePath(backend)
	if p := strings.TrimSpace(raw.Storage.Path); p != "" {
		cfg.StoragePath = mustExpand(p)
	}
	if raw.Storage.MaxBytes < 0 {
		return Config{}, fmt.Errorf("storage: max_bytes must not be negative")
	}
	cfg.StorageMaxBytes = raw.Storage.MaxBytes

	if raw.View.PageSize != 0 {
		if raw.View.PageSize < 0 || raw.View.PageSize > maxPageSize {
			return Config{}, fmt.Errorf("view: page_size must be between 1 and %d", maxPageSize)
		}
		cfg.PageSize = raw.View.PageSize
	}
	if raw.View.DebounceMS != nil {
		if *raw.View.DebounceMS < 0 {
			return Config{}, fmt.Errorf("view: debounce_ms must not be negative")
		}
		cfg.Debounce = time.Duration(*raw.View.DebounceMS) * time.Millisecond
	}
	if l := strings.TrimSpace(raw.View.Locale); l != "" {
		cfg.Locale = l
	}

	if l := strings.TrimSpace(raw.Log.Level); l != "" {
		cfg.LogLevel = strings.ToLower(l)
	}
	if f := strings.TrimSpace(raw.Log.File); f != "" {
		cfg.LogFile = mustExpand(f)
	}

	if t := strings.TrimSpace(raw.Theme); t != "" {
		cfg.Theme = t
	}
	return cfg, nil
}

func defaultStoragePath(backend string) string {
	switch backend {
	case BackendSQLite:
		return mustExpand(defaultStateDir + "/" + sqliteStoreName)
	case BackendMemory:
		return ""
	default:
		return mustExpand(defaultStateDir + "/" + fileStoreName)
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading tilde and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
