package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/catalogue/internal/catalog"
	"github.com/five82/catalogue/internal/config"
	"github.com/five82/catalogue/internal/favourites"
	"github.com/five82/catalogue/internal/kv"
	"github.com/five82/catalogue/internal/logging"
	"github.com/five82/catalogue/internal/view"
)

// Options configure a catalogue session.
type Options struct {
	ConfigPath     string
	SourceOverride string    // path or URL replacing the configured source
	Ephemeral      bool      // keep favourites and theme in memory only
	Stderr         io.Writer // startup warnings; nil means os.Stderr
}

// Env holds the dependencies shared by the TUI and the CLI commands.
type Env struct {
	Config     config.Config
	Logger     *zap.Logger
	Store      kv.Store
	Favourites *favourites.Set
	Source     catalog.Source
	Sorter     *view.Sorter
}

// Open loads configuration and builds every dependency a session needs.
// Callers must Close the returned Env.
func Open(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.SourceOverride != "" {
		applySourceOverride(&cfg, opts.SourceOverride)
	}
	if opts.Ephemeral {
		cfg.StorageBackend = config.BackendMemory
		cfg.StoragePath = ""
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		stderr := opts.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		fmt.Fprintf(stderr, "warning: logging disabled: %v\n", err)
		logger = zap.NewNop()
	}

	store, err := OpenStore(cfg)
	if err != nil {
		// Persistence is best-effort: run with an in-memory store.
		logger.Warn("storage unavailable, using memory", zap.String("backend", cfg.StorageBackend), zap.Error(err))
		store = kv.NewMemoryStore()
	}

	source, err := BuildSource(cfg)
	if err != nil {
		_ = kv.Close(store)
		_ = logger.Sync()
		return nil, fmt.Errorf("init source: %w", err)
	}

	return &Env{
		Config:     cfg,
		Logger:     logger,
		Store:      store,
		Favourites: favourites.Open(store, logger),
		Source:     source,
		Sorter:     view.NewSorter(cfg.Locale),
	}, nil
}

// Controller returns a fresh view controller over the env's favourites.
func (e *Env) Controller() *view.Controller {
	return view.NewController(e.Favourites, e.Sorter, e.Config.PageSize)
}

// Close releases the kv store and flushes the logger.
func (e *Env) Close() error {
	err := kv.Close(e.Store)
	_ = e.Logger.Sync()
	return err
}

// OpenStore opens the kv backend named by cfg.
func OpenStore(cfg config.Config) (kv.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return kv.NewMemoryStore(), nil
	case config.BackendSQLite:
		return kv.OpenSQLite(cfg.StoragePath)
	case config.BackendFile, "":
		store, err := kv.NewFileStore(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		store.MaxBytes = cfg.StorageMaxBytes
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// BuildSource picks the item source: a URL, a local file, or the embedded
// sample catalogue when neither is configured.
func BuildSource(cfg config.Config) (catalog.Source, error) {
	switch {
	case cfg.SourceURL != "" && cfg.SourcePath != "":
		return nil, errors.New("source path and url are mutually exclusive")
	case cfg.SourceURL != "":
		return catalog.NewHTTPSource(cfg.SourceURL)
	case cfg.SourcePath != "":
		return catalog.NewFileSource(cfg.SourcePath), nil
	default:
		return catalog.EmbeddedSource{}, nil
	}
}

func applySourceOverride(cfg *config.Config, source string) {
	lower := strings.ToLower(source)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		cfg.SourceURL = source
		cfg.SourcePath = ""
		return
	}
	cfg.SourceURL = ""
	if expanded, err := config.ExpandPath(source); err == nil {
		cfg.SourcePath = expanded
	} else {
		cfg.SourcePath = source
	}
}
