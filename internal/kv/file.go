package kv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// FileStore keeps all keys in one TOML document on disk. The file is re-read on
// every Get so that edits made by another process are picked up.
type FileStore struct {
	mu   sync.Mutex
	path string

	// MaxBytes caps the encoded document size. Zero means unlimited.
	MaxBytes int
}

// NewFileStore returns a store backed by the file at path. The file and its
// directory are created lazily on the first Set.
func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("file store: %w", ErrUnavailable)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}
	return &FileStore{path: abs}, nil
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

// Get implements Store.
func (s *FileStore) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return "", false, err
	}
	value, ok := doc[key]
	return value, ok, nil
}

// Set implements Store.
func (s *FileStore) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		// An unreadable document is replaced rather than blocking every write.
		if !errors.Is(err, errCorrupt) {
			return err
		}
		doc = map[string]string{}
	}
	doc[key] = value

	bytes, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if s.MaxBytes > 0 && len(bytes) > s.MaxBytes {
		return fmt.Errorf("write %s: %w", key, ErrQuotaExceeded)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w: %w", ErrUnavailable, err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o644); err != nil {
		return fmt.Errorf("write state: %w: %w", ErrUnavailable, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace state: %w: %w", ErrUnavailable, err)
	}
	return nil
}

var errCorrupt = errors.New("state file is not valid TOML")

func (s *FileStore) read() (map[string]string, error) {
	bytes, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read state: %w: %w", ErrUnavailable, err)
	}
	doc := map[string]string{}
	if err := toml.Unmarshal(bytes, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", errCorrupt, err)
	}
	return doc, nil
}
