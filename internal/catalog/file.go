package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileSource reads items from a local JSON, YAML or TOML file, chosen by
// extension. JSON and YAML accept a bare list or {items: [...]}; TOML uses
// [[items]] tables.
type FileSource struct {
	Path string
}

// NewFileSource returns a source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Fetch implements Source.
func (s *FileSource) Fetch(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	items, err := Decode(filepath.Ext(s.Path), data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(s.Path), err)
	}
	return items, nil
}

func (s *FileSource) String() string {
	return "file:" + s.Path
}

// Decode parses an item document in the format named by ext.
func Decode(ext string, data []byte) ([]Item, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json", "":
		return decodeJSON(data)
	case "yaml", "yml":
		return decodeYAML(data)
	case "toml":
		var doc document
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc.Items, nil
	default:
		return nil, fmt.Errorf("unsupported item format %q", ext)
	}
}

func decodeJSON(data []byte) ([]Item, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []Item
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.Items, nil
}

func decodeYAML(data []byte) ([]Item, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var items []Item
		if err := root.Decode(&items); err != nil {
			return nil, err
		}
		return items, nil
	}
	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Items, nil
}
