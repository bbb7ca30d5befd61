package catalog

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed sample.json
var sampleItems []byte

// EmbeddedSource serves the built-in sample catalogue.
type EmbeddedSource struct{}

// Fetch implements Source.
func (EmbeddedSource) Fetch(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read sample items: %w", err)
	}
	items, err := decodeJSON(sampleItems)
	if err != nil {
		return nil, fmt.Errorf("decode sample items: %w", err)
	}
	return items, nil
}

func (EmbeddedSource) String() string {
	return "built-in sample"
}
