// Package catalog defines catalogue items and where they come from.
package catalog

import (
	"context"
	"errors"
)

// Rating bounds.
const (
	MinRating = 0
	MaxRating = 5
)

// ErrInvalidItem marks an item rejected during loading.
var ErrInvalidItem = errors.New("invalid item")

// Item is one catalogue entry. Items never change after load; identity is ID.
type Item struct {
	ID       int64   `json:"id" yaml:"id" toml:"id" validate:"gt=0"`
	Name     string  `json:"name" yaml:"name" toml:"name" validate:"required"`
	Category string  `json:"category" yaml:"category" toml:"category" validate:"required"`
	Price    float64 `json:"price" yaml:"price" toml:"price" validate:"gte=0"`
	Rating   float64 `json:"rating" yaml:"rating" toml:"rating" validate:"gte=0,lte=5"`
}

// Source produces the full item list.
type Source interface {
	Fetch(ctx context.Context) ([]Item, error)
}

// document is the wrapped form accepted alongside a bare list.
type document struct {
	Items []Item `json:"items" yaml:"items" toml:"items"`
}
