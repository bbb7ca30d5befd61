package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a single item's fields.
func Validate(item Item) error {
	if err := validate.Struct(item); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed %s", ErrInvalidItem, verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}
	return nil
}

// Load fetches items from src and keeps the valid ones in source order.
// Invalid items and repeated ids are dropped with a warning. When the fetch
// fails the returned list is empty and the error is returned for reporting;
// it is never fatal.
func Load(ctx context.Context, src Source, logger *zap.Logger) ([]Item, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if src == nil {
		return []Item{}, fmt.Errorf("load items: no source configured")
	}

	raw, err := src.Fetch(ctx)
	if err != nil {
		logger.Warn("item fetch failed", zap.Stringer("source", describe(src)), zap.Error(err))
		return []Item{}, fmt.Errorf("load items: %w", err)
	}

	items := make([]Item, 0, len(raw))
	seen := make(map[int64]struct{}, len(raw))
	for i, item := range raw {
		if err := Validate(item); err != nil {
			logger.Warn("dropping invalid item", zap.Int("index", i), zap.Int64("id", item.ID), zap.Error(err))
			continue
		}
		if _, dup := seen[item.ID]; dup {
			logger.Warn("dropping duplicate item id", zap.Int("index", i), zap.Int64("id", item.ID))
			continue
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}

	logger.Info("items loaded",
		zap.Stringer("source", describe(src)),
		zap.Int("fetched", len(raw)),
		zap.Int("kept", len(items)))
	return items, nil
}

type describedSource struct{ src Source }

func (d describedSource) String() string {
	if s, ok := d.src.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", d.src)
}

func describe(src Source) fmt.Stringer {
	return describedSource{src: src}
}
