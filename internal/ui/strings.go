package ui

import (
	"fmt"
	"math"
	"strings"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// formatPrice renders a price with two decimals.
func formatPrice(p float64) string {
	return fmt.Sprintf("%.2f", p)
}

// formatRating renders a 0-5 rating as stars followed by the number, e.g.
// "★★★★☆ 4.2". Stars round to the nearest whole.
func formatRating(r float64) string {
	full := int(math.Round(math.Max(0, math.Min(5, r))))
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full) + fmt.Sprintf(" %.1f", r)
}

// ternary returns a if cond is true, otherwise b.
func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
