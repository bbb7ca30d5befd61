package view

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/five82/catalogue/internal/catalog"
)

// AllCategories is the category filter value that disables category filtering.
const AllCategories = "All"

// SortKey selects the field results are ordered by.
type SortKey string

const (
	SortByName   SortKey = "name"
	SortByPrice  SortKey = "price"
	SortByRating SortKey = "rating"
)

// ParseSortKey maps user input onto a SortKey. Empty input means name.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortByName, nil
	case SortByName, SortByPrice, SortByRating:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want name, price or rating)", s)
	}
}

// Direction is the sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// Membership answers whether an item id is a favourite.
type Membership interface {
	Has(id int64) bool
}

// Query is the pipeline input beyond the item list itself.
type Query struct {
	Search         string
	Category       string
	FavouritesOnly bool
	SortKey        SortKey
	Direction      Direction
}

// Sorter orders items. Name comparison is collated for a locale.
type Sorter struct {
	collator *collate.Collator
}

// NewSorter builds a Sorter for the BCP 47 locale tag. An unparseable tag
// falls back to English.
func NewSorter(locale string) *Sorter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.English
	}
	return &Sorter{collator: collate.New(tag)}
}

// Sort orders items in place, stably, by key and direction. The direction
// negates the comparison, so equal keys keep their input order either way.
func (s *Sorter) Sort(items []catalog.Item, key SortKey, dir Direction) {
	compare := s.comparator(key)
	sign := 1
	if dir == Descending {
		sign = -1
	}
	slices.SortStableFunc(items, func(a, b catalog.Item) int {
		return sign * compare(a, b)
	})
}

func (s *Sorter) comparator(key SortKey) func(a, b catalog.Item) int {
	switch key {
	case SortByPrice:
		return func(a, b catalog.Item) int { return cmp.Compare(a.Price, b.Price) }
	case SortByRating:
		return func(a, b catalog.Item) int { return cmp.Compare(a.Rating, b.Rating) }
	default:
		return func(a, b catalog.Item) int { return s.collator.CompareString(a.Name, b.Name) }
	}
}

// Search keeps items whose name contains term, ignoring case. An empty term
// keeps everything.
func Search(items []catalog.Item, term string) []catalog.Item {
	if term == "" {
		return items
	}
	needle := strings.ToLower(term)
	return keep(items, func(it catalog.Item) bool {
		return strings.Contains(strings.ToLower(it.Name), needle)
	})
}

// ByCategory keeps items whose category equals category exactly.
// AllCategories keeps everything.
func ByCategory(items []catalog.Item, category string) []catalog.Item {
	if category == AllCategories || category == "" {
		return items
	}
	return keep(items, func(it catalog.Item) bool { return it.Category == category })
}

// FavouritesOnly keeps items whose id is in favs.
func FavouritesOnly(items []catalog.Item, favs Membership) []catalog.Item {
	if favs == nil {
		return []catalog.Item{}
	}
	return keep(items, func(it catalog.Item) bool { return favs.Has(it.ID) })
}

// Apply runs the search, category, favourites and sort stages in that order.
// The input slice is never modified.
func Apply(items []catalog.Item, q Query, favs Membership, sorter *Sorter) []catalog.Item {
	out := Search(items, q.Search)
	out = ByCategory(out, q.Category)
	if q.FavouritesOnly {
		out = FavouritesOnly(out, favs)
	}
	out = slices.Clone(out)
	if out == nil {
		out = []catalog.Item{}
	}
	if sorter == nil {
		sorter = NewSorter("en")
	}
	sorter.Sort(out, q.SortKey, q.Direction)
	return out
}

// Paginate returns the 1-based page of size items. A page before the first or
// past the end is empty; Paginate never clamps.
func Paginate(items []catalog.Item, page, size int) []catalog.Item {
	if page < 1 || size < 1 || page-1 >= TotalPages(len(items), size) {
		return []catalog.Item{}
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	return slices.Clone(items[start:end])
}

// TotalPages returns how many pages of size hold n results.
func TotalPages(n, size int) int {
	if n <= 0 || size < 1 {
		return 0
	}
	pages := n / size
	if n%size != 0 {
		pages++
	}
	return pages
}

// Categories returns the distinct categories of items in ascending order with
// AllCategories first.
func Categories(items []catalog.Item) []string {
	seen := make(map[string]struct{})
	var distinct []string
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		distinct = append(distinct, it.Category)
	}
	sort.Strings(distinct)
	return append([]string{AllCategories}, distinct...)
}

func keep(items []catalog.Item, pred func(catalog.Item) bool) []catalog.Item {
	out := make([]catalog.Item, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}
