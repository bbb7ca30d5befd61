package view

import (
	"slices"

	"github.com/five82/catalogue/internal/catalog"
)

// DefaultPageSize is used when a controller is built with a non-positive size.
const DefaultPageSize = 8

// EmptyReason says why a frame has no entries.
type EmptyReason int

const (
	EmptyNone EmptyReason = iota
	// EmptyNoFavourites: the favourites-only filter is on and nothing matched.
	EmptyNoFavourites
	// EmptyNoResults: the general filters matched nothing.
	EmptyNoResults
)

// Message returns the user-facing text for the reason.
func (r EmptyReason) Message() string {
	switch r {
	case EmptyNoFavourites:
		return "No favourites yet"
	case EmptyNoResults:
		return "No items match these filters"
	default:
		return ""
	}
}

// Favourites is the favourites capability the controller drives.
type Favourites interface {
	Membership
	Toggle(id int64) bool
	Len() int
}

// State is the mutable view state.
type State struct {
	// SearchInput is the raw text as typed; Search is its debounced value and
	// the one the pipeline filters on.
	SearchInput    string
	Search         string
	Category       string
	SortKey        SortKey
	Direction      Direction
	FavouritesOnly bool
	Page           int
	PageSize       int
}

// Query returns the pipeline input described by the state.
func (s State) Query() Query {
	return Query{
		Search:         s.Search,
		Category:       s.Category,
		FavouritesOnly: s.FavouritesOnly,
		SortKey:        s.SortKey,
		Direction:      s.Direction,
	}
}

// Entry is one row of the current page.
type Entry struct {
	Item      catalog.Item
	Favourite bool
}

// Frame is everything the presentation layer needs for one render.
type Frame struct {
	Entries    []Entry
	Categories []string
	State      State
	Total      int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	Empty      EmptyReason
}

// Controller owns the view state for one session and recomputes frames from
// it. It is not safe for concurrent use.
type Controller struct {
	items      []catalog.Item
	categories []string
	favs       Favourites
	sorter     *Sorter
	state      State

	results []catalog.Item
	dirty   bool
}

// NewController builds a controller with default state: no search, all
// categories, name ascending, page 1.
func NewController(favs Favourites, sorter *Sorter, pageSize int) *Controller {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if sorter == nil {
		sorter = NewSorter("en")
	}
	return &Controller{
		categories: Categories(nil),
		favs:       favs,
		sorter:     sorter,
		state: State{
			Category:  AllCategories,
			SortKey:   SortByName,
			Direction: Ascending,
			Page:      1,
			PageSize:  pageSize,
		},
		dirty: true,
	}
}

// State returns a copy of the current view state.
func (c *Controller) State() State {
	return c.state
}

// Items returns the full item list.
func (c *Controller) Items() []catalog.Item {
	return slices.Clone(c.items)
}

// Categories returns the derived category list, AllCategories first.
func (c *Controller) Categories() []string {
	return slices.Clone(c.categories)
}

// SetItems replaces the item list and recomputes categories. A selected
// category that no longer exists falls back to AllCategories. The page is
// clamped to the new result range rather than reset.
func (c *Controller) SetItems(items []catalog.Item) {
	c.items = slices.Clone(items)
	c.categories = Categories(c.items)
	if !slices.Contains(c.categories, c.state.Category) {
		c.state.Category = AllCategories
		c.state.Page = 1
	}
	c.dirty = true
	c.clampPage()
}

// SetSearchInput records the raw search text. It does not filter; the
// debounced value arrives through SetSearch.
func (c *Controller) SetSearchInput(raw string) {
	c.state.SearchInput = raw
}

// SetSearch applies a debounced search term.
func (c *Controller) SetSearch(term string) {
	if term == c.state.Search {
		return
	}
	c.state.Search = term
	c.resetPage()
}

// SetCategory selects a category filter. Unknown values are ignored.
func (c *Controller) SetCategory(category string) bool {
	if !slices.Contains(c.categories, category) {
		return false
	}
	if category != c.state.Category {
		c.state.Category = category
		c.resetPage()
	}
	return true
}

// CycleCategory steps through the category list by delta, wrapping around.
func (c *Controller) CycleCategory(delta int) {
	n := len(c.categories)
	if n == 0 {
		return
	}
	idx := slices.Index(c.categories, c.state.Category)
	if idx < 0 {
		idx = 0
	}
	next := ((idx+delta)%n + n) % n
	c.SetCategory(c.categories[next])
}

// SelectSort sorts by key. Selecting the current key again flips the
// direction; a different key starts ascending.
func (c *Controller) SelectSort(key SortKey) {
	if key == c.state.SortKey {
		c.state.Direction = c.state.Direction.Flip()
	} else {
		c.state.SortKey = key
		c.state.Direction = Ascending
	}
	c.resetPage()
}

// SetSort sets key and direction explicitly.
func (c *Controller) SetSort(key SortKey, dir Direction) {
	if key == c.state.SortKey && dir == c.state.Direction {
		return
	}
	c.state.SortKey = key
	c.state.Direction = dir
	c.resetPage()
}

// SetFavouritesOnly turns the favourites-only filter on or off.
func (c *Controller) SetFavouritesOnly(on bool) {
	if on == c.state.FavouritesOnly {
		return
	}
	c.state.FavouritesOnly = on
	c.resetPage()
}

// ToggleFavourite flips id's membership and returns the new membership.
// With favourites-only active the result may shrink, so the page is clamped.
func (c *Controller) ToggleFavourite(id int64) bool {
	if c.favs == nil {
		return false
	}
	member := c.favs.Toggle(id)
	if c.state.FavouritesOnly {
		c.dirty = true
		c.clampPage()
	}
	return member
}

// FavouriteCount returns the size of the favourites set.
func (c *Controller) FavouriteCount() int {
	if c.favs == nil {
		return 0
	}
	return c.favs.Len()
}

// PrevPage moves back one page. It reports false on the first page.
func (c *Controller) PrevPage() bool {
	if c.state.Page <= 1 {
		return false
	}
	c.state.Page--
	return true
}

// NextPage moves forward one page. It reports false on the last page.
func (c *Controller) NextPage() bool {
	if c.state.Page >= TotalPages(len(c.compute()), c.state.PageSize) {
		return false
	}
	c.state.Page++
	return true
}

// SetPage jumps to page when it lies within the current results.
func (c *Controller) SetPage(page int) bool {
	total := TotalPages(len(c.compute()), c.state.PageSize)
	if page < 1 || page > max(total, 1) {
		return false
	}
	c.state.Page = page
	return true
}

// Frame computes the current page and its surroundings.
func (c *Controller) Frame() Frame {
	results := c.compute()
	total := len(results)
	pages := TotalPages(total, c.state.PageSize)

	page := Paginate(results, c.state.Page, c.state.PageSize)
	entries := make([]Entry, len(page))
	for i, it := range page {
		entries[i] = Entry{Item: it, Favourite: c.favs != nil && c.favs.Has(it.ID)}
	}

	f := Frame{
		Entries:    entries,
		Categories: slices.Clone(c.categories),
		State:      c.state,
		Total:      total,
		TotalPages: pages,
		HasPrev:    c.state.Page > 1,
		HasNext:    c.state.Page < pages,
	}
	if total == 0 {
		f.Empty = EmptyNoResults
		if c.state.FavouritesOnly {
			f.Empty = EmptyNoFavourites
		}
	}
	return f
}

func (c *Controller) resetPage() {
	c.state.Page = 1
	c.dirty = true
}

func (c *Controller) clampPage() {
	pages := TotalPages(len(c.compute()), c.state.PageSize)
	c.state.Page = min(max(c.state.Page, 1), max(pages, 1))
}

func (c *Controller) compute() []catalog.Item {
	if c.dirty {
		c.results = Apply(c.items, c.state.Query(), c.favs, c.sorter)
		c.dirty = false
	}
	return c.results
}
