package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	CycleTheme  key.Binding
	Diagnostics key.Binding

	// Filters
	Search         key.Binding
	NextCategory   key.Binding
	PrevCategory   key.Binding
	SortName       key.Binding
	SortPrice      key.Binding
	SortRating     key.Binding
	FavouritesOnly key.Binding

	// Items
	ToggleFavourite key.Binding
	Up              key.Binding
	Down            key.Binding
	PrevPage        key.Binding
	NextPage        key.Binding

	// Search input
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Diagnostics: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Show log"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Next category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Previous category"),
		),
		SortName: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Sort by name"),
		),
		SortPrice: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Sort by price"),
		),
		SortRating: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Sort by rating"),
		),
		FavouritesOnly: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Favourites only"),
		),

		ToggleFavourite: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle favourite"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "["),
			key.WithHelp("←/[", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "]"),
			key.WithHelp("→/]", "Next page"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Done"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear search"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextCategory, k.SortName, k.SortPrice, k.SortRating, k.FavouritesOnly, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, one group per column.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage},
		{k.Search, k.NextCategory, k.PrevCategory, k.SortName, k.SortPrice, k.SortRating},
		{k.ToggleFavourite, k.FavouritesOnly},
		{k.CycleTheme, k.Diagnostics, k.Help, k.Quit},
	}
}

// helpTitles names the FullHelp groups in order.
var helpTitles = []string{"Navigation", "Filters", "Favourites", "General"}
