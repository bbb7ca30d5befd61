package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/catalogue/internal/view"
)

// renderMain renders header, command bar, item table and footer.
func (m Model) renderMain() string {
	frame := m.ctrl.Frame()

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar(frame))
	b.WriteString("\n")
	b.WriteString(m.renderContent(frame))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(frame))
	return b.String()
}

// renderHeader renders the title bar with load status and counts.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	sep := styles.FaintText.Render("  │  ")

	parts := []string{styles.Title.Render("catalogue")}
	if m.source != "" {
		parts = append(parts, styles.MutedText.Render(truncate(m.source, 40)))
	}

	switch {
	case !m.snapshot.Loaded:
		parts = append(parts, m.spinner.View()+styles.WarningText.Render("Loading…"))
	case m.snapshot.LastError != nil:
		parts = append(parts, styles.DangerText.Render("Load failed"))
	default:
		parts = append(parts, styles.Text.Render(fmt.Sprintf("%d items", len(m.ctrl.Items()))))
	}

	parts = append(parts,
		styles.Star.Render("★")+" "+styles.Text.Render(fmt.Sprintf("%d", m.ctrl.FavouriteCount())),
		styles.FaintText.Render(m.theme.Name),
	)

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Padding(0, 1).
		Width(m.width).
		Render(strings.Join(parts, sep))
}

// renderCommandBar shows the active search, category, sort and filter.
func (m Model) renderCommandBar(frame view.Frame) string {
	styles := m.theme.Styles()
	st := frame.State

	var search string
	switch {
	case m.searching:
		search = m.search.View()
	case st.SearchInput != "":
		search = styles.AccentText.Render("/ ") + styles.Text.Render(st.SearchInput)
	default:
		search = styles.FaintText.Render("/ search")
	}
	if m.follower.Pending() {
		search += styles.FaintText.Render(" …")
	}

	arrow := ternary(st.Direction == view.Descending, "↓", "↑")
	parts := []string{
		search,
		styles.MutedText.Render("category ") + styles.CategoryStyle(categoryLabel(st.Category)).Render(st.Category),
		styles.MutedText.Render("sort ") + styles.Text.Render(string(st.SortKey)+" "+arrow),
	}
	if st.FavouritesOnly {
		parts = append(parts, styles.Star.Render("★ favourites only"))
	}

	return styles.Footer.Width(m.width).Render(strings.Join(parts, "   "))
}

// renderContent renders the item table or the empty state.
func (m Model) renderContent(frame view.Frame) string {
	styles := m.theme.Styles()
	height := max(m.height-chromeHeight, 3)

	if len(frame.Entries) == 0 {
		var msg string
		switch {
		case !m.snapshot.Loaded:
			msg = m.spinner.View() + styles.MutedText.Render("Loading catalogue…")
		case m.snapshot.LastError != nil && len(m.ctrl.Items()) == 0:
			msg = styles.DangerText.Render("Could not load the catalogue") + "\n" +
				styles.MutedText.Render(truncate(m.snapshot.LastError.Error(), max(m.width-4, 10)))
		default:
			msg = styles.MutedText.Render(frame.Empty.Message())
		}
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	return lipgloss.NewStyle().Height(height).Render(m.renderTable(frame))
}

// renderFooter renders the page indicator and short help.
func (m Model) renderFooter(frame view.Frame) string {
	styles := m.theme.Styles()

	pager := m.paginator
	pager.TotalPages = max(frame.TotalPages, 1)
	pager.Page = min(max(frame.State.Page-1, 0), pager.TotalPages-1)
	pager.ActiveDot = styles.AccentText.Render("•")
	pager.InactiveDot = styles.FaintText.Render("•")

	page := fmt.Sprintf("page %d of %d  ·  %d results", frame.State.Page, max(frame.TotalPages, 1), frame.Total)
	line := pager.View() + "  " + styles.MutedText.Render(page)

	helpView := m.help
	helpView.Styles.ShortKey = styles.Key
	helpView.Styles.ShortDesc = styles.MutedText
	helpView.Styles.ShortSeparator = styles.FaintText

	return styles.Footer.Width(m.width).Render(line + "\n" + helpView.ShortHelpView(m.keys.ShortHelp()))
}

func categoryLabel(category string) string {
	if category == view.AllCategories {
		return ""
	}
	return category
}
