package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/catalogue/internal/view"
)

const (
	colStar = iota
	colName
	colCategory
)

// renderTable renders the current page of entries with the selected row
// highlighted. Narrow terminals drop the category column.
func (m Model) renderTable(frame view.Frame) string {
	styles := m.theme.Styles()
	compact := m.width < compactWidth

	headers := []string{"", "Name", "Category", "Price", "Rating"}
	if compact {
		headers = []string{"", "Name", "Price", "Rating"}
	}
	nameWidth := max(m.width/3, 12)

	rows := make([][]string, 0, len(frame.Entries))
	for _, e := range frame.Entries {
		row := []string{ternary(e.Favourite, "★", " "), truncate(e.Item.Name, nameWidth)}
		if !compact {
			row = append(row, e.Item.Category)
		}
		row = append(row, formatPrice(e.Item.Price), formatRating(e.Item.Rating))
		rows = append(rows, row)
	}

	selected := m.selected
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Border))).
		Headers(headers...).
		Rows(rows...).
		Width(m.width).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return cell.Inherit(styles.AccentText).Bold(true)
			case row == selected:
				return cell.Inherit(styles.Selected)
			case col == colStar:
				return cell.Inherit(styles.Star)
			case col == colCategory && !compact && row < len(frame.Entries):
				return cell.Inherit(styles.CategoryStyle(frame.Entries[row].Item.Category))
			case col == colName:
				return cell.Inherit(styles.Text)
			}
			return cell.Inherit(styles.MutedText)
		}).
		Render()
}
