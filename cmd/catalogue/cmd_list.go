package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/five82/catalogue/internal/app"
	"github.com/five82/catalogue/internal/catalog"
	"github.com/five82/catalogue/internal/view"
)

type listFlags struct {
	search         string
	category       string
	sort           string
	desc           bool
	favouritesOnly bool
	page           int
}

func newListCmd(root *rootFlags) *cobra.Command {
	flags := &listFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of items",
		Example: `  catalogue list --category Fruit --sort price --desc
  catalogue list --search an --page 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, root, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.search, "search", "s", "", "case-insensitive name search")
	f.StringVarP(&flags.category, "category", "c", view.AllCategories, "category to show")
	f.StringVar(&flags.sort, "sort", string(view.SortByName), "sort key: name, price or rating")
	f.BoolVar(&flags.desc, "desc", false, "sort descending")
	f.BoolVarP(&flags.favouritesOnly, "favourites-only", "f", false, "only show favourites")
	f.IntVarP(&flags.page, "page", "p", 1, "page number (1-based)")
	return cmd
}

func runList(cmd *cobra.Command, root *rootFlags, flags *listFlags) error {
	key, err := view.ParseSortKey(flags.sort)
	if err != nil {
		return err
	}

	env, err := app.Open(root.options(cmd))
	if err != nil {
		return err
	}
	defer env.Close()

	ctrl := loadController(cmd.Context(), env, cmd.ErrOrStderr())

	if !ctrl.SetCategory(flags.category) {
		return fmt.Errorf("unknown category %q (have %v)", flags.category, ctrl.Categories())
	}
	ctrl.SetSearchInput(flags.search)
	ctrl.SetSearch(flags.search)
	dir := view.Ascending
	if flags.desc {
		dir = view.Descending
	}
	ctrl.SetSort(key, dir)
	ctrl.SetFavouritesOnly(flags.favouritesOnly)

	if flags.page != 1 && !ctrl.SetPage(flags.page) {
		frame := ctrl.Frame()
		return fmt.Errorf("page %d is out of range (1-%d)", flags.page, max(frame.TotalPages, 1))
	}

	renderFrame(cmd.OutOrStdout(), ctrl.Frame())
	return nil
}

// loadController fetches the catalogue once and returns a controller over it.
// A failed load is reported on errOut and leaves the catalogue empty.
func loadController(ctx context.Context, env *app.Env, errOut io.Writer) *view.Controller {
	items, err := catalog.Load(ctx, env.Source, env.Logger)
	if err != nil {
		env.Logger.Warn("catalogue load failed", zap.Error(err))
		fmt.Fprintf(errOut, "warning: %v\n", err)
	}
	ctrl := env.Controller()
	ctrl.SetItems(items)
	return ctrl
}

func renderFrame(w io.Writer, frame view.Frame) {
	if len(frame.Entries) == 0 {
		fmt.Fprintln(w, frame.Empty.Message())
		return
	}

	rows := make([][]string, 0, len(frame.Entries))
	for _, e := range frame.Entries {
		star := ""
		if e.Favourite {
			star = "★"
		}
		rows = append(rows, []string{
			star,
			fmt.Sprintf("%d", e.Item.ID),
			e.Item.Name,
			e.Item.Category,
			fmt.Sprintf("%.2f", e.Item.Price),
			fmt.Sprintf("%.1f", e.Item.Rating),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "ID", "Name", "Category", "Price", "Rating").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			if col >= 4 {
				return style.Align(lipgloss.Right)
			}
			return style
		})
	fmt.Fprintln(w, t.Render())

	st := frame.State
	fmt.Fprintf(w, "page %d of %d, %d results, sorted by %s %s\n",
		st.Page, max(frame.TotalPages, 1), frame.Total, st.SortKey, st.Direction)
}
