package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/five82/catalogue/internal/app"
)

func newFavouritesCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favourites",
		Aliases: []string{"favs"},
		Short:   "Inspect or change favourites",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print favourite items",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				env, err := app.Open(root.options(cmd))
				if err != nil {
					return err
				}
				defer env.Close()

				ctrl := loadController(cmd.Context(), env, cmd.ErrOrStderr())
				names := make(map[int64]string, len(ctrl.Items()))
				for _, it := range ctrl.Items() {
					names[it.ID] = it.Name
				}

				out := cmd.OutOrStdout()
				ids := env.Favourites.IDs()
				if len(ids) == 0 {
					fmt.Fprintln(out, "No favourites yet")
					return nil
				}
				for _, id := range ids {
					name, ok := names[id]
					if !ok {
						name = "(not in catalogue)"
					}
					fmt.Fprintf(out, "%d\t%s\n", id, name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle <id>",
			Short: "Add or remove an item id",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil || id <= 0 {
					return fmt.Errorf("invalid item id %q", args[0])
				}
				env, err := app.Open(root.options(cmd))
				if err != nil {
					return err
				}
				defer env.Close()

				if env.Favourites.Toggle(id) {
					fmt.Fprintf(cmd.OutOrStdout(), "added %d\n", id)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "removed %d\n", id)
				}
				return nil
			},
		},
	)
	return cmd
}
