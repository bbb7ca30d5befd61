package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/catalogue/internal/app"
)

func newCategoriesCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Print the categories in the catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.Open(root.options(cmd))
			if err != nil {
				return err
			}
			defer env.Close()

			ctrl := loadController(cmd.Context(), env, cmd.ErrOrStderr())
			for _, c := range ctrl.Categories() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}
