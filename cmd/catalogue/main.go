package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/catalogue/internal/app"
	"github.com/five82/catalogue/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "catalogue: %v\n", err)
		return 1
	}
	return 0
}

// rootFlags are shared by every command.
type rootFlags struct {
	configPath string
	source     string
	ephemeral  bool
}

func (f *rootFlags) options(cmd *cobra.Command) app.Options {
	return app.Options{
		ConfigPath:     f.configPath,
		SourceOverride: f.source,
		Ephemeral:      f.ephemeral,
		Stderr:         cmd.ErrOrStderr(),
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "catalogue",
		Short: "Browse a product catalogue in the terminal",
		Long: `catalogue loads a list of items from a file, a URL or the built-in sample
and lets you search, filter by category, sort, page through and star them.

Run without a subcommand to start the interactive browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), flags.options(cmd))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.StringVar(&flags.source, "source", "", "item file or URL, overriding the configured source")
	pf.BoolVar(&flags.ephemeral, "ephemeral", false, "keep favourites and theme in memory only")

	root.AddCommand(
		newListCmd(flags),
		newFavouritesCmd(flags),
		newCategoriesCmd(flags),
	)
	return root
}
