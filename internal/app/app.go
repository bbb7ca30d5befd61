package app

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/catalogue/internal/persist"
	"github.com/five82/catalogue/internal/state"
	"github.com/five82/catalogue/internal/ui"
)

// ThemeKey is the kv key the selected theme persists under.
const ThemeKey = "theme"

// Run boots the catalogue TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := env.Logger
	logger.Info("starting catalogue",
		zap.String("source", describeSource(env)),
		zap.String("storage", env.Config.StorageBackend),
		zap.Int("page_size", env.Config.PageSize),
	)

	store := &state.Store{}
	g, gctx := errgroup.WithContext(ctx)

	// The load is one-shot: a failure leaves an empty catalogue with the
	// error on screen and is not retried.
	g.Go(func() error {
		refresh(gctx, store, env.Source, logger)
		return nil
	})

	if env.Config.Watch && env.Config.SourcePath != "" {
		path := env.Config.SourcePath
		g.Go(func() error {
			err := watchFile(gctx, path, 0, nil, logger, func() {
				refresh(gctx, store, env.Source, logger)
			})
			if err != nil {
				logger.Warn("source watcher disabled", zap.Error(err))
			}
			return nil
		})
	}

	g.Go(func() error {
		defer cancel()
		return ui.Run(ui.Options{
			Context:    gctx,
			Store:      store,
			Controller: env.Controller(),
			Theme:      persist.NewCell(env.Store, ThemeKey, env.Config.Theme, logger),
			Debounce:   env.Config.Debounce,
			SourceName: describeSource(env),
			LogFile:    env.Config.LogFile,
			Logger:     logger,
		})
	})

	err = g.Wait()
	logger.Info("catalogue stopped", zap.Error(err))
	return err
}

func describeSource(env *Env) string {
	if s, ok := env.Source.(interface{ String() string }); ok {
		return s.String()
	}
	return "catalogue"
}
