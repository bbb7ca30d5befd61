// Package app is the composition root for catalogue.
//
// Open turns configuration into an Env: the zap logger, the kv store backing
// favourites and the theme, the item source and a locale-aware sorter. The
// CLI subcommands use an Env directly; Run additionally starts three
// goroutines under an errgroup:
//
//   - a one-shot loader that fetches the catalogue into a state.Store;
//   - an optional fsnotify watcher that reloads a file source when it changes,
//     coalescing bursts of events through a debounce.Follower;
//   - the Bubble Tea program, which polls the state.Store on a tick.
//
// Quitting the UI cancels the shared context, which stops the watcher.
//
// Storage failures are not fatal: when the configured backend cannot be
// opened the session continues on an in-memory store and favourites last
// until exit.
package app
