// Package config loads catalogue's TOML configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/catalogue/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Item source: built-in sample catalogue
//   - Storage: file backend at ~/.local/share/catalogue/state.toml
//     (state.db for the sqlite backend, nothing for memory)
//   - Page size: 8
//   - Search debounce: 300ms
//   - Collation locale: en
//   - Log: info level, ~/.local/state/catalogue/catalogue.log
//   - Theme: Nightfox
//
// # TOML Format
//
//	theme = "Slate"
//
//	[source]
//	path = "~/catalogue/items.yaml"   # or: url = "https://example.com/items.json"
//	watch = true
//
//	[storage]
//	backend = "sqlite"                # file | sqlite | memory
//	path = "~/catalogue/state.db"
//	max_bytes = 65536                 # file backend only; 0 is unlimited
//
//	[view]
//	page_size = 10
//	debounce_ms = 250
//	locale = "de"
//
//	[log]
//	level = "debug"
//	file = "~/catalogue/catalogue.log"
//
// Every field is optional. Tilde expansion is performed for paths.
//
// # Error Handling
//
// Load returns errors for unreadable files, TOML parse errors and values that
// can never work (both a source path and URL, an unknown storage backend, a
// page size outside 1..100, a negative debounce or max_bytes). A missing file
// is NOT an error.
package config
