// Package ui is the Bubble Tea front end for catalogue.
//
// The Model keeps no catalogue logic of its own. It forwards key presses to a
// view.Controller and renders the Frame the controller returns, so every
// filtering, sorting and paging rule lives in package view.
//
// Data arrives by polling: a tick fetches state.Store snapshots and a new
// Generation replaces the controller's item list.
//
// Search keystrokes update the raw input immediately but pass through a
// debounce.Follower before reaching the controller. The follower's settle
// callback only signals a buffered channel; a command waiting on that
// channel turns the signal into a message, so the controller is touched from
// the update loop alone. Quitting stops the follower.
//
// Files:
//
//   - app.go: model, update loop and Run
//   - header.go: header, command bar, content and footer
//   - table.go: item table (lipgloss/table)
//   - diagnostics.go: log overlay
//   - help.go, keys.go: key bindings and help overlay
//   - theme.go: palettes and styles
package ui
