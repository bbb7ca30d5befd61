package ui

import "time"

const (
	// compactWidth is the width below which the category column is dropped.
	compactWidth = 70

	// chromeHeight is the number of rows taken by header, command bar and
	// footer around the item table.
	chromeHeight = 6
)

const (
	// snapshotTick is how often the UI polls the load store.
	snapshotTick = 250 * time.Millisecond

	// diagnosticsLines is how many log lines the diagnostics overlay shows.
	diagnosticsLines = 200
)
