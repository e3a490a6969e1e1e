package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which list rows drop tags.
	LayoutCompactWidth = 100

	// LayoutWideWidth is the minimum width to show prep time next to cook time.
	LayoutWideWidth = 140
)

// Log display limits.
const (
	// LogTailLines is the number of log lines read for the Logs view.
	LogTailLines = 500
)

// Timing constants.
const (
	// LogRefreshInterval is how often the Logs view rereads the log file.
	LogRefreshInterval = 2 * time.Second
)

// Chrome rows: header line and command bar.
const chromeHeight = 2
