package tui

import "time"

const (
	// cadence of the poll that drains dispatcher results and queued messages
	tickInterval = 250 * time.Millisecond

	chromeVerticalPadding = 4 // title bar + borders + status bar
	panelBorderPadding    = 2

	// popup widths as percentages of the full terminal width
	messagePopupWidthPct = 40
	menuPopupWidthPct    = 40
	inputPopupWidthPct   = 40

	minPopupWidth = 24
)
