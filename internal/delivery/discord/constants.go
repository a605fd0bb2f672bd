package discord

import "time"

const (
	// Display limits
	maxEmbedsPerMessage = 10
	maxFieldLength      = 1024
	maxDescription      = 4096
	maxScheduleLines    = 25

	// Embed colors
	colorNavy  = 0x002D72 // Play cards
	colorGold  = 0xFFD700 // Schedule
	colorGreen = 0x2ECC71 // Answers
	colorGray  = 0x95A5A6 // Placeholder

	interactionTimeout = 3 * time.Minute
	dateLayout         = "2006-01-02"
)
