package application

import "time"

const (
	// Render pass
	defaultPlayLimit = 2
	maxPlayLimit     = 25

	// Sessions
	defaultSessionTTL = 24 * time.Hour
	sessionIssuer     = "playbook"

	// Usernames
	minUsernameLength = 3
	maxUsernameLength = 32

	// Season schedule workbook
	scheduleSheetName   = "Schedule"
	scheduleHeaderColor = "FFD700" // Gold
	scheduleDateFormat  = "2006-01-02"

	// Chat
	maxQuestionLength = 1000
)

var scheduleHeaders = []string{"Date", "Game", "Away", "Home", "Venue"}
