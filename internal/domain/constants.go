package domain

// Business validation constants
const (
	MinPlayerCount              = 1
	MaxPlayerCount              = 22
	MaxCancellationReasonLength = 500
	MaxBlockReasonLength        = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
