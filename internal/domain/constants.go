package domain

// Reservation validation constants
const (
	DefaultMinDurationMinutes = 15
	DefaultMaxDurationMinutes = 480 // 8 hours
	DefaultSlotStepMinutes    = 30
	MaxCustomerNameLength     = 200
	MaxNotesLength            = 500
	MaxPartySize              = 12
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Sync triggers recorded on SyncBatch
const (
	TriggerSchedule = "schedule"
	TriggerManual   = "manual"
	TriggerCLI      = "cli"
)
