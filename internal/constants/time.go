package constants

// Greeting boundaries (hour of day, local time)
const (
	AfternoonStartHour = 12
	EveningStartHour   = 18
)

// ProductiveActivityTypes are the activity types counted as productive time
var ProductiveActivityTypes = []string{"work", "study"}

// Window searched when an activity is added without a start time
const (
	DefaultDayStart = "08:00"
	DefaultDayEnd   = "22:00"
	// SlotGranularityMin rounds automatically chosen start times
	SlotGranularityMin = 15
)
