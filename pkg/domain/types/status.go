package types

// Status is the overall classification of an assessment
type Status string

const (
	StatusGreen Status = "GREEN"
	StatusAmber Status = "AMBER"
	StatusRed   Status = "RED"
)

// AllStatuses returns all statuses in report order
func AllStatuses() []Status {
	return []Status{
		StatusGreen,
		StatusAmber,
		StatusRed,
	}
}

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusGreen,
		StatusAmber,
		StatusRed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// Difficulty returns the label used by the report summary for this status
func (s Status) Difficulty() string {
	switch s {
	case StatusGreen:
		return "Easy"
	case StatusAmber:
		return "Medium"
	case StatusRed:
		return "Hard"
	default:
		return ""
	}
}
