package types

import "time"

// ReviewFrequency is how often a submitted assessment must be reviewed.
// Free text is accepted on drafts; only the values below schedule reminders.
type ReviewFrequency string

const (
	ReviewMonthly      ReviewFrequency = "monthly"
	ReviewQuarterly    ReviewFrequency = "quarterly"
	ReviewSemiAnnually ReviewFrequency = "semi_annually"
	ReviewAnnually     ReviewFrequency = "annually"
)

const day = 24 * time.Hour

// Interval returns the review interval, or false when the frequency has no schedule
func (f ReviewFrequency) Interval() (time.Duration, bool) {
	switch f {
	case ReviewMonthly:
		return 30 * day, true
	case ReviewQuarterly:
		return 91 * day, true
	case ReviewSemiAnnually:
		return 182 * day, true
	case ReviewAnnually:
		return 365 * day, true
	default:
		return 0, false
	}
}

// String returns the string representation of the review frequency
func (f ReviewFrequency) String() string {
	return string(f)
}
