package types

import "fmt"

// TreatmentStrategy is the chosen response to an identified risk
type TreatmentStrategy string

const (
	TreatmentAvoid    TreatmentStrategy = "avoid"
	TreatmentTransfer TreatmentStrategy = "transfer"
	TreatmentMitigate TreatmentStrategy = "mitigate"
	TreatmentAccept   TreatmentStrategy = "accept"
)

// AllTreatmentStrategies returns all valid treatment strategies
func AllTreatmentStrategies() []TreatmentStrategy {
	return []TreatmentStrategy{
		TreatmentAvoid,
		TreatmentTransfer,
		TreatmentMitigate,
		TreatmentAccept,
	}
}

// IsValid checks if the treatment strategy is valid
func (s TreatmentStrategy) IsValid() bool {
	switch s {
	case TreatmentAvoid, TreatmentTransfer, TreatmentMitigate, TreatmentAccept:
		return true
	default:
		return false
	}
}

// String returns the string representation of the treatment strategy
func (s TreatmentStrategy) String() string {
	return string(s)
}

// ParseTreatmentStrategy parses a string into a TreatmentStrategy
func ParseTreatmentStrategy(s string) (TreatmentStrategy, error) {
	strategy := TreatmentStrategy(s)
	if !strategy.IsValid() {
		return "", fmt.Errorf("invalid treatment strategy: %s", s)
	}
	return strategy, nil
}
