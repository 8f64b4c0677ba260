package domain

import (
	"fmt"
	"strings"
)

// Frequency is how often a loan installment falls due.
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// ParseFrequency accepts the canonical values and the labels stored by the
// legacy office system ("Semanal", "Quincenal", "Mensual").
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekly", "semanal":
		return FrequencyWeekly, nil
	case "biweekly", "quincenal":
		return FrequencyBiweekly, nil
	case "monthly", "mensual":
		return FrequencyMonthly, nil
	}
	return "", fmt.Errorf("%w: unknown frequency %q", ErrInvalidFrequency, s)
}

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	}
	return false
}

// PeriodDays is the calendar-day length used to count elapsed periods.
// Unknown frequencies count as weekly.
func (f Frequency) PeriodDays() int {
	switch f {
	case FrequencyBiweekly:
		return 15
	case FrequencyMonthly:
		return 30
	default:
		return 7
	}
}

// BusinessDays is the number of working days one installment covers.
func (f Frequency) BusinessDays() int {
	switch f {
	case FrequencyBiweekly:
		return 10
	case FrequencyMonthly:
		return 20
	default:
		return 5
	}
}
