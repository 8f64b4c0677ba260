package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TermPolicy decides what happens when a term label matches no plan and
// cannot be read as a number.
type TermPolicy int

const (
	// TermPolicyStrict rejects the label with ErrInvalidTermLabel.
	TermPolicyStrict TermPolicy = iota
	// TermPolicyLenient treats the loan as payable in a single period, the
	// way loans were historically recorded.
	TermPolicyLenient
)

const weeklyBusinessDays = 5

// Terms are the derived repayment terms of a loan.
type Terms struct {
	Factor       float64 `json:"factor"`
	TotalPayable float64 `json:"total_payable"`
	TermLength   float64 `json:"term_length"`
	Installment  float64 `json:"installment"`
}

// ComputeTerms derives factor, total payable, real term length and per-period
// installment for a principal under the given plan selection.
//
// Weekly table plans keep the division path total/installment for the term
// length instead of days/5 so that recomputed values match stored ones.
func ComputeTerms(principal float64, freq Frequency, label string, fallbackRatePct float64, policy TermPolicy) (Terms, error) {
	if !isFinite(principal) || principal <= 0 {
		return Terms{}, fmt.Errorf("%w: principal must be positive, got %v", ErrInvalidAmount, principal)
	}

	if plan, ok := LookupPlan(freq, label); ok {
		if plan.Weekly != nil {
			total := principal * plan.Weekly.Factor
			daily := total / float64(plan.Weekly.CalendarDays)
			installment := daily * weeklyBusinessDays
			return Terms{
				Factor:       plan.Weekly.Factor,
				TotalPayable: total,
				TermLength:   total / installment,
				Installment:  installment,
			}, nil
		}

		term, err := parseTermLength(label)
		if err != nil {
			return Terms{}, err
		}
		total := principal * plan.Period.Factor
		return Terms{
			Factor:       plan.Period.Factor,
			TotalPayable: total,
			TermLength:   term,
			Installment:  total / term,
		}, nil
	}

	if !isFinite(fallbackRatePct) || fallbackRatePct < 0 {
		return Terms{}, fmt.Errorf("%w: fallback rate must be non-negative, got %v", ErrInvalidAmount, fallbackRatePct)
	}
	factor := 1 + fallbackRatePct/100
	total := principal * factor

	term, err := parseTermLength(label)
	if err != nil {
		if policy != TermPolicyLenient || !isUnparseable(label) {
			return Terms{}, err
		}
		term = 1
	}

	return Terms{
		Factor:       factor,
		TotalPayable: total,
		TermLength:   term,
		Installment:  total / term,
	}, nil
}

// parseTermLength reads a term label as a positive finite number of periods.
func parseTermLength(label string) (float64, error) {
	term, err := strconv.ParseFloat(strings.TrimSpace(label), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidTermLabel, label)
	}
	if !isFinite(term) || term <= 0 {
		return 0, fmt.Errorf("%w: term length must be positive, got %q", ErrInvalidTermLabel, label)
	}
	return term, nil
}

// isUnparseable reports whether the label is not a number at all, as opposed
// to a number that is unusable as a term (zero, negative, infinite).
func isUnparseable(label string) bool {
	term, err := strconv.ParseFloat(strings.TrimSpace(label), 64)
	return err != nil || math.IsNaN(term)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
