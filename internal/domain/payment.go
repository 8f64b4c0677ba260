package domain

import (
	"fmt"
	"time"
)

type Payment struct {
	ID     int64     `json:"id" db:"id"`
	LoanID int64     `json:"loan_id" db:"loan_id"`
	Amount float64   `json:"amount" db:"amount"`
	PaidOn time.Time `json:"paid_on" db:"paid_on"`
	Note   *string   `json:"note,omitempty" db:"note"`
}

// Validate rejects amounts that would corrupt the paid sum. Zero and
// negative corrections are allowed, matching how the office records them.
func (p *Payment) Validate() error {
	if !isFinite(p.Amount) {
		return fmt.Errorf("%w: payment amount must be finite", ErrInvalidAmount)
	}
	if p.PaidOn.IsZero() {
		return fmt.Errorf("%w: payment date is required", ErrInvalidAmount)
	}
	return nil
}

// SumPayments adds up payment amounts.
func SumPayments(payments []*Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

type PaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Date   string  `json:"date" validate:"required,datetime=2006-01-02"`
	Note   *string `json:"note,omitempty" validate:"omitempty,max=500"`
}
