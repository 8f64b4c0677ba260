package domain

import (
	"fmt"
	"time"
)

// Loan is a credit issued to a client. Factor, TotalPayable, TermLength and
// Installment are derived by ComputeTerms and recomputed together on edit.
type Loan struct {
	ID           int64     `json:"id" db:"id"`
	ClientID     int64     `json:"client_id" db:"client_id"`
	Principal    float64   `json:"principal" db:"principal"`
	Factor       float64   `json:"factor" db:"factor"`
	TotalPayable float64   `json:"total_payable" db:"total_payable"`
	TermLength   float64   `json:"term_length" db:"term_length"`
	Frequency    Frequency `json:"frequency" db:"frequency"`
	Installment  float64   `json:"installment" db:"installment"`
	StartDate    time.Time `json:"start_date" db:"start_date"`
	Recharges    float64   `json:"recharges" db:"recharges"`
	Active       bool      `json:"active" db:"active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// NewLoan prices a loan for a client starting on startDate.
func NewLoan(clientID int64, principal float64, freq Frequency, terms Terms, startDate time.Time) *Loan {
	loan := &Loan{
		ClientID:  clientID,
		StartDate: startDate,
		Active:    true,
	}
	loan.ApplyTerms(principal, freq, terms)
	return loan
}

// ApplyTerms replaces the loan's pricing wholesale. Recharges and the
// active flag are left alone.
func (l *Loan) ApplyTerms(principal float64, freq Frequency, terms Terms) {
	l.Principal = principal
	l.Frequency = freq
	l.Factor = terms.Factor
	l.TotalPayable = terms.TotalPayable
	l.TermLength = terms.TermLength
	l.Installment = terms.Installment
}

// FinalTotal is what the client owes over the life of the loan.
func (l *Loan) FinalTotal() float64 {
	return l.TotalPayable + l.Recharges
}

// AddRecharge adds a penalty on top of the priced total. It never lowers
// the accumulated recharges.
func (l *Loan) AddRecharge(amount float64) error {
	if !isFinite(amount) || amount <= 0 {
		return fmt.Errorf("%w: recharge must be positive, got %v", ErrInvalidAmount, amount)
	}
	l.Recharges += amount
	return nil
}

// Request DTOs

type LoanTermsRequest struct {
	Principal       float64  `json:"principal" validate:"required,gt=0"`
	Frequency       string   `json:"frequency" validate:"required,frequency"`
	TermLabel       string   `json:"term_label" validate:"required"`
	FallbackRatePct *float64 `json:"fallback_rate_pct,omitempty" validate:"omitempty,gte=0"`
	StartDate       string   `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type RechargeRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// LoanDetail is a loan with its payments (most recent first) and its
// computed status.
type LoanDetail struct {
	Loan     *Loan      `json:"loan"`
	Payments []*Payment `json:"payments"`
	Status   StatusView `json:"status"`
}
