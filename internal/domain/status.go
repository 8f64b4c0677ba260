package domain

import (
	"math"
	"time"

	"github.com/segyhp/credit-ledger/pkg/utils"
)

// PaidTolerance is the business margin under which a remaining balance counts
// as settled. It is policy, not float noise, and must stay at 0.1.
const PaidTolerance = 0.1

type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "active"
	LoanStatusFinished LoanStatus = "finished"
)

// StatusView is the computed state of a loan on a given day.
type StatusView struct {
	Status           LoanStatus `json:"status"`
	Paid             float64    `json:"paid"`
	Remaining        float64    `json:"remaining"`
	ExpectedToDate   float64    `json:"expected_to_date"`
	Arrears          float64    `json:"arrears"`
	Percent          int        `json:"percent"`
	ElapsedPeriods   int        `json:"elapsed_periods"`
	NextDueDate      *time.Time `json:"next_due_date,omitempty"`
	Recharges        float64    `json:"recharges"`
	FinalTotal       float64    `json:"final_total"`
	EstimatedEndDate time.Time  `json:"estimated_end_date"`
	DailyCost        float64    `json:"daily_cost"`
	DaysTotal        float64    `json:"days_total"`
	DaysPaid         float64    `json:"days_paid"`
	DaysPending      float64    `json:"days_pending"`
}

// ComputeStatus derives arrears, progress and day accounting for a loan given
// the sum of its payments. It does not touch loan.Active; see ReconcileActive.
func ComputeStatus(loan *Loan, paid float64, today time.Time) StatusView {
	finalTotal := loan.FinalTotal()
	periodDays := loan.Frequency.PeriodDays()

	elapsed := utils.ElapsedPeriods(loan.StartDate, today, periodDays)

	expected := float64(elapsed) * loan.Installment
	if expected > finalTotal {
		expected = finalTotal
	}

	view := StatusView{
		Paid:             paid,
		ExpectedToDate:   expected,
		Arrears:          math.Max(0, expected-paid),
		Remaining:        math.Max(0, finalTotal-paid),
		ElapsedPeriods:   elapsed,
		Recharges:        loan.Recharges,
		FinalTotal:       finalTotal,
		EstimatedEndDate: utils.AddWeeks(loan.StartDate, loan.TermLength),
	}

	if IsSettled(finalTotal, paid) {
		view.Status = LoanStatusFinished
		view.Remaining = 0
		view.Arrears = 0
	} else {
		view.Status = LoanStatusActive
		next := utils.CalculateDueDate(loan.StartDate, elapsed+1, periodDays)
		view.NextDueDate = &next
	}

	view.DailyCost, view.DaysTotal, view.DaysPaid = businessDayAccounting(loan, finalTotal, paid, view.EstimatedEndDate)
	view.DaysPending = math.Max(0, view.DaysTotal-view.DaysPaid)

	if finalTotal > 0 {
		percent := math.Floor(paid / finalTotal * 100)
		view.Percent = int(math.Min(100, math.Max(0, percent)))
	}

	return view
}

// businessDayAccounting expresses the loan in working days: each installment
// buys BusinessDays days. Loans without an installment fall back to the
// calendar span up to the estimated end date, prorated by what was paid.
func businessDayAccounting(loan *Loan, finalTotal, paid float64, endDate time.Time) (dailyCost, daysTotal, daysPaid float64) {
	if loan.Installment > 0 && isFinite(loan.Installment) {
		businessDays := float64(loan.Frequency.BusinessDays())
		dailyCost = loan.Installment / businessDays
		daysPaid = paid * businessDays / loan.Installment
		daysTotal = finalTotal * businessDays / loan.Installment
		return dailyCost, daysTotal, daysPaid
	}

	daysTotal = float64(utils.DaysBetween(loan.StartDate, endDate))
	if finalTotal > 0 {
		daysPaid = paid / finalTotal * daysTotal
	}
	return 0, daysTotal, daysPaid
}

// IsSettled reports whether what remains of finalTotal after paid is within
// PaidTolerance.
func IsSettled(finalTotal, paid float64) bool {
	return finalTotal-paid <= PaidTolerance
}

// ShouldBeActive is the active-flag rule used after edits.
func ShouldBeActive(finalTotal, paid float64) bool {
	return !IsSettled(finalTotal, paid)
}

// ReconcileActive aligns loan.Active with a freshly computed view and reports
// whether the flag changed. The caller owns persisting the change.
func ReconcileActive(loan *Loan, view StatusView) bool {
	active := view.Status == LoanStatusActive
	if loan.Active == active {
		return false
	}
	loan.Active = active
	return true
}
