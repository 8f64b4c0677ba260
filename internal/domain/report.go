package domain

import (
	"math"
	"time"

	"github.com/segyhp/credit-ledger/pkg/utils"
)

// DashboardTotals are the office-wide money figures.
type DashboardTotals struct {
	Clients         int64   `json:"clients"`
	TotalLent       float64 `json:"total_lent"`
	TotalCollected  float64 `json:"total_collected"`
	TotalReceivable float64 `json:"total_receivable"`
}

// LoanSums are column sums over every loan.
type LoanSums struct {
	Principal    float64 `db:"principal"`
	TotalPayable float64 `db:"total_payable"`
	Recharges    float64 `db:"recharges"`
}

// NewDashboardTotals combines the stored sums. Receivable includes recharges.
func NewDashboardTotals(clients int64, loans LoanSums, collected float64) DashboardTotals {
	return DashboardTotals{
		Clients:         clients,
		TotalLent:       loans.Principal,
		TotalCollected:  collected,
		TotalReceivable: utils.SumFloats(loans.TotalPayable, loans.Recharges, -collected),
	}
}

// ExportRow is one loan in the spreadsheet report. Its day figures use the
// calendar-week convention (7 days a week, 4 weeks a month), which differs on
// purpose from the business-day accounting in StatusView.
type ExportRow struct {
	LoanID        int64     `json:"loan_id"`
	ClientName    string    `json:"client_name"`
	Address       string    `json:"address"`
	Workplace     string    `json:"workplace"`
	DNI           string    `json:"dni"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	TotalDays     int       `json:"total_days"`
	DaysPaid      float64   `json:"days_paid"`
	DaysPending   float64   `json:"days_pending"`
	TermLength    float64   `json:"term_length"`
	Principal     float64   `json:"principal"`
	TotalPayable  float64   `json:"total_payable"`
	Installment   float64   `json:"installment"`
	Paid          float64   `json:"paid"`
	Pending       float64   `json:"pending"`
	WeeksPaid     float64   `json:"weeks_paid"`
	WeeksPending  float64   `json:"weeks_pending"`
	MonthsPaid    float64   `json:"months_paid"`
	MonthsPending float64   `json:"months_pending"`
	Active        bool      `json:"active"`
}

// BuildExportRow computes the calendar-week report figures of a loan. Pending
// is measured against the priced total only; recharges are not part of it.
func BuildExportRow(client *Client, loan *Loan, paid float64) ExportRow {
	endDate := utils.AddWeeks(loan.StartDate, loan.TermLength)
	totalDays := utils.DaysBetween(loan.StartDate, endDate)

	var weeksPaid float64
	if loan.Installment > 0 {
		weeksPaid = paid / loan.Installment
	}
	weeksPending := math.Max(0, loan.TermLength-weeksPaid)
	daysPaid := weeksPaid * 7

	row := ExportRow{
		LoanID:        loan.ID,
		StartDate:     loan.StartDate,
		EndDate:       endDate,
		TotalDays:     totalDays,
		DaysPaid:      daysPaid,
		DaysPending:   math.Max(0, float64(totalDays)-daysPaid),
		TermLength:    loan.TermLength,
		Principal:     loan.Principal,
		TotalPayable:  loan.TotalPayable,
		Installment:   loan.Installment,
		Paid:          paid,
		Pending:       math.Max(0, loan.TotalPayable-paid),
		WeeksPaid:     weeksPaid,
		WeeksPending:  weeksPending,
		MonthsPaid:    weeksPaid / 4,
		MonthsPending: weeksPending / 4,
		Active:        loan.Active,
	}
	if client != nil {
		row.ClientName = client.Name
		row.Address = client.Address
		row.DNI = client.DNI
		if client.Workplace != nil {
			row.Workplace = *client.Workplace
		}
	}
	return row
}

// StatementLine is one payment with the balance left after it.
type StatementLine struct {
	PaymentID int64     `json:"payment_id"`
	Date      time.Time `json:"date"`
	Amount    float64   `json:"amount"`
	Balance   float64   `json:"balance"`
}

// Statement is the account statement of a loan.
type Statement struct {
	LoanID          int64           `json:"loan_id"`
	ClientName      string          `json:"client_name"`
	DNI             string          `json:"dni"`
	Address         string          `json:"address"`
	StartDate       time.Time       `json:"start_date"`
	Active          bool            `json:"active"`
	Principal       float64         `json:"principal"`
	InterestAndFees float64         `json:"interest_and_fees"`
	Recharges       float64         `json:"recharges"`
	FinalTotal      float64         `json:"final_total"`
	Paid            float64         `json:"paid"`
	Balance         float64         `json:"balance"`
	Lines           []StatementLine `json:"lines"`
}

// BuildStatement lays out a loan's payments oldest first with the running
// balance. payments must already be ordered by date ascending.
func BuildStatement(client *Client, loan *Loan, payments []*Payment) Statement {
	finalTotal := loan.FinalTotal()
	paid := SumPayments(payments)

	st := Statement{
		LoanID:          loan.ID,
		StartDate:       loan.StartDate,
		Active:          loan.Active,
		Principal:       loan.Principal,
		InterestAndFees: loan.TotalPayable - loan.Principal,
		Recharges:       loan.Recharges,
		FinalTotal:      finalTotal,
		Paid:            paid,
		Balance:         math.Max(0, finalTotal-paid),
		Lines:           make([]StatementLine, 0, len(payments)),
	}
	if client != nil {
		st.ClientName = client.Name
		st.DNI = client.DNI
		st.Address = client.Address
	}

	running := finalTotal
	for _, p := range payments {
		running -= p.Amount
		st.Lines = append(st.Lines, StatementLine{
			PaymentID: p.ID,
			Date:      p.PaidOn,
			Amount:    p.Amount,
			Balance:   math.Max(0, running),
		})
	}
	return st
}

// Receipt is the proof of one payment.
type Receipt struct {
	Number     int64     `json:"number"`
	Date       time.Time `json:"date"`
	ClientName string    `json:"client_name"`
	Amount     float64   `json:"amount"`
	LoanID     int64     `json:"loan_id"`
}

func BuildReceipt(client *Client, payment *Payment) Receipt {
	r := Receipt{
		Number: payment.ID,
		Date:   payment.PaidOn,
		Amount: payment.Amount,
		LoanID: payment.LoanID,
	}
	if client != nil {
		r.ClientName = client.Name
	}
	return r
}
