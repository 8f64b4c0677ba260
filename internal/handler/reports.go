package handler

import (
	"net/http"

	"github.com/segyhp/credit-ledger/internal/domain"
	"github.com/segyhp/credit-ledger/pkg/response"
	"github.com/segyhp/credit-ledger/pkg/utils"
)

// Dashboard handles GET /dashboard
func (h *CreditHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, totals)
}

// Plans handles GET /plans
func (h *CreditHandler) Plans(w http.ResponseWriter, r *http.Request) {
	response.Success(w, domain.Plans())
}

// ExportLoans handles GET /reports/loans
func (h *CreditHandler) ExportLoans(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ExportLoans(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	for i := range rows {
		roundExportRow(&rows[i])
	}
	response.Success(w, rows)
}

// roundExportRow rounds money and day figures to cents for presentation.
func roundExportRow(row *domain.ExportRow) {
	row.DaysPaid = utils.Round2(row.DaysPaid)
	row.DaysPending = utils.Round2(row.DaysPending)
	row.TermLength = utils.Round2(row.TermLength)
	row.Principal = utils.Round2(row.Principal)
	row.TotalPayable = utils.Round2(row.TotalPayable)
	row.Installment = utils.Round2(row.Installment)
	row.Paid = utils.Round2(row.Paid)
	row.Pending = utils.Round2(row.Pending)
	row.WeeksPaid = utils.Round2(row.WeeksPaid)
	row.WeeksPending = utils.Round2(row.WeeksPending)
	row.MonthsPaid = utils.Round2(row.MonthsPaid)
	row.MonthsPending = utils.Round2(row.MonthsPending)
}
