package handler

import (
	"net/http"

	"github.com/segyhp/credit-ledger/internal/domain"
	"github.com/segyhp/credit-ledger/pkg/response"
)

// AddLoan handles POST /clients/{clientId}/loans
func (h *CreditHandler) AddLoan(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req domain.LoanTermsRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	loan, err := h.service.AddLoan(r.Context(), clientID, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, loan)
}

// GetLoan handles GET /loans/{loanId}. It is a pure read; stored flags are
// only reconciled through the client detail view and the scheduler.
func (h *CreditHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "loanId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	detail, err := h.service.GetLoanStatus(r.Context(), loanID, h.service.Today())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, detail)
}

// UpdateLoan handles PUT /loans/{loanId}
func (h *CreditHandler) UpdateLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "loanId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req domain.LoanTermsRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	loan, err := h.service.UpdateLoanTerms(r.Context(), loanID, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, loan)
}

// DeleteLoan handles DELETE /loans/{loanId}
func (h *CreditHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "loanId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.service.DeleteLoan(r.Context(), loanID); err != nil {
		h.writeError(w, r, err)
		return
	}
	response.NoContent(w)
}

// AddRecharge handles POST /loans/{loanId}/recharges
func (h *CreditHandler) AddRecharge(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "loanId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req domain.RechargeRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	loan, err := h.service.AddRecharge(r.Context(), loanID, req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, loan)
}

// GetStatement handles GET /loans/{loanId}/statement
func (h *CreditHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "loanId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	statement, err := h.service.GetStatement(r.Context(), loanID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, statement)
}
