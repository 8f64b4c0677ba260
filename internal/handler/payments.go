package handler

import (
	"net/http"

	"github.com/segyhp/credit-ledger/internal/domain"
	"github.com/segyhp/credit-ledger/pkg/response"
)

// RecordPayment handles POST /loans/{loanId}/payments
func (h *CreditHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "loanId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req domain.PaymentRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	payment, err := h.service.RecordPayment(r.Context(), loanID, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, payment)
}

// UpdatePayment handles PUT /payments/{paymentId}
func (h *CreditHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	paymentID, err := pathID(r, "paymentId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req domain.PaymentRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	payment, err := h.service.UpdatePayment(r.Context(), paymentID, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, payment)
}

// GetReceipt handles GET /payments/{paymentId}/receipt
func (h *CreditHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	paymentID, err := pathID(r, "paymentId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	receipt, err := h.service.GetReceipt(r.Context(), paymentID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, receipt)
}
