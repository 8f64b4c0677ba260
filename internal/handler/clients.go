package handler

import (
	"net/http"

	"github.com/segyhp/credit-ledger/internal/domain"
	"github.com/segyhp/credit-ledger/pkg/response"
)

type createClientResponse struct {
	Client *domain.Client `json:"client"`
	Loan   *domain.Loan   `json:"loan"`
}

// ListClients handles GET /clients?q=
func (h *CreditHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.ListClients(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, clients)
}

// CreateClient handles POST /clients
func (h *CreditHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateClientRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	client, loan, err := h.service.CreateClient(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, createClientResponse{Client: client, Loan: loan})
}

// GetClient handles GET /clients/{clientId}
func (h *CreditHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "clientId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	detail, err := h.service.GetClientDetail(r.Context(), id, h.service.Today())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, detail)
}

// UpdateClient handles PUT /clients/{clientId}
func (h *CreditHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "clientId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req domain.ClientRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	client, err := h.service.UpdateClient(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, client)
}

// DeleteClient handles DELETE /clients/{clientId}
func (h *CreditHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "clientId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.service.DeleteClient(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	response.NoContent(w)
}

// AddNote handles POST /clients/{clientId}/notes
func (h *CreditHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "clientId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req domain.NoteRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	note, err := h.service.AddNote(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, note)
}
