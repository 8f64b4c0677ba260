package domain

import "time"

type Client struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Address      string    `json:"address" db:"address"`
	Workplace    *string   `json:"workplace,omitempty" db:"workplace"`
	Phone        string    `json:"phone" db:"phone"`
	DNI          string    `json:"dni" db:"dni"`
	PhotoPath    *string   `json:"photo_path,omitempty" db:"photo_path"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
}

// ClientSummary is a client row for lists; HasActiveLoan reflects the stored
// active flags of the client's loans.
type ClientSummary struct {
	Client
	HasActiveLoan bool `json:"has_active_loan" db:"has_active_loan"`
}

type Note struct {
	ID        int64     `json:"id" db:"id"`
	ClientID  int64     `json:"client_id" db:"client_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ClientDetail is everything shown for one client.
type ClientDetail struct {
	Client *Client       `json:"client"`
	Loans  []*LoanDetail `json:"loans"`
	Notes  []*Note       `json:"notes"`
}

type ClientRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Address   string  `json:"address" validate:"required,max=300"`
	Workplace *string `json:"workplace,omitempty" validate:"omitempty,max=300"`
	Phone     string  `json:"phone" validate:"required,max=50"`
	DNI       string  `json:"dni" validate:"required,max=30"`
}

// CreateClientRequest registers a client together with the first loan.
type CreateClientRequest struct {
	ClientRequest
	Loan LoanTermsRequest `json:"loan"`
}

type NoteRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}
