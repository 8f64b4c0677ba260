package repository

import (
	"context"

	"github.com/segyhp/credit-ledger/internal/domain"
)

// Lookups of a single row return sql.ErrNoRows when nothing matches.

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	// Create inserts a client and sets its ID
	Create(ctx context.Context, client *domain.Client) error

	GetByID(ctx context.Context, id int64) (*domain.Client, error)

	// GetByDNI retrieves a client by national id
	GetByDNI(ctx context.Context, dni string) (*domain.Client, error)

	// Update updates the editable client fields
	Update(ctx context.Context, client *domain.Client) error

	Delete(ctx context.Context, id int64) error

	// List returns clients ordered by name. search matches name or DNI,
	// case-insensitive; empty search lists everyone.
	List(ctx context.Context, search string) ([]*domain.ClientSummary, error)

	Count(ctx context.Context) (int64, error)
}

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// Create inserts a loan and sets its ID
	Create(ctx context.Context, loan *domain.Loan) error

	GetByID(ctx context.Context, id int64) (*domain.Loan, error)

	// Update persists pricing, recharges, start date and the active flag
	Update(ctx context.Context, loan *domain.Loan) error

	// UpdateActive persists only the active flag
	UpdateActive(ctx context.Context, id int64, active bool) error

	// ListByClient returns a client's loans, newest first
	ListByClient(ctx context.Context, clientID int64) ([]*domain.Loan, error)

	// ListAll returns every loan ordered by id
	ListAll(ctx context.Context) ([]*domain.Loan, error)

	Delete(ctx context.Context, id int64) error

	DeleteByClient(ctx context.Context, clientID int64) error

	// Sums adds up principal, total payable and recharges over all loans
	Sums(ctx context.Context) (domain.LoanSums, error)
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Create inserts a payment and sets its ID
	Create(ctx context.Context, payment *domain.Payment) error

	GetByID(ctx context.Context, id int64) (*domain.Payment, error)

	Update(ctx context.Context, payment *domain.Payment) error

	// ListByLoan returns a loan's payments, most recent first
	ListByLoan(ctx context.Context, loanID int64) ([]*domain.Payment, error)

	// TotalByLoan sums the payments of one loan
	TotalByLoan(ctx context.Context, loanID int64) (float64, error)

	// TotalsByLoan sums payments per loan. Loans without payments are absent.
	TotalsByLoan(ctx context.Context) (map[int64]float64, error)

	// Total sums every payment ever recorded
	Total(ctx context.Context) (float64, error)

	DeleteByLoan(ctx context.Context, loanID int64) error

	DeleteByClient(ctx context.Context, clientID int64) error
}

// NoteRepository defines the interface for client note operations
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error

	// ListByClient returns a client's notes, newest first
	ListByClient(ctx context.Context, clientID int64) ([]*domain.Note, error)

	DeleteByClient(ctx context.Context, clientID int64) error
}

// Repositories groups the repositories bound to one connection or transaction.
type Repositories struct {
	Clients  ClientRepository
	Loans    LoanRepository
	Payments PaymentRepository
	Notes    NoteRepository
}

// TxRunner runs fn inside a transaction. fn receives repositories bound to
// the transaction; returning an error rolls everything back.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error
}
