package repository

import (
	"context"
	"time"

	"github.com/segyhp/credit-ledger/internal/domain"
)

type loanRepository struct {
	db queryer
}

const loanColumns = `id, client_id, principal, factor, total_payable, term_length, frequency,
	installment, start_date, recharges, active, created_at, updated_at`

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (client_id, principal, factor, total_payable, term_length, frequency,
			installment, start_date, recharges, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	now := time.Now().UTC()
	if loan.CreatedAt.IsZero() {
		loan.CreatedAt = now
	}
	loan.UpdatedAt = now

	id, err := insertReturningID(ctx, r.db, query,
		loan.ClientID,
		loan.Principal,
		loan.Factor,
		loan.TotalPayable,
		loan.TermLength,
		string(loan.Frequency),
		loan.Installment,
		loan.StartDate,
		loan.Recharges,
		loan.Active,
		loan.CreatedAt,
		loan.UpdatedAt,
	)
	if err != nil {
		return err
	}

	loan.ID = id
	return nil
}

func (r *loanRepository) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = ?`

	var loan domain.Loan
	if err := r.db.GetContext(ctx, &loan, r.db.Rebind(query), id); err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	query := `
		UPDATE loans
		SET principal = ?, factor = ?, total_payable = ?, term_length = ?, frequency = ?,
			installment = ?, start_date = ?, recharges = ?, active = ?, updated_at = ?
		WHERE id = ?
	`

	loan.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		loan.Principal,
		loan.Factor,
		loan.TotalPayable,
		loan.TermLength,
		string(loan.Frequency),
		loan.Installment,
		loan.StartDate,
		loan.Recharges,
		loan.Active,
		loan.UpdatedAt,
		loan.ID,
	)
	return err
}

func (r *loanRepository) UpdateActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE loans SET active = ?, updated_at = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query), active, time.Now().UTC(), id)
	return err
}

func (r *loanRepository) ListByClient(ctx context.Context, clientID int64) ([]*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE client_id = ? ORDER BY id DESC`

	loans := []*domain.Loan{}
	if err := r.db.SelectContext(ctx, &loans, r.db.Rebind(query), clientID); err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *loanRepository) ListAll(ctx context.Context) ([]*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans ORDER BY id`

	loans := []*domain.Loan{}
	if err := r.db.SelectContext(ctx, &loans, query); err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *loanRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM loans WHERE id = ?`), id)
	return err
}

func (r *loanRepository) DeleteByClient(ctx context.Context, clientID int64) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM loans WHERE client_id = ?`), clientID)
	return err
}

func (r *loanRepository) Sums(ctx context.Context) (domain.LoanSums, error) {
	query := `
		SELECT COALESCE(SUM(principal), 0) AS principal,
			COALESCE(SUM(total_payable), 0) AS total_payable,
			COALESCE(SUM(recharges), 0) AS recharges
		FROM loans
	`

	var sums domain.LoanSums
	err := r.db.GetContext(ctx, &sums, query)
	return sums, err
}
