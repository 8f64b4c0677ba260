package repository

import (
	"context"

	"github.com/segyhp/credit-ledger/internal/domain"
)

type paymentRepository struct {
	db queryer
}

const paymentColumns = `id, loan_id, amount, paid_on, note`

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (loan_id, amount, paid_on, note)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`

	id, err := insertReturningID(ctx, r.db, query,
		payment.LoanID,
		payment.Amount,
		payment.PaidOn,
		payment.Note,
	)
	if err != nil {
		return err
	}

	payment.ID = id
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = ?`

	var payment domain.Payment
	if err := r.db.GetContext(ctx, &payment, r.db.Rebind(query), id); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	query := `UPDATE payments SET amount = ?, paid_on = ?, note = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		payment.Amount,
		payment.PaidOn,
		payment.Note,
		payment.ID,
	)
	return err
}

func (r *paymentRepository) ListByLoan(ctx context.Context, loanID int64) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE loan_id = ? ORDER BY paid_on DESC, id DESC`

	payments := []*domain.Payment{}
	if err := r.db.SelectContext(ctx, &payments, r.db.Rebind(query), loanID); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) TotalByLoan(ctx context.Context, loanID int64) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE loan_id = ?`

	var total float64
	err := r.db.GetContext(ctx, &total, r.db.Rebind(query), loanID)
	return total, err
}

func (r *paymentRepository) TotalsByLoan(ctx context.Context) (map[int64]float64, error) {
	query := `SELECT loan_id, SUM(amount) AS total FROM payments GROUP BY loan_id`

	var rows []struct {
		LoanID int64   `db:"loan_id"`
		Total  float64 `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	totals := make(map[int64]float64, len(rows))
	for _, row := range rows {
		totals[row.LoanID] = row.Total
	}
	return totals, nil
}

func (r *paymentRepository) Total(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(amount), 0) FROM payments`)
	return total, err
}

func (r *paymentRepository) DeleteByLoan(ctx context.Context, loanID int64) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM payments WHERE loan_id = ?`), loanID)
	return err
}

func (r *paymentRepository) DeleteByClient(ctx context.Context, clientID int64) error {
	query := `DELETE FROM payments WHERE loan_id IN (SELECT id FROM loans WHERE client_id = ?)`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query), clientID)
	return err
}
