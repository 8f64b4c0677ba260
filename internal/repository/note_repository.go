package repository

import (
	"context"

	"github.com/segyhp/credit-ledger/internal/domain"
)

type noteRepository struct {
	db queryer
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	query := `INSERT INTO notes (client_id, text, created_at) VALUES (?, ?, ?) RETURNING id`

	id, err := insertReturningID(ctx, r.db, query, note.ClientID, note.Text, note.CreatedAt)
	if err != nil {
		return err
	}

	note.ID = id
	return nil
}

func (r *noteRepository) ListByClient(ctx context.Context, clientID int64) ([]*domain.Note, error) {
	query := `
		SELECT id, client_id, text, created_at
		FROM notes
		WHERE client_id = ?
		ORDER BY created_at DESC, id DESC
	`

	notes := []*domain.Note{}
	if err := r.db.SelectContext(ctx, &notes, r.db.Rebind(query), clientID); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) DeleteByClient(ctx context.Context, clientID int64) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM notes WHERE client_id = ?`), clientID)
	return err
}
