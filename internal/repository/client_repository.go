package repository

import (
	"context"
	"strings"

	"github.com/segyhp/credit-ledger/internal/domain"
)

type clientRepository struct {
	db queryer
}

const clientColumns = `id, name, address, workplace, phone, dni, photo_path, registered_at`

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO clients (name, address, workplace, phone, dni, photo_path, registered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	id, err := insertReturningID(ctx, r.db, query,
		client.Name,
		client.Address,
		client.Workplace,
		client.Phone,
		client.DNI,
		client.PhotoPath,
		client.RegisteredAt,
	)
	if err != nil {
		return err
	}

	client.ID = id
	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`

	var client domain.Client
	if err := r.db.GetContext(ctx, &client, r.db.Rebind(query), id); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) GetByDNI(ctx context.Context, dni string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE dni = ?`

	var client domain.Client
	if err := r.db.GetContext(ctx, &client, r.db.Rebind(query), dni); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `
		UPDATE clients
		SET name = ?, address = ?, workplace = ?, phone = ?, dni = ?, photo_path = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		client.Name,
		client.Address,
		client.Workplace,
		client.Phone,
		client.DNI,
		client.PhotoPath,
		client.ID,
	)
	return err
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM clients WHERE id = ?`), id)
	return err
}

func (r *clientRepository) List(ctx context.Context, search string) ([]*domain.ClientSummary, error) {
	query := `
		SELECT c.id, c.name, c.address, c.workplace, c.phone, c.dni, c.photo_path, c.registered_at,
			EXISTS (SELECT 1 FROM loans l WHERE l.client_id = c.id AND l.active) AS has_active_loan
		FROM clients c
	`
	var args []interface{}
	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query += ` WHERE LOWER(c.name) LIKE ? OR LOWER(c.dni) LIKE ?`
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY c.name, c.id`

	clients := []*domain.ClientSummary{}
	if err := r.db.SelectContext(ctx, &clients, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM clients`)
	return count, err
}
