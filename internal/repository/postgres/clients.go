package postgres

import (
	"context"

	"github.com/freelancepay/tracker/internal/domain"
	"github.com/freelancepay/tracker/internal/repository"
)

// CreateClient inserts a client bound to its owner.
func (r *Repository) CreateClient(ctx context.Context, client *domain.Client) error {
	const query = `INSERT INTO clients (id, user_id, name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, client.ID, client.UserID, client.Name, client.Email, client.Phone, client.CreatedAt)
	return err
}

// ListClientsByOwner returns the owner's clients, newest first.
func (r *Repository) ListClientsByOwner(ctx context.Context, ownerID string) ([]domain.Client, error) {
	const query = `SELECT id, user_id, name, email, phone, created_at
		FROM clients WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// UpdateClient rewrites the mutable attributes of an owned client. The owner
// predicate sits in the same statement as the update, so the ownership check
// cannot go stale between check and write.
func (r *Repository) UpdateClient(ctx context.Context, ownerID string, client *domain.Client) error {
	const query = `UPDATE clients SET name = $3, email = $4, phone = $5
		WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, client.ID, ownerID, client.Name, client.Email, client.Phone)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteClient removes an owned client. The ON DELETE CASCADE constraint on
// invoices.client_id removes the client's invoices in the same statement, so
// the cascade is atomic.
func (r *Repository) DeleteClient(ctx context.Context, ownerID, clientID string) error {
	const query = `DELETE FROM clients WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, clientID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
