package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/freelancepay/tracker/internal/domain"
	"github.com/freelancepay/tracker/internal/repository"
)

// CreateInvoice inserts an invoice for a client the owner actually holds. The
// insert selects from clients filtered on the owner id, so an unknown client
// and another user's client fail the same way: zero rows, ErrNotFound.
func (r *Repository) CreateInvoice(ctx context.Context, ownerID string, invoice *domain.Invoice) error {
	const query = `INSERT INTO invoices (id, client_id, amount_cents, description, status, due_date, created_at)
		SELECT $1, c.id, $4, $5, $6, $7, $8 FROM clients c
		WHERE c.id = $2 AND c.user_id = $3
		RETURNING (SELECT name FROM clients WHERE id = $2)`
	row := r.pool.QueryRow(ctx, query,
		invoice.ID,
		invoice.ClientID,
		ownerID,
		invoice.AmountCents,
		invoice.Description,
		invoice.Status,
		invoice.DueDate,
		invoice.CreatedAt,
	)
	if err := row.Scan(&invoice.ClientName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

// ListInvoicesByOwner returns invoices belonging to the owner's clients,
// newest first, each carrying the client name for display.
func (r *Repository) ListInvoicesByOwner(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	const query = `SELECT i.id, i.client_id, c.name, i.amount_cents, i.description, i.status, i.due_date, i.created_at
		FROM invoices i
		JOIN clients c ON c.id = i.client_id
		WHERE c.user_id = $1
		ORDER BY i.created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		var due *time.Time
		if err := rows.Scan(&inv.ID, &inv.ClientID, &inv.ClientName, &inv.AmountCents, &inv.Description, &inv.Status, &due, &inv.CreatedAt); err != nil {
			return nil, err
		}
		inv.DueDate = due
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// UpdateInvoice rewrites amount, description and due date of an invoice whose
// client belongs to the owner. Transitive ownership is enforced by the join in
// the update itself.
func (r *Repository) UpdateInvoice(ctx context.Context, ownerID string, invoice *domain.Invoice) error {
	const query = `UPDATE invoices i SET amount_cents = $3, description = $4, due_date = $5
		FROM clients c
		WHERE i.id = $1 AND c.id = i.client_id AND c.user_id = $2`
	tag, err := r.pool.Exec(ctx, query, invoice.ID, ownerID, invoice.AmountCents, invoice.Description, invoice.DueDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetInvoiceStatus flips the payment status of an owned invoice.
func (r *Repository) SetInvoiceStatus(ctx context.Context, ownerID, invoiceID, status string) error {
	const query = `UPDATE invoices i SET status = $3
		FROM clients c
		WHERE i.id = $1 AND c.id = i.client_id AND c.user_id = $2`
	tag, err := r.pool.Exec(ctx, query, invoiceID, ownerID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteInvoice removes a single owned invoice.
func (r *Repository) DeleteInvoice(ctx context.Context, ownerID, invoiceID string) error {
	const query = `DELETE FROM invoices i USING clients c
		WHERE i.id = $1 AND c.id = i.client_id AND c.user_id = $2`
	tag, err := r.pool.Exec(ctx, query, invoiceID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
