package postgres

import (
	"context"

	"github.com/freelancepay/tracker/internal/domain"
)

// GetStatsByOwner computes the owner's dashboard aggregates in one query.
// COALESCE keeps the totals at zero when no invoices match.
func (r *Repository) GetStatsByOwner(ctx context.Context, ownerID string) (*domain.Stats, error) {
	const query = `SELECT
		(SELECT COUNT(*) FROM clients WHERE user_id = $1),
		COUNT(i.id),
		COALESCE(SUM(i.amount_cents) FILTER (WHERE i.status = 'paid'), 0),
		COALESCE(SUM(i.amount_cents) FILTER (WHERE i.status = 'unpaid'), 0)
	FROM invoices i
	JOIN clients c ON c.id = i.client_id
	WHERE c.user_id = $1`
	var stats domain.Stats
	row := r.pool.QueryRow(ctx, query, ownerID)
	if err := row.Scan(&stats.TotalClients, &stats.TotalInvoices, &stats.PaidTotalCents, &stats.UnpaidTotalCents); err != nil {
		return nil, err
	}
	return &stats, nil
}
