package domain

// Stats aggregates counts and totals over a single user's clients and
// invoices. Totals are zero when no rows match, never absent.
type Stats struct {
	TotalClients     int   `json:"total_clients"`
	TotalInvoices    int   `json:"total_invoices"`
	PaidTotalCents   int64 `json:"paid_total_cents"`
	UnpaidTotalCents int64 `json:"unpaid_total_cents"`
}
