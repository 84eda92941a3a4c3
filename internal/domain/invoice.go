package domain

import "time"

// Invoice statuses. New invoices start unpaid; the two states toggle freely.
const (
	InvoiceStatusUnpaid = "unpaid"
	InvoiceStatusPaid   = "paid"
)

// ValidInvoiceStatus reports whether s is one of the two defined statuses.
func ValidInvoiceStatus(s string) bool {
	return s == InvoiceStatusUnpaid || s == InvoiceStatusPaid
}

// Invoice is a billing record. Its owner is the owner of the referenced
// client; there is no direct user reference on the invoice row. Amounts are
// stored in cents to avoid float arithmetic.
type Invoice struct {
	ID          string
	ClientID    string
	ClientName  string
	AmountCents int64
	Description string
	Status      string
	DueDate     *time.Time
	CreatedAt   time.Time
}
