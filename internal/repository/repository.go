package repository

import (
	"context"

	"github.com/freelancepay/tracker/internal/domain"
)

// UserRepository persists accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// ClientRepository persists clients. Every read and write is scoped to an
// owner id; a mutation that matches no owned row reports ErrNotFound whether
// the row is missing or owned by someone else.
type ClientRepository interface {
	CreateClient(ctx context.Context, client *domain.Client) error
	ListClientsByOwner(ctx context.Context, ownerID string) ([]domain.Client, error)
	UpdateClient(ctx context.Context, ownerID string, client *domain.Client) error
	// DeleteClient removes the client and, through the cascade constraint,
	// every invoice referencing it in the same statement.
	DeleteClient(ctx context.Context, ownerID, clientID string) error
}

// InvoiceRepository persists invoices. Ownership is transitive through the
// client row, so every operation joins against clients on the owner id inside
// a single statement; the ownership check and the effect cannot be separated
// by a concurrent writer.
type InvoiceRepository interface {
	CreateInvoice(ctx context.Context, ownerID string, invoice *domain.Invoice) error
	ListInvoicesByOwner(ctx context.Context, ownerID string) ([]domain.Invoice, error)
	UpdateInvoice(ctx context.Context, ownerID string, invoice *domain.Invoice) error
	SetInvoiceStatus(ctx context.Context, ownerID, invoiceID, status string) error
	DeleteInvoice(ctx context.Context, ownerID, invoiceID string) error
}

// StatsRepository reads owner-scoped aggregates.
type StatsRepository interface {
	GetStatsByOwner(ctx context.Context, ownerID string) (*domain.Stats, error)
}
