package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/freelancepay/tracker/internal/domain"
	"github.com/freelancepay/tracker/internal/repository"
)

const dueDateLayout = "2006-01-02"

var (
	errClientRequired = fmt.Errorf("%w: client id is required", domain.ErrInvalidInput)
	errAmountRequired = fmt.Errorf("%w: amount must be a non-negative number of cents", domain.ErrInvalidInput)
	errBadDueDate     = fmt.Errorf("%w: due date must be formatted YYYY-MM-DD", domain.ErrInvalidInput)
)

// Input carries invoice attributes for create and update. AmountCents is a
// pointer so that an absent amount is distinguishable from zero.
type Input struct {
	ClientID    string `json:"client_id"`
	AmountCents *int64 `json:"amount_cents"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

// Service owns the invoice ledger. Ownership is transitive: an invoice
// belongs to whoever owns its client, and the repository verifies that
// relation atomically with every mutation.
type Service struct {
	invoices repository.InvoiceRepository
	logger   *slog.Logger
}

// New constructs a Service.
func New(invoices repository.InvoiceRepository, logger *slog.Logger) Service {
	return Service{invoices: invoices, logger: logger}
}

// List returns the owner's invoices, newest first, with client names.
func (s Service) List(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	return s.invoices.ListInvoicesByOwner(ctx, ownerID)
}

// Create opens an unpaid invoice against one of the owner's clients. A client
// id belonging to another user fails exactly like one that does not exist.
func (s Service) Create(ctx context.Context, ownerID string, input Input) (*domain.Invoice, error) {
	if strings.TrimSpace(input.ClientID) == "" {
		return nil, errClientRequired
	}
	if input.AmountCents == nil || *input.AmountCents < 0 {
		return nil, errAmountRequired
	}
	due, err := parseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}
	inv := &domain.Invoice{
		ID:          uuid.NewString(),
		ClientID:    strings.TrimSpace(input.ClientID),
		AmountCents: *input.AmountCents,
		Description: strings.TrimSpace(input.Description),
		Status:      domain.InvoiceStatusUnpaid,
		DueDate:     due,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.invoices.CreateInvoice(ctx, ownerID, inv); err != nil {
		return nil, translateNotFound(err)
	}
	s.logger.Info("invoice created", "invoice_id", inv.ID, "client_id", inv.ClientID, "user_id", ownerID)
	return inv, nil
}

// Update rewrites amount, description and due date of an owned invoice.
func (s Service) Update(ctx context.Context, ownerID, invoiceID string, input Input) error {
	if input.AmountCents == nil || *input.AmountCents < 0 {
		return errAmountRequired
	}
	due, err := parseDueDate(input.DueDate)
	if err != nil {
		return err
	}
	inv := &domain.Invoice{
		ID:          invoiceID,
		AmountCents: *input.AmountCents,
		Description: strings.TrimSpace(input.Description),
		DueDate:     due,
	}
	if err := s.invoices.UpdateInvoice(ctx, ownerID, inv); err != nil {
		return translateNotFound(err)
	}
	s.logger.Info("invoice updated", "invoice_id", invoiceID, "user_id", ownerID)
	return nil
}

// SetStatus toggles an invoice between paid and unpaid. The status value is
// validated before ownership is consulted, so a bad status on a foreign
// invoice reports the status problem. Repeating a status is not an error.
func (s Service) SetStatus(ctx context.Context, ownerID, invoiceID, status string) error {
	if !domain.ValidInvoiceStatus(status) {
		return domain.ErrInvalidStatus
	}
	if err := s.invoices.SetInvoiceStatus(ctx, ownerID, invoiceID, status); err != nil {
		return translateNotFound(err)
	}
	s.logger.Info("invoice status set", "invoice_id", invoiceID, "status", status, "user_id", ownerID)
	return nil
}

// Delete removes a single owned invoice.
func (s Service) Delete(ctx context.Context, ownerID, invoiceID string) error {
	if err := s.invoices.DeleteInvoice(ctx, ownerID, invoiceID); err != nil {
		return translateNotFound(err)
	}
	s.logger.Info("invoice deleted", "invoice_id", invoiceID, "user_id", ownerID)
	return nil
}

func parseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	due, err := time.Parse(dueDateLayout, raw)
	if err != nil {
		return nil, errBadDueDate
	}
	return &due, nil
}

func translateNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.ErrNotFound
	}
	return err
}
