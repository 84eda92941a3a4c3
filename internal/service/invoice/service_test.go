package invoice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/freelancepay/tracker/internal/domain"
	"github.com/freelancepay/tracker/internal/repository"
)

// fakeInvoiceRepo mirrors the transitive scoping of the real repository:
// client ownership is looked up on every mutation, and rows outside the
// owner's scope report ErrNotFound.
type fakeInvoiceRepo struct {
	clientOwners map[string]string
	invoices     map[string]domain.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		clientOwners: make(map[string]string),
		invoices:     make(map[string]domain.Invoice),
	}
}

func (f *fakeInvoiceRepo) ownsInvoice(ownerID, invoiceID string) bool {
	inv, ok := f.invoices[invoiceID]
	return ok && f.clientOwners[inv.ClientID] == ownerID
}

func (f *fakeInvoiceRepo) CreateInvoice(ctx context.Context, ownerID string, invoice *domain.Invoice) error {
	if f.clientOwners[invoice.ClientID] != ownerID {
		return repository.ErrNotFound
	}
	f.invoices[invoice.ID] = *invoice
	return nil
}

func (f *fakeInvoiceRepo) ListInvoicesByOwner(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	var owned []domain.Invoice
	for _, inv := range f.invoices {
		if f.clientOwners[inv.ClientID] == ownerID {
			owned = append(owned, inv)
		}
	}
	return owned, nil
}

func (f *fakeInvoiceRepo) UpdateInvoice(ctx context.Context, ownerID string, invoice *domain.Invoice) error {
	if !f.ownsInvoice(ownerID, invoice.ID) {
		return repository.ErrNotFound
	}
	existing := f.invoices[invoice.ID]
	existing.AmountCents = invoice.AmountCents
	existing.Description = invoice.Description
	existing.DueDate = invoice.DueDate
	f.invoices[invoice.ID] = existing
	return nil
}

func (f *fakeInvoiceRepo) SetInvoiceStatus(ctx context.Context, ownerID, invoiceID, status string) error {
	if !f.ownsInvoice(ownerID, invoiceID) {
		return repository.ErrNotFound
	}
	existing := f.invoices[invoiceID]
	existing.Status = status
	f.invoices[invoiceID] = existing
	return nil
}

func (f *fakeInvoiceRepo) DeleteInvoice(ctx context.Context, ownerID, invoiceID string) error {
	if !f.ownsInvoice(ownerID, invoiceID) {
		return repository.ErrNotFound
	}
	delete(f.invoices, invoiceID)
	return nil
}

func newTestService() (Service, *fakeInvoiceRepo) {
	repo := newFakeInvoiceRepo()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(repo, log), repo
}

func cents(v int64) *int64 { return &v }

func TestCreateValidation(t *testing.T) {
	svc, repo := newTestService()
	repo.clientOwners["client-1"] = "alice"
	ctx := context.Background()

	cases := []struct {
		name  string
		input Input
		want  error
	}{
		{"missing client id", Input{AmountCents: cents(100)}, domain.ErrInvalidInput},
		{"missing amount", Input{ClientID: "client-1"}, domain.ErrInvalidInput},
		{"negative amount", Input{ClientID: "client-1", AmountCents: cents(-1)}, domain.ErrInvalidInput},
		{"malformed due date", Input{ClientID: "client-1", AmountCents: cents(100), DueDate: "31-12-2026"}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, "alice", tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateDefaultsToUnpaid(t *testing.T) {
	svc, repo := newTestService()
	repo.clientOwners["client-1"] = "alice"
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", Input{ClientID: "client-1", AmountCents: cents(10000), DueDate: "2026-10-01"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != domain.InvoiceStatusUnpaid {
		t.Fatalf("expected status unpaid, got %q", created.Status)
	}
	if created.DueDate == nil || created.DueDate.Format("2006-01-02") != "2026-10-01" {
		t.Fatalf("due date not parsed: %v", created.DueDate)
	}
	if created.AmountCents != 10000 {
		t.Fatalf("unexpected amount: %d", created.AmountCents)
	}
}

func TestCreateAgainstForeignClientLooksMissing(t *testing.T) {
	svc, repo := newTestService()
	repo.clientOwners["client-1"] = "alice"
	ctx := context.Background()

	input := Input{ClientID: "client-1", AmountCents: cents(100)}
	foreignErr := func() error { _, err := svc.Create(ctx, "carol", input); return err }()
	missingInput := Input{ClientID: "no-such-client", AmountCents: cents(100)}
	missingErr := func() error { _, err := svc.Create(ctx, "carol", missingInput); return err }()

	if !errors.Is(foreignErr, domain.ErrNotFound) || !errors.Is(missingErr, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for both, got %v and %v", foreignErr, missingErr)
	}
	if foreignErr.Error() != missingErr.Error() {
		t.Fatalf("foreign and missing must read identically: %q vs %q", foreignErr, missingErr)
	}
}

func TestSetStatusValidatesBeforeOwnership(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// The invoice id does not exist at all, yet the status error wins.
	if err := svc.SetStatus(ctx, "alice", "no-such-invoice", "overdue"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestSetStatusTogglesAndRepeats(t *testing.T) {
	svc, repo := newTestService()
	repo.clientOwners["client-1"] = "alice"
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", Input{ClientID: "client-1", AmountCents: cents(100)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.SetStatus(ctx, "alice", created.ID, domain.InvoiceStatusPaid); err != nil {
		t.Fatalf("set paid: %v", err)
	}
	// Repeating the same status is not an error.
	if err := svc.SetStatus(ctx, "alice", created.ID, domain.InvoiceStatusPaid); err != nil {
		t.Fatalf("repeat set paid: %v", err)
	}
	if repo.invoices[created.ID].Status != domain.InvoiceStatusPaid {
		t.Fatalf("status not paid: %q", repo.invoices[created.ID].Status)
	}
	if err := svc.SetStatus(ctx, "alice", created.ID, domain.InvoiceStatusUnpaid); err != nil {
		t.Fatalf("revert to unpaid: %v", err)
	}
	if repo.invoices[created.ID].Status != domain.InvoiceStatusUnpaid {
		t.Fatalf("status not reverted: %q", repo.invoices[created.ID].Status)
	}
}

func TestUpdateAndDeleteAreOwnerScoped(t *testing.T) {
	svc, repo := newTestService()
	repo.clientOwners["client-1"] = "alice"
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", Input{ClientID: "client-1", AmountCents: cents(100)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Update(ctx, "carol", created.ID, Input{AmountCents: cents(500)}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign update, got %v", err)
	}
	if err := svc.Delete(ctx, "carol", created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign delete, got %v", err)
	}

	if err := svc.Update(ctx, "alice", created.ID, Input{AmountCents: cents(500), Description: "rush job"}); err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if got := repo.invoices[created.ID]; got.AmountCents != 500 || got.Description != "rush job" {
		t.Fatalf("update not applied: %+v", got)
	}
	if err := svc.Delete(ctx, "alice", created.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}
