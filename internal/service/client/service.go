package client

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

var errNameEmailRequired = fmt.Errorf("%w: name and email are required", domain.ErrInvalidInput)

// Input carries client attributes for create and update.
type Input struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Service owns the client registry. Every method takes the verified owner id;
// rows outside the owner's scope behave exactly like rows that do not exist.
type Service struct {
	clients repository.ClientRepository
	logger  *slog.Logger
}

// New constructs a Service.
func New(clients repository.ClientRepository, logger *slog.Logger) Service {
	return Service{clients: clients, logger: logger}
}

// List returns the owner's clients, newest first.
func (s Service) List(ctx context.Context, ownerID string) ([]domain.Client, error) {
	return s.clients.ListClientsByOwner(ctx, ownerID)
}

// Create registers a client under the owner.
func (s Service) Create(ctx context.Context, ownerID string, input Input) (*domain.Client, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" || input.Email == "" {
		return nil, errNameEmailRequired
	}
	client := &domain.Client{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     strings.TrimSpace(input.Phone),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.clients.CreateClient(ctx, client); err != nil {
		return nil, err
	}
	s.logger.Info("client created", "client_id", client.ID, "user_id", ownerID)
	return client, nil
}

// Update rewrites an owned client's contact attributes. Validation runs
// before the ownership check, matching the other mutations.
func (s Service) Update(ctx context.Context, ownerID, clientID string, input Input) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" || input.Email == "" {
		return errNameEmailRequired
	}
	client := &domain.Client{
		ID:    clientID,
		Name:  input.Name,
		Email: input.Email,
		Phone: strings.TrimSpace(input.Phone),
	}
	if err := s.clients.UpdateClient(ctx, ownerID, client); err != nil {
		return translateNotFound(err)
	}
	s.logger.Info("client updated", "client_id", clientID, "user_id", ownerID)
	return nil
}

// Delete removes an owned client together with all of its invoices.
func (s Service) Delete(ctx context.Context, ownerID, clientID string) error {
	if err := s.clients.DeleteClient(ctx, ownerID, clientID); err != nil {
		return translateNotFound(err)
	}
	s.logger.Info("client deleted", "client_id", clientID, "user_id", ownerID)
	return nil
}

func translateNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.ErrNotFound
	}
	return err
}
