package stats

import (
	"context"

	"log/slog"

	"github.com/freelancepay/tracker/internal/domain"
	"github.com/freelancepay/tracker/internal/repository"
)

// Service computes owner-scoped dashboard aggregates.
type Service struct {
	stats  repository.StatsRepository
	logger *slog.Logger
}

// New constructs a Service.
func New(statsRepo repository.StatsRepository, logger *slog.Logger) Service {
	return Service{stats: statsRepo, logger: logger}
}

// Summarize returns counts and paid/unpaid totals over the owner's rows.
func (s Service) Summarize(ctx context.Context, ownerID string) (*domain.Stats, error) {
	return s.stats.GetStatsByOwner(ctx, ownerID)
}
