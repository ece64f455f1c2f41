// Package notification computes the caller's badge counts and the items
// behind them. Counts are read through a short-lived cache.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/pkg/ctxutil"
)

//go:generate moq -out notification_repo_mock_test.go -pkg notification . notificationRepo
//go:generate moq -out count_cache_mock_test.go -pkg notification . countCache

type notificationRepo interface {
	Counts(ctx context.Context, userID uuid.UUID, since time.Time) (domain.NotificationCounts, error)
	PendingSuggestions(ctx context.Context, ownerID uuid.UUID) ([]domain.Experience, error)
	RecentResponses(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.Experience, error)
}

type countCache interface {
	Get(ctx context.Context, userID uuid.UUID) (domain.NotificationCounts, bool, error)
	Version(ctx context.Context, userID uuid.UUID) (uint64, error)
	Set(ctx context.Context, userID uuid.UUID, version uint64, counts domain.NotificationCounts) error
}

// Service serves notification counts and details.
type Service struct {
	repo         notificationRepo
	cache        countCache
	recentWindow time.Duration
	now          func() time.Time
	log          *slog.Logger
}

// NewService creates a new Notification service. recentWindow bounds how far
// back a reviewed suggestion still counts as a recent response.
func NewService(log *slog.Logger, repo notificationRepo, cache countCache, recentWindow time.Duration) *Service {
	return &Service{
		repo:         repo,
		cache:        cache,
		recentWindow: recentWindow,
		now:          time.Now,
		log:          log.With("service", "notification"),
	}
}

func (s *Service) since() time.Time {
	return s.now().UTC().Add(-s.recentWindow)
}

// Counts returns the caller's badge counts. Total is always the sum of the
// four counters.
func (s *Service) Counts(ctx context.Context) (domain.NotificationCounts, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.NotificationCounts{}, domain.ErrUnauthorized
	}

	cached, hit, err := s.cache.Get(ctx, userID)
	if err != nil {
		s.log.WarnContext(ctx, "count cache get", slog.String("error", err.Error()))
	}
	if hit {
		return cached.Normalize(), nil
	}

	// The version is read before the database so that an invalidation
	// racing with this computation makes the Set below a no-op.
	version, verErr := s.cache.Version(ctx, userID)
	if verErr != nil {
		s.log.WarnContext(ctx, "count cache version", slog.String("error", verErr.Error()))
	}

	counts, err := s.repo.Counts(ctx, userID, s.since())
	if err != nil {
		return domain.NotificationCounts{}, fmt.Errorf("count notifications: %w", err)
	}
	counts = counts.Normalize()

	if verErr == nil {
		if err := s.cache.Set(ctx, userID, version, counts); err != nil {
			s.log.WarnContext(ctx, "count cache set", slog.String("error", err.Error()))
		}
	}

	return counts, nil
}

// Details returns the suggestions awaiting the caller's review and the
// caller's own suggestions reviewed within the recent window.
func (s *Service) Details(ctx context.Context) (domain.NotificationDetails, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.NotificationDetails{}, domain.ErrUnauthorized
	}

	pending, err := s.repo.PendingSuggestions(ctx, userID)
	if err != nil {
		return domain.NotificationDetails{}, fmt.Errorf("list pending suggestions: %w", err)
	}

	recent, err := s.repo.RecentResponses(ctx, userID, s.since())
	if err != nil {
		return domain.NotificationDetails{}, fmt.Errorf("list recent responses: %w", err)
	}

	return domain.NotificationDetails{
		PendingSuggestions: pending,
		RecentResponses:    recent,
	}, nil
}
