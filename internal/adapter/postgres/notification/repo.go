// Package notification reads the per-user notification aggregates.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres"
	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres/experience"
	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

const countsQuery = `
SELECT
    (SELECT count(*) FROM collaborators
      WHERE user_id = $1 AND status = 'PENDING'),
    (SELECT count(*) FROM experiences e JOIN journeys j ON j.id = e.journey_id
      WHERE j.owner_id = $1 AND e.approval_status = 'PENDING'),
    (SELECT count(*) FROM experiences
      WHERE suggested_by_user_id = $1 AND approval_status = 'APPROVED' AND reviewed_at >= $2),
    (SELECT count(*) FROM experiences
      WHERE suggested_by_user_id = $1 AND approval_status = 'REJECTED' AND reviewed_at >= $2)`

// Repo computes notification counts and details.
type Repo struct {
	db postgres.Querier
}

// New creates a new notification repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Counts returns the badge counters of userID. Reviews at or after since
// count as recent.
func (r *Repo) Counts(ctx context.Context, userID uuid.UUID, since time.Time) (domain.NotificationCounts, error) {
	var c domain.NotificationCounts
	err := postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, countsQuery, userID, since).
		Scan(&c.PendingInvitations, &c.PendingSuggestions, &c.RecentApprovals, &c.RecentRejections)
	if err != nil {
		return domain.NotificationCounts{}, postgres.MapError(err, "notification_counts", userID)
	}
	return c.Normalize(), nil
}

// PendingSuggestions returns suggestions awaiting ownerID's review across
// all owned journeys, oldest first.
func (r *Repo) PendingSuggestions(ctx context.Context, ownerID uuid.UUID) ([]domain.Experience, error) {
	query, args, err := postgres.Builder.
		Select(experience.Qualified("e")...).
		From("experiences e").
		Join("journeys j ON j.id = e.journey_id").
		Where("j.owner_id = ?", ownerID).
		Where("e.approval_status = ?", string(domain.ApprovalStatusPending)).
		OrderBy("e.created_at ASC", "e.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "pending_suggestions", ownerID)
	}
	out, err := experience.ScanAll(rows)
	if err != nil {
		return nil, postgres.MapError(err, "pending_suggestions", ownerID)
	}
	return out, nil
}

// RecentResponses returns userID's suggestions reviewed at or after since,
// newest review first.
func (r *Repo) RecentResponses(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.Experience, error) {
	query, args, err := postgres.Builder.
		Select(experience.Columns...).
		From("experiences").
		Where("suggested_by_user_id = ?", userID).
		Where("approval_status <> ?", string(domain.ApprovalStatusPending)).
		Where("reviewed_at >= ?", since).
		OrderBy("reviewed_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "recent_responses", userID)
	}
	out, err := experience.ScanAll(rows)
	if err != nil {
		return nil, postgres.MapError(err, "recent_responses", userID)
	}
	return out, nil
}
