package suggestion

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/pkg/ctxutil"
)

// ListPending returns the journey's suggestions awaiting review, oldest first.
func (s *Service) ListPending(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.authorize(ctx, journeyID, userID, domain.CapListPendingSuggestions); err != nil {
		return nil, err
	}

	items, err := s.experiences.ListPending(ctx, journeyID)
	if err != nil {
		return nil, fmt.Errorf("list pending suggestions: %w", err)
	}
	return items, nil
}

// ListMine returns every suggestion the caller made on other people's
// journeys, in any status, newest first.
func (s *Service) ListMine(ctx context.Context) ([]domain.Experience, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	items, err := s.experiences.ListBySuggester(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list own suggestions: %w", err)
	}
	return items, nil
}

// ListApproved returns the journey's itinerary ordered by day.
func (s *Service) ListApproved(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.authorize(ctx, journeyID, userID, domain.CapViewApproved); err != nil {
		return nil, err
	}

	items, err := s.experiences.ListApproved(ctx, journeyID)
	if err != nil {
		return nil, fmt.Errorf("list approved experiences: %w", err)
	}
	return items, nil
}
