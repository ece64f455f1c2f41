package invitation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/pkg/ctxutil"
)

// ListPending returns the caller's pending invitations.
func (s *Service) ListPending(ctx context.Context) ([]domain.PendingInvitation, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	invitations, err := s.collaborators.ListPendingForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list pending invitations: %w", err)
	}
	return invitations, nil
}

// ListCollaborators returns every collaborator row of the journey, owner first.
// Any non-declined collaborator, including a pending invitee, may list.
func (s *Service) ListCollaborators(ctx context.Context, journeyID uuid.UUID) ([]domain.Collaborator, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	member, err := s.memberOf(ctx, journeyID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, fmt.Errorf("%w: not a collaborator of this journey", domain.ErrForbidden)
	}

	collaborators, err := s.collaborators.ListByJourney(ctx, journeyID)
	if err != nil {
		return nil, fmt.Errorf("list collaborators: %w", err)
	}
	return collaborators, nil
}
