package journey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/pkg/ctxutil"
)

// Create creates a journey owned by the caller together with the owner row.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Journey, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}

	now := time.Now().UTC()
	var created *domain.Journey
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.journeys.Create(txCtx, domain.Journey{
			ID:        uuid.New(),
			Title:     domain.NormalizeText(input.Title),
			OwnerID:   userID,
			CreatedAt: now,
		})
		if createErr != nil {
			return fmt.Errorf("create journey: %w", createErr)
		}

		if _, createErr = s.collaborators.Create(txCtx, domain.Collaborator{
			ID:              uuid.New(),
			JourneyID:       created.ID,
			UserID:          userID,
			Email:           owner.Email,
			Role:            domain.RoleOwner,
			Status:          domain.CollaboratorStatusAccepted,
			InvitedAt:       now,
			InvitedByUserID: userID,
			RespondedAt:     &now,
		}); createErr != nil {
			return fmt.Errorf("create owner row: %w", createErr)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			JourneyID:  created.ID,
			EntityType: domain.EntityTypeJourney,
			EntityID:   created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"title": map[string]any{"new": created.Title},
			},
		})
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "journey created",
		slog.String("user_id", userID.String()),
		slog.String("journey_id", created.ID.String()),
	)

	return created, nil
}

// List returns journeys the caller owns or has accepted an invitation to.
func (s *Service) List(ctx context.Context) ([]domain.Journey, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	journeys, err := s.journeys.ListVisible(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list journeys: %w", err)
	}
	return journeys, nil
}

// Activity returns the journey's change history, newest first. Any accepted
// collaborator may read it.
func (s *Service) Activity(ctx context.Context, input ActivityInput) ([]domain.AuditRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	member, err := s.collaborators.GetMember(ctx, input.JourneyID, userID)
	if errors.Is(err, domain.ErrNotFound) {
		member, err = nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	if err := domain.Authorize(member, domain.CapViewActivity); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultActivityLimit
	}

	records, err := s.audit.ListByJourney(ctx, input.JourneyID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return records, nil
}
