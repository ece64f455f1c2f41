package invitation

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

// Invite creates a pending CONTRIBUTOR invitation for the user registered
// under input.Email. Only the journey owner may invite.
func (s *Service) Invite(ctx context.Context, input InviteInput) (*domain.Collaborator, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	member, err := s.memberOf(ctx, input.JourneyID, userID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(member, domain.CapInvite); err != nil {
		return nil, err
	}

	email := domain.NormalizeEmail(input.Email)
	invitee, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find invitee: %w", err)
	}

	existing, err := s.memberOf(ctx, input.JourneyID, invitee.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.BlocksInvite() {
		return nil, fmt.Errorf("%s is already %s on this journey: %w", email, existing.Status, domain.ErrDuplicateInvitation)
	}

	var created *domain.Collaborator
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.collaborators.Create(txCtx, domain.Collaborator{
			ID:              uuid.New(),
			JourneyID:       input.JourneyID,
			UserID:          invitee.ID,
			Email:           invitee.Email,
			Role:            domain.RoleContributor,
			Status:          domain.CollaboratorStatusPending,
			InvitedAt:       time.Now().UTC(),
			InvitedByUserID: userID,
			Message:         trimOrNil(input.Message),
		})
		if createErr != nil {
			// The partial unique index catches a concurrent invite of the same user.
			if errors.Is(createErr, domain.ErrDuplicateInvitation) {
				return createErr
			}
			return fmt.Errorf("create invitation: %w", createErr)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			JourneyID:  input.JourneyID,
			EntityType: domain.EntityTypeCollaborator,
			EntityID:   created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"email":  map[string]any{"new": created.Email},
				"status": map[string]any{"new": string(created.Status)},
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

	s.invalidateCounts(ctx, invitee.ID, userID)

	s.log.InfoContext(ctx, "invitation sent",
		slog.String("user_id", userID.String()),
		slog.String("journey_id", input.JourneyID.String()),
		slog.String("invitation_id", created.ID.String()),
	)

	return created, nil
}
