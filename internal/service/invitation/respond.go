package invitation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/pkg/ctxutil"
)

// Respond records the invitee's decision. The invitation row is locked for
// the duration of the transition so that concurrent answers serialize and
// the loser observes a terminal status.
func (s *Service) Respond(ctx context.Context, input RespondInput) (*domain.Collaborator, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Collaborator
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		inv, err := s.collaborators.GetByIDForUpdate(txCtx, input.InvitationID)
		if err != nil {
			return fmt.Errorf("get invitation: %w", err)
		}

		if err := inv.CheckRespond(userID, input.Decision); err != nil {
			return err
		}

		updated, err = s.collaborators.UpdateStatus(txCtx, inv.ID, input.Decision.Status(), time.Now().UTC())
		if err != nil {
			return fmt.Errorf("update invitation: %w", err)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			JourneyID:  inv.JourneyID,
			EntityType: domain.EntityTypeCollaborator,
			EntityID:   inv.ID,
			Action:     domain.AuditActionUpdate,
			Changes: map[string]any{
				"status": map[string]any{"old": string(inv.Status), "new": string(updated.Status)},
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

	s.invalidateCounts(ctx, updated.UserID, updated.InvitedByUserID)

	s.log.InfoContext(ctx, "invitation answered",
		slog.String("user_id", userID.String()),
		slog.String("invitation_id", updated.ID.String()),
		slog.String("status", string(updated.Status)),
	)

	return updated, nil
}
