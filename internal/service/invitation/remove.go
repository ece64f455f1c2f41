package invitation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/pkg/ctxutil"
)

// Remove hard-deletes a collaborator or pending invitation. The owner row
// cannot be removed.
func (s *Service) Remove(ctx context.Context, input RemoveInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	member, err := s.memberOf(ctx, input.JourneyID, userID)
	if err != nil {
		return err
	}
	if err := domain.Authorize(member, domain.CapRemoveCollaborator); err != nil {
		return err
	}

	target, err := s.collaborators.GetByID(ctx, input.CollaboratorID)
	if err != nil {
		return fmt.Errorf("get collaborator: %w", err)
	}
	if target.JourneyID != input.JourneyID {
		return fmt.Errorf("collaborator %s on journey %s: %w", input.CollaboratorID, input.JourneyID, domain.ErrNotFound)
	}
	if err := target.CheckRemovable(); err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.collaborators.Delete(txCtx, target.ID); err != nil {
			return fmt.Errorf("delete collaborator: %w", err)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			JourneyID:  input.JourneyID,
			EntityType: domain.EntityTypeCollaborator,
			EntityID:   target.ID,
			Action:     domain.AuditActionDelete,
			Changes: map[string]any{
				"email":  map[string]any{"old": target.Email},
				"status": map[string]any{"old": string(target.Status)},
			},
		})
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCounts(ctx, target.UserID, userID)

	s.log.InfoContext(ctx, "collaborator removed",
		slog.String("user_id", userID.String()),
		slog.String("journey_id", input.JourneyID.String()),
		slog.String("collaborator_id", target.ID.String()),
	)

	return nil
}
