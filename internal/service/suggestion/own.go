package suggestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/pkg/ctxutil"
)

// UpdateOwn replaces the content of the caller's own pending suggestion.
func (s *Service) UpdateOwn(ctx context.Context, input UpdateOwnInput) (*domain.Experience, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Experience
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		e, err := s.lockOwn(txCtx, input.SuggestionID, userID, domain.CapEditOwnSuggestion)
		if err != nil {
			return err
		}

		next := *e
		input.Payload.apply(&next)
		next.UpdatedAt = time.Now().UTC()

		updated, err = s.experiences.UpdateContent(txCtx, next)
		if err != nil {
			return fmt.Errorf("update suggestion: %w", err)
		}

		auditErr := s.audit.Log(txCtx, auditRecord(userID, updated, domain.AuditActionUpdate, map[string]any{
			"title": map[string]any{"old": e.Title, "new": updated.Title},
			"day":   map[string]any{"old": e.Day, "new": updated.Day},
		}))
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "suggestion updated",
		slog.String("user_id", userID.String()),
		slog.String("experience_id", updated.ID.String()),
	)

	return updated, nil
}

// WithdrawOwn deletes the caller's own pending suggestion.
func (s *Service) WithdrawOwn(ctx context.Context, suggestionID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if suggestionID == uuid.Nil {
		return domain.NewValidationError("suggestion_id", "required")
	}

	var withdrawn *domain.Experience
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		e, err := s.lockOwn(txCtx, suggestionID, userID, domain.CapWithdrawOwnSuggestion)
		if err != nil {
			return err
		}

		if err := s.experiences.DeletePending(txCtx, e.ID); err != nil {
			return fmt.Errorf("delete suggestion: %w", err)
		}
		withdrawn = e

		auditErr := s.audit.Log(txCtx, auditRecord(userID, e, domain.AuditActionDelete, map[string]any{
			"title": map[string]any{"old": e.Title},
		}))
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCounts(ctx, withdrawn.JourneyID)

	s.log.InfoContext(ctx, "suggestion withdrawn",
		slog.String("user_id", userID.String()),
		slog.String("experience_id", suggestionID.String()),
	)

	return nil
}

// lockOwn locks the suggestion row and checks that the caller may change it.
func (s *Service) lockOwn(ctx context.Context, suggestionID, userID uuid.UUID, c domain.Capability) (*domain.Experience, error) {
	e, err := s.experiences.GetByIDForUpdate(ctx, suggestionID)
	if err != nil {
		return nil, fmt.Errorf("get suggestion: %w", err)
	}
	if _, err := s.authorize(ctx, e.JourneyID, userID, c); err != nil {
		return nil, err
	}
	if err := e.CheckOwnChange(userID); err != nil {
		return nil, err
	}
	return e, nil
}
