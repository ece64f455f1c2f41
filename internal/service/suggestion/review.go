package suggestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/pkg/ctxutil"
)

// Review approves or rejects a pending suggestion. The row is locked and the
// status update is conditional on it still being pending.
func (s *Service) Review(ctx context.Context, input ReviewInput) (*domain.Experience, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.authorize(ctx, input.JourneyID, userID, domain.CapReviewSuggestion); err != nil {
		return nil, err
	}

	var reviewed *domain.Experience
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		e, err := s.experiences.GetByIDForUpdate(txCtx, input.SuggestionID)
		if err != nil {
			return fmt.Errorf("get suggestion: %w", err)
		}
		if e.JourneyID != input.JourneyID {
			return fmt.Errorf("suggestion %s on journey %s: %w", input.SuggestionID, input.JourneyID, domain.ErrNotFound)
		}
		if err := e.CheckReview(input.Action); err != nil {
			return err
		}

		reviewed, err = s.experiences.Review(txCtx, e.ID, input.Action.Status(), userID, trimOrNil(input.Notes), time.Now().UTC())
		if err != nil {
			return fmt.Errorf("review suggestion: %w", err)
		}

		auditErr := s.audit.Log(txCtx, auditRecord(userID, reviewed, domain.AuditActionUpdate, map[string]any{
			"approval_status": map[string]any{"old": string(e.ApprovalStatus), "new": string(reviewed.ApprovalStatus)},
		}))
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCounts(ctx, reviewed.JourneyID, reviewed.SuggestedByUserID)

	s.log.InfoContext(ctx, "suggestion reviewed",
		slog.String("user_id", userID.String()),
		slog.String("experience_id", reviewed.ID.String()),
		slog.String("status", string(reviewed.ApprovalStatus)),
	)

	return reviewed, nil
}
