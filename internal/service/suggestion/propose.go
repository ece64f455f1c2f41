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

// Propose adds an experience to the journey. An owner's experience is
// approved on insert; a contributor's waits for review.
func (s *Service) Propose(ctx context.Context, input ProposeInput) (*domain.Experience, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	member, err := s.authorize(ctx, input.JourneyID, userID, domain.CapProposeExperience)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	e := domain.Experience{
		ID:                uuid.New(),
		JourneyID:         input.JourneyID,
		SuggestedByUserID: userID,
		ApprovalStatus:    domain.InitialStatus(member.Role),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	input.Payload.apply(&e)

	var created *domain.Experience
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.experiences.Create(txCtx, e)
		if createErr != nil {
			return fmt.Errorf("create experience: %w", createErr)
		}

		auditErr := s.audit.Log(txCtx, auditRecord(userID, created, domain.AuditActionCreate, map[string]any{
			"title":           map[string]any{"new": created.Title},
			"approval_status": map[string]any{"new": string(created.ApprovalStatus)},
		}))
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created.ApprovalStatus == domain.ApprovalStatusPending {
		s.invalidateCounts(ctx, created.JourneyID)
	}

	s.log.InfoContext(ctx, "experience proposed",
		slog.String("user_id", userID.String()),
		slog.String("journey_id", created.JourneyID.String()),
		slog.String("experience_id", created.ID.String()),
		slog.String("status", string(created.ApprovalStatus)),
	)

	return created, nil
}
