package invitation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

//go:generate moq -out collaborator_repo_mock_test.go -pkg invitation . collaboratorRepo
//go:generate moq -out user_repo_mock_test.go -pkg invitation . userRepo
//go:generate moq -out count_cache_mock_test.go -pkg invitation . countCache
//go:generate moq -out audit_logger_mock_test.go -pkg invitation . auditLogger
//go:generate moq -out tx_manager_mock_test.go -pkg invitation . txManager

type collaboratorRepo interface {
	Create(ctx context.Context, c domain.Collaborator) (*domain.Collaborator, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CollaboratorStatus, at time.Time) (*domain.Collaborator, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Collaborator, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Collaborator, error)
	GetMember(ctx context.Context, journeyID, userID uuid.UUID) (*domain.Collaborator, error)
	ListByJourney(ctx context.Context, journeyID uuid.UUID) ([]domain.Collaborator, error)
	ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]domain.PendingInvitation, error)
}

type userRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type countCache interface {
	Invalidate(ctx context.Context, userIDs ...uuid.UUID) error
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages the invitation lifecycle of journey collaborators.
type Service struct {
	collaborators collaboratorRepo
	users         userRepo
	counts        countCache
	audit         auditLogger
	tx            txManager
	log           *slog.Logger
}

// NewService creates a new Invitation service.
func NewService(
	log *slog.Logger,
	collaborators collaboratorRepo,
	users userRepo,
	counts countCache,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		collaborators: collaborators,
		users:         users,
		counts:        counts,
		audit:         audit,
		tx:            tx,
		log:           log.With("service", "invitation"),
	}
}

// memberOf returns the caller's non-declined row on the journey, or nil.
func (s *Service) memberOf(ctx context.Context, journeyID, userID uuid.UUID) (*domain.Collaborator, error) {
	member, err := s.collaborators.GetMember(ctx, journeyID, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return member, nil
}

// invalidateCounts drops cached notification counts. Failures only cost
// staleness until the cache TTL, so they are logged and swallowed.
func (s *Service) invalidateCounts(ctx context.Context, userIDs ...uuid.UUID) {
	if err := s.counts.Invalidate(ctx, userIDs...); err != nil {
		s.log.WarnContext(ctx, "invalidate notification counts", slog.String("error", err.Error()))
	}
}
