package journey

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

//go:generate moq -out journey_repo_mock_test.go -pkg journey . journeyRepo
//go:generate moq -out collaborator_repo_mock_test.go -pkg journey . collaboratorRepo
//go:generate moq -out user_repo_mock_test.go -pkg journey . userRepo
//go:generate moq -out audit_logger_mock_test.go -pkg journey . auditLogger
//go:generate moq -out tx_manager_mock_test.go -pkg journey . txManager

type journeyRepo interface {
	Create(ctx context.Context, j domain.Journey) (*domain.Journey, error)
	ListVisible(ctx context.Context, userID uuid.UUID) ([]domain.Journey, error)
}

type collaboratorRepo interface {
	Create(ctx context.Context, c domain.Collaborator) (*domain.Collaborator, error)
	GetMember(ctx context.Context, journeyID, userID uuid.UUID) (*domain.Collaborator, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
	ListByJourney(ctx context.Context, journeyID uuid.UUID, limit int) ([]domain.AuditRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service creates and lists journeys and exposes their change history.
type Service struct {
	journeys      journeyRepo
	collaborators collaboratorRepo
	users         userRepo
	audit         auditLogger
	tx            txManager
	log           *slog.Logger
}

// NewService creates a new Journey service.
func NewService(
	log *slog.Logger,
	journeys journeyRepo,
	collaborators collaboratorRepo,
	users userRepo,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		journeys:      journeys,
		collaborators: collaborators,
		users:         users,
		audit:         audit,
		tx:            tx,
		log:           log.With("service", "journey"),
	}
}
