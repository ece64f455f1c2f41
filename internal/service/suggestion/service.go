package suggestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

//go:generate moq -out experience_repo_mock_test.go -pkg suggestion . experienceRepo
//go:generate moq -out member_repo_mock_test.go -pkg suggestion . memberRepo
//go:generate moq -out journey_repo_mock_test.go -pkg suggestion . journeyRepo
//go:generate moq -out count_cache_mock_test.go -pkg suggestion . countCache
//go:generate moq -out audit_logger_mock_test.go -pkg suggestion . auditLogger
//go:generate moq -out tx_manager_mock_test.go -pkg suggestion . txManager

type experienceRepo interface {
	Create(ctx context.Context, e domain.Experience) (*domain.Experience, error)
	UpdateContent(ctx context.Context, e domain.Experience) (*domain.Experience, error)
	Review(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus, reviewerID uuid.UUID, notes *string, at time.Time) (*domain.Experience, error)
	DeletePending(ctx context.Context, id uuid.UUID) error
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Experience, error)
	ListApproved(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error)
	ListPending(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error)
	ListBySuggester(ctx context.Context, userID uuid.UUID) ([]domain.Experience, error)
}

type memberRepo interface {
	GetMember(ctx context.Context, journeyID, userID uuid.UUID) (*domain.Collaborator, error)
}

type journeyRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Journey, error)
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

// Service runs the suggestion review workflow.
type Service struct {
	experiences experienceRepo
	members     memberRepo
	journeys    journeyRepo
	counts      countCache
	audit       auditLogger
	tx          txManager
	log         *slog.Logger
}

// NewService creates a new Suggestion service.
func NewService(
	log *slog.Logger,
	experiences experienceRepo,
	members memberRepo,
	journeys journeyRepo,
	counts countCache,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		experiences: experiences,
		members:     members,
		journeys:    journeys,
		counts:      counts,
		audit:       audit,
		tx:          tx,
		log:         log.With("service", "suggestion"),
	}
}

// authorize loads the caller's row on the journey and checks capability.
func (s *Service) authorize(ctx context.Context, journeyID, userID uuid.UUID, c domain.Capability) (*domain.Collaborator, error) {
	member, err := s.members.GetMember(ctx, journeyID, userID)
	if errors.Is(err, domain.ErrNotFound) {
		member, err = nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	if err := domain.Authorize(member, c); err != nil {
		return nil, err
	}
	return member, nil
}

// invalidateCounts drops cached notification counts of the journey owner
// and the given users. Failures are logged and swallowed.
func (s *Service) invalidateCounts(ctx context.Context, journeyID uuid.UUID, userIDs ...uuid.UUID) {
	j, err := s.journeys.GetByID(ctx, journeyID)
	if err != nil {
		s.log.WarnContext(ctx, "invalidate notification counts: get journey", slog.String("error", err.Error()))
	} else {
		userIDs = append(userIDs, j.OwnerID)
	}

	if err := s.counts.Invalidate(ctx, userIDs...); err != nil {
		s.log.WarnContext(ctx, "invalidate notification counts", slog.String("error", err.Error()))
	}
}

func auditRecord(userID uuid.UUID, e *domain.Experience, action domain.AuditAction, changes map[string]any) domain.AuditRecord {
	return domain.AuditRecord{
		UserID:     userID,
		JourneyID:  e.JourneyID,
		EntityType: domain.EntityTypeExperience,
		EntityID:   e.ID,
		Action:     action,
		Changes:    changes,
	}
}
