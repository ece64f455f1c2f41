package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres"
	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres/collaborator"
	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres/experience"
	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres/journey"
	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres/notification"
	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/journey-planner-backend/internal/auth"
	"github.com/heartmarshall/journey-planner-backend/internal/config"
	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	invitationsvc "github.com/heartmarshall/journey-planner-backend/internal/service/invitation"
	journeysvc "github.com/heartmarshall/journey-planner-backend/internal/service/journey"
	notificationsvc "github.com/heartmarshall/journey-planner-backend/internal/service/notification"
	suggestionsvc "github.com/heartmarshall/journey-planner-backend/internal/service/suggestion"
	usersvc "github.com/heartmarshall/journey-planner-backend/internal/service/user"
	"github.com/heartmarshall/journey-planner-backend/internal/transport/dataloader"
	"github.com/heartmarshall/journey-planner-backend/internal/transport/middleware"
	"github.com/heartmarshall/journey-planner-backend/internal/transport/rest"
)

const rateLimitCleanupInterval = 5 * time.Minute

// CountCache is the notification count cache: Redis when configured,
// countcache.Noop otherwise.
type CountCache interface {
	Get(ctx context.Context, userID uuid.UUID) (domain.NotificationCounts, bool, error)
	Version(ctx context.Context, userID uuid.UUID) (uint64, error)
	Set(ctx context.Context, userID uuid.UUID, version uint64, counts domain.NotificationCounts) error
	Invalidate(ctx context.Context, userIDs ...uuid.UUID) error
	Ping(ctx context.Context) error
}

// NewHandler wires repositories, services and transport into the root HTTP
// handler. The returned cleanup stops background middleware goroutines.
func NewHandler(cfg *config.Config, pool *pgxpool.Pool, cache CountCache, logger *slog.Logger) (http.Handler, func()) {
	txm := postgres.NewTxManager(pool)

	// Repositories.
	auditRepo := audit.New(pool)
	collaboratorRepo := collaborator.New(pool)
	experienceRepo := experience.New(pool)
	journeyRepo := journey.New(pool)
	notificationRepo := notification.New(pool)
	userRepo := user.New(pool)

	// Services.
	journeyService := journeysvc.NewService(logger, journeyRepo, collaboratorRepo, userRepo, auditRepo, txm)
	invitationService := invitationsvc.NewService(logger, collaboratorRepo, userRepo, cache, auditRepo, txm)
	suggestionService := suggestionsvc.NewService(logger, experienceRepo, collaboratorRepo, journeyRepo, cache, auditRepo, txm)
	notificationService := notificationsvc.NewService(logger, notificationRepo, cache, cfg.Notifications.RecentWindow)
	userService := usersvc.NewService(logger, userRepo)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	health := rest.NewHealthHandler(pool, BuildVersion())
	if cfg.Redis.Enabled() {
		health = health.WithCache(cache)
	}

	limiter := middleware.NewRateLimiter(clockwork.NewRealClock(), rateLimitCleanupInterval)

	router := rest.NewRouter(rest.Handlers{
		Health:        health,
		Journeys:      rest.NewJourneyHandler(journeyService, logger),
		Collaborators: rest.NewCollaboratorHandler(invitationService, logger),
		Suggestions:   rest.NewSuggestionHandler(suggestionService, logger),
		Notifications: rest.NewNotificationHandler(notificationService, logger),
		Users:         rest.NewUserHandler(userService, logger),
	}, rest.RouterMiddleware{
		Authenticate: middleware.RequireUser,
		Loaders:      dataloader.Middleware(&dataloader.Repos{User: userRepo}),
		Mutation:     limiter.Limit(cfg.Server.RateLimitPerMinute),
	})

	// Auth runs before Logger so request logs carry user_id. Anonymous
	// requests pass through; the router rejects them outside the probes.
	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
		middleware.Logger(logger),
	)(router)

	return handler, limiter.Stop
}
