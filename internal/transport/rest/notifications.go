package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/pkg/apiv1"
)

type notificationService interface {
	Counts(ctx context.Context) (domain.NotificationCounts, error)
	Details(ctx context.Context) (domain.NotificationDetails, error)
}

// NotificationHandler serves the notification badge endpoints.
type NotificationHandler struct {
	svc notificationService
	log *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc notificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, log: logger.With("handler", "notification")}
}

// Counts handles GET /notifications.
func (h *NotificationHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.Counts(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, apiv1.FromCounts(counts))
}

// Details handles GET /notifications/details.
func (h *NotificationHandler) Details(w http.ResponseWriter, r *http.Request) {
	details, err := h.svc.Details(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, apiv1.NotificationDetails{
		PendingSuggestions: withExperienceNames(r.Context(), details.PendingSuggestions),
		RecentResponses:    withExperienceNames(r.Context(), details.RecentResponses),
	})
}
