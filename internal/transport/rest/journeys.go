package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/internal/service/journey"
	"github.com/heartmarshall/journey-planner-backend/internal/transport/dataloader"
	"github.com/heartmarshall/journey-planner-backend/pkg/apiv1"
)

type journeyService interface {
	Create(ctx context.Context, input journey.CreateInput) (*domain.Journey, error)
	List(ctx context.Context) ([]domain.Journey, error)
	Activity(ctx context.Context, input journey.ActivityInput) ([]domain.AuditRecord, error)
}

// JourneyHandler serves /journeys and the journey activity feed.
type JourneyHandler struct {
	svc journeyService
	log *slog.Logger
}

// NewJourneyHandler creates a JourneyHandler.
func NewJourneyHandler(svc journeyService, logger *slog.Logger) *JourneyHandler {
	return &JourneyHandler{svc: svc, log: logger.With("handler", "journey")}
}

// Create handles POST /journeys.
func (h *JourneyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req apiv1.CreateJourneyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	j, err := h.svc.Create(r.Context(), journey.CreateInput{Title: req.Title})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, apiv1.FromJourney(*j))
}

// List handles GET /journeys.
func (h *JourneyHandler) List(w http.ResponseWriter, r *http.Request) {
	journeys, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]apiv1.Journey, len(journeys))
	for i, j := range journeys {
		out[i] = apiv1.FromJourney(j)
	}
	writeJSON(w, http.StatusOK, out)
}

// Activity handles GET /journeys/{id}/activity?limit=N.
func (h *JourneyHandler) Activity(w http.ResponseWriter, r *http.Request) {
	journeyID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			handleError(h.log, w, r, domain.NewValidationError("limit", "must be an integer"))
			return
		}
	}

	records, err := h.svc.Activity(r.Context(), journey.ActivityInput{JourneyID: journeyID, Limit: limit})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	ids := make([]uuid.UUID, len(records))
	for i, rec := range records {
		ids[i] = rec.UserID
	}
	names := dataloader.FromContext(r.Context()).DisplayNames(r.Context(), ids)

	out := make([]apiv1.ActivityEntry, len(records))
	for i, rec := range records {
		out[i] = apiv1.FromAuditRecord(rec)
		out[i].UserName = names[rec.UserID]
	}
	writeJSON(w, http.StatusOK, out)
}
