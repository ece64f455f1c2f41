package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/internal/service/suggestion"
	"github.com/heartmarshall/journey-planner-backend/internal/transport/dataloader"
	"github.com/heartmarshall/journey-planner-backend/pkg/apiv1"
)

type suggestionService interface {
	Propose(ctx context.Context, input suggestion.ProposeInput) (*domain.Experience, error)
	Review(ctx context.Context, input suggestion.ReviewInput) (*domain.Experience, error)
	UpdateOwn(ctx context.Context, input suggestion.UpdateOwnInput) (*domain.Experience, error)
	WithdrawOwn(ctx context.Context, suggestionID uuid.UUID) error
	ListPending(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error)
	ListMine(ctx context.Context) ([]domain.Experience, error)
	ListApproved(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error)
}

// SuggestionHandler serves experience and suggestion endpoints.
type SuggestionHandler struct {
	svc suggestionService
	log *slog.Logger
}

// NewSuggestionHandler creates a SuggestionHandler.
func NewSuggestionHandler(svc suggestionService, logger *slog.Logger) *SuggestionHandler {
	return &SuggestionHandler{svc: svc, log: logger.With("handler", "suggestion")}
}

// Propose handles POST /journeys/{id}/experiences.
func (h *SuggestionHandler) Propose(w http.ResponseWriter, r *http.Request) {
	journeyID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req apiv1.ExperienceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	e, err := h.svc.Propose(r.Context(), suggestion.ProposeInput{
		JourneyID: journeyID,
		Payload:   payloadFrom(req),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, withExperienceNames(r.Context(), []domain.Experience{*e})[0])
}

// ListApproved handles GET /journeys/{id}/experiences.
func (h *SuggestionHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	h.listByJourney(w, r, h.svc.ListApproved)
}

// ListPending handles GET /journeys/{id}/suggestions.
func (h *SuggestionHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	h.listByJourney(w, r, h.svc.ListPending)
}

// Review handles POST /journeys/{id}/suggestions/{suggestionId}/review.
func (h *SuggestionHandler) Review(w http.ResponseWriter, r *http.Request) {
	journeyID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	suggestionID, err := pathID(r, "suggestionId")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req apiv1.ReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	e, err := h.svc.Review(r.Context(), suggestion.ReviewInput{
		JourneyID:    journeyID,
		SuggestionID: suggestionID,
		Action:       req.Action,
		Notes:        req.Notes,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, withExperienceNames(r.Context(), []domain.Experience{*e})[0])
}

// Update handles PATCH /suggestions/{id}.
func (h *SuggestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	suggestionID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req apiv1.ExperienceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	e, err := h.svc.UpdateOwn(r.Context(), suggestion.UpdateOwnInput{
		SuggestionID: suggestionID,
		Payload:      payloadFrom(req),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, withExperienceNames(r.Context(), []domain.Experience{*e})[0])
}

// Withdraw handles DELETE /suggestions/{id}.
func (h *SuggestionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	suggestionID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.WithdrawOwn(r.Context(), suggestionID); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMine handles GET /users/me/suggestions.
func (h *SuggestionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	experiences, err := h.svc.ListMine(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, withExperienceNames(r.Context(), experiences))
}

func (h *SuggestionHandler) listByJourney(
	w http.ResponseWriter,
	r *http.Request,
	list func(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error),
) {
	journeyID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	experiences, err := list(r.Context(), journeyID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, withExperienceNames(r.Context(), experiences))
}

func payloadFrom(req apiv1.ExperienceRequest) suggestion.Payload {
	return suggestion.Payload{
		Day:         req.Day,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
	}
}

// withExperienceNames converts experiences and fills suggester and reviewer
// names in one batch.
func withExperienceNames(ctx context.Context, experiences []domain.Experience) []apiv1.Experience {
	ids := make([]uuid.UUID, 0, len(experiences)*2)
	for _, e := range experiences {
		ids = append(ids, e.SuggestedByUserID)
		if e.ReviewedByUserID != nil {
			ids = append(ids, *e.ReviewedByUserID)
		}
	}
	names := dataloader.FromContext(ctx).DisplayNames(ctx, ids)

	out := make([]apiv1.Experience, len(experiences))
	for i, e := range experiences {
		out[i] = apiv1.FromExperience(e)
		out[i].SuggestedByName = names[e.SuggestedByUserID]
		if e.ReviewedByUserID != nil {
			out[i].ReviewedByName = names[*e.ReviewedByUserID]
		}
	}
	return out
}
