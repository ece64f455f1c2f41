package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/internal/service/invitation"
	"github.com/heartmarshall/journey-planner-backend/internal/transport/dataloader"
	"github.com/heartmarshall/journey-planner-backend/pkg/apiv1"
)

type invitationService interface {
	Invite(ctx context.Context, input invitation.InviteInput) (*domain.Collaborator, error)
	Respond(ctx context.Context, input invitation.RespondInput) (*domain.Collaborator, error)
	Remove(ctx context.Context, input invitation.RemoveInput) error
	ListPending(ctx context.Context) ([]domain.PendingInvitation, error)
	ListCollaborators(ctx context.Context, journeyID uuid.UUID) ([]domain.Collaborator, error)
}

// CollaboratorHandler serves collaborator and invitation endpoints.
type CollaboratorHandler struct {
	svc invitationService
	log *slog.Logger
}

// NewCollaboratorHandler creates a CollaboratorHandler.
func NewCollaboratorHandler(svc invitationService, logger *slog.Logger) *CollaboratorHandler {
	return &CollaboratorHandler{svc: svc, log: logger.With("handler", "collaborator")}
}

// List handles GET /journeys/{id}/collaborators.
func (h *CollaboratorHandler) List(w http.ResponseWriter, r *http.Request) {
	journeyID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	collaborators, err := h.svc.ListCollaborators(r.Context(), journeyID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.withNames(r.Context(), collaborators))
}

// Invite handles POST /journeys/{id}/collaborators/invite.
func (h *CollaboratorHandler) Invite(w http.ResponseWriter, r *http.Request) {
	journeyID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req apiv1.InviteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	c, err := h.svc.Invite(r.Context(), invitation.InviteInput{
		JourneyID: journeyID,
		Email:     req.Email,
		Message:   req.Message,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, h.withNames(r.Context(), []domain.Collaborator{*c})[0])
}

// Remove handles DELETE /journeys/{id}/collaborators/{collaboratorId}.
func (h *CollaboratorHandler) Remove(w http.ResponseWriter, r *http.Request) {
	journeyID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	collaboratorID, err := pathID(r, "collaboratorId")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.Remove(r.Context(), invitation.RemoveInput{
		JourneyID:      journeyID,
		CollaboratorID: collaboratorID,
	}); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Respond handles POST /invitations/{id}/respond.
func (h *CollaboratorHandler) Respond(w http.ResponseWriter, r *http.Request) {
	invitationID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req apiv1.RespondRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	c, err := h.svc.Respond(r.Context(), invitation.RespondInput{
		InvitationID: invitationID,
		Decision:     req.Decision,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.withNames(r.Context(), []domain.Collaborator{*c})[0])
}

// Pending handles GET /invitations/pending.
func (h *CollaboratorHandler) Pending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.svc.ListPending(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]apiv1.PendingInvitation, len(pending))
	for i, p := range pending {
		out[i] = apiv1.FromPendingInvitation(p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CollaboratorHandler) withNames(ctx context.Context, collaborators []domain.Collaborator) []apiv1.Collaborator {
	ids := make([]uuid.UUID, len(collaborators))
	for i, c := range collaborators {
		ids[i] = c.UserID
	}
	names := dataloader.FromContext(ctx).DisplayNames(ctx, ids)

	out := make([]apiv1.Collaborator, len(collaborators))
	for i, c := range collaborators {
		out[i] = apiv1.FromCollaborator(c)
		out[i].Name = names[c.UserID]
	}
	return out
}
