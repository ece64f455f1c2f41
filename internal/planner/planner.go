// Package planner is the client kit for collaborative journey planning: an
// API client, the shared notification poller, the collection synchronizer
// and a Planner facade that ties mutations to invalidation and refresh.
package planner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/pkg/apiv1"
)

type collaborationAPI interface {
	ListCollaborators(ctx context.Context, journeyID uuid.UUID) ([]domain.Collaborator, error)
	Invite(ctx context.Context, journeyID uuid.UUID, email string, message *string) (domain.Collaborator, error)
	Respond(ctx context.Context, invitationID uuid.UUID, decision domain.InvitationDecision) (domain.Collaborator, error)
	Remove(ctx context.Context, journeyID, collaboratorID uuid.UUID) error
	ListPendingInvitations(ctx context.Context) ([]domain.PendingInvitation, error)

	Propose(ctx context.Context, journeyID uuid.UUID, req apiv1.ExperienceRequest) (domain.Experience, error)
	Review(ctx context.Context, journeyID, suggestionID uuid.UUID, action domain.ReviewAction, notes *string) (domain.Experience, error)
	UpdateOwn(ctx context.Context, suggestionID uuid.UUID, req apiv1.ExperienceRequest) (domain.Experience, error)
	WithdrawOwn(ctx context.Context, suggestionID uuid.UUID) error
	ListApproved(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error)
	ListPendingSuggestions(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error)
	ListMySuggestions(ctx context.Context) ([]domain.Experience, error)
}

// Planner runs user actions against the server. Each action checks the
// caller's capability first, applies an optimistic change where one is
// meaningful, and on success invalidates the affected collections and asks
// the aggregator for a refresh. Failed actions roll the optimistic change
// back and are never retried.
type Planner struct {
	api  collaborationAPI
	sync *Synchronizer
	bus  *Bus
	self uuid.UUID
	log  *slog.Logger
}

// NewPlanner creates a Planner for the user self and registers the
// collection loaders on sync.
func NewPlanner(api collaborationAPI, sync *Synchronizer, bus *Bus, self uuid.UUID, logger *slog.Logger) *Planner {
	p := &Planner{api: api, sync: sync, bus: bus, self: self, log: logger.With("component", "planner")}

	sync.Register(KindCollaborators, func(ctx context.Context, k CollectionKey) (any, error) {
		return api.ListCollaborators(ctx, k.JourneyID)
	})
	sync.Register(KindPendingInvitations, func(ctx context.Context, _ CollectionKey) (any, error) {
		return api.ListPendingInvitations(ctx)
	})
	sync.Register(KindApprovedExperiences, func(ctx context.Context, k CollectionKey) (any, error) {
		return api.ListApproved(ctx, k.JourneyID)
	})
	sync.Register(KindPendingSuggestions, func(ctx context.Context, k CollectionKey) (any, error) {
		return api.ListPendingSuggestions(ctx, k.JourneyID)
	})
	sync.Register(KindMySuggestions, func(ctx context.Context, _ CollectionKey) (any, error) {
		return api.ListMySuggestions(ctx)
	})
	return p
}

// UserID returns the id of the acting user.
func (p *Planner) UserID() uuid.UUID { return p.self }

// ---------------------------------------------------------------------------
// Collections
// ---------------------------------------------------------------------------

func (p *Planner) Collaborators(ctx context.Context, journeyID uuid.UUID) ([]domain.Collaborator, error) {
	return get[[]domain.Collaborator](ctx, p.sync, JourneyKey(KindCollaborators, journeyID))
}

func (p *Planner) PendingInvitations(ctx context.Context) ([]domain.PendingInvitation, error) {
	return get[[]domain.PendingInvitation](ctx, p.sync, UserKey(KindPendingInvitations))
}

func (p *Planner) ApprovedExperiences(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error) {
	return get[[]domain.Experience](ctx, p.sync, JourneyKey(KindApprovedExperiences, journeyID))
}

func (p *Planner) PendingSuggestions(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error) {
	return get[[]domain.Experience](ctx, p.sync, JourneyKey(KindPendingSuggestions, journeyID))
}

func (p *Planner) MySuggestions(ctx context.Context) ([]domain.Experience, error) {
	return get[[]domain.Experience](ctx, p.sync, UserKey(KindMySuggestions))
}

// ---------------------------------------------------------------------------
// Invitations
// ---------------------------------------------------------------------------

func (p *Planner) Invite(ctx context.Context, journeyID uuid.UUID, email string, message *string) (domain.Collaborator, error) {
	if err := p.authorize(ctx, journeyID, domain.CapInvite); err != nil {
		return domain.Collaborator{}, err
	}

	c, err := p.api.Invite(ctx, journeyID, email, message)
	if err != nil {
		return domain.Collaborator{}, err
	}

	p.settle(ctx, JourneyKey(KindCollaborators, journeyID))
	return c, nil
}

func (p *Planner) Respond(ctx context.Context, invitationID uuid.UUID, decision domain.InvitationDecision) (domain.Collaborator, error) {
	pending := p.sync.Optimistic(UserKey(KindPendingInvitations), without(invitationID, func(i domain.PendingInvitation) uuid.UUID {
		return i.ID
	}))

	c, err := p.api.Respond(ctx, invitationID, decision)
	if err != nil {
		pending.Rollback()
		return domain.Collaborator{}, err
	}

	p.settle(ctx, UserKey(KindPendingInvitations), JourneyKey(KindCollaborators, c.JourneyID))
	return c, nil
}

func (p *Planner) Remove(ctx context.Context, journeyID, collaboratorID uuid.UUID) error {
	if err := p.authorize(ctx, journeyID, domain.CapRemoveCollaborator); err != nil {
		return err
	}

	key := JourneyKey(KindCollaborators, journeyID)
	pending := p.sync.Optimistic(key, without(collaboratorID, func(c domain.Collaborator) uuid.UUID {
		return c.ID
	}))

	if err := p.api.Remove(ctx, journeyID, collaboratorID); err != nil {
		pending.Rollback()
		return err
	}

	p.settle(ctx, key)
	return nil
}

// ---------------------------------------------------------------------------
// Suggestions
// ---------------------------------------------------------------------------

func (p *Planner) Propose(ctx context.Context, journeyID uuid.UUID, req apiv1.ExperienceRequest) (domain.Experience, error) {
	if err := p.authorize(ctx, journeyID, domain.CapProposeExperience); err != nil {
		return domain.Experience{}, err
	}

	e, err := p.api.Propose(ctx, journeyID, req)
	if err != nil {
		return domain.Experience{}, err
	}

	keys := []CollectionKey{UserKey(KindMySuggestions)}
	if e.ApprovalStatus == domain.ApprovalStatusApproved {
		keys = append(keys, JourneyKey(KindApprovedExperiences, journeyID))
	}
	p.settle(ctx, keys...)
	return e, nil
}

func (p *Planner) Review(ctx context.Context, journeyID, suggestionID uuid.UUID, action domain.ReviewAction, notes *string) (domain.Experience, error) {
	if err := p.authorize(ctx, journeyID, domain.CapReviewSuggestion); err != nil {
		return domain.Experience{}, err
	}

	pendingKey := JourneyKey(KindPendingSuggestions, journeyID)
	pending := p.sync.Optimistic(pendingKey, without(suggestionID, experienceID))

	e, err := p.api.Review(ctx, journeyID, suggestionID, action, notes)
	if err != nil {
		pending.Rollback()
		return domain.Experience{}, err
	}

	keys := []CollectionKey{pendingKey}
	if e.ApprovalStatus == domain.ApprovalStatusApproved {
		keys = append(keys, JourneyKey(KindApprovedExperiences, journeyID))
	}
	p.settle(ctx, keys...)
	return e, nil
}

func (p *Planner) UpdateOwn(ctx context.Context, suggestionID uuid.UUID, req apiv1.ExperienceRequest) (domain.Experience, error) {
	if err := p.checkOwn(suggestionID); err != nil {
		return domain.Experience{}, err
	}

	e, err := p.api.UpdateOwn(ctx, suggestionID, req)
	if err != nil {
		return domain.Experience{}, err
	}

	p.settle(ctx, UserKey(KindMySuggestions), JourneyKey(KindPendingSuggestions, e.JourneyID))
	return e, nil
}

func (p *Planner) WithdrawOwn(ctx context.Context, suggestionID uuid.UUID) error {
	if err := p.checkOwn(suggestionID); err != nil {
		return err
	}
	journeyID := p.cachedJourneyOf(suggestionID)

	mine := UserKey(KindMySuggestions)
	pending := p.sync.Optimistic(mine, without(suggestionID, experienceID))

	if err := p.api.WithdrawOwn(ctx, suggestionID); err != nil {
		pending.Rollback()
		return err
	}

	keys := []CollectionKey{mine}
	if journeyID != uuid.Nil {
		keys = append(keys, JourneyKey(KindPendingSuggestions, journeyID))
	}
	p.settle(ctx, keys...)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// authorize checks capability against the caller's row in the journey's
// collaborator list. The server repeats the check authoritatively.
func (p *Planner) authorize(ctx context.Context, journeyID uuid.UUID, c domain.Capability) error {
	collaborators, err := p.Collaborators(ctx, journeyID)
	if err != nil {
		return err
	}
	var member *domain.Collaborator
	for i := range collaborators {
		if collaborators[i].UserID == p.self && collaborators[i].BlocksInvite() {
			member = &collaborators[i]
			break
		}
	}
	return domain.Authorize(member, c)
}

// checkOwn rejects edits of a cached suggestion that is not the caller's
// pending one. Uncached suggestions are left to the server.
func (p *Planner) checkOwn(suggestionID uuid.UUID) error {
	v, ok := p.sync.Peek(UserKey(KindMySuggestions))
	if !ok {
		return nil
	}
	mine, _ := v.([]domain.Experience)
	for _, e := range mine {
		if e.ID == suggestionID {
			return e.CheckOwnChange(p.self)
		}
	}
	return nil
}

func (p *Planner) cachedJourneyOf(suggestionID uuid.UUID) uuid.UUID {
	v, ok := p.sync.Peek(UserKey(KindMySuggestions))
	if !ok {
		return uuid.Nil
	}
	mine, _ := v.([]domain.Experience)
	for _, e := range mine {
		if e.ID == suggestionID {
			return e.JourneyID
		}
	}
	return uuid.Nil
}

// settle invalidates keys and asks for a notification refresh.
func (p *Planner) settle(ctx context.Context, keys ...CollectionKey) {
	p.sync.Invalidate(ctx, keys...)
	if p.bus != nil {
		p.bus.RequestRefresh()
	}
}

func get[T any](ctx context.Context, s *Synchronizer, key CollectionKey) (T, error) {
	var zero T
	v, err := s.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok && v != nil {
		return zero, fmt.Errorf("collection %s holds %T", key, v)
	}
	return t, nil
}

// without returns an optimistic edit that drops the item with id.
func without[T any](id uuid.UUID, idOf func(T) uuid.UUID) func(any) any {
	return func(v any) any {
		items, _ := v.([]T)
		out := make([]T, 0, len(items))
		for _, it := range items {
			if idOf(it) != id {
				out = append(out, it)
			}
		}
		return out
	}
}

func experienceID(e domain.Experience) uuid.UUID { return e.ID }
