package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/internal/service/invitation"
	"sync"
)

var _ invitationService = &invitationServiceMock{}

type invitationServiceMock struct {
	InviteFunc            func(ctx context.Context, input invitation.InviteInput) (*domain.Collaborator, error)
	RespondFunc           func(ctx context.Context, input invitation.RespondInput) (*domain.Collaborator, error)
	RemoveFunc            func(ctx context.Context, input invitation.RemoveInput) error
	ListPendingFunc       func(ctx context.Context) ([]domain.PendingInvitation, error)
	ListCollaboratorsFunc func(ctx context.Context, journeyID uuid.UUID) ([]domain.Collaborator, error)

	calls struct {
		Invite []struct {
			Ctx   context.Context
			Input invitation.InviteInput
		}
		Respond []struct {
			Ctx   context.Context
			Input invitation.RespondInput
		}
		Remove []struct {
			Ctx   context.Context
			Input invitation.RemoveInput
		}
		ListPending []struct {
			Ctx context.Context
		}
		ListCollaborators []struct {
			Ctx       context.Context
			JourneyID uuid.UUID
		}
	}
	lockInvite            sync.RWMutex
	lockRespond           sync.RWMutex
	lockRemove            sync.RWMutex
	lockListPending       sync.RWMutex
	lockListCollaborators sync.RWMutex
}

func (mock *invitationServiceMock) Invite(ctx context.Context, input invitation.InviteInput) (*domain.Collaborator, error) {
	if mock.InviteFunc == nil {
		panic("invitationServiceMock.InviteFunc: method is nil but invitationService.Invite was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input invitation.InviteInput
	}{Ctx: ctx, Input: input}
	mock.lockInvite.Lock()
	mock.calls.Invite = append(mock.calls.Invite, callInfo)
	mock.lockInvite.Unlock()
	return mock.InviteFunc(ctx, input)
}

func (mock *invitationServiceMock) InviteCalls() []struct {
	Ctx   context.Context
	Input invitation.InviteInput
} {
	mock.lockInvite.RLock()
	calls := mock.calls.Invite
	mock.lockInvite.RUnlock()
	return calls
}

func (mock *invitationServiceMock) Respond(ctx context.Context, input invitation.RespondInput) (*domain.Collaborator, error) {
	if mock.RespondFunc == nil {
		panic("invitationServiceMock.RespondFunc: method is nil but invitationService.Respond was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input invitation.RespondInput
	}{Ctx: ctx, Input: input}
	mock.lockRespond.Lock()
	mock.calls.Respond = append(mock.calls.Respond, callInfo)
	mock.lockRespond.Unlock()
	return mock.RespondFunc(ctx, input)
}

func (mock *invitationServiceMock) RespondCalls() []struct {
	Ctx   context.Context
	Input invitation.RespondInput
} {
	mock.lockRespond.RLock()
	calls := mock.calls.Respond
	mock.lockRespond.RUnlock()
	return calls
}

func (mock *invitationServiceMock) Remove(ctx context.Context, input invitation.RemoveInput) error {
	if mock.RemoveFunc == nil {
		panic("invitationServiceMock.RemoveFunc: method is nil but invitationService.Remove was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input invitation.RemoveInput
	}{Ctx: ctx, Input: input}
	mock.lockRemove.Lock()
	mock.calls.Remove = append(mock.calls.Remove, callInfo)
	mock.lockRemove.Unlock()
	return mock.RemoveFunc(ctx, input)
}

func (mock *invitationServiceMock) RemoveCalls() []struct {
	Ctx   context.Context
	Input invitation.RemoveInput
} {
	mock.lockRemove.RLock()
	calls := mock.calls.Remove
	mock.lockRemove.RUnlock()
	return calls
}

func (mock *invitationServiceMock) ListPending(ctx context.Context) ([]domain.PendingInvitation, error) {
	if mock.ListPendingFunc == nil {
		panic("invitationServiceMock.ListPendingFunc: method is nil but invitationService.ListPending was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListPending.Lock()
	mock.calls.ListPending = append(mock.calls.ListPending, callInfo)
	mock.lockListPending.Unlock()
	return mock.ListPendingFunc(ctx)
}

func (mock *invitationServiceMock) ListPendingCalls() []struct {
	Ctx context.Context
} {
	mock.lockListPending.RLock()
	calls := mock.calls.ListPending
	mock.lockListPending.RUnlock()
	return calls
}

func (mock *invitationServiceMock) ListCollaborators(ctx context.Context, journeyID uuid.UUID) ([]domain.Collaborator, error) {
	if mock.ListCollaboratorsFunc == nil {
		panic("invitationServiceMock.ListCollaboratorsFunc: method is nil but invitationService.ListCollaborators was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		JourneyID uuid.UUID
	}{Ctx: ctx, JourneyID: journeyID}
	mock.lockListCollaborators.Lock()
	mock.calls.ListCollaborators = append(mock.calls.ListCollaborators, callInfo)
	mock.lockListCollaborators.Unlock()
	return mock.ListCollaboratorsFunc(ctx, journeyID)
}

func (mock *invitationServiceMock) ListCollaboratorsCalls() []struct {
	Ctx       context.Context
	JourneyID uuid.UUID
} {
	mock.lockListCollaborators.RLock()
	calls := mock.calls.ListCollaborators
	mock.lockListCollaborators.RUnlock()
	return calls
}
