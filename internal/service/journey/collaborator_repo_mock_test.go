package journey

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"sync"
)

var _ collaboratorRepo = &collaboratorRepoMock{}

type collaboratorRepoMock struct {
	CreateFunc    func(ctx context.Context, c domain.Collaborator) (*domain.Collaborator, error)
	GetMemberFunc func(ctx context.Context, journeyID uuid.UUID, userID uuid.UUID) (*domain.Collaborator, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			C   domain.Collaborator
		}
		GetMember []struct {
			Ctx       context.Context
			JourneyID uuid.UUID
			UserID    uuid.UUID
		}
	}
	lockCreate    sync.RWMutex
	lockGetMember sync.RWMutex
}

func (mock *collaboratorRepoMock) Create(ctx context.Context, c domain.Collaborator) (*domain.Collaborator, error) {
	if mock.CreateFunc == nil {
		panic("collaboratorRepoMock.CreateFunc: method is nil but collaboratorRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   domain.Collaborator
	}{Ctx: ctx, C: c}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *collaboratorRepoMock) CreateCalls() []struct {
	Ctx context.Context
	C   domain.Collaborator
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *collaboratorRepoMock) GetMember(ctx context.Context, journeyID uuid.UUID, userID uuid.UUID) (*domain.Collaborator, error) {
	if mock.GetMemberFunc == nil {
		panic("collaboratorRepoMock.GetMemberFunc: method is nil but collaboratorRepo.GetMember was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		JourneyID uuid.UUID
		UserID    uuid.UUID
	}{Ctx: ctx, JourneyID: journeyID, UserID: userID}
	mock.lockGetMember.Lock()
	mock.calls.GetMember = append(mock.calls.GetMember, callInfo)
	mock.lockGetMember.Unlock()
	return mock.GetMemberFunc(ctx, journeyID, userID)
}

func (mock *collaboratorRepoMock) GetMemberCalls() []struct {
	Ctx       context.Context
	JourneyID uuid.UUID
	UserID    uuid.UUID
} {
	mock.lockGetMember.RLock()
	calls := mock.calls.GetMember
	mock.lockGetMember.RUnlock()
	return calls
}
