package suggestion

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"sync"
)

var _ memberRepo = &memberRepoMock{}

type memberRepoMock struct {
	GetMemberFunc func(ctx context.Context, journeyID uuid.UUID, userID uuid.UUID) (*domain.Collaborator, error)

	calls struct {
		GetMember []struct {
			Ctx       context.Context
			JourneyID uuid.UUID
			UserID    uuid.UUID
		}
	}
	lockGetMember sync.RWMutex
}

func (mock *memberRepoMock) GetMember(ctx context.Context, journeyID uuid.UUID, userID uuid.UUID) (*domain.Collaborator, error) {
	if mock.GetMemberFunc == nil {
		panic("memberRepoMock.GetMemberFunc: method is nil but memberRepo.GetMember was just called")
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

func (mock *memberRepoMock) GetMemberCalls() []struct {
	Ctx       context.Context
	JourneyID uuid.UUID
	UserID    uuid.UUID
} {
	mock.lockGetMember.RLock()
	calls := mock.calls.GetMember
	mock.lockGetMember.RUnlock()
	return calls
}
