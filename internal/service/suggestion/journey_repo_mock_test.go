package suggestion

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"sync"
)

var _ journeyRepo = &journeyRepoMock{}

type journeyRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Journey, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *journeyRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Journey, error) {
	if mock.GetByIDFunc == nil {
		panic("journeyRepoMock.GetByIDFunc: method is nil but journeyRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *journeyRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}
