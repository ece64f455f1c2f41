package journey

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"sync"
)

var _ journeyRepo = &journeyRepoMock{}

type journeyRepoMock struct {
	CreateFunc      func(ctx context.Context, j domain.Journey) (*domain.Journey, error)
	ListVisibleFunc func(ctx context.Context, userID uuid.UUID) ([]domain.Journey, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			J   domain.Journey
		}
		ListVisible []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockCreate      sync.RWMutex
	lockListVisible sync.RWMutex
}

func (mock *journeyRepoMock) Create(ctx context.Context, j domain.Journey) (*domain.Journey, error) {
	if mock.CreateFunc == nil {
		panic("journeyRepoMock.CreateFunc: method is nil but journeyRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		J   domain.Journey
	}{Ctx: ctx, J: j}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, j)
}

func (mock *journeyRepoMock) CreateCalls() []struct {
	Ctx context.Context
	J   domain.Journey
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *journeyRepoMock) ListVisible(ctx context.Context, userID uuid.UUID) ([]domain.Journey, error) {
	if mock.ListVisibleFunc == nil {
		panic("journeyRepoMock.ListVisibleFunc: method is nil but journeyRepo.ListVisible was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockListVisible.Lock()
	mock.calls.ListVisible = append(mock.calls.ListVisible, callInfo)
	mock.lockListVisible.Unlock()
	return mock.ListVisibleFunc(ctx, userID)
}

func (mock *journeyRepoMock) ListVisibleCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockListVisible.RLock()
	calls := mock.calls.ListVisible
	mock.lockListVisible.RUnlock()
	return calls
}
