package rest

import (
	"context"
	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/internal/service/journey"
	"sync"
)

var _ journeyService = &journeyServiceMock{}

type journeyServiceMock struct {
	CreateFunc   func(ctx context.Context, input journey.CreateInput) (*domain.Journey, error)
	ListFunc     func(ctx context.Context) ([]domain.Journey, error)
	ActivityFunc func(ctx context.Context, input journey.ActivityInput) ([]domain.AuditRecord, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Input journey.CreateInput
		}
		List []struct {
			Ctx context.Context
		}
		Activity []struct {
			Ctx   context.Context
			Input journey.ActivityInput
		}
	}
	lockCreate   sync.RWMutex
	lockList     sync.RWMutex
	lockActivity sync.RWMutex
}

func (mock *journeyServiceMock) Create(ctx context.Context, input journey.CreateInput) (*domain.Journey, error) {
	if mock.CreateFunc == nil {
		panic("journeyServiceMock.CreateFunc: method is nil but journeyService.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input journey.CreateInput
	}{Ctx: ctx, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, input)
}

func (mock *journeyServiceMock) CreateCalls() []struct {
	Ctx   context.Context
	Input journey.CreateInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *journeyServiceMock) List(ctx context.Context) ([]domain.Journey, error) {
	if mock.ListFunc == nil {
		panic("journeyServiceMock.ListFunc: method is nil but journeyService.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *journeyServiceMock) ListCalls() []struct {
	Ctx context.Context
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *journeyServiceMock) Activity(ctx context.Context, input journey.ActivityInput) ([]domain.AuditRecord, error) {
	if mock.ActivityFunc == nil {
		panic("journeyServiceMock.ActivityFunc: method is nil but journeyService.Activity was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input journey.ActivityInput
	}{Ctx: ctx, Input: input}
	mock.lockActivity.Lock()
	mock.calls.Activity = append(mock.calls.Activity, callInfo)
	mock.lockActivity.Unlock()
	return mock.ActivityFunc(ctx, input)
}

func (mock *journeyServiceMock) ActivityCalls() []struct {
	Ctx   context.Context
	Input journey.ActivityInput
} {
	mock.lockActivity.RLock()
	calls := mock.calls.Activity
	mock.lockActivity.RUnlock()
	return calls
}
