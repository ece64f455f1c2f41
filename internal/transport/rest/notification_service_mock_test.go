package rest

import (
	"context"
	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"sync"
)

var _ notificationService = &notificationServiceMock{}

type notificationServiceMock struct {
	CountsFunc  func(ctx context.Context) (domain.NotificationCounts, error)
	DetailsFunc func(ctx context.Context) (domain.NotificationDetails, error)

	calls struct {
		Counts []struct {
			Ctx context.Context
		}
		Details []struct {
			Ctx context.Context
		}
	}
	lockCounts  sync.RWMutex
	lockDetails sync.RWMutex
}

func (mock *notificationServiceMock) Counts(ctx context.Context) (domain.NotificationCounts, error) {
	if mock.CountsFunc == nil {
		panic("notificationServiceMock.CountsFunc: method is nil but notificationService.Counts was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockCounts.Lock()
	mock.calls.Counts = append(mock.calls.Counts, callInfo)
	mock.lockCounts.Unlock()
	return mock.CountsFunc(ctx)
}

func (mock *notificationServiceMock) CountsCalls() []struct {
	Ctx context.Context
} {
	mock.lockCounts.RLock()
	calls := mock.calls.Counts
	mock.lockCounts.RUnlock()
	return calls
}

func (mock *notificationServiceMock) Details(ctx context.Context) (domain.NotificationDetails, error) {
	if mock.DetailsFunc == nil {
		panic("notificationServiceMock.DetailsFunc: method is nil but notificationService.Details was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockDetails.Lock()
	mock.calls.Details = append(mock.calls.Details, callInfo)
	mock.lockDetails.Unlock()
	return mock.DetailsFunc(ctx)
}

func (mock *notificationServiceMock) DetailsCalls() []struct {
	Ctx context.Context
} {
	mock.lockDetails.RLock()
	calls := mock.calls.Details
	mock.lockDetails.RUnlock()
	return calls
}
