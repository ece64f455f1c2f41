package notification

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"sync"
)

var _ countCache = &countCacheMock{}

type countCacheMock struct {
	GetFunc     func(ctx context.Context, userID uuid.UUID) (domain.NotificationCounts, bool, error)
	VersionFunc func(ctx context.Context, userID uuid.UUID) (uint64, error)
	SetFunc     func(ctx context.Context, userID uuid.UUID, version uint64, counts domain.NotificationCounts) error

	calls struct {
		Get []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Version []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Set []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			Version uint64
			Counts  domain.NotificationCounts
		}
	}
	lockGet     sync.RWMutex
	lockVersion sync.RWMutex
	lockSet     sync.RWMutex
}

func (mock *countCacheMock) Get(ctx context.Context, userID uuid.UUID) (domain.NotificationCounts, bool, error) {
	if mock.GetFunc == nil {
		panic("countCacheMock.GetFunc: method is nil but countCache.Get was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, userID)
}

func (mock *countCacheMock) GetCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *countCacheMock) Version(ctx context.Context, userID uuid.UUID) (uint64, error) {
	if mock.VersionFunc == nil {
		panic("countCacheMock.VersionFunc: method is nil but countCache.Version was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockVersion.Lock()
	mock.calls.Version = append(mock.calls.Version, callInfo)
	mock.lockVersion.Unlock()
	return mock.VersionFunc(ctx, userID)
}

func (mock *countCacheMock) VersionCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockVersion.RLock()
	calls := mock.calls.Version
	mock.lockVersion.RUnlock()
	return calls
}

func (mock *countCacheMock) Set(ctx context.Context, userID uuid.UUID, version uint64, counts domain.NotificationCounts) error {
	if mock.SetFunc == nil {
		panic("countCacheMock.SetFunc: method is nil but countCache.Set was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		Version uint64
		Counts  domain.NotificationCounts
	}{Ctx: ctx, UserID: userID, Version: version, Counts: counts}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	return mock.SetFunc(ctx, userID, version, counts)
}

func (mock *countCacheMock) SetCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	Version uint64
	Counts  domain.NotificationCounts
} {
	mock.lockSet.RLock()
	calls := mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}
