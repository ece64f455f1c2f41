package invitation

import (
	"context"
	"github.com/google/uuid"
	"sync"
)

var _ countCache = &countCacheMock{}

type countCacheMock struct {
	InvalidateFunc func(ctx context.Context, userIDs ...uuid.UUID) error

	calls struct {
		Invalidate []struct {
			Ctx     context.Context
			UserIDs []uuid.UUID
		}
	}
	lockInvalidate sync.RWMutex
}

func (mock *countCacheMock) Invalidate(ctx context.Context, userIDs ...uuid.UUID) error {
	if mock.InvalidateFunc == nil {
		panic("countCacheMock.InvalidateFunc: method is nil but countCache.Invalidate was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserIDs []uuid.UUID
	}{Ctx: ctx, UserIDs: userIDs}
	mock.lockInvalidate.Lock()
	mock.calls.Invalidate = append(mock.calls.Invalidate, callInfo)
	mock.lockInvalidate.Unlock()
	return mock.InvalidateFunc(ctx, userIDs...)
}

func (mock *countCacheMock) InvalidateCalls() []struct {
	Ctx     context.Context
	UserIDs []uuid.UUID
} {
	mock.lockInvalidate.RLock()
	calls := mock.calls.Invalidate
	mock.lockInvalidate.RUnlock()
	return calls
}
