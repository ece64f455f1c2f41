package notification

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"sync"
	"time"
)

var _ notificationRepo = &notificationRepoMock{}

type notificationRepoMock struct {
	CountsFunc             func(ctx context.Context, userID uuid.UUID, since time.Time) (domain.NotificationCounts, error)
	PendingSuggestionsFunc func(ctx context.Context, ownerID uuid.UUID) ([]domain.Experience, error)
	RecentResponsesFunc    func(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.Experience, error)

	calls struct {
		Counts []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Since  time.Time
		}
		PendingSuggestions []struct {
			Ctx     context.Context
			OwnerID uuid.UUID
		}
		RecentResponses []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Since  time.Time
		}
	}
	lockCounts             sync.RWMutex
	lockPendingSuggestions sync.RWMutex
	lockRecentResponses    sync.RWMutex
}

func (mock *notificationRepoMock) Counts(ctx context.Context, userID uuid.UUID, since time.Time) (domain.NotificationCounts, error) {
	if mock.CountsFunc == nil {
		panic("notificationRepoMock.CountsFunc: method is nil but notificationRepo.Counts was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Since  time.Time
	}{Ctx: ctx, UserID: userID, Since: since}
	mock.lockCounts.Lock()
	mock.calls.Counts = append(mock.calls.Counts, callInfo)
	mock.lockCounts.Unlock()
	return mock.CountsFunc(ctx, userID, since)
}

func (mock *notificationRepoMock) CountsCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Since  time.Time
} {
	mock.lockCounts.RLock()
	calls := mock.calls.Counts
	mock.lockCounts.RUnlock()
	return calls
}

func (mock *notificationRepoMock) PendingSuggestions(ctx context.Context, ownerID uuid.UUID) ([]domain.Experience, error) {
	if mock.PendingSuggestionsFunc == nil {
		panic("notificationRepoMock.PendingSuggestionsFunc: method is nil but notificationRepo.PendingSuggestions was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OwnerID uuid.UUID
	}{Ctx: ctx, OwnerID: ownerID}
	mock.lockPendingSuggestions.Lock()
	mock.calls.PendingSuggestions = append(mock.calls.PendingSuggestions, callInfo)
	mock.lockPendingSuggestions.Unlock()
	return mock.PendingSuggestionsFunc(ctx, ownerID)
}

func (mock *notificationRepoMock) PendingSuggestionsCalls() []struct {
	Ctx     context.Context
	OwnerID uuid.UUID
} {
	mock.lockPendingSuggestions.RLock()
	calls := mock.calls.PendingSuggestions
	mock.lockPendingSuggestions.RUnlock()
	return calls
}

func (mock *notificationRepoMock) RecentResponses(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.Experience, error) {
	if mock.RecentResponsesFunc == nil {
		panic("notificationRepoMock.RecentResponsesFunc: method is nil but notificationRepo.RecentResponses was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Since  time.Time
	}{Ctx: ctx, UserID: userID, Since: since}
	mock.lockRecentResponses.Lock()
	mock.calls.RecentResponses = append(mock.calls.RecentResponses, callInfo)
	mock.lockRecentResponses.Unlock()
	return mock.RecentResponsesFunc(ctx, userID, since)
}

func (mock *notificationRepoMock) RecentResponsesCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Since  time.Time
} {
	mock.lockRecentResponses.RLock()
	calls := mock.calls.RecentResponses
	mock.lockRecentResponses.RUnlock()
	return calls
}
