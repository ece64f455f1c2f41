package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/internal/service/suggestion"
	"sync"
)

var _ suggestionService = &suggestionServiceMock{}

type suggestionServiceMock struct {
	ProposeFunc      func(ctx context.Context, input suggestion.ProposeInput) (*domain.Experience, error)
	ReviewFunc       func(ctx context.Context, input suggestion.ReviewInput) (*domain.Experience, error)
	UpdateOwnFunc    func(ctx context.Context, input suggestion.UpdateOwnInput) (*domain.Experience, error)
	WithdrawOwnFunc  func(ctx context.Context, suggestionID uuid.UUID) error
	ListPendingFunc  func(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error)
	ListMineFunc     func(ctx context.Context) ([]domain.Experience, error)
	ListApprovedFunc func(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error)

	calls struct {
		Propose []struct {
			Ctx   context.Context
			Input suggestion.ProposeInput
		}
		Review []struct {
			Ctx   context.Context
			Input suggestion.ReviewInput
		}
		UpdateOwn []struct {
			Ctx   context.Context
			Input suggestion.UpdateOwnInput
		}
		WithdrawOwn []struct {
			Ctx          context.Context
			SuggestionID uuid.UUID
		}
		ListPending []struct {
			Ctx       context.Context
			JourneyID uuid.UUID
		}
		ListMine []struct {
			Ctx context.Context
		}
		ListApproved []struct {
			Ctx       context.Context
			JourneyID uuid.UUID
		}
	}
	lockPropose      sync.RWMutex
	lockReview       sync.RWMutex
	lockUpdateOwn    sync.RWMutex
	lockWithdrawOwn  sync.RWMutex
	lockListPending  sync.RWMutex
	lockListMine     sync.RWMutex
	lockListApproved sync.RWMutex
}

func (mock *suggestionServiceMock) Propose(ctx context.Context, input suggestion.ProposeInput) (*domain.Experience, error) {
	if mock.ProposeFunc == nil {
		panic("suggestionServiceMock.ProposeFunc: method is nil but suggestionService.Propose was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input suggestion.ProposeInput
	}{Ctx: ctx, Input: input}
	mock.lockPropose.Lock()
	mock.calls.Propose = append(mock.calls.Propose, callInfo)
	mock.lockPropose.Unlock()
	return mock.ProposeFunc(ctx, input)
}

func (mock *suggestionServiceMock) ProposeCalls() []struct {
	Ctx   context.Context
	Input suggestion.ProposeInput
} {
	mock.lockPropose.RLock()
	calls := mock.calls.Propose
	mock.lockPropose.RUnlock()
	return calls
}

func (mock *suggestionServiceMock) Review(ctx context.Context, input suggestion.ReviewInput) (*domain.Experience, error) {
	if mock.ReviewFunc == nil {
		panic("suggestionServiceMock.ReviewFunc: method is nil but suggestionService.Review was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input suggestion.ReviewInput
	}{Ctx: ctx, Input: input}
	mock.lockReview.Lock()
	mock.calls.Review = append(mock.calls.Review, callInfo)
	mock.lockReview.Unlock()
	return mock.ReviewFunc(ctx, input)
}

func (mock *suggestionServiceMock) ReviewCalls() []struct {
	Ctx   context.Context
	Input suggestion.ReviewInput
} {
	mock.lockReview.RLock()
	calls := mock.calls.Review
	mock.lockReview.RUnlock()
	return calls
}

func (mock *suggestionServiceMock) UpdateOwn(ctx context.Context, input suggestion.UpdateOwnInput) (*domain.Experience, error) {
	if mock.UpdateOwnFunc == nil {
		panic("suggestionServiceMock.UpdateOwnFunc: method is nil but suggestionService.UpdateOwn was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input suggestion.UpdateOwnInput
	}{Ctx: ctx, Input: input}
	mock.lockUpdateOwn.Lock()
	mock.calls.UpdateOwn = append(mock.calls.UpdateOwn, callInfo)
	mock.lockUpdateOwn.Unlock()
	return mock.UpdateOwnFunc(ctx, input)
}

func (mock *suggestionServiceMock) UpdateOwnCalls() []struct {
	Ctx   context.Context
	Input suggestion.UpdateOwnInput
} {
	mock.lockUpdateOwn.RLock()
	calls := mock.calls.UpdateOwn
	mock.lockUpdateOwn.RUnlock()
	return calls
}

func (mock *suggestionServiceMock) WithdrawOwn(ctx context.Context, suggestionID uuid.UUID) error {
	if mock.WithdrawOwnFunc == nil {
		panic("suggestionServiceMock.WithdrawOwnFunc: method is nil but suggestionService.WithdrawOwn was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		SuggestionID uuid.UUID
	}{Ctx: ctx, SuggestionID: suggestionID}
	mock.lockWithdrawOwn.Lock()
	mock.calls.WithdrawOwn = append(mock.calls.WithdrawOwn, callInfo)
	mock.lockWithdrawOwn.Unlock()
	return mock.WithdrawOwnFunc(ctx, suggestionID)
}

func (mock *suggestionServiceMock) WithdrawOwnCalls() []struct {
	Ctx          context.Context
	SuggestionID uuid.UUID
} {
	mock.lockWithdrawOwn.RLock()
	calls := mock.calls.WithdrawOwn
	mock.lockWithdrawOwn.RUnlock()
	return calls
}

func (mock *suggestionServiceMock) ListPending(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error) {
	if mock.ListPendingFunc == nil {
		panic("suggestionServiceMock.ListPendingFunc: method is nil but suggestionService.ListPending was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		JourneyID uuid.UUID
	}{Ctx: ctx, JourneyID: journeyID}
	mock.lockListPending.Lock()
	mock.calls.ListPending = append(mock.calls.ListPending, callInfo)
	mock.lockListPending.Unlock()
	return mock.ListPendingFunc(ctx, journeyID)
}

func (mock *suggestionServiceMock) ListPendingCalls() []struct {
	Ctx       context.Context
	JourneyID uuid.UUID
} {
	mock.lockListPending.RLock()
	calls := mock.calls.ListPending
	mock.lockListPending.RUnlock()
	return calls
}

func (mock *suggestionServiceMock) ListMine(ctx context.Context) ([]domain.Experience, error) {
	if mock.ListMineFunc == nil {
		panic("suggestionServiceMock.ListMineFunc: method is nil but suggestionService.ListMine was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListMine.Lock()
	mock.calls.ListMine = append(mock.calls.ListMine, callInfo)
	mock.lockListMine.Unlock()
	return mock.ListMineFunc(ctx)
}

func (mock *suggestionServiceMock) ListMineCalls() []struct {
	Ctx context.Context
} {
	mock.lockListMine.RLock()
	calls := mock.calls.ListMine
	mock.lockListMine.RUnlock()
	return calls
}

func (mock *suggestionServiceMock) ListApproved(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error) {
	if mock.ListApprovedFunc == nil {
		panic("suggestionServiceMock.ListApprovedFunc: method is nil but suggestionService.ListApproved was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		JourneyID uuid.UUID
	}{Ctx: ctx, JourneyID: journeyID}
	mock.lockListApproved.Lock()
	mock.calls.ListApproved = append(mock.calls.ListApproved, callInfo)
	mock.lockListApproved.Unlock()
	return mock.ListApprovedFunc(ctx, journeyID)
}

func (mock *suggestionServiceMock) ListApprovedCalls() []struct {
	Ctx       context.Context
	JourneyID uuid.UUID
} {
	mock.lockListApproved.RLock()
	calls := mock.calls.ListApproved
	mock.lockListApproved.RUnlock()
	return calls
}
