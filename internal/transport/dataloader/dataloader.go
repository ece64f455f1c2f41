// Package dataloader provides per-request DataLoaders that batch the user
// lookups needed to render names next to collaborator and suggestion rows.
// Loaders call repositories directly, bypassing the service layer; they only
// expose data the handler has already been authorized to return.
package dataloader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

type userRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
}

// Repos holds all repositories required by DataLoaders.
type Repos struct {
	User userRepo
}

// Loaders contains the per-request DataLoaders. Created per-request via NewLoaders.
type Loaders struct {
	UserByID *dataloader.Loader[uuid.UUID, *domain.User]
}

// NewLoaders creates a new set of DataLoaders backed by the given repositories.
// Must be called per-request (loaders cache results within a single request).
func NewLoaders(repos *Repos) *Loaders {
	return &Loaders{
		UserByID: newLoader(newUsersBatchFn(repos.User)),
	}
}

// newLoader creates a dataloader.Loader with standard batch parameters.
func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

// DisplayNames resolves user ids to display names in one batch. Unknown ids
// are absent from the result; a failed batch yields an empty map.
func (l *Loaders) DisplayNames(ctx context.Context, ids []uuid.UUID) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names
	}

	users, _ := l.UserByID.LoadMany(ctx, ids)()
	for _, u := range users {
		if u != nil {
			names[u.ID] = u.DisplayName()
		}
	}
	return names
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type loadersKey struct{}

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey{}, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (indicates middleware misconfiguration).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey{}).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: loaders not found in context, is middleware configured?")
	}
	return l
}
