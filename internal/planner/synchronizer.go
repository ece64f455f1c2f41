package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// CollectionKind names a server-side collection mirrored on the client.
type CollectionKind string

const (
	KindApprovedExperiences CollectionKind = "approved_experiences"
	KindPendingSuggestions  CollectionKind = "pending_suggestions"
	KindMySuggestions       CollectionKind = "my_suggestions"
	KindCollaborators       CollectionKind = "collaborators"
	KindPendingInvitations  CollectionKind = "pending_invitations"
)

// CollectionKey addresses one collection. JourneyID is uuid.Nil for the
// user-wide kinds.
type CollectionKey struct {
	Kind      CollectionKind
	JourneyID uuid.UUID
}

func (k CollectionKey) String() string {
	if k.JourneyID == uuid.Nil {
		return string(k.Kind)
	}
	return string(k.Kind) + "/" + k.JourneyID.String()
}

// JourneyKey is a shorthand for a per-journey key.
func JourneyKey(kind CollectionKind, journeyID uuid.UUID) CollectionKey {
	return CollectionKey{Kind: kind, JourneyID: journeyID}
}

// UserKey is a shorthand for a user-wide key.
func UserKey(kind CollectionKind) CollectionKey {
	return CollectionKey{Kind: kind}
}

// Loader fetches the authoritative value of a collection.
type Loader func(ctx context.Context, key CollectionKey) (any, error)

type collection struct {
	value    any
	loaded   bool
	stale    bool
	gen      uint64 // bumped by Invalidate
	version  uint64 // bumped by every value change
	watchers map[uint64]func(any)
}

// Synchronizer mirrors server collections. Values change only by loading
// from the server or through a provisional Optimistic edit; invalidation
// always refetches instead of merging events.
type Synchronizer struct {
	log    *slog.Logger
	flight singleflight.Group

	mu          sync.Mutex
	loaders     map[CollectionKind]Loader
	collections map[CollectionKey]*collection
	nextWatch   uint64
}

// NewSynchronizer creates an empty Synchronizer.
func NewSynchronizer(logger *slog.Logger) *Synchronizer {
	return &Synchronizer{
		log:         logger.With("component", "planner.sync"),
		loaders:     make(map[CollectionKind]Loader),
		collections: make(map[CollectionKey]*collection),
	}
}

// Register sets the loader for kind.
func (s *Synchronizer) Register(kind CollectionKind, loader Loader) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaders[kind] = loader
}

// Get returns the cached value, loading it when missing or stale.
// Concurrent loads of the same key and generation are coalesced.
func (s *Synchronizer) Get(ctx context.Context, key CollectionKey) (any, error) {
	s.mu.Lock()
	c := s.collectionLocked(key)
	if c.loaded && !c.stale {
		v := c.value
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	return s.load(ctx, key)
}

// Peek returns the cached value without loading.
func (s *Synchronizer) Peek(key CollectionKey) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[key]
	if !ok || !c.loaded {
		return nil, false
	}
	return c.value, true
}

// Watch registers cb for every value change of key and returns an
// idempotent function that removes it.
func (s *Synchronizer) Watch(key CollectionKey, cb func(any)) (unwatch func()) {
	s.mu.Lock()
	c := s.collectionLocked(key)
	id := s.nextWatch
	s.nextWatch++
	c.watchers[id] = cb
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(c.watchers, id)
			s.mu.Unlock()
		})
	}
}

// Invalidate marks keys stale and refetches the watched ones. Refetch
// failures are logged; the stale value stays until the next successful load.
func (s *Synchronizer) Invalidate(ctx context.Context, keys ...CollectionKey) {
	var refetch []CollectionKey

	s.mu.Lock()
	for _, key := range keys {
		c := s.collectionLocked(key)
		c.stale = true
		c.gen++
		if len(c.watchers) > 0 {
			refetch = append(refetch, key)
		}
	}
	s.mu.Unlock()

	if len(refetch) == 0 {
		return
	}

	var g errgroup.Group
	for _, key := range refetch {
		g.Go(func() error {
			if _, err := s.load(ctx, key); err != nil {
				s.log.WarnContext(ctx, "refetch failed",
					slog.String("collection", key.String()),
					slog.String("error", err.Error()),
				)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Pending is a provisional local change awaiting the server's answer.
type Pending struct {
	s       *Synchronizer
	key     CollectionKey
	prev    any
	loaded  bool
	version uint64
	once    sync.Once
}

// Optimistic applies mutate to the cached value of key and returns a handle
// that can undo it. mutate receives nil when nothing is cached; the
// provisional value then stays stale so the next Get loads from the server.
func (s *Synchronizer) Optimistic(key CollectionKey, mutate func(any) any) *Pending {
	s.mu.Lock()
	c := s.collectionLocked(key)
	p := &Pending{s: s, key: key, prev: c.value, loaded: c.loaded}
	if !c.loaded {
		c.stale = true
	}
	c.value = mutate(c.value)
	c.loaded = true
	c.version++
	p.version = c.version
	v, watchers := c.value, c.snapshotWatchers()
	s.mu.Unlock()

	notify(watchers, v)
	return p
}

// Rollback restores the value seen before the optimistic change unless a
// newer value replaced it meanwhile. It is safe to call more than once.
func (p *Pending) Rollback() {
	p.once.Do(func() {
		s := p.s
		s.mu.Lock()
		c := s.collectionLocked(p.key)
		if c.version != p.version {
			s.mu.Unlock()
			return
		}
		c.value, c.loaded = p.prev, p.loaded
		c.version++
		v, watchers := c.value, c.snapshotWatchers()
		s.mu.Unlock()

		notify(watchers, v)
	})
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

func (s *Synchronizer) collectionLocked(key CollectionKey) *collection {
	c, ok := s.collections[key]
	if !ok {
		c = &collection{watchers: make(map[uint64]func(any))}
		s.collections[key] = c
	}
	return c
}

func (c *collection) snapshotWatchers() []func(any) {
	out := make([]func(any), 0, len(c.watchers))
	for _, w := range c.watchers {
		out = append(out, w)
	}
	return out
}

func notify(watchers []func(any), v any) {
	for _, w := range watchers {
		w(v)
	}
}

func (s *Synchronizer) load(ctx context.Context, key CollectionKey) (any, error) {
	s.mu.Lock()
	loader, ok := s.loaders[key.Kind]
	gen := s.collectionLocked(key).gen
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("no loader registered for %s", key.Kind)
	}

	// A load issued after an invalidation must not join an older flight.
	flightKey := key.String() + "#" + strconv.FormatUint(gen, 10)
	v, err, _ := s.flight.Do(flightKey, func() (any, error) {
		value, err := loader(ctx, key)
		if err != nil {
			return nil, err
		}
		s.store(key, gen, value)
		return value, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return v, nil
}

// store saves a loaded value. A value loaded before a later invalidation is
// kept but the collection stays stale.
func (s *Synchronizer) store(key CollectionKey, gen uint64, value any) {
	s.mu.Lock()
	c := s.collectionLocked(key)
	if gen < c.gen && c.loaded {
		s.mu.Unlock()
		return
	}
	c.value, c.loaded = value, true
	c.stale = gen < c.gen
	c.version++
	watchers := c.snapshotWatchers()
	s.mu.Unlock()

	notify(watchers, value)
}
