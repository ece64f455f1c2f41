package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

// ErrAggregatorClosed is returned by RefreshNow after Close.
var ErrAggregatorClosed = errors.New("aggregator closed")

type notificationSource interface {
	Counts(ctx context.Context) (domain.NotificationCounts, error)
	Details(ctx context.Context) (domain.NotificationDetails, error)
}

// Snapshot is one applied notification fetch.
type Snapshot struct {
	Counts    domain.NotificationCounts
	Details   domain.NotificationDetails
	Seq       uint64
	FetchedAt time.Time
}

// Valid reports whether the snapshot holds fetched data.
func (s Snapshot) Valid() bool { return s.Seq > 0 }

type subscriber struct {
	cb      func(Snapshot)
	active  atomic.Bool
	lastSeq atomic.Uint64
}

// deliver invokes the callback unless it was unsubscribed or already saw a
// newer snapshot.
func (s *subscriber) deliver(snap Snapshot) {
	for {
		last := s.lastSeq.Load()
		if snap.Seq <= last {
			return
		}
		if s.lastSeq.CompareAndSwap(last, snap.Seq) {
			break
		}
	}
	if s.active.Load() {
		s.cb(snap)
	}
}

// AggregatorOptions tunes an Aggregator. Zero values take defaults.
type AggregatorOptions struct {
	PollInterval time.Duration
	FetchTimeout time.Duration
	Clock        clockwork.Clock
}

// Aggregator is the single shared poller for notification counts. All
// consumers read its cache; the first subscriber starts the shared ticker
// and the last one stops it. Concurrent refreshes collapse into one fetch.
type Aggregator struct {
	source   notificationSource
	bus      *Bus
	clock    clockwork.Clock
	interval time.Duration
	timeout  time.Duration
	log      *slog.Logger

	flight singleflight.Group

	mu       sync.Mutex
	snap     Snapshot
	subs     map[uint64]*subscriber
	nextSub  uint64
	issued   uint64
	ticker   clockwork.Ticker
	stopTick chan struct{}
	closed   bool
	done     chan struct{}
}

// NewAggregator creates an Aggregator reading from source. bus may be nil.
func NewAggregator(source notificationSource, bus *Bus, opts AggregatorOptions, logger *slog.Logger) *Aggregator {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 5 * time.Minute
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Aggregator{
		source:   source,
		bus:      bus,
		clock:    opts.Clock,
		interval: opts.PollInterval,
		timeout:  opts.FetchTimeout,
		log:      logger.With("component", "planner.aggregator"),
		subs:     make(map[uint64]*subscriber),
		done:     make(chan struct{}),
	}
}

// Snapshot returns the cached value. It never fetches.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snap
}

// Subscribe registers cb for every applied snapshot and returns an
// idempotent unsubscribe function. Callbacks run outside the aggregator lock
// and must not block.
func (a *Aggregator) Subscribe(cb func(Snapshot)) (unsubscribe func()) {
	sub := &subscriber{cb: cb}
	sub.active.Store(true)

	a.mu.Lock()
	id := a.nextSub
	a.nextSub++
	a.subs[id] = sub
	if len(a.subs) == 1 && !a.closed {
		a.startTickerLocked()
	}
	a.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.active.Store(false)
			a.mu.Lock()
			delete(a.subs, id)
			if len(a.subs) == 0 {
				a.stopTickerLocked()
			}
			a.mu.Unlock()
		})
	}
}

// Subscribers returns the current reference count.
func (a *Aggregator) Subscribers() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.subs)
}

// Polling reports whether the shared ticker is running.
func (a *Aggregator) Polling() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ticker != nil
}

// RefreshNow fetches immediately, joining a fetch already in flight. On
// failure it returns the cached snapshot together with the error.
func (a *Aggregator) RefreshNow(ctx context.Context) (Snapshot, error) {
	a.mu.Lock()
	closed := a.closed
	a.mu.Unlock()
	if closed {
		return a.Snapshot(), ErrAggregatorClosed
	}

	ch := a.flight.DoChan("refresh", func() (any, error) {
		return a.fetch()
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return a.Snapshot(), res.Err
		}
		snap := res.Val.(Snapshot)
		a.publish(snap)
		return snap, nil
	case <-ctx.Done():
		go a.publishWhenDone(ch)
		return a.Snapshot(), ctx.Err()
	}
}

// Run serves refresh requests from the bus until ctx is cancelled or Close
// is called.
func (a *Aggregator) Run(ctx context.Context) error {
	if a.bus == nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.done:
			return nil
		}
	}

	requests, cancel := a.bus.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.done:
			return nil
		case <-requests:
			a.background(ctx, "bus")
		}
	}
}

// Close stops the ticker, drops every subscriber and ends Run.
func (a *Aggregator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true
	a.stopTickerLocked()
	for id, sub := range a.subs {
		sub.active.Store(false)
		delete(a.subs, id)
	}
	close(a.done)
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

func (a *Aggregator) startTickerLocked() {
	t := a.clock.NewTicker(a.interval)
	stop := make(chan struct{})
	a.ticker, a.stopTick = t, stop

	go func() {
		for {
			select {
			case <-stop:
				return
			case <-t.Chan():
				a.background(context.Background(), "ticker")
			}
		}
	}()
	a.log.Debug("poller started", slog.Duration("interval", a.interval))
}

func (a *Aggregator) stopTickerLocked() {
	if a.ticker == nil {
		return
	}
	a.ticker.Stop()
	close(a.stopTick)
	a.ticker, a.stopTick = nil, nil
	a.log.Debug("poller stopped")
}

// background refreshes on behalf of the ticker or the bus. Errors are
// logged by fetch and otherwise dropped.
func (a *Aggregator) background(ctx context.Context, trigger string) {
	if _, err := a.RefreshNow(ctx); err != nil && !errors.Is(err, ErrAggregatorClosed) {
		a.log.Debug("background refresh failed", slog.String("trigger", trigger), slog.String("error", err.Error()))
	}
}

// fetch runs one round trip. It is detached from any single caller's context
// because joiners share its result.
func (a *Aggregator) fetch() (Snapshot, error) {
	a.mu.Lock()
	a.issued++
	seq := a.issued
	a.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	var (
		counts  domain.NotificationCounts
		details domain.NotificationDetails
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = a.source.Counts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		details, err = a.source.Details(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		a.log.Warn("notification fetch failed, keeping cached value",
			slog.Uint64("seq", seq),
			slog.String("error", err.Error()),
		)
		return Snapshot{}, fmt.Errorf("fetch notifications: %w", err)
	}

	snap := Snapshot{
		Counts:    counts.Normalize(),
		Details:   details,
		Seq:       seq,
		FetchedAt: a.clock.Now(),
	}
	return a.apply(snap), nil
}

// apply stores snap unless a newer one is already cached and returns the
// cached value.
func (a *Aggregator) apply(snap Snapshot) Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	if snap.Seq > a.snap.Seq {
		a.snap = snap
	}
	return a.snap
}

// publish delivers snap to current subscribers. It runs after the shared
// fetch has completed, so callbacks may call RefreshNow.
func (a *Aggregator) publish(snap Snapshot) {
	a.mu.Lock()
	subs := make([]*subscriber, 0, len(a.subs))
	for _, s := range a.subs {
		subs = append(subs, s)
	}
	a.mu.Unlock()

	for _, s := range subs {
		s.deliver(snap)
	}
}

// publishWhenDone delivers the result of a fetch whose caller gave up
// waiting.
func (a *Aggregator) publishWhenDone(ch <-chan singleflight.Result) {
	if res := <-ch; res.Err == nil {
		a.publish(res.Val.(Snapshot))
	}
}
