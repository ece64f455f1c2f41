package planner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/journey-planner-backend/internal/auth"
	"github.com/heartmarshall/journey-planner-backend/internal/config"
)

// Kit bundles the client components sharing one bus.
type Kit struct {
	Client       *Client
	Bus          *Bus
	Aggregator   *Aggregator
	Synchronizer *Synchronizer
	Planner      *Planner
}

// NewKit wires a Kit from client configuration. The acting user is read from
// the token subject.
func NewKit(cfg *config.ClientConfig, logger *slog.Logger) (*Kit, error) {
	self, err := auth.SubjectOf(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("planner: token: %w", err)
	}

	client := NewClient(cfg.BaseURL, cfg.Token, nil, cfg.RequestTimeout, logger)
	bus := NewBus()
	agg := NewAggregator(client, bus, AggregatorOptions{
		PollInterval: cfg.Notifications.PollInterval,
		FetchTimeout: cfg.Notifications.FetchTimeout,
	}, logger)
	sync := NewSynchronizer(logger)

	return &Kit{
		Client:       client,
		Bus:          bus,
		Aggregator:   agg,
		Synchronizer: sync,
		Planner:      NewPlanner(client, sync, bus, self, logger),
	}, nil
}

// Run serves bus refresh requests until ctx is done.
func (k *Kit) Run(ctx context.Context) error {
	return k.Aggregator.Run(ctx)
}

// Close stops background polling.
func (k *Kit) Close() {
	k.Aggregator.Close()
}
