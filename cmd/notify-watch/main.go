// Command notify-watch subscribes to the notification aggregator and prints
// a line every time the counts change. It exercises the same client kit an
// interactive frontend would embed.
//
// Requires PLANNER_TOKEN; PLANNER_BASE_URL defaults to localhost:8080.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/heartmarshall/journey-planner-backend/internal/app"
	"github.com/heartmarshall/journey-planner-backend/internal/config"
	"github.com/heartmarshall/journey-planner-backend/internal/planner"
)

func main() {
	details := flag.Bool("details", false, "also print the suggestions behind the counts")
	flag.Parse()

	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	kit, err := planner.NewKit(cfg, logger)
	if err != nil {
		log.Fatalf("planner: %v", err)
	}
	defer kit.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		mu   sync.Mutex
		last planner.Snapshot
	)
	unsubscribe := kit.Aggregator.Subscribe(func(s planner.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		if last.Valid() && s.Counts == last.Counts {
			return
		}
		last = s
		c := s.Counts
		fmt.Printf("%s total=%d invitations=%d suggestions=%d approvals=%d rejections=%d\n",
			s.FetchedAt.Format("15:04:05"), c.Total, c.PendingInvitations, c.PendingSuggestions,
			c.RecentApprovals, c.RecentRejections)
		if *details {
			for _, e := range s.Details.PendingSuggestions {
				fmt.Printf("  pending  day %d  %s\n", e.Day, e.Title)
			}
			for _, e := range s.Details.RecentResponses {
				fmt.Printf("  %-8s day %d  %s\n", e.ApprovalStatus, e.Day, e.Title)
			}
		}
	})
	defer unsubscribe()

	if _, err := kit.Aggregator.RefreshNow(ctx); err != nil {
		logger.Warn("initial refresh failed", slog.String("error", err.Error()))
	}

	if err := kit.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("notify-watch: %v", err)
	}
}
