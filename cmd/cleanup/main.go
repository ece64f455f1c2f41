// Command cleanup physically removes declined invitations and audit records
// older than the configured retention periods. It is intended to be invoked
// by an external cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres"
	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres/collaborator"
	"github.com/heartmarshall/journey-planner-backend/internal/app"
	"github.com/heartmarshall/journey-planner-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	res, err := app.Cleanup(ctx, cfg.Retention, collaborator.New(pool), audit.New(pool), time.Now().UTC(), logger)
	if err != nil {
		logger.Error("cleanup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("cleanup completed",
		slog.Int64("declined_invitations", res.DeclinedInvitations),
		slog.Int64("audit_records", res.AuditRecords),
	)
}
