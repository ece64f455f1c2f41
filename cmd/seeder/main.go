// Command seeder loads a demo dataset of travellers, journeys, invitations
// and suggestions. It goes through the application services, so the seeded
// rows carry audit records like real traffic. Reruns skip journeys that
// already exist.
//
// Flags:
//
//	--dataset   path to a dataset YAML file (default: built-in demo)
//	--dry-run   validate the dataset without writing to DB
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres"
	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres/collaborator"
	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres/experience"
	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres/journey"
	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/journey-planner-backend/internal/adapter/redis/countcache"
	"github.com/heartmarshall/journey-planner-backend/internal/app"
	"github.com/heartmarshall/journey-planner-backend/internal/app/seeder"
	"github.com/heartmarshall/journey-planner-backend/internal/config"
	invitationsvc "github.com/heartmarshall/journey-planner-backend/internal/service/invitation"
	journeysvc "github.com/heartmarshall/journey-planner-backend/internal/service/journey"
	suggestionsvc "github.com/heartmarshall/journey-planner-backend/internal/service/suggestion"
)

func main() {
	datasetFlag := flag.String("dataset", "", "path to dataset YAML file")
	dryRunFlag := flag.Bool("dry-run", false, "validate the dataset without writing to DB")
	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*datasetFlag)
	if err != nil {
		logger.Error("load dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *dryRunFlag {
		seederCfg.DryRun = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	auditRepo := audit.New(pool)
	collaboratorRepo := collaborator.New(pool)
	journeyRepo := journey.New(pool)
	userRepo := user.New(pool)
	cache := countcache.Noop{}

	pipeline := seeder.NewPipeline(logger, seeder.Services{
		Users:       userRepo,
		Journeys:    journeysvc.NewService(logger, journeyRepo, collaboratorRepo, userRepo, auditRepo, txm),
		Invitations: invitationsvc.NewService(logger, collaboratorRepo, userRepo, cache, auditRepo, txm),
		Suggestions: suggestionsvc.NewService(logger, experience.New(pool), collaboratorRepo, journeyRepo, cache, auditRepo, txm),
	}, *seederCfg)

	if err := pipeline.Run(ctx); err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if pipeline.HasErrors() {
		logger.Warn("pipeline completed with errors")
		os.Exit(1)
	}

	logger.Info("pipeline completed successfully")
}
