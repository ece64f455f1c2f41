// Command issue-token creates a user for the given email if needed and
// prints an access token for them. Accounts are provisioned this way;
// invitations only reach users that already exist.
//
// Usage:
//
//	issue-token --email=user@example.com [--name="Ana"] [--ttl=24h]
//
// Requires DATABASE_DSN and AUTH_JWT_SECRET.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres"
	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/journey-planner-backend/internal/app"
	"github.com/heartmarshall/journey-planner-backend/internal/auth"
	"github.com/heartmarshall/journey-planner-backend/internal/config"
	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

func main() {
	email := flag.String("email", "", "email of the user to issue a token for")
	name := flag.String("name", "", "display name; overwrites the stored one when set")
	ttl := flag.Duration("ttl", 0, "token lifetime (default: auth.access_token_ttl)")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "Usage: issue-token --email=user@example.com [--name=NAME] [--ttl=24h]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	u, err := user.New(pool).Upsert(ctx, domain.NormalizeEmail(*email), domain.NormalizeText(*name))
	if err != nil {
		logger.Error("upsert user", slog.String("email", *email), slog.String("error", err.Error()))
		os.Exit(1)
	}

	lifetime := *ttl
	if lifetime <= 0 {
		lifetime = cfg.Auth.AccessTokenTTL
	}

	token, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL).
		GenerateAccessTokenTTL(u.ID, u.Email, lifetime)
	if err != nil {
		logger.Error("issue token", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("token issued",
		slog.String("user_id", u.ID.String()),
		slog.Duration("ttl", lifetime),
	)
	fmt.Println(token)
}
