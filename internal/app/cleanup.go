package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/journey-planner-backend/internal/config"
)

type declinedPurger interface {
	PurgeDeclined(ctx context.Context, threshold time.Time) (int64, error)
}

type auditPurger interface {
	PurgeBefore(ctx context.Context, threshold time.Time) (int64, error)
}

// CleanupResult counts the rows removed by Cleanup.
type CleanupResult struct {
	DeclinedInvitations int64
	AuditRecords        int64
}

// Cleanup removes declined invitations and audit records older than the
// configured retention. A zero retention skips that table.
func Cleanup(ctx context.Context, cfg config.RetentionConfig, invitations declinedPurger, audit auditPurger, now time.Time, logger *slog.Logger) (CleanupResult, error) {
	var res CleanupResult

	if cfg.DeclinedInvitations > 0 {
		threshold := now.Add(-cfg.DeclinedInvitations)
		n, err := invitations.PurgeDeclined(ctx, threshold)
		if err != nil {
			return res, fmt.Errorf("purge declined invitations: %w", err)
		}
		res.DeclinedInvitations = n
		logger.InfoContext(ctx, "declined invitations purged",
			slog.Int64("deleted", n),
			slog.Time("threshold", threshold),
		)
	}

	if cfg.AuditLog > 0 {
		threshold := now.Add(-cfg.AuditLog)
		n, err := audit.PurgeBefore(ctx, threshold)
		if err != nil {
			return res, fmt.Errorf("purge audit log: %w", err)
		}
		res.AuditRecords = n
		logger.InfoContext(ctx, "audit log purged",
			slog.Int64("deleted", n),
			slog.Time("threshold", threshold),
		)
	}

	return res, nil
}
