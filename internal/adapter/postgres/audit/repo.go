// Package audit implements the Audit repository using PostgreSQL.
// Records are append-only; only retention cleanup deletes them.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres"
	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

var columns = []string{"id", "user_id", "journey_id", "entity_type", "entity_id", "action", "changes", "created_at"}

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Log inserts an audit record. A zero ID or CreatedAt is filled in.
// Satisfies the auditLogger interfaces of the invitation, suggestion and journey services.
func (r *Repo) Log(ctx context.Context, record domain.AuditRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if record.Changes == nil {
		record.Changes = map[string]any{}
	}

	changesJSON, err := json.Marshal(record.Changes)
	if err != nil {
		return fmt.Errorf("audit_record marshal changes: %w", err)
	}

	query, args, err := postgres.Builder.
		Insert("audit_log").
		Columns(columns...).
		Values(record.ID, record.UserID, record.JourneyID, string(record.EntityType),
			record.EntityID, string(record.Action), changesJSON, record.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "audit_record", record.ID)
	}
	return nil
}

// PurgeBefore deletes records created before threshold and returns how many
// were removed.
func (r *Repo) PurgeBefore(ctx context.Context, threshold time.Time) (int64, error) {
	query, args, err := postgres.Builder.
		Delete("audit_log").
		Where("created_at < ?", threshold).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge audit_records: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByJourney returns the change history of a journey, newest first,
// limited to limit records.
func (r *Repo) ListByJourney(ctx context.Context, journeyID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From("audit_log").
		Where("journey_id = ?", journeyID).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit_records by journey: %w", err)
	}
	defer rows.Close()

	var records []domain.AuditRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit_records by journey: %w", err)
	}
	return records, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanRecord(row pgx.Row) (domain.AuditRecord, error) {
	var (
		rec                domain.AuditRecord
		entityType, action string
		changes            []byte
	)
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.JourneyID, &entityType,
		&rec.EntityID, &action, &changes, &rec.CreatedAt); err != nil {
		return domain.AuditRecord{}, fmt.Errorf("scan audit_record: %w", err)
	}
	rec.EntityType = domain.EntityType(entityType)
	rec.Action = domain.AuditAction(action)

	if len(changes) > 0 {
		rec.Changes = make(map[string]any)
		if err := json.Unmarshal(changes, &rec.Changes); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("audit_record %s unmarshal changes: %w", rec.ID, err)
		}
	}
	return rec, nil
}
