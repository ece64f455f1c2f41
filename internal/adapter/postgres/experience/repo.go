// Package experience implements the Experience (itinerary item and
// suggestion) repository using PostgreSQL.
package experience

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres"
	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

// Columns is the select list shared with the notification repository.
var Columns = []string{
	"id", "journey_id", "day", "title", "description", "location",
	"suggested_by_user_id", "approval_status", "reviewed_by_user_id",
	"reviewed_at", "review_notes", "created_at", "updated_at",
}

// Qualified returns Columns prefixed with a table alias.
func Qualified(alias string) []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = alias + "." + c
	}
	return out
}

var returning = "RETURNING " + strings.Join(Columns, ", ")

// Repo provides experience persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new experience repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create inserts an experience.
func (r *Repo) Create(ctx context.Context, e domain.Experience) (*domain.Experience, error) {
	query, args, err := postgres.Builder.
		Insert("experiences").
		Columns(Columns...).
		Values(e.ID, e.JourneyID, e.Day, e.Title, e.Description, e.Location,
			e.SuggestedByUserID, string(e.ApprovalStatus), e.ReviewedByUserID,
			e.ReviewedAt, e.ReviewNotes, e.CreatedAt, e.UpdatedAt).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	got, err := Scan(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "experience", e.ID)
	}
	return got, nil
}

// UpdateContent overwrites the editable fields of a pending suggestion.
// It matches no row once the suggestion has been reviewed.
func (r *Repo) UpdateContent(ctx context.Context, e domain.Experience) (*domain.Experience, error) {
	query, args, err := postgres.Builder.
		Update("experiences").
		Set("day", e.Day).
		Set("title", e.Title).
		Set("description", e.Description).
		Set("location", e.Location).
		Set("updated_at", e.UpdatedAt).
		Where("id = ?", e.ID).
		Where("approval_status = ?", string(domain.ApprovalStatusPending)).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	got, err := Scan(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "experience", e.ID)
	}
	return got, nil
}

// Review flips a pending suggestion to status. The update is conditional on
// the row still being pending; a lost race surfaces as domain.ErrNotFound.
func (r *Repo) Review(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus, reviewerID uuid.UUID, notes *string, at time.Time) (*domain.Experience, error) {
	query, args, err := postgres.Builder.
		Update("experiences").
		Set("approval_status", string(status)).
		Set("reviewed_by_user_id", reviewerID).
		Set("reviewed_at", at).
		Set("review_notes", notes).
		Set("updated_at", at).
		Where("id = ?", id).
		Where("approval_status = ?", string(domain.ApprovalStatusPending)).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	got, err := Scan(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "experience", id)
	}
	return got, nil
}

// DeletePending removes a suggestion that is still pending.
func (r *Repo) DeletePending(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder.
		Delete("experiences").
		Where("id = ?", id).
		Where("approval_status = ?", string(domain.ApprovalStatusPending)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "experience", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "experience", id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetByID returns an experience by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Experience, error) {
	return r.getByID(ctx, id, "")
}

// GetByIDForUpdate locks the row until the surrounding transaction ends.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Experience, error) {
	return r.getByID(ctx, id, "FOR UPDATE")
}

func (r *Repo) getByID(ctx context.Context, id uuid.UUID, suffix string) (*domain.Experience, error) {
	b := postgres.Builder.
		Select(Columns...).
		From("experiences").
		Where("id = ?", id)
	if suffix != "" {
		b = b.Suffix(suffix)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	got, err := Scan(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "experience", id)
	}
	return got, nil
}

// ListApproved returns the itinerary of a journey ordered by day.
func (r *Repo) ListApproved(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error) {
	return r.list(ctx, journeyID, postgres.Builder.
		Select(Columns...).
		From("experiences").
		Where("journey_id = ?", journeyID).
		Where("approval_status = ?", string(domain.ApprovalStatusApproved)).
		OrderBy("day ASC", "created_at ASC", "id ASC"))
}

// ListPending returns the review queue of a journey, oldest first.
func (r *Repo) ListPending(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error) {
	return r.list(ctx, journeyID, postgres.Builder.
		Select(Columns...).
		From("experiences").
		Where("journey_id = ?", journeyID).
		Where("approval_status = ?", string(domain.ApprovalStatusPending)).
		OrderBy("created_at ASC", "id ASC"))
}

// ListBySuggester returns suggestions userID made on journeys owned by
// someone else, newest first.
func (r *Repo) ListBySuggester(ctx context.Context, userID uuid.UUID) ([]domain.Experience, error) {
	return r.list(ctx, userID, postgres.Builder.
		Select(Qualified("e")...).
		From("experiences e").
		Join("journeys j ON j.id = e.journey_id").
		Where("e.suggested_by_user_id = ?", userID).
		Where("j.owner_id <> e.suggested_by_user_id").
		OrderBy("e.created_at DESC", "e.id DESC"))
}

func (r *Repo) list(ctx context.Context, id uuid.UUID, b sq.SelectBuilder) ([]domain.Experience, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "experience", id)
	}
	out, err := ScanAll(rows)
	if err != nil {
		return nil, postgres.MapError(err, "experience", id)
	}
	return out, nil
}

// Scan reads one experience in Columns order.
func Scan(row pgx.Row) (*domain.Experience, error) {
	var (
		e      domain.Experience
		status string
	)
	if err := row.Scan(&e.ID, &e.JourneyID, &e.Day, &e.Title, &e.Description, &e.Location,
		&e.SuggestedByUserID, &status, &e.ReviewedByUserID,
		&e.ReviewedAt, &e.ReviewNotes, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.ApprovalStatus = domain.ApprovalStatus(status)
	return &e, nil
}

// ScanAll drains rows into a slice and closes them.
func ScanAll(rows pgx.Rows) ([]domain.Experience, error) {
	defer rows.Close()

	out := []domain.Experience{}
	for rows.Next() {
		e, err := Scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
