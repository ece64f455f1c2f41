// Package journey implements the Journey repository using PostgreSQL.
package journey

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres"
	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

var columns = []string{"j.id", "j.title", "j.owner_id", "j.created_at"}

// Repo provides journey persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new journey repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a journey. The caller creates the owner collaborator row
// in the same transaction.
func (r *Repo) Create(ctx context.Context, j domain.Journey) (*domain.Journey, error) {
	query, args, err := postgres.Builder.
		Insert("journeys").
		Columns("id", "title", "owner_id", "created_at").
		Values(j.ID, j.Title, j.OwnerID, j.CreatedAt).
		Suffix("RETURNING id, title, owner_id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	got, err := scanJourney(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "journey", j.ID)
	}
	return got, nil
}

// GetByID returns a journey by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Journey, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From("journeys j").
		Where("j.id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	got, err := scanJourney(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "journey", id)
	}
	return got, nil
}

// ListVisible returns journeys where userID is an accepted collaborator,
// newest first.
func (r *Repo) ListVisible(ctx context.Context, userID uuid.UUID) ([]domain.Journey, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From("journeys j").
		Join("collaborators c ON c.journey_id = j.id").
		Where("c.user_id = ?", userID).
		Where("c.status = ?", string(domain.CollaboratorStatusAccepted)).
		OrderBy("j.created_at DESC", "j.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "journey", uuid.Nil)
	}
	defer rows.Close()

	journeys := []domain.Journey{}
	for rows.Next() {
		j, err := scanJourney(rows)
		if err != nil {
			return nil, postgres.MapError(err, "journey", uuid.Nil)
		}
		journeys = append(journeys, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "journey", uuid.Nil)
	}
	return journeys, nil
}

func scanJourney(row pgx.Row) (*domain.Journey, error) {
	var j domain.Journey
	if err := row.Scan(&j.ID, &j.Title, &j.OwnerID, &j.CreatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}
