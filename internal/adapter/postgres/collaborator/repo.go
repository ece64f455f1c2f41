// Package collaborator implements the Collaborator (membership and
// invitation) repository using PostgreSQL.
package collaborator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/journey-planner-backend/internal/adapter/postgres"
	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

// ActiveMemberConstraint is the partial unique index that allows one
// non-declined row per (journey, user).
const ActiveMemberConstraint = "collaborators_active_member_uq"

var columns = []string{
	"id", "journey_id", "user_id", "email", "role", "status",
	"invited_at", "invited_by_user_id", "message", "responded_at",
}

func qualified(alias string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

// Repo provides collaborator persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new collaborator repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create inserts a collaborator row. A second non-declined row for the same
// journey and user fails with domain.ErrDuplicateInvitation.
func (r *Repo) Create(ctx context.Context, c domain.Collaborator) (*domain.Collaborator, error) {
	query, args, err := postgres.Builder.
		Insert("collaborators").
		Columns(columns...).
		Values(c.ID, c.JourneyID, c.UserID, c.Email, string(c.Role), string(c.Status),
			c.InvitedAt, c.InvitedByUserID, c.Message, c.RespondedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	got, err := scanCollaborator(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if postgres.IsUniqueViolation(err, ActiveMemberConstraint) {
		return nil, fmt.Errorf("collaborator %s: %w", c.ID, domain.ErrDuplicateInvitation)
	}
	if err != nil {
		return nil, postgres.MapError(err, "collaborator", c.ID)
	}
	return got, nil
}

// UpdateStatus records the invitee's response.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CollaboratorStatus, at time.Time) (*domain.Collaborator, error) {
	query, args, err := postgres.Builder.
		Update("collaborators").
		Set("status", string(status)).
		Set("responded_at", at).
		Where("id = ?", id).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	got, err := scanCollaborator(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "collaborator", id)
	}
	return got, nil
}

// Delete hard-deletes a collaborator row.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder.
		Delete("collaborators").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "collaborator", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "collaborator", id)
	}
	return nil
}

// PurgeDeclined hard-deletes declined invitations answered before threshold.
// It returns the number of rows removed.
func (r *Repo) PurgeDeclined(ctx context.Context, threshold time.Time) (int64, error) {
	query, args, err := postgres.Builder.
		Delete("collaborators").
		Where("status = ?", string(domain.CollaboratorStatusDeclined)).
		Where("responded_at < ?", threshold).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "collaborator", uuid.Nil)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetByID returns a collaborator row by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collaborator, error) {
	return r.getByID(ctx, id, "")
}

// GetByIDForUpdate locks the row until the surrounding transaction ends.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Collaborator, error) {
	return r.getByID(ctx, id, "FOR UPDATE")
}

func (r *Repo) getByID(ctx context.Context, id uuid.UUID, suffix string) (*domain.Collaborator, error) {
	b := postgres.Builder.
		Select(columns...).
		From("collaborators").
		Where("id = ?", id)
	if suffix != "" {
		b = b.Suffix(suffix)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	got, err := scanCollaborator(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "collaborator", id)
	}
	return got, nil
}

// GetMember returns the non-declined row of userID on journeyID.
func (r *Repo) GetMember(ctx context.Context, journeyID, userID uuid.UUID) (*domain.Collaborator, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From("collaborators").
		Where("journey_id = ?", journeyID).
		Where("user_id = ?", userID).
		Where("status <> ?", string(domain.CollaboratorStatusDeclined)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	got, err := scanCollaborator(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "collaborator", userID)
	}
	return got, nil
}

// ListByJourney returns every row of a journey: owner first, then by
// invitation time.
func (r *Repo) ListByJourney(ctx context.Context, journeyID uuid.UUID) ([]domain.Collaborator, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From("collaborators").
		Where("journey_id = ?", journeyID).
		OrderBy("(role = 'OWNER') DESC", "invited_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "collaborator", journeyID)
	}
	defer rows.Close()

	out := []domain.Collaborator{}
	for rows.Next() {
		c, err := scanCollaborator(rows)
		if err != nil {
			return nil, postgres.MapError(err, "collaborator", journeyID)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "collaborator", journeyID)
	}
	return out, nil
}

// ListPendingForUser returns invitations addressed to userID, newest first,
// with the journey title and inviter name.
func (r *Repo) ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]domain.PendingInvitation, error) {
	query, args, err := postgres.Builder.
		Select(qualified("c")...).
		Columns("j.title", "COALESCE(NULLIF(u.name, ''), u.email)").
		From("collaborators c").
		Join("journeys j ON j.id = c.journey_id").
		Join("users u ON u.id = c.invited_by_user_id").
		Where("c.user_id = ?", userID).
		Where("c.status = ?", string(domain.CollaboratorStatusPending)).
		OrderBy("c.invited_at DESC", "c.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "invitation", userID)
	}
	defer rows.Close()

	out := []domain.PendingInvitation{}
	for rows.Next() {
		var inv domain.PendingInvitation
		var role, status string
		c := &inv.Collaborator
		if err := rows.Scan(&c.ID, &c.JourneyID, &c.UserID, &c.Email, &role, &status,
			&c.InvitedAt, &c.InvitedByUserID, &c.Message, &c.RespondedAt,
			&inv.JourneyTitle, &inv.InviterName); err != nil {
			return nil, postgres.MapError(err, "invitation", userID)
		}
		c.Role = domain.Role(role)
		c.Status = domain.CollaboratorStatus(status)
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "invitation", userID)
	}
	return out, nil
}

func scanCollaborator(row pgx.Row) (*domain.Collaborator, error) {
	var (
		c            domain.Collaborator
		role, status string
	)
	if err := row.Scan(&c.ID, &c.JourneyID, &c.UserID, &c.Email, &role, &status,
		&c.InvitedAt, &c.InvitedByUserID, &c.Message, &c.RespondedAt); err != nil {
		return nil, err
	}
	c.Role = domain.Role(role)
	c.Status = domain.CollaboratorStatus(status)
	return &c, nil
}
