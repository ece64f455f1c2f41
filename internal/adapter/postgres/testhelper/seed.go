package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with a unique email.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	user := domain.User{
		ID:        uuid.New(),
		Email:     "traveller-" + suffix + "@example.com",
		Name:      "Traveller " + suffix,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, name, created_at) VALUES ($1, $2, $3, $4)`,
		user.ID, user.Email, user.Name, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return user
}

// SeedJourney creates a journey owned by owner together with its owner row.
func SeedJourney(t *testing.T, pool *pgxpool.Pool, owner domain.User) domain.Journey {
	t.Helper()
	ctx := context.Background()

	j := domain.Journey{
		ID:        uuid.New(),
		Title:     "Trip " + uniqueSuffix(),
		OwnerID:   owner.ID,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO journeys (id, title, owner_id, created_at) VALUES ($1, $2, $3, $4)`,
		j.ID, j.Title, j.OwnerID, j.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedJourney insert journey: %v", err)
	}

	SeedCollaborator(t, pool, j.ID, owner, domain.RoleOwner, domain.CollaboratorStatusAccepted)
	return j
}

// SeedCollaborator inserts a collaborator row invited by the journey owner.
func SeedCollaborator(t *testing.T, pool *pgxpool.Pool, journeyID uuid.UUID, user domain.User, role domain.Role, status domain.CollaboratorStatus) domain.Collaborator {
	t.Helper()

	c := domain.Collaborator{
		ID:        uuid.New(),
		JourneyID: journeyID,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      role,
		Status:    status,
		InvitedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO collaborators (id, journey_id, user_id, email, role, status, invited_at, invited_by_user_id)
		 SELECT $1, $2, $3, $4, $5, $6, $7, owner_id FROM journeys WHERE id = $2
		 RETURNING invited_by_user_id`,
		c.ID, c.JourneyID, c.UserID, c.Email, string(c.Role), string(c.Status), c.InvitedAt,
	).Scan(&c.InvitedByUserID)
	if err != nil {
		t.Fatalf("testhelper: SeedCollaborator: %v", err)
	}
	return c
}
