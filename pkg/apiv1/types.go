// Package apiv1 holds the JSON wire types of the journey planner REST API,
// shared by the server handlers and the Go client.
package apiv1

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Resources
// ---------------------------------------------------------------------------

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Journey struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	OwnerID   uuid.UUID `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Collaborator struct {
	ID              uuid.UUID                 `json:"id"`
	JourneyID       uuid.UUID                 `json:"journeyId"`
	UserID          uuid.UUID                 `json:"userId"`
	Email           string                    `json:"email"`
	Name            string                    `json:"name,omitempty"`
	Role            domain.Role               `json:"role"`
	Status          domain.CollaboratorStatus `json:"status"`
	InvitedAt       time.Time                 `json:"invitedAt"`
	InvitedByUserID uuid.UUID                 `json:"invitedByUserId"`
	Message         *string                   `json:"message,omitempty"`
	RespondedAt     *time.Time                `json:"respondedAt,omitempty"`
}

type PendingInvitation struct {
	Collaborator
	JourneyTitle string `json:"journeyTitle"`
	InviterName  string `json:"inviterName"`
}

type Experience struct {
	ID                uuid.UUID             `json:"id"`
	JourneyID         uuid.UUID             `json:"journeyId"`
	Day               int                   `json:"day"`
	Title             string                `json:"title"`
	Description       string                `json:"description"`
	Location          *string               `json:"location,omitempty"`
	SuggestedByUserID uuid.UUID             `json:"suggestedByUserId"`
	SuggestedByName   string                `json:"suggestedByName,omitempty"`
	ApprovalStatus    domain.ApprovalStatus `json:"approvalStatus"`
	ReviewedByUserID  *uuid.UUID            `json:"reviewedByUserId,omitempty"`
	ReviewedByName    string                `json:"reviewedByName,omitempty"`
	ReviewedAt        *time.Time            `json:"reviewedAt,omitempty"`
	ReviewNotes       *string               `json:"reviewNotes,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

type NotificationCounts struct {
	PendingInvitations int `json:"pendingInvitations"`
	PendingSuggestions int `json:"pendingSuggestions"`
	RecentApprovals    int `json:"recentApprovals"`
	RecentRejections   int `json:"recentRejections"`
	Total              int `json:"total"`
}

type NotificationDetails struct {
	PendingSuggestions []Experience `json:"pendingSuggestions"`
	RecentResponses    []Experience `json:"recentResponses"`
}

// ActivityEntry is one audit record in a journey's change history.
type ActivityEntry struct {
	ID         uuid.UUID          `json:"id"`
	UserID     uuid.UUID          `json:"userId"`
	UserName   string             `json:"userName,omitempty"`
	EntityType domain.EntityType  `json:"entityType"`
	EntityID   uuid.UUID          `json:"entityId"`
	Action     domain.AuditAction `json:"action"`
	Changes    map[string]any     `json:"changes,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

type UpdateProfileRequest struct {
	Name string `json:"name"`
}

type CreateJourneyRequest struct {
	Title string `json:"title"`
}

type InviteRequest struct {
	Email   string  `json:"email"`
	Message *string `json:"message,omitempty"`
}

type RespondRequest struct {
	Decision domain.InvitationDecision `json:"decision"`
}

type ExperienceRequest struct {
	Day         int     `json:"day"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
}

type ReviewRequest struct {
	Action domain.ReviewAction `json:"action"`
	Notes  *string             `json:"notes,omitempty"`
}
