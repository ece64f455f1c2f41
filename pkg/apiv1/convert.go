package apiv1

import "github.com/heartmarshall/journey-planner-backend/internal/domain"

// ---------------------------------------------------------------------------
// domain -> wire
// ---------------------------------------------------------------------------

func FromUser(u domain.User) User {
	return User{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

func FromJourney(j domain.Journey) Journey {
	return Journey{ID: j.ID, Title: j.Title, OwnerID: j.OwnerID, CreatedAt: j.CreatedAt}
}

func FromCollaborator(c domain.Collaborator) Collaborator {
	return Collaborator{
		ID:              c.ID,
		JourneyID:       c.JourneyID,
		UserID:          c.UserID,
		Email:           c.Email,
		Role:            c.Role,
		Status:          c.Status,
		InvitedAt:       c.InvitedAt,
		InvitedByUserID: c.InvitedByUserID,
		Message:         c.Message,
		RespondedAt:     c.RespondedAt,
	}
}

func FromPendingInvitation(p domain.PendingInvitation) PendingInvitation {
	return PendingInvitation{
		Collaborator: FromCollaborator(p.Collaborator),
		JourneyTitle: p.JourneyTitle,
		InviterName:  p.InviterName,
	}
}

func FromExperience(e domain.Experience) Experience {
	return Experience{
		ID:                e.ID,
		JourneyID:         e.JourneyID,
		Day:               e.Day,
		Title:             e.Title,
		Description:       e.Description,
		Location:          e.Location,
		SuggestedByUserID: e.SuggestedByUserID,
		ApprovalStatus:    e.ApprovalStatus,
		ReviewedByUserID:  e.ReviewedByUserID,
		ReviewedAt:        e.ReviewedAt,
		ReviewNotes:       e.ReviewNotes,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func FromCounts(c domain.NotificationCounts) NotificationCounts {
	c = c.Normalize()
	return NotificationCounts{
		PendingInvitations: c.PendingInvitations,
		PendingSuggestions: c.PendingSuggestions,
		RecentApprovals:    c.RecentApprovals,
		RecentRejections:   c.RecentRejections,
		Total:              c.Total,
	}
}

func FromAuditRecord(r domain.AuditRecord) ActivityEntry {
	return ActivityEntry{
		ID:         r.ID,
		UserID:     r.UserID,
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Action:     r.Action,
		Changes:    r.Changes,
		CreatedAt:  r.CreatedAt,
	}
}

// ---------------------------------------------------------------------------
// wire -> domain
// ---------------------------------------------------------------------------

func (u User) Domain() domain.User {
	return domain.User{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

func (j Journey) Domain() domain.Journey {
	return domain.Journey{ID: j.ID, Title: j.Title, OwnerID: j.OwnerID, CreatedAt: j.CreatedAt}
}

func (c Collaborator) Domain() domain.Collaborator {
	return domain.Collaborator{
		ID:              c.ID,
		JourneyID:       c.JourneyID,
		UserID:          c.UserID,
		Email:           c.Email,
		Role:            c.Role,
		Status:          c.Status,
		InvitedAt:       c.InvitedAt,
		InvitedByUserID: c.InvitedByUserID,
		Message:         c.Message,
		RespondedAt:     c.RespondedAt,
	}
}

func (p PendingInvitation) Domain() domain.PendingInvitation {
	return domain.PendingInvitation{
		Collaborator: p.Collaborator.Domain(),
		JourneyTitle: p.JourneyTitle,
		InviterName:  p.InviterName,
	}
}

func (e Experience) Domain() domain.Experience {
	return domain.Experience{
		ID:                e.ID,
		JourneyID:         e.JourneyID,
		Day:               e.Day,
		Title:             e.Title,
		Description:       e.Description,
		Location:          e.Location,
		SuggestedByUserID: e.SuggestedByUserID,
		ApprovalStatus:    e.ApprovalStatus,
		ReviewedByUserID:  e.ReviewedByUserID,
		ReviewedAt:        e.ReviewedAt,
		ReviewNotes:       e.ReviewNotes,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

// Domain converts the wire counts and recomputes Total.
func (c NotificationCounts) Domain() domain.NotificationCounts {
	return domain.NotificationCounts{
		PendingInvitations: c.PendingInvitations,
		PendingSuggestions: c.PendingSuggestions,
		RecentApprovals:    c.RecentApprovals,
		RecentRejections:   c.RecentRejections,
	}.Normalize()
}

func (d NotificationDetails) Domain() domain.NotificationDetails {
	return domain.NotificationDetails{
		PendingSuggestions: experiencesDomain(d.PendingSuggestions),
		RecentResponses:    experiencesDomain(d.RecentResponses),
	}
}

// Domain converts the entry; the journey id is not carried on the wire.
func (a ActivityEntry) Domain() domain.AuditRecord {
	return domain.AuditRecord{
		ID:         a.ID,
		UserID:     a.UserID,
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		Action:     a.Action,
		Changes:    a.Changes,
		CreatedAt:  a.CreatedAt,
	}
}

func experiencesDomain(in []Experience) []domain.Experience {
	out := make([]domain.Experience, len(in))
	for i, e := range in {
		out[i] = e.Domain()
	}
	return out
}
