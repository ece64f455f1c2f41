package planner

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/heartmarshall/journey-planner-backend/internal/auth"
	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/pkg/apiv1"
)

const fakeSecret = "planner-test-secret-of-at-least-32-chars"

var errInternal = errors.New("database unavailable")

// fakeServer is an in-memory collaboration store speaking the REST API.
type fakeServer struct {
	t      *testing.T
	jwt    *auth.JWTManager
	server *httptest.Server

	notificationHits atomic.Int32
	reviewHits       atomic.Int32
	failReviews      atomic.Bool

	mu            sync.Mutex
	users         map[string]uuid.UUID // email -> id
	journeys      map[uuid.UUID]uuid.UUID
	collaborators []*domain.Collaborator
	experiences   []*domain.Experience
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	f := &fakeServer{
		t:        t,
		jwt:      auth.NewJWTManager(fakeSecret, "test", time.Hour),
		users:    make(map[string]uuid.UUID),
		journeys: make(map[uuid.UUID]uuid.UUID),
	}

	r := mux.NewRouter()
	r.HandleFunc("/journeys/{id}/collaborators", f.listCollaborators).Methods(http.MethodGet)
	r.HandleFunc("/journeys/{id}/collaborators/invite", f.invite).Methods(http.MethodPost)
	r.HandleFunc("/journeys/{id}/collaborators/{cid}", f.remove).Methods(http.MethodDelete)
	r.HandleFunc("/invitations/{id}/respond", f.respond).Methods(http.MethodPost)
	r.HandleFunc("/invitations/pending", f.pendingInvitations).Methods(http.MethodGet)
	r.HandleFunc("/journeys/{id}/experiences", f.propose).Methods(http.MethodPost)
	r.HandleFunc("/journeys/{id}/experiences", f.approved).Methods(http.MethodGet)
	r.HandleFunc("/journeys/{id}/suggestions", f.pendingSuggestions).Methods(http.MethodGet)
	r.HandleFunc("/journeys/{id}/suggestions/{sid}/review", f.review).Methods(http.MethodPost)
	r.HandleFunc("/suggestions/{sid}", f.withdraw).Methods(http.MethodDelete)
	r.HandleFunc("/users/me/suggestions", f.mySuggestions).Methods(http.MethodGet)
	r.HandleFunc("/notifications", f.counts).Methods(http.MethodGet)
	r.HandleFunc("/notifications/details", f.details).Methods(http.MethodGet)

	f.server = httptest.NewServer(f.authenticate(r))
	t.Cleanup(f.server.Close)
	return f
}

// user registers a user and returns a bearer token for them.
func (f *fakeServer) user(email string) (uuid.UUID, string) {
	id := uuid.New()
	f.mu.Lock()
	f.users[email] = id
	f.mu.Unlock()
	token, err := f.jwt.GenerateAccessToken(id, email)
	if err != nil {
		f.t.Fatalf("token: %v", err)
	}
	return id, token
}

func (f *fakeServer) journey(owner uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.journeys[id] = owner
	f.collaborators = append(f.collaborators, &domain.Collaborator{
		ID: uuid.New(), JourneyID: id, UserID: owner, Role: domain.RoleOwner,
		Status: domain.CollaboratorStatusAccepted, InvitedByUserID: owner, InvitedAt: time.Now(),
	})
	return id
}

// ---------------------------------------------------------------------------
// Plumbing
// ---------------------------------------------------------------------------

type callerKey struct{}

func (f *fakeServer) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		id, err := f.jwt.ValidateAccessToken(token)
		if err != nil {
			f.fail(w, domain.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(contextWith(r, id.UserID)))
	})
}

func contextWith(r *http.Request, id uuid.UUID) context.Context {
	return context.WithValue(r.Context(), callerKey{}, id)
}

func caller(r *http.Request) uuid.UUID { return r.Context().Value(callerKey{}).(uuid.UUID) }

func varID(r *http.Request, name string) uuid.UUID { return uuid.MustParse(mux.Vars(r)[name]) }

func (f *fakeServer) fail(w http.ResponseWriter, err error) {
	code, status := apiv1.CodeFor(err)
	f.write(w, status, apiv1.ErrorBody{Error: apiv1.ErrorDetail{Code: code, Message: err.Error()}})
}

func (f *fakeServer) write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// memberLocked returns the caller's non-declined row on journey.
func (f *fakeServer) memberLocked(journeyID, userID uuid.UUID) *domain.Collaborator {
	for _, c := range f.collaborators {
		if c.JourneyID == journeyID && c.UserID == userID && c.BlocksInvite() {
			return c
		}
	}
	return nil
}

func experienceRequest(day int, title string) apiv1.ExperienceRequest {
	return apiv1.ExperienceRequest{Day: day, Title: title}
}

func experiencesOut(in []*domain.Experience) []apiv1.Experience {
	out := make([]apiv1.Experience, 0, len(in))
	for _, e := range in {
		out = append(out, apiv1.FromExperience(*e))
	}
	return out
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

func (f *fakeServer) listCollaborators(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	journeyID := varID(r, "id")
	if f.memberLocked(journeyID, caller(r)) == nil {
		f.fail(w, domain.ErrForbidden)
		return
	}
	out := []apiv1.Collaborator{}
	for _, c := range f.collaborators {
		if c.JourneyID == journeyID {
			out = append(out, apiv1.FromCollaborator(*c))
		}
	}
	f.write(w, http.StatusOK, out)
}

func (f *fakeServer) invite(w http.ResponseWriter, r *http.Request) {
	var req apiv1.InviteRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()
	journeyID := varID(r, "id")
	if err := domain.Authorize(f.memberLocked(journeyID, caller(r)), domain.CapInvite); err != nil {
		f.fail(w, err)
		return
	}
	invitee, ok := f.users[req.Email]
	if !ok {
		f.fail(w, domain.ErrNotFound)
		return
	}
	if f.memberLocked(journeyID, invitee) != nil {
		f.fail(w, domain.ErrDuplicateInvitation)
		return
	}
	c := &domain.Collaborator{
		ID: uuid.New(), JourneyID: journeyID, UserID: invitee, Email: req.Email,
		Role: domain.RoleContributor, Status: domain.CollaboratorStatusPending,
		InvitedAt: time.Now(), InvitedByUserID: caller(r), Message: req.Message,
	}
	f.collaborators = append(f.collaborators, c)
	f.write(w, http.StatusCreated, apiv1.FromCollaborator(*c))
}

func (f *fakeServer) respond(w http.ResponseWriter, r *http.Request) {
	var req apiv1.RespondRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()
	id := varID(r, "id")
	for _, c := range f.collaborators {
		if c.ID != id {
			continue
		}
		if err := c.CheckRespond(caller(r), req.Decision); err != nil {
			f.fail(w, err)
			return
		}
		now := time.Now()
		c.Status, c.RespondedAt = req.Decision.Status(), &now
		f.write(w, http.StatusOK, apiv1.FromCollaborator(*c))
		return
	}
	f.fail(w, domain.ErrNotFound)
}

func (f *fakeServer) remove(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	journeyID, cid := varID(r, "id"), varID(r, "cid")
	if err := domain.Authorize(f.memberLocked(journeyID, caller(r)), domain.CapRemoveCollaborator); err != nil {
		f.fail(w, err)
		return
	}
	for i, c := range f.collaborators {
		if c.ID == cid && c.JourneyID == journeyID {
			if err := c.CheckRemovable(); err != nil {
				f.fail(w, err)
				return
			}
			f.collaborators = append(f.collaborators[:i], f.collaborators[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	f.fail(w, domain.ErrNotFound)
}

func (f *fakeServer) pendingInvitations(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []apiv1.PendingInvitation{}
	for _, c := range f.collaborators {
		if c.UserID == caller(r) && c.Status == domain.CollaboratorStatusPending {
			out = append(out, apiv1.PendingInvitation{Collaborator: apiv1.FromCollaborator(*c), JourneyTitle: "Trip"})
		}
	}
	f.write(w, http.StatusOK, out)
}

func (f *fakeServer) propose(w http.ResponseWriter, r *http.Request) {
	var req apiv1.ExperienceRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()
	journeyID := varID(r, "id")
	member := f.memberLocked(journeyID, caller(r))
	if err := domain.Authorize(member, domain.CapProposeExperience); err != nil {
		f.fail(w, err)
		return
	}
	now := time.Now()
	e := &domain.Experience{
		ID: uuid.New(), JourneyID: journeyID, Day: req.Day, Title: req.Title,
		SuggestedByUserID: caller(r), ApprovalStatus: domain.InitialStatus(member.Role),
		CreatedAt: now, UpdatedAt: now,
	}
	f.experiences = append(f.experiences, e)
	f.write(w, http.StatusCreated, apiv1.FromExperience(*e))
}

func (f *fakeServer) filter(keep func(e *domain.Experience) bool) []*domain.Experience {
	var out []*domain.Experience
	for _, e := range f.experiences {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeServer) approved(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	journeyID := varID(r, "id")
	f.write(w, http.StatusOK, experiencesOut(f.filter(func(e *domain.Experience) bool {
		return e.JourneyID == journeyID && e.ApprovalStatus == domain.ApprovalStatusApproved
	})))
}

func (f *fakeServer) pendingSuggestions(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	journeyID := varID(r, "id")
	if err := domain.Authorize(f.memberLocked(journeyID, caller(r)), domain.CapListPendingSuggestions); err != nil {
		f.fail(w, err)
		return
	}
	f.write(w, http.StatusOK, experiencesOut(f.filter(func(e *domain.Experience) bool {
		return e.JourneyID == journeyID && e.ApprovalStatus == domain.ApprovalStatusPending
	})))
}

func (f *fakeServer) review(w http.ResponseWriter, r *http.Request) {
	f.reviewHits.Add(1)
	if f.failReviews.Load() {
		f.fail(w, errInternal)
		return
	}
	var req apiv1.ReviewRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()
	journeyID, sid := varID(r, "id"), varID(r, "sid")
	if err := domain.Authorize(f.memberLocked(journeyID, caller(r)), domain.CapReviewSuggestion); err != nil {
		f.fail(w, err)
		return
	}
	for _, e := range f.experiences {
		if e.ID != sid || e.JourneyID != journeyID {
			continue
		}
		if err := e.CheckReview(req.Action); err != nil {
			f.fail(w, err)
			return
		}
		now, reviewer := time.Now(), caller(r)
		e.ApprovalStatus, e.ReviewedByUserID, e.ReviewedAt = req.Action.Status(), &reviewer, &now
		f.write(w, http.StatusOK, apiv1.FromExperience(*e))
		return
	}
	f.fail(w, domain.ErrNotFound)
}

func (f *fakeServer) withdraw(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sid := varID(r, "sid")
	for i, e := range f.experiences {
		if e.ID != sid {
			continue
		}
		if err := e.CheckOwnChange(caller(r)); err != nil {
			f.fail(w, err)
			return
		}
		f.experiences = append(f.experiences[:i], f.experiences[i+1:]...)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	f.fail(w, domain.ErrNotFound)
}

func (f *fakeServer) mySuggestions(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	mine := f.filter(func(e *domain.Experience) bool {
		return e.SuggestedByUserID == caller(r) && f.journeys[e.JourneyID] != caller(r)
	})
	sort.Slice(mine, func(i, j int) bool { return mine[i].CreatedAt.After(mine[j].CreatedAt) })
	f.write(w, http.StatusOK, experiencesOut(mine))
}

func (f *fakeServer) countsLocked(userID uuid.UUID) domain.NotificationCounts {
	var c domain.NotificationCounts
	for _, col := range f.collaborators {
		if col.UserID == userID && col.Status == domain.CollaboratorStatusPending {
			c.PendingInvitations++
		}
	}
	for _, e := range f.experiences {
		switch {
		case f.journeys[e.JourneyID] == userID && e.ApprovalStatus == domain.ApprovalStatusPending:
			c.PendingSuggestions++
		case e.SuggestedByUserID == userID && e.ReviewedAt != nil && e.ApprovalStatus == domain.ApprovalStatusApproved:
			c.RecentApprovals++
		case e.SuggestedByUserID == userID && e.ReviewedAt != nil && e.ApprovalStatus == domain.ApprovalStatusRejected:
			c.RecentRejections++
		}
	}
	return c.Normalize()
}

func (f *fakeServer) counts(w http.ResponseWriter, r *http.Request) {
	f.notificationHits.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.write(w, http.StatusOK, apiv1.FromCounts(f.countsLocked(caller(r))))
}

func (f *fakeServer) details(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	userID := caller(r)
	f.write(w, http.StatusOK, apiv1.NotificationDetails{
		PendingSuggestions: experiencesOut(f.filter(func(e *domain.Experience) bool {
			return f.journeys[e.JourneyID] == userID && e.ApprovalStatus == domain.ApprovalStatusPending
		})),
		RecentResponses: experiencesOut(f.filter(func(e *domain.Experience) bool {
			return e.SuggestedByUserID == userID && e.ReviewedAt != nil
		})),
	})
}
