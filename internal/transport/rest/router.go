package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/heartmarshall/journey-planner-backend/pkg/apiv1"
)

//go:generate moq -out journey_service_mock_test.go -pkg rest . journeyService
//go:generate moq -out invitation_service_mock_test.go -pkg rest . invitationService
//go:generate moq -out suggestion_service_mock_test.go -pkg rest . suggestionService
//go:generate moq -out notification_service_mock_test.go -pkg rest . notificationService
//go:generate moq -out user_service_mock_test.go -pkg rest . userService

// Handlers groups every REST handler mounted by NewRouter.
type Handlers struct {
	Health        *HealthHandler
	Journeys      *JourneyHandler
	Collaborators *CollaboratorHandler
	Suggestions   *SuggestionHandler
	Notifications *NotificationHandler
	Users         *UserHandler
}

// RouterMiddleware holds the middleware applied inside the router.
// Authenticate and Loaders wrap every API route; Mutation additionally wraps
// state-changing routes. Nil entries are skipped.
type RouterMiddleware struct {
	Authenticate func(http.Handler) http.Handler
	Loaders      func(http.Handler) http.Handler
	Mutation     func(http.Handler) http.Handler
}

// NewRouter builds the route table. Health probes stay outside the API
// middleware.
func NewRouter(h Handlers, mw RouterMiddleware) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	r.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	r.HandleFunc("/live", h.Health.Live).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.Health.Ready).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	for _, m := range []func(http.Handler) http.Handler{mw.Authenticate, mw.Loaders} {
		if m != nil {
			api.Use(mux.MiddlewareFunc(m))
		}
	}

	mutate := func(fn http.HandlerFunc) http.Handler {
		if mw.Mutation == nil {
			return fn
		}
		return mw.Mutation(fn)
	}

	// Journeys
	api.Handle("/journeys", mutate(h.Journeys.Create)).Methods(http.MethodPost)
	api.HandleFunc("/journeys", h.Journeys.List).Methods(http.MethodGet)
	api.HandleFunc("/journeys/{id}/activity", h.Journeys.Activity).Methods(http.MethodGet)

	// Collaborators and invitations
	api.HandleFunc("/journeys/{id}/collaborators", h.Collaborators.List).Methods(http.MethodGet)
	api.Handle("/journeys/{id}/collaborators/invite", mutate(h.Collaborators.Invite)).Methods(http.MethodPost)
	api.Handle("/journeys/{id}/collaborators/{collaboratorId}", mutate(h.Collaborators.Remove)).Methods(http.MethodDelete)
	api.Handle("/invitations/{id}/respond", mutate(h.Collaborators.Respond)).Methods(http.MethodPost)
	api.HandleFunc("/invitations/pending", h.Collaborators.Pending).Methods(http.MethodGet)

	// Experiences and suggestions
	api.Handle("/journeys/{id}/experiences", mutate(h.Suggestions.Propose)).Methods(http.MethodPost)
	api.HandleFunc("/journeys/{id}/experiences", h.Suggestions.ListApproved).Methods(http.MethodGet)
	api.HandleFunc("/journeys/{id}/suggestions", h.Suggestions.ListPending).Methods(http.MethodGet)
	api.Handle("/journeys/{id}/suggestions/{suggestionId}/review", mutate(h.Suggestions.Review)).Methods(http.MethodPost)
	api.Handle("/suggestions/{id}", mutate(h.Suggestions.Update)).Methods(http.MethodPatch)
	api.Handle("/suggestions/{id}", mutate(h.Suggestions.Withdraw)).Methods(http.MethodDelete)
	api.HandleFunc("/users/me/suggestions", h.Suggestions.ListMine).Methods(http.MethodGet)

	// Profile
	api.HandleFunc("/users/me", h.Users.Me).Methods(http.MethodGet)
	api.Handle("/users/me", mutate(h.Users.UpdateMe)).Methods(http.MethodPatch)

	// Notifications
	api.HandleFunc("/notifications", h.Notifications.Counts).Methods(http.MethodGet)
	api.HandleFunc("/notifications/details", h.Notifications.Details).Methods(http.MethodGet)

	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, apiv1.ErrorDetail{Code: apiv1.CodeNotFound, Message: "route not found"})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, apiv1.ErrorDetail{Code: apiv1.CodeNotFound, Message: "method not allowed"})
}
