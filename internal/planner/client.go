package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/pkg/apiv1"
)

// APIError is an error response from the server. It unwraps to the domain
// sentinel matching its code.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  []domain.FieldError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Status >= http.StatusInternalServerError {
		return domain.ErrNetworkFailure
	}
	return apiv1.Sentinel(e.Code)
}

// Client calls the journey planner REST API on behalf of one user.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *slog.Logger
}

// NewClient creates a Client. A nil httpClient gets a client with timeout.
func NewClient(baseURL, token string, httpClient *http.Client, timeout time.Duration, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
		log:     logger.With("component", "planner.client"),
	}
}

// ---------------------------------------------------------------------------
// Profile
// ---------------------------------------------------------------------------

func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var out apiv1.User
	err := c.do(ctx, http.MethodGet, "/users/me", nil, &out)
	return out.Domain(), err
}

func (c *Client) UpdateProfile(ctx context.Context, name string) (domain.User, error) {
	var out apiv1.User
	err := c.do(ctx, http.MethodPatch, "/users/me", apiv1.UpdateProfileRequest{Name: name}, &out)
	return out.Domain(), err
}

// ---------------------------------------------------------------------------
// Journeys and collaborators
// ---------------------------------------------------------------------------

func (c *Client) CreateJourney(ctx context.Context, title string) (domain.Journey, error) {
	var out apiv1.Journey
	err := c.do(ctx, http.MethodPost, "/journeys", apiv1.CreateJourneyRequest{Title: title}, &out)
	return out.Domain(), err
}

func (c *Client) ListJourneys(ctx context.Context) ([]domain.Journey, error) {
	var out []apiv1.Journey
	if err := c.do(ctx, http.MethodGet, "/journeys", nil, &out); err != nil {
		return nil, err
	}
	return convert(out, apiv1.Journey.Domain), nil
}

// Activity returns up to limit entries of the journey's change history,
// newest first. A zero limit uses the server default.
func (c *Client) Activity(ctx context.Context, journeyID uuid.UUID, limit int) ([]apiv1.ActivityEntry, error) {
	path := "/journeys/" + journeyID.String() + "/activity"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []apiv1.ActivityEntry
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListCollaborators(ctx context.Context, journeyID uuid.UUID) ([]domain.Collaborator, error) {
	var out []apiv1.Collaborator
	if err := c.do(ctx, http.MethodGet, "/journeys/"+journeyID.String()+"/collaborators", nil, &out); err != nil {
		return nil, err
	}
	return convert(out, apiv1.Collaborator.Domain), nil
}

func (c *Client) Invite(ctx context.Context, journeyID uuid.UUID, email string, message *string) (domain.Collaborator, error) {
	var out apiv1.Collaborator
	err := c.do(ctx, http.MethodPost, "/journeys/"+journeyID.String()+"/collaborators/invite",
		apiv1.InviteRequest{Email: email, Message: message}, &out)
	return out.Domain(), err
}

func (c *Client) Respond(ctx context.Context, invitationID uuid.UUID, decision domain.InvitationDecision) (domain.Collaborator, error) {
	var out apiv1.Collaborator
	err := c.do(ctx, http.MethodPost, "/invitations/"+invitationID.String()+"/respond",
		apiv1.RespondRequest{Decision: decision}, &out)
	return out.Domain(), err
}

func (c *Client) Remove(ctx context.Context, journeyID, collaboratorID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete,
		"/journeys/"+journeyID.String()+"/collaborators/"+collaboratorID.String(), nil, nil)
}

func (c *Client) ListPendingInvitations(ctx context.Context) ([]domain.PendingInvitation, error) {
	var out []apiv1.PendingInvitation
	if err := c.do(ctx, http.MethodGet, "/invitations/pending", nil, &out); err != nil {
		return nil, err
	}
	return convert(out, apiv1.PendingInvitation.Domain), nil
}

// ---------------------------------------------------------------------------
// Suggestions
// ---------------------------------------------------------------------------

func (c *Client) Propose(ctx context.Context, journeyID uuid.UUID, req apiv1.ExperienceRequest) (domain.Experience, error) {
	var out apiv1.Experience
	err := c.do(ctx, http.MethodPost, "/journeys/"+journeyID.String()+"/experiences", req, &out)
	return out.Domain(), err
}

func (c *Client) Review(ctx context.Context, journeyID, suggestionID uuid.UUID, action domain.ReviewAction, notes *string) (domain.Experience, error) {
	var out apiv1.Experience
	err := c.do(ctx, http.MethodPost,
		"/journeys/"+journeyID.String()+"/suggestions/"+suggestionID.String()+"/review",
		apiv1.ReviewRequest{Action: action, Notes: notes}, &out)
	return out.Domain(), err
}

func (c *Client) UpdateOwn(ctx context.Context, suggestionID uuid.UUID, req apiv1.ExperienceRequest) (domain.Experience, error) {
	var out apiv1.Experience
	err := c.do(ctx, http.MethodPatch, "/suggestions/"+suggestionID.String(), req, &out)
	return out.Domain(), err
}

func (c *Client) WithdrawOwn(ctx context.Context, suggestionID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/suggestions/"+suggestionID.String(), nil, nil)
}

func (c *Client) ListApproved(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error) {
	return c.listExperiences(ctx, "/journeys/"+journeyID.String()+"/experiences")
}

func (c *Client) ListPendingSuggestions(ctx context.Context, journeyID uuid.UUID) ([]domain.Experience, error) {
	return c.listExperiences(ctx, "/journeys/"+journeyID.String()+"/suggestions")
}

func (c *Client) ListMySuggestions(ctx context.Context) ([]domain.Experience, error) {
	return c.listExperiences(ctx, "/users/me/suggestions")
}

func (c *Client) listExperiences(ctx context.Context, path string) ([]domain.Experience, error) {
	var out []apiv1.Experience
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return convert(out, apiv1.Experience.Domain), nil
}

// ---------------------------------------------------------------------------
// Notifications
// ---------------------------------------------------------------------------

func (c *Client) Counts(ctx context.Context) (domain.NotificationCounts, error) {
	var out apiv1.NotificationCounts
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, &out); err != nil {
		return domain.NotificationCounts{}, err
	}
	return out.Domain(), nil
}

func (c *Client) Details(ctx context.Context) (domain.NotificationDetails, error) {
	var out apiv1.NotificationDetails
	if err := c.do(ctx, http.MethodGet, "/notifications/details", nil, &out); err != nil {
		return domain.NotificationDetails{}, err
	}
	return out.Domain(), nil
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

// do sends one request. Transport failures and 5xx responses wrap
// domain.ErrNetworkFailure; other error responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		return fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := decodeAPIError(resp)
		c.log.DebugContext(ctx, "api error",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("code", apiErr.Code),
		)
		return fmt.Errorf("%s %s: %w", method, path, apiErr)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode: %w: %w", method, path, domain.ErrNetworkFailure, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Code: apiv1.CodeInternal, Message: resp.Status}

	var body apiv1.ErrorBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err != nil || body.Error.Code == "" {
		return apiErr
	}
	apiErr.Code = body.Error.Code
	apiErr.Message = body.Error.Message
	for _, f := range body.Error.Fields {
		apiErr.Fields = append(apiErr.Fields, domain.FieldError{Field: f.Field, Message: f.Message})
	}
	return apiErr
}

// IsNetworkFailure reports whether err is transient.
func IsNetworkFailure(err error) bool {
	return errors.Is(err, domain.ErrNetworkFailure)
}

func convert[W any, D any](in []W, fn func(W) D) []D {
	out := make([]D, len(in))
	for i, w := range in {
		out[i] = fn(w)
	}
	return out
}
