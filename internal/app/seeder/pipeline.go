// Package seeder loads a demo dataset of travellers, journeys, invitations
// and suggestions through the application services.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
	"github.com/heartmarshall/journey-planner-backend/internal/service/invitation"
	"github.com/heartmarshall/journey-planner-backend/internal/service/journey"
	"github.com/heartmarshall/journey-planner-backend/internal/service/suggestion"
	"github.com/heartmarshall/journey-planner-backend/pkg/ctxutil"
)

type userStore interface {
	Upsert(ctx context.Context, email, name string) (*domain.User, error)
}

type journeyPlanner interface {
	Create(ctx context.Context, input journey.CreateInput) (*domain.Journey, error)
	List(ctx context.Context) ([]domain.Journey, error)
}

type invitationManager interface {
	Invite(ctx context.Context, input invitation.InviteInput) (*domain.Collaborator, error)
	Respond(ctx context.Context, input invitation.RespondInput) (*domain.Collaborator, error)
}

type suggestionReviewer interface {
	Propose(ctx context.Context, input suggestion.ProposeInput) (*domain.Experience, error)
	Review(ctx context.Context, input suggestion.ReviewInput) (*domain.Experience, error)
}

// Phases in execution order. Later phases only touch journeys created by
// the journeys phase of the same run.
const (
	PhaseUsers       = "users"
	PhaseJourneys    = "journeys"
	PhaseInvitations = "invitations"
	PhaseExperiences = "experiences"
)

var allPhases = []string{PhaseUsers, PhaseJourneys, PhaseInvitations, PhaseExperiences}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Inserted int
	Skipped  int
	Errors   int
	Duration time.Duration
}

// Services groups the application services the pipeline drives.
type Services struct {
	Users       userStore
	Journeys    journeyPlanner
	Invitations invitationManager
	Suggestions suggestionReviewer
}

// Pipeline seeds a Config in phases.
type Pipeline struct {
	log     *slog.Logger
	svc     Services
	cfg     Config
	results map[string]PhaseResult

	users    map[string]uuid.UUID // normalized email -> id
	journeys map[int]uuid.UUID    // index into cfg.Journeys -> created id
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, svc Services, cfg Config) *Pipeline {
	return &Pipeline{
		log:      log.With("component", "seeder"),
		svc:      svc,
		cfg:      cfg,
		results:  make(map[string]PhaseResult),
		users:    make(map[string]uuid.UUID),
		journeys: make(map[int]uuid.UUID),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors reports whether any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run executes every phase. A failed user upsert aborts the run; other
// failures are counted per item and the run continues.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.cfg.Validate(); err != nil {
		return err
	}
	if p.cfg.DryRun {
		p.log.InfoContext(ctx, "dry run: dataset is valid",
			slog.Int("users", len(p.cfg.Users)),
			slog.Int("journeys", len(p.cfg.Journeys)),
		)
		return nil
	}

	for _, phase := range allPhases {
		start := time.Now()
		p.log.InfoContext(ctx, "starting phase", slog.String("phase", phase))

		var (
			result PhaseResult
			err    error
		)
		switch phase {
		case PhaseUsers:
			result, err = p.runUsers(ctx)
		case PhaseJourneys:
			result = p.runJourneys(ctx)
		case PhaseInvitations:
			result = p.runInvitations(ctx)
		case PhaseExperiences:
			result = p.runExperiences(ctx)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if err != nil {
			return fmt.Errorf("phase %s: %w", phase, err)
		}
		p.log.InfoContext(ctx, "phase completed",
			slog.String("phase", phase),
			slog.Int("inserted", result.Inserted),
			slog.Int("skipped", result.Skipped),
			slog.Int("errors", result.Errors),
			slog.Duration("duration", result.Duration),
		)
	}
	return nil
}

func (p *Pipeline) runUsers(ctx context.Context) (PhaseResult, error) {
	var res PhaseResult
	for _, u := range p.cfg.Users {
		got, err := p.svc.Users.Upsert(ctx, domain.NormalizeEmail(u.Email), domain.NormalizeText(u.Name))
		if err != nil {
			res.Errors++
			return res, fmt.Errorf("upsert %s: %w", u.Email, err)
		}
		p.users[domain.NormalizeEmail(u.Email)] = got.ID
		res.Inserted++
	}
	return res, nil
}

// runJourneys creates each journey unless its owner already has one with
// the same title, which makes reruns idempotent.
func (p *Pipeline) runJourneys(ctx context.Context) PhaseResult {
	var res PhaseResult
	existing := make(map[uuid.UUID]map[string]bool)

	for i, j := range p.cfg.Journeys {
		ownerID := p.users[domain.NormalizeEmail(j.Owner)]
		actx := p.as(ctx, ownerID)

		titles, ok := existing[ownerID]
		if !ok {
			visible, err := p.svc.Journeys.List(actx)
			if err != nil {
				p.fail(ctx, &res, "list journeys", err, slog.String("owner", j.Owner))
				continue
			}
			titles = make(map[string]bool, len(visible))
			for _, v := range visible {
				if v.OwnerID == ownerID {
					titles[v.Title] = true
				}
			}
			existing[ownerID] = titles
		}

		title := domain.NormalizeText(j.Title)
		if titles[title] {
			res.Skipped++
			continue
		}

		created, err := p.svc.Journeys.Create(actx, journey.CreateInput{Title: title})
		if err != nil {
			p.fail(ctx, &res, "create journey", err, slog.String("title", j.Title))
			continue
		}
		titles[title] = true
		p.journeys[i] = created.ID
		res.Inserted++
	}
	return res
}

func (p *Pipeline) runInvitations(ctx context.Context) PhaseResult {
	var res PhaseResult
	for i, j := range p.cfg.Journeys {
		journeyID, ok := p.journeys[i]
		if !ok {
			res.Skipped += len(j.Invitees)
			continue
		}
		ownerCtx := p.as(ctx, p.users[domain.NormalizeEmail(j.Owner)])

		for _, inv := range j.Invitees {
			var msg *string
			if inv.Message != "" {
				msg = &inv.Message
			}
			created, err := p.svc.Invitations.Invite(ownerCtx, invitation.InviteInput{
				JourneyID: journeyID,
				Email:     inv.Email,
				Message:   msg,
			})
			if errors.Is(err, domain.ErrDuplicateInvitation) {
				res.Skipped++
				continue
			}
			if err != nil {
				p.fail(ctx, &res, "invite", err, slog.String("email", inv.Email))
				continue
			}
			res.Inserted++

			if inv.Decision == "" {
				continue
			}
			_, err = p.svc.Invitations.Respond(p.as(ctx, created.UserID), invitation.RespondInput{
				InvitationID: created.ID,
				Decision:     inv.Decision,
			})
			if err != nil {
				p.fail(ctx, &res, "respond", err, slog.String("email", inv.Email))
			}
		}
	}
	return res
}

func (p *Pipeline) runExperiences(ctx context.Context) PhaseResult {
	var res PhaseResult
	for i, j := range p.cfg.Journeys {
		journeyID, ok := p.journeys[i]
		if !ok {
			res.Skipped += len(j.Experiences)
			continue
		}
		ownerCtx := p.as(ctx, p.users[domain.NormalizeEmail(j.Owner)])

		for _, e := range j.Experiences {
			var location *string
			if e.Location != "" {
				location = &e.Location
			}
			proposed, err := p.svc.Suggestions.Propose(p.as(ctx, p.users[domain.NormalizeEmail(e.By)]), suggestion.ProposeInput{
				JourneyID: journeyID,
				Payload: suggestion.Payload{
					Day:         e.Day,
					Title:       e.Title,
					Description: e.Description,
					Location:    location,
				},
			})
			if err != nil {
				p.fail(ctx, &res, "propose", err, slog.String("title", e.Title))
				continue
			}
			res.Inserted++

			if e.Review == "" || proposed.ApprovalStatus != domain.ApprovalStatusPending {
				continue
			}
			var notes *string
			if e.Notes != "" {
				notes = &e.Notes
			}
			_, err = p.svc.Suggestions.Review(ownerCtx, suggestion.ReviewInput{
				JourneyID:    journeyID,
				SuggestionID: proposed.ID,
				Action:       e.Review,
				Notes:        notes,
			})
			if err != nil {
				p.fail(ctx, &res, "review", err, slog.String("title", e.Title))
			}
		}
	}
	return res
}

func (p *Pipeline) as(ctx context.Context, userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(ctx, userID)
}

func (p *Pipeline) fail(ctx context.Context, res *PhaseResult, op string, err error, attrs ...any) {
	res.Errors++
	p.log.WarnContext(ctx, op+" failed", append(attrs, slog.String("error", err.Error()))...)
}
