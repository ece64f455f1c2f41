package seeder

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

// Config is a demo dataset: the travellers to create and the journeys they
// plan together.
type Config struct {
	Users    []UserSeed    `yaml:"users"`
	Journeys []JourneySeed `yaml:"journeys"`
	DryRun   bool          `yaml:"dry_run" env:"SEEDER_DRY_RUN"`
}

type UserSeed struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
}

// JourneySeed is created by Owner. Invitees are invited and answer with
// their Decision; an empty decision leaves the invitation pending.
type JourneySeed struct {
	Title       string           `yaml:"title"`
	Owner       string           `yaml:"owner"`
	Invitees    []InviteeSeed    `yaml:"invitees"`
	Experiences []ExperienceSeed `yaml:"experiences"`
}

type InviteeSeed struct {
	Email    string                    `yaml:"email"`
	Message  string                    `yaml:"message"`
	Decision domain.InvitationDecision `yaml:"decision"`
}

// ExperienceSeed is proposed by By. A contributor's proposal is reviewed
// by the owner when Review is set.
type ExperienceSeed struct {
	By          string              `yaml:"by"`
	Day         int                 `yaml:"day"`
	Title       string              `yaml:"title"`
	Description string              `yaml:"description"`
	Location    string              `yaml:"location"`
	Review      domain.ReviewAction `yaml:"review"`
	Notes       string              `yaml:"notes"`
}

// LoadConfig reads a dataset from a YAML file. An empty path returns the
// built-in demo dataset with env overrides applied.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		cfg := DefaultConfig()
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("seeder config: read env: %w", err)
		}
		return cfg, cfg.Validate()
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("seeder config: file %s not found", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("seeder config: read %s: %w", path, err)
	}
	return &cfg, cfg.Validate()
}

// Validate checks that every referenced traveller is declared and that
// decisions and review actions are known.
func (c *Config) Validate() error {
	known := make(map[string]bool, len(c.Users))
	for _, u := range c.Users {
		email := domain.NormalizeEmail(u.Email)
		if email == "" {
			return fmt.Errorf("seeder config: user with empty email")
		}
		known[email] = true
	}

	for _, j := range c.Journeys {
		if !known[domain.NormalizeEmail(j.Owner)] {
			return fmt.Errorf("seeder config: journey %q: unknown owner %q", j.Title, j.Owner)
		}
		for _, inv := range j.Invitees {
			if !known[domain.NormalizeEmail(inv.Email)] {
				return fmt.Errorf("seeder config: journey %q: unknown invitee %q", j.Title, inv.Email)
			}
			if inv.Decision != "" && !inv.Decision.IsValid() {
				return fmt.Errorf("seeder config: journey %q: invalid decision %q", j.Title, inv.Decision)
			}
		}
		for _, e := range j.Experiences {
			if !known[domain.NormalizeEmail(e.By)] {
				return fmt.Errorf("seeder config: journey %q: unknown suggester %q", j.Title, e.By)
			}
			if e.Review != "" && !e.Review.IsValid() {
				return fmt.Errorf("seeder config: journey %q: invalid review %q", j.Title, e.Review)
			}
		}
	}
	return nil
}

// DefaultConfig is a small dataset covering every invitation and review
// state.
func DefaultConfig() *Config {
	return &Config{
		Users: []UserSeed{
			{Email: "ana@example.com", Name: "Ana"},
			{Email: "bo@example.com", Name: "Bo"},
			{Email: "chen@example.com", Name: "Chen"},
			{Email: "dara@example.com", Name: "Dara"},
		},
		Journeys: []JourneySeed{
			{
				Title: "Lisbon long weekend",
				Owner: "ana@example.com",
				Invitees: []InviteeSeed{
					{Email: "bo@example.com", Message: "Come along!", Decision: domain.DecisionAccept},
					{Email: "chen@example.com", Decision: domain.DecisionAccept},
					{Email: "dara@example.com", Decision: domain.DecisionDecline},
				},
				Experiences: []ExperienceSeed{
					{By: "ana@example.com", Day: 1, Title: "Tram 28", Location: "Martim Moniz"},
					{By: "bo@example.com", Day: 2, Title: "Museum Visit", Location: "MAAT", Review: domain.ReviewApprove, Notes: "Booked for 10am"},
					{By: "chen@example.com", Day: 2, Title: "Surf lesson", Review: domain.ReviewReject, Notes: "Too far"},
					{By: "bo@example.com", Day: 3, Title: "Sintra day trip"},
				},
			},
			{
				Title: "Kyoto in autumn",
				Owner: "chen@example.com",
				Invitees: []InviteeSeed{
					{Email: "ana@example.com", Message: "Maple season"},
				},
				Experiences: []ExperienceSeed{
					{By: "chen@example.com", Day: 1, Title: "Fushimi Inari at dawn"},
				},
			},
		},
	}
}
