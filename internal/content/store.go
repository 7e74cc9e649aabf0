package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"gahlan/api/internal/kv"
)

// Persisted state layout: one key per collection.
const (
	KeyProjects = "projects"
	KeyLeads    = "leads"
	KeyHero     = "hero"
	KeyServices = "services"
	KeySettings = "settings"
)

// HydrationOutcome tells how a collection was seeded at startup.
type HydrationOutcome int

const (
	// Hydrated means the persisted snapshot was loaded.
	Hydrated HydrationOutcome = iota
	// Defaulted means no snapshot existed and the compiled-in default was used.
	Defaulted
	// Corrupted means a snapshot existed but did not parse; the default was
	// used in its place.
	Corrupted
)

// HydrationReport maps collection key to its startup outcome.
type HydrationReport map[string]HydrationOutcome

// Store owns the five state collections and writes every mutation through
// to the persistence adapter. Construct one per process; it is not an
// ambient singleton.
type Store struct {
	mu sync.RWMutex
	kv kv.Store

	projects []Project
	leads    []Lead
	hero     HeroContent
	services []Service
	settings SiteSettings
}

// NewStore builds a store holding the compiled-in defaults. Call Hydrate
// before serving to pick up persisted state.
func NewStore(store kv.Store) *Store {
	return &Store{
		kv:       store,
		projects: defaultProjects(),
		leads:    []Lead{},
		hero:     defaultHero(),
		services: defaultServices(),
		settings: defaultSettings(),
	}
}

// Hydrate loads each collection from the persistence adapter. The five
// loads are independent: a missing key keeps the default, an unparseable
// value keeps the default and is reported as Corrupted. Adapter read
// errors abort, so a flaky backend is distinguishable from an empty one.
func (s *Store) Hydrate(ctx context.Context) (HydrationReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := HydrationReport{}

	var projects []Project
	outcome, err := hydrate(ctx, s.kv, KeyProjects, &projects)
	if err != nil {
		return nil, err
	}
	if outcome == Hydrated {
		s.projects = projects
	}
	report[KeyProjects] = outcome

	var leads []Lead
	outcome, err = hydrate(ctx, s.kv, KeyLeads, &leads)
	if err != nil {
		return nil, err
	}
	if outcome == Hydrated {
		s.leads = leads
	}
	report[KeyLeads] = outcome

	var hero HeroContent
	outcome, err = hydrate(ctx, s.kv, KeyHero, &hero)
	if err != nil {
		return nil, err
	}
	if outcome == Hydrated {
		s.hero = hero
	}
	report[KeyHero] = outcome

	var services []Service
	outcome, err = hydrate(ctx, s.kv, KeyServices, &services)
	if err != nil {
		return nil, err
	}
	if outcome == Hydrated {
		s.services = services
	}
	report[KeyServices] = outcome

	var settings SiteSettings
	outcome, err = hydrate(ctx, s.kv, KeySettings, &settings)
	if err != nil {
		return nil, err
	}
	if outcome == Hydrated {
		s.settings = settings
	}
	report[KeySettings] = outcome

	return report, nil
}

func hydrate(ctx context.Context, store kv.Store, key string, target any) (HydrationOutcome, error) {
	raw, ok, err := store.Load(ctx, key)
	if err != nil {
		return Defaulted, fmt.Errorf("hydrate %s: %w", key, err)
	}
	if !ok {
		return Defaulted, nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		log.Printf("content: corrupted snapshot for %s, falling back to default: %v", key, err)
		return Corrupted, nil
	}
	return Hydrated, nil
}

// persist writes the freshly computed value through. The in-memory value
// stays authoritative even when the write fails; the failure is logged and
// returned so callers can decide to surface it.
func (s *Store) persist(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.kv.Save(ctx, key, raw); err != nil {
		log.Printf("content: write-through for %s failed: %v", key, err)
		return err
	}
	return nil
}

// Projects returns the portfolio, newest first.
func (s *Store) Projects() []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// AddProject prepends p so the newest entry is always first.
func (s *Store) AddProject(ctx context.Context, p Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := make([]Project, 0, len(s.projects)+1)
	updated = append(updated, p)
	updated = append(updated, s.projects...)
	s.projects = updated
	return s.persist(ctx, KeyProjects, updated)
}

// DeleteProject removes the project with the given id. Deleting an unknown
// id is a silent no-op.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		if p.ID != id {
			updated = append(updated, p)
		}
	}
	s.projects = updated
	return s.persist(ctx, KeyProjects, updated)
}

// Leads returns the contact leads, newest first.
func (s *Store) Leads() []Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Lead, len(s.leads))
	copy(out, s.leads)
	return out
}

// AddLead prepends l.
func (s *Store) AddLead(ctx context.Context, l Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := make([]Lead, 0, len(s.leads)+1)
	updated = append(updated, l)
	updated = append(updated, s.leads...)
	s.leads = updated
	return s.persist(ctx, KeyLeads, updated)
}

// DeleteLead removes the lead with the given id; unknown ids are a no-op.
func (s *Store) DeleteLead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := make([]Lead, 0, len(s.leads))
	for _, l := range s.leads {
		if l.ID != id {
			updated = append(updated, l)
		}
	}
	s.leads = updated
	return s.persist(ctx, KeyLeads, updated)
}

// UpdateLeadStatus replaces only the status field of the matching lead.
// Any status is reachable from any other; unknown ids are a no-op.
func (s *Store) UpdateLeadStatus(ctx context.Context, id string, status LeadStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := make([]Lead, len(s.leads))
	for i, l := range s.leads {
		if l.ID == id {
			l.Status = status
		}
		updated[i] = l
	}
	s.leads = updated
	return s.persist(ctx, KeyLeads, updated)
}

// Hero returns the current hero record.
func (s *Store) Hero() HeroContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hero
}

// UpdateHero overwrites the hero record. No partial merge: h is the
// complete replacement value.
func (s *Store) UpdateHero(ctx context.Context, h HeroContent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hero = h
	return s.persist(ctx, KeyHero, h)
}

// Services returns the fixed service cards.
func (s *Store) Services() []Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Service, len(s.services))
	copy(out, s.services)
	return out
}

// UpdateServices overwrites the full service list.
func (s *Store) UpdateServices(ctx context.Context, list []Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := make([]Service, len(list))
	copy(updated, list)
	s.services = updated
	return s.persist(ctx, KeyServices, updated)
}

// Settings returns the current site settings, admin password included.
func (s *Store) Settings() SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings overwrites the settings record. A changed admin password
// applies to the next login attempt; live admin sessions stay valid.
func (s *Store) UpdateSettings(ctx context.Context, settings SiteSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return s.persist(ctx, KeySettings, settings)
}

// AdminPassword is the live credential lookup used by the login gate.
func (s *Store) AdminPassword() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.AdminPassword
}
