package content

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"gahlan/api/internal/kv"
)

func newTestStore(t *testing.T) (*Store, *kv.MemoryStore) {
	t.Helper()
	backend := kv.NewMemoryStore()
	return NewStore(backend), backend
}

// loadProjects reads the persisted projects snapshot straight off the
// backend, bypassing the store.
func loadProjects(t *testing.T, backend *kv.MemoryStore) []Project {
	t.Helper()
	raw, ok, err := backend.Load(context.Background(), KeyProjects)
	if err != nil {
		t.Fatalf("backend load failed: %v", err)
	}
	if !ok {
		t.Fatal("expected projects snapshot to be persisted")
	}
	var out []Project
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("persisted snapshot does not parse: %v", err)
	}
	return out
}

func TestDefaultsBeforeHydration(t *testing.T) {
	store, _ := newTestStore(t)

	if got := len(store.Projects()); got != 3 {
		t.Errorf("expected 3 default projects, got %d", got)
	}
	if got := len(store.Services()); got != 3 {
		t.Errorf("expected 3 default services, got %d", got)
	}
	if got := len(store.Leads()); got != 0 {
		t.Errorf("expected no default leads, got %d", got)
	}
	if store.AdminPassword() != "gahlan2025" {
		t.Errorf("unexpected default admin password %q", store.AdminPassword())
	}
	if store.Hero().Tagline == "" {
		t.Error("expected a default hero tagline")
	}
}

func TestHydrateEmptyBackendDefaults(t *testing.T) {
	store, _ := newTestStore(t)

	report, err := store.Hydrate(context.Background())
	if err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	for _, key := range []string{KeyProjects, KeyLeads, KeyHero, KeyServices, KeySettings} {
		if report[key] != Defaulted {
			t.Errorf("expected %s to be Defaulted, got %v", key, report[key])
		}
	}
	if got := len(store.Projects()); got != 3 {
		t.Errorf("expected defaults to survive empty hydration, got %d projects", got)
	}
}

func TestHydratePicksUpPersistedState(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore()

	first := NewStore(backend)
	project := Project{ID: "99", Title: "حملة جديدة", Category: CategoryAdCampaigns, ImageURL: "x", Tools: []string{"Meta Ads Manager"}, Status: ProjectInProgress}
	if err := first.AddProject(ctx, project); err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}
	if err := first.UpdateSettings(ctx, SiteSettings{AdminPassword: "changed", Phone: "+20100"}); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}

	// A fresh store over the same backend sees the persisted state.
	second := NewStore(backend)
	report, err := second.Hydrate(ctx)
	if err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if report[KeyProjects] != Hydrated {
		t.Errorf("expected projects Hydrated, got %v", report[KeyProjects])
	}
	if report[KeySettings] != Hydrated {
		t.Errorf("expected settings Hydrated, got %v", report[KeySettings])
	}
	if report[KeyLeads] != Defaulted {
		t.Errorf("expected leads Defaulted, got %v", report[KeyLeads])
	}

	projects := second.Projects()
	if len(projects) != 4 || projects[0].ID != "99" {
		t.Fatalf("expected hydrated portfolio with 99 first, got %+v", projects)
	}
	if second.AdminPassword() != "changed" {
		t.Errorf("expected hydrated password, got %q", second.AdminPassword())
	}
}

func TestHydrateCorruptedSnapshot(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore()
	if err := backend.Save(ctx, KeyHero, []byte(`{not json`)); err != nil {
		t.Fatalf("backend save failed: %v", err)
	}

	store := NewStore(backend)
	report, err := store.Hydrate(ctx)
	if err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if report[KeyHero] != Corrupted {
		t.Errorf("expected hero Corrupted, got %v", report[KeyHero])
	}
	if store.Hero().Tagline != defaultHero().Tagline {
		t.Errorf("expected default hero after corrupted snapshot, got %+v", store.Hero())
	}
}

func TestAddProjectPrependsAndPersists(t *testing.T) {
	store, backend := newTestStore(t)
	ctx := context.Background()

	a := Project{ID: "10", Title: "a", Category: CategorySocialDesign, ImageURL: "u", Status: ProjectCompleted}
	b := Project{ID: "11", Title: "b", Category: CategorySocialDesign, ImageURL: "u", Status: ProjectCompleted}
	if err := store.AddProject(ctx, a); err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}
	if err := store.AddProject(ctx, b); err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}

	projects := store.Projects()
	if projects[0].ID != "11" || projects[1].ID != "10" {
		t.Errorf("expected newest first, got %s then %s", projects[0].ID, projects[1].ID)
	}

	persisted := loadProjects(t, backend)
	if !reflect.DeepEqual(persisted, projects) {
		t.Errorf("persisted snapshot diverged from memory:\n%+v\nvs\n%+v", persisted, projects)
	}
}

func TestDeleteProjectUnknownIDIsNoOp(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	before := store.Projects()
	if err := store.DeleteProject(ctx, "does-not-exist"); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}
	if !reflect.DeepEqual(store.Projects(), before) {
		t.Error("deleting an unknown id changed the portfolio")
	}
}

func TestDeleteProjectRemovesAndPersists(t *testing.T) {
	store, backend := newTestStore(t)
	ctx := context.Background()

	if err := store.DeleteProject(ctx, "2"); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}
	for _, p := range store.Projects() {
		if p.ID == "2" {
			t.Fatal("project 2 still present after delete")
		}
	}
	persisted := loadProjects(t, backend)
	if len(persisted) != 2 {
		t.Errorf("expected 2 persisted projects, got %d", len(persisted))
	}
}

func TestLeadLifecycle(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first := Lead{ID: "100", Name: "Sara", Email: "sara@example.com", Service: "طلب تواصل عام", Message: "Hi", Status: LeadNew, Date: "١/١/٢٠٢٦"}
	second := Lead{ID: "101", Name: "Omar", Email: "omar@example.com", Service: "طلب تواصل عام", Message: "Hello", Status: LeadNew, Date: "٢/١/٢٠٢٦"}
	if err := store.AddLead(ctx, first); err != nil {
		t.Fatalf("AddLead failed: %v", err)
	}
	if err := store.AddLead(ctx, second); err != nil {
		t.Fatalf("AddLead failed: %v", err)
	}

	leads := store.Leads()
	if len(leads) != 2 || leads[0].ID != "101" {
		t.Fatalf("expected newest lead first, got %+v", leads)
	}

	if err := store.UpdateLeadStatus(ctx, "100", LeadAgreed); err != nil {
		t.Fatalf("UpdateLeadStatus failed: %v", err)
	}
	leads = store.Leads()
	if leads[1].Status != LeadAgreed {
		t.Errorf("expected status %s, got %s", LeadAgreed, leads[1].Status)
	}
	// Only the status field changes.
	if leads[1].Name != "Sara" || leads[1].Message != "Hi" || leads[1].Date != "١/١/٢٠٢٦" {
		t.Errorf("status update touched other fields: %+v", leads[1])
	}

	if err := store.DeleteLead(ctx, "101"); err != nil {
		t.Fatalf("DeleteLead failed: %v", err)
	}
	if got := len(store.Leads()); got != 1 {
		t.Errorf("expected 1 lead after delete, got %d", got)
	}

	// Unknown ids are silent no-ops.
	if err := store.UpdateLeadStatus(ctx, "nope", LeadRejected); err != nil {
		t.Fatalf("UpdateLeadStatus failed: %v", err)
	}
	if err := store.DeleteLead(ctx, "nope"); err != nil {
		t.Fatalf("DeleteLead failed: %v", err)
	}
	if got := len(store.Leads()); got != 1 {
		t.Errorf("no-op mutations changed the lead list, got %d leads", got)
	}
}

func TestUpdateHeroOverwrites(t *testing.T) {
	store, backend := newTestStore(t)
	ctx := context.Background()

	hero := HeroContent{Tagline: "new", Title: "t", Description: "d", ImageURL: "img"}
	if err := store.UpdateHero(ctx, hero); err != nil {
		t.Fatalf("UpdateHero failed: %v", err)
	}
	if store.Hero() != hero {
		t.Errorf("expected full overwrite, got %+v", store.Hero())
	}

	raw, ok, err := backend.Load(ctx, KeyHero)
	if err != nil || !ok {
		t.Fatalf("backend load failed: ok=%v err=%v", ok, err)
	}
	var persisted HeroContent
	if err := json.Unmarshal(raw, &persisted); err != nil {
		t.Fatalf("persisted hero does not parse: %v", err)
	}
	if persisted != hero {
		t.Errorf("persisted hero diverged: %+v", persisted)
	}
}

func TestUpdateSettingsAppliesToNextPasswordLookup(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	settings := store.Settings()
	settings.AdminPassword = "rotated"
	if err := store.UpdateSettings(ctx, settings); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if store.AdminPassword() != "rotated" {
		t.Errorf("expected live password lookup to see the new value, got %q", store.AdminPassword())
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	store, _ := newTestStore(t)

	projects := store.Projects()
	projects[0].Title = "mutated"
	if store.Projects()[0].Title == "mutated" {
		t.Error("Projects returned a slice aliased to internal state")
	}

	services := store.Services()
	services[0].Title = "mutated"
	if store.Services()[0].Title == "mutated" {
		t.Error("Services returned a slice aliased to internal state")
	}
}
