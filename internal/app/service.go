package app

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"gahlan/api/internal/assist"
	"gahlan/api/internal/config"
	"gahlan/api/internal/content"
	"gahlan/api/internal/email"
	"gahlan/api/internal/gate"
	"gahlan/api/internal/search"
	"gahlan/api/internal/util"
)

// ContactServiceLabel is stamped on every lead coming from the public
// contact form.
const ContactServiceLabel = "طلب تواصل عام"

// Validation messages shown in the dashboard, carried over from the site.
const (
	msgProjectIncomplete = "يرجى إكمال بيانات المشروع الأساسية (العنوان والصورة)"
	msgAssistInputFirst  = "يرجى إدخال وصف أو فكرة أولاً"
)

// MediaStore stores an uploaded image and returns its URL.
type MediaStore interface {
	Store(ctx context.Context, contentType string, data []byte) (string, error)
}

// Service ties the domain store, login gate, and collaborators together.
type Service struct {
	cfg     config.Config
	content *content.Store
	gate    *gate.Gate
	assist  *assist.Service
	search  *search.Service
	media   MediaStore
	email   *email.Service
}

func New(cfg config.Config, store *content.Store, assistSvc *assist.Service, searchSvc *search.Service, mediaSvc MediaStore, emailSvc *email.Service) *Service {
	s := &Service{
		cfg:     cfg,
		content: store,
		assist:  assistSvc,
		search:  searchSvc,
		media:   mediaSvc,
		email:   emailSvc,
	}
	s.gate = gate.New(store.AdminPassword, cfg.LoginErrorTTL)
	return s
}

// Bootstrap hydrates the store from persisted state and seeds the search
// index. Defaults already in memory mean a failed hydration still leaves a
// servable site.
func (s *Service) Bootstrap(ctx context.Context) error {
	report, err := s.content.Hydrate(ctx)
	if err != nil {
		return err
	}
	for key, outcome := range report {
		switch outcome {
		case content.Hydrated:
			log.Printf("content: %s hydrated from storage", key)
		case content.Defaulted:
			log.Printf("content: %s using compiled-in default", key)
		case content.Corrupted:
			log.Printf("content: %s snapshot corrupted, default restored", key)
		}
	}
	s.search.Reindex()
	return nil
}

// Content exposes the domain store for read access.
func (s *Service) Content() *content.Store {
	return s.content
}

// Gate exposes the login gate.
func (s *Service) Gate() *gate.Gate {
	return s.gate
}

// PublicSettings is SiteSettings with the comparison secret withheld.
type PublicSettings struct {
	TiktokURL   string `json:"tiktokUrl"`
	FacebookURL string `json:"facebookUrl"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

// Site is everything the public landing page renders.
type Site struct {
	Hero     content.HeroContent `json:"hero"`
	Services []content.Service   `json:"services"`
	Projects []content.Project   `json:"projects"`
	Settings PublicSettings      `json:"settings"`
}

// Site assembles the public view of the store.
func (s *Service) Site() Site {
	settings := s.content.Settings()
	return Site{
		Hero:     s.content.Hero(),
		Services: s.content.Services(),
		Projects: s.content.Projects(),
		Settings: PublicSettings{
			TiktokURL:   settings.TiktokURL,
			FacebookURL: settings.FacebookURL,
			Phone:       settings.Phone,
			Email:       settings.Email,
		},
	}
}

// SearchProjects filters the public portfolio.
func (s *Service) SearchProjects(q search.Query) []content.Project {
	return s.search.Search(q)
}

// SubmitContact turns a contact-form submission into a new lead at the
// head of the list and notifies the owner when SMTP is configured.
func (s *Service) SubmitContact(ctx context.Context, name, emailAddr, message string) (content.Lead, error) {
	name = strings.TrimSpace(name)
	emailAddr = strings.TrimSpace(emailAddr)
	message = strings.TrimSpace(message)
	if name == "" || emailAddr == "" || message == "" {
		return content.Lead{}, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name, email and message are required", nil)
	}

	lead := content.Lead{
		ID:      util.NewID(),
		Name:    name,
		Email:   emailAddr,
		Service: ContactServiceLabel,
		Message: message,
		Status:  content.LeadNew,
		Date:    arabicDate(time.Now()),
	}
	if err := s.content.AddLead(ctx, lead); err != nil {
		log.Printf("contact: lead %s saved in memory, write-through failed: %v", lead.ID, err)
	}

	if s.email != nil && s.email.IsConfigured() {
		// Fire-and-forget: a notification failure never blocks the lead.
		go func(l content.Lead) {
			if err := s.email.NotifyLead(l); err != nil {
				log.Printf("contact: notify owner about lead %s: %v", l.ID, err)
			}
		}(lead)
	}

	return lead, nil
}

// AddProjectInput is the dashboard's new-project form.
type AddProjectInput struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Category    content.ProjectCategory `json:"category"`
	ImageURL    string                  `json:"imageUrl"`
	Tools       []string                `json:"tools"`
	Status      content.ProjectStatus   `json:"status"`
	ClientName  string                  `json:"clientName"`
	Budget      string                  `json:"budget"`
	Deadline    string                  `json:"deadline"`
	Challenge   string                  `json:"challenge"`
	Solution    string                  `json:"solution"`
	Results     string                  `json:"results"`
}

// AddProject validates and prepends a portfolio project. Title and image
// are required; the rest falls back the way the dashboard always has.
func (s *Service) AddProject(ctx context.Context, input AddProjectInput) (content.Project, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.ImageURL) == "" {
		return content.Project{}, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", msgProjectIncomplete, nil)
	}

	category := input.Category
	if !content.ValidCategory(category) {
		category = content.CategorySocialDesign
	}
	tools := input.Tools
	if len(tools) == 0 {
		tools = []string{"Photoshop"}
	}
	status := input.Status
	if status == "" {
		status = content.ProjectCompleted
	}

	project := content.Project{
		ID:          util.NewID(),
		Title:       input.Title,
		Description: input.Description,
		Category:    category,
		ImageURL:    input.ImageURL,
		Tools:       tools,
		Status:      status,
		ClientName:  input.ClientName,
		Budget:      input.Budget,
		Deadline:    input.Deadline,
		Challenge:   input.Challenge,
		Solution:    input.Solution,
		Results:     input.Results,
	}
	if err := s.content.AddProject(ctx, project); err != nil {
		log.Printf("projects: %s saved in memory, write-through failed: %v", project.ID, err)
	}
	s.search.IndexProject(project)
	return project, nil
}

// DeleteProject removes a project; unknown ids are a silent no-op.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	if err := s.content.DeleteProject(ctx, id); err != nil {
		log.Printf("projects: delete %s write-through failed: %v", id, err)
	}
	s.search.DeleteProject(id)
	return nil
}

// DeleteLead removes a lead; unknown ids are a silent no-op.
func (s *Service) DeleteLead(ctx context.Context, id string) error {
	if err := s.content.DeleteLead(ctx, id); err != nil {
		log.Printf("leads: delete %s write-through failed: %v", id, err)
	}
	return nil
}

// UpdateLeadStatus moves a lead through the pipeline. Only the status
// field changes.
func (s *Service) UpdateLeadStatus(ctx context.Context, id string, status content.LeadStatus) error {
	if !content.ValidLeadStatus(status) {
		return domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "unknown lead status", nil)
	}
	if err := s.content.UpdateLeadStatus(ctx, id, status); err != nil {
		log.Printf("leads: status of %s write-through failed: %v", id, err)
	}
	return nil
}

// UpdateHero overwrites the hero record.
func (s *Service) UpdateHero(ctx context.Context, hero content.HeroContent) error {
	if err := s.content.UpdateHero(ctx, hero); err != nil {
		log.Printf("hero: write-through failed: %v", err)
	}
	return nil
}

// UpdateServices overwrites the three service cards. The card set is fixed:
// the incoming ids must be exactly the current ones.
func (s *Service) UpdateServices(ctx context.Context, list []content.Service) error {
	current := s.content.Services()
	if len(list) != len(current) {
		return domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "service cards can be edited, not added or removed", nil)
	}
	known := make(map[string]bool, len(current))
	for _, svc := range current {
		known[svc.ID] = true
	}
	for _, svc := range list {
		if !known[svc.ID] {
			return domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "unknown service card id "+svc.ID, nil)
		}
	}
	if err := s.content.UpdateServices(ctx, list); err != nil {
		log.Printf("services: write-through failed: %v", err)
	}
	return nil
}

// UpdateSettings overwrites the site settings.
func (s *Service) UpdateSettings(ctx context.Context, settings content.SiteSettings) error {
	if strings.TrimSpace(settings.AdminPassword) == "" {
		return domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "adminPassword must not be empty", nil)
	}
	if err := s.content.UpdateSettings(ctx, settings); err != nil {
		log.Printf("settings: write-through failed: %v", err)
	}
	return nil
}

// Assist runs one of the writing tools. Failures come back as errors; the
// HTTP layer shows the fixed fallback message instead of the cause.
func (s *Service) Assist(ctx context.Context, action, input, platform string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", msgAssistInputFirst, nil)
	}
	if platform == "" {
		platform = "Social Media"
	}
	switch action {
	case "script":
		return s.assist.Script(ctx, input, platform)
	case "hooks":
		return s.assist.Hooks(ctx, input)
	case "brief":
		return s.assist.Brief(ctx, input)
	}
	return "", domainError(http.StatusNotFound, "NOT_FOUND", "unknown assist action", nil)
}

// AssistFallback is the text shown when generation fails.
func (s *Service) AssistFallback() string {
	return assist.FallbackMessage
}

// StoreImage stores an uploaded image and returns its URL.
func (s *Service) StoreImage(ctx context.Context, contentType string, data []byte) (string, error) {
	url, err := s.media.Store(ctx, contentType, data)
	if err != nil {
		return "", domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error(), nil)
	}
	return url, nil
}

var arabicDigits = [10]rune{'٠', '١', '٢', '٣', '٤', '٥', '٦', '٧', '٨', '٩'}

// arabicDate renders t the way ar-EG locale dates have always appeared on
// stored leads: d/m/yyyy in Arabic-Indic digits.
func arabicDate(t time.Time) string {
	western := t.Format("2/1/2006")
	out := make([]rune, 0, len(western))
	for _, r := range western {
		if r >= '0' && r <= '9' {
			out = append(out, arabicDigits[r-'0'])
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
