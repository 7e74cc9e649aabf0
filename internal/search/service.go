// Package search filters the public portfolio, via Meilisearch when
// available and an in-memory scan otherwise.
package search

import (
	"log"
	"strings"

	"gahlan/api/internal/content"
)

// Query is a portfolio search: free text plus an optional category filter.
type Query struct {
	Text     string
	Category content.ProjectCategory
	Limit    int
}

// ProjectSource supplies the current portfolio for the fallback scan.
type ProjectSource interface {
	Projects() []content.Project
}

// Service is the facade that tries Meilisearch first and falls back to an
// in-memory scan over the store.
type Service struct {
	meili  *Meili
	source ProjectSource
}

// NewService creates a search service. meili may be nil when Meilisearch
// is not configured.
func NewService(meili *Meili, source ProjectSource) *Service {
	return &Service{meili: meili, source: source}
}

// Search returns matching projects, newest first, preserving store order.
func (s *Service) Search(q Query) []content.Project {
	if s.meili != nil && s.meili.Healthy() {
		results, err := s.meili.Search(q)
		if err == nil {
			return results
		}
		log.Printf("search: meilisearch error, falling back to scan: %v", err)
	}
	return s.scan(q)
}

func (s *Service) scan(q Query) []content.Project {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	matched := make([]content.Project, 0)
	for _, p := range s.source.Projects() {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if text != "" && !projectMatches(p, text) {
			continue
		}
		matched = append(matched, p)
		if q.Limit > 0 && len(matched) >= q.Limit {
			break
		}
	}
	return matched
}

func projectMatches(p content.Project, text string) bool {
	if strings.Contains(strings.ToLower(p.Title), text) ||
		strings.Contains(strings.ToLower(p.Description), text) ||
		strings.Contains(strings.ToLower(p.ClientName), text) {
		return true
	}
	for _, tool := range p.Tools {
		if strings.Contains(strings.ToLower(tool), text) {
			return true
		}
	}
	return false
}

// IndexProject pushes a new project to Meilisearch, fire-and-forget.
func (s *Service) IndexProject(p content.Project) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.IndexProject(p); err != nil {
			log.Printf("search: index project %s: %v", p.ID, err)
		}
	}()
}

// DeleteProject removes a project from Meilisearch, fire-and-forget.
func (s *Service) DeleteProject(id string) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.DeleteProject(id); err != nil {
			log.Printf("search: delete project %s: %v", id, err)
		}
	}()
}

// Reindex pushes the whole portfolio to Meilisearch. Called at startup so
// the index reflects hydrated state.
func (s *Service) Reindex() {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	projects := s.source.Projects()
	if err := s.meili.IndexProjects(projects); err != nil {
		log.Printf("search: reindex projects: %v", err)
	}
}
