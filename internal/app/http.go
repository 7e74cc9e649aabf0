package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"gahlan/api/internal/content"
	"gahlan/api/internal/search"
)

// Pinger reports storage reachability for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HTTPServer struct {
	service    *Service
	corsOrigin string
	pinger     Pinger
}

func NewHTTPServer(service *Service, corsOrigin string, pinger Pinger) *HTTPServer {
	return &HTTPServer{service: service, corsOrigin: corsOrigin, pinger: pinger}
}

func (s *HTTPServer) Handler() http.Handler {
	return s.withMiddleware(http.HandlerFunc(s.handle))
}

func (s *HTTPServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writeJSON(w, http.StatusNoContent, map[string]any{})
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/api/health" {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/api/ready" {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := "ready"
		statusCode := http.StatusOK
		checks := map[string]any{
			"storage": map[string]any{"status": "ok"},
		}
		if s.pinger != nil {
			if err := s.pinger.Ping(ctx); err != nil {
				status = "not_ready"
				statusCode = http.StatusServiceUnavailable
				checks["storage"] = map[string]any{"status": "error", "error": err.Error()}
			}
		}

		writeJSON(w, statusCode, map[string]any{
			"ok":     status == "ready",
			"status": status,
			"checks": checks,
		})
		return
	}

	// Public site
	if r.Method == http.MethodGet && r.URL.Path == "/api/site" {
		writeJSON(w, http.StatusOK, s.service.Site())
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/site/projects" {
		q := search.Query{
			Text:     strings.TrimSpace(r.URL.Query().Get("q")),
			Category: content.ProjectCategory(strings.TrimSpace(r.URL.Query().Get("category"))),
		}
		writeJSON(w, http.StatusOK, map[string]any{"projects": s.service.SearchProjects(q)})
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/contact" {
		var body struct {
			Name    string `json:"name"`
			Email   string `json:"email"`
			Message string `json:"message"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		lead, err := s.service.SubmitContact(r.Context(), body.Name, body.Email, body.Message)
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "lead": lead})
		return
	}

	// Login gate (no token required)
	if r.Method == http.MethodPost && r.URL.Path == "/api/admin/login/prompt" {
		writeJSON(w, http.StatusOK, s.service.Gate().RequestAccess())
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/admin/login" {
		var body struct {
			Password string `json:"password"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		token, status := s.service.Gate().Submit(body.Password)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"status": status})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"token": token, "status": status})
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/admin/login/cancel" {
		writeJSON(w, http.StatusOK, s.service.Gate().Cancel())
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/admin/state" {
		writeJSON(w, http.StatusOK, s.service.Gate().Snapshot())
		return
	}

	if strings.HasPrefix(r.URL.Path, "/api/admin/") {
		token, ok := s.requireAdmin(w, r)
		if !ok {
			return
		}
		s.handleAdmin(w, r, token)
		return
	}

	writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
}

func (s *HTTPServer) handleAdmin(w http.ResponseWriter, r *http.Request, token string) {
	if r.Method == http.MethodPost && r.URL.Path == "/api/admin/mode/toggle" {
		writeJSON(w, http.StatusOK, s.service.Gate().ToggleMode())
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/admin/logout" {
		writeJSON(w, http.StatusOK, s.service.Gate().Logout(token))
		return
	}

	if r.URL.Path == "/api/admin/projects" {
		if r.Method == http.MethodGet {
			writeJSON(w, http.StatusOK, map[string]any{"projects": s.service.Content().Projects()})
			return
		}
		if r.Method == http.MethodPost {
			var body AddProjectInput
			if err := decodeBody(r, &body); err != nil {
				writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
				return
			}
			project, err := s.service.AddProject(r.Context(), body)
			if err != nil {
				status, code, message, details := mapError(err)
				writeError(w, status, code, message, details)
				return
			}
			writeJSON(w, http.StatusCreated, map[string]any{"project": project})
			return
		}
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	parts := splitPath(r.URL.Path)

	if len(parts) == 4 && parts[2] == "projects" && r.Method == http.MethodDelete {
		if err := s.service.DeleteProject(r.Context(), parts[3]); err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/admin/leads" {
		writeJSON(w, http.StatusOK, map[string]any{"leads": s.service.Content().Leads()})
		return
	}

	if len(parts) == 4 && parts[2] == "leads" && r.Method == http.MethodDelete {
		if err := s.service.DeleteLead(r.Context(), parts[3]); err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	if len(parts) == 5 && parts[2] == "leads" && parts[4] == "status" && r.Method == http.MethodPut {
		var body struct {
			Status content.LeadStatus `json:"status"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		if err := s.service.UpdateLeadStatus(r.Context(), parts[3], body.Status); err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	if r.Method == http.MethodPut && r.URL.Path == "/api/admin/hero" {
		var body content.HeroContent
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		if err := s.service.UpdateHero(r.Context(), body); err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"hero": s.service.Content().Hero()})
		return
	}

	if r.Method == http.MethodPut && r.URL.Path == "/api/admin/services" {
		var body struct {
			Services []content.Service `json:"services"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		if err := s.service.UpdateServices(r.Context(), body.Services); err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"services": s.service.Content().Services()})
		return
	}

	if r.Method == http.MethodPut && r.URL.Path == "/api/admin/settings" {
		var body content.SiteSettings
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		if err := s.service.UpdateSettings(r.Context(), body); err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	if len(parts) == 4 && parts[2] == "assist" && r.Method == http.MethodPost {
		var body struct {
			Input    string `json:"input"`
			Platform string `json:"platform"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		output, err := s.service.Assist(r.Context(), parts[3], body.Input, body.Platform)
		if err != nil {
			var domainErr *DomainError
			if errors.As(err, &domainErr) {
				writeError(w, domainErr.Status, domainErr.Code, domainErr.Message, domainErr.Details)
				return
			}
			// Generation failures show the fixed fallback text; the cause
			// stays in the log.
			log.Printf("assist: %s failed: %v", parts[3], err)
			writeJSON(w, http.StatusOK, map[string]any{"ok": false, "output": s.service.AssistFallback()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "output": output})
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/admin/media" {
		s.handleMediaUpload(w, r)
		return
	}

	writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
}

func (s *HTTPServer) handleMediaUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "expected multipart form with an image file", nil)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "image file is required", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "could not read image", nil)
		return
	}

	contentType := header.Header.Get("Content-Type")
	url, err := s.service.StoreImage(r.Context(), contentType, data)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"url": url})
}

func (s *HTTPServer) requireAdmin(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := bearerToken(r)
	if token == "" || !s.service.Gate().Authorized(token) {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return "", false
	}
	return token, true
}

func (s *HTTPServer) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = randomRequestID()
		}
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		started := time.Now()
		writer := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		setCORSHeaders(writer.Header(), s.corsOrigin)
		writer.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(writer, r)

		log.Printf(`{"request_id":"%s","method":"%s","path":"%s","status":%d,"duration_ms":%d}`,
			requestID,
			r.Method,
			r.URL.Path,
			writer.status,
			time.Since(started).Milliseconds(),
		)
	})
}

type requestIDKey struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func randomRequestID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func setCORSHeaders(header http.Header, corsOrigin string) {
	header.Set("Access-Control-Allow-Origin", corsOrigin)
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
	header.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
	header.Set("Cache-Control", "no-store")
	header.Set("Content-Type", "application/json")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	response := map[string]any{
		"code":  code,
		"error": message,
	}
	if details != nil {
		response["details"] = details
	}
	writeJSON(w, status, response)
}

func decodeBody(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, http.ErrBodyReadAfterClose) {
			return nil
		}
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func mapError(err error) (status int, code, message string, details any) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Status, domainErr.Code, domainErr.Message, domainErr.Details
	}
	return http.StatusInternalServerError, "SERVER_ERROR", "Server error", nil
}
