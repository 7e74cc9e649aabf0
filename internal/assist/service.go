// Package assist wraps the Gemini text-generation API for the dashboard's
// writing tools: video scripts, ad hooks, and creative briefs.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// FallbackMessage is shown in the output slot whenever generation fails.
// The underlying cause is logged, never surfaced to the dashboard.
const FallbackMessage = "حدث خطأ أثناء التوليد، يرجى المحاولة مرة أخرى."

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("assist: no API key configured")

// Service calls the Gemini generateContent endpoint. Calls are independent
// and never cancel each other; a superseded result is simply overwritten
// by whoever writes the output slot last.
type Service struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewService builds the client. An empty apiKey yields a service whose
// calls fail with ErrNotConfigured.
func NewService(apiKey, model string) *Service {
	return &Service{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// NewServiceWithBaseURL points the client at a different endpoint. Tests
// use this with a local fake.
func NewServiceWithBaseURL(apiKey, model, baseURL string) *Service {
	s := NewService(apiKey, model)
	s.baseURL = strings.TrimRight(baseURL, "/")
	return s
}

// Configured reports whether an API key is present.
func (s *Service) Configured() bool {
	return s.apiKey != ""
}

// Script writes a video script for the given topic and platform.
func (s *Service) Script(ctx context.Context, topic, platform string) (string, error) {
	prompt := fmt.Sprintf(`اكتب سيناريو فيديو احترافي لمنصة %s حول: "%s". السيناريو يجب أن يشمل وصف المشاهد البصرية والنص الصوتي.`, platform, topic)
	return s.generate(ctx, prompt)
}

// Hooks writes five varied ad hooks for a product.
func (s *Service) Hooks(ctx context.Context, product string) (string, error) {
	prompt := fmt.Sprintf(`اكتب 5 خطافات (Hooks) إعلانية قوية ومختلفة لمنتج: "%s". اجعلها متنوعة (نفسية، قائمة على الفضول، قائمة على النتيجة، قائمة على الألم). اللغة: عربية جذابة للسوشيال ميديا.`, product)
	return s.generate(ctx, prompt)
}

// Brief turns a raw idea into a structured creative brief.
func (s *Service) Brief(ctx context.Context, idea string) (string, error) {
	prompt := fmt.Sprintf(`قم بتحويل الفكرة التالية إلى "Creative Brief" احترافي: "%s". يجب أن يتضمن: 1. أهداف الحملة. 2. الرسالة الأساسية. 3. الأسلوب البصري المقترح (Tone & Style). 4. المنصات المستهدفة. اللغة: العربية الرصينة.`, idea)
	return s.generate(ctx, prompt)
}

type part struct {
	Text string `json:"text"`
}

type turn struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []turn `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content turn `json:"content"`
	} `json:"candidates"`
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []turn{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generate: status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generate: empty response")
	}

	var out strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		out.WriteString(part.Text)
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", fmt.Errorf("generate: empty text")
	}
	return text, nil
}
