package email

import (
	"strings"
	"testing"

	"gahlan/api/internal/content"
)

func TestIsConfigured(t *testing.T) {
	cases := []struct {
		name   string
		config Config
		want   bool
	}{
		{"empty", Config{}, false},
		{"no recipient", Config{Host: "smtp.example.com", Port: "587", From: "noreply@example.com"}, false},
		{"no host", Config{Port: "587", From: "noreply@example.com", NotifyTo: "owner@example.com"}, false},
		{"complete", Config{Host: "smtp.example.com", Port: "587", From: "noreply@example.com", NotifyTo: "owner@example.com"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewService(tc.config).IsConfigured(); got != tc.want {
				t.Errorf("IsConfigured = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLeadBody(t *testing.T) {
	lead := content.Lead{
		ID:      "100",
		Name:    "Sara",
		Email:   "sara@example.com",
		Service: "طلب تواصل عام",
		Message: "أريد تصميم هوية",
		Status:  content.LeadNew,
		Date:    "١/١/٢٠٢٦",
	}
	body := leadBody(lead)
	for _, want := range []string{"Sara", "sara@example.com", "طلب تواصل عام", "١/١/٢٠٢٦", "أريد تصميم هوية"} {
		if !strings.Contains(body, want) {
			t.Errorf("lead body missing %q:\n%s", want, body)
		}
	}
}

func TestSendUnconfigured(t *testing.T) {
	svc := NewService(Config{})
	if err := svc.NotifyLead(content.Lead{Name: "x"}); err == nil {
		t.Fatal("expected error when SMTP is not configured")
	}
}
