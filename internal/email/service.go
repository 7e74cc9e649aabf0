// Package email notifies the site owner about new contact leads via SMTP.
package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"gahlan/api/internal/content"
)

// Config holds SMTP configuration.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
	// NotifyTo receives the new-lead notifications.
	NotifyTo string
}

// Service sends owner notifications.
type Service struct {
	config Config
	server string
	auth   smtp.Auth
}

// NewService creates the email service.
func NewService(config Config) *Service {
	auth := smtp.PlainAuth("", config.Username, config.Password, config.Host)
	return &Service{
		config: config,
		server: config.Host + ":" + config.Port,
		auth:   auth,
	}
}

// IsConfigured returns true when SMTP and a recipient are set up.
func (s *Service) IsConfigured() bool {
	return s.config.Host != "" && s.config.Port != "" && s.config.From != "" && s.config.NotifyTo != ""
}

// NotifyLead emails the owner about a new contact-form lead.
func (s *Service) NotifyLead(lead content.Lead) error {
	subject := fmt.Sprintf("New lead: %s", lead.Name)
	body := leadBody(lead)
	return s.send([]string{s.config.NotifyTo}, subject, body)
}

func leadBody(lead content.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\r\n", lead.Name)
	fmt.Fprintf(&b, "Email: %s\r\n", lead.Email)
	fmt.Fprintf(&b, "Service: %s\r\n", lead.Service)
	fmt.Fprintf(&b, "Date: %s\r\n", lead.Date)
	fmt.Fprintf(&b, "\r\n%s\r\n", lead.Message)
	return b.String()
}

func (s *Service) send(to []string, subject, body string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email not configured")
	}

	from := s.config.From
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.From)
	}

	msg := []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"From: %s\r\n"+
			"Subject: %s\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		strings.Join(to, ", "),
		from,
		subject,
		body,
	))

	return smtp.SendMail(s.server, s.auth, s.config.From, to, msg)
}
