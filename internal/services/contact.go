package services

import (
	"context"
	"fmt"
	"log"

	"acc-portal/internal/domain/contact"
)

type ContactRepository interface {
	Create(ctx context.Context, m *contact.Message) error
	List(ctx context.Context) ([]contact.Message, error)
	MarkForwarded(ctx context.Context, id string) error
}

// Mailer delivers plain-text mail.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body, replyTo string) error
}

type ContactService struct {
	repo   ContactRepository
	mailer Mailer
	inbox  string
}

// NewContactService forwards messages to inbox when mailer is non-nil.
func NewContactService(repo ContactRepository, mailer Mailer, inbox string) *ContactService {
	return &ContactService{repo: repo, mailer: mailer, inbox: inbox}
}

// Submit stores a message and forwards it. A failed forward is logged and
// leaves the message stored with Forwarded=false.
func (s *ContactService) Submit(ctx context.Context, m contact.Message) (contact.Message, error) {
	m.ID = ""
	m.Forwarded = false
	m.Normalize()
	if err := m.Validate(); err != nil {
		return contact.Message{}, err
	}
	if err := s.repo.Create(ctx, &m); err != nil {
		return contact.Message{}, err
	}

	if s.mailer == nil || s.inbox == "" {
		return m, nil
	}
	subject := m.Subject
	if subject == "" {
		subject = "New contact message"
	}
	body := fmt.Sprintf("From: %s <%s>\n\n%s", m.Name, m.Email, m.Message)
	if err := s.mailer.Send(ctx, []string{s.inbox}, "[Contact] "+subject, body, m.Email); err != nil {
		log.Printf("⚠️ Failed to forward contact message %s: %v", m.ID, err)
		return m, nil
	}
	if err := s.repo.MarkForwarded(ctx, m.ID); err != nil {
		log.Printf("⚠️ Failed to mark contact message %s forwarded: %v", m.ID, err)
		return m, nil
	}
	m.Forwarded = true
	return m, nil
}

func (s *ContactService) List(ctx context.Context) ([]contact.Message, error) {
	return s.repo.List(ctx)
}
