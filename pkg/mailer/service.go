package mailer

import (
	"context"
	"errors"

	"tourbook/pkg/helpers"
	"tourbook/pkg/mailer/templates"
)

// Service is the outbound-email collaborator. Welcome mail is enqueued on
// RabbitMQ and delivered by the email worker; password-reset mail is sent
// synchronously so the caller can roll back the stored reset secret when
// delivery fails.
type Service struct {
	MG      *Mailgun
	Pub     *helpers.RabbitPublisher
	Enabled bool
}

func NewService(mg *Mailgun, pub *helpers.RabbitPublisher, enabled bool) *Service {
	return &Service{MG: mg, Pub: pub, Enabled: enabled}
}

// SendWelcome enqueues the signup welcome email.
func (s *Service) SendWelcome(ctx context.Context, to, name, accountURL string) error {
	if !s.Enabled {
		return nil
	}
	job := EmailJob{
		To:       to,
		Template: TemplateWelcome,
		Data:     map[string]any{"Name": name, "URL": accountURL},
	}
	if s.Pub != nil {
		return s.Pub.PublishJSON(ctx, job)
	}
	return s.deliver(ctx, job)
}

// SendPasswordReset delivers the reset link immediately; no queue hop, the
// caller needs the failure.
func (s *Service) SendPasswordReset(ctx context.Context, to, name, resetURL string) error {
	if !s.Enabled {
		return nil
	}
	return s.deliver(ctx, EmailJob{
		To:       to,
		Template: TemplatePasswordReset,
		Data:     map[string]any{"Name": name, "ResetURL": resetURL},
	})
}

func (s *Service) deliver(ctx context.Context, job EmailJob) error {
	if s.MG == nil {
		return errors.New("mailgun not configured")
	}
	subject, html, err := templates.Render(job.Template, job.Data)
	if err != nil {
		return err
	}
	if job.Subject != "" {
		subject = job.Subject
	}
	return s.MG.Send(ctx, job.To, subject, "", html)
}
