// Package mailer sends confirmation and campaign email through the Resend
// API. Notification delivery is deliberately subordinate to data
// durability: callers persist first and treat send failures as non-fatal.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"

	v1 "github.com/hauspet-lab/hauspet-intake/internal/api/v1"
)

// Message is one outbound email.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Sender delivers one message and returns the provider's message id.
// The Resend client satisfies this in production; tests inject fakes.
type Sender interface {
	Send(ctx context.Context, msg *Message) (string, error)
}

// resendSender adapts the Resend SDK to Sender.
type resendSender struct {
	client *resend.Client
	from   string
}

func (s *resendSender) Send(ctx context.Context, msg *Message) (string, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("resend send failed: %w", err)
	}
	return sent.Id, nil
}

// Service composes and sends the domain's emails. A Service with a nil
// sender is valid and reports Configured() == false; intake then skips
// notification entirely, which is the original deployment's behavior when
// no API key is present.
type Service struct {
	sender  Sender
	adminTo string
}

// New builds a Service backed by the Resend API. An empty apiKey yields an
// unconfigured service.
func New(apiKey, from, adminTo string) *Service {
	if apiKey == "" {
		slog.Warn("Email API key not set - email service not configured, notifications will be skipped")
		return &Service{adminTo: adminTo}
	}
	return &Service{
		sender:  &resendSender{client: resend.NewClient(apiKey), from: from},
		adminTo: adminTo,
	}
}

// NewWithSender wires an explicit Sender; used by tests.
func NewWithSender(sender Sender, adminTo string) *Service {
	return &Service{sender: sender, adminTo: adminTo}
}

// Configured reports whether the service can actually send.
func (s *Service) Configured() bool {
	return s.sender != nil
}

// SendIntakeEmails sends the confirmation mail for a freshly persisted
// submission: customer confirmation plus internal admin notification for
// early access and pre-orders. Contact inquiries get no automated mail.
// The first failure aborts the sequence and is returned to the caller.
func (s *Service) SendIntakeEmails(ctx context.Context, sub *v1.Submission) error {
	if !s.Configured() {
		return nil
	}

	var msgs []*Message
	switch sub.Type {
	case v1.TypeEarlyAccess:
		msgs = []*Message{
			earlyAccessConfirmation(sub),
			earlyAccessAdminNotice(sub, s.adminTo),
		}
	case v1.TypePreOrder:
		msgs = []*Message{
			preOrderConfirmation(sub),
			preOrderAdminNotice(sub, s.adminTo),
		}
	default:
		return nil
	}

	for _, msg := range msgs {
		id, err := s.sender.Send(ctx, msg)
		if err != nil {
			return err
		}
		slog.Info("Confirmation email sent", "to", msg.To, "email_id", id)
	}

	return nil
}
