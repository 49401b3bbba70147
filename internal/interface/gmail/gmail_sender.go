package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"traveldesk-service/internal/domain/entity"
	"traveldesk-service/internal/domain/repository"
	"traveldesk-service/pkg/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailSender delivers itinerary emails through the Gmail API.
type GmailSender struct {
	gmailService *gmail.Service
	from         string
	logger       logger.Logger
}

// NewGmailSender creates a new Gmail sender. from is the authenticated
// account's address used on the From header.
func NewGmailSender(ctx context.Context, tokenSource oauth2.TokenSource, from string, logger logger.Logger) (*GmailSender, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &GmailSender{
		gmailService: service,
		from:         from,
		logger:       logger,
	}, nil
}

var _ repository.EmailRepository = (*GmailSender)(nil)

// SendEmail builds a multipart/alternative MIME message from the text and
// HTML bodies and sends it as the authenticated user. Returns the Gmail
// message id.
func (s *GmailSender) SendEmail(ctx context.Context, msg *entity.EmailMessage) (string, error) {
	raw := base64.URLEncoding.EncodeToString([]byte(buildMIME(s.from, msg)))

	sent, err := s.gmailService.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gmail send failed: %w", err)
	}

	s.logger.Info("Email sent",
		"messageId", sent.Id,
		"to", msg.To,
		"subject", msg.Subject)

	return sent.Id, nil
}

// buildMIME assembles an RFC 2822 message. When an HTML body is present it
// becomes a multipart/alternative message with the plain text first.
func buildMIME(from string, msg *entity.EmailMessage) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")

	if msg.HTML == "" {
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(msg.Text)
		return b.String()
	}

	const boundary = "traveldesk-alt"
	b.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary))

	b.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(msg.Text)
	b.WriteString("\r\n")

	b.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(msg.HTML)
	b.WriteString("\r\n")

	b.WriteString(fmt.Sprintf("--%s--", boundary))
	return b.String()
}
