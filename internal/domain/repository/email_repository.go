package repository

import (
	"context"

	"traveldesk-service/internal/domain/entity"
)

// EmailRepository defines the interface for outbound email delivery.
// SendEmail returns the transport's message id.
type EmailRepository interface {
	SendEmail(ctx context.Context, msg *entity.EmailMessage) (string, error)
}
