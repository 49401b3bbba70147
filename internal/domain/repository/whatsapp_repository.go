package repository

import (
	"context"
)

// WhatsappRepository defines the interface for WhatsApp delivery. SendText
// returns the external task id assigned by the WhatsApp service.
type WhatsappRepository interface {
	SendText(ctx context.Context, phone, message string) (string, error)
}
