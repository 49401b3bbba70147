package repository

import (
	"context"

	"traveldesk-service/internal/domain/entity"
)

// ReceiptRepository defines the interface for communication receipt storage.
// Receipts are append-only.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.CommunicationReceipt) error
	FindByTrip(ctx context.Context, tripID uint, limit int) ([]*entity.CommunicationReceipt, error)
}
