package repository

import (
	"context"

	"traveldesk-service/internal/domain/entity"
)

// PersonRepository defines the interface for identity lookups. The four
// identity variants live in separate tables; FindContact dispatches on
// personType and returns the common messaging projection.
type PersonRepository interface {
	FindContact(ctx context.Context, personType string, personID uint) (*entity.Contact, error)
}
