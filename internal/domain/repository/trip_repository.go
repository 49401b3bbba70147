package repository

import (
	"context"

	"traveldesk-service/internal/domain/entity"
)

// TripRepository defines the interface for trip and passenger operations
type TripRepository interface {
	Create(ctx context.Context, trip *entity.Trip) error
	FindWithSections(ctx context.Context, id uint) (*entity.Trip, error)
	List(ctx context.Context) ([]*entity.Trip, error)
	Update(ctx context.Context, trip *entity.Trip) error
	Delete(ctx context.Context, id uint) error

	// FindPassengers resolves passenger-record ids scoped to one trip.
	// Ids that do not belong to the trip are silently dropped.
	FindPassengers(ctx context.Context, ids []uint, tripID uint) ([]*entity.Passenger, error)
	AddPassenger(ctx context.Context, passenger *entity.Passenger) error
	UpdatePassenger(ctx context.Context, passenger *entity.Passenger) error
	RemovePassenger(ctx context.Context, tripID, passengerID uint) error
}
