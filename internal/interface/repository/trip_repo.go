package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"traveldesk-service/internal/domain/entity"
	"traveldesk-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormTripRepository implements the TripRepository interface
type GormTripRepository struct {
	db *gorm.DB
}

// NewGormTripRepository creates a new GORM trip repository
func NewGormTripRepository(db *gorm.DB) repository.TripRepository {
	return &GormTripRepository{
		db: db,
	}
}

// Trips GORM model for database mapping
type Trips struct {
	ID            uint   `gorm:"primaryKey"`
	RequestNumber string `gorm:"column:request_number;unique"`
	Status        string `gorm:"column:status"`
	StartDate     *time.Time
	EndDate       *time.Time
	Notes         string
	Destinations  []TripDestinations `gorm:"foreignKey:TripID"`
	Flights       []TripFlights      `gorm:"foreignKey:TripID"`
	PrivateJets   []TripJets         `gorm:"foreignKey:TripID"`
	Hotels        []TripHotels       `gorm:"foreignKey:TripID"`
	Events        []TripEvents       `gorm:"foreignKey:TripID"`
	Passengers    []TripPassengers   `gorm:"foreignKey:TripID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName overrides the default table name
func (Trips) TableName() string {
	return "trips"
}

type TripDestinations struct {
	ID        uint `gorm:"primaryKey"`
	TripID    uint `gorm:"column:trip_id;index"`
	City      string
	Country   string
	SortOrder int `gorm:"column:sort_order"`
}

func (TripDestinations) TableName() string {
	return "trip_destinations"
}

type TripFlights struct {
	ID               uint `gorm:"primaryKey"`
	TripID           uint `gorm:"column:trip_id;index"`
	Airline          string
	FlightNumber     string `gorm:"column:flight_number"`
	DepartureAirport string `gorm:"column:departure_airport"`
	ArrivalAirport   string `gorm:"column:arrival_airport"`
	DepartureTime    *time.Time
	ArrivalTime      *time.Time
	BookingReference string             `gorm:"column:booking_reference"`
	Passengers       []FlightPassengers `gorm:"foreignKey:FlightID"`
}

func (TripFlights) TableName() string {
	return "trip_flights"
}

type FlightPassengers struct {
	ID         uint   `gorm:"primaryKey"`
	FlightID   uint   `gorm:"column:flight_id;index"`
	PersonType string `gorm:"column:person_type"`
	PersonID   uint   `gorm:"column:person_id"`
}

func (FlightPassengers) TableName() string {
	return "flight_passengers"
}

type TripJets struct {
	ID               uint `gorm:"primaryKey"`
	TripID           uint `gorm:"column:trip_id;index"`
	Operator         string
	TailNumber       string `gorm:"column:tail_number"`
	DepartureAirport string `gorm:"column:departure_airport"`
	ArrivalAirport   string `gorm:"column:arrival_airport"`
	DepartureTime    *time.Time
	ArrivalTime      *time.Time
	BookingReference string          `gorm:"column:booking_reference"`
	Passengers       []JetPassengers `gorm:"foreignKey:JetID"`
}

func (TripJets) TableName() string {
	return "trip_jets"
}

type JetPassengers struct {
	ID         uint   `gorm:"primaryKey"`
	JetID      uint   `gorm:"column:jet_id;index"`
	PersonType string `gorm:"column:person_type"`
	PersonID   uint   `gorm:"column:person_id"`
}

func (JetPassengers) TableName() string {
	return "jet_passengers"
}

type TripHotels struct {
	ID                 uint `gorm:"primaryKey"`
	TripID             uint `gorm:"column:trip_id;index"`
	Name               string
	City               string
	CheckIn            *time.Time `gorm:"column:check_in"`
	CheckOut           *time.Time `gorm:"column:check_out"`
	ConfirmationNumber string     `gorm:"column:confirmation_number"`
	Rooms              []HotelRooms `gorm:"foreignKey:HotelID"`
}

func (TripHotels) TableName() string {
	return "trip_hotels"
}

type HotelRooms struct {
	ID          uint   `gorm:"primaryKey"`
	HotelID     uint   `gorm:"column:hotel_id;index"`
	RoomType    string `gorm:"column:room_type"`
	Assignments []RoomAssignments `gorm:"foreignKey:RoomID"`
}

func (HotelRooms) TableName() string {
	return "hotel_rooms"
}

type RoomAssignments struct {
	ID         uint   `gorm:"primaryKey"`
	RoomID     uint   `gorm:"column:room_id;index"`
	PersonType string `gorm:"column:person_type"`
	PersonID   uint   `gorm:"column:person_id"`
}

func (RoomAssignments) TableName() string {
	return "room_assignments"
}

type TripEvents struct {
	ID           uint `gorm:"primaryKey"`
	TripID       uint `gorm:"column:trip_id;index"`
	Title        string
	Location     string
	StartTime    *time.Time
	Participants []EventParticipants `gorm:"foreignKey:EventID"`
}

func (TripEvents) TableName() string {
	return "trip_events"
}

type EventParticipants struct {
	ID         uint   `gorm:"primaryKey"`
	EventID    uint   `gorm:"column:event_id;index"`
	PersonType string `gorm:"column:person_type"`
	PersonID   uint   `gorm:"column:person_id"`
}

func (EventParticipants) TableName() string {
	return "event_participants"
}

type TripPassengers struct {
	ID                     uint   `gorm:"primaryKey"`
	TripID                 uint   `gorm:"column:trip_id;index"`
	PersonType             string `gorm:"column:person_type"`
	PersonID               uint   `gorm:"column:person_id"`
	ReceiveFlightDetails   bool   `gorm:"column:receive_flight_details"`
	ReceiveHotelDetails    bool   `gorm:"column:receive_hotel_details"`
	ReceiveEventDetails    bool   `gorm:"column:receive_event_details"`
	ReceiveItinerary       bool   `gorm:"column:receive_itinerary"`
	NotificationPreference string `gorm:"column:notification_preference"`
}

func (TripPassengers) TableName() string {
	return "trip_passengers"
}

// Create persists a new trip and assigns its request number, formatted
// TR-<year>-<seq> with the sequence scoped to the calendar year.
func (r *GormTripRepository) Create(ctx context.Context, trip *entity.Trip) error {
	year := time.Now().Year()

	var count int64
	if err := r.db.WithContext(ctx).Model(&Trips{}).Unscoped().
		Where("request_number LIKE ?", fmt.Sprintf("TR-%d-%%", year)).
		Count(&count).Error; err != nil {
		return err
	}

	model := Trips{
		RequestNumber: fmt.Sprintf("TR-%d-%04d", year, count+1),
		Status:        entity.TripStatusRequest,
		StartDate:     trip.StartDate,
		EndDate:       trip.EndDate,
		Notes:         trip.Notes,
	}
	if trip.Status != "" {
		model.Status = trip.Status
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}

	trip.ID = model.ID
	trip.RequestNumber = model.RequestNumber
	trip.Status = model.Status
	trip.CreatedAt = model.CreatedAt
	trip.UpdatedAt = model.UpdatedAt
	return nil
}

// FindWithSections loads a trip with every sub-entity collection the
// notification composer consumes.
func (r *GormTripRepository) FindWithSections(ctx context.Context, id uint) (*entity.Trip, error) {
	var model Trips
	result := r.db.WithContext(ctx).
		Preload("Destinations").
		Preload("Flights.Passengers").
		Preload("PrivateJets.Passengers").
		Preload("Hotels.Rooms.Assignments").
		Preload("Events.Participants").
		Preload("Passengers").
		First(&model, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, result.Error
	}

	return tripToEntity(&model), nil
}

// List returns all trips without their section collections, newest first.
func (r *GormTripRepository) List(ctx context.Context) ([]*entity.Trip, error) {
	var models []Trips
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	trips := make([]*entity.Trip, 0, len(models))
	for i := range models {
		trips = append(trips, tripToEntity(&models[i]))
	}
	return trips, nil
}

// Update writes the mutable trip fields (status, dates, notes).
func (r *GormTripRepository) Update(ctx context.Context, trip *entity.Trip) error {
	result := r.db.WithContext(ctx).Model(&Trips{}).
		Where("id = ?", trip.ID).
		Updates(map[string]interface{}{
			"status":     trip.Status,
			"start_date": trip.StartDate,
			"end_date":   trip.EndDate,
			"notes":      trip.Notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// Delete soft-deletes a trip.
func (r *GormTripRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Trips{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// FindPassengers resolves passenger-record ids scoped to one trip. Ids not
// belonging to the trip simply drop out of the result.
func (r *GormTripRepository) FindPassengers(ctx context.Context, ids []uint, tripID uint) ([]*entity.Passenger, error) {
	var models []TripPassengers
	result := r.db.WithContext(ctx).
		Where("id IN ? AND trip_id = ?", ids, tripID).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	passengers := make([]*entity.Passenger, 0, len(models))
	for i := range models {
		p := passengerToEntity(&models[i])
		passengers = append(passengers, &p)
	}
	return passengers, nil
}

// AddPassenger attaches one identity to a trip.
func (r *GormTripRepository) AddPassenger(ctx context.Context, passenger *entity.Passenger) error {
	model := TripPassengers{
		TripID:                 passenger.TripID,
		PersonType:             passenger.PersonType,
		PersonID:               passenger.PersonID,
		ReceiveFlightDetails:   passenger.ReceiveFlightDetails,
		ReceiveHotelDetails:    passenger.ReceiveHotelDetails,
		ReceiveEventDetails:    passenger.ReceiveEventDetails,
		ReceiveItinerary:       passenger.ReceiveItinerary,
		NotificationPreference: passenger.NotificationPreference,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	passenger.ID = model.ID
	return nil
}

// UpdatePassenger writes the notification flags and overall preference.
func (r *GormTripRepository) UpdatePassenger(ctx context.Context, passenger *entity.Passenger) error {
	result := r.db.WithContext(ctx).Model(&TripPassengers{}).
		Where("id = ? AND trip_id = ?", passenger.ID, passenger.TripID).
		Updates(map[string]interface{}{
			"receive_flight_details":  passenger.ReceiveFlightDetails,
			"receive_hotel_details":   passenger.ReceiveHotelDetails,
			"receive_event_details":   passenger.ReceiveEventDetails,
			"receive_itinerary":       passenger.ReceiveItinerary,
			"notification_preference": passenger.NotificationPreference,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// RemovePassenger detaches one passenger record from a trip.
func (r *GormTripRepository) RemovePassenger(ctx context.Context, tripID, passengerID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND trip_id = ?", passengerID, tripID).
		Delete(&TripPassengers{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// --- model to entity mapping ---

func tripToEntity(m *Trips) *entity.Trip {
	trip := &entity.Trip{
		ID:            m.ID,
		RequestNumber: m.RequestNumber,
		Status:        m.Status,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	for i := range m.Destinations {
		d := m.Destinations[i]
		trip.Destinations = append(trip.Destinations, entity.Destination{
			ID: d.ID, TripID: d.TripID, City: d.City, Country: d.Country, SortOrder: d.SortOrder,
		})
	}

	for i := range m.Flights {
		f := m.Flights[i]
		flight := entity.Flight{
			ID:               f.ID,
			TripID:           f.TripID,
			Airline:          f.Airline,
			FlightNumber:     f.FlightNumber,
			DepartureAirport: f.DepartureAirport,
			ArrivalAirport:   f.ArrivalAirport,
			DepartureTime:    f.DepartureTime,
			ArrivalTime:      f.ArrivalTime,
			BookingReference: f.BookingReference,
		}
		for _, fp := range f.Passengers {
			flight.Passengers = append(flight.Passengers, entity.FlightPassenger{
				ID: fp.ID, FlightID: fp.FlightID, PersonType: fp.PersonType, PersonID: fp.PersonID,
			})
		}
		trip.Flights = append(trip.Flights, flight)
	}

	for i := range m.PrivateJets {
		j := m.PrivateJets[i]
		jet := entity.PrivateJet{
			ID:               j.ID,
			TripID:           j.TripID,
			Operator:         j.Operator,
			TailNumber:       j.TailNumber,
			DepartureAirport: j.DepartureAirport,
			ArrivalAirport:   j.ArrivalAirport,
			DepartureTime:    j.DepartureTime,
			ArrivalTime:      j.ArrivalTime,
			BookingReference: j.BookingReference,
		}
		for _, jp := range j.Passengers {
			jet.Passengers = append(jet.Passengers, entity.JetPassenger{
				ID: jp.ID, JetID: jp.JetID, PersonType: jp.PersonType, PersonID: jp.PersonID,
			})
		}
		trip.PrivateJets = append(trip.PrivateJets, jet)
	}

	for i := range m.Hotels {
		h := m.Hotels[i]
		hotel := entity.Hotel{
			ID:                 h.ID,
			TripID:             h.TripID,
			Name:               h.Name,
			City:               h.City,
			CheckIn:            h.CheckIn,
			CheckOut:           h.CheckOut,
			ConfirmationNumber: h.ConfirmationNumber,
		}
		for _, room := range h.Rooms {
			r := entity.HotelRoom{ID: room.ID, HotelID: room.HotelID, RoomType: room.RoomType}
			for _, a := range room.Assignments {
				r.Assignments = append(r.Assignments, entity.RoomAssignment{
					ID: a.ID, RoomID: a.RoomID, PersonType: a.PersonType, PersonID: a.PersonID,
				})
			}
			hotel.Rooms = append(hotel.Rooms, r)
		}
		trip.Hotels = append(trip.Hotels, hotel)
	}

	for i := range m.Events {
		e := m.Events[i]
		event := entity.TripEvent{
			ID:        e.ID,
			TripID:    e.TripID,
			Title:     e.Title,
			Location:  e.Location,
			StartTime: e.StartTime,
		}
		for _, ep := range e.Participants {
			event.Participants = append(event.Participants, entity.EventParticipant{
				ID: ep.ID, EventID: ep.EventID, PersonType: ep.PersonType, PersonID: ep.PersonID,
			})
		}
		trip.Events = append(trip.Events, event)
	}

	for i := range m.Passengers {
		p := passengerToEntity(&m.Passengers[i])
		trip.Passengers = append(trip.Passengers, p)
	}

	return trip
}

func passengerToEntity(m *TripPassengers) entity.Passenger {
	return entity.Passenger{
		ID:                     m.ID,
		TripID:                 m.TripID,
		PersonType:             m.PersonType,
		PersonID:               m.PersonID,
		ReceiveFlightDetails:   m.ReceiveFlightDetails,
		ReceiveHotelDetails:    m.ReceiveHotelDetails,
		ReceiveEventDetails:    m.ReceiveEventDetails,
		ReceiveItinerary:       m.ReceiveItinerary,
		NotificationPreference: m.NotificationPreference,
	}
}
