package entity

import (
	"time"
)

// Trip status lifecycle
const (
	TripStatusRequest    = "REQUEST"
	TripStatusPlanning   = "PLANNING"
	TripStatusConfirming = "CONFIRMING"
	TripStatusExecuting  = "EXECUTING"
	TripStatusCompleted  = "COMPLETED"
	TripStatusCancelled  = "CANCELLED"
)

// Trip is the planning unit aggregating destinations, transport legs,
// lodging, events and passengers. Start and end dates are nil while the
// schedule is still TBD.
type Trip struct {
	ID            uint         `json:"id"`
	RequestNumber string       `json:"requestNumber"`
	Status        string       `json:"status"`
	StartDate     *time.Time   `json:"startDate,omitempty"`
	EndDate       *time.Time   `json:"endDate,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	Destinations  []Destination `json:"destinations,omitempty"`
	Flights       []Flight     `json:"flights,omitempty"`
	PrivateJets   []PrivateJet `json:"privateJets,omitempty"`
	Hotels        []Hotel      `json:"hotels,omitempty"`
	Events        []TripEvent  `json:"events,omitempty"`
	Passengers    []Passenger  `json:"passengers,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// Destination is one ordered stop on a trip.
type Destination struct {
	ID        uint   `json:"id"`
	TripID    uint   `json:"tripId"`
	City      string `json:"city"`
	Country   string `json:"country"`
	SortOrder int    `json:"sortOrder"`
}

// Flight is a commercial flight leg on a trip.
type Flight struct {
	ID               uint              `json:"id"`
	TripID           uint              `json:"tripId"`
	Airline          string            `json:"airline"`
	FlightNumber     string            `json:"flightNumber"`
	DepartureAirport string            `json:"departureAirport"`
	ArrivalAirport   string            `json:"arrivalAirport"`
	DepartureTime    *time.Time        `json:"departureTime,omitempty"`
	ArrivalTime      *time.Time        `json:"arrivalTime,omitempty"`
	BookingReference string            `json:"bookingReference,omitempty"`
	Passengers       []FlightPassenger `json:"passengers,omitempty"`
}

// FlightPassenger links one identity to a flight leg.
type FlightPassenger struct {
	ID         uint   `json:"id"`
	FlightID   uint   `json:"flightId"`
	PersonType string `json:"personType"`
	PersonID   uint   `json:"personId"`
}

// PrivateJet is a chartered leg on a trip.
type PrivateJet struct {
	ID               uint           `json:"id"`
	TripID           uint           `json:"tripId"`
	Operator         string         `json:"operator"`
	TailNumber       string         `json:"tailNumber"`
	DepartureAirport string         `json:"departureAirport"`
	ArrivalAirport   string         `json:"arrivalAirport"`
	DepartureTime    *time.Time     `json:"departureTime,omitempty"`
	ArrivalTime      *time.Time     `json:"arrivalTime,omitempty"`
	BookingReference string         `json:"bookingReference,omitempty"`
	Passengers       []JetPassenger `json:"passengers,omitempty"`
}

// JetPassenger links one identity to a private jet leg.
type JetPassenger struct {
	ID         uint   `json:"id"`
	JetID      uint   `json:"jetId"`
	PersonType string `json:"personType"`
	PersonID   uint   `json:"personId"`
}

// Hotel is one lodging booking on a trip. Guests are linked through rooms.
type Hotel struct {
	ID                 uint        `json:"id"`
	TripID             uint        `json:"tripId"`
	Name               string      `json:"name"`
	City               string      `json:"city"`
	CheckIn            *time.Time  `json:"checkIn,omitempty"`
	CheckOut           *time.Time  `json:"checkOut,omitempty"`
	ConfirmationNumber string      `json:"confirmationNumber,omitempty"`
	Rooms              []HotelRoom `json:"rooms,omitempty"`
}

// HotelRoom is one room inside a hotel booking.
type HotelRoom struct {
	ID          uint             `json:"id"`
	HotelID     uint             `json:"hotelId"`
	RoomType    string           `json:"roomType"`
	Assignments []RoomAssignment `json:"assignments,omitempty"`
}

// RoomAssignment places one identity in a hotel room.
type RoomAssignment struct {
	ID         uint   `json:"id"`
	RoomID     uint   `json:"roomId"`
	PersonType string `json:"personType"`
	PersonID   uint   `json:"personId"`
}

// TripEvent is a scheduled event (dinner, embassy appointment, meeting)
// attached to a trip.
type TripEvent struct {
	ID           uint               `json:"id"`
	TripID       uint               `json:"tripId"`
	Title        string             `json:"title"`
	Location     string             `json:"location,omitempty"`
	StartTime    *time.Time         `json:"startTime,omitempty"`
	Participants []EventParticipant `json:"participants,omitempty"`
}

// EventParticipant links one identity to a trip event.
type EventParticipant struct {
	ID         uint   `json:"id"`
	EventID    uint   `json:"eventId"`
	PersonType string `json:"personType"`
	PersonID   uint   `json:"personId"`
}

// Overall notification preference of a passenger
const (
	PreferenceAll     = "ALL"
	PreferenceMinimal = "MINIMAL"
	PreferenceNone    = "NONE"
)

// Passenger is the membership of one identity on one trip. The same person
// appears as a distinct passenger record on every trip they join. The
// receive flags and the overall preference gate which notifications the
// composer will send.
type Passenger struct {
	ID                     uint   `json:"id"`
	TripID                 uint   `json:"tripId"`
	PersonType             string `json:"personType"`
	PersonID               uint   `json:"personId"`
	ReceiveFlightDetails   bool   `json:"receiveFlightDetails"`
	ReceiveHotelDetails    bool   `json:"receiveHotelDetails"`
	ReceiveEventDetails    bool   `json:"receiveEventDetails"`
	ReceiveItinerary       bool   `json:"receiveItinerary"`
	NotificationPreference string `json:"notificationPreference"`
}
