package entity

// Content types a send request may ask for. TRIP_BRIEF, PASSENGER_LIST and
// CUSTOM are accepted by validation but currently render nothing; TRIP_BRIEF
// still counts toward the MINIMAL preference gate.
const (
	ContentFlightDetails     = "FLIGHT_DETAILS"
	ContentPrivateJetDetails = "PRIVATE_JET_DETAILS"
	ContentHotelDetails      = "HOTEL_DETAILS"
	ContentEventDetails      = "EVENT_DETAILS"
	ContentFullItinerary     = "FULL_ITINERARY"
	ContentTripBrief         = "TRIP_BRIEF"
	ContentPassengerList     = "PASSENGER_LIST"
	ContentCustom            = "CUSTOM"
)

// SendDetailsRequest asks the composer to notify a batch of passengers on
// one trip. PassengerIDs are passenger-record ids, not person ids.
type SendDetailsRequest struct {
	TripID            uint     `json:"tripId" validate:"required"`
	PassengerIDs      []uint   `json:"passengerIds" validate:"required,min=1"`
	ContentTypes      []string `json:"contentTypes" validate:"required,min=1"`
	CommunicationType string   `json:"communicationType" validate:"required,oneof=EMAIL WHATSAPP BOTH"`
	CustomMessage     string   `json:"customMessage,omitempty"`
}

// SendError is one non-fatal per-passenger or per-channel problem recorded
// while processing a send request.
type SendError struct {
	PassengerID uint   `json:"passengerId"`
	PersonType  string `json:"personType,omitempty"`
	PersonID    uint   `json:"personId,omitempty"`
	Channel     string `json:"channel,omitempty"`
	Reason      string `json:"reason"`
}

// SendDetailsResult aggregates the outcome of one send request. Receipts
// already written stand even when later passengers fail.
type SendDetailsResult struct {
	CommunicationsSent int                     `json:"communicationsSent"`
	Receipts           []*CommunicationReceipt `json:"communications"`
	Errors             []SendError             `json:"errors"`
}
