package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"traveldesk-service/internal/domain/entity"
)

type tripRequest struct {
	Status    string  `json:"status,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start, end, ok := parseTripDates(w, req)
	if !ok {
		return
	}

	trip := &entity.Trip{
		Status:    req.Status,
		StartDate: start,
		EndDate:   end,
		Notes:     req.Notes,
	}
	if err := s.trips.Create(r.Context(), trip); err != nil {
		s.logger.Error("Failed to create trip", "error", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, "trip created", trip)
}

func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		s.logger.Error("Failed to list trips", "error", err)
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "", trips)
}

func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	trip, err := s.trips.FindWithSections(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "", trip)
}

func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trip, err := s.trips.FindWithSections(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	start, end, ok := parseTripDates(w, req)
	if !ok {
		return
	}

	if req.Status != "" {
		trip.Status = req.Status
	}
	if req.StartDate != nil {
		trip.StartDate = start
	}
	if req.EndDate != nil {
		trip.EndDate = end
	}
	if req.Notes != "" {
		trip.Notes = req.Notes
	}

	if trip.StartDate != nil && trip.EndDate != nil && trip.EndDate.Before(*trip.StartDate) {
		respondError(w, http.StatusBadRequest, "end date before start date")
		return
	}

	if err := s.trips.Update(r.Context(), trip); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "trip updated", trip)
}

func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "trip deleted", nil)
}

type passengerRequest struct {
	PersonType             string `json:"personType" validate:"required,oneof=EMPLOYEE STAKEHOLDER EMPLOYER TASK_HELPER"`
	PersonID               uint   `json:"personId" validate:"required"`
	ReceiveFlightDetails   bool   `json:"receiveFlightDetails"`
	ReceiveHotelDetails    bool   `json:"receiveHotelDetails"`
	ReceiveEventDetails    bool   `json:"receiveEventDetails"`
	ReceiveItinerary       bool   `json:"receiveItinerary"`
	NotificationPreference string `json:"notificationPreference" validate:"required,oneof=ALL MINIMAL NONE"`
}

func (s *Server) addPassenger(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	var req passengerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	passenger := &entity.Passenger{
		TripID:                 tripID,
		PersonType:             req.PersonType,
		PersonID:               req.PersonID,
		ReceiveFlightDetails:   req.ReceiveFlightDetails,
		ReceiveHotelDetails:    req.ReceiveHotelDetails,
		ReceiveEventDetails:    req.ReceiveEventDetails,
		ReceiveItinerary:       req.ReceiveItinerary,
		NotificationPreference: req.NotificationPreference,
	}
	if err := s.trips.AddPassenger(r.Context(), passenger); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, "passenger added", passenger)
}

func (s *Server) updatePassenger(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	passengerID, ok := pathID(w, r, "passengerID")
	if !ok {
		return
	}

	var req passengerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	passenger := &entity.Passenger{
		ID:                     passengerID,
		TripID:                 tripID,
		PersonType:             req.PersonType,
		PersonID:               req.PersonID,
		ReceiveFlightDetails:   req.ReceiveFlightDetails,
		ReceiveHotelDetails:    req.ReceiveHotelDetails,
		ReceiveEventDetails:    req.ReceiveEventDetails,
		ReceiveItinerary:       req.ReceiveItinerary,
		NotificationPreference: req.NotificationPreference,
	}
	if err := s.trips.UpdatePassenger(r.Context(), passenger); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "passenger updated", passenger)
}

func (s *Server) removePassenger(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	passengerID, ok := pathID(w, r, "passengerID")
	if !ok {
		return
	}

	if err := s.trips.RemovePassenger(r.Context(), tripID, passengerID); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "passenger removed", nil)
}

func (s *Server) listReceipts(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	receipts, err := s.receipts.FindByTrip(r.Context(), tripID, limit)
	if err != nil {
		s.logger.Error("Failed to list receipts", "tripId", tripID, "error", err)
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "", receipts)
}

// --- helpers ---

func pathID(w http.ResponseWriter, r *http.Request, param string) (uint, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondError(w, http.StatusBadRequest, "invalid "+param)
		return 0, false
	}
	return uint(id), true
}

// parseTripDates parses the optional YYYY-MM-DD date fields, writing a 400
// response on malformed input.
func parseTripDates(w http.ResponseWriter, req tripRequest) (start, end *time.Time, ok bool) {
	parse := func(raw *string) (*time.Time, bool) {
		if raw == nil || *raw == "" {
			return nil, true
		}
		t, err := time.Parse("2006-01-02", *raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid date "+*raw)
			return nil, false
		}
		return &t, true
	}

	if start, ok = parse(req.StartDate); !ok {
		return nil, nil, false
	}
	if end, ok = parse(req.EndDate); !ok {
		return nil, nil, false
	}
	return start, end, true
}
