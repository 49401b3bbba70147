package rest

import (
	"encoding/json"
	"net/http"

	"traveldesk-service/internal/domain/entity"
)

// sendDetailsData is the payload of a successful send-details response.
type sendDetailsData struct {
	CommunicationsSent int                `json:"communicationsSent"`
	Errors             int                `json:"errors"`
	Details            sendDetailsDetails `json:"details"`
}

type sendDetailsDetails struct {
	Communications []*entity.CommunicationReceipt `json:"communications"`
	Errors         []entity.SendError             `json:"errors"`
}

// sendDetails handles POST /api/v1/trips/{tripID}/send-details.
func (s *Server) sendDetails(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	var req entity.SendDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.TripID = tripID

	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.composer.SendTravelDetails(r.Context(), &req)
	if err != nil {
		s.logger.Error("Send details failed", "tripId", tripID, "error", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "travel details processed", sendDetailsData{
		CommunicationsSent: result.CommunicationsSent,
		Errors:             len(result.Errors),
		Details: sendDetailsDetails{
			Communications: result.Receipts,
			Errors:         result.Errors,
		},
	})
}
