package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"traveldesk-service/internal/domain/entity"
	"traveldesk-service/internal/domain/repository"
	"traveldesk-service/pkg/logger"
	"traveldesk-service/pkg/metrics"
	"traveldesk-service/templates"
)

// NotificationComposer aggregates a trip's sections per passenger and
// dispatches itinerary notifications over email and WhatsApp.
type NotificationComposer struct {
	tripRepo     repository.TripRepository
	personRepo   repository.PersonRepository
	receiptRepo  repository.ReceiptRepository
	emailRepo    repository.EmailRepository
	whatsappRepo repository.WhatsappRepository
	metrics      *metrics.Metrics
	logger       logger.Logger
}

// NewNotificationComposer creates a new notification composer
func NewNotificationComposer(
	tripRepo repository.TripRepository,
	personRepo repository.PersonRepository,
	receiptRepo repository.ReceiptRepository,
	emailRepo repository.EmailRepository,
	whatsappRepo repository.WhatsappRepository,
	m *metrics.Metrics,
	logger logger.Logger,
) *NotificationComposer {
	return &NotificationComposer{
		tripRepo:     tripRepo,
		personRepo:   personRepo,
		receiptRepo:  receiptRepo,
		emailRepo:    emailRepo,
		whatsappRepo: whatsappRepo,
		metrics:      m,
		logger:       logger,
	}
}

// SendTravelDetails processes one send request: validates it, resolves the
// trip and its passengers, and notifies each passenger independently. A
// failure for one passenger or one channel never aborts the others;
// everything non-fatal lands in the result's error list. Receipts already
// written stand even when later passengers fail.
func (c *NotificationComposer) SendTravelDetails(ctx context.Context, req *entity.SendDetailsRequest) (*entity.SendDetailsResult, error) {
	started := time.Now()
	defer func() {
		c.metrics.ComposeTime.Observe(time.Since(started).Seconds())
	}()

	if len(req.PassengerIDs) == 0 {
		return nil, fmt.Errorf("%w: no passengers selected", entity.ErrInvalidRequest)
	}
	if len(req.ContentTypes) == 0 {
		return nil, fmt.Errorf("%w: no content types selected", entity.ErrInvalidRequest)
	}
	if !entity.ValidChannel(req.CommunicationType) {
		return nil, fmt.Errorf("%w: unknown communication type %q", entity.ErrInvalidRequest, req.CommunicationType)
	}

	trip, err := c.tripRepo.FindWithSections(ctx, req.TripID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: trip %d", entity.ErrNotFound, req.TripID)
		}
		return nil, err
	}

	passengers, err := c.tripRepo.FindPassengers(ctx, req.PassengerIDs, req.TripID)
	if err != nil {
		return nil, err
	}
	if len(passengers) == 0 {
		return nil, fmt.Errorf("%w: no matching passengers on trip %d", entity.ErrNotFound, req.TripID)
	}

	c.logger.Info("Composing travel details",
		"tripId", trip.ID,
		"passengers", len(passengers),
		"contentTypes", strings.Join(req.ContentTypes, ","),
		"channel", req.CommunicationType)

	result := &entity.SendDetailsResult{}
	for _, p := range passengers {
		c.notifyPassenger(ctx, trip, p, req, result)
	}

	c.logger.Info("Send request finished",
		"tripId", trip.ID,
		"sent", result.CommunicationsSent,
		"errors", len(result.Errors))

	return result, nil
}

// notifyPassenger runs the per-passenger pipeline: preference gate,
// identity resolution, rendering, then per-channel delivery.
func (c *NotificationComposer) notifyPassenger(ctx context.Context, trip *entity.Trip, p *entity.Passenger, req *entity.SendDetailsRequest, result *entity.SendDetailsResult) {
	if reason := skipReason(p, req.ContentTypes); reason != "" {
		c.logger.Info("Skipping passenger", "passengerId", p.ID, "reason", reason)
		c.metrics.PassengersSkipped.Inc()
		result.Errors = append(result.Errors, entity.SendError{
			PassengerID: p.ID,
			PersonType:  p.PersonType,
			PersonID:    p.PersonID,
			Reason:      reason,
		})
		return
	}

	contact, err := c.personRepo.FindContact(ctx, p.PersonType, p.PersonID)
	if err != nil || contact == nil {
		if err != nil && !errors.Is(err, entity.ErrNotFound) {
			c.logger.Error("Identity lookup failed", "passengerId", p.ID, "error", err)
		}
		result.Errors = append(result.Errors, entity.SendError{
			PassengerID: p.ID,
			PersonType:  p.PersonType,
			PersonID:    p.PersonID,
			Reason:      "person details not found",
		})
		return
	}

	body := c.renderBody(trip, p, req, contact.DisplayName)
	contentLabel := strings.Join(req.ContentTypes, ",")

	if req.CommunicationType == entity.ChannelEmail || req.CommunicationType == entity.ChannelBoth {
		c.sendEmail(ctx, trip, p, contact, body, contentLabel, result)
	}
	if req.CommunicationType == entity.ChannelWhatsapp || req.CommunicationType == entity.ChannelBoth {
		c.sendWhatsapp(ctx, trip, p, contact, body, contentLabel, result)
	}
}

// skipReason applies the preference gate. The granular receive flags gate
// across ALL requested content types: one disallowed type skips the whole
// send for that passenger.
func skipReason(p *entity.Passenger, contentTypes []string) string {
	if p.NotificationPreference == entity.PreferenceNone {
		return "notifications disabled"
	}
	if p.NotificationPreference == entity.PreferenceMinimal {
		minimal := false
		for _, ct := range contentTypes {
			if ct == entity.ContentFullItinerary || ct == entity.ContentTripBrief {
				minimal = true
				break
			}
		}
		if !minimal {
			return "prefers minimal notifications"
		}
	}

	for _, ct := range contentTypes {
		switch {
		case strings.Contains(ct, "FLIGHT") && !p.ReceiveFlightDetails:
			return "flight details not enabled for this passenger"
		case strings.Contains(ct, "HOTEL") && !p.ReceiveHotelDetails:
			return "hotel details not enabled for this passenger"
		case strings.Contains(ct, "EVENT") && !p.ReceiveEventDetails:
			return "event details not enabled for this passenger"
		case strings.Contains(ct, "ITINERARY") && !p.ReceiveItinerary:
			return "itinerary not enabled for this passenger"
		}
	}

	return ""
}

// renderBody folds the requested content types, in request order, into one
// message fragment. Sections of a kind the trip has no entities for are
// omitted entirely; sections with entities but none linked to this
// passenger keep their header over an empty body.
func (c *NotificationComposer) renderBody(trip *entity.Trip, p *entity.Passenger, req *entity.SendDetailsRequest, displayName string) templates.Fragment {
	frag := templates.Greeting(displayName, req.CustomMessage)

	for _, ct := range req.ContentTypes {
		switch ct {
		case entity.ContentFlightDetails:
			if len(trip.Flights) == 0 {
				continue
			}
			frag = frag.Join(templates.FlightSection(flightsFor(trip.Flights, p)))
		case entity.ContentPrivateJetDetails:
			if len(trip.PrivateJets) == 0 {
				continue
			}
			frag = frag.Join(templates.JetSection(jetsFor(trip.PrivateJets, p)))
		case entity.ContentHotelDetails:
			if len(trip.Hotels) == 0 {
				continue
			}
			frag = frag.Join(templates.HotelSection(hotelsFor(trip.Hotels, p)))
		case entity.ContentEventDetails:
			if len(trip.Events) == 0 {
				continue
			}
			frag = frag.Join(templates.EventSection(eventsFor(trip.Events, p)))
		case entity.ContentFullItinerary:
			// The full itinerary is gated only by ReceiveItinerary, so it
			// carries every section unfiltered by passenger linkage.
			frag = frag.Join(templates.TripHeader(trip))
			if len(trip.Flights) > 0 {
				frag = frag.Join(templates.FlightSection(trip.Flights))
			}
			if len(trip.Hotels) > 0 {
				frag = frag.Join(templates.HotelSection(trip.Hotels))
			}
			if len(trip.Events) > 0 {
				frag = frag.Join(templates.EventSection(trip.Events))
			}
		}
	}

	return frag
}

func (c *NotificationComposer) sendEmail(ctx context.Context, trip *entity.Trip, p *entity.Passenger, contact *entity.Contact, body templates.Fragment, contentLabel string, result *entity.SendDetailsResult) {
	if contact.Email == "" {
		c.metrics.SendErrors.WithLabelValues(entity.ChannelEmail).Inc()
		result.Errors = append(result.Errors, entity.SendError{
			PassengerID: p.ID,
			PersonType:  p.PersonType,
			PersonID:    p.PersonID,
			Channel:     entity.ChannelEmail,
			Reason:      "no email address available",
		})
		return
	}

	subject := templates.Subject(trip)
	messageID, err := c.emailRepo.SendEmail(ctx, &entity.EmailMessage{
		To:      contact.Email,
		Subject: subject,
		Text:    body.Text,
		HTML:    body.HTML,
	})

	receipt := &entity.CommunicationReceipt{
		TripID:      trip.ID,
		PersonType:  p.PersonType,
		PersonID:    p.PersonID,
		Channel:     entity.ChannelEmail,
		ContentType: contentLabel,
		Subject:     subject,
		Body:        body.Text,
		HTMLBody:    body.HTML,
		Status:      entity.ReceiptStatusSent,
		MessageID:   messageID,
		CreatedAt:   time.Now().UTC(),
	}
	if err != nil {
		receipt.Status = entity.ReceiptStatusFailed
		receipt.ErrorDetail = err.Error()
	}

	c.recordAttempt(ctx, p, receipt, err, result)
}

func (c *NotificationComposer) sendWhatsapp(ctx context.Context, trip *entity.Trip, p *entity.Passenger, contact *entity.Contact, body templates.Fragment, contentLabel string, result *entity.SendDetailsResult) {
	if contact.Phone == "" {
		c.metrics.SendErrors.WithLabelValues(entity.ChannelWhatsapp).Inc()
		result.Errors = append(result.Errors, entity.SendError{
			PassengerID: p.ID,
			PersonType:  p.PersonType,
			PersonID:    p.PersonID,
			Channel:     entity.ChannelWhatsapp,
			Reason:      "no phone number available",
		})
		return
	}

	messageID, err := c.whatsappRepo.SendText(ctx, contact.Phone, body.Chat)

	receipt := &entity.CommunicationReceipt{
		TripID:      trip.ID,
		PersonType:  p.PersonType,
		PersonID:    p.PersonID,
		Channel:     entity.ChannelWhatsapp,
		ContentType: contentLabel,
		Body:        body.Chat,
		Status:      entity.ReceiptStatusSent,
		MessageID:   messageID,
		CreatedAt:   time.Now().UTC(),
	}
	if err != nil {
		receipt.Status = entity.ReceiptStatusFailed
		receipt.ErrorDetail = err.Error()
	}

	c.recordAttempt(ctx, p, receipt, err, result)
}

// recordAttempt writes the receipt for one delivery attempt and folds the
// outcome into the result. A receipt-store failure is logged but does not
// fail the attempt.
func (c *NotificationComposer) recordAttempt(ctx context.Context, p *entity.Passenger, receipt *entity.CommunicationReceipt, sendErr error, result *entity.SendDetailsResult) {
	if err := c.receiptRepo.Create(ctx, receipt); err != nil {
		c.logger.Error("Failed to store communication receipt",
			"tripId", receipt.TripID, "channel", receipt.Channel, "error", err)
	}
	result.Receipts = append(result.Receipts, receipt)

	if sendErr != nil {
		c.logger.Error("Delivery failed",
			"passengerId", p.ID, "channel", receipt.Channel, "error", sendErr)
		c.metrics.SendErrors.WithLabelValues(receipt.Channel).Inc()
		result.Errors = append(result.Errors, entity.SendError{
			PassengerID: p.ID,
			PersonType:  p.PersonType,
			PersonID:    p.PersonID,
			Channel:     receipt.Channel,
			Reason:      sendErr.Error(),
		})
		return
	}

	c.metrics.NotificationsSent.WithLabelValues(receipt.Channel).Inc()
	result.CommunicationsSent++
}

// flightsFor keeps the flights whose passenger links match this
// passenger's identity.
func flightsFor(flights []entity.Flight, p *entity.Passenger) []entity.Flight {
	var linked []entity.Flight
	for _, f := range flights {
		for _, fp := range f.Passengers {
			if fp.PersonType == p.PersonType && fp.PersonID == p.PersonID {
				linked = append(linked, f)
				break
			}
		}
	}
	return linked
}

func jetsFor(jets []entity.PrivateJet, p *entity.Passenger) []entity.PrivateJet {
	var linked []entity.PrivateJet
	for _, j := range jets {
		for _, jp := range j.Passengers {
			if jp.PersonType == p.PersonType && jp.PersonID == p.PersonID {
				linked = append(linked, j)
				break
			}
		}
	}
	return linked
}

// hotelsFor keeps the hotels where any room assignment matches this
// passenger's identity.
func hotelsFor(hotels []entity.Hotel, p *entity.Passenger) []entity.Hotel {
	var linked []entity.Hotel
	for _, h := range hotels {
		if hotelHasGuest(h, p) {
			linked = append(linked, h)
		}
	}
	return linked
}

func hotelHasGuest(h entity.Hotel, p *entity.Passenger) bool {
	for _, room := range h.Rooms {
		for _, a := range room.Assignments {
			if a.PersonType == p.PersonType && a.PersonID == p.PersonID {
				return true
			}
		}
	}
	return false
}

func eventsFor(events []entity.TripEvent, p *entity.Passenger) []entity.TripEvent {
	var linked []entity.TripEvent
	for _, e := range events {
		for _, ep := range e.Participants {
			if ep.PersonType == p.PersonType && ep.PersonID == p.PersonID {
				linked = append(linked, e)
				break
			}
		}
	}
	return linked
}
