package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traveldesk-service/internal/domain/entity"
	"traveldesk-service/internal/domain/repository"
	"traveldesk-service/internal/usecase"
	"traveldesk-service/pkg/logger"
	"traveldesk-service/pkg/metrics"
)

// ---- test doubles ----------------------------------------------------------

// mockTripRepo is a test double for repository.TripRepository. Set only the
// method fields your test needs.
type mockTripRepo struct {
	repository.TripRepository
	findWithSections func(ctx context.Context, id uint) (*entity.Trip, error)
	findPassengers   func(ctx context.Context, ids []uint, tripID uint) ([]*entity.Passenger, error)
}

func (m *mockTripRepo) FindWithSections(ctx context.Context, id uint) (*entity.Trip, error) {
	return m.findWithSections(ctx, id)
}

func (m *mockTripRepo) FindPassengers(ctx context.Context, ids []uint, tripID uint) ([]*entity.Passenger, error) {
	return m.findPassengers(ctx, ids, tripID)
}

type mockPersonRepo struct {
	findContact func(ctx context.Context, personType string, personID uint) (*entity.Contact, error)
}

func (m *mockPersonRepo) FindContact(ctx context.Context, personType string, personID uint) (*entity.Contact, error) {
	return m.findContact(ctx, personType, personID)
}

// mockReceiptRepo records every receipt it is asked to store.
type mockReceiptRepo struct {
	created []*entity.CommunicationReceipt
	err     error
}

func (m *mockReceiptRepo) Create(_ context.Context, receipt *entity.CommunicationReceipt) error {
	m.created = append(m.created, receipt)
	return m.err
}

func (m *mockReceiptRepo) FindByTrip(context.Context, uint, int) ([]*entity.CommunicationReceipt, error) {
	return nil, errors.New("not implemented")
}

// mockEmailRepo records sent emails and returns a canned message id.
type mockEmailRepo struct {
	sent []*entity.EmailMessage
	err  error
}

func (m *mockEmailRepo) SendEmail(_ context.Context, msg *entity.EmailMessage) (string, error) {
	m.sent = append(m.sent, msg)
	if m.err != nil {
		return "", m.err
	}
	return "email-msg-1", nil
}

// mockWhatsappRepo records sent chat messages.
type mockWhatsappRepo struct {
	sent []string
	err  error
}

func (m *mockWhatsappRepo) SendText(_ context.Context, phone, message string) (string, error) {
	m.sent = append(m.sent, message)
	if m.err != nil {
		return "", m.err
	}
	return "wa-task-1", nil
}

// ---- fixtures --------------------------------------------------------------

type composerEnv struct {
	trips    *mockTripRepo
	persons  *mockPersonRepo
	receipts *mockReceiptRepo
	email    *mockEmailRepo
	whatsapp *mockWhatsappRepo
	composer *usecase.NotificationComposer
}

func newComposerEnv(trip *entity.Trip, passengers []*entity.Passenger, contact *entity.Contact) *composerEnv {
	env := &composerEnv{
		trips: &mockTripRepo{
			findWithSections: func(_ context.Context, id uint) (*entity.Trip, error) {
				if trip == nil || trip.ID != id {
					return nil, entity.ErrNotFound
				}
				return trip, nil
			},
			findPassengers: func(_ context.Context, ids []uint, tripID uint) ([]*entity.Passenger, error) {
				var matched []*entity.Passenger
				for _, p := range passengers {
					if p.TripID != tripID {
						continue
					}
					for _, id := range ids {
						if p.ID == id {
							matched = append(matched, p)
						}
					}
				}
				return matched, nil
			},
		},
		persons: &mockPersonRepo{
			findContact: func(context.Context, string, uint) (*entity.Contact, error) {
				if contact == nil {
					return nil, entity.ErrNotFound
				}
				return contact, nil
			},
		},
		receipts: &mockReceiptRepo{},
		email:    &mockEmailRepo{},
		whatsapp: &mockWhatsappRepo{},
	}

	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	env.composer = usecase.NewNotificationComposer(
		env.trips, env.persons, env.receipts, env.email, env.whatsapp, m, logger.NewLoggerWithLevel("fatal"))
	return env
}

func tsPtr(t time.Time) *time.Time { return &t }

func sampleTrip() *entity.Trip {
	depart := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
	arrive := time.Date(2026, 1, 5, 12, 10, 0, 0, time.UTC)
	return &entity.Trip{
		ID:            10,
		RequestNumber: "TR-2026-0003",
		Status:        entity.TripStatusPlanning,
		StartDate:     tsPtr(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)),
		EndDate:       tsPtr(time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)),
		Flights: []entity.Flight{
			{
				ID: 1, TripID: 10, Airline: "Garuda Indonesia", FlightNumber: "GA-862",
				DepartureAirport: "CGK", ArrivalAirport: "SIN",
				DepartureTime: &depart, ArrivalTime: &arrive, BookingReference: "ABC123",
				Passengers: []entity.FlightPassenger{
					{FlightID: 1, PersonType: entity.PersonTypeEmployee, PersonID: 100},
				},
			},
		},
		Hotels: []entity.Hotel{
			{
				ID: 2, TripID: 10, Name: "Raffles", City: "Singapore",
				CheckIn:  tsPtr(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)),
				CheckOut: tsPtr(time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)),
				Rooms: []entity.HotelRoom{
					{ID: 5, HotelID: 2, RoomType: "Suite", Assignments: []entity.RoomAssignment{
						{RoomID: 5, PersonType: entity.PersonTypeStakeholder, PersonID: 200},
					}},
				},
			},
		},
		Events: []entity.TripEvent{
			{
				ID: 3, TripID: 10, Title: "Embassy appointment", Location: "Singapore",
				StartTime: tsPtr(time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)),
				Participants: []entity.EventParticipant{
					{EventID: 3, PersonType: entity.PersonTypeEmployee, PersonID: 100},
				},
			},
		},
	}
}

func samplePassenger() *entity.Passenger {
	return &entity.Passenger{
		ID:                     50,
		TripID:                 10,
		PersonType:             entity.PersonTypeEmployee,
		PersonID:               100,
		ReceiveFlightDetails:   true,
		ReceiveHotelDetails:    true,
		ReceiveEventDetails:    true,
		ReceiveItinerary:       true,
		NotificationPreference: entity.PreferenceAll,
	}
}

func sampleContact() *entity.Contact {
	return &entity.Contact{ID: 100, DisplayName: "Amira Rahman", Email: "amira@example.com", Phone: "+62 812-0000-1111"}
}

func sendReq(channel string, contentTypes ...string) *entity.SendDetailsRequest {
	return &entity.SendDetailsRequest{
		TripID:            10,
		PassengerIDs:      []uint{50},
		ContentTypes:      contentTypes,
		CommunicationType: channel,
	}
}

// ---- validation ------------------------------------------------------------

func TestSendTravelDetails_EmptyPassengerList(t *testing.T) {
	env := newComposerEnv(sampleTrip(), nil, sampleContact())

	req := sendReq(entity.ChannelEmail, entity.ContentFlightDetails)
	req.PassengerIDs = nil

	_, err := env.composer.SendTravelDetails(context.Background(), req)

	require.ErrorIs(t, err, entity.ErrInvalidRequest)
	assert.Empty(t, env.receipts.created, "validation failure must not write receipts")
	assert.Empty(t, env.email.sent)
}

func TestSendTravelDetails_EmptyContentTypes(t *testing.T) {
	env := newComposerEnv(sampleTrip(), nil, sampleContact())

	_, err := env.composer.SendTravelDetails(context.Background(), sendReq(entity.ChannelEmail))

	require.ErrorIs(t, err, entity.ErrInvalidRequest)
}

func TestSendTravelDetails_UnknownChannel(t *testing.T) {
	env := newComposerEnv(sampleTrip(), nil, sampleContact())

	_, err := env.composer.SendTravelDetails(context.Background(), sendReq("CARRIER_PIGEON", entity.ContentFlightDetails))

	require.ErrorIs(t, err, entity.ErrInvalidRequest)
}

func TestSendTravelDetails_TripNotFound(t *testing.T) {
	env := newComposerEnv(nil, nil, sampleContact())

	_, err := env.composer.SendTravelDetails(context.Background(), sendReq(entity.ChannelEmail, entity.ContentFlightDetails))

	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestSendTravelDetails_NoPassengersResolve(t *testing.T) {
	env := newComposerEnv(sampleTrip(), nil, sampleContact())

	_, err := env.composer.SendTravelDetails(context.Background(), sendReq(entity.ChannelEmail, entity.ContentFlightDetails))

	require.ErrorIs(t, err, entity.ErrNotFound)
	assert.Empty(t, env.receipts.created)
}

// ---- preference gate -------------------------------------------------------

func TestSendTravelDetails_PreferenceNoneSkips(t *testing.T) {
	p := samplePassenger()
	p.NotificationPreference = entity.PreferenceNone
	env := newComposerEnv(sampleTrip(), []*entity.Passenger{p}, sampleContact())

	result, err := env.composer.SendTravelDetails(context.Background(), sendReq(entity.ChannelBoth, entity.ContentFullItinerary))

	require.NoError(t, err)
	assert.Zero(t, result.CommunicationsSent)
	assert.Empty(t, result.Receipts)
	assert.Empty(t, env.email.sent, "NONE must never reach a transport")
	assert.Empty(t, env.whatsapp.sent)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "notifications disabled", result.Errors[0].Reason)
}

func TestSendTravelDetails_PreferenceMinimalRequiresItineraryOrBrief(t *testing.T) {
	p := samplePassenger()
	p.NotificationPreference = entity.PreferenceMinimal
	env := newComposerEnv(sampleTrip(), []*entity.Passenger{p}, sampleContact())

	result, err := env.composer.SendTravelDetails(context.Background(), sendReq(entity.ChannelEmail, entity.ContentFlightDetails))

	require.NoError(t, err)
	assert.Empty(t, result.Receipts)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "prefers minimal notifications", result.Errors[0].Reason)
}

func TestSendTravelDetails_PreferenceMinimalAllowsFullItinerary(t *testing.T) {
	p := samplePassenger()
	p.NotificationPreference = entity.PreferenceMinimal
	env := newComposerEnv(sampleTrip(), []*entity.Passenger{p}, sampleContact())

	result, err := env.composer.SendTravelDetails(context.Background(), sendReq(entity.ChannelEmail, entity.ContentFullItinerary))

	require.NoError(t, err)
	assert.Equal(t, 1, result.CommunicationsSent)
	require.Len(t, env.email.sent, 1)
}

func TestSendTravelDetails_DisallowedFlagSkips(t *testing.T) {
	p := samplePassenger()
	p.ReceiveFlightDetails = false
	env := newComposerEnv(sampleTrip(), []*entity.Passenger{p}, sampleContact())

	result, err := env.composer.SendTravelDetails(context.Background(), sendReq(entity.ChannelEmail, entity.ContentFlightDetails))

	require.NoError(t, err)
	assert.Empty(t, result.Receipts)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Reason, "flight details not enabled")
}

func TestSendTravelDetails_OneDisallowedTypeSkipsWholeSend(t *testing.T) {
	// The granular flags gate across ALL requested types: even though the
	// passenger may receive the itinerary, the disallowed flight type skips
	// the entire send.
	p := samplePassenger()
	p.ReceiveFlightDetails = false
	env := newComposerEnv(sampleTrip(), []*entity.Passenger{p}, sampleContact())

	result, err := env.composer.SendTravelDetails(context.Background(),
		sendReq(entity.ChannelEmail, entity.ContentFullItinerary, entity.ContentFlightDetails))

	require.NoError(t, err)
	assert.Empty(t, result.Receipts)
	assert.Empty(t, env.email.sent)
	require.Len(t, result.Errors, 1)
}

func TestSendTravelDetails_PersonNotFound(t *testing.T) {
	env := newComposerEnv(sampleTrip(), []*entity.Passenger{samplePassenger()}, nil)

	result, err := env.composer.SendTravelDetails(context.Background(), sendReq(entity.ChannelEmail, entity.ContentFlightDetails))

	require.NoError(t, err)
	assert.Empty(t, result.Receipts)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "person details not found", result.Errors[0].Reason)
}

// ---- delivery --------------------------------------------------------------

func TestSendTravelDetails_EmailHappyPath(t *testing.T) {
	env := newComposerEnv(sampleTrip(), []*entity.Passenger{samplePassenger()}, sampleContact())

	result, err := env.composer.SendTravelDetails(context.Background(), sendReq(entity.ChannelEmail, entity.ContentFlightDetails))

	require.NoError(t, err)
	assert.Equal(t, 1, result.CommunicationsSent)
	assert.Empty(t, result.Errors)

	require.Len(t, env.email.sent, 1)
	msg := env.email.sent[0]
	assert.Equal(t, "amira@example.com", msg.To)
	assert.Equal(t, "Travel Details for Trip TR-2026-0003", msg.Subject)
	assert.Contains(t, msg.Text, "Dear Amira Rahman,")
	assert.Contains(t, msg.Text, "Garuda Indonesia GA-862")
	assert.Contains(t, msg.HTML, "<h3>Flights</h3>")

	require.Len(t, result.Receipts, 1)
	receipt := result.Receipts[0]
	assert.Equal(t, entity.ReceiptStatusSent, receipt.Status)
	assert.Equal(t, entity.ChannelEmail, receipt.Channel)
	assert.Equal(t, "email-msg-1", receipt.MessageID)
	assert.Equal(t, entity.ContentFlightDetails, receipt.ContentType)
	assert.Equal(t, uint(10), receipt.TripID)
	assert.Equal(t, entity.PersonTypeEmployee, receipt.PersonType)
	require.Len(t, env.receipts.created, 1, "receipt must be persisted")
}

func TestSendTravelDetails_BothWithMissingPhone(t *testing.T) {
	contact := sampleContact()
	contact.Phone = ""
	env := newComposerEnv(sampleTrip(), []*entity.Passenger{samplePassenger()}, contact)

	result, err := env.composer.SendTravelDetails(context.Background(), sendReq(entity.ChannelBoth, entity.ContentFlightDetails))

	require.NoError(t, err)
	assert.Equal(t, 1, result.CommunicationsSent)
	require.Len(t, result.Receipts, 1, "only the email attempt produces a receipt")
	assert.Equal(t, entity.ChannelEmail, result.Receipts[0].Channel)
	assert.Empty(t, env.whatsapp.sent)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, entity.ChannelWhatsapp, result.Errors[0].Channel)
	assert.Equal(t, "no phone number available", result.Errors[0].Reason)
}

func TestSendTravelDetails_TransportFailureRecordsFailedReceipt(t *testing.T) {
	env := newComposerEnv(sampleTrip(), []*entity.Passenger{samplePassenger()}, sampleContact())
	env.email.err = errors.New("smtp unreachable")

	result, err := env.composer.SendTravelDetails(context.Background(), sendReq(entity.ChannelEmail, entity.ContentFlightDetails))

	require.NoError(t, err, "transport failures are recorded, not raised")
	assert.Zero(t, result.CommunicationsSent)
	require.Len(t, result.Receipts, 1)
	assert.Equal(t, entity.ReceiptStatusFailed, result.Receipts[0].Status)
	assert.Equal(t, "smtp unreachable", result.Receipts[0].ErrorDetail)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "smtp unreachable", result.Errors[0].Reason)
}

func TestSendTravelDetails_OnePassengerFailureDoesNotAbortOthers(t *testing.T) {
	blocked := samplePassenger()
	blocked.NotificationPreference = entity.PreferenceNone

	second := samplePassenger()
	second.ID = 51

	env := newComposerEnv(sampleTrip(), []*entity.Passenger{blocked, second}, sampleContact())

	req := sendReq(entity.ChannelEmail, entity.ContentFlightDetails)
	req.PassengerIDs = []uint{50, 51}

	result, err := env.composer.SendTravelDetails(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 1, result.CommunicationsSent)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, uint(50), result.Errors[0].PassengerID)
}

func TestSendTravelDetails_WhatsappUsesChatBody(t *testing.T) {
	env := newComposerEnv(sampleTrip(), []*entity.Passenger{samplePassenger()}, sampleContact())

	result, err := env.composer.SendTravelDetails(context.Background(), sendReq(entity.ChannelWhatsapp, entity.ContentFlightDetails))

	require.NoError(t, err)
	assert.Equal(t, 1, result.CommunicationsSent)
	assert.Empty(t, env.email.sent)
	require.Len(t, env.whatsapp.sent, 1)
	assert.Contains(t, env.whatsapp.sent[0], "*Flights*", "chat body uses WhatsApp markup")

	require.Len(t, result.Receipts, 1)
	assert.Empty(t, result.Receipts[0].Subject, "chat receipts carry no subject")
	assert.Empty(t, result.Receipts[0].HTMLBody)
}

// ---- rendering -------------------------------------------------------------

func TestSendTravelDetails_SectionOmittedWhenTripHasNone(t *testing.T) {
	trip := sampleTrip()
	trip.Hotels = nil
	env := newComposerEnv(trip, []*entity.Passenger{samplePassenger()}, sampleContact())

	_, err := env.composer.SendTravelDetails(context.Background(),
		sendReq(entity.ChannelEmail, entity.ContentHotelDetails, entity.ContentFlightDetails))

	require.NoError(t, err)
	require.Len(t, env.email.sent, 1)
	body := env.email.sent[0].Text
	assert.NotContains(t, body, "Hotels", "no hotels on the trip omits the whole section")
	assert.Contains(t, body, "Flights:", "other requested sections still render")
}

func TestSendTravelDetails_UnlinkedSectionKeepsHeaderWithEmptyBody(t *testing.T) {
	// The trip has one hotel but its only room is assigned to a different
	// identity, so the section renders as a bare header.
	env := newComposerEnv(sampleTrip(), []*entity.Passenger{samplePassenger()}, sampleContact())

	_, err := env.composer.SendTravelDetails(context.Background(), sendReq(entity.ChannelEmail, entity.ContentHotelDetails))

	require.NoError(t, err)
	require.Len(t, env.email.sent, 1)
	body := env.email.sent[0].Text
	assert.Contains(t, body, "Hotels:")
	assert.NotContains(t, body, "Raffles")
}

func TestSendTravelDetails_FullItineraryUnfilteredByLinkage(t *testing.T) {
	env := newComposerEnv(sampleTrip(), []*entity.Passenger{samplePassenger()}, sampleContact())

	_, err := env.composer.SendTravelDetails(context.Background(), sendReq(entity.ChannelEmail, entity.ContentFullItinerary))

	require.NoError(t, err)
	require.Len(t, env.email.sent, 1)
	body := env.email.sent[0].Text
	assert.Contains(t, body, "Trip TR-2026-0003: 05 Jan 2026 - 12 Jan 2026")
	assert.Contains(t, body, "Garuda Indonesia GA-862")
	assert.Contains(t, body, "Raffles", "full itinerary includes hotels the passenger is not linked to")
	assert.Contains(t, body, "Embassy appointment")
}

func TestSendTravelDetails_CustomMessagePrepended(t *testing.T) {
	env := newComposerEnv(sampleTrip(), []*entity.Passenger{samplePassenger()}, sampleContact())

	req := sendReq(entity.ChannelEmail, entity.ContentFlightDetails)
	req.CustomMessage = "Please pack formal attire."

	_, err := env.composer.SendTravelDetails(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, env.email.sent, 1)
	body := env.email.sent[0].Text
	idx := strings.Index(body, "Please pack formal attire.")
	require.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, strings.Index(body, "Flights:"), "custom message precedes the sections")
}

func TestSendTravelDetails_ContentLabelJoinsRequestedTypes(t *testing.T) {
	env := newComposerEnv(sampleTrip(), []*entity.Passenger{samplePassenger()}, sampleContact())

	result, err := env.composer.SendTravelDetails(context.Background(),
		sendReq(entity.ChannelEmail, entity.ContentFlightDetails, entity.ContentEventDetails))

	require.NoError(t, err)
	require.Len(t, result.Receipts, 1)
	assert.Equal(t, "FLIGHT_DETAILS,EVENT_DETAILS", result.Receipts[0].ContentType)
}
