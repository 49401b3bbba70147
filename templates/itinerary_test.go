package templates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"traveldesk-service/internal/domain/entity"
	"traveldesk-service/templates"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestGreeting(t *testing.T) {
	frag := templates.Greeting("Budi Santoso", "")

	assert.Equal(t, "Dear Budi Santoso,", frag.Text)
	assert.Equal(t, "<p>Dear Budi Santoso,</p>", frag.HTML)
	assert.Equal(t, frag.Text, frag.Chat)
}

func TestGreetingWithCustomMessage(t *testing.T) {
	frag := templates.Greeting("Budi Santoso", "Visa documents attached separately.")

	assert.Equal(t, "Dear Budi Santoso,\n\nVisa documents attached separately.", frag.Text)
	assert.Contains(t, frag.HTML, "<p>Visa documents attached separately.</p>")
	assert.Contains(t, frag.Chat, "Visa documents attached separately.")
}

func TestGreetingEscapesHTML(t *testing.T) {
	frag := templates.Greeting("PT <Maju> & Co", "")

	assert.Contains(t, frag.HTML, "PT &lt;Maju&gt; &amp; Co")
	assert.Contains(t, frag.Text, "PT <Maju> & Co", "plain text is never escaped")
}

func TestTripHeader(t *testing.T) {
	trip := &entity.Trip{
		RequestNumber: "TR-2026-0012",
		StartDate:     datePtr(2026, 3, 2),
		EndDate:       datePtr(2026, 3, 9),
	}

	frag := templates.TripHeader(trip)

	assert.Equal(t, "Trip TR-2026-0012: 02 Mar 2026 - 09 Mar 2026", frag.Text)
	assert.Equal(t, "*Trip TR-2026-0012: 02 Mar 2026 - 09 Mar 2026*", frag.Chat)
}

func TestTripHeaderDatelessTrip(t *testing.T) {
	frag := templates.TripHeader(&entity.Trip{RequestNumber: "TR-2026-0013"})

	assert.Equal(t, "Trip TR-2026-0013: TBD", frag.Text)
}

func TestFlightSection(t *testing.T) {
	depart := time.Date(2026, 3, 2, 8, 45, 0, 0, time.UTC)
	arrive := time.Date(2026, 3, 2, 11, 20, 0, 0, time.UTC)
	frag := templates.FlightSection([]entity.Flight{
		{
			Airline: "Singapore Airlines", FlightNumber: "SQ-951",
			DepartureAirport: "CGK", ArrivalAirport: "SIN",
			DepartureTime: &depart, ArrivalTime: &arrive,
			BookingReference: "XK9P2L",
		},
	})

	assert.Equal(t, "Flights:\n  - Singapore Airlines SQ-951: CGK to SIN, departs 02 Mar 2026 08:45, arrives 02 Mar 2026 11:20 (ref XK9P2L)", frag.Text)
	assert.Equal(t, "<h3>Flights</h3><ul><li>Singapore Airlines SQ-951: CGK to SIN, departs 02 Mar 2026 08:45, arrives 02 Mar 2026 11:20 (ref XK9P2L)</li></ul>", frag.HTML)
	assert.Equal(t, "*Flights*\n- Singapore Airlines SQ-951: CGK to SIN, departs 02 Mar 2026 08:45, arrives 02 Mar 2026 11:20 (ref XK9P2L)", frag.Chat)
}

func TestFlightSectionMissingTimesRenderTBD(t *testing.T) {
	frag := templates.FlightSection([]entity.Flight{
		{Airline: "Garuda Indonesia", FlightNumber: "GA-402", DepartureAirport: "CGK", ArrivalAirport: "DPS"},
	})

	assert.Contains(t, frag.Text, "departs TBD, arrives TBD (ref TBD)")
}

func TestEmptySectionKeepsHeader(t *testing.T) {
	frag := templates.HotelSection(nil)

	assert.Equal(t, "Hotels:", frag.Text)
	assert.Equal(t, "<h3>Hotels</h3>", frag.HTML)
	assert.Equal(t, "*Hotels*", frag.Chat)
	assert.False(t, frag.IsEmpty())
}

func TestHotelSection(t *testing.T) {
	frag := templates.HotelSection([]entity.Hotel{
		{
			Name: "Mandarin Oriental", City: "Jakarta",
			CheckIn:            datePtr(2026, 3, 2),
			CheckOut:           datePtr(2026, 3, 5),
			ConfirmationNumber: "HM-44821",
		},
	})

	assert.Contains(t, frag.Text, "Mandarin Oriental, Jakarta: check-in 02 Mar 2026, check-out 05 Mar 2026 (conf HM-44821)")
}

func TestEventSection(t *testing.T) {
	start := time.Date(2026, 3, 3, 19, 0, 0, 0, time.UTC)
	frag := templates.EventSection([]entity.TripEvent{
		{Title: "Gala dinner", Location: "Shangri-La ballroom", StartTime: &start},
		{Title: "Factory visit"},
	})

	assert.Contains(t, frag.Text, "Gala dinner at Shangri-La ballroom, 03 Mar 2026 19:00")
	assert.Contains(t, frag.Text, "Factory visit at TBD, TBD")
}

func TestJetSection(t *testing.T) {
	depart := time.Date(2026, 3, 6, 14, 0, 0, 0, time.UTC)
	frag := templates.JetSection([]entity.PrivateJet{
		{Operator: "VistaJet", TailNumber: "9H-VJA", DepartureAirport: "SIN", ArrivalAirport: "HLP", DepartureTime: &depart},
	})

	assert.Contains(t, frag.Text, "VistaJet 9H-VJA: SIN to HLP, departs 06 Mar 2026 14:00 (ref TBD)")
	assert.Contains(t, frag.Chat, "*Private Jets*")
}

func TestFragmentJoin(t *testing.T) {
	a := templates.Greeting("Ana", "")
	b := templates.HotelSection(nil)

	joined := a.Join(b)

	assert.Equal(t, "Dear Ana,\n\nHotels:", joined.Text)
	assert.Equal(t, "<p>Dear Ana,</p><h3>Hotels</h3>", joined.HTML)
	assert.Equal(t, "Dear Ana,\n\n*Hotels*", joined.Chat)
}

func TestFragmentJoinEmptySides(t *testing.T) {
	frag := templates.HotelSection(nil)

	assert.Equal(t, frag, templates.Fragment{}.Join(frag))
	assert.Equal(t, frag, frag.Join(templates.Fragment{}))
	assert.True(t, templates.Fragment{}.IsEmpty())
}

func TestSubject(t *testing.T) {
	subject := templates.Subject(&entity.Trip{RequestNumber: "TR-2026-0044"})

	assert.Equal(t, "Travel Details for Trip TR-2026-0044", subject)
}
