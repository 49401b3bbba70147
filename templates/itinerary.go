package templates

import (
	"fmt"
	"html"
	"strings"

	"traveldesk-service/internal/domain/entity"
	"traveldesk-service/pkg/utils"
)

// Fragment carries the three synchronized renderings of one message part.
// Every section renderer returns all three at once so the plain-text, HTML
// and chat bodies cannot drift apart.
type Fragment struct {
	Text string
	HTML string
	Chat string
}

// IsEmpty reports whether the fragment carries no content at all.
func (f Fragment) IsEmpty() bool {
	return f.Text == "" && f.HTML == "" && f.Chat == ""
}

// Join appends other to f, separating non-empty parts with a blank line
// (a break element for HTML).
func (f Fragment) Join(other Fragment) Fragment {
	if f.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return f
	}
	return Fragment{
		Text: f.Text + "\n\n" + other.Text,
		HTML: f.HTML + other.HTML,
		Chat: f.Chat + "\n\n" + other.Chat,
	}
}

// section builds one titled section in all three formats. An empty line
// list still produces the header, never an omitted section.
func section(title string, lines []string) Fragment {
	frag := Fragment{
		Text: title + ":",
		HTML: fmt.Sprintf("<h3>%s</h3>", html.EscapeString(title)),
		Chat: fmt.Sprintf("*%s*", title),
	}

	if len(lines) == 0 {
		return frag
	}

	var htmlItems strings.Builder
	for _, line := range lines {
		frag.Text += "\n  - " + line
		frag.Chat += "\n- " + line
		htmlItems.WriteString("<li>" + html.EscapeString(line) + "</li>")
	}
	frag.HTML += "<ul>" + htmlItems.String() + "</ul>"

	return frag
}

// Greeting opens the message with the recipient's name and the optional
// custom note supplied on the send request.
func Greeting(displayName, customMessage string) Fragment {
	text := fmt.Sprintf("Dear %s,", displayName)
	frag := Fragment{
		Text: text,
		HTML: fmt.Sprintf("<p>Dear %s,</p>", html.EscapeString(displayName)),
		Chat: text,
	}
	if customMessage != "" {
		frag = frag.Join(Fragment{
			Text: customMessage,
			HTML: fmt.Sprintf("<p>%s</p>", html.EscapeString(customMessage)),
			Chat: customMessage,
		})
	}
	return frag
}

// TripHeader renders the trip identifier and its date range. Missing dates
// render as TBD.
func TripHeader(trip *entity.Trip) Fragment {
	line := fmt.Sprintf("Trip %s: %s", trip.RequestNumber, utils.FormatDateRange(trip.StartDate, trip.EndDate))
	return Fragment{
		Text: line,
		HTML: fmt.Sprintf("<h2>%s</h2>", html.EscapeString(line)),
		Chat: fmt.Sprintf("*%s*", line),
	}
}

// FlightSection renders the commercial flight legs linked to the recipient.
func FlightSection(flights []entity.Flight) Fragment {
	lines := make([]string, 0, len(flights))
	for _, f := range flights {
		lines = append(lines, fmt.Sprintf("%s %s: %s to %s, departs %s, arrives %s (ref %s)",
			f.Airline, f.FlightNumber,
			f.DepartureAirport, f.ArrivalAirport,
			utils.FormatDateTime(f.DepartureTime),
			utils.FormatDateTime(f.ArrivalTime),
			utils.OrTBD(f.BookingReference)))
	}
	return section("Flights", lines)
}

// JetSection renders the private jet legs linked to the recipient.
func JetSection(jets []entity.PrivateJet) Fragment {
	lines := make([]string, 0, len(jets))
	for _, j := range jets {
		lines = append(lines, fmt.Sprintf("%s %s: %s to %s, departs %s (ref %s)",
			j.Operator, j.TailNumber,
			j.DepartureAirport, j.ArrivalAirport,
			utils.FormatDateTime(j.DepartureTime),
			utils.OrTBD(j.BookingReference)))
	}
	return section("Private Jets", lines)
}

// HotelSection renders the hotel bookings linked to the recipient.
func HotelSection(hotels []entity.Hotel) Fragment {
	lines := make([]string, 0, len(hotels))
	for _, h := range hotels {
		lines = append(lines, fmt.Sprintf("%s, %s: check-in %s, check-out %s (conf %s)",
			h.Name, h.City,
			utils.FormatDate(h.CheckIn),
			utils.FormatDate(h.CheckOut),
			utils.OrTBD(h.ConfirmationNumber)))
	}
	return section("Hotels", lines)
}

// EventSection renders the trip events linked to the recipient.
func EventSection(events []entity.TripEvent) Fragment {
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, fmt.Sprintf("%s at %s, %s",
			e.Title,
			utils.OrTBD(e.Location),
			utils.FormatDateTime(e.StartTime)))
	}
	return section("Events", lines)
}

// Subject builds the email subject line for a trip notification.
func Subject(trip *entity.Trip) string {
	return fmt.Sprintf("Travel Details for Trip %s", trip.RequestNumber)
}
