package rest

import (
	"net/http"
	"strconv"
	"time"

	"traveldesk-service/pkg/calendar"
)

// calendarData bundles the grid cells with the trip conflict map.
type calendarData struct {
	View      string             `json:"view"`
	Cells     []calendar.DayCell `json:"cells"`
	Conflicts map[uint][]uint    `json:"conflicts"`
}

// calendar handles GET /api/v1/calendar. view=month takes year and month
// query parameters; view=week takes a date (YYYY-MM-DD). Both default to
// the current period.
func (s *Server) calendar(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		s.logger.Error("Failed to load trips for calendar", "error", err)
		respondDomainError(w, err)
		return
	}

	now := time.Now().UTC()
	view := r.URL.Query().Get("view")
	if view == "" {
		view = "month"
	}

	var cells []calendar.DayCell
	switch view {
	case "month":
		year, month := now.Year(), now.Month()
		if raw := r.URL.Query().Get("year"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				year = n
			}
		}
		if raw := r.URL.Query().Get("month"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= 12 {
				month = time.Month(n)
			}
		}
		cells = calendar.MonthGrid(year, month, now, trips)

	case "week":
		anchor := now
		if raw := r.URL.Query().Get("date"); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				respondError(w, http.StatusBadRequest, "invalid date "+raw)
				return
			}
			anchor = parsed
		}
		cells = calendar.WeekGrid(anchor, now, trips)

	default:
		respondError(w, http.StatusBadRequest, "unknown view "+view)
		return
	}

	respondJSON(w, http.StatusOK, "", calendarData{
		View:      view,
		Cells:     cells,
		Conflicts: calendar.DetectConflicts(trips),
	})
}
