package calendar

import (
	"time"

	"traveldesk-service/internal/domain/entity"
)

// DayCell is one cell of a month or week grid.
type DayCell struct {
	Date    time.Time `json:"date"`
	InMonth bool      `json:"inMonth"`
	Weekend bool      `json:"weekend"`
	Today   bool      `json:"today"`
	TripIDs []uint    `json:"tripIds,omitempty"`
}

// MonthGrid builds the 6x7 cell grid for one display month, weeks starting
// on Monday. Each cell lists the trips whose inclusive [start, end] range
// contains that day.
func MonthGrid(year int, month time.Month, now time.Time, trips []*entity.Trip) []DayCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -mondayOffset(first.Weekday()))

	cells := make([]DayCell, 0, 42)
	for i := 0; i < 42; i++ {
		day := start.AddDate(0, 0, i)
		cells = append(cells, newCell(day, day.Month() == month, now, trips))
	}
	return cells
}

// WeekGrid builds the 7 cells of the week containing anchor, starting on
// Monday.
func WeekGrid(anchor time.Time, now time.Time, trips []*entity.Trip) []DayCell {
	day := dateOnly(anchor)
	start := day.AddDate(0, 0, -mondayOffset(day.Weekday()))

	cells := make([]DayCell, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		cells = append(cells, newCell(d, true, now, trips))
	}
	return cells
}

// TripsOnDay returns the ids of trips placed on the given day. A trip with
// both dates is placed on every day of its inclusive range; a trip with
// only a start date is a single-day entry on that date; a trip without a
// start date is never placed.
func TripsOnDay(trips []*entity.Trip, day time.Time) []uint {
	day = dateOnly(day)
	var ids []uint
	for _, t := range trips {
		if t.StartDate == nil {
			continue
		}
		start := dateOnly(*t.StartDate)
		end := start
		if t.EndDate != nil {
			end = dateOnly(*t.EndDate)
		}
		if !day.Before(start) && !day.After(end) {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func newCell(day time.Time, inMonth bool, now time.Time, trips []*entity.Trip) DayCell {
	return DayCell{
		Date:    day,
		InMonth: inMonth,
		Weekend: day.Weekday() == time.Saturday || day.Weekday() == time.Sunday,
		Today:   sameDay(day, now),
		TripIDs: TripsOnDay(trips, day),
	}
}

func mondayOffset(wd time.Weekday) int {
	// time.Weekday numbers Sunday as 0
	return (int(wd) + 6) % 7
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
