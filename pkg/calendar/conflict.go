package calendar

import (
	"traveldesk-service/internal/domain/entity"
)

// Overlaps reports whether the closed date intervals of two trips overlap.
// Both trips must have both dates set; callers filter dateless trips first.
func Overlaps(a, b *entity.Trip) bool {
	return !a.StartDate.After(*b.EndDate) && !b.StartDate.After(*a.EndDate)
}

// DetectConflicts returns, for every trip whose [start, end] interval
// overlaps at least one other trip, the ids of the trips it overlaps.
// Trips missing a start or an end date never conflict and are never
// conflicted with. Both directions of a conflict are recorded, so the map
// is symmetric; value order follows input order. Pure function: the input
// slice is not mutated.
func DetectConflicts(trips []*entity.Trip) map[uint][]uint {
	conflicts := make(map[uint][]uint)

	for i := 0; i < len(trips); i++ {
		a := trips[i]
		if a.StartDate == nil || a.EndDate == nil {
			continue
		}
		for j := i + 1; j < len(trips); j++ {
			b := trips[j]
			if b.StartDate == nil || b.EndDate == nil {
				continue
			}
			if Overlaps(a, b) {
				conflicts[a.ID] = append(conflicts[a.ID], b.ID)
				conflicts[b.ID] = append(conflicts[b.ID], a.ID)
			}
		}
	}

	return conflicts
}
