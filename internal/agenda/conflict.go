package agenda

import "time"

// HasConflict reports whether committing a candidate at (date, timeOfDay)
// would put two active events on the same slot. excludeID skips the event
// being edited or moved so it does not collide with itself; pass 0 for new
// events.
//
// Collision is exact (date, time) equality; denied events never collide.
// The scan is pure and runs against whatever event set the caller holds, so
// it serves both the local pre-check and the authoritative re-check against
// the store's set before commit.
func HasConflict(events []Event, date time.Time, timeOfDay string, excludeID uint) bool {
	for _, ev := range events {
		if excludeID != 0 && ev.ID == excludeID {
			continue
		}
		if ev.Status != StatusActive {
			continue
		}
		if sameDay(ev.EventDate, date) && ev.EventTime == timeOfDay {
			return true
		}
	}
	return false
}
