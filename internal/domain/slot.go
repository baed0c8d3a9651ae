package domain

import "github.com/m04kA/PawsBubbles-BookingService/pkg/types"

// Slot represents a candidate appointment start time within business hours
type Slot struct {
	StartTime   types.TimeString
	IsAvailable bool
}

// CountAvailable returns how many slots can still be booked
func CountAvailable(slots []Slot) int {
	count := 0
	for _, s := range slots {
		if s.IsAvailable {
			count++
		}
	}
	return count
}

// FindSlot returns the slot starting at the given time
func FindSlot(slots []Slot, start types.TimeString) (Slot, bool) {
	for _, s := range slots {
		if s.StartTime == start {
			return s, true
		}
	}
	return Slot{}, false
}
