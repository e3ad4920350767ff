package entity

import "time"

// Pod is a bookable unit. Availability flips to false when a booking lands
// and stays false; there is no conflict resolution beyond that.
type Pod struct {
	Id        int
	Name      string
	Available bool
	TimeSlots []string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type Booking struct {
	Id        string // "booking_<uuid>"
	PodId     int
	UserId    string
	TimeSlot  string
	CreatedAt time.Time
}
