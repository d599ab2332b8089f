package models

import "time"

// BookingStatus enumerates the lifecycle states of a booking.
type BookingStatus string

const (
	StatusBooked    BookingStatus = "booked"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// ValidBookingStatus reports whether s is one of the enumerated states.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case StatusBooked, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking is a car rental owned by a single user. TotalCost is derived and
// never persisted.
type Booking struct {
	ID         string
	UserID     string
	CarName    string
	Days       int
	RentPerDay int
	Status     BookingStatus
	CreatedAt  time.Time
}

// TotalCost returns the derived rental price.
func (b *Booking) TotalCost() int {
	return b.Days * b.RentPerDay
}

// BookingSummary aggregates a user's non-cancelled bookings.
type BookingSummary struct {
	TotalBookings int
	TotalCost     int
}
