package domain

import "time"

// Booking holds a half-open [CheckIn, CheckOut) stay. Two bookings for
// the same room overlap when a.CheckIn < b.CheckOut && a.CheckOut > b.CheckIn.
type Booking struct {
	ID               int64
	RoomID           int64
	UserID           int64
	CheckIn          time.Time
	CheckOut         time.Time
	NumAdults        int
	NumChildren      int
	ConfirmationCode string
	CreatedAt        time.Time
}

func (b Booking) TotalGuests() int { return b.NumAdults + b.NumChildren }

// BookingDetail is the read model returned by lookups and listings:
// the booking plus a summary of the referenced room and user.
type BookingDetail struct {
	Booking
	RoomType     string
	RoomPrice    float64
	RoomPhotoURL string
	UserEmail    string
	UserName     string
}
