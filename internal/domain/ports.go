package domain

import (
	"context"
	"io"
	"time"
)

type UserRepository interface {
	Create(ctx context.Context, u User) (int64, error)
	ByID(ctx context.Context, id int64) (User, error)
	ByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id int64) error
}

type RoomRepository interface {
	Create(ctx context.Context, r Room) (int64, error)
	Update(ctx context.Context, r Room) error
	ByID(ctx context.Context, id int64) (Room, error)
	List(ctx context.Context, limit int) ([]Room, error)
	Types(ctx context.Context) ([]string, error)
	// AvailableBetween returns rooms with no booking overlapping
	// [checkIn, checkOut), optionally filtered by room type.
	AvailableBetween(ctx context.Context, checkIn, checkOut time.Time, roomType string) ([]Room, error)
	Delete(ctx context.Context, id int64) error
}

type BookingRepository interface {
	// Create runs the overlap check and the insert inside one
	// transaction; returns ErrRoomUnavailable when the range collides
	// with an existing booking for the same room.
	Create(ctx context.Context, b Booking) (int64, error)
	ByID(ctx context.Context, id int64) (Booking, error)
	ByConfirmationCode(ctx context.Context, code string) (BookingDetail, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Overlaps(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error)
	List(ctx context.Context, limit int) ([]BookingDetail, error)
	ListForUser(ctx context.Context, userID int64) ([]BookingDetail, error)
	Delete(ctx context.Context, id int64) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, keys ...string) error
}

// MediaStore persists an uploaded room photo and returns a retrievable
// URL. The backend (object storage vs local disk) is fixed at startup.
type MediaStore interface {
	Store(ctx context.Context, r io.Reader, size int64, originalFilename string) (string, error)
}
