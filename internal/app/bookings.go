package app

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"aurora_hotel/internal/adapters/observability"
	"aurora_hotel/internal/domain"
)

const (
	codeLen      = 10
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// regeneration attempts before giving up on a free confirmation code
	codeMaxTries = 5
)

type BookingService struct {
	bookings domain.BookingRepository
	rooms    domain.RoomRepository
	users    domain.UserRepository
	cache    domain.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewBookingService(b domain.BookingRepository, r domain.RoomRepository, u domain.UserRepository,
	cache domain.Cache, cacheTTL time.Duration) *BookingService {
	return &BookingService{bookings: b, rooms: r, users: u, cache: cache, cacheTTL: cacheTTL, now: time.Now}
}

type CreateBookingInput struct {
	RoomID      int64
	UserID      int64
	CheckIn     time.Time
	CheckOut    time.Time
	NumAdults   int
	NumChildren int
}

// RoomAvailable answers the read-only availability question with the
// half-open overlap test. No side effects.
func (s *BookingService) RoomAvailable(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	if !checkIn.Before(checkOut) {
		return false, domain.ErrInvalidDateRange
	}
	overlaps, err := s.bookings.Overlaps(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return !overlaps, nil
}

func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (domain.Booking, error) {
	if !in.CheckIn.Before(in.CheckOut) {
		observability.ObserveBooking("invalid")
		return domain.Booking{}, domain.ErrInvalidDateRange
	}
	// compare calendar dates: booking dates parse as UTC midnights, so
	// build today from the clock's date rather than truncating the
	// instant, which would shift by a day around midnight off UTC
	y, mo, d := s.now().Date()
	today := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	if in.CheckOut.Before(today) {
		observability.ObserveBooking("invalid")
		return domain.Booking{}, errValidation("check-out date is in the past")
	}
	if in.NumAdults < 1 {
		observability.ObserveBooking("invalid")
		return domain.Booking{}, errValidation("at least one adult is required")
	}
	if in.NumChildren < 0 {
		observability.ObserveBooking("invalid")
		return domain.Booking{}, errValidation("number of children cannot be negative")
	}

	// Existence checks up front so a missing room/user surfaces as 404,
	// not as an FK failure from the insert.
	if _, err := s.rooms.ByID(ctx, in.RoomID); err != nil {
		return domain.Booking{}, fmt.Errorf("room %d: %w", in.RoomID, err)
	}
	if _, err := s.users.ByID(ctx, in.UserID); err != nil {
		return domain.Booking{}, fmt.Errorf("user %d: %w", in.UserID, err)
	}

	b := domain.Booking{
		RoomID:      in.RoomID,
		UserID:      in.UserID,
		CheckIn:     in.CheckIn,
		CheckOut:    in.CheckOut,
		NumAdults:   in.NumAdults,
		NumChildren: in.NumChildren,
	}

	// The repo re-checks the overlap inside its transaction; the unique
	// code index catches the (tiny) window between CodeExists and the
	// insert, in which case we retry with a fresh code.
	for try := 0; try < codeMaxTries; try++ {
		code, err := s.generateCode(ctx)
		if err != nil {
			return domain.Booking{}, err
		}
		b.ConfirmationCode = code

		id, err := s.bookings.Create(ctx, b)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				continue // code collided, regenerate
			}
			if errors.Is(err, domain.ErrRoomUnavailable) {
				observability.ObserveBooking("unavailable")
			} else {
				observability.ObserveBooking("error")
			}
			return domain.Booking{}, err
		}
		b.ID = id
		s.invalidate(ctx, b)
		observability.ObserveBooking("ok")
		log.Info().Int64("booking_id", id).Int64("room_id", b.RoomID).
			Str("code", b.ConfirmationCode).Msg("booking created")
		return b, nil
	}
	observability.ObserveBooking("error")
	return domain.Booking{}, fmt.Errorf("could not allocate a confirmation code after %d tries", codeMaxTries)
}

func (s *BookingService) FindByConfirmationCode(ctx context.Context, code string) (domain.BookingDetail, error) {
	key := "booking:code:" + code
	var d domain.BookingDetail
	if ok, _ := s.cache.Get(ctx, key, &d); ok {
		return d, nil
	}
	d, err := s.bookings.ByConfirmationCode(ctx, code)
	if err != nil {
		return domain.BookingDetail{}, err
	}
	_ = s.cache.Set(ctx, key, d, int(s.cacheTTL.Seconds()))
	return d, nil
}

func (s *BookingService) ListAll(ctx context.Context, limit int) ([]domain.BookingDetail, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.bookings.List(ctx, limit)
}

func (s *BookingService) HistoryForUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	return s.bookings.ListForUser(ctx, userID)
}

// Owner returns the user id a booking belongs to, for capability checks.
func (s *BookingService) Owner(ctx context.Context, bookingID int64) (int64, error) {
	b, err := s.bookings.ByID(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	return b.UserID, nil
}

// Cancel deletes the booking. A missing id is ErrNotFound: cancelling
// twice tells the second caller the booking is already gone.
func (s *BookingService) Cancel(ctx context.Context, bookingID int64) error {
	b, err := s.bookings.ByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return err
	}
	s.invalidate(ctx, b)
	log.Info().Int64("booking_id", bookingID).Msg("booking cancelled")
	return nil
}

func (s *BookingService) invalidate(ctx context.Context, b domain.Booking) {
	keys := []string{fmt.Sprintf("room:%d", b.RoomID)}
	if b.ConfirmationCode != "" {
		keys = append(keys, "booking:code:"+b.ConfirmationCode)
	}
	_ = s.cache.Del(ctx, keys...)
}

func (s *BookingService) generateCode(ctx context.Context) (string, error) {
	for try := 0; try < codeMaxTries; try++ {
		code, err := randomCode(codeLen)
		if err != nil {
			return "", err
		}
		exists, err := s.bookings.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("confirmation code space exhausted after %d tries", codeMaxTries)
}

func randomCode(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b), nil
}
