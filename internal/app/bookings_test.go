package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"aurora_hotel/internal/app"
	"aurora_hotel/internal/domain"
)

// ---- fakes ----

type fakeBookings struct {
	byID    map[int64]domain.Booking
	byCode  map[string]domain.Booking
	nextID  int64
	creates int
	// number of leading Create calls to reject with ErrConflict,
	// simulating the unique code index winning a race that CodeExists
	// missed
	conflictFirst int
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{byID: map[int64]domain.Booking{}, byCode: map[string]domain.Booking{}, nextID: 1}
}

func (f *fakeBookings) overlaps(roomID int64, in, out time.Time) bool {
	for _, b := range f.byID {
		if b.RoomID == roomID && b.CheckIn.Before(out) && b.CheckOut.After(in) {
			return true
		}
	}
	return false
}

func (f *fakeBookings) Create(ctx context.Context, b domain.Booking) (int64, error) {
	f.creates++
	if f.conflictFirst > 0 {
		f.conflictFirst--
		return 0, fmt.Errorf("confirmation code: %w", domain.ErrConflict)
	}
	if f.overlaps(b.RoomID, b.CheckIn, b.CheckOut) {
		return 0, domain.ErrRoomUnavailable
	}
	b.ID = f.nextID
	f.nextID++
	f.byID[b.ID] = b
	f.byCode[b.ConfirmationCode] = b
	return b.ID, nil
}

func (f *fakeBookings) ByID(ctx context.Context, id int64) (domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, nil
}

func (f *fakeBookings) ByConfirmationCode(ctx context.Context, code string) (domain.BookingDetail, error) {
	b, ok := f.byCode[code]
	if !ok {
		return domain.BookingDetail{}, domain.ErrNotFound
	}
	return domain.BookingDetail{Booking: b}, nil
}

func (f *fakeBookings) CodeExists(ctx context.Context, code string) (bool, error) {
	_, ok := f.byCode[code]
	return ok, nil
}

func (f *fakeBookings) Overlaps(ctx context.Context, roomID int64, in, out time.Time) (bool, error) {
	return f.overlaps(roomID, in, out), nil
}

func (f *fakeBookings) List(ctx context.Context, limit int) ([]domain.BookingDetail, error) {
	var out []domain.BookingDetail
	for _, b := range f.byID {
		out = append(out, domain.BookingDetail{Booking: b})
	}
	return out, nil
}

func (f *fakeBookings) ListForUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	var out []domain.BookingDetail
	for _, b := range f.byID {
		if b.UserID == userID {
			out = append(out, domain.BookingDetail{Booking: b})
		}
	}
	return out, nil
}

func (f *fakeBookings) Delete(ctx context.Context, id int64) error {
	b, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	delete(f.byCode, b.ConfirmationCode)
	return nil
}

type fakeRooms struct{ rooms map[int64]domain.Room }

func (f *fakeRooms) Create(ctx context.Context, r domain.Room) (int64, error) { return 0, nil }
func (f *fakeRooms) Update(ctx context.Context, r domain.Room) error          { return nil }
func (f *fakeRooms) ByID(ctx context.Context, id int64) (domain.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	return r, nil
}
func (f *fakeRooms) List(ctx context.Context, limit int) ([]domain.Room, error) { return nil, nil }
func (f *fakeRooms) Types(ctx context.Context) ([]string, error)                { return nil, nil }
func (f *fakeRooms) AvailableBetween(ctx context.Context, in, out time.Time, roomType string) ([]domain.Room, error) {
	return nil, nil
}
func (f *fakeRooms) Delete(ctx context.Context, id int64) error { return nil }

type fakeUsers struct{ users map[int64]domain.User }

func (f *fakeUsers) Create(ctx context.Context, u domain.User) (int64, error) { return 0, nil }
func (f *fakeUsers) ByID(ctx context.Context, id int64) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}
func (f *fakeUsers) ByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}
func (f *fakeUsers) List(ctx context.Context) ([]domain.User, error) { return nil, nil }
func (f *fakeUsers) Delete(ctx context.Context, id int64) error      { return nil }

type fakeCache struct{ store map[string]any }

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok2 := dst.(*domain.BookingDetail); ok2 {
		*d = v.(domain.BookingDetail)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.store, k)
	}
	return nil
}

// ---- helpers ----

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newBookingService(fb *fakeBookings) *app.BookingService {
	rooms := &fakeRooms{rooms: map[int64]domain.Room{1: {ID: 1, Type: "Deluxe"}}}
	users := &fakeUsers{users: map[int64]domain.User{7: {ID: 7, Email: "a@x.com"}}}
	return app.NewBookingService(fb, rooms, users, &fakeCache{}, 5*time.Minute)
}

func mustCreate(t *testing.T, s *app.BookingService, in app.CreateBookingInput) domain.Booking {
	t.Helper()
	b, err := s.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return b
}

// ---- tests ----

func TestCreate_OverlapRejected_AdjacentAccepted(t *testing.T) {
	fb := newFakeBookings()
	s := newBookingService(fb)

	base := app.CreateBookingInput{
		RoomID: 1, UserID: 7,
		CheckIn: date("2030-06-01"), CheckOut: date("2030-06-05"),
		NumAdults: 2,
	}
	mustCreate(t, s, base)

	// overlapping [06-04, 06-08) must be rejected
	over := base
	over.CheckIn, over.CheckOut = date("2030-06-04"), date("2030-06-08")
	if _, err := s.Create(context.Background(), over); !errors.Is(err, domain.ErrRoomUnavailable) {
		t.Fatalf("expected ErrRoomUnavailable, got %v", err)
	}

	// adjacent [06-05, 06-08) shares only the boundary; half-open, no overlap
	adj := base
	adj.CheckIn, adj.CheckOut = date("2030-06-05"), date("2030-06-08")
	mustCreate(t, s, adj)
}

func TestCreate_InvalidDates(t *testing.T) {
	s := newBookingService(newFakeBookings())

	in := app.CreateBookingInput{
		RoomID: 1, UserID: 7,
		CheckIn: date("2030-06-05"), CheckOut: date("2030-06-05"),
		NumAdults: 1,
	}
	if _, err := s.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Fatalf("equal dates: expected ErrInvalidDateRange, got %v", err)
	}

	in.CheckIn, in.CheckOut = date("2020-01-01"), date("2020-01-05")
	var ve app.ValidationError
	if _, err := s.Create(context.Background(), in); !errors.As(err, &ve) {
		t.Fatalf("past check-out: expected ValidationError, got %v", err)
	}

	in.CheckIn, in.CheckOut = date("2030-06-01"), date("2030-06-05")
	in.NumAdults = 0
	if _, err := s.Create(context.Background(), in); !errors.As(err, &ve) {
		t.Fatalf("zero adults: expected ValidationError, got %v", err)
	}
}

func TestCreate_UnknownRoomOrUser(t *testing.T) {
	s := newBookingService(newFakeBookings())

	in := app.CreateBookingInput{
		RoomID: 99, UserID: 7,
		CheckIn: date("2030-06-01"), CheckOut: date("2030-06-05"),
		NumAdults: 1,
	}
	if _, err := s.Create(context.Background(), in); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown room: expected ErrNotFound, got %v", err)
	}

	in.RoomID, in.UserID = 1, 99
	if _, err := s.Create(context.Background(), in); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown user: expected ErrNotFound, got %v", err)
	}
}

func TestCreate_ConfirmationCodeShape(t *testing.T) {
	fb := newFakeBookings()
	s := newBookingService(fb)

	b := mustCreate(t, s, app.CreateBookingInput{
		RoomID: 1, UserID: 7,
		CheckIn: date("2030-07-01"), CheckOut: date("2030-07-03"),
		NumAdults: 1,
	})
	if len(b.ConfirmationCode) != 10 {
		t.Fatalf("code length = %d, want 10", len(b.ConfirmationCode))
	}
	for _, c := range b.ConfirmationCode {
		if !(c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			t.Fatalf("code %q contains %q outside [A-Z0-9]", b.ConfirmationCode, c)
		}
	}
}

func TestCreate_RetriesOnCodeCollision(t *testing.T) {
	fb := newFakeBookings()
	fb.conflictFirst = 2 // first two inserts lose the code race
	s := newBookingService(fb)

	b := mustCreate(t, s, app.CreateBookingInput{
		RoomID: 1, UserID: 7,
		CheckIn: date("2030-08-01"), CheckOut: date("2030-08-02"),
		NumAdults: 1,
	})
	if fb.creates != 3 {
		t.Fatalf("expected 3 insert attempts, got %d", fb.creates)
	}
	if b.ConfirmationCode == "" {
		t.Fatalf("expected a confirmation code after retries")
	}
}

func TestCancel_ThenLookupsReturnNotFound(t *testing.T) {
	fb := newFakeBookings()
	s := newBookingService(fb)

	b := mustCreate(t, s, app.CreateBookingInput{
		RoomID: 1, UserID: 7,
		CheckIn: date("2030-06-10"), CheckOut: date("2030-06-12"),
		NumAdults: 1,
	})

	if err := s.Cancel(context.Background(), b.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := s.FindByConfirmationCode(context.Background(), b.ConfirmationCode); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("lookup by code after cancel: expected ErrNotFound, got %v", err)
	}
	if err := s.Cancel(context.Background(), b.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second cancel: expected ErrNotFound, got %v", err)
	}
}

func TestRoomAvailable(t *testing.T) {
	fb := newFakeBookings()
	s := newBookingService(fb)

	mustCreate(t, s, app.CreateBookingInput{
		RoomID: 1, UserID: 7,
		CheckIn: date("2030-06-01"), CheckOut: date("2030-06-05"),
		NumAdults: 1,
	})

	ok, err := s.RoomAvailable(context.Background(), 1, date("2030-06-04"), date("2030-06-08"))
	if err != nil || ok {
		t.Fatalf("overlapping range: want unavailable, got ok=%v err=%v", ok, err)
	}
	ok, err = s.RoomAvailable(context.Background(), 1, date("2030-06-05"), date("2030-06-08"))
	if err != nil || !ok {
		t.Fatalf("adjacent range: want available, got ok=%v err=%v", ok, err)
	}
	if _, err := s.RoomAvailable(context.Background(), 1, date("2030-06-08"), date("2030-06-05")); !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Fatalf("reversed range: expected ErrInvalidDateRange, got %v", err)
	}
}

func TestFindByConfirmationCode_UsesCache(t *testing.T) {
	fb := newFakeBookings()
	cache := &fakeCache{}
	rooms := &fakeRooms{rooms: map[int64]domain.Room{1: {ID: 1}}}
	users := &fakeUsers{users: map[int64]domain.User{7: {ID: 7}}}
	s := app.NewBookingService(fb, rooms, users, cache, 5*time.Minute)

	b := mustCreate(t, s, app.CreateBookingInput{
		RoomID: 1, UserID: 7,
		CheckIn: date("2030-06-01"), CheckOut: date("2030-06-03"),
		NumAdults: 1,
	})

	// first lookup populates the cache
	if _, err := s.FindByConfirmationCode(context.Background(), b.ConfirmationCode); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	// remove from the repo; the cached copy must still serve
	delete(fb.byCode, b.ConfirmationCode)
	if _, err := s.FindByConfirmationCode(context.Background(), b.ConfirmationCode); err != nil {
		t.Fatalf("cached lookup: %v", err)
	}
}
