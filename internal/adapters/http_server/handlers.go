package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"aurora_hotel/internal/app"
	"aurora_hotel/internal/domain"
)

type Handlers struct {
	Auth     *app.AuthService
	Users    *app.UserService
	Rooms    *app.RoomService
	Bookings *app.BookingService
	Tokens   *app.TokenManager

	LoginRPS   float64
	LoginBurst int
}

// envelope is the uniform response shape, success and failure alike.
type envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Payload    any    `json:"payload,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	// public; register sees claims when the caller sends a token so an
	// admin can create privileged accounts through the same route
	s.mux.With(AuthenticateOptional(h.Tokens)).Post("/auth/register", h.register)
	s.mux.With(LoginRateLimit(h.LoginRPS, h.LoginBurst)).Post("/auth/login", h.login)
	s.mux.Get("/rooms", h.listRooms)
	s.mux.Get("/rooms/types", h.roomTypes)
	s.mux.Get("/rooms/available", h.availableRooms)
	s.mux.Get("/rooms/{id}", h.getRoom)
	s.mux.Get("/bookings/confirmation/{code}", h.findBooking)

	// authenticated
	s.mux.Group(func(r chi.Router) {
		r.Use(Authenticate(h.Tokens))

		r.Get("/users/me", h.me)
		r.Get("/users/{id}/bookings", h.userBookings)
		r.Post("/bookings/room/{roomId}/user/{userId}", h.createBooking)
		r.Delete("/bookings/{id}", h.cancelBooking)

		// admin-only
		r.Group(func(ar chi.Router) {
			ar.Use(RequireAdmin)

			ar.Get("/users", h.listUsers)
			ar.Get("/users/{id}", h.getUser)
			ar.Delete("/users/{id}", h.deleteUser)
			ar.Get("/bookings", h.listBookings)
			ar.Post("/rooms", h.addRoom)
			ar.Put("/rooms/{id}", h.updateRoom)
			ar.Delete("/rooms/{id}", h.deleteRoom)
			ar.Post("/rooms/{id}/image", h.uploadRoomImage)
		})
	})
}

func writeEnvelope(w http.ResponseWriter, status int, message string, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{StatusCode: status, Message: message, Payload: payload}); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeOK(w http.ResponseWriter, message string, payload any) {
	writeEnvelope(w, http.StatusOK, message, payload)
}

// writeError maps the error taxonomy onto statuses. Unknown errors get
// a generic 500 so internals never leak to the client.
func writeError(w http.ResponseWriter, err error) {
	var ve app.ValidationError
	switch {
	case errors.As(err, &ve):
		writeEnvelope(w, http.StatusBadRequest, ve.Error(), nil)
	case errors.Is(err, domain.ErrInvalidDateRange):
		writeEnvelope(w, http.StatusBadRequest, domain.ErrInvalidDateRange.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		writeEnvelope(w, http.StatusNotFound, "not found", nil)
	case errors.Is(err, domain.ErrRoomUnavailable):
		writeEnvelope(w, http.StatusConflict, domain.ErrRoomUnavailable.Error(), nil)
	case errors.Is(err, domain.ErrConflict):
		writeEnvelope(w, http.StatusConflict, "already exists", nil)
	case errors.Is(err, domain.ErrUnauthorized):
		writeEnvelope(w, http.StatusUnauthorized, "unauthorized", nil)
	case errors.Is(err, domain.ErrForbidden):
		writeEnvelope(w, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, domain.ErrStorage):
		log.Error().Err(err).Msg("media storage error")
		writeEnvelope(w, http.StatusInternalServerError, "image storage failed", nil)
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeEnvelope(w, http.StatusInternalServerError, "internal server error", nil)
	}
}

// urlID parses a positive numeric URL parameter, writing the 400 itself
// so callers can just return on !ok.
func urlID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeEnvelope(w, http.StatusBadRequest, name+" must be a positive number", nil)
		return 0, false
	}
	return id, true
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst)
}
