package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"aurora_hotel/internal/app"
	"aurora_hotel/internal/domain"
)

type createBookingRequest struct {
	CheckInDate   string `json:"checkInDate"`
	CheckOutDate  string `json:"checkOutDate"`
	NumOfAdults   int    `json:"numOfAdults"`
	NumOfChildren int    `json:"numOfChildren"`
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	roomID, ok := urlID(w, r, "roomId")
	if !ok {
		return
	}
	userID, ok := urlID(w, r, "userId")
	if !ok {
		return
	}
	// a guest books for themselves; an admin may book for anyone
	if !callerMayActFor(r, userID) {
		writeError(w, domain.ErrForbidden)
		return
	}

	var req createBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	in, err := parseDate(req.CheckInDate)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, "checkInDate must be a YYYY-MM-DD date", nil)
		return
	}
	out, err := parseDate(req.CheckOutDate)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, "checkOutDate must be a YYYY-MM-DD date", nil)
		return
	}

	b, err := h.Bookings.Create(r.Context(), app.CreateBookingInput{
		RoomID:      roomID,
		UserID:      userID,
		CheckIn:     in,
		CheckOut:    out,
		NumAdults:   req.NumOfAdults,
		NumChildren: req.NumOfChildren,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "booking created", toBookingDTO(b))
}

func (h *Handlers) findBooking(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		writeEnvelope(w, http.StatusBadRequest, "confirmation code is required", nil)
		return
	}
	d, err := h.Bookings.FindByConfirmationCode(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "ok", toBookingDetailDTO(d))
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeEnvelope(w, http.StatusBadRequest, "limit must be an integer between 1 and 200", nil)
			return
		}
		limit = l
	}
	ds, err := h.Bookings.ListAll(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "ok", toBookingDetailDTOs(ds))
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	owner, err := h.Bookings.Owner(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !callerMayActFor(r, owner) {
		writeError(w, domain.ErrForbidden)
		return
	}
	if err := h.Bookings.Cancel(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "booking cancelled", nil)
}
