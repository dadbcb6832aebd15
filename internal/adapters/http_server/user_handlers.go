package httpserver

import (
	"net/http"
	"strconv"

	"aurora_hotel/internal/domain"
)

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	u, err := h.Users.ByEmail(r.Context(), claims.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "ok", toUserDTO(u))
}

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	u, err := h.Users.ByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "ok", toUserDTO(u))
}

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	us, err := h.Users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]userDTO, 0, len(us))
	for _, u := range us {
		out = append(out, toUserDTO(u))
	}
	writeOK(w, "ok", out)
}

func (h *Handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Users.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "user deleted", nil)
}

// userBookings serves a user's booking history to that user or an admin.
func (h *Handlers) userBookings(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if !callerMayActFor(r, id) {
		writeError(w, domain.ErrForbidden)
		return
	}
	ds, err := h.Bookings.HistoryForUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "ok", toBookingDetailDTOs(ds))
}

// callerMayActFor allows the owner of the resource or an admin.
func callerMayActFor(r *http.Request, userID int64) bool {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		return false
	}
	if claims.Role == string(domain.RoleAdmin) {
		return true
	}
	sub, err := strconv.ParseInt(claims.Subject, 10, 64)
	return err == nil && sub == userID
}
