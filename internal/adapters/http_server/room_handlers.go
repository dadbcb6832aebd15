package httpserver

import (
	"net/http"
	"strconv"

	"aurora_hotel/internal/app"
)

// maxUploadBytes caps a multipart room-photo request.
const maxUploadBytes = 10 << 20

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	rm, err := h.Rooms.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "ok", toRoomDTO(rm))
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeEnvelope(w, http.StatusBadRequest, "limit must be an integer between 1 and 200", nil)
			return
		}
		limit = l
	}
	rs, err := h.Rooms.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "ok", toRoomDTOs(rs))
}

func (h *Handlers) roomTypes(w http.ResponseWriter, r *http.Request) {
	ts, err := h.Rooms.Types(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "ok", ts)
}

func (h *Handlers) availableRooms(w http.ResponseWriter, r *http.Request) {
	in, err := parseDate(r.URL.Query().Get("checkIn"))
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, "checkIn must be a YYYY-MM-DD date", nil)
		return
	}
	out, err := parseDate(r.URL.Query().Get("checkOut"))
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, "checkOut must be a YYYY-MM-DD date", nil)
		return
	}
	rs, err := h.Rooms.AvailableBetween(r.Context(), in, out, r.URL.Query().Get("roomType"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "ok", toRoomDTOs(rs))
}

func (h *Handlers) addRoom(w http.ResponseWriter, r *http.Request) {
	in, photo, ok := roomForm(w, r)
	if !ok {
		return
	}
	rm, err := h.Rooms.Add(r.Context(), in, photo)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "room added", toRoomDTO(rm))
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	in, photo, ok := roomForm(w, r)
	if !ok {
		return
	}
	rm, err := h.Rooms.Update(r.Context(), id, in, photo)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "room updated", toRoomDTO(rm))
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Rooms.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "room deleted", nil)
}

func (h *Handlers) uploadRoomImage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}
	f, fh, err := r.FormFile("file")
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, "file field is required", nil)
		return
	}
	defer f.Close()

	url, err := h.Rooms.AttachImage(r.Context(), id, app.Photo{R: f, Size: fh.Size, Name: fh.Filename})
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "image uploaded", map[string]string{"url": url})
}

// roomForm reads the multipart room fields and the optional photo.
// Returns ok=false after writing the 400 itself.
func roomForm(w http.ResponseWriter, r *http.Request) (app.RoomInput, *app.Photo, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "invalid multipart form", nil)
		return app.RoomInput{}, nil, false
	}
	in := app.RoomInput{
		Type:        r.FormValue("roomType"),
		Description: r.FormValue("roomDescription"),
	}
	if ps := r.FormValue("roomPrice"); ps != "" {
		p, err := strconv.ParseFloat(ps, 64)
		if err != nil {
			writeEnvelope(w, http.StatusBadRequest, "roomPrice must be a number", nil)
			return app.RoomInput{}, nil, false
		}
		in.Price = p
	}

	f, fh, err := r.FormFile("photo")
	if err != nil {
		return in, nil, true // photo is optional
	}
	// the service consumes the reader within this request's lifetime
	return in, &app.Photo{R: f, Size: fh.Size, Name: fh.Filename}, true
}
