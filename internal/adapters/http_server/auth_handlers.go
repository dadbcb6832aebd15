package httpserver

import (
	"net/http"

	"aurora_hotel/internal/app"
	"aurora_hotel/internal/domain"
)

type registerRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	Role        string `json:"role,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	role := domain.Role(req.Role)
	// self-registration never grants ADMIN; only an authenticated admin may
	if role == domain.RoleAdmin {
		if claims, ok := ClaimsFrom(r.Context()); !ok || claims.Role != string(domain.RoleAdmin) {
			role = domain.RoleUser
		}
	}

	u, err := h.Auth.Register(r.Context(), app.RegisterInput{
		Email:       req.Email,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Role:        role,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "registered", toUserDTO(u))
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	res, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "login successful", toLoginResultDTO(res.Token, res.ExpiresAt, res.Role, res.UserID))
}
