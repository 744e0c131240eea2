package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cabwise/dispatch-go/internal/model"
	"github.com/cabwise/dispatch-go/internal/service"
)

// AuthHandler handles login and email confirmation.
type AuthHandler struct {
	service *service.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.UserService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleLogin handles GET /login requests. Credentials arrive as basic
// auth; any failure is a 401 with a WWW-Authenticate challenge.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	username, password, ok := r.BasicAuth()
	if !ok || username == "" || password == "" {
		loginFailed(w)
		return
	}

	token, err := h.service.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			loginFailed(w)
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.TokenResponse{Token: token})
}

// HandleConfirm handles GET /confirm/{token} requests, completing the
// confirmation round-trip started by the signup email.
func (h *AuthHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	err := h.service.Confirm(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyConfirmed):
			writeJSON(w, http.StatusUnauthorized, errorResponse("user already confirmed"))
		case errors.Is(err, service.ErrInvalidToken):
			writeJSON(w, http.StatusUnauthorized, errorResponse("token is invalid"))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, successResponse("user has been confirmed"))
}

func loginFailed(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="Login required"`)
	writeJSON(w, http.StatusUnauthorized, errorResponse("could not verify"))
}
