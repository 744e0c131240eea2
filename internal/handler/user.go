package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cabwise/dispatch-go/internal/model"
	"github.com/cabwise/dispatch-go/internal/service"
)

// Historical status codes for the user endpoints: one code per missing
// signup field, 405 doubling as not-found.
const (
	statusUserNotFound    = http.StatusMethodNotAllowed   // 405
	statusMissingUsername = http.StatusGone               // 410
	statusMissingEmail    = http.StatusLengthRequired     // 411
	statusMissingPassword = http.StatusPreconditionFailed // 412
)

// UserHandler handles HTTP requests for user resources.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// HandleCreate handles POST /user requests.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if tooLarge(err) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameRequired):
			writeJSON(w, statusMissingUsername, errorResponse("username required"))
		case errors.Is(err, service.ErrEmailRequired):
			writeJSON(w, statusMissingEmail, errorResponse("email required"))
		case errors.Is(err, service.ErrPasswordRequired):
			writeJSON(w, statusMissingPassword, errorResponse("password required"))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /user/{id} requests.
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeJSON(w, statusUserNotFound, errorResponse("user not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleList handles GET /user requests.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdate handles PUT /user/{id} requests. The body is an arbitrary
// field map; known fields are applied directly onto the record.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		if tooLarge(err) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	if err := h.service.Update(r.Context(), chi.URLParam(r, "id"), fields); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeJSON(w, statusUserNotFound, errorResponse("user not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, successResponse("user has been modified"))
}

// HandleDelete handles DELETE /user/{id} requests.
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeJSON(w, statusUserNotFound, errorResponse("user not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, successResponse("user has been deleted"))
}

// HandleJobs handles GET /user/{id}/jobs requests.
func (h *UserHandler) HandleJobs(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Jobs(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeJSON(w, statusUserNotFound, errorResponse("user not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
