package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/cabwise/dispatch-go/internal/service"
)

type silentBroadcaster struct{}

func (silentBroadcaster) Publish(string, any) error { return nil }

func newJobRouter() *chi.Mux {
	svc := service.NewJobService(emptyJobStore{}, emptyUserStore{}, silentBroadcaster{})
	h := NewJobHandler(svc)

	r := chi.NewRouter()
	r.Post("/job", h.HandleCreate)
	r.Get("/job/{id}", h.HandleGet)
	r.Put("/job/{id}", h.HandleUpdate)
	r.Delete("/job/{id}", h.HandleDelete)
	return r
}

func TestHandleGetJobNotFound(t *testing.T) {
	r := newJobRouter()

	rec := doRequest(t, r, http.MethodGet, "/job/no-such-id", "")
	if rec.Code != 406 {
		t.Errorf("expected 406, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "job not found") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandleUpdateJobNotFound(t *testing.T) {
	r := newJobRouter()

	rec := doRequest(t, r, http.MethodPut, "/job/no-such-id", `{"price": 300}`)
	if rec.Code != 406 {
		t.Errorf("expected 406, got %d", rec.Code)
	}
}

func TestHandleDeleteJobNotFound(t *testing.T) {
	r := newJobRouter()

	rec := doRequest(t, r, http.MethodDelete, "/job/no-such-id", "")
	if rec.Code != 406 {
		t.Errorf("expected 406, got %d", rec.Code)
	}
}

func TestHandleCreateJobMalformedPickupTime(t *testing.T) {
	r := newJobRouter()

	rec := doRequest(t, r, http.MethodPost, "/job", `{"pickup_time": "tomorrow"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
