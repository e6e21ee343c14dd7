package scheduling

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc := NewService(newMockRepo())
	return NewHandler(svc), echo.New()
}

func TestHandler_ScheduleAppointment(t *testing.T) {
	h, e := newTestHandler()
	body := `{"firstName":"John","lastName":"Doe","dateOfBirth":"1990-01-01",
		"email":"john@example.com","phone":"1234567890",
		"appointmentDate":"2026-09-15","appointmentTime":"09:00","reasonForVisit":"Checkup"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ScheduleAppointment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var got Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.FirstName != "John" || got.Status != StatusScheduled {
		t.Errorf("unexpected appointment: %+v", got)
	}
}

func TestHandler_ScheduleAppointment_BadRequest(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ScheduleAppointment(c); err == nil {
		t.Error("expected error for empty payload")
	}
}

func TestHandler_ListAppointments_FlatArray(t *testing.T) {
	h, e := newTestHandler()
	if _, err := h.svc.Schedule(context.Background(), validRequest()); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListAppointments(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// The list endpoint returns a bare array, not an envelope.
	var items []Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("expected flat array response: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(items))
	}
}

func TestHandler_ListAppointments_EmptyIsArray(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListAppointments(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("expected empty array, got %s", got)
	}
}

func TestHandler_ListAppointments_StatusFilterEnvelope(t *testing.T) {
	h, e := newTestHandler()
	if _, err := h.svc.Schedule(context.Background(), validRequest()); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/?status=scheduled", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListAppointments(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var envelope struct {
		Data  []Appointment `json:"data"`
		Total int           `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Total != 1 || len(envelope.Data) != 1 {
		t.Errorf("envelope = %+v, want 1 item", envelope)
	}
}

func TestHandler_GetAppointment_InvalidID(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	if err := h.GetAppointment(c); err == nil {
		t.Error("expected error for invalid id")
	}
}

func TestHandler_UpdateStatus(t *testing.T) {
	h, e := newTestHandler()
	a, err := h.svc.Schedule(context.Background(), validRequest())
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got Appointment
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Status != StatusConfirmed {
		t.Errorf("status = %s, want confirmed", got.Status)
	}
}
