package claims

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	return NewHandler(newTestService()), echo.New()
}

func claimForm(t *testing.T, withFiles bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"appointmentId":         uuid.New().String(),
		"diagnosisCode":         "E11.9",
		"procedureCode":         "99213",
		"billedAmount":          "245.50",
		"providerNPI":           "1234567890",
		"insuranceProvider":     "Blue Shield",
		"insurancePolicyNumber": "POL-1001",
		"serviceLocation":       "Main Clinic",
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}

	if withFiles {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="medicalReport"; filename="report.pdf"`)
		hdr.Set("Content-Type", "application/pdf")
		part, err := w.CreatePart(hdr)
		if err != nil {
			t.Fatal(err)
		}
		part.Write([]byte("%PDF-1.4 report"))
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func TestHandler_SubmitClaim(t *testing.T) {
	h, e := newTestHandler()
	body, contentType := claimForm(t, false)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitClaim(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var got Claim
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Status != StatusSubmitted {
		t.Errorf("status = %s, want submitted", got.Status)
	}
	if got.MedicalReportID != nil {
		t.Error("expected no attachment without file part")
	}
}

func TestHandler_SubmitClaim_WithAttachment(t *testing.T) {
	h, e := newTestHandler()
	body, contentType := claimForm(t, true)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitClaim(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var got Claim
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.MedicalReportID == nil {
		t.Error("expected medical report attachment id")
	}
	if got.BillingDocID != nil {
		t.Error("expected no billing doc id without file part")
	}
}

func TestHandler_SubmitClaim_MissingFields(t *testing.T) {
	h, e := newTestHandler()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("diagnosisCode", "E11.9")
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.SubmitClaim(c)
	if err == nil {
		t.Fatal("expected validation error")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_ListClaims(t *testing.T) {
	h, e := newTestHandler()
	body, contentType := claimForm(t, false)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	if err := h.SubmitClaim(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListClaims(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var envelope struct {
		Data  []Claim `json:"data"`
		Total int     `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Total != 1 {
		t.Errorf("total = %d, want 1", envelope.Total)
	}
}
