package claims

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nikhiljagtap3989/orbit-hr-suite/internal/platform/blobstore"
)

type mockRepo struct {
	claims map[uuid.UUID]*Claim
}

func newMockRepo() *mockRepo {
	return &mockRepo{claims: make(map[uuid.UUID]*Claim)}
}

func (m *mockRepo) Create(_ context.Context, cl *Claim) error {
	cl.ID = uuid.New()
	cl.CreatedAt = time.Now()
	cl.UpdatedAt = time.Now()
	m.claims[cl.ID] = cl
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Claim, error) {
	cl, ok := m.claims[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return cl, nil
}

func (m *mockRepo) GetByClaimNumber(_ context.Context, claimNumber string) (*Claim, error) {
	for _, cl := range m.claims {
		if cl.ClaimNumber == claimNumber {
			return cl, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string, denialReason *string) error {
	cl, ok := m.claims[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	cl.Status = status
	cl.DenialReason = denialReason
	return nil
}

func (m *mockRepo) SetAttachments(_ context.Context, id uuid.UUID, medicalReportID, billingDocID *uuid.UUID) error {
	cl, ok := m.claims[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	cl.MedicalReportID = medicalReportID
	cl.BillingDocID = billingDocID
	return nil
}

func (m *mockRepo) List(_ context.Context, status string, limit, offset int) ([]*Claim, int, error) {
	var result []*Claim
	for _, cl := range m.claims {
		if status == "" || cl.Status == status {
			result = append(result, cl)
		}
	}
	return result, len(result), nil
}

func validSubmit() *SubmitRequest {
	return &SubmitRequest{
		AppointmentID:         uuid.New().String(),
		DiagnosisCode:         "E11.9",
		ProcedureCode:         "99213",
		BilledAmount:          "245.50",
		ProviderNPI:           "1234567890",
		InsuranceProvider:     "Blue Shield",
		InsurancePolicyNumber: "POL-1001",
		ServiceLocation:       "Main Clinic",
		ClaimNotes:            "Follow-up visit",
	}
}

func newTestService() *Service {
	return NewService(newMockRepo(), blobstore.NewInMemoryStore())
}

func TestSubmit_Valid(t *testing.T) {
	svc := newTestService()
	cl, err := svc.Submit(context.Background(), validSubmit(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cl.Status != StatusSubmitted {
		t.Errorf("status = %s, want submitted", cl.Status)
	}
	if !strings.HasPrefix(cl.ClaimNumber, "CLM-") {
		t.Errorf("claim number = %s, want CLM- prefix", cl.ClaimNumber)
	}
	if cl.BilledAmount != 245.50 {
		t.Errorf("billed amount = %v, want 245.50", cl.BilledAmount)
	}
}

func TestSubmit_Validation(t *testing.T) {
	svc := newTestService()

	mutations := []struct {
		name   string
		mutate func(*SubmitRequest)
	}{
		{"bad appointment id", func(r *SubmitRequest) { r.AppointmentID = "nope" }},
		{"missing diagnosis code", func(r *SubmitRequest) { r.DiagnosisCode = "" }},
		{"missing procedure code", func(r *SubmitRequest) { r.ProcedureCode = "" }},
		{"non-numeric amount", func(r *SubmitRequest) { r.BilledAmount = "abc" }},
		{"zero amount", func(r *SubmitRequest) { r.BilledAmount = "0" }},
		{"short npi", func(r *SubmitRequest) { r.ProviderNPI = "12345" }},
		{"missing insurance provider", func(r *SubmitRequest) { r.InsuranceProvider = "" }},
		{"missing policy number", func(r *SubmitRequest) { r.InsurancePolicyNumber = "" }},
		{"missing service location", func(r *SubmitRequest) { r.ServiceLocation = "" }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			req := validSubmit()
			tt.mutate(req)
			if _, err := svc.Submit(context.Background(), req, nil); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSubmit_WithAttachments(t *testing.T) {
	store := blobstore.NewInMemoryStore()
	svc := NewService(newMockRepo(), store)

	attachments := []Attachment{
		{
			Kind:        blobstore.KindMedicalReport,
			FileName:    "report.pdf",
			ContentType: "application/pdf",
			Content:     strings.NewReader("%PDF-1.4 report"),
		},
		{
			Kind:        blobstore.KindBillingDoc,
			FileName:    "bill.pdf",
			ContentType: "application/pdf",
			Content:     strings.NewReader("%PDF-1.4 bill"),
		},
	}

	cl, err := svc.Submit(context.Background(), validSubmit(), attachments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cl.MedicalReportID == nil {
		t.Error("expected medical report attachment id")
	}
	if cl.BillingDocID == nil {
		t.Error("expected billing doc attachment id")
	}

	stored, err := store.ListByClaim(context.Background(), cl.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 stored attachments, got %d", len(stored))
	}
}

func TestSubmit_RejectsBadAttachmentType(t *testing.T) {
	svc := newTestService()

	attachments := []Attachment{{
		Kind:        blobstore.KindMedicalReport,
		FileName:    "report.exe",
		ContentType: "application/x-msdownload",
		Content:     strings.NewReader("nope"),
	}}

	if _, err := svc.Submit(context.Background(), validSubmit(), attachments); err == nil {
		t.Error("expected error for disallowed attachment type")
	}
}

func TestUpdateStatus(t *testing.T) {
	svc := newTestService()
	cl, err := svc.Submit(context.Background(), validSubmit(), nil)
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateStatus(context.Background(), cl.ID, StatusInProcess, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusInProcess {
		t.Errorf("status = %s, want in-process", updated.Status)
	}

	if _, err := svc.UpdateStatus(context.Background(), cl.ID, "archived", ""); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestUpdateStatus_Denial(t *testing.T) {
	svc := newTestService()
	cl, err := svc.Submit(context.Background(), validSubmit(), nil)
	if err != nil {
		t.Fatal(err)
	}

	// Denial without a reason is rejected.
	if _, err := svc.UpdateStatus(context.Background(), cl.ID, StatusDenied, ""); err == nil {
		t.Error("expected error for denial without reason")
	}

	denied, err := svc.UpdateStatus(context.Background(), cl.ID, StatusDenied, "Missing prior authorization")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if denied.DenialReason == nil || *denied.DenialReason != "Missing prior authorization" {
		t.Errorf("denial reason = %v", denied.DenialReason)
	}

	// Appealing clears the stored reason.
	appealed, err := svc.UpdateStatus(context.Background(), cl.ID, StatusAppealed, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appealed.DenialReason != nil {
		t.Errorf("expected denial reason cleared, got %v", *appealed.DenialReason)
	}
}

func TestList_StatusFilter(t *testing.T) {
	svc := newTestService()
	if _, _, err := svc.List(context.Background(), "bogus", 20, 0); err == nil {
		t.Error("expected error for invalid status filter")
	}
	if _, _, err := svc.List(context.Background(), "", 20, 0); err != nil {
		t.Errorf("unexpected error for unfiltered list: %v", err)
	}
}
