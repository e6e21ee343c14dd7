package insurance

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Verification statuses.
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusExpired  = "expired"
)

var validStatuses = map[string]bool{
	StatusPending: true, StatusActive: true, StatusInactive: true, StatusExpired: true,
}

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	tenDigitRe = regexp.MustCompile(`^[0-9]{10}$`)
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*Verification, error) {
	if err := validateSubmit(req); err != nil {
		return nil, err
	}
	v := req.ToVerification()
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func validateSubmit(req *SubmitRequest) error {
	required := []struct {
		value string
		name  string
	}{
		{req.InsuranceProvider, "insuranceProvider"},
		{req.PolicyNumber, "policyNumber"},
		{req.MemberID, "memberId"},
		{req.VerificationDate, "verificationDate"},
		{req.PatientFirstName, "patientFirstName"},
		{req.PatientLastName, "patientLastName"},
		{req.PatientDob, "patientDob"},
		{req.PatientGender, "patientGender"},
		{req.ServiceType, "serviceType"},
		{req.ServiceDate, "serviceDate"},
		{req.Facility, "facility"},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%s is required", f.name)
		}
	}

	if !tenDigitRe.MatchString(req.ProviderPhone) {
		return fmt.Errorf("providerPhone must be 10 digits")
	}
	if !tenDigitRe.MatchString(req.PatientPhone) {
		return fmt.Errorf("patientPhone must be 10 digits")
	}
	if req.PatientEmail != "" && !emailRe.MatchString(req.PatientEmail) {
		return fmt.Errorf("invalid patientEmail")
	}
	if len(req.DiagnosisCodes) == 0 {
		return fmt.Errorf("at least one diagnosis code is required")
	}
	if len(req.ProcedureCodes) == 0 {
		return fmt.Errorf("at least one procedure code is required")
	}

	if dob, err := time.Parse("2006-01-02", req.PatientDob); err == nil {
		if dob.After(startOfToday()) {
			return fmt.Errorf("patientDob cannot be in the future")
		}
	}
	if svc, err := time.Parse("2006-01-02", req.ServiceDate); err == nil {
		if svc.Before(startOfToday()) {
			return fmt.Errorf("serviceDate cannot be in the past")
		}
	}

	// Subscriber details are only needed when the patient is not the
	// subscriber themselves.
	if req.RelationshipToSubscriber != "" && req.RelationshipToSubscriber != "self" {
		if req.SubscriberFirstName == "" {
			return fmt.Errorf("subscriberFirstName is required")
		}
		if req.SubscriberLastName == "" {
			return fmt.Errorf("subscriberLastName is required")
		}
		if req.SubscriberDob == "" {
			return fmt.Errorf("subscriberDob is required")
		}
	}
	return nil
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Verification, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Verification, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, firstName, lastName string, limit, offset int) ([]*Verification, int, error) {
	return s.repo.ListByPatient(ctx, firstName, lastName, limit, offset)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Verification, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid verification status: %s", status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// RecordBenefits stores payer-confirmed coverage figures and marks the
// verification active.
func (s *Service) RecordBenefits(ctx context.Context, id uuid.UUID, req *BenefitsRequest) (*Verification, error) {
	if req.VerifiedBy == "" {
		return nil, fmt.Errorf("verifiedBy is required")
	}
	if req.VerifiedDate == "" {
		req.VerifiedDate = time.Now().Format("2006-01-02")
	}
	for _, amt := range []struct {
		value *float64
		name  string
	}{
		{req.Deductible, "deductible"},
		{req.Copay, "copay"},
		{req.OutOfPocketMax, "outOfPocketMax"},
	} {
		if amt.value != nil && *amt.value < 0 {
			return nil, fmt.Errorf("%s cannot be negative", amt.name)
		}
	}
	if req.Coinsurance != nil && (*req.Coinsurance < 0 || *req.Coinsurance > 100) {
		return nil, fmt.Errorf("coinsurance must be between 0 and 100")
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("verification not found")
	}
	if err := s.repo.RecordBenefits(ctx, id, req); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
