package claims

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nikhiljagtap3989/orbit-hr-suite/internal/platform/blobstore"
)

// Claim statuses.
const (
	StatusDraft         = "draft"
	StatusSubmitted     = "submitted"
	StatusInProcess     = "in-process"
	StatusDenied        = "denied"
	StatusPartiallyPaid = "partially-paid"
	StatusPaid          = "paid"
	StatusAppealed      = "appealed"
)

var validStatuses = map[string]bool{
	StatusDraft: true, StatusSubmitted: true, StatusInProcess: true,
	StatusDenied: true, StatusPartiallyPaid: true, StatusPaid: true,
	StatusAppealed: true,
}

var npiRe = regexp.MustCompile(`^[0-9]{10}$`)

// Attachment is an uploaded document accompanying a claim submission.
type Attachment struct {
	Kind        string
	FileName    string
	ContentType string
	Content     io.Reader
}

type Service struct {
	repo  Repository
	store blobstore.Store
}

func NewService(repo Repository, store blobstore.Store) *Service {
	return &Service{repo: repo, store: store}
}

// Submit validates a claim, stores it, and uploads any accompanying
// documents into the attachment store.
func (s *Service) Submit(ctx context.Context, req *SubmitRequest, attachments []Attachment) (*Claim, error) {
	appointmentID, err := uuid.Parse(req.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid appointmentId")
	}
	if req.DiagnosisCode == "" {
		return nil, fmt.Errorf("diagnosisCode is required")
	}
	if req.ProcedureCode == "" {
		return nil, fmt.Errorf("procedureCode is required")
	}
	amount, err := strconv.ParseFloat(req.BilledAmount, 64)
	if err != nil || amount <= 0 {
		return nil, fmt.Errorf("billedAmount must be a positive number")
	}
	if !npiRe.MatchString(req.ProviderNPI) {
		return nil, fmt.Errorf("providerNPI must be 10 digits")
	}
	if req.InsuranceProvider == "" {
		return nil, fmt.Errorf("insuranceProvider is required")
	}
	if req.InsurancePolicyNumber == "" {
		return nil, fmt.Errorf("insurancePolicyNumber is required")
	}
	if req.ServiceLocation == "" {
		return nil, fmt.Errorf("serviceLocation is required")
	}

	cl := &Claim{
		ClaimNumber:           newClaimNumber(),
		AppointmentID:         appointmentID,
		DiagnosisCode:         req.DiagnosisCode,
		ProcedureCode:         req.ProcedureCode,
		BilledAmount:          amount,
		ProviderNPI:           req.ProviderNPI,
		InsuranceProvider:     req.InsuranceProvider,
		InsurancePolicyNumber: req.InsurancePolicyNumber,
		ServiceLocation:       req.ServiceLocation,
		Status:                StatusSubmitted,
	}
	if req.ClaimNotes != "" {
		notes := req.ClaimNotes
		cl.ClaimNotes = &notes
	}

	if err := s.repo.Create(ctx, cl); err != nil {
		return nil, err
	}

	if len(attachments) > 0 {
		if err := s.attach(ctx, cl, attachments); err != nil {
			return nil, err
		}
	}
	return cl, nil
}

func (s *Service) attach(ctx context.Context, cl *Claim, attachments []Attachment) error {
	for _, att := range attachments {
		meta, err := s.store.Upload(ctx, blobstore.Metadata{
			ClaimID:     cl.ID.String(),
			Kind:        att.Kind,
			FileName:    att.FileName,
			ContentType: att.ContentType,
		}, att.Content)
		if err != nil {
			return fmt.Errorf("upload %s: %w", att.Kind, err)
		}
		id, err := uuid.Parse(meta.ID)
		if err != nil {
			return err
		}
		switch att.Kind {
		case blobstore.KindMedicalReport:
			cl.MedicalReportID = &id
		case blobstore.KindBillingDoc:
			cl.BillingDocID = &id
		}
	}
	return s.repo.SetAttachments(ctx, cl.ID, cl.MedicalReportID, cl.BillingDocID)
}

// newClaimNumber generates a human-readable claim identifier.
func newClaimNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("CLM-%s-%s", time.Now().Format("20060102"), suffix)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Claim, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByClaimNumber(ctx context.Context, claimNumber string) (*Claim, error) {
	return s.repo.GetByClaimNumber(ctx, claimNumber)
}

func (s *Service) List(ctx context.Context, status string, limit, offset int) ([]*Claim, int, error) {
	if status != "" && !validStatuses[status] {
		return nil, 0, fmt.Errorf("invalid claim status: %s", status)
	}
	return s.repo.List(ctx, status, limit, offset)
}

// UpdateStatus moves a claim through its lifecycle. Denied claims carry the
// payer's denial reason.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status, denialReason string) (*Claim, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid claim status: %s", status)
	}
	if status == StatusDenied && denialReason == "" {
		return nil, fmt.Errorf("denialReason is required when denying a claim")
	}
	var reason *string
	if status == StatusDenied {
		reason = &denialReason
	}
	if err := s.repo.UpdateStatus(ctx, id, status, reason); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Attachments lists stored documents for a claim.
func (s *Service) Attachments(ctx context.Context, claimID uuid.UUID) ([]*blobstore.Metadata, error) {
	return s.store.ListByClaim(ctx, claimID.String())
}
