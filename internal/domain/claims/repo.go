package claims

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, cl *Claim) error
	GetByID(ctx context.Context, id uuid.UUID) (*Claim, error)
	GetByClaimNumber(ctx context.Context, claimNumber string) (*Claim, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, denialReason *string) error
	SetAttachments(ctx context.Context, id uuid.UUID, medicalReportID, billingDocID *uuid.UUID) error
	List(ctx context.Context, status string, limit, offset int) ([]*Claim, int, error)
}
