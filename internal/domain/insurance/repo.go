package insurance

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, v *Verification) error
	GetByID(ctx context.Context, id uuid.UUID) (*Verification, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	RecordBenefits(ctx context.Context, id uuid.UUID, b *BenefitsRequest) error
	List(ctx context.Context, limit, offset int) ([]*Verification, int, error)
	ListByPatient(ctx context.Context, firstName, lastName string, limit, offset int) ([]*Verification, int, error)
}
