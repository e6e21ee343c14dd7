package scheduling

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Appointment, error)
	ListByDate(ctx context.Context, date string) ([]*Appointment, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Appointment, int, error)
}
