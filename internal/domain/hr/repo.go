package hr

import (
	"context"

	"github.com/google/uuid"
)

type EmployeeRepository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	List(ctx context.Context, department string, limit, offset int) ([]*Employee, int, error)
}

type AttendanceRepository interface {
	Create(ctx context.Context, a *AttendanceRecord) error
	Update(ctx context.Context, a *AttendanceRecord) error
	GetByEmployeeAndDay(ctx context.Context, employeeID uuid.UUID, day string) (*AttendanceRecord, error)
	ListByDay(ctx context.Context, day string, limit, offset int) ([]*AttendanceRecord, int, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*AttendanceRecord, int, error)
}

type LeaveRepository interface {
	Create(ctx context.Context, l *LeaveRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*LeaveRequest, int, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*LeaveRequest, int, error)
	SumDurationByStatus(ctx context.Context, employeeID uuid.UUID, status string, year int) (int, error)
}
