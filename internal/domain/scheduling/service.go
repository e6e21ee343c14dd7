package scheduling

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Appointment statuses.
const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
)

var validStatuses = map[string]bool{
	StatusScheduled: true, StatusConfirmed: true, StatusCompleted: true,
	StatusCancelled: true, StatusNoShow: true,
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]{10}$`)
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Schedule(ctx context.Context, req *ScheduleRequest) (*Appointment, error) {
	if req.FirstName == "" {
		return nil, fmt.Errorf("firstName is required")
	}
	if req.LastName == "" {
		return nil, fmt.Errorf("lastName is required")
	}
	if req.PatientDob == "" {
		return nil, fmt.Errorf("dateOfBirth is required")
	}
	if req.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if !emailRe.MatchString(req.Email) {
		return nil, fmt.Errorf("invalid email address")
	}
	if !phoneRe.MatchString(req.Phone) {
		return nil, fmt.Errorf("phone must be 10 digits")
	}
	if req.AppointmentDate == "" {
		return nil, fmt.Errorf("appointmentDate is required")
	}
	if req.AppointmentTime == "" {
		return nil, fmt.Errorf("appointmentTime is required")
	}

	a := req.ToAppointment()
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Appointment, error) {
	return s.repo.List(ctx)
}

// ListByDate returns appointments booked for a single day (YYYY-MM-DD).
func (s *Service) ListByDate(ctx context.Context, date string) ([]*Appointment, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD")
	}
	return s.repo.ListByDate(ctx, date)
}

func (s *Service) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Appointment, int, error) {
	if !validStatuses[status] {
		return nil, 0, fmt.Errorf("invalid appointment status: %s", status)
	}
	return s.repo.ListByStatus(ctx, status, limit, offset)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid appointment status: %s", status)
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Status = status
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
