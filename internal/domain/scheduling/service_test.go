package scheduling

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	appts map[uuid.UUID]*Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{appts: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	m.appts[a.ID] = a
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.appts[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}

func (m *mockRepo) Update(_ context.Context, a *Appointment) error {
	m.appts[a.ID] = a
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.appts, id)
	return nil
}

func (m *mockRepo) List(_ context.Context) ([]*Appointment, error) {
	var result []*Appointment
	for _, a := range m.appts {
		result = append(result, a)
	}
	return result, nil
}

func (m *mockRepo) ListByDate(_ context.Context, date string) ([]*Appointment, error) {
	var result []*Appointment
	for _, a := range m.appts {
		if a.AppointmentDate == date {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockRepo) ListByStatus(_ context.Context, status string, limit, offset int) ([]*Appointment, int, error) {
	var result []*Appointment
	for _, a := range m.appts {
		if a.Status == status {
			result = append(result, a)
		}
	}
	return result, len(result), nil
}

func validRequest() *ScheduleRequest {
	return &ScheduleRequest{
		FirstName:       "John",
		LastName:        "Doe",
		PatientDob:      "1990-01-01",
		Email:           "john@example.com",
		Phone:           "1234567890",
		AppointmentDate: "2026-09-15",
		AppointmentTime: "09:00",
		Reason:          "Checkup",
	}
}

func TestSchedule_Valid(t *testing.T) {
	svc := NewService(newMockRepo())
	a, err := svc.Schedule(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
	if a.Status != StatusScheduled {
		t.Errorf("status = %s, want scheduled", a.Status)
	}
	if a.Reason == nil || *a.Reason != "Checkup" {
		t.Error("expected reason to be stored")
	}
}

func TestSchedule_RequiredFields(t *testing.T) {
	svc := NewService(newMockRepo())

	mutations := []struct {
		name   string
		mutate func(*ScheduleRequest)
	}{
		{"missing first name", func(r *ScheduleRequest) { r.FirstName = "" }},
		{"missing last name", func(r *ScheduleRequest) { r.LastName = "" }},
		{"missing dob", func(r *ScheduleRequest) { r.PatientDob = "" }},
		{"missing email", func(r *ScheduleRequest) { r.Email = "" }},
		{"missing date", func(r *ScheduleRequest) { r.AppointmentDate = "" }},
		{"missing time", func(r *ScheduleRequest) { r.AppointmentTime = "" }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			if _, err := svc.Schedule(context.Background(), req); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSchedule_InvalidEmail(t *testing.T) {
	svc := NewService(newMockRepo())
	req := validRequest()
	req.Email = "not-an-email"
	if _, err := svc.Schedule(context.Background(), req); err == nil {
		t.Error("expected error for invalid email")
	}
}

func TestSchedule_InvalidPhone(t *testing.T) {
	svc := NewService(newMockRepo())

	for _, phone := range []string{"", "12345", "123456789012", "12345678ab"} {
		req := validRequest()
		req.Phone = phone
		if _, err := svc.Schedule(context.Background(), req); err == nil {
			t.Errorf("expected error for phone %q", phone)
		}
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	a, err := svc.Schedule(context.Background(), validRequest())
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateStatus(context.Background(), a.ID, StatusConfirmed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusConfirmed {
		t.Errorf("status = %s, want confirmed", updated.Status)
	}

	if _, err := svc.UpdateStatus(context.Background(), a.ID, "bogus"); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestListByStatus_RejectsInvalid(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, _, err := svc.ListByStatus(context.Background(), "bogus", 20, 0); err == nil {
		t.Error("expected error for invalid status filter")
	}
}

func TestListByDate(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	first := validRequest()
	if _, err := svc.Schedule(context.Background(), first); err != nil {
		t.Fatal(err)
	}
	second := validRequest()
	second.Email = "other@example.com"
	second.AppointmentDate = "2026-09-20"
	if _, err := svc.Schedule(context.Background(), second); err != nil {
		t.Fatal(err)
	}

	items, err := svc.ListByDate(context.Background(), first.AppointmentDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("got %d appointments, want 1", len(items))
	}

	if _, err := svc.ListByDate(context.Background(), "09/20/2026"); err == nil {
		t.Error("expected error for malformed date")
	}
}
