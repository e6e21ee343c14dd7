package hr

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Attendance statuses.
const (
	AttendancePresent = "Present"
	AttendanceLate    = "Late"
	AttendanceAbsent  = "Absent"
)

// Leave request statuses.
const (
	LeavePending  = "Pending"
	LeaveApproved = "Approved"
	LeaveRejected = "Rejected"
)

var validLeaveTypes = map[string]bool{
	"annual": true, "sick": true, "casual": true, "maternity": true, "unpaid": true,
}

// annualLeaveAllowance is the yearly leave allowance in working days.
const annualLeaveAllowance = 20

// lateCutoff is the local clock-in time after which an employee is marked Late.
var lateCutoff = mustClock("09:30")

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func mustClock(hhmm string) time.Duration {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}

type Service struct {
	employees  EmployeeRepository
	attendance AttendanceRepository
	leaves     LeaveRepository

	// now is swappable for tests.
	now func() time.Time
}

func NewService(employees EmployeeRepository, attendance AttendanceRepository, leaves LeaveRepository) *Service {
	return &Service{
		employees:  employees,
		attendance: attendance,
		leaves:     leaves,
		now:        time.Now,
	}
}

// -- Employees --

func (s *Service) CreateEmployee(ctx context.Context, req *CreateEmployeeRequest) (*Employee, error) {
	if req.FirstName == "" {
		return nil, fmt.Errorf("firstName is required")
	}
	if req.LastName == "" {
		return nil, fmt.Errorf("lastName is required")
	}
	if !emailRe.MatchString(req.Email) {
		return nil, fmt.Errorf("invalid email address")
	}
	if req.Department == "" {
		return nil, fmt.Errorf("department is required")
	}
	if req.JoinDate == "" {
		req.JoinDate = s.now().Format("2006-01-02")
	}
	if existing, err := s.employees.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("employee with email %s already exists", req.Email)
	}

	e := &Employee{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       optional(req.Phone),
		Department:  req.Department,
		Designation: req.Designation,
		JoinDate:    req.JoinDate,
		Active:      true,
	}
	if err := s.employees.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *Service) GetEmployee(ctx context.Context, id uuid.UUID) (*Employee, error) {
	return s.employees.GetByID(ctx, id)
}

func (s *Service) ListEmployees(ctx context.Context, department string, limit, offset int) ([]*Employee, int, error) {
	return s.employees.List(ctx, department, limit, offset)
}

func (s *Service) DeactivateEmployee(ctx context.Context, id uuid.UUID) (*Employee, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Active = false
	if err := s.employees.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// -- Attendance --

// ClockIn records the start of an employee's working day. Clocking in after
// the late cutoff marks the record Late. A second clock-in on the same day
// is rejected.
func (s *Service) ClockIn(ctx context.Context, employeeID uuid.UUID) (*AttendanceRecord, error) {
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, fmt.Errorf("employee not found")
	}

	now := s.now()
	day := now.Format("2006-01-02")
	if existing, err := s.attendance.GetByEmployeeAndDay(ctx, employeeID, day); err == nil && existing != nil && existing.ClockIn != nil {
		return nil, fmt.Errorf("already clocked in today")
	}

	status := AttendancePresent
	sinceMidnight := time.Duration(now.Hour())*time.Hour + time.Duration(now.Minute())*time.Minute
	if sinceMidnight > lateCutoff {
		status = AttendanceLate
	}

	rec := &AttendanceRecord{
		EmployeeID: employeeID,
		Day:        day,
		ClockIn:    &now,
		Status:     status,
	}
	if err := s.attendance.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ClockOut closes today's attendance record.
func (s *Service) ClockOut(ctx context.Context, employeeID uuid.UUID) (*AttendanceRecord, error) {
	now := s.now()
	day := now.Format("2006-01-02")
	rec, err := s.attendance.GetByEmployeeAndDay(ctx, employeeID, day)
	if err != nil {
		return nil, fmt.Errorf("no clock-in found for today")
	}
	if rec.ClockOut != nil {
		return nil, fmt.Errorf("already clocked out today")
	}
	rec.ClockOut = &now
	if err := s.attendance.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// MarkAbsent records an absence for the given day.
func (s *Service) MarkAbsent(ctx context.Context, employeeID uuid.UUID, day string) (*AttendanceRecord, error) {
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return nil, fmt.Errorf("invalid day: %s", day)
	}
	rec := &AttendanceRecord{
		EmployeeID: employeeID,
		Day:        day,
		Status:     AttendanceAbsent,
	}
	if err := s.attendance.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) AttendanceByDay(ctx context.Context, day string, limit, offset int) ([]*AttendanceRecord, int, error) {
	return s.attendance.ListByDay(ctx, day, limit, offset)
}

func (s *Service) AttendanceByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*AttendanceRecord, int, error) {
	return s.attendance.ListByEmployee(ctx, employeeID, limit, offset)
}

// -- Leave --

// RequestLeave files a leave request. The duration is the inclusive day span
// between start and end.
func (s *Service) RequestLeave(ctx context.Context, input *LeaveRequestInput) (*LeaveRequest, error) {
	employeeID, err := uuid.Parse(input.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("invalid employeeId")
	}
	if !validLeaveTypes[input.LeaveType] {
		return nil, fmt.Errorf("invalid leave type: %s", input.LeaveType)
	}
	if input.Reason == "" {
		return nil, fmt.Errorf("reason is required")
	}

	start, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate")
	}
	end, err := time.Parse("2006-01-02", input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate")
	}
	if end.Before(start) {
		return nil, fmt.Errorf("endDate cannot be before startDate")
	}
	duration := int(end.Sub(start).Hours()/24) + 1

	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, fmt.Errorf("employee not found")
	}

	balance, err := s.LeaveBalance(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if input.LeaveType != "unpaid" && duration > balance.Remaining {
		return nil, fmt.Errorf("insufficient leave balance: %d days remaining", balance.Remaining)
	}

	l := &LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  input.LeaveType,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Duration:   duration,
		Reason:     input.Reason,
		Status:     LeavePending,
	}
	if err := s.leaves.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// ApproveLeave approves a pending request.
func (s *Service) ApproveLeave(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	return s.resolveLeave(ctx, id, LeaveApproved)
}

// RejectLeave rejects a pending request.
func (s *Service) RejectLeave(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	return s.resolveLeave(ctx, id, LeaveRejected)
}

func (s *Service) resolveLeave(ctx context.Context, id uuid.UUID, status string) (*LeaveRequest, error) {
	l, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leave request not found")
	}
	if l.Status != LeavePending {
		return nil, fmt.Errorf("leave request already %s", l.Status)
	}
	if err := s.leaves.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	l.Status = status
	return l, nil
}

func (s *Service) ListLeavesByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*LeaveRequest, int, error) {
	return s.leaves.ListByEmployee(ctx, employeeID, limit, offset)
}

func (s *Service) ListPendingLeaves(ctx context.Context, limit, offset int) ([]*LeaveRequest, int, error) {
	return s.leaves.ListByStatus(ctx, LeavePending, limit, offset)
}

// LeaveBalance summarizes the employee's allowance usage for the current year.
func (s *Service) LeaveBalance(ctx context.Context, employeeID uuid.UUID) (*LeaveBalance, error) {
	year := s.now().Year()
	used, err := s.leaves.SumDurationByStatus(ctx, employeeID, LeaveApproved, year)
	if err != nil {
		return nil, err
	}
	pending, err := s.leaves.SumDurationByStatus(ctx, employeeID, LeavePending, year)
	if err != nil {
		return nil, err
	}
	remaining := annualLeaveAllowance - used - pending
	if remaining < 0 {
		remaining = 0
	}
	return &LeaveBalance{
		EmployeeID: employeeID,
		Allowance:  annualLeaveAllowance,
		Used:       used,
		Pending:    pending,
		Remaining:  remaining,
	}, nil
}
