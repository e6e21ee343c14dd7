package hr

import (
	"time"

	"github.com/google/uuid"
)

// Employee maps to the employees table.
type Employee struct {
	ID          uuid.UUID `db:"id" json:"id"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	Email       string    `db:"email" json:"email"`
	Phone       *string   `db:"phone" json:"phone,omitempty"`
	Department  string    `db:"department" json:"department"`
	Designation string    `db:"designation" json:"designation"`
	JoinDate    string    `db:"join_date" json:"join_date"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// AttendanceRecord maps to the attendance table. One row per employee per day.
type AttendanceRecord struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	EmployeeID uuid.UUID  `db:"employee_id" json:"employee_id"`
	Day        string     `db:"day" json:"day"`
	ClockIn    *time.Time `db:"clock_in" json:"clock_in,omitempty"`
	ClockOut   *time.Time `db:"clock_out" json:"clock_out,omitempty"`
	Status     string     `db:"status" json:"status"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// LeaveRequest maps to the leave_requests table.
type LeaveRequest struct {
	ID         uuid.UUID `db:"id" json:"id"`
	EmployeeID uuid.UUID `db:"employee_id" json:"employee_id"`
	LeaveType  string    `db:"leave_type" json:"leave_type"`
	StartDate  string    `db:"start_date" json:"start_date"`
	EndDate    string    `db:"end_date" json:"end_date"`
	Duration   int       `db:"duration" json:"duration"`
	Reason     string    `db:"reason" json:"reason"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// LeaveBalance summarizes an employee's leave usage for the year.
type LeaveBalance struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Allowance  int       `json:"allowance"`
	Used       int       `json:"used"`
	Pending    int       `json:"pending"`
	Remaining  int       `json:"remaining"`
}

// CreateEmployeeRequest is the payload for registering a new employee.
type CreateEmployeeRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	JoinDate    string `json:"joinDate"`
}

// LeaveRequestInput is the payload for filing a leave request.
type LeaveRequestInput struct {
	EmployeeID string `json:"employeeId"`
	LeaveType  string `json:"leaveType"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
}
