package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Appointment maps to the appointments table.
type Appointment struct {
	ID              uuid.UUID `db:"id" json:"id"`
	FirstName       string    `db:"first_name" json:"first_name"`
	LastName        string    `db:"last_name" json:"last_name"`
	PatientDob      string    `db:"patient_dob" json:"patient_dob"`
	Email           string    `db:"email" json:"email"`
	Phone           string    `db:"phone" json:"phone"`
	AppointmentDate string    `db:"appointment_date" json:"appointment_date"`
	AppointmentTime string    `db:"appointment_time" json:"appointment_time"`
	Reason          *string   `db:"reason" json:"reason,omitempty"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// ScheduleRequest is the booking payload submitted by the scheduling form.
// Field names follow the form's JSON contract.
type ScheduleRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	PatientDob      string `json:"dateOfBirth"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Reason          string `json:"reasonForVisit"`
}

// ToAppointment converts a booking request into a new Appointment record.
func (r *ScheduleRequest) ToAppointment() *Appointment {
	a := &Appointment{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		PatientDob:      r.PatientDob,
		Email:           r.Email,
		Phone:           r.Phone,
		AppointmentDate: r.AppointmentDate,
		AppointmentTime: r.AppointmentTime,
		Status:          StatusScheduled,
	}
	if r.Reason != "" {
		reason := r.Reason
		a.Reason = &reason
	}
	return a
}
