package claims

import (
	"time"

	"github.com/google/uuid"
)

// Claim maps to the claims table.
type Claim struct {
	ID                    uuid.UUID  `db:"id" json:"id"`
	ClaimNumber           string     `db:"claim_number" json:"claim_number"`
	AppointmentID         uuid.UUID  `db:"appointment_id" json:"appointment_id"`
	DiagnosisCode         string     `db:"diagnosis_code" json:"diagnosis_code"`
	ProcedureCode         string     `db:"procedure_code" json:"procedure_code"`
	BilledAmount          float64    `db:"billed_amount" json:"billed_amount"`
	ProviderNPI           string     `db:"provider_npi" json:"provider_npi"`
	InsuranceProvider     string     `db:"insurance_provider" json:"insurance_provider"`
	InsurancePolicyNumber string     `db:"insurance_policy_number" json:"insurance_policy_number"`
	ServiceLocation       string     `db:"service_location" json:"service_location"`
	ClaimNotes            *string    `db:"claim_notes" json:"claim_notes,omitempty"`
	MedicalReportID       *uuid.UUID `db:"medical_report_id" json:"medical_report_id,omitempty"`
	BillingDocID          *uuid.UUID `db:"billing_doc_id" json:"billing_doc_id,omitempty"`
	Status                string     `db:"status" json:"status"`
	DenialReason          *string    `db:"denial_reason" json:"denial_reason,omitempty"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updated_at"`
}

// SubmitRequest carries the claim form fields. The handler fills it from a
// multipart form, with attachments handled separately.
type SubmitRequest struct {
	AppointmentID         string `form:"appointmentId" json:"appointmentId"`
	DiagnosisCode         string `form:"diagnosisCode" json:"diagnosisCode"`
	ProcedureCode         string `form:"procedureCode" json:"procedureCode"`
	BilledAmount          string `form:"billedAmount" json:"billedAmount"`
	ProviderNPI           string `form:"providerNPI" json:"providerNPI"`
	InsuranceProvider     string `form:"insuranceProvider" json:"insuranceProvider"`
	InsurancePolicyNumber string `form:"insurancePolicyNumber" json:"insurancePolicyNumber"`
	ServiceLocation       string `form:"serviceLocation" json:"serviceLocation"`
	ClaimNotes            string `form:"claimNotes" json:"claimNotes"`
}
