package insurance

import (
	"time"

	"github.com/google/uuid"
)

// Verification maps to the insurance_verifications table.
type Verification struct {
	ID                       uuid.UUID `db:"id" json:"id"`
	InsuranceProvider        string    `db:"insurance_provider" json:"insurance_provider"`
	PolicyNumber             string    `db:"policy_number" json:"policy_number"`
	MemberID                 string    `db:"member_id" json:"member_id"`
	GroupNumber              *string   `db:"group_number" json:"group_number,omitempty"`
	ProviderPhone            string    `db:"provider_phone" json:"provider_phone"`
	ProviderAddress          *string   `db:"provider_address" json:"provider_address,omitempty"`
	InsuranceType            string    `db:"insurance_type" json:"insurance_type"`
	VerificationDate         string    `db:"verification_date" json:"verification_date"`
	PatientFirstName         string    `db:"patient_first_name" json:"patient_first_name"`
	PatientLastName          string    `db:"patient_last_name" json:"patient_last_name"`
	PatientDob               string    `db:"patient_dob" json:"patient_dob"`
	PatientGender            string    `db:"patient_gender" json:"patient_gender"`
	PatientAddress           *string   `db:"patient_address" json:"patient_address,omitempty"`
	PatientPhone             string    `db:"patient_phone" json:"patient_phone"`
	PatientEmail             *string   `db:"patient_email" json:"patient_email,omitempty"`
	RelationshipToSubscriber string    `db:"relationship_to_subscriber" json:"relationship_to_subscriber"`
	SubscriberFirstName      *string   `db:"subscriber_first_name" json:"subscriber_first_name,omitempty"`
	SubscriberLastName       *string   `db:"subscriber_last_name" json:"subscriber_last_name,omitempty"`
	SubscriberDob            *string   `db:"subscriber_dob" json:"subscriber_dob,omitempty"`
	ServiceType              string    `db:"service_type" json:"service_type"`
	ServiceDate              string    `db:"service_date" json:"service_date"`
	DiagnosisCodes           []string  `db:"diagnosis_codes" json:"diagnosis_codes"`
	ProcedureCodes           []string  `db:"procedure_codes" json:"procedure_codes"`
	ReferringProvider        *string   `db:"referring_provider" json:"referring_provider,omitempty"`
	Facility                 string    `db:"facility" json:"facility"`
	PriorAuthorizationNumber *string   `db:"prior_authorization_number" json:"prior_authorization_number,omitempty"`
	Status                   string    `db:"status" json:"status"`
	Deductible               *float64  `db:"deductible" json:"deductible,omitempty"`
	Copay                    *float64  `db:"copay" json:"copay,omitempty"`
	Coinsurance              *float64  `db:"coinsurance" json:"coinsurance,omitempty"`
	OutOfPocketMax           *float64  `db:"out_of_pocket_max" json:"out_of_pocket_max,omitempty"`
	VerifiedBy               *string   `db:"verified_by" json:"verified_by,omitempty"`
	VerifiedDate             *string   `db:"verified_date" json:"verified_date,omitempty"`
	CreatedAt                time.Time `db:"created_at" json:"created_at"`
	UpdatedAt                time.Time `db:"updated_at" json:"updated_at"`
}

// BenefitsRequest records coverage figures once a payer confirms eligibility.
type BenefitsRequest struct {
	Deductible     *float64 `json:"deductible"`
	Copay          *float64 `json:"copay"`
	Coinsurance    *float64 `json:"coinsurance"`
	OutOfPocketMax *float64 `json:"outOfPocketMax"`
	VerifiedBy     string   `json:"verifiedBy"`
	VerifiedDate   string   `json:"verifiedDate"`
}

// SubmitRequest is the verification payload posted by the insurance form.
type SubmitRequest struct {
	InsuranceProvider        string   `json:"insuranceProvider"`
	PolicyNumber             string   `json:"policyNumber"`
	MemberID                 string   `json:"memberId"`
	GroupNumber              string   `json:"groupNumber"`
	ProviderPhone            string   `json:"providerPhone"`
	ProviderAddress          string   `json:"providerAddress"`
	InsuranceType            string   `json:"insuranceType"`
	VerificationDate         string   `json:"verificationDate"`
	PatientFirstName         string   `json:"patientFirstName"`
	PatientLastName          string   `json:"patientLastName"`
	PatientDob               string   `json:"patientDob"`
	PatientGender            string   `json:"patientGender"`
	PatientAddress           string   `json:"patientAddress"`
	PatientPhone             string   `json:"patientPhone"`
	PatientEmail             string   `json:"patientEmail"`
	RelationshipToSubscriber string   `json:"relationshipToSubscriber"`
	SubscriberFirstName      string   `json:"subscriberFirstName"`
	SubscriberLastName       string   `json:"subscriberLastName"`
	SubscriberDob            string   `json:"subscriberDob"`
	ServiceType              string   `json:"serviceType"`
	ServiceDate              string   `json:"serviceDate"`
	DiagnosisCodes           []string `json:"diagnosisCodes"`
	ProcedureCodes           []string `json:"procedureCodes"`
	ReferringProvider        string   `json:"referringProvider"`
	Facility                 string   `json:"facility"`
	PriorAuthorizationNumber string   `json:"priorAuthorizationNumber"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToVerification converts a submission into a new Verification record.
func (r *SubmitRequest) ToVerification() *Verification {
	insuranceType := r.InsuranceType
	if insuranceType == "" {
		insuranceType = "commercial"
	}
	relationship := r.RelationshipToSubscriber
	if relationship == "" {
		relationship = "self"
	}

	return &Verification{
		InsuranceProvider:        r.InsuranceProvider,
		PolicyNumber:             r.PolicyNumber,
		MemberID:                 r.MemberID,
		GroupNumber:              optional(r.GroupNumber),
		ProviderPhone:            r.ProviderPhone,
		ProviderAddress:          optional(r.ProviderAddress),
		InsuranceType:            insuranceType,
		VerificationDate:         r.VerificationDate,
		PatientFirstName:         r.PatientFirstName,
		PatientLastName:          r.PatientLastName,
		PatientDob:               r.PatientDob,
		PatientGender:            r.PatientGender,
		PatientAddress:           optional(r.PatientAddress),
		PatientPhone:             r.PatientPhone,
		PatientEmail:             optional(r.PatientEmail),
		RelationshipToSubscriber: relationship,
		SubscriberFirstName:      optional(r.SubscriberFirstName),
		SubscriberLastName:       optional(r.SubscriberLastName),
		SubscriberDob:            optional(r.SubscriberDob),
		ServiceType:              r.ServiceType,
		ServiceDate:              r.ServiceDate,
		DiagnosisCodes:           r.DiagnosisCodes,
		ProcedureCodes:           r.ProcedureCodes,
		ReferringProvider:        optional(r.ReferringProvider),
		Facility:                 r.Facility,
		PriorAuthorizationNumber: optional(r.PriorAuthorizationNumber),
		Status:                   StatusPending,
	}
}
