package rcmclient

import (
	"context"
	"regexp"
	"time"

	"github.com/nikhiljagtap3989/orbit-hr-suite/pkg/forms"
)

// Flow composes a validator, controller, submission client, and list refresh
// for one page: a field schema bound to a submit endpoint and, optionally,
// the collection that must be re-fetched after a successful submission.
type Flow struct {
	Name         string
	Schema       *forms.Schema
	Endpoint     string
	Encoding     Encoding
	ListEndpoint string
	ListFilter   FilterFunc
}

// NewController creates a fresh form controller for this flow's schema.
func (f *Flow) NewController() *forms.Controller {
	return forms.NewController(f.Schema)
}

// Result is the outcome of one flow submission, including the refreshed
// list when the submission succeeded and the flow has a list endpoint.
// RefreshErr is set when the submission succeeded but the follow-up list
// re-fetch failed; the stale list should be kept until the next refresh.
type Result struct {
	Outcome    Outcome
	Items      []ListItem
	RefreshErr error
}

// Submit validates and submits the controller's values through the client.
// On success the dependent collection is re-fetched exactly once, strictly
// after the success response is observed. Validation failures halt before
// any request is made; submission failures leave the form values untouched.
func (f *Flow) Submit(ctx context.Context, ctrl *forms.Controller, client *Client) (Result, error) {
	var outcome Outcome
	err := ctrl.Submit(ctx, func(ctx context.Context, values forms.Values) error {
		outcome = client.Submit(ctx, f.Endpoint, values, f.Encoding)
		return outcome.Err()
	})
	if err != nil {
		return Result{Outcome: outcome}, err
	}

	res := Result{Outcome: outcome}
	if f.ListEndpoint != "" {
		items, refreshErr := client.Refresh(ctx, f.ListEndpoint, f.ListFilter)
		if refreshErr != nil {
			res.RefreshErr = refreshErr
		} else {
			res.Items = items
		}
	}
	return res, nil
}

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	tenDigitPattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// notInFuture fails when the field holds a date after today.
func notInFuture(message string) forms.CustomRule {
	return forms.CustomRule{
		Check: func(value any, _ forms.Values) bool {
			s, _ := value.(string)
			if s == "" {
				return true
			}
			t, err := time.Parse("2006-01-02", s)
			if err != nil {
				return true
			}
			return !t.After(startOfToday())
		},
		Message: message,
	}
}

// notInPast fails when the field holds a date before today.
func notInPast(message string) forms.CustomRule {
	return forms.CustomRule{
		Check: func(value any, _ forms.Values) bool {
			s, _ := value.(string)
			if s == "" {
				return true
			}
			t, err := time.Parse("2006-01-02", s)
			if err != nil {
				return true
			}
			return !t.Before(startOfToday())
		},
		Message: message,
	}
}

// requiredUnlessSelf makes a subscriber field required whenever the patient
// is not their own subscriber.
func requiredUnlessSelf(message string) forms.CustomRule {
	return forms.CustomRule{
		Check: func(value any, values forms.Values) bool {
			if values.String("relationshipToSubscriber") == "self" {
				return true
			}
			s, _ := value.(string)
			return s != ""
		},
		Message: message,
	}
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// PatientSchedulingFlow is the scheduling and registration page: a JSON
// submission to the appointment endpoint followed by a refresh of today's
// appointment list.
func PatientSchedulingFlow() *Flow {
	return &Flow{
		Name: "patient-scheduling",
		Schema: forms.NewSchema(
			forms.Field{Name: "firstName", Label: "First name", Rule: forms.Rule{Required: true}},
			forms.Field{Name: "lastName", Label: "Last name", Rule: forms.Rule{Required: true}},
			forms.Field{Name: "dateOfBirth", Label: "Date of birth", Rule: forms.Rule{
				Required: true,
				Custom:   []forms.CustomRule{notInFuture("Date of birth cannot be in the future")},
			}},
			forms.Field{Name: "email", Label: "Email", Rule: forms.Rule{
				Required: true, Pattern: emailPattern, PatternMessage: "Invalid email address",
			}},
			forms.Field{Name: "phone", Label: "Phone number", Rule: forms.Rule{
				Required: true, MinLen: 10, MinLenMessage: "Phone number must be at least 10 digits",
			}},
			forms.Field{Name: "appointmentDate", Label: "Appointment date", Rule: forms.Rule{Required: true}},
			forms.Field{Name: "appointmentTime", Label: "Appointment time", Rule: forms.Rule{Required: true}},
			forms.Field{Name: "reasonForVisit", Label: "Reason for visit", Rule: forms.Rule{Required: true}},
		),
		Endpoint:     "/api/schedule-appointment",
		Encoding:     EncodingJSON,
		ListEndpoint: "/api/appointments",
	}
}

// InsuranceVerificationFlow is the insurance verification page. Subscriber
// fields are required only when the patient is not their own subscriber.
func InsuranceVerificationFlow() *Flow {
	return &Flow{
		Name: "insurance-verification",
		Schema: forms.NewSchema(
			// Provider information
			forms.Field{Name: "insuranceProvider", Label: "Insurance provider", Rule: forms.Rule{Required: true}},
			forms.Field{Name: "policyNumber", Label: "Policy number", Rule: forms.Rule{Required: true}},
			forms.Field{Name: "memberId", Label: "Member ID", Rule: forms.Rule{Required: true}},
			forms.Field{Name: "groupNumber", Label: "Group number"},
			forms.Field{Name: "providerPhone", Label: "Provider phone", Rule: forms.Rule{
				Required: true, Pattern: tenDigitPattern, PatternMessage: "Provider phone must be 10 digits",
			}},
			forms.Field{Name: "providerAddress", Label: "Provider address"},
			forms.Field{Name: "insuranceType", Label: "Insurance type", Default: "commercial"},
			forms.Field{Name: "verificationDate", Label: "Verification date", Rule: forms.Rule{Required: true}},
			// Patient information
			forms.Field{Name: "patientFirstName", Label: "Patient first name", Rule: forms.Rule{Required: true}},
			forms.Field{Name: "patientLastName", Label: "Patient last name", Rule: forms.Rule{Required: true}},
			forms.Field{Name: "patientDob", Label: "Patient date of birth", Rule: forms.Rule{
				Required: true,
				Custom:   []forms.CustomRule{notInFuture("Date of birth cannot be in the future")},
			}},
			forms.Field{Name: "patientGender", Label: "Patient gender", Rule: forms.Rule{Required: true}},
			forms.Field{Name: "patientAddress", Label: "Patient address"},
			forms.Field{Name: "patientPhone", Label: "Patient phone", Rule: forms.Rule{
				Required: true, Pattern: tenDigitPattern, PatternMessage: "Phone must be 10 digits",
			}},
			forms.Field{Name: "patientEmail", Label: "Patient email", Rule: forms.Rule{
				Pattern: emailPattern, PatternMessage: "Invalid email format",
			}},
			forms.Field{Name: "relationshipToSubscriber", Label: "Relationship to subscriber", Default: "self"},
			// Subscriber information, required unless the patient is the subscriber
			forms.Field{Name: "subscriberFirstName", Label: "Subscriber first name", Rule: forms.Rule{
				Custom: []forms.CustomRule{requiredUnlessSelf("Subscriber first name is required")},
			}},
			forms.Field{Name: "subscriberLastName", Label: "Subscriber last name", Rule: forms.Rule{
				Custom: []forms.CustomRule{requiredUnlessSelf("Subscriber last name is required")},
			}},
			forms.Field{Name: "subscriberDob", Label: "Subscriber date of birth", Rule: forms.Rule{
				Custom: []forms.CustomRule{
					requiredUnlessSelf("Subscriber date of birth is required"),
					notInFuture("Date of birth cannot be in the future"),
				},
			}},
			forms.Field{Name: "subscriberGender", Label: "Subscriber gender"},
			forms.Field{Name: "subscriberAddress", Label: "Subscriber address"},
			forms.Field{Name: "subscriberPhone", Label: "Subscriber phone"},
			forms.Field{Name: "subscriberEmail", Label: "Subscriber email"},
			// Service information
			forms.Field{Name: "serviceType", Label: "Service type", Rule: forms.Rule{Required: true}},
			forms.Field{Name: "serviceDate", Label: "Service date", Rule: forms.Rule{
				Required: true,
				Custom:   []forms.CustomRule{notInPast("Service date cannot be in the past")},
			}},
			forms.Field{Name: "diagnosisCodes", Label: "Diagnosis codes", Default: []string{}, Rule: forms.Rule{
				Required: true, RequiredMessage: "At least one diagnosis code is required",
			}},
			forms.Field{Name: "procedureCodes", Label: "Procedure codes", Default: []string{}, Rule: forms.Rule{
				Required: true, RequiredMessage: "At least one procedure code is required",
			}},
			forms.Field{Name: "referringProvider", Label: "Referring provider"},
			forms.Field{Name: "facility", Label: "Facility", Rule: forms.Rule{Required: true}},
			forms.Field{Name: "priorAuthorizationNumber", Label: "Prior authorization number"},
		),
		Endpoint: "/api/submit_insurance",
		Encoding: EncodingJSON,
	}
}

// ClaimSubmissionFlow is the claim submission page: a multipart submission
// carrying the claim fields plus optional report and billing documents.
func ClaimSubmissionFlow() *Flow {
	return &Flow{
		Name: "claim-submission",
		Schema: forms.NewSchema(
			forms.Field{Name: "appointmentId", Label: "Appointment", Rule: forms.Rule{
				Required: true, RequiredMessage: "Select an appointment",
			}},
			forms.Field{Name: "diagnosisCode", Label: "Diagnosis code", Rule: forms.Rule{Required: true}},
			forms.Field{Name: "procedureCode", Label: "Procedure code", Rule: forms.Rule{Required: true}},
			forms.Field{Name: "billedAmount", Label: "Billed amount", Rule: forms.Rule{Required: true}},
			forms.Field{Name: "providerNPI", Label: "Provider NPI", Rule: forms.Rule{
				Required: true, Pattern: tenDigitPattern, PatternMessage: "Provider NPI must be 10 digits",
			}},
			forms.Field{Name: "insuranceProvider", Label: "Insurance provider", Rule: forms.Rule{Required: true}},
			forms.Field{Name: "insurancePolicyNumber", Label: "Policy number", Rule: forms.Rule{Required: true}},
			forms.Field{Name: "serviceLocation", Label: "Service location", Rule: forms.Rule{Required: true}},
			forms.Field{Name: "claimNotes", Label: "Claim notes"},
			forms.Field{Name: "medicalReport", Label: "Medical report"},
			forms.Field{Name: "billingDoc", Label: "Billing document"},
		),
		Endpoint:     "/api/submit-claim",
		Encoding:     EncodingMultipart,
		ListEndpoint: "/api/appointments",
	}
}
