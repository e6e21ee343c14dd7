package forms

import (
	"context"
	"errors"
)

// Status is the submission status of a form controller.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

var (
	// ErrValidationFailed is returned by Submit when the form has field
	// errors; the submit function is never called in that case.
	ErrValidationFailed = errors.New("form validation failed")
	// ErrSubmitInFlight is returned when Submit is called while a previous
	// submission is still running. The second submit is ignored.
	ErrSubmitInFlight = errors.New("submission already in flight")
)

// SubmitFunc sends validated form values to their destination. A nil return
// means the submission was accepted; a non-nil error preserves form state
// for correction and resubmission.
type SubmitFunc func(ctx context.Context, values Values) error

// Controller owns the values and submission status of a single form
// instance, created on page mount and discarded on navigation away. It has
// exactly one writer, so no locking is required.
type Controller struct {
	schema  *Schema
	values  Values
	errors  Errors
	status  Status
	lastErr error
}

// NewController creates a controller with values set to the schema defaults.
func NewController(schema *Schema) *Controller {
	return &Controller{
		schema: schema,
		values: schema.Defaults(),
		errors: Errors{},
	}
}

// Values returns the current field values.
func (c *Controller) Values() Values { return c.values }

// Errors returns the most recent validation result.
func (c *Controller) Errors() Errors { return c.errors }

// Status returns the current submission status.
func (c *Controller) Status() Status { return c.status }

// LastError returns the error from the most recent failed submission.
func (c *Controller) LastError() error { return c.lastErr }

// SetField merges a single field value. It does not trigger validation;
// validation is explicit, run by Submit or ValidateField.
func (c *Controller) SetField(name string, value any) {
	c.values[name] = value
}

// ValidateField re-validates the whole form and returns the named field's
// error, for pages that validate per-field on blur.
func (c *Controller) ValidateField(name string) string {
	return Validate(c.values, c.schema)[name]
}

// Reset restores values to the schema defaults and clears any prior
// validation result and submission outcome.
func (c *Controller) Reset() {
	c.values = c.schema.Defaults()
	c.errors = Errors{}
	c.status = StatusIdle
	c.lastErr = nil
}

// Submit runs the submission state machine: validate, and only when the
// validation result is empty call fn. On success the form resets to
// defaults; on failure values are retained unchanged so the user can correct
// and resubmit. A submit while another is in flight is ignored.
func (c *Controller) Submit(ctx context.Context, fn SubmitFunc) error {
	if c.status == StatusSubmitting {
		return ErrSubmitInFlight
	}

	c.errors = Validate(c.values, c.schema)
	if len(c.errors) > 0 {
		c.status = StatusIdle
		return ErrValidationFailed
	}

	c.status = StatusSubmitting
	if err := fn(ctx, c.values); err != nil {
		c.status = StatusFailed
		c.lastErr = err
		return err
	}

	c.Reset()
	c.status = StatusSucceeded
	return nil
}
