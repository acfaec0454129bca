package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCheckoutInFlight is returned when a checkout is requested while another attempt is still running.
	ErrCheckoutInFlight = errors.New("checkout already in progress")

	// ErrCheckoutAbandoned marks an attempt whose response arrived after the user abandoned it.
	ErrCheckoutAbandoned = errors.New("checkout attempt abandoned")
)

// ValidationError reports one field that violates its bound or enum.
type ValidationError struct {
	Field      string
	Value      any
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s=%v %s", e.Field, e.Value, e.Constraint)
}

// ValidationErrors collects every violation found in a single configuration.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual violations to errors.As.
func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(e))
	for _, v := range e {
		errs = append(errs, v)
	}
	return errs
}

// Fields returns the names of the offending fields in report order.
func (e ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for _, v := range e {
		fields = append(fields, v.Field)
	}
	return fields
}

// InvalidConfigurationError is returned by the pricing engine when it is handed
// a configuration that the configuration model should already have rejected.
type InvalidConfigurationError struct {
	Reason string
	Err    error
}

func (e *InvalidConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration: %s: %v", e.Reason, e.Err)
	}
	return "invalid configuration: " + e.Reason
}

func (e *InvalidConfigurationError) Unwrap() error {
	return e.Err
}

// RejectionCode classifies why the validator refused to open a session.
type RejectionCode string

const (
	RejectionInvalidField     RejectionCode = "invalid_field"
	RejectionMalformedRequest RejectionCode = "malformed_request"
	RejectionPaymentError     RejectionCode = "payment_error"
	RejectionConflict         RejectionCode = "conflict"
	RejectionRateLimited      RejectionCode = "rate_limited"
	RejectionUnavailable      RejectionCode = "unavailable"
)

// RejectionError is the validator's typed refusal to create a checkout session.
type RejectionError struct {
	Code       RejectionCode
	Message    string
	Field      string
	StatusCode int
	Err        error
}

func (e *RejectionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("checkout rejected (%s, field %s): %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("checkout rejected (%s): %s", e.Code, e.Message)
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}

// RedirectError reports that the payment collaborator could not take over a session.
type RedirectError struct {
	SessionID string
	Message   string
	Err       error
}

func (e *RedirectError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("redirect to payment page failed for session %s: %s", e.SessionID, e.Message)
	}
	return fmt.Sprintf("redirect to payment page failed for session %s: %v", e.SessionID, e.Err)
}

func (e *RedirectError) Unwrap() error {
	return e.Err
}
