package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValueIsRequired is the sentinel for missing required values.
	ErrValueIsRequired = errors.New("value is required")
	// ErrValueIsInvalid is the sentinel for values that fail validation.
	ErrValueIsInvalid = errors.New("value is invalid")
	// ErrValueIsOutOfRange is the sentinel for values outside allowed bounds.
	ErrValueIsOutOfRange = errors.New("value is out of range")
	// ErrObjectNotFound is the sentinel for lookups that matched nothing.
	ErrObjectNotFound = errors.New("object not found")
	// ErrLocationNotFound is the sentinel for locations that no resolver recognizes.
	ErrLocationNotFound = errors.New("location not found")
	// ErrCarrierUnavailable is the sentinel for a single carrier's transport,
	// auth or data-shape failure. It never escapes the aggregation boundary.
	ErrCarrierUnavailable = errors.New("carrier unavailable")
	// ErrCredential is the sentinel for credential lookup or token exchange
	// failures. The aggregator treats it as a per-carrier failure.
	ErrCredential = errors.New("credential error")
	// ErrNoQuotesAvailable is the sentinel raised only when every configured
	// carrier failed to produce a quote.
	ErrNoQuotesAvailable = errors.New("no carrier produced a quote")
)

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ValueIsRequiredError reports a missing required value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a value that failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping a cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without a cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping a cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %s)", e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError reports a lookup that matched nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping a cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// LocationNotFoundError reports a location string that the shared resolution
// step (or a carrier resolver) could not map to a known city. When raised by
// the shared step it fails the whole request before any carrier is called.
type LocationNotFoundError struct {
	Query string
	Cause error
}

// NewLocationNotFoundError creates a LocationNotFoundError without a cause.
func NewLocationNotFoundError(query string) *LocationNotFoundError {
	return &LocationNotFoundError{Query: query}
}

// NewLocationNotFoundErrorWithCause creates a LocationNotFoundError wrapping a cause.
func NewLocationNotFoundErrorWithCause(query string, cause error) *LocationNotFoundError {
	return &LocationNotFoundError{Query: query, Cause: cause}
}

func (e *LocationNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrLocationNotFound, sanitize(e.Query), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrLocationNotFound, sanitize(e.Query))
}

func (e *LocationNotFoundError) Unwrap() error {
	return ErrLocationNotFound
}

// CarrierUnavailableError reports one carrier's transport, auth or parsing
// failure. It carries the carrier name and the underlying cause so the
// aggregator can log it; it is never surfaced to the caller directly.
type CarrierUnavailableError struct {
	Carrier string
	Cause   error
}

// NewCarrierUnavailableError creates a CarrierUnavailableError wrapping a cause.
func NewCarrierUnavailableError(carrier string, cause error) *CarrierUnavailableError {
	return &CarrierUnavailableError{Carrier: carrier, Cause: cause}
}

func (e *CarrierUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrCarrierUnavailable, e.Carrier, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrCarrierUnavailable, e.Carrier)
}

func (e *CarrierUnavailableError) Unwrap() error {
	return ErrCarrierUnavailable
}

// CredentialError reports a failed credential lookup or token exchange for a
// single carrier. The aggregator treats it exactly like a carrier failure:
// that carrier contributes nothing, the request proceeds.
type CredentialError struct {
	Carrier string
	Cause   error
}

// NewCredentialError creates a CredentialError without a cause.
func NewCredentialError(carrier string) *CredentialError {
	return &CredentialError{Carrier: carrier}
}

// NewCredentialErrorWithCause creates a CredentialError wrapping a cause.
func NewCredentialErrorWithCause(carrier string, cause error) *CredentialError {
	return &CredentialError{Carrier: carrier, Cause: cause}
}

func (e *CredentialError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrCredential, e.Carrier, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrCredential, e.Carrier)
}

func (e *CredentialError) Unwrap() error {
	return ErrCredential
}

// NoQuotesAvailableError is raised only when every configured carrier failed
// or produced zero quotes. It lists the carriers that were attempted.
type NoQuotesAvailableError struct {
	Carriers []string
}

// NewNoQuotesAvailableError creates a NoQuotesAvailableError for the given carriers.
func NewNoQuotesAvailableError(carriers []string) *NoQuotesAvailableError {
	return &NoQuotesAvailableError{Carriers: carriers}
}

func (e *NoQuotesAvailableError) Error() string {
	return fmt.Sprintf("%s: tried %s", ErrNoQuotesAvailable, strings.Join(e.Carriers, ", "))
}

func (e *NoQuotesAvailableError) Unwrap() error {
	return ErrNoQuotesAvailable
}
