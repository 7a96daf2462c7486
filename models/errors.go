package models

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindNotFound      ErrorKind = "not_found"
	KindAuthorization ErrorKind = "authorization"
	KindConflict      ErrorKind = "conflict"
	KindUpstream      ErrorKind = "upstream"
)

// DomainError is the error type every service returns to its callers.
// Two DomainErrors match under errors.Is when their codes are equal.
type DomainError struct {
	Code    string
	Kind    ErrorKind
	Message string
	Field   string        // offending input field, validation errors only
	State   BookingStatus // current booking state, state conflicts only
	Err     error
}

func (e *DomainError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Field != "" {
		msg += fmt.Sprintf(" (field %s)", e.Field)
	}
	if e.State != "" {
		msg += fmt.Sprintf(" (state %s)", e.State)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DomainError) Unwrap() error { return e.Err }

func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithField returns a copy naming the offending field.
func (e *DomainError) WithField(field string) *DomainError {
	c := *e
	c.Field = field
	return &c
}

// WithState returns a copy carrying the booking's current state.
func (e *DomainError) WithState(state BookingStatus) *DomainError {
	c := *e
	c.State = state
	return &c
}

// Wrap returns a copy with err as its cause.
func (e *DomainError) Wrap(err error) *DomainError {
	c := *e
	c.Err = err
	return &c
}

// WithMessage returns a copy with a more specific message.
func (e *DomainError) WithMessage(msg string) *DomainError {
	c := *e
	c.Message = msg
	return &c
}

func newError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{Code: code, Kind: kind, Message: message}
}

var (
	ErrInvalidCoordinates          = newError(KindValidation, "InvalidCoordinates", "coordinates are out of range")
	ErrInvalidRadius               = newError(KindValidation, "InvalidRadius", "radius must be a positive number of meters")
	ErrMissingAddress              = newError(KindValidation, "MissingAddress", "address is required")
	ErrMissingCategory             = newError(KindValidation, "MissingCategory", "category is required")
	ErrInvalidTimeslot             = newError(KindValidation, "InvalidTimeslot", "timeslot must be a valid RFC 3339 timestamp")
	ErrInvalidNotes                = newError(KindValidation, "InvalidNotes", "notes exceed 500 characters")
	ErrInvalidRating               = newError(KindValidation, "InvalidRating", "rating must be an integer between 1 and 5")
	ErrInvalidComment              = newError(KindValidation, "InvalidComment", "comment exceeds 500 characters")
	ErrInvalidProvider             = newError(KindValidation, "InvalidProvider", "provider request is invalid")
	ErrUnknownOrUnapprovedProvider = newError(KindValidation, "UnknownOrUnapprovedProvider", "provider does not exist or is not approved")

	ErrBookingNotFound  = newError(KindNotFound, "BookingNotFound", "booking not found")
	ErrProviderNotFound = newError(KindNotFound, "ProviderNotFound", "provider not found")

	ErrNotAuthorized = newError(KindAuthorization, "NotAuthorized", "not authorized to perform this action")

	ErrInvalidStateForPayment      = newError(KindConflict, "InvalidStateForPayment", "booking is not awaiting its visit charge")
	ErrInvalidStateForCompletion   = newError(KindConflict, "InvalidStateForCompletion", "only confirmed bookings can be completed")
	ErrInvalidStateForCancellation = newError(KindConflict, "InvalidStateForCancellation", "only pending bookings can be cancelled")
	ErrDuplicateReview             = newError(KindConflict, "DuplicateReview", "you have already reviewed this provider")
	ErrProviderAlreadyRequested    = newError(KindConflict, "ProviderAlreadyRequested", "a provider request already exists for this user")
	ErrConcurrentModification      = newError(KindConflict, "ConcurrentModification", "resource is being modified, try again")

	ErrPaymentFailed    = newError(KindUpstream, "PaymentFailed", "visit charge payment failed")
	ErrStoreUnavailable = newError(KindUpstream, "StoreUnavailable", "storage is unavailable")
)

// AsDomainError extracts the DomainError in err's chain, if any.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
