package errors

import (
	"errors"
)

// Sentinel errors used as marks. Callers never return these directly;
// they build an InternalError and Mark it with one of them so upstream
// layers can classify without string matching.
var (
	ErrValidation         = errors.New("validation_error")
	ErrNotFound           = errors.New("not_found")
	ErrAlreadyExists      = errors.New("already_exists")
	ErrInactive           = errors.New("inactive")
	ErrPermissionDenied   = errors.New("permission_denied")
	ErrInvalidTransition  = errors.New("invalid_transition")
	ErrReasonRequired     = errors.New("reason_required")
	ErrInvariantViolation = errors.New("invariant_violation")
	ErrFieldNotEditable   = errors.New("field_not_editable")
	ErrInvalidOperation   = errors.New("invalid_operation")
	ErrDatabase           = errors.New("database_error")
	ErrSystem             = errors.New("system_error")
	ErrInternal           = errors.New("internal_error")
)

// InternalError is the rich error type carried across layers. It wraps an
// optional cause, a user-safe hint, reportable details and exactly one mark.
type InternalError struct {
	mark    error
	cause   error
	message string
	hint    string
	details map[string]interface{}
}

func (e *InternalError) Error() string {
	if e.message != "" {
		return e.message
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	if e.mark != nil {
		return e.mark.Error()
	}
	return "unknown error"
}

// Unwrap exposes both the mark and the cause to errors.Is/As.
func (e *InternalError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.mark != nil {
		out = append(out, e.mark)
	}
	if e.cause != nil {
		out = append(out, e.cause)
	}
	return out
}

// Hint returns the user-safe hint, falling back to the message.
func (e *InternalError) Hint() string {
	if e.hint != "" {
		return e.hint
	}
	return e.message
}

// ReportableDetails returns details that are safe to surface to callers.
func (e *InternalError) ReportableDetails() map[string]interface{} {
	return e.details
}

// Code returns the stable error code derived from the mark.
func (e *InternalError) Code() string {
	if e.mark != nil {
		return e.mark.Error()
	}
	return ErrInternal.Error()
}

// Is lets a marked error match its sentinel directly.
func (e *InternalError) Is(target error) bool {
	return errors.Is(e.mark, target) || errors.Is(e.cause, target)
}

func IsValidation(err error) bool         { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool           { return errors.Is(err, ErrNotFound) }
func IsAlreadyExists(err error) bool      { return errors.Is(err, ErrAlreadyExists) }
func IsInactive(err error) bool           { return errors.Is(err, ErrInactive) }
func IsPermissionDenied(err error) bool   { return errors.Is(err, ErrPermissionDenied) }
func IsInvalidTransition(err error) bool  { return errors.Is(err, ErrInvalidTransition) }
func IsReasonRequired(err error) bool     { return errors.Is(err, ErrReasonRequired) }
func IsInvariantViolation(err error) bool { return errors.Is(err, ErrInvariantViolation) }
func IsFieldNotEditable(err error) bool   { return errors.Is(err, ErrFieldNotEditable) }
func IsInvalidOperation(err error) bool   { return errors.Is(err, ErrInvalidOperation) }
func IsDatabase(err error) bool           { return errors.Is(err, ErrDatabase) }
