package field

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed layout specification. Subject names
// the offending element or fiducial so the spec author can find it.
type ValidationError struct {
	Subject string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid layout spec: %s: %s", e.Subject, e.Reason)
}

func validationErrorf(subject, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Subject: subject, Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a lookup for an identifier or label the layout does
// not contain. Lookups never fall back to a zero pose: a silently defaulted
// fiducial pose corrupts localization downstream.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in layout", e.Kind, e.Key)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
