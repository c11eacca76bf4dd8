package errors

import "errors"

// Error codes for the calculation core. The API layer maps validation codes
// to 4xx responses and the rest to 5xx.
const (
	CodeInvalidDate          = "INVALID_DATE"
	CodeInvalidCoordinates   = "INVALID_COORDINATES"
	CodeEphemerisUnavailable = "EPHEMERIS_UNAVAILABLE"
	CodeConfiguration        = "CONFIGURATION"
	CodeUnknownStemBranch    = "UNKNOWN_STEM_BRANCH"
)

// CoreError encodes domain specific error details.
type CoreError struct {
	Code    string
	Message string
	Err     error
}

func (e *CoreError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CoreError) Unwrap() error {
	return e.Err
}

// Wrap produces a new CoreError instance.
func Wrap(code, message string, err error) error {
	return &CoreError{Code: code, Message: message, Err: err}
}

// New produces a CoreError without a cause.
func New(code, message string) error {
	return &CoreError{Code: code, Message: message}
}

// InvalidDate reports a malformed or non-existent calendar date/time.
func InvalidDate(message string) error {
	return New(CodeInvalidDate, message)
}

// InvalidCoordinates reports latitude/longitude out of range.
func InvalidCoordinates(message string) error {
	return New(CodeInvalidCoordinates, message)
}

// EphemerisUnavailable reports that position data cannot be resolved for the
// requested instant or body.
func EphemerisUnavailable(message string) error {
	return New(CodeEphemerisUnavailable, message)
}

// Configuration reports invalid engine configuration.
func Configuration(message string) error {
	return New(CodeConfiguration, message)
}

// UnknownStemBranch reports an internal lookup-table invariant violation.
func UnknownStemBranch(message string) error {
	return New(CodeUnknownStemBranch, message)
}

// IsCode helps callers differentiate failures.
func IsCode(err error, code string) bool {
	var coreErr *CoreError
	if errors.As(err, &coreErr) {
		return coreErr.Code == code
	}
	return false
}

// IsValidation reports whether the error is a caller-input problem
// (as opposed to an internal or data-availability failure).
func IsValidation(err error) bool {
	return IsCode(err, CodeInvalidDate) || IsCode(err, CodeInvalidCoordinates) || IsCode(err, CodeConfiguration)
}
