// Package syno provides an HTTP client for the Synology DSM Photos web API:
// request construction for the entry.cgi endpoint, envelope decoding, and
// error classification for the numeric DSM error codes.
package syno

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for DSM API error codes. Use errors.Is(err, syno.ErrOTPRequired)
// to check.
var (
	ErrInvalidCredentials = errors.New("syno: invalid account or password")
	ErrAccountDisabled    = errors.New("syno: account disabled")
	ErrPermissionDenied   = errors.New("syno: permission denied")
	ErrOTPRequired        = errors.New("syno: OTP code required")
	ErrOTPInvalid         = errors.New("syno: OTP code invalid")
	ErrOTPEnforced        = errors.New("syno: authentication enforced with OTP")
	ErrIPBlocked          = errors.New("syno: source IP blocked")
	ErrNoAccessOrNotFound = errors.New("syno: no access or not found")
)

// DSM error codes returned in the response envelope. Auth codes are shared by
// the SYNO.API.Auth family; 642 is the combined "no permission or not found"
// code of the Photos family.
const (
	codeInvalidCredentials = 400
	codeAccountDisabled    = 401
	codePermissionDenied   = 402
	codeOTPRequired        = 403
	codeOTPInvalid         = 404
	codeOTPEnforced        = 406
	codeIPBlocked          = 407
	codeNoAccessOrNotFound = 642
)

// APIError is a DSM envelope error. It wraps a sentinel error when the code
// is a known one, so callers can branch with errors.Is.
type APIError struct {
	Code int
	Err  error // sentinel, for errors.Is(); nil for unknown codes
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v (code %d)", e.Err, e.Code)
	}

	return fmt.Sprintf("syno: api error code %d", e.Code)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// newAPIError builds an APIError, attaching the sentinel for known codes.
func newAPIError(code int) *APIError {
	return &APIError{Code: code, Err: classifyCode(code)}
}

// classifyCode maps a DSM error code to a sentinel error, or nil when the
// code is not one we branch on.
func classifyCode(code int) error {
	switch code {
	case codeInvalidCredentials:
		return ErrInvalidCredentials
	case codeAccountDisabled:
		return ErrAccountDisabled
	case codePermissionDenied:
		return ErrPermissionDenied
	case codeOTPRequired:
		return ErrOTPRequired
	case codeOTPInvalid:
		return ErrOTPInvalid
	case codeOTPEnforced:
		return ErrOTPEnforced
	case codeIPBlocked:
		return ErrIPBlocked
	case codeNoAccessOrNotFound:
		return ErrNoAccessOrNotFound
	default:
		return nil
	}
}

// HTTPError is a transport-level failure: the server answered with a
// non-2xx status before any envelope could be decoded.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	reason := http.StatusText(e.StatusCode)
	if reason == "" {
		return fmt.Sprintf("syno: HTTP %d", e.StatusCode)
	}

	return fmt.Sprintf("syno: %s", reason)
}
