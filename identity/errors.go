package identity

import (
	"errors"
	"fmt"
)

// Provider error codes.
const (
	CodeInvalidEmail            = "auth/invalid-email"
	CodeUserNotFound            = "auth/user-not-found"
	CodeWrongPassword           = "auth/wrong-password"
	CodeInvalidCredential       = "auth/invalid-credential"
	CodeEmailAlreadyInUse       = "auth/email-already-in-use"
	CodeWeakPassword            = "auth/weak-password"
	CodeTooManyRequests         = "auth/too-many-requests"
	CodeNetworkRequestFailed    = "auth/network-request-failed"
	CodeMissingPassword         = "auth/missing-password"
	CodeInvalidPhoneNumber      = "auth/invalid-phone-number"
	CodeInvalidVerificationCode = "auth/invalid-verification-code"
	CodeInvalidVerificationID   = "auth/invalid-verification-id"
	CodeCodeExpired             = "auth/code-expired"
	CodeOperationNotAllowed     = "auth/operation-not-allowed"
	CodePopupClosedByUser       = "auth/popup-closed-by-user"
	CodeUserDisabled            = "auth/user-disabled"
	CodeCaptchaCheckFailed      = "auth/captcha-check-failed"
	CodeQuotaExceeded           = "auth/quota-exceeded"
	CodeInternalError           = "auth/internal-error"
)

// Error is a provider failure tagged with a provider code.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Code
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("identity: %s: %v", msg, e.Cause)
	}
	return "identity: " + msg
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError creates a provider error.
func NewError(code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf returns the provider code carried by err, or "" when err is not a
// provider error.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
