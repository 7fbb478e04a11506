package authform

import (
	stderrors "errors"

	"github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/identity"
)

// MsgGenericFailure is shown for any provider code the table does not know.
const MsgGenericFailure = "An error occurred. Please try again."

type entry struct {
	class   errors.ErrorCode
	message string
}

var taxonomy = map[string]entry{
	identity.CodeInvalidEmail:            {errors.ErrCodeInvalidFormat, "Invalid email address. Please enter a valid email."},
	identity.CodeUserNotFound:            {errors.ErrCodeNotFound, "User not found. Please check your email or sign up."},
	identity.CodeWrongPassword:           {errors.ErrCodeInvalidCredentials, "Incorrect password. Please try again."},
	identity.CodeInvalidCredential:       {errors.ErrCodeInvalidCredentials, "Invalid email or password. Please try again."},
	identity.CodeEmailAlreadyInUse:       {errors.ErrCodeAlreadyExists, "Email already in use. Please use a different email."},
	identity.CodeWeakPassword:            {errors.ErrCodeInvalidInput, "Password is too weak. Please use a stronger password."},
	identity.CodeTooManyRequests:         {errors.ErrCodeRateLimited, "Too many requests. Please try again later."},
	identity.CodeNetworkRequestFailed:    {errors.ErrCodeConnectionFailed, "Network error. Please check your internet connection."},
	identity.CodeMissingPassword:         {errors.ErrCodeMissingField, "Password is required. Please enter your password."},
	identity.CodeInvalidPhoneNumber:      {errors.ErrCodeInvalidFormat, "Invalid phone number. Please enter a valid phone number."},
	identity.CodeInvalidVerificationCode: {errors.ErrCodeInvalidCredentials, "Invalid OTP. Please enter the correct OTP."},
	identity.CodeOperationNotAllowed:     {errors.ErrCodeFeatureDisabled, "Phone authentication is not enabled. Please contact support."},
	identity.CodePopupClosedByUser:       {errors.ErrCodeCancelled, "Sign-in process canceled. Please try again."},
}

var fallback = entry{errors.ErrCodeExternalService, MsgGenericFailure}

// Classify translates a failure into the AppError shown to the user and the
// provider code behind it. Errors that are already AppErrors pass through;
// anything else, including unknown provider codes, becomes the generic
// failure. known is false for the fallback.
func Classify(err error) (appErr *errors.AppError, code string, known bool) {
	code = identity.CodeOf(err)
	if code == "" {
		var ae *errors.AppError
		if stderrors.As(err, &ae) {
			return ae, "", true
		}
	}

	e, ok := taxonomy[code]
	if !ok {
		e = fallback
	}
	appErr = errors.New(e.class, e.message, errors.StatusFor(e.class)).WithCause(err)
	appErr.Retryable = e.class == errors.ErrCodeRateLimited || e.class == errors.ErrCodeConnectionFailed
	if code != "" {
		appErr = appErr.WithDetail("provider_code", code)
	}
	return appErr, code, ok
}

// Message returns the user-facing message for a provider code.
func Message(code string) string {
	if e, ok := taxonomy[code]; ok {
		return e.message
	}
	return fallback.message
}
