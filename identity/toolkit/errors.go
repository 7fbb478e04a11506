package toolkit

import (
	"encoding/json"
	"strings"

	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/identity"
)

// reasons maps Identity Toolkit error reasons to provider codes.
var reasons = map[string]string{
	"EMAIL_EXISTS":                identity.CodeEmailAlreadyInUse,
	"EMAIL_NOT_FOUND":             identity.CodeUserNotFound,
	"INVALID_PASSWORD":            identity.CodeWrongPassword,
	"INVALID_LOGIN_CREDENTIALS":   identity.CodeInvalidCredential,
	"INVALID_IDP_RESPONSE":        identity.CodeInvalidCredential,
	"INVALID_EMAIL":               identity.CodeInvalidEmail,
	"WEAK_PASSWORD":               identity.CodeWeakPassword,
	"TOO_MANY_ATTEMPTS_TRY_LATER": identity.CodeTooManyRequests,
	"MISSING_PASSWORD":            identity.CodeMissingPassword,
	"INVALID_PHONE_NUMBER":        identity.CodeInvalidPhoneNumber,
	"INVALID_CODE":                identity.CodeInvalidVerificationCode,
	"INVALID_SESSION_INFO":        identity.CodeInvalidVerificationID,
	"SESSION_EXPIRED":             identity.CodeCodeExpired,
	"OPERATION_NOT_ALLOWED":       identity.CodeOperationNotAllowed,
	"PASSWORD_LOGIN_DISABLED":     identity.CodeOperationNotAllowed,
	"USER_DISABLED":               identity.CodeUserDisabled,
	"CAPTCHA_CHECK_FAILED":        identity.CodeCaptchaCheckFailed,
	"QUOTA_EXCEEDED":              identity.CodeQuotaExceeded,
}

type errorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// reason extracts the leading reason from "WEAK_PASSWORD : detail".
func reason(message string) string {
	if i := strings.Index(message, " : "); i >= 0 {
		message = message[:i]
	}
	return strings.TrimSpace(message)
}

// translate converts a transport or API failure into an *identity.Error.
func translate(err error) error {
	herr, ok := httpclient.AsError(err)
	if !ok {
		return identity.NewError(identity.CodeInternalError, "", err)
	}
	switch herr.Code {
	case httpclient.ErrCodeTimeout, httpclient.ErrCodeConnection:
		return identity.NewError(identity.CodeNetworkRequestFailed, "", err)
	}

	var body errorBody
	if len(herr.Body) > 0 && json.Unmarshal(herr.Body, &body) == nil && body.Error.Message != "" {
		r := reason(body.Error.Message)
		if code, known := reasons[r]; known {
			return identity.NewError(code, body.Error.Message, err)
		}
		if httpclient.IsServerError(herr) {
			return identity.NewError(identity.CodeInternalError, body.Error.Message, err)
		}
		return identity.NewError("auth/"+strings.ToLower(strings.ReplaceAll(r, "_", "-")), body.Error.Message, err)
	}
	if httpclient.IsRateLimit(herr) {
		return identity.NewError(identity.CodeTooManyRequests, "", err)
	}
	return identity.NewError(identity.CodeInternalError, "", err)
}
