package authform

import (
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/identity"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		code  string
		class apperrors.ErrorCode
		msg   string
	}{
		{identity.CodeInvalidEmail, apperrors.ErrCodeInvalidFormat, "Invalid email address. Please enter a valid email."},
		{identity.CodeUserNotFound, apperrors.ErrCodeNotFound, "User not found. Please check your email or sign up."},
		{identity.CodeWrongPassword, apperrors.ErrCodeInvalidCredentials, "Incorrect password. Please try again."},
		{identity.CodeInvalidCredential, apperrors.ErrCodeInvalidCredentials, "Invalid email or password. Please try again."},
		{identity.CodeEmailAlreadyInUse, apperrors.ErrCodeAlreadyExists, "Email already in use. Please use a different email."},
		{identity.CodeWeakPassword, apperrors.ErrCodeInvalidInput, "Password is too weak. Please use a stronger password."},
		{identity.CodeTooManyRequests, apperrors.ErrCodeRateLimited, "Too many requests. Please try again later."},
		{identity.CodeNetworkRequestFailed, apperrors.ErrCodeConnectionFailed, "Network error. Please check your internet connection."},
		{identity.CodeMissingPassword, apperrors.ErrCodeMissingField, "Password is required. Please enter your password."},
		{identity.CodeInvalidPhoneNumber, apperrors.ErrCodeInvalidFormat, "Invalid phone number. Please enter a valid phone number."},
		{identity.CodeInvalidVerificationCode, apperrors.ErrCodeInvalidCredentials, "Invalid OTP. Please enter the correct OTP."},
		{identity.CodeOperationNotAllowed, apperrors.ErrCodeFeatureDisabled, "Phone authentication is not enabled. Please contact support."},
		{identity.CodePopupClosedByUser, apperrors.ErrCodeCancelled, "Sign-in process canceled. Please try again."},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			cause := identity.NewError(tc.code, "", nil)
			appErr, code, known := Classify(fmt.Errorf("wrapped: %w", cause))
			if !known || code != tc.code {
				t.Fatalf("expected known code %q, got %q known=%v", tc.code, code, known)
			}
			if appErr.Code != tc.class || appErr.Message != tc.msg {
				t.Errorf("got %s %q, want %s %q", appErr.Code, appErr.Message, tc.class, tc.msg)
			}
			if appErr.Details["provider_code"] != tc.code {
				t.Errorf("missing provider_code detail: %v", appErr.Details)
			}
			if !errors.Is(appErr, cause) {
				t.Error("cause must be preserved")
			}
			if Message(tc.code) != tc.msg {
				t.Errorf("Message(%q) = %q", tc.code, Message(tc.code))
			}
		})
	}
}

func TestClassifyFallback(t *testing.T) {
	appErr, code, known := Classify(identity.NewError("auth/something-new", "", nil))
	if known || code != "auth/something-new" {
		t.Errorf("unknown code must not be known, got %q %v", code, known)
	}
	if appErr.Code != apperrors.ErrCodeExternalService || appErr.Message != MsgGenericFailure {
		t.Errorf("unexpected fallback %s %q", appErr.Code, appErr.Message)
	}

	appErr, code, known = Classify(errors.New("boom"))
	if known || code != "" || appErr.Message != MsgGenericFailure {
		t.Errorf("plain error should fall back, got %q %q %v", appErr.Message, code, known)
	}
}

func TestClassifyPassesAppErrorThrough(t *testing.T) {
	in := apperrors.Conflict(MsgRequestOTPFirst)
	appErr, code, known := Classify(in)
	if appErr != in || code != "" || !known {
		t.Errorf("expected pass-through, got %+v %q %v", appErr, code, known)
	}
}

func TestClassifyRetryable(t *testing.T) {
	for code, want := range map[string]bool{
		identity.CodeTooManyRequests:      true,
		identity.CodeNetworkRequestFailed: true,
		identity.CodeWrongPassword:        false,
	} {
		appErr, _, _ := Classify(identity.NewError(code, "", nil))
		if appErr.Retryable != want {
			t.Errorf("%s: retryable = %v, want %v", code, appErr.Retryable, want)
		}
	}
}

func TestModeView(t *testing.T) {
	if ModeOTPRequest.View() != "otp_login" || ModeOTPVerify.View() != "otp_login" {
		t.Error("both OTP steps share the otp_login view")
	}
	if ModeSignUp.View() != "sign_up" {
		t.Errorf("unexpected view %q", ModeSignUp.View())
	}
	if Mode("other").Valid() {
		t.Error("unknown mode must not be valid")
	}
}
