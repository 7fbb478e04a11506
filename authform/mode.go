package authform

// Mode is the active form. Exactly one mode is active at a time.
type Mode string

const (
	ModeSignUp        Mode = "sign_up"
	ModeSignIn        Mode = "sign_in"
	ModeResetPassword Mode = "reset_password"
	// ModeOTPRequest and ModeOTPVerify are the two steps of OTP login.
	ModeOTPRequest Mode = "otp_request"
	ModeOTPVerify  Mode = "otp_verify"
)

// InitialMode is the mode of a fresh form.
const InitialMode = ModeSignIn

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeSignUp, ModeSignIn, ModeResetPassword, ModeOTPRequest, ModeOTPVerify:
		return true
	}
	return false
}

// IsOTP reports whether m is one of the OTP-login steps.
func (m Mode) IsOTP() bool {
	return m == ModeOTPRequest || m == ModeOTPVerify
}

// View is the user-visible form for m: OTP login shows one form for both
// of its steps.
func (m Mode) View() string {
	if m.IsOTP() {
		return "otp_login"
	}
	return string(m)
}

func (m Mode) String() string { return string(m) }
