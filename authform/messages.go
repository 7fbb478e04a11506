package authform

// Validation messages.
const (
	MsgFillAllFields     = "Please fill in all fields!"
	MsgEnterValidEmail   = "Please enter the valid Email Id!"
	MsgEnterValidPass    = "Please enter the valid Password!"
	MsgEnterEmail        = "Please enter your email!"
	MsgEnterPhone        = "Please enter your phone number!"
	MsgEnterOTP          = "Please enter the OTP!"
	MsgVerificationReady = "Verification is not ready. Please try again."
	MsgRequestOTPFirst   = "Please request an OTP first."
	MsgRequestInProgress = "A request is already in progress."
	MsgFormChanged       = "This form is no longer open. Please try again."

	MsgFederatedUnavailable = "This sign-in method is not available."
)

// Success messages.
const (
	MsgSignUpSuccess       = "Sign Up successful!"
	MsgSignInSuccess       = "Sign In successful!"
	MsgResetEmailSent      = "Password reset email sent!"
	MsgOTPSent             = "OTP sent to your phone!"
	MsgOTPVerified         = "OTP verified! Sign In successful!"
	federatedSuccessFormat = "%s Sign In successful!"
)
