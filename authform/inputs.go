package authform

// SignUpInput is the sign-up submission. Name is optional.
type SignUpInput struct {
	Name     string `form:"name"`
	Email    string `form:"email" validate:"required" message:"Please fill in all fields!"`
	Password string `form:"password" validate:"required" message:"Please fill in all fields!"`
}

// SignInInput is the sign-in submission. Both fields are trimmed before
// validation.
type SignInInput struct {
	Email    string `form:"email" validate:"required" message:"Please enter the valid Email Id!"`
	Password string `form:"password" validate:"required" message:"Please enter the valid Password!"`
}

// ResetPasswordInput is the password-reset submission.
type ResetPasswordInput struct {
	Email string `form:"email" validate:"required" message:"Please enter your email!"`
}

// OTPRequestInput asks for a one-time code to be sent to Phone.
type OTPRequestInput struct {
	Phone string `form:"phone" validate:"required" message:"Please enter your phone number!"`
}

// OTPVerifyInput confirms the code received by SMS.
type OTPVerifyInput struct {
	Code string `form:"otp" validate:"required" message:"Please enter the OTP!"`
}
