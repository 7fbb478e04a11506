// Package validation validates form inputs and configuration.
//
// Struct tag validation uses go-playground/validator. A `message` tag on a
// field replaces the generated text, which lets forms report exactly the
// notice their users should see:
//
//	type resetInput struct {
//	    Email string `form:"email" validate:"required" message:"Please enter your email!"`
//	}
//	if err := validation.Validate(in); err != nil {
//	    notice := validation.FirstMessage(err)
//	}
//
// Rules validates configuration sections, reporting every violation at once
// and nesting sub-sections under a field prefix.
package validation
