package authform

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/kbukum/storefront/auth/oidc"
	"github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/identity"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/observability"
	"github.com/kbukum/storefront/util"
	"github.com/kbukum/storefront/validation"
)

// Operation names, used for spans, metrics and logs.
const (
	OpSignUp            = "sign_up"
	OpSignIn            = "sign_in"
	OpResetPassword     = "reset_password"
	OpRequestOTP        = "request_otp"
	OpSubmitOTP         = "submit_otp"
	OpBeginFederated    = "begin_federated"
	OpCompleteFederated = "complete_federated"
)

// SubmitSignUp creates an account. The form stays on sign-up unless
// RedirectAfterSignUp is set.
func (f *Form) SubmitSignUp(ctx context.Context, in SignUpInput) Outcome {
	return f.run(ctx, submission{
		op:     OpSignUp,
		modes:  []Mode{ModeSignUp},
		input:  &in,
		fields: logger.Fields(logger.FieldEmail, util.MaskEmail(in.Email)),
		keep:   func() { f.email, f.displayName = in.Email, in.Name },
	}, func(ctx context.Context) (Outcome, error) {
		s, err := f.deps.Provider.SignUp(ctx, in.Email, in.Password, in.Name)
		if err != nil {
			return Outcome{}, err
		}
		if f.deps.RedirectAfterSignUp {
			return f.signedIn(s, MsgSignUpSuccess), nil
		}
		return success(MsgSignUpSuccess), nil
	})
}

// SubmitSignIn signs in with email and password. Both are trimmed first.
func (f *Form) SubmitSignIn(ctx context.Context, in SignInInput) Outcome {
	in.Email = strings.TrimSpace(in.Email)
	in.Password = strings.TrimSpace(in.Password)
	return f.run(ctx, submission{
		op:     OpSignIn,
		modes:  []Mode{ModeSignIn},
		input:  &in,
		fields: logger.Fields(logger.FieldEmail, util.MaskEmail(in.Email)),
		keep:   func() { f.email = in.Email },
	}, func(ctx context.Context) (Outcome, error) {
		s, err := f.deps.Provider.SignInWithPassword(ctx, in.Email, in.Password)
		if err != nil {
			return Outcome{}, err
		}
		return f.signedIn(s, MsgSignInSuccess), nil
	})
}

// RequestPasswordReset mails a reset link and returns to sign-in.
func (f *Form) RequestPasswordReset(ctx context.Context, in ResetPasswordInput) Outcome {
	return f.run(ctx, submission{
		op:     OpResetPassword,
		modes:  []Mode{ModeResetPassword},
		input:  &in,
		fields: logger.Fields(logger.FieldEmail, util.MaskEmail(in.Email)),
		keep:   func() { f.email = in.Email },
	}, func(ctx context.Context) (Outcome, error) {
		if err := f.deps.Provider.SendPasswordReset(ctx, in.Email); err != nil {
			return Outcome{}, err
		}
		f.switchTo(ModeSignIn)
		return success(MsgResetEmailSent), nil
	})
}

// RequestOTP texts a one-time code and moves to code verification. The
// returned handle is kept for SubmitOTP. Resending from verification is
// allowed.
func (f *Form) RequestOTP(ctx context.Context, in OTPRequestInput) Outcome {
	return f.run(ctx, submission{
		op:     OpRequestOTP,
		modes:  []Mode{ModeOTPRequest, ModeOTPVerify},
		input:  &in,
		fields: logger.Fields(logger.FieldPhone, util.MaskPhone(in.Phone)),
		keep:   func() { f.phone = in.Phone },
	}, func(ctx context.Context) (Outcome, error) {
		if !f.challengeReady || f.deps.Challenge == nil {
			return Outcome{}, notReady(nil)
		}
		token, err := f.deps.Challenge.Token(ctx)
		if err != nil {
			return Outcome{}, notReady(err)
		}
		pending, err := f.deps.Provider.SendVerificationCode(ctx, in.Phone, token)
		if err != nil {
			return Outcome{}, err
		}
		f.pendingHandle = pending.Handle()
		f.mode = ModeOTPVerify
		return success(MsgOTPSent), nil
	})
}

// SubmitOTP confirms the code against the stored verification. A failed
// confirmation keeps the handle so the visitor can retry.
func (f *Form) SubmitOTP(ctx context.Context, in OTPVerifyInput) Outcome {
	return f.run(ctx, submission{
		op:     OpSubmitOTP,
		modes:  []Mode{ModeOTPRequest, ModeOTPVerify},
		input:  &in,
		fields: logger.Fields(logger.FieldPhone, util.MaskPhone(f.phone)),
	}, func(ctx context.Context) (Outcome, error) {
		if f.pendingHandle == "" {
			return Outcome{}, errors.Conflict(MsgRequestOTPFirst)
		}
		s, err := f.deps.Provider.ResumeVerification(f.pendingHandle).Confirm(ctx, in.Code)
		if err != nil {
			return Outcome{}, err
		}
		f.pendingHandle = ""
		return f.signedIn(s, MsgOTPVerified), nil
	})
}

// BeginFederated starts the authorization-code flow with the named provider
// and returns the consent page as the redirect.
func (f *Form) BeginFederated(ctx context.Context, name string) Outcome {
	return f.run(ctx, submission{
		op:     OpBeginFederated,
		fields: logger.Fields(logger.FieldProvider, name),
	}, func(ctx context.Context) (Outcome, error) {
		p, err := f.federatedProvider(name)
		if err != nil {
			return Outcome{}, err
		}
		state, err := oidc.GenerateState()
		if err != nil {
			return Outcome{}, errors.Internal(err)
		}
		nonce, err := oidc.GenerateNonce()
		if err != nil {
			return Outcome{}, errors.Internal(err)
		}
		pkce, err := oidc.NewPKCE()
		if err != nil {
			return Outcome{}, errors.Internal(err)
		}
		f.federated = &FederatedState{Provider: name, State: state, Nonce: nonce, Verifier: pkce.CodeVerifier}
		return Outcome{Redirect: p.AuthURL(state, oidc.WithNonce(nonce), oidc.WithPKCE(pkce))}, nil
	})
}

// CompleteFederated handles the provider callback. The pending flow is
// consumed whatever the result.
func (f *Form) CompleteFederated(ctx context.Context, name string, query url.Values) Outcome {
	return f.run(ctx, submission{
		op:     OpCompleteFederated,
		fields: logger.Fields(logger.FieldProvider, name),
	}, func(ctx context.Context) (Outcome, error) {
		pending := f.federated
		f.federated = nil

		p, err := f.federatedProvider(name)
		if err != nil {
			return Outcome{}, err
		}
		expected := ""
		if pending != nil && pending.Provider == name {
			expected = pending.State
		}
		cb, err := oidc.ParseCallback(query, expected)
		if err != nil {
			return Outcome{}, federatedError(err)
		}
		tokens, err := p.Exchange(ctx, cb.Code,
			oidc.WithCodeVerifier(pending.Verifier),
			oidc.WithExpectedNonce(pending.Nonce))
		if err != nil {
			return Outcome{}, federatedError(err)
		}
		s, err := f.deps.Provider.SignInWithIdP(ctx, identity.IdPCredential{
			ProviderID: p.ProviderID(),
			IDToken:    tokens.IDToken,
			RequestURI: p.RedirectURL(),
		})
		if err != nil {
			return Outcome{}, err
		}
		return f.signedIn(s, fmt.Sprintf(federatedSuccessFormat, p.DisplayName())), nil
	})
}

func (f *Form) federatedProvider(name string) (oidc.Provider, error) {
	if f.deps.Federated != nil {
		if p, ok := f.deps.Federated.Get(name); ok {
			return p, nil
		}
	}
	return nil, errors.New(errors.ErrCodeFeatureDisabled, MsgFederatedUnavailable, errors.StatusFor(errors.ErrCodeFeatureDisabled)).
		WithDetail(logger.FieldProvider, name)
}

// federatedError gives consent and token failures a provider code: an
// abandoned consent is a cancellation and transport failures are network
// errors. Everything else, including a state mismatch, is a failed sign-in.
func federatedError(err error) error {
	switch {
	case oidc.IsAccessDenied(err):
		return identity.NewError(identity.CodePopupClosedByUser, "consent abandoned", err)
	case httpclient.IsTimeout(err), httpclient.IsConnection(err):
		return identity.NewError(identity.CodeNetworkRequestFailed, "", err)
	}
	return err
}

func notReady(cause error) *errors.AppError {
	e := errors.New(errors.ErrCodeServiceUnavailable, MsgVerificationReady, errors.StatusFor(errors.ErrCodeServiceUnavailable))
	if cause != nil {
		e = e.WithCause(cause)
	}
	return e
}

func (f *Form) signedIn(s *identity.Session, msg string) Outcome {
	o := success(msg)
	o.Session = s
	o.Redirect = f.deps.HomeRoute
	return o
}

// submission describes one operation for run.
type submission struct {
	op string
	// modes the operation may be submitted from; nil accepts any mode.
	modes  []Mode
	input  any
	fields map[string]any
	// keep copies the non-secret input onto the form.
	keep func()
}

// run claims the form, checks the submission belongs to the active mode and
// validates input before performing call. Nothing touches the form before
// the claim, and only call changes the mode, so a failure leaves the form
// where it was.
func (f *Form) run(ctx context.Context, sub submission, call func(context.Context) (Outcome, error)) Outcome {
	op := sub.op
	ctx, tracked := observability.StartOperation(ctx, f.deps.Metrics, op)
	fields := sub.fields
	fields[logger.FieldOperation] = op
	fields[logger.FieldMode] = f.mode.String()
	log := f.log.WithContext(ctx).WithFields(fields)

	if !f.busy.CompareAndSwap(false, true) {
		err := errors.Conflict(MsgRequestInProgress)
		log.Warn("submission rejected, request in progress")
		tracked.End(ctx, observability.OutcomeRejected, "", err)
		return failure(err, "")
	}
	defer f.busy.Store(false)

	if sub.modes != nil && !slices.Contains(sub.modes, f.mode) {
		err := errors.Conflict(MsgFormChanged).WithDetail(logger.FieldMode, f.mode.String())
		log.Warn("submission rejected, form not active")
		tracked.End(ctx, observability.OutcomeRejected, "", err)
		return failure(err, "")
	}
	if sub.keep != nil {
		sub.keep()
	}

	if sub.input != nil {
		if err := validation.Validate(sub.input); err != nil {
			appErr := errors.Validation(validation.FirstMessage(err)).WithCause(err)
			log.Debug("submission invalid", logger.Fields("reason", appErr.Message))
			tracked.End(ctx, observability.OutcomeInvalid, "", appErr)
			return failure(appErr, "")
		}
	}

	out, err := call(ctx)
	if err == nil {
		log.Info("operation succeeded")
		tracked.End(ctx, observability.OutcomeSuccess, "", nil)
		return out
	}

	appErr, code, known := Classify(err)
	log = log.WithFields(logger.Fields(
		logger.FieldProviderCode, code,
		logger.FieldErrorCode, string(appErr.Code),
	))
	result := observability.OutcomeFailure
	switch {
	case appErr.Code == errors.ErrCodeCancelled:
		result = observability.OutcomeCancelled
		log.Info("operation cancelled by user")
	case !known:
		log.Error("operation failed", logger.ErrorFields(op, err))
	default:
		log.Warn("operation failed", logger.ErrorFields(op, err))
	}
	tracked.End(ctx, result, code, err)
	return failure(appErr, code)
}
