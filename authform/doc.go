// Package authform is the account form controller of the storefront.
//
// A Form is one visitor's account form. It is always in exactly one Mode:
// sign-up, sign-in (initial), reset-password, or one of the two OTP-login
// sub-states (request a code, then verify it). Mode transitions are always
// allowed and never terminal; the email typed so far survives every
// transition and the password is never stored.
//
// Submissions are validated locally first (a failing submission never
// reaches the identity provider), then delegated to identity.Provider. Every
// provider failure is translated through a single lookup table into an
// errors.AppError and a user-facing message; the form stays in its current
// mode and remains usable. Only one credential operation may be in flight
// per form at a time.
//
// Forms live across HTTP requests as a Snapshot (see formstore); Restore
// rebuilds a Form from one.
package authform
