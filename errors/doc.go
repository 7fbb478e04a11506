// Package errors provides the storefront's structured error type.
//
// Every failure that reaches a user is an AppError: a machine-readable code,
// the message to show, an HTTP status hint and an optional cause for logs.
// Provider-specific codes (auth/...) are classified into these codes by the
// account form before they are rendered.
package errors
