package authform

import (
	"github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/identity"
)

// NoticeKind is the kind of user-visible notification.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a user-visible notification.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
	// Code is the provider code behind an error notice, if any.
	Code string `json:"code,omitempty"`
}

// Outcome is the result of a form operation.
type Outcome struct {
	Notice *Notice
	// Redirect is where the browser goes next: the home route after a
	// successful sign-in, or the consent page when federated sign-in begins.
	Redirect string
	// Session is set when the visitor is now signed in.
	Session *identity.Session
	Err     *errors.AppError
}

func success(msg string) Outcome {
	return Outcome{Notice: &Notice{Kind: NoticeSuccess, Message: msg}}
}

func failure(err *errors.AppError, code string) Outcome {
	return Outcome{Notice: &Notice{Kind: NoticeError, Message: err.Message, Code: code}, Err: err}
}
