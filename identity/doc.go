// Package identity is the boundary between the storefront and the external
// identity provider that owns every account.
//
// The storefront never stores credentials. Provider is the capability set the
// account form needs (email/password, federated and phone sign-in plus
// password-reset mail); failures carry a provider code in the "auth/..."
// namespace so the form can map them to user-facing messages.
package identity
