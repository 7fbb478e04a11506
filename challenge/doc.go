// Package challenge provides the bot challenge guarding phone verification.
//
// The storefront uses an invisible reCAPTCHA widget: the browser solves it
// and posts the response in the g-recaptcha-response field, the web layer
// attaches it to the request context with WithResponse, and Recaptcha.Token
// hands it to the identity provider, which verifies it.
package challenge
