// Package httpclient is the outbound HTTP client used for every call the
// storefront makes to an external service: the identity provider's REST API
// and OAuth token endpoints.
//
// The Client joins request paths onto a base URL, applies default headers,
// authentication and TLS, encodes bodies (JSON for structs, form encoding for
// url.Values) and classifies non-2xx responses into *Error values that keep
// the raw body so callers can decode provider-specific error payloads.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://identitytoolkit.googleapis.com/v1",
//	    Timeout: 10 * time.Second,
//	    Auth:    httpclient.APIKeyAuthQuery(apiKey, "key"),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "accounts:signUp",
//	    Body:   payload,
//	})
//
// Requests are never retried: credential operations are not idempotent from
// the user's point of view.
package httpclient
