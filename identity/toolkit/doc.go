// Package toolkit implements identity.Provider on top of the Google Identity
// Toolkit REST API (the API behind Firebase Authentication).
//
// Every call is a JSON POST to {base_url}/accounts:{method}?key={api_key}.
// Error responses carry an upper-case reason such as EMAIL_EXISTS or
// "WEAK_PASSWORD : Password should be at least 6 characters"; they are
// translated to identity "auth/..." codes. Transport failures become
// auth/network-request-failed. Requests are not retried.
package toolkit
