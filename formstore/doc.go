// Package formstore keeps each visitor's account form between requests.
//
// A form is addressed by a random form id carried in a cookie. Snapshots
// expire after a TTL of inactivity and are deleted once a sign-in completes.
// Lock claims a form for the duration of one request so two concurrent
// submissions for the same visitor cannot both reach the identity provider.
//
// Two backends exist: Memory (default, single instance) and Redis (shared
// between instances).
package formstore
