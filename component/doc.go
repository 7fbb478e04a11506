// Package component defines lifecycle-managed infrastructure (the HTTP
// server, the Redis connection) and a registry that starts and stops it in
// a deterministic order.
package component
