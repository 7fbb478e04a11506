// Package redis wraps go-redis for the storefront: a pooled client with
// structured logging, a lifecycle component with health checks, and a
// TypedStore that keeps JSON values under a key prefix with a TTL.
//
// It backs the shared form store when the service runs with more than one
// replica.
package redis
