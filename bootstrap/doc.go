// Package bootstrap runs a service: it validates the typed config, starts
// registered components in order, runs configure callbacks and hooks, then
// blocks until a shutdown signal and stops everything in reverse.
package bootstrap
