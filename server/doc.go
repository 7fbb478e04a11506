// Package server provides the storefront's HTTP server: a Gin engine on an
// http.ServeMux, wrapped with server-level middleware and served over
// HTTP/1.1 and h2c.
//
// Middleware (server/middleware): Recovery, RequestID, RequestLogger,
// BodySizeLimit, and the per-route RateLimit for credential submissions.
//
// Endpoints (server/endpoint): /health, /ready, /info.
package server
