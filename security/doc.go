// Package security holds the TLS settings for the storefront's outbound
// transports (the identity provider client and the Redis connection).
//
//	cfg := security.TLSConfig{CAFile: "/etc/ssl/private-ca.pem", MinVersion: "1.3"}
//	tlsConfig, err := cfg.Build()
package security
