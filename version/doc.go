// Package version reports build information for /info and the startup log.
//
//	go build -ldflags "-X github.com/kbukum/storefront/version.Version=1.4.0"
package version
