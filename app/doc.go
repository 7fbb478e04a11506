// Package app wires the storefront account service: configuration,
// infrastructure components, the identity provider and the web surface.
package app
