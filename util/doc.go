// Package util holds small helpers shared across packages: size parsing
// for configuration and masking of personal data before it reaches logs.
package util
