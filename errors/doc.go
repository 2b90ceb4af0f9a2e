// Package errors provides the structured error type returned by the
// container. Every failure carries a machine-readable code, a human-readable
// message and optional details, and matches a code sentinel with errors.Is.
package errors
