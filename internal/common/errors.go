// Package common defines the sentinel errors shared across repository and
// service layers. Callers match them with errors.Is.
package common

import "errors"

var (
	// ErrNotFound is returned by repositories when a lookup or delete
	// targets a record that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks user-input errors the presentation layer should
	// display; they are never retried internally.
	ErrValidation = errors.New("missing or invalid field")

	// ErrInvalidCredentials is returned by the authentication lookup when no
	// roster entry matches the supplied username and secret.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
