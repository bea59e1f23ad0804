package controllers

import "errors"

var (
	// ErrAuthRequired is returned when a session-only operation runs anonymously
	ErrAuthRequired = errors.New("authentication required")
	// ErrPasswordMismatch is returned when signup passwords differ
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrNoMorePages is returned by LoadMore on the last page
	ErrNoMorePages = errors.New("no more pages")
	// ErrNoModal is returned when a modal operation runs with no overlay open
	ErrNoModal = errors.New("no title is open")
)
