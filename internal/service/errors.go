// Package service implements the application use cases on top of the
// storage layer: registration and login, the month dashboard, meal
// sheet editing with manager-window checks, the money ledger, member
// management, manager assignments and mess settings.
package service

import "errors"

var (
	// ErrPermissionDenied is returned when the acting user lacks the
	// role required for an operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNoMess is returned when the acting user has no mess membership.
	ErrNoMess = errors.New("no mess associated with this account")

	// ErrDateNotAllowed is returned when a meal manager tries to edit a
	// date outside their assigned window.
	ErrDateNotAllowed = errors.New("no manager assignment covers this date")

	// ErrInvalidInput is returned for requests that fail domain
	// validation (bad month, reversed date range, unknown member, ...).
	ErrInvalidInput = errors.New("invalid input")
)
