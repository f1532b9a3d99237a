// Package apperr carries the error kinds shared by the stores, the generation
// proxy and the HTTP layer.
//
// Errors are built with github.com/cockroachdb/errors so that a kind survives
// wrapping:
//
//	return apperr.Wrapf(apperr.ErrNotFound, "prompt %d", id)
//
//	if apperr.Is(err, apperr.ErrNotFound) { ... }
//
// Status maps a kind to the HTTP status the API answers with.
package apperr

import (
	"net/http"

	crdb "github.com/cockroachdb/errors"
)

var (
	New   = crdb.New
	Newf  = crdb.Newf
	Wrap  = crdb.Wrap
	Wrapf = crdb.Wrapf
	Mark  = crdb.Mark
	Is    = crdb.Is
	As    = crdb.As
)

var (
	ErrValidation   = crdb.New("validation failed")
	ErrNotFound     = crdb.New("not found")
	ErrConflict     = crdb.New("conflict")
	ErrUnauthorized = crdb.New("unauthorized")
	// ErrUpstream is absorbed by the generation proxy and never reaches a handler.
	ErrUpstream = crdb.New("upstream failure")
)

// Validation returns an ErrValidation carrying msg as its message.
func Validation(msg string) error {
	return crdb.Mark(crdb.New(msg), ErrValidation)
}

// NotFound returns an ErrNotFound carrying msg as its message.
func NotFound(msg string) error {
	return crdb.Mark(crdb.New(msg), ErrNotFound)
}

// Conflict returns an ErrConflict carrying msg as its message.
func Conflict(msg string) error {
	return crdb.Mark(crdb.New(msg), ErrConflict)
}

// Unauthorized returns an ErrUnauthorized carrying msg as its message.
func Unauthorized(msg string) error {
	return crdb.Mark(crdb.New(msg), ErrUnauthorized)
}

// Status returns the HTTP status code for err.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case crdb.Is(err, ErrValidation):
		return http.StatusBadRequest
	case crdb.Is(err, ErrNotFound):
		return http.StatusNotFound
	case crdb.Is(err, ErrConflict):
		return http.StatusConflict
	case crdb.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case crdb.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
