// Package faults holds the failure kinds shared by every mutating service.
// Handlers and callers distinguish outcomes with errors.Is against these
// sentinels; services add context with xerrors wrapping.
package faults

import (
	"errors"
	"net/http"
)

var (
	ErrPermissionDenied     = errors.New("permission denied")
	ErrInvalidTransition    = errors.New("operation not allowed in current event status")
	ErrCapacityExceeded     = errors.New("team capacity exceeded")
	ErrCapacityMismatch     = errors.New("team count does not match event configuration")
	ErrAlreadyAssigned      = errors.New("participant already assigned")
	ErrNoPlayersAvailable   = errors.New("no players available for draft")
	ErrDraftNotActive       = errors.New("draft is not active")
	ErrNotYourTurn          = errors.New("not this team's turn")
	ErrPlayerUnavailable    = errors.New("player is not available")
	ErrTurnConflict         = errors.New("lost the race for this turn")
	ErrReferentialIntegrity = errors.New("referenced record is missing")
	ErrValidation           = errors.New("validation failed")
	ErrNoChanges            = errors.New("no changes to commit")
)

// HTTPStatus maps a failure kind to the status code the handlers return.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrReferentialIntegrity):
		return http.StatusNotFound
	case errors.Is(err, ErrTurnConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, ErrCapacityMismatch),
		errors.Is(err, ErrAlreadyAssigned),
		errors.Is(err, ErrNoPlayersAvailable),
		errors.Is(err, ErrDraftNotActive),
		errors.Is(err, ErrNotYourTurn),
		errors.Is(err, ErrPlayerUnavailable):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoChanges):
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
