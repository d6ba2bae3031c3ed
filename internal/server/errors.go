package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/pilotfinder/internal/onboarding"
)

// HTTPStatus returns the appropriate HTTP status code for a service error
func HTTPStatus(err error) int {
	var verr *onboarding.ErrValidation
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	var nferr *onboarding.ErrSessionNotFound
	if errors.As(err, &nferr) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
