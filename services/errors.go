// Package services holds the business operations behind each route. Every
// external client is injected through the constructors.
package services

import (
	"errors"

	"food-ordering-api/apperr"
	"food-ordering-api/store"
)

// lookupError maps a store lookup failure to NotFound with msg, or to an
// internal error.
func lookupError(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(msg)
	}
	return apperr.Internal("", err)
}
