package evidence

import (
	"errors"
	"net/http"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")

	// ErrNoStandard indicates that no APPROVED master standard exists for a
	// product and document type pair. Callers must surface the absence rather
	// than treat it as a pass.
	ErrNoStandard = errors.New("no approved master standard")
)

// MapHTTPStatus maps evidence errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrNoStandard):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
