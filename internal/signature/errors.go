package signature

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrAuthentication is the sentinel for every verification failure. Specific
// reasons wrap it so callers can test with errors.Is without branching on the
// cause.
var ErrAuthentication = errors.New("authentication failed")

var (
	ErrEmptyCredential = fmt.Errorf("%w: empty credential", ErrAuthentication)
	ErrUnknownReviewer = fmt.Errorf("%w: unknown reviewer", ErrAuthentication)
	ErrBadCredential   = fmt.Errorf("%w: credential mismatch", ErrAuthentication)
)

// MapHTTPStatus maps signature errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrAuthentication) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
