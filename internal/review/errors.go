package review

import (
	"errors"
	"net/http"

	"github.com/jmallard/countersign/internal/documents"
	"github.com/jmallard/countersign/internal/ledger"
	"github.com/jmallard/countersign/internal/signature"
)

var (
	ErrValidation = errors.New("invalid decision request")

	// ErrMissingJustification rejects a rejection without a stated reason.
	// Every negative decision must carry a documented justification.
	ErrMissingJustification = errors.New("rejection requires comments")

	// ErrDecisionInFlight reports that another decision for the same document
	// is already in progress.
	ErrDecisionInFlight = errors.New("a decision for this document is already in flight")
)

// MapHTTPStatus maps pipeline errors, including collaborator errors, to HTTP
// status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrMissingJustification):
		return http.StatusBadRequest
	case errors.Is(err, signature.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, documents.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, documents.ErrInvalidTransition),
		errors.Is(err, ErrDecisionInFlight):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrTransient):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
