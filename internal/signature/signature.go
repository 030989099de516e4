// Package signature implements the electronic signature gate for approvals.
// A verifier checks a reviewer's credential and, on success, produces a proof
// bound to the document fingerprint being approved. Verifiers never touch
// document state.
package signature

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Proof binds a verified reviewer identity to a specific document version.
type Proof struct {
	Reviewer    string    `json:"reviewer"`
	Fingerprint string    `json:"fingerprint"`
	Method      string    `json:"method"`
	SignedAt    time.Time `json:"signed_at"`
	Nonce       uuid.UUID `json:"nonce"`
}

// Verifier authenticates a reviewer credential. Implementations must either
// return a complete proof or an error wrapping ErrAuthentication; there is no
// partial success.
type Verifier interface {
	Verify(ctx context.Context, reviewer, credential, fingerprint string) (*Proof, error)
}

func newProof(reviewer, fingerprint, method string) *Proof {
	return &Proof{
		Reviewer:    reviewer,
		Fingerprint: fingerprint,
		Method:      method,
		SignedAt:    time.Now().UTC(),
		Nonce:       uuid.New(),
	}
}
