package signature

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier checks credentials against bcrypt hashes in the reviewers
// table.
type PasswordVerifier struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewPasswordVerifier(db *sql.DB, logger *slog.Logger) *PasswordVerifier {
	return &PasswordVerifier{
		db:     db,
		logger: logger.With("system", "signature"),
	}
}

func (v *PasswordVerifier) Verify(ctx context.Context, reviewer, credential, fingerprint string) (*Proof, error) {
	if credential == "" {
		return nil, ErrEmptyCredential
	}

	var hash string
	err := v.db.QueryRowContext(ctx,
		"SELECT credential_hash FROM reviewers WHERE identity = $1 AND active",
		reviewer,
	).Scan(&hash)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrUnknownReviewer
	case err != nil:
		return nil, fmt.Errorf("query reviewer: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(credential)); err != nil {
		v.logger.Warn("credential mismatch", "reviewer", reviewer)
		return nil, ErrBadCredential
	}

	return newProof(reviewer, fingerprint, "password"), nil
}
