package signature

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coreos/go-oidc/v3/oidc"
)

// OIDCVerifier validates a reviewer's credential as an OIDC ID token. The
// token subject must match the claimed reviewer identity.
type OIDCVerifier struct {
	cfg      OIDCConfig
	logger   *slog.Logger
	verifier *oidc.IDTokenVerifier
}

func NewOIDCVerifier(cfg OIDCConfig, logger *slog.Logger) *OIDCVerifier {
	return &OIDCVerifier{
		cfg:    cfg,
		logger: logger.With("system", "signature"),
	}
}

// Start resolves the provider's discovery document. Must be called before
// Verify.
func (v *OIDCVerifier) Start(ctx context.Context) error {
	provider, err := oidc.NewProvider(ctx, v.cfg.IssuerURL)
	if err != nil {
		return fmt.Errorf("resolve oidc provider: %w", err)
	}

	v.verifier = provider.Verifier(&oidc.Config{ClientID: v.cfg.ClientID})
	v.logger.Info("oidc provider resolved", "issuer", v.cfg.IssuerURL)
	return nil
}

func (v *OIDCVerifier) Verify(ctx context.Context, reviewer, credential, fingerprint string) (*Proof, error) {
	if credential == "" {
		return nil, ErrEmptyCredential
	}
	if v.verifier == nil {
		return nil, fmt.Errorf("oidc verifier not started")
	}

	token, err := v.verifier.Verify(ctx, credential)
	if err != nil {
		v.logger.Warn("id token rejected", "reviewer", reviewer, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrBadCredential, err)
	}

	if token.Subject != reviewer {
		return nil, fmt.Errorf("%w: token subject does not match reviewer", ErrAuthentication)
	}

	return newProof(reviewer, fingerprint, "oidc"), nil
}
