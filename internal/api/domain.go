package api

import (
	"fmt"

	"github.com/jmallard/countersign/internal/audit"
	"github.com/jmallard/countersign/internal/config"
	"github.com/jmallard/countersign/internal/documents"
	"github.com/jmallard/countersign/internal/evidence"
	"github.com/jmallard/countersign/internal/review"
	"github.com/jmallard/countersign/internal/signature"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Documents documents.System
	Evidence  evidence.System
	Audit     audit.System
	Review    review.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) (*Domain, error) {
	db := runtime.Database.Connection()

	docsSystem := documents.New(db, runtime.Logger, runtime.Pagination)
	evidenceSystem := evidence.New(db, runtime.Logger)

	auditSystem := audit.New(db, runtime.Logger, runtime.Pagination)
	auditSystem.Start(runtime.Lifecycle)
	watchAuditFailures(runtime, auditSystem)

	verifier, err := newVerifier(cfg, runtime)
	if err != nil {
		return nil, err
	}

	reviewSystem := review.New(
		docsSystem,
		evidenceSystem,
		runtime.Storage,
		verifier,
		runtime.Anchorer,
		auditSystem,
		runtime.Locks,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Documents: docsSystem,
		Evidence:  evidenceSystem,
		Audit:     auditSystem,
		Review:    reviewSystem,
	}, nil
}

func newVerifier(cfg *config.Config, runtime *Runtime) (signature.Verifier, error) {
	switch cfg.Signature.Method {
	case signature.MethodPassword:
		return signature.NewPasswordVerifier(runtime.Database.Connection(), runtime.Logger), nil
	case signature.MethodOIDC:
		verifier := signature.NewOIDCVerifier(cfg.Signature.OIDC, runtime.Logger)
		runtime.Lifecycle.OnStartup(func() error {
			return verifier.Start(runtime.Lifecycle.Context())
		})
		return verifier, nil
	default:
		return nil, fmt.Errorf("unknown signature method: %s", cfg.Signature.Method)
	}
}

// watchAuditFailures drains the operator failure channel into the service log
// so failed audit deliveries are never silent.
func watchAuditFailures(runtime *Runtime, system audit.System) {
	logger := runtime.Logger.With("system", "audit-failures")

	runtime.Lifecycle.OnStartup(func() error {
		go func() {
			for failure := range system.Failures() {
				logger.Error("audit entry undelivered",
					"action", failure.Entry.Action,
					"entity_id", failure.Entry.EntityID,
					"actor", failure.Entry.Actor,
					"error", failure.Err,
				)
			}
		}()
		return nil
	})
}
