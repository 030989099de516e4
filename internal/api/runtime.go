package api

import (
	"github.com/jmallard/countersign/internal/config"
	"github.com/jmallard/countersign/internal/infrastructure"
	"github.com/jmallard/countersign/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Anchorer:  infra.Anchorer,
			Locks:     infra.Locks,
		},
		Pagination: cfg.API.Pagination,
	}
}
