// Package api assembles the API module with all domain systems and route
// registration.
package api

import (
	"net/http"

	"github.com/jmallard/countersign/internal/config"
	"github.com/jmallard/countersign/internal/infrastructure"
	"github.com/jmallard/countersign/pkg/middleware"
	"github.com/jmallard/countersign/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(cfg, runtime)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
