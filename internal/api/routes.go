package api

import (
	"net/http"

	"github.com/jmallard/countersign/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Documents.Handler().Routes(),
		domain.Evidence.Handler().Routes(),
		domain.Review.Handler().Routes(),
	)
}
