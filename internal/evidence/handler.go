package evidence

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jmallard/countersign/pkg/handlers"
	"github.com/jmallard/countersign/pkg/routes"
)

// Handler exposes the read-only evidence surface over HTTP.
type Handler struct {
	system System
	logger *slog.Logger
}

func NewHandler(system System, logger *slog.Logger) *Handler {
	return &Handler{
		system: system,
		logger: logger,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/evidence",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "/orders/{id}", Handler: h.FindOrder},
			{Method: http.MethodGet, Pattern: "/products/{id}", Handler: h.FindProduct},
			{Method: http.MethodGet, Pattern: "/standards", Handler: h.ListStandards},
		},
	}
}

func (h *Handler) FindOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("missing order id"))
		return
	}

	order, err := h.system.FindOrder(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, order)
}

func (h *Handler) FindProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("missing product id"))
		return
	}

	product, err := h.system.FindProduct(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, product)
}

func (h *Handler) ListStandards(w http.ResponseWriter, r *http.Request) {
	standards, err := h.system.ListStandards(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, standards)
}
