package review

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jmallard/countersign/pkg/handlers"
	"github.com/jmallard/countersign/pkg/pagination"
	"github.com/jmallard/countersign/pkg/routes"
)

// Handler exposes the review pipeline over HTTP.
type Handler struct {
	system     System
	logger     *slog.Logger
	pagination pagination.Config
}

func NewHandler(system System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		system:     system,
		logger:     logger,
		pagination: pagination,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/review",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "/queue", Handler: h.Queue},
			{Method: http.MethodGet, Pattern: "/{id}/summary", Handler: h.Summary},
			{Method: http.MethodPost, Pattern: "/{id}/approve", Handler: h.Approve},
			{Method: http.MethodPost, Pattern: "/{id}/reject", Handler: h.Reject},
			{Method: http.MethodGet, Pattern: "/{id}/trail", Handler: h.Trail},
		},
	}
}

func (h *Handler) Queue(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.system.Queue(r.Context(), page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	id, ok := h.documentID(w, r)
	if !ok {
		return
	}

	summary, err := h.system.Summary(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := h.documentID(w, r)
	if !ok {
		return
	}

	var cmd ApproveCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	cmd.DocumentID = id

	decision, err := h.system.Approve(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, decision)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.documentID(w, r)
	if !ok {
		return
	}

	var cmd RejectCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	cmd.DocumentID = id

	decision, err := h.system.Reject(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, decision)
}

func (h *Handler) Trail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.documentID(w, r)
	if !ok {
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	trail, err := h.system.Trail(r.Context(), id, page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, trail)
}

func (h *Handler) documentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("invalid document id"))
		return uuid.Nil, false
	}
	return id, true
}
