package siteconfig

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sundayezeilo/websitio/internal/errx"
	"github.com/sundayezeilo/websitio/internal/httpx"
)

// ResolveResponse is the body served for a canonical client address.
type ResolveResponse struct {
	ClientURL string        `json:"clientUrl"`
	Config    WebsiteConfig `json:"config"`
}

// Handler provides HTTP handlers for website configs and client addresses.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// HandlerConfig holds configuration for the handler.
type HandlerConfig struct {
	Service Service
	Logger  *slog.Logger
}

// NewHandler creates a new Handler instance.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		service: cfg.Service,
		logger:  logger,
	}
}

func (h *Handler) requestLogger(r *http.Request) *slog.Logger {
	return h.logger.With(
		"request_id", httpx.GetRequestID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
	)
}

// GetDefault handles GET /api/config. The homepage config is created on first use.
func (h *Handler) GetDefault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	cfg, err := h.service.Default(ctx)
	if err != nil {
		h.handleError(ctx, logger, w, err, "Unable to load the website config right now")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cfg)
}

// CreateConfig handles POST /api/config.
func (h *Handler) CreateConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	in, err := httpx.DecodeJSON[Input](r)
	if err != nil {
		logger.WarnContext(ctx, "failed to decode request", "error", err.Error())
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}

	cfg, err := h.service.Create(ctx, in)
	if err != nil {
		h.handleError(ctx, logger, w, err, "Unable to create the website config right now")
		return
	}

	logger.InfoContext(ctx, "config created",
		"config_id", cfg.ID,
		"name", cfg.Name,
		"template_type", cfg.TemplateType,
	)
	httpx.WriteJSON(w, http.StatusCreated, cfg)
}

// GetConfig handles GET /api/config/{id}.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	id, err := httpx.PathID(r, "id")
	if err != nil {
		h.handleError(ctx, logger, w, err, "")
		return
	}

	cfg, err := h.service.Get(ctx, id)
	if err != nil {
		h.handleError(ctx, logger, w, err, "Unable to load the website config right now")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cfg)
}

// UpdateConfig handles PUT /api/config/{id}. Editors post the whole document
// back, so read-only fields such as id and createdAt are tolerated and ignored.
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	id, err := httpx.PathID(r, "id")
	if err != nil {
		h.handleError(ctx, logger, w, err, "")
		return
	}

	in, err := httpx.DecodeJSON[Input](r, httpx.AllowUnknownFields())
	if err != nil {
		logger.WarnContext(ctx, "failed to decode request", "error", err.Error())
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}

	cfg, err := h.service.Update(ctx, id, in)
	if err != nil {
		h.handleError(ctx, logger, w, err, "Unable to save the website config right now")
		return
	}

	logger.InfoContext(ctx, "config updated", "config_id", cfg.ID)
	httpx.WriteJSON(w, http.StatusOK, cfg)
}

// DeleteConfig handles DELETE /api/config/{id}.
func (h *Handler) DeleteConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	id, err := httpx.PathID(r, "id")
	if err != nil {
		h.handleError(ctx, logger, w, err, "")
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.handleError(ctx, logger, w, err, "Unable to delete the website config right now")
		return
	}

	logger.InfoContext(ctx, "config deleted", "config_id", id)
	httpx.WriteNoContent(w)
}

// ListClients handles GET /api/clients.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	clients, err := h.service.ListClients(ctx)
	if err != nil {
		h.handleError(ctx, logger, w, err, "Unable to list clients right now")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clients)
}

// GetClientURL handles GET /api/client-url/{clientId}.
func (h *Handler) GetClientURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	id, err := httpx.PathID(r, "clientId")
	if err != nil {
		logger.WarnContext(ctx, "invalid client id", "client_id", r.PathValue("clientId"))
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", MsgInvalidClientID, nil)
		return
	}

	u, err := h.service.ClientURL(ctx, id)
	if err != nil {
		h.handleError(ctx, logger, w, err, "Failed to generate client URL")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

// ValidateClientURL handles GET /api/validate-client-url/{urlSlug}. An
// unknown or malformed slug is still a 200 with valid=false.
func (h *Handler) ValidateClientURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	result, err := h.service.ValidateSlug(ctx, r.PathValue("urlSlug"))
	if err != nil {
		h.handleError(ctx, logger, w, err, "Failed to validate client URL")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}

// ResolveClient handles GET /{slug}: serves the config behind a canonical
// client address and redirects stale addresses to the canonical one.
func (h *Handler) ResolveClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	slug := r.PathValue("slug")
	res, err := h.service.ResolveSlug(ctx, slug)
	if err != nil {
		if errx.Is(err, errx.NotFound) {
			logger.DebugContext(ctx, "no client at path", "slug", slug)
			httpx.WriteError(w, http.StatusNotFound, "not_found", "page not found", nil)
			return
		}
		h.handleError(ctx, logger, w, err, "Unable to load this site right now")
		return
	}

	if res.Redirect {
		logger.InfoContext(ctx, "redirecting to canonical client url",
			"slug", slug,
			"canonical", res.Canonical,
		)
		httpx.RedirectPermanent(w, r, "/"+res.Canonical)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ResolveResponse{
		ClientURL: res.Canonical,
		Config:    res.Config,
	})
}

// handleError logs err at a level matching its kind and writes the mapped response.
func (h *Handler) handleError(ctx context.Context, logger *slog.Logger, w http.ResponseWriter, err error, fallback string) {
	kind := errx.KindOf(err)

	logAttrs := []any{
		"error", err.Error(),
		"error_kind", kind,
		"operation", errx.OpOf(err),
		"op_trail", errx.Ops(err),
	}

	switch kind {
	case errx.NotFound, errx.Invalid, errx.Conflict, errx.Forbidden:
		logger.WarnContext(ctx, "request rejected", logAttrs...)
	case errx.Unavailable:
		logger.ErrorContext(ctx, "backend unavailable", logAttrs...)
	default:
		logger.ErrorContext(ctx, "unexpected error", logAttrs...)
	}

	if fallback == "" {
		fallback = "Internal server error"
	}
	httpx.WriteKindError(w, err, fallback)
}
