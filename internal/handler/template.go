package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aisboost/aisboost/internal/auth"
	"github.com/aisboost/aisboost/internal/handler/dto"
	"github.com/aisboost/aisboost/internal/service"
)

// TemplateHandler handles HTTP requests for template operations.
type TemplateHandler struct {
	svc    *service.TemplateService
	logger *slog.Logger
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(svc *service.TemplateService, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /v1/templates/{applicationId}.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	templates, err := h.svc.List(r.Context(), user.ID, chi.URLParam(r, "applicationId"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTemplateList(templates))
}

// Create handles POST /v1/templates/{applicationId}.
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.TemplateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tpl, err := h.svc.Create(r.Context(), user.ID, chi.URLParam(r, "applicationId"), req.ToInput())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("template_created",
		"template_id", tpl.ID,
		"application_id", tpl.ApplicationID,
		"type", tpl.Type.String(),
	)

	writeJSON(w, http.StatusCreated, dto.ToTemplateResponse(tpl))
}

// Get handles GET /v1/templates/{applicationId}/{id}.
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	tpl, err := h.svc.Get(r.Context(), user.ID, chi.URLParam(r, "applicationId"), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTemplateResponse(tpl))
}

// Update handles PATCH /v1/templates/{applicationId}/{id}.
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.TemplateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tpl, err := h.svc.Update(r.Context(), user.ID, chi.URLParam(r, "applicationId"), chi.URLParam(r, "id"), req.ToInput())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("template_updated", "template_id", tpl.ID)

	writeJSON(w, http.StatusOK, dto.ToTemplateResponse(tpl))
}

// Delete handles DELETE /v1/templates/{applicationId}/{id}.
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), user.ID, chi.URLParam(r, "applicationId"), id); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("template_deleted", "template_id", id)

	w.WriteHeader(http.StatusNoContent)
}
