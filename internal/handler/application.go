package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aisboost/aisboost/internal/auth"
	"github.com/aisboost/aisboost/internal/handler/dto"
	"github.com/aisboost/aisboost/internal/service"
)

// ApplicationHandler handles HTTP requests for application operations.
type ApplicationHandler struct {
	svc    *service.ApplicationService
	logger *slog.Logger
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(svc *service.ApplicationService, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /v1/applications.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	apps, err := h.svc.List(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToApplicationList(apps))
}

// Create handles POST /v1/applications.
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.ApplicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	app, err := h.svc.Create(r.Context(), user.ID, req.ToInput())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("application_created",
		"application_id", app.ID,
		"user_id", user.ID,
	)

	writeJSON(w, http.StatusCreated, dto.ToApplicationResponse(app))
}

// Get handles GET /v1/applications/{id}.
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	app, err := h.svc.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToApplicationResponse(app))
}

// Update handles PATCH /v1/applications/{id}.
func (h *ApplicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.ApplicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	app, err := h.svc.Update(r.Context(), user.ID, chi.URLParam(r, "id"), req.ToInput())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("application_updated", "application_id", app.ID)

	writeJSON(w, http.StatusOK, dto.ToApplicationResponse(app))
}

// Delete handles DELETE /v1/applications/{id}.
func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), user.ID, id); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("application_deleted", "application_id", id)

	w.WriteHeader(http.StatusNoContent)
}
