// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aisboost/aisboost/internal/auth"
	"github.com/aisboost/aisboost/internal/handler/dto"
	"github.com/aisboost/aisboost/internal/middleware"
	"github.com/aisboost/aisboost/internal/service"
)

// Handler serves the unauthenticated utility endpoints.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Ping is a liveness alias kept for existing clients.
// GET /ping
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: dto.ErrorBody{Code: code, Message: message}})
}

// decodeJSON reads the request body into v and writes the error response
// itself when that fails. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var (
		typeErr *json.UnmarshalTypeError
		sizeErr *http.MaxBytesError
	)
	switch {
	case errors.As(err, &sizeErr):
		writeError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large")
	case errors.As(err, &typeErr) && typeErr.Field != "":
		writeJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{Error: dto.ErrorBody{
			Code:    "VALIDATION_FAILED",
			Message: "invalid value for " + typeErr.Field,
			Field:   typeErr.Field,
		}})
	case errors.Is(err, io.EOF):
		writeError(w, http.StatusUnprocessableEntity, "INVALID_JSON", "Request body is empty")
	default:
		writeError(w, http.StatusUnprocessableEntity, "INVALID_JSON", "Invalid request body")
	}
	return false
}

// handleServiceError maps service errors to HTTP responses.
// Missing and foreign resources share one 404 so ids cannot be probed.
func handleServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{Error: dto.ErrorBody{
			Code:    "VALIDATION_FAILED",
			Message: vErr.Message,
			Field:   vErr.Field,
		}})
	case errors.Is(err, service.ErrInvalidTemplateType):
		writeError(w, http.StatusUnprocessableEntity, "INVALID_TEMPLATE_TYPE",
			"type must be one of linkvertise, lootlabs, workink, shrtfly")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, service.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	default:
		logger.Error("internal error",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("user_id", auth.UserIDFromContext(r.Context())),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
