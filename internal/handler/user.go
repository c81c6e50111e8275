package handler

import (
	"net/http"

	"github.com/aisboost/aisboost/internal/auth"
	"github.com/aisboost/aisboost/internal/handler/dto"
)

// UserHandler serves the authenticated user's profile.
type UserHandler struct{}

// NewUserHandler creates a new UserHandler.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me handles GET /v1/users/@me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())
	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}
