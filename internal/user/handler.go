package user

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/common/page"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/frahmantamala/employee-management/pkg/logger"
)

type ServiceAPI interface {
	GetByIdentifier(ctx context.Context, identifier string) (*View, error)
	List(ctx context.Context, req page.Request) (*page.Page[View], error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// GetCurrentUser handles GET /users/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	username := internal.PrincipalNameFromContext(r.Context())
	if username == "" {
		h.Logger.Error("GetCurrentUser: principal not found in context")
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	v, err := h.Service.GetByIdentifier(r.Context(), username)
	if err != nil {
		h.Logger.Error("GetCurrentUser: service error", "username", username, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, v)
}

// ListUsers handles GET /users (admin only)
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	req, err := page.FromQuery(r.URL.Query(), SortableFields)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	result, err := h.Service.List(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}
