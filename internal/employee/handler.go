package employee

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/common/page"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/frahmantamala/employee-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(ctx context.Context, dto EmployeeDTO, creatorIdentifier string) (*View, error)
	List(ctx context.Context, req page.Request) (*page.Page[View], error)
	GetByID(ctx context.Context, id int64) (*View, error)
	Update(ctx context.Context, id int64, dto EmployeeDTO) (*View, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// CreateEmployee handles POST /employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	creator := internal.PrincipalNameFromContext(r.Context())
	if creator == "" {
		h.Logger.Error("CreateEmployee: principal not found in context")
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	var dto EmployeeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	v, err := h.Service.Create(r.Context(), dto, creator)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, v)
}

// ListEmployees handles GET /employees
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
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

// GetEmployee handles GET /employees/{id}
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	v, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, v)
}

// UpdateEmployee handles PUT /employees/{id}
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto EmployeeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	v, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, v)
}

// DeleteEmployee handles DELETE /employees/{id}
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
