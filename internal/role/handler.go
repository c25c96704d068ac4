package role

import (
	"encoding/json"
	"net/http"

	"github.com/bizexpense/expense-manager/internal"
	"github.com/bizexpense/expense-manager/internal/catalog"
	"github.com/bizexpense/expense-manager/internal/transport"
)

type SelectRoleDTO struct {
	Role string `json:"role"`
}

type SelectRoleResponse struct {
	Role catalog.Role `json:"role"`
}

type Handler struct {
	*transport.BaseHandler
}

func NewHandler(baseHandler *transport.BaseHandler) *Handler {
	return &Handler{BaseHandler: baseHandler}
}

// SelectRole stores the chosen role in the preference cookie. Any role is
// reachable from any other; the client re-fetches its list scoped to the new
// role after this returns.
func (h *Handler) SelectRole(w http.ResponseWriter, r *http.Request) {
	var dto SelectRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SelectRole: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	selected, ok := catalog.FindRole(dto.Role)
	if !ok {
		h.Logger.Warn("SelectRole: unknown role", "role", dto.Role)
		h.HandleServiceError(w, internal.NewValidationError("unknown role", internal.ErrCodeInvalidRole))
		return
	}

	SetActiveRole(w, selected)

	h.Logger.Info("SelectRole: active role updated", "role", selected)
	h.WriteJSON(w, http.StatusOK, SelectRoleResponse{Role: selected})
}
