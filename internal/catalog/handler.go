package catalog

import (
	"net/http"

	"github.com/bizexpense/expense-manager/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
}

func NewHandler(baseHandler *transport.BaseHandler) *Handler {
	return &Handler{BaseHandler: baseHandler}
}

// GetCatalog returns every category with its ordered type options so the form
// can render selects without hardcoding the catalog client-side.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	resp := CatalogResponse{Categories: make([]CategoryResponse, 0, len(CategoryOptions))}
	for _, category := range CategoryOptions {
		resp.Categories = append(resp.Categories, CategoryResponse{
			Name:  string(category),
			Types: TypesFor(category),
		})
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// GetRoles returns the closed role set for the role switcher.
func (h *Handler) GetRoles(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, RolesResponse{Roles: RoleOptions})
}
