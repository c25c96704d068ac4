package expense

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/bizexpense/expense-manager/internal/catalog"
	"github.com/bizexpense/expense-manager/internal/role"
	"github.com/bizexpense/expense-manager/internal/transport"
)

// maxUploadSize bounds one multipart submission, documents included.
const maxUploadSize = 10 << 20

type ServiceAPI interface {
	CreateExpense(ctx context.Context, dto *CreateExpenseDTO) (*Expense, error)
	ListExpenses(ctx context.Context, activeRole catalog.Role) []*Expense
}

// ListResponse is the full page payload: the scoped set, the display subset
// after filtering, and the summary cards computed over the full fetched set.
type ListResponse struct {
	Role           catalog.Role `json:"role"`
	Expenses       []*Expense   `json:"expenses"`
	TotalCount     int          `json:"total_count"`
	DisplayedCount int          `json:"displayed_count"`
	Summary        Summary      `json:"summary"`
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// CreateExpense accepts the multipart submission form and records one
// expense. All field validation happens in ParseSubmission; any failure
// aborts without a partial record.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.Logger.Error("CreateExpense: invalid multipart form", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	sub := Submission{
		ExpenseDoneBy:     r.FormValue("expense_done_by"),
		AmountINR:         r.FormValue("amount_in_inr"),
		ExpenseCategory:   r.FormValue("expense_category"),
		ExpenseType:       r.FormValue("expense_type"),
		ExpenseTypeDetail: r.FormValue("expense_type_detail"),
		Quantity:          r.FormValue("quantity"),
		ExpenseDate:       r.FormValue("expense_date"),
		ProfileRole:       r.FormValue("profile_role"),
	}

	if file, header, err := r.FormFile("document"); err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			h.Logger.Error("CreateExpense: failed to read document", "error", readErr)
			h.WriteError(w, http.StatusBadRequest, "failed to read document")
			return
		}
		sub.Document = &DocumentUpload{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	dto, err := ParseSubmission(sub)
	if err != nil {
		h.Logger.Warn("CreateExpense: validation failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	record, err := h.Service.CreateExpense(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateExpense: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, record)
}

// ListExpenses returns recent records scoped to the active role plus summary
// aggregates. The scope comes from the ?role= parameter when present,
// otherwise from the preference cookie; both parse permissively, defaulting
// to the administrative role.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	activeRole := role.ActiveRole(r)
	if param := r.URL.Query().Get("role"); param != "" {
		activeRole = catalog.ParseRole(param)
	}

	records := h.Service.ListExpenses(r.Context(), activeRole)

	filtered := Filter(records, r.URL.Query().Get("q"), r.URL.Query().Get("category"))

	h.WriteJSON(w, http.StatusOK, ListResponse{
		Role:           activeRole,
		Expenses:       filtered,
		TotalCount:     len(records),
		DisplayedCount: len(filtered),
		Summary:        Summarize(records, time.Now()),
	})
}
