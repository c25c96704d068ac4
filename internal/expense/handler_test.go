package expense_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bizexpense/expense-manager/internal/catalog"
	"github.com/bizexpense/expense-manager/internal/expense"
	"github.com/bizexpense/expense-manager/internal/role"
	"github.com/bizexpense/expense-manager/internal/transport"
)

type mockService struct {
	records      []*expense.Expense
	createError  error
	lastListRole catalog.Role
	lastCreate   *expense.CreateExpenseDTO
}

func (m *mockService) CreateExpense(ctx context.Context, dto *expense.CreateExpenseDTO) (*expense.Expense, error) {
	m.lastCreate = dto
	if m.createError != nil {
		return nil, m.createError
	}
	record := expense.NewExpense(dto)
	record.ID = 1
	return record, nil
}

func (m *mockService) ListExpenses(ctx context.Context, activeRole catalog.Role) []*expense.Expense {
	m.lastListRole = activeRole
	if activeRole.Unscoped() {
		return m.records
	}
	var out []*expense.Expense
	for _, record := range m.records {
		if record.ProfileRole == activeRole {
			out = append(out, record)
		}
	}
	return out
}

var _ = Describe("Handler", func() {
	var (
		service *mockService
		handler *expense.Handler
	)

	BeforeEach(func() {
		service = &mockService{}
		base := transport.NewBaseHandler(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
		handler = expense.NewHandler(base, service)
	})

	Describe("ListExpenses", func() {
		BeforeEach(func() {
			service.records = []*expense.Expense{
				{ID: 1, ExpenseDoneBy: "Stores Team", AmountINR: 100, ExpenseCategory: "Material", ExpenseType: "Raw Material", ExpenseDate: time.Now(), ProfileRole: catalog.RoleMaterials},
				{ID: 2, ExpenseDoneBy: "Dispatch", AmountINR: 250.5, ExpenseCategory: "Logistics", ExpenseType: "Courier", ExpenseDate: time.Now(), ProfileRole: catalog.RoleLogistics},
			}
		})

		doList := func(target string, cookie *http.Cookie) expense.ListResponse {
			GinkgoHelper()
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if cookie != nil {
				req.AddCookie(cookie)
			}
			rec := httptest.NewRecorder()

			handler.ListExpenses(rec, req)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp expense.ListResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			return resp
		}

		It("defaults to the administrative role without a cookie", func() {
			resp := doList("/api/v1/expenses", nil)

			Expect(resp.Role).To(Equal(catalog.RoleSuperAdmin))
			Expect(resp.Expenses).To(HaveLen(2))
			Expect(resp.TotalCount).To(Equal(2))
			Expect(resp.DisplayedCount).To(Equal(2))
		})

		It("scopes by the preference cookie", func() {
			resp := doList("/api/v1/expenses", &http.Cookie{Name: role.CookieName, Value: "Logistics"})

			Expect(resp.Role).To(Equal(catalog.RoleLogistics))
			Expect(service.lastListRole).To(Equal(catalog.RoleLogistics))
			Expect(resp.Expenses).To(HaveLen(1))
			Expect(resp.Expenses[0].ExpenseDoneBy).To(Equal("Dispatch"))
		})

		It("lets the role query parameter override the cookie", func() {
			resp := doList("/api/v1/expenses?role=Materials", &http.Cookie{Name: role.CookieName, Value: "Logistics"})

			Expect(resp.Role).To(Equal(catalog.RoleMaterials))
			Expect(service.lastListRole).To(Equal(catalog.RoleMaterials))
		})

		It("treats an unrecognized role parameter as administrative", func() {
			resp := doList("/api/v1/expenses?role=Accounting", nil)
			Expect(resp.Role).To(Equal(catalog.RoleSuperAdmin))
		})

		It("filters the display set but summarizes the full fetched set", func() {
			resp := doList("/api/v1/expenses?q=courier", nil)

			Expect(resp.Expenses).To(HaveLen(1))
			Expect(resp.DisplayedCount).To(Equal(1))
			Expect(resp.TotalCount).To(Equal(2))
			Expect(resp.Summary.TotalSpend).To(Equal(350.5))
		})

		It("combines search and category filters", func() {
			resp := doList("/api/v1/expenses?q=dispatch&category=Material", nil)
			Expect(resp.Expenses).To(BeEmpty())
			Expect(resp.TotalCount).To(Equal(2))
		})
	})

	Describe("CreateExpense", func() {
		buildForm := func(fields map[string]string, document []byte) (*bytes.Buffer, string) {
			GinkgoHelper()
			body := &bytes.Buffer{}
			writer := multipart.NewWriter(body)
			for key, value := range fields {
				Expect(writer.WriteField(key, value)).To(Succeed())
			}
			if document != nil {
				part, err := writer.CreateFormFile("document", "invoice.pdf")
				Expect(err).NotTo(HaveOccurred())
				_, err = part.Write(document)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(writer.Close()).To(Succeed())
			return body, writer.FormDataContentType()
		}

		validFields := func() map[string]string {
			return map[string]string{
				"expense_done_by":  "Stores Team",
				"amount_in_inr":    "1500.50",
				"expense_category": "Material",
				"expense_type":     "raw-material",
				"quantity":         "3",
				"expense_date":     "2026-08-14T10:30",
				"profile_role":     "Materials",
			}
		}

		It("records a valid submission", func() {
			body, contentType := buildForm(validFields(), nil)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			handler.CreateExpense(rec, req)

			Expect(rec.Code).To(Equal(http.StatusCreated))
			Expect(service.lastCreate).NotTo(BeNil())
			Expect(service.lastCreate.AmountINR).To(Equal(1500.50))

			var created expense.Expense
			Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
			Expect(created.ExpenseDoneBy).To(Equal("Stores Team"))
		})

		It("forwards an attachment from the form", func() {
			body, contentType := buildForm(validFields(), []byte("%PDF-1.4"))
			req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			handler.CreateExpense(rec, req)

			Expect(rec.Code).To(Equal(http.StatusCreated))
			Expect(service.lastCreate.Document).NotTo(BeNil())
			Expect(service.lastCreate.Document.FileName).To(Equal("invoice.pdf"))
		})

		It("rejects a validation failure without calling the service", func() {
			fields := validFields()
			fields["amount_in_inr"] = "-5"
			body, contentType := buildForm(fields, nil)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			handler.CreateExpense(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(service.lastCreate).To(BeNil())

			var resp struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Error.Code).To(Equal("VALIDATION_FAILED"))
		})

		It("rejects a non-multipart body", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", bytes.NewBufferString(`{"amount":1}`))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			handler.CreateExpense(rec, req)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
