package expense_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bizexpense/expense-manager/internal"
	"github.com/bizexpense/expense-manager/internal/catalog"
	expenseDatamodel "github.com/bizexpense/expense-manager/internal/core/datamodel/expense"
	"github.com/bizexpense/expense-manager/internal/expense"
)

// Mock repository for testing
type mockRepository struct {
	records     []*expenseDatamodel.BusinessExpense
	createError error
	listError   error
	nextID      int64

	lastListRole  *catalog.Role
	lastListLimit int
}

func newMockRepository() *mockRepository {
	return &mockRepository{nextID: 1}
}

func (m *mockRepository) Create(record *expenseDatamodel.BusinessExpense) error {
	if m.createError != nil {
		return m.createError
	}
	record.ID = m.nextID
	m.nextID++
	m.records = append(m.records, record)
	return nil
}

func (m *mockRepository) ListRecent(role *catalog.Role, limit int) ([]*expenseDatamodel.BusinessExpense, error) {
	m.lastListRole = role
	m.lastListLimit = limit
	if m.listError != nil {
		return nil, m.listError
	}

	var out []*expenseDatamodel.BusinessExpense
	for _, record := range m.records {
		if role != nil && record.ProfileRole != string(*role) {
			continue
		}
		out = append(out, record)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// Mock storage recording call order
type mockStorage struct {
	uploadError error
	signError   error
	calls       []string
	uploaded    map[string][]byte
}

func newMockStorage() *mockStorage {
	return &mockStorage{uploaded: make(map[string][]byte)}
}

func (m *mockStorage) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	m.calls = append(m.calls, "upload:"+bucket+"/"+path)
	if m.uploadError != nil {
		return m.uploadError
	}
	m.uploaded[bucket+"/"+path] = data
	return nil
}

func (m *mockStorage) SignedURL(ctx context.Context, bucket, path string, ttl time.Duration) (string, error) {
	m.calls = append(m.calls, "sign:"+bucket+"/"+path)
	if m.signError != nil {
		return "", m.signError
	}
	return "https://storage.example.com/" + bucket + "/" + path + "?signed=1", nil
}

var _ = Describe("Service", func() {
	var (
		repo    *mockRepository
		store   *mockStorage
		service *expense.Service
		logger  *slog.Logger
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = newMockRepository()
		store = newMockStorage()
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = expense.NewService(repo, store, "expense-documents", time.Hour, logger)
		ctx = context.Background()
	})

	validDTO := func() *expense.CreateExpenseDTO {
		return &expense.CreateExpenseDTO{
			ExpenseDoneBy: "Stores Team",
			AmountINR:     1500.50,
			Category:      catalog.CategoryMaterial,
			TypeLabel:     "Raw Material",
			ExpenseDate:   time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC),
			Role:          catalog.RoleMaterials,
		}
	}

	Describe("CreateExpense", func() {
		It("persists a record without touching storage when there is no attachment", func() {
			record, err := service.CreateExpense(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())

			Expect(record.HasDocument()).To(BeFalse())
			Expect(record.DocumentSignedURL).To(BeNil())
			Expect(repo.records).To(HaveLen(1))
			Expect(store.calls).To(BeEmpty())
		})

		It("stamps a server-assigned creation timestamp", func() {
			before := time.Now()
			record, err := service.CreateExpense(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())
			Expect(record.CreatedAt).To(BeTemporally(">=", before))
		})

		It("uploads the document before inserting the row", func() {
			dto := validDTO()
			dto.Document = &expense.DocumentUpload{
				FileName:    "invoice.pdf",
				ContentType: "application/pdf",
				Data:        []byte("%PDF-1.4"),
			}

			record, err := service.CreateExpense(ctx, dto)
			Expect(err).NotTo(HaveOccurred())

			Expect(store.calls).To(HaveLen(1))
			Expect(store.calls[0]).To(HavePrefix("upload:expense-documents/materials/"))
			Expect(record.HasDocument()).To(BeTrue())
			Expect(*record.DocumentBucket).To(Equal("expense-documents"))
			Expect(*record.DocumentPath).To(HavePrefix("materials/"))
			Expect(strings.HasSuffix(*record.DocumentPath, ".pdf")).To(BeTrue())
			Expect(repo.records).To(HaveLen(1))
		})

		It("never persists a row when the upload fails", func() {
			store.uploadError = errors.New("bucket unavailable")

			dto := validDTO()
			dto.Document = &expense.DocumentUpload{FileName: "invoice.pdf", Data: []byte("x")}

			_, err := service.CreateExpense(ctx, dto)
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeUploadFailed))
			Expect(repo.records).To(BeEmpty())
		})

		It("reports an insert failure after a successful upload", func() {
			repo.createError = errors.New("connection reset")

			dto := validDTO()
			dto.Document = &expense.DocumentUpload{FileName: "invoice.pdf", Data: []byte("x")}

			_, err := service.CreateExpense(ctx, dto)
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInsertFailed))
			// The uploaded object stays behind; there is no compensating delete.
			Expect(store.uploaded).To(HaveLen(1))
			Expect(repo.records).To(BeEmpty())
		})

		It("rejects an attachment when storage is not configured", func() {
			service = expense.NewService(repo, nil, "expense-documents", time.Hour, logger)

			dto := validDTO()
			dto.Document = &expense.DocumentUpload{FileName: "invoice.pdf", Data: []byte("x")}

			_, err := service.CreateExpense(ctx, dto)
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeStorageNotConfigured))
			Expect(repo.records).To(BeEmpty())
		})

		It("reports an insert failure without an attachment", func() {
			repo.createError = errors.New("connection reset")

			_, err := service.CreateExpense(ctx, validDTO())
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInsertFailed))
		})
	})

	Describe("ListExpenses", func() {
		seed := func(role catalog.Role, doneBy string) {
			err := repo.Create(&expenseDatamodel.BusinessExpense{
				ExpenseDoneBy:   doneBy,
				AmountINR:       100,
				ExpenseCategory: "Material",
				ExpenseType:     "Raw Material",
				ExpenseDate:     time.Now(),
				ProfileRole:     string(role),
			})
			Expect(err).NotTo(HaveOccurred())
		}

		It("fetches unscoped for the administrative role", func() {
			seed(catalog.RoleLogistics, "Dispatch")
			seed(catalog.RolePayroll, "HR")

			records := service.ListExpenses(ctx, catalog.RoleSuperAdmin)

			Expect(repo.lastListRole).To(BeNil())
			Expect(repo.lastListLimit).To(Equal(expense.MaxFetch))
			Expect(records).To(HaveLen(2))
		})

		It("scopes other roles to their own records", func() {
			seed(catalog.RoleLogistics, "Dispatch")
			seed(catalog.RolePayroll, "HR")

			records := service.ListExpenses(ctx, catalog.RolePayroll)

			Expect(repo.lastListRole).NotTo(BeNil())
			Expect(*repo.lastListRole).To(Equal(catalog.RolePayroll))
			Expect(records).To(HaveLen(1))
			Expect(records[0].ExpenseDoneBy).To(Equal("HR"))
		})

		It("degrades to an empty list on a query error", func() {
			repo.listError = errors.New("connection refused")

			records := service.ListExpenses(ctx, catalog.RoleSuperAdmin)
			Expect(records).NotTo(BeNil())
			Expect(records).To(BeEmpty())
		})

		It("resolves signed URLs for records with documents", func() {
			bucket := "expense-documents"
			path := "logistics/abc.pdf"
			err := repo.Create(&expenseDatamodel.BusinessExpense{
				ExpenseDoneBy:   "Dispatch",
				AmountINR:       50,
				ExpenseCategory: "Logistics",
				ExpenseType:     "Courier",
				DocumentBucket:  &bucket,
				DocumentPath:    &path,
				ExpenseDate:     time.Now(),
				ProfileRole:     string(catalog.RoleLogistics),
			})
			Expect(err).NotTo(HaveOccurred())
			seed(catalog.RoleLogistics, "Dispatch Two")

			records := service.ListExpenses(ctx, catalog.RoleLogistics)
			Expect(records).To(HaveLen(2))

			Expect(records[0].DocumentSignedURL).NotTo(BeNil())
			Expect(*records[0].DocumentSignedURL).To(ContainSubstring("logistics/abc.pdf"))
			Expect(records[1].DocumentSignedURL).To(BeNil())
		})

		It("omits the link when signing fails instead of failing the fetch", func() {
			store.signError = errors.New("token expired")

			bucket := "expense-documents"
			path := "payroll/xyz.png"
			err := repo.Create(&expenseDatamodel.BusinessExpense{
				ExpenseDoneBy:   "HR",
				AmountINR:       10,
				ExpenseCategory: "Payroll",
				ExpenseType:     "Salary",
				DocumentBucket:  &bucket,
				DocumentPath:    &path,
				ExpenseDate:     time.Now(),
				ProfileRole:     string(catalog.RolePayroll),
			})
			Expect(err).NotTo(HaveOccurred())

			records := service.ListExpenses(ctx, catalog.RolePayroll)
			Expect(records).To(HaveLen(1))
			Expect(records[0].DocumentSignedURL).To(BeNil())
		})

		It("skips signing entirely when storage is not configured", func() {
			service = expense.NewService(repo, nil, "expense-documents", time.Hour, logger)

			bucket := "expense-documents"
			path := "materials/doc.pdf"
			err := repo.Create(&expenseDatamodel.BusinessExpense{
				ExpenseDoneBy:   "Stores",
				AmountINR:       10,
				ExpenseCategory: "Material",
				ExpenseType:     "Raw Material",
				DocumentBucket:  &bucket,
				DocumentPath:    &path,
				ExpenseDate:     time.Now(),
				ProfileRole:     string(catalog.RoleMaterials),
			})
			Expect(err).NotTo(HaveOccurred())

			records := service.ListExpenses(ctx, catalog.RoleMaterials)
			Expect(records).To(HaveLen(1))
			Expect(records[0].DocumentSignedURL).To(BeNil())
		})
	})
})
