package expense

import (
	"time"

	"github.com/bizexpense/expense-manager/internal/catalog"
	expenseDatamodel "github.com/bizexpense/expense-manager/internal/core/datamodel/expense"
)

// Expense is one immutable recorded expense. The document reference fields
// are both set or both nil; DocumentSignedURL is resolved per fetch and never
// persisted.
type Expense struct {
	ID                int64        `json:"id"`
	ExpenseDoneBy     string       `json:"expense_done_by"`
	AmountINR         float64      `json:"amount_in_inr"`
	ExpenseCategory   string       `json:"expense_category"`
	ExpenseType       string       `json:"expense_type"`
	ExpenseTypeDetail *string      `json:"expense_type_detail"`
	Quantity          *float64     `json:"quantity"`
	DocumentBucket    *string      `json:"document_bucket,omitempty"`
	DocumentPath      *string      `json:"document_path,omitempty"`
	DocumentSignedURL *string      `json:"document_signed_url,omitempty"`
	ExpenseDate       time.Time    `json:"expense_date"`
	CreatedAt         time.Time    `json:"created_at"`
	ProfileRole       catalog.Role `json:"profile_role"`
}

// HasDocument reports whether a stored document is attached.
func (e *Expense) HasDocument() bool {
	return e.DocumentBucket != nil && e.DocumentPath != nil
}

// AttachDocument sets the document reference pair.
func (e *Expense) AttachDocument(bucket, path string) {
	e.DocumentBucket = &bucket
	e.DocumentPath = &path
}

// NewExpense builds a record draft from a validated submission. CreatedAt is
// server-assigned here; the expense timestamp stays the user-supplied one.
func NewExpense(dto *CreateExpenseDTO) *Expense {
	return &Expense{
		ExpenseDoneBy:     dto.ExpenseDoneBy,
		AmountINR:         dto.AmountINR,
		ExpenseCategory:   string(dto.Category),
		ExpenseType:       dto.TypeLabel,
		ExpenseTypeDetail: dto.TypeDetail,
		Quantity:          dto.Quantity,
		ExpenseDate:       dto.ExpenseDate,
		CreatedAt:         time.Now(),
		ProfileRole:       dto.Role,
	}
}

func ToDataModel(e *Expense) *expenseDatamodel.BusinessExpense {
	return &expenseDatamodel.BusinessExpense{
		ID:                e.ID,
		ExpenseDoneBy:     e.ExpenseDoneBy,
		AmountINR:         e.AmountINR,
		ExpenseCategory:   e.ExpenseCategory,
		ExpenseType:       e.ExpenseType,
		ExpenseTypeDetail: e.ExpenseTypeDetail,
		Quantity:          e.Quantity,
		DocumentBucket:    e.DocumentBucket,
		DocumentPath:      e.DocumentPath,
		ExpenseDate:       e.ExpenseDate,
		CreatedAt:         e.CreatedAt,
		ProfileRole:       string(e.ProfileRole),
	}
}

func FromDataModel(e *expenseDatamodel.BusinessExpense) *Expense {
	return &Expense{
		ID:                e.ID,
		ExpenseDoneBy:     e.ExpenseDoneBy,
		AmountINR:         e.AmountINR,
		ExpenseCategory:   e.ExpenseCategory,
		ExpenseType:       e.ExpenseType,
		ExpenseTypeDetail: e.ExpenseTypeDetail,
		Quantity:          e.Quantity,
		DocumentBucket:    e.DocumentBucket,
		DocumentPath:      e.DocumentPath,
		ExpenseDate:       e.ExpenseDate,
		CreatedAt:         e.CreatedAt,
		ProfileRole:       catalog.ParseRole(e.ProfileRole),
	}
}

func FromDataModelSlice(expenses []*expenseDatamodel.BusinessExpense) []*Expense {
	result := make([]*Expense, len(expenses))
	for i, e := range expenses {
		result[i] = FromDataModel(e)
	}
	return result
}
