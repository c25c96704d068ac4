package expense

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bizexpense/expense-manager/internal"
	"github.com/bizexpense/expense-manager/internal/catalog"
)

// Submission carries the raw, untrusted field values of one form post. Field
// names mirror the submission form; everything is a string until parsed.
type Submission struct {
	ExpenseDoneBy     string
	AmountINR         string
	ExpenseCategory   string
	ExpenseType       string
	ExpenseTypeDetail string
	Quantity          string
	ExpenseDate       string
	ProfileRole       string
	Document          *DocumentUpload
}

// DocumentUpload is an optional binary attachment taken from the form.
type DocumentUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// CreateExpenseDTO is a fully validated, persistable draft.
type CreateExpenseDTO struct {
	ExpenseDoneBy string
	AmountINR     float64
	Category      catalog.Category
	TypeLabel     string
	TypeDetail    *string
	Quantity      *float64
	ExpenseDate   time.Time
	Role          catalog.Role
	Document      *DocumentUpload
}

// Expense timestamps arrive from a datetime-local input; RFC 3339 is accepted
// for API clients.
var expenseDateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseSubmission turns a raw submission into a validated draft or the first
// per-field failure. Each field has one fixed failure variant; quantity is the
// deliberate exception and never fails.
func ParseSubmission(sub Submission) (*CreateExpenseDTO, error) {
	doneBy, err := parseSubmitter(sub.ExpenseDoneBy)
	if err != nil {
		return nil, err
	}

	amount, err := parseAmount(sub.AmountINR)
	if err != nil {
		return nil, err
	}

	category, err := parseCategory(sub.ExpenseCategory)
	if err != nil {
		return nil, err
	}

	typeLabel, option := resolveType(category, sub.ExpenseType)

	detail, err := parseDetail(sub.ExpenseTypeDetail, option)
	if err != nil {
		return nil, err
	}

	expenseDate, err := parseExpenseDate(sub.ExpenseDate)
	if err != nil {
		return nil, err
	}

	role, err := parseRole(sub.ProfileRole)
	if err != nil {
		return nil, err
	}

	document := sub.Document
	if document != nil && len(document.Data) == 0 {
		document = nil
	}

	return &CreateExpenseDTO{
		ExpenseDoneBy: doneBy,
		AmountINR:     amount,
		Category:      category,
		TypeLabel:     typeLabel,
		TypeDetail:    detail,
		Quantity:      parseQuantity(sub.Quantity),
		ExpenseDate:   expenseDate,
		Role:          role,
		Document:      document,
	}, nil
}

func parseSubmitter(raw string) (string, error) {
	doneBy := strings.TrimSpace(raw)
	if doneBy == "" {
		return "", internal.NewValidationFieldError("expense_done_by", "submitter name is required", internal.ErrCodeMissingSubmitter)
	}
	return doneBy, nil
}

func parseAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, internal.NewValidationFieldError("amount_in_inr", "amount is required", internal.ErrCodeInvalidAmount)
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, internal.NewValidationFieldError("amount_in_inr", "amount must be a number", internal.ErrCodeInvalidAmount)
	}
	if amount < 0 {
		return 0, internal.NewValidationFieldError("amount_in_inr", "amount must not be negative", internal.ErrCodeInvalidAmount)
	}
	return amount, nil
}

func parseCategory(raw string) (catalog.Category, error) {
	if !catalog.IsValidCategory(raw) {
		return "", internal.NewValidationFieldError("expense_category", "unknown expense category", internal.ErrCodeInvalidCategory)
	}
	return catalog.Category(raw), nil
}

// resolveType matches the submitted value against the category's catalog. An
// unmatched value is kept verbatim as the label; the catalog stays permissive
// here to mirror how records were written historically.
func resolveType(category catalog.Category, value string) (string, *catalog.TypeOption) {
	if option, ok := catalog.FindType(category, value); ok {
		return option.Label, &option
	}
	return value, nil
}

func parseDetail(raw string, option *catalog.TypeOption) (*string, error) {
	detail := strings.TrimSpace(raw)

	if option != nil && option.RequiresDetail {
		if detail == "" {
			return nil, internal.NewValidationFieldError("expense_type_detail", "detail is required for the selected type", internal.ErrCodeMissingDetail)
		}
		return &detail, nil
	}

	// Detail is ignored for types that do not ask for one.
	return nil, nil
}

// parseQuantity is deliberately lenient: an unparsable or negative quantity is
// recorded as absent, never an error.
func parseQuantity(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	quantity, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(quantity) || quantity < 0 {
		return nil
	}
	return &quantity
}

func parseExpenseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, internal.NewValidationFieldError("expense_date", "expense date is required", internal.ErrCodeInvalidDate)
	}
	for _, layout := range expenseDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, internal.NewValidationFieldError("expense_date", "expense date is not a valid timestamp", internal.ErrCodeInvalidDate)
}

// parseRole is strict: submissions must name a known role, there is no silent
// default on the write path.
func parseRole(raw string) (catalog.Role, error) {
	role, ok := catalog.FindRole(raw)
	if !ok {
		return "", internal.NewValidationFieldError("profile_role", "unknown profile role", internal.ErrCodeInvalidRole)
	}
	return role, nil
}
