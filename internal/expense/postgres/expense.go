package postgres

import (
	"github.com/bizexpense/expense-manager/internal/catalog"
	expenseDatamodel "github.com/bizexpense/expense-manager/internal/core/datamodel/expense"
	"github.com/bizexpense/expense-manager/internal/expense"
	"gorm.io/gorm"
)

// ExpenseRepository implements the expense.Repository interface using GORM
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) expense.Repository {
	return &ExpenseRepository{db: db}
}

// Create saves a new expense record. Records are insert-only.
func (r *ExpenseRepository) Create(record *expenseDatamodel.BusinessExpense) error {
	return r.db.Create(record).Error
}

// ListRecent returns the most recent records by expense date. A non-nil role
// narrows the result to records created under that role.
func (r *ExpenseRepository) ListRecent(role *catalog.Role, limit int) ([]*expenseDatamodel.BusinessExpense, error) {
	query := r.db.Order("expense_date DESC").Limit(limit)
	if role != nil {
		query = query.Where("profile_role = ?", string(*role))
	}

	var records []*expenseDatamodel.BusinessExpense
	err := query.Find(&records).Error
	return records, err
}
