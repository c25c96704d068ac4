package expense

import "time"

// BusinessExpense is the persistence model for one recorded expense. Rows are
// written once and never updated or deleted.
type BusinessExpense struct {
	ID                int64     `gorm:"primaryKey"`
	ExpenseDoneBy     string    `gorm:"column:expense_done_by;not null"`
	AmountINR         float64   `gorm:"column:amount_in_inr;not null"`
	ExpenseCategory   string    `gorm:"column:expense_category;not null"`
	ExpenseType       string    `gorm:"column:expense_type;not null"`
	ExpenseTypeDetail *string   `gorm:"column:expense_type_detail"`
	Quantity          *float64  `gorm:"column:quantity"`
	DocumentBucket    *string   `gorm:"column:document_bucket"`
	DocumentPath      *string   `gorm:"column:document_path"`
	ExpenseDate       time.Time `gorm:"column:expense_date;not null"`
	ProfileRole       string    `gorm:"column:profile_role;not null"`
	CreatedAt         time.Time `gorm:"column:created_at;default:now()"`
}

// TableName returns the table name for GORM
func (BusinessExpense) TableName() string {
	return "business_expenses"
}
