package expense

import "time"

// CategoryTotal is the spend accumulated under one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// Summary holds the aggregate cards derived from one fetched set.
type Summary struct {
	TotalSpend  float64         `json:"total_spend"`
	MonthSpend  float64         `json:"month_spend"`
	TopCategory *CategoryTotal  `json:"top_category"`
	ByCategory  []CategoryTotal `json:"by_category"`
}

// Summarize computes lifetime spend, current-calendar-month spend and
// per-category totals over a fetched set. Months are compared in UTC.
// TopCategory is the category with the largest sum; ties break toward the
// category seen first in fetch order. Pure function, recomputed per fetch.
func Summarize(records []*Expense, now time.Time) Summary {
	summary := Summary{ByCategory: []CategoryTotal{}}

	nowUTC := now.UTC()
	index := make(map[string]int)

	for _, record := range records {
		summary.TotalSpend += record.AmountINR

		date := record.ExpenseDate.UTC()
		if date.Year() == nowUTC.Year() && date.Month() == nowUTC.Month() {
			summary.MonthSpend += record.AmountINR
		}

		if i, ok := index[record.ExpenseCategory]; ok {
			summary.ByCategory[i].Amount += record.AmountINR
		} else {
			index[record.ExpenseCategory] = len(summary.ByCategory)
			summary.ByCategory = append(summary.ByCategory, CategoryTotal{
				Category: record.ExpenseCategory,
				Amount:   record.AmountINR,
			})
		}
	}

	for i := range summary.ByCategory {
		if summary.TopCategory == nil || summary.ByCategory[i].Amount > summary.TopCategory.Amount {
			top := summary.ByCategory[i]
			summary.TopCategory = &top
		}
	}

	return summary
}
