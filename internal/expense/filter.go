package expense

import "strings"

// FilterCategoryAll disables category filtering.
const FilterCategoryAll = "All"

// Filter narrows a fetched set for display. The search term matches
// case-insensitively against submitter name, type label and detail (absent
// detail counts as empty, not "null"); the category filter is an exact match
// AND-ed with the search. The input slice is never mutated and order is
// preserved.
func Filter(records []*Expense, searchTerm, category string) []*Expense {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	matchAllCategories := category == "" || category == FilterCategoryAll

	filtered := make([]*Expense, 0, len(records))
	for _, record := range records {
		if !matchAllCategories && record.ExpenseCategory != category {
			continue
		}

		if term != "" {
			detail := ""
			if record.ExpenseTypeDetail != nil {
				detail = *record.ExpenseTypeDetail
			}
			haystack := strings.ToLower(record.ExpenseDoneBy + " " + record.ExpenseType + " " + detail)
			if !strings.Contains(haystack, term) {
				continue
			}
		}

		filtered = append(filtered, record)
	}

	return filtered
}
