// Package catalog holds the closed category, expense-type and role sets that
// drive the submission form. The catalog is static configuration: lookups are
// pure functions with no I/O, and adding a category is a code change.
package catalog

// Category is one of the fixed expense categories.
type Category string

const (
	CategoryMaterial  Category = "Material"
	CategoryChemical  Category = "Chemical"
	CategoryLogistics Category = "Logistics"
	CategoryPayroll   Category = "Payroll"
	CategoryOther     Category = "Other"
)

// CategoryOptions lists every category in display order.
var CategoryOptions = []Category{
	CategoryMaterial,
	CategoryChemical,
	CategoryLogistics,
	CategoryPayroll,
	CategoryOther,
}

// TypeOption is a selectable expense type within a category. Value is the
// stable key submitted by the form, Label the stored display text.
// RequiresDetail marks the "Others" pattern: choosing the option demands an
// accompanying free-text detail.
type TypeOption struct {
	Value          string `json:"value"`
	Label          string `json:"label"`
	RequiresDetail bool   `json:"requires_detail"`
}

var typesByCategory = map[Category][]TypeOption{
	CategoryMaterial: {
		{Value: "raw-material", Label: "Raw Material"},
		{Value: "packaging", Label: "Packaging"},
		{Value: "consumables", Label: "Consumables"},
		{Value: "others-material", Label: "Others (Material)", RequiresDetail: true},
	},
	CategoryChemical: {
		{Value: "process-chemical", Label: "Process Chemical"},
		{Value: "cleaning-chemical", Label: "Cleaning Chemical"},
		{Value: "lab-reagent", Label: "Lab Reagent"},
		{Value: "others-chemical", Label: "Others (Chemical)", RequiresDetail: true},
	},
	CategoryLogistics: {
		{Value: "freight-inbound", Label: "Freight Inbound"},
		{Value: "freight-outbound", Label: "Freight Outbound"},
		{Value: "courier", Label: "Courier"},
		{Value: "fuel", Label: "Fuel"},
		{Value: "others-logistics", Label: "Others (Logistics)", RequiresDetail: true},
	},
	CategoryPayroll: {
		{Value: "salary", Label: "Salary"},
		{Value: "daily-wages", Label: "Daily Wages"},
		{Value: "overtime", Label: "Overtime"},
		{Value: "bonus", Label: "Bonus"},
		{Value: "others-payroll", Label: "Others (Payroll)", RequiresDetail: true},
	},
	CategoryOther: {
		{Value: "utilities", Label: "Utilities"},
		{Value: "maintenance", Label: "Maintenance"},
		{Value: "office-supplies", Label: "Office Supplies"},
		{Value: "miscellaneous", Label: "Miscellaneous", RequiresDetail: true},
	},
}

// IsValidCategory reports membership in the closed category set.
func IsValidCategory(name string) bool {
	_, ok := typesByCategory[Category(name)]
	return ok
}

// TypesFor returns the ordered type options for a category. The first option
// is the implicit default when the category is newly selected. Unknown
// categories yield nil.
func TypesFor(category Category) []TypeOption {
	options, ok := typesByCategory[category]
	if !ok {
		return nil
	}
	out := make([]TypeOption, len(options))
	copy(out, options)
	return out
}

// DefaultType returns the first option for a category.
func DefaultType(category Category) (TypeOption, bool) {
	options := typesByCategory[category]
	if len(options) == 0 {
		return TypeOption{}, false
	}
	return options[0], true
}

// FindType looks up an option by its stable value, exact match only. Labels
// are never matched.
func FindType(category Category, value string) (TypeOption, bool) {
	for _, option := range typesByCategory[category] {
		if option.Value == value {
			return option, true
		}
	}
	return TypeOption{}, false
}
