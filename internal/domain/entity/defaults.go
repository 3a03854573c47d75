package entity

// DefaultCategory is one tuple of the static default category set that
// every user is expected to have after bootstrap
type DefaultCategory struct {
	Name  string
	Type  CategoryType
	Color string
	Icon  string
}

// Key returns the deduplication key for this default tuple
func (d DefaultCategory) Key() string {
	return CategoryKey(d.Name, string(d.Type))
}

// defaultCategories is the process-wide seeding target
var defaultCategories = []DefaultCategory{
	{Name: "Ngopi", Type: TypeExpense, Color: "#facc15", Icon: "Coffee"},
	{Name: "Belanja", Type: TypeExpense, Color: "#fb7185", Icon: "ShoppingBag"},
	{Name: "Ngopi", Type: TypeIncome, Color: "#facc15", Icon: "Coffee"},
	{Name: "Belanja", Type: TypeIncome, Color: "#fb7185", Icon: "ShoppingBag"},
}

// DefaultCategories returns a copy of the default category set so callers
// cannot mutate the seeding target
func DefaultCategories() []DefaultCategory {
	out := make([]DefaultCategory, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}
