package ledger

// Category is static reference data used to seed pickers and to color
// charts. Transactions reference categories by name, not id, and free-text
// names are accepted; unmatched names fall back to the "Other" appearance.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Type  Type   `json:"type"`
}

var categories = []Category{
	{ID: "food", Name: "Food & Dining", Icon: "🍔", Color: "#FF6B6B", Type: TypeExpense},
	{ID: "transport", Name: "Transport", Icon: "🚗", Color: "#4ECDC4", Type: TypeExpense},
	{ID: "shopping", Name: "Shopping", Icon: "🛍️", Color: "#C084FC", Type: TypeExpense},
	{ID: "entertainment", Name: "Entertainment", Icon: "🎬", Color: "#FFD93D", Type: TypeExpense},
	{ID: "utilities", Name: "Utilities", Icon: "💡", Color: "#6BCB77", Type: TypeExpense},
	{ID: "health", Name: "Health", Icon: "🏥", Color: "#FF8FAB", Type: TypeExpense},
	{ID: "salary", Name: "Salary", Icon: "💼", Color: "#4D96FF", Type: TypeIncome},
	{ID: "freelance", Name: "Freelance", Icon: "💻", Color: "#9B5DE5", Type: TypeIncome},
	{ID: "other", Name: "Other", Icon: "📦", Color: "#95A5A6", Type: TypeExpense},
}

// Categories returns the seeded category list.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)

	return out
}

// DefaultCategory is the category assigned to transactions created without one.
func DefaultCategory() Category {
	return categories[0]
}

// LookupCategory resolves a category name to its seeded appearance. Unknown
// names resolve to the catch-all "Other" entry.
func LookupCategory(name string) Category {
	for _, c := range categories {
		if c.Name == name {
			return c
		}
	}

	return categories[len(categories)-1]
}
