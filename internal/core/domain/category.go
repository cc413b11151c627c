package domain

// Category is a shared, organization-independent label used by budget lines.
// Expense category names line up with ExpenseType values so budget lines can
// be matched against realized expenses.
type Category struct {
	CategoryID string          `json:"categoryID" db:"category_id"`
	Name       string          `json:"name" db:"name"`
	Type       TransactionType `json:"type" db:"type"`
}
