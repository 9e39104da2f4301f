package models

// BudgetCategory is a discretionary monthly spending bucket. Unlike bills
// and debts it is funded only after fixed obligations are covered.
type BudgetCategory struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	MonthlyAmount float64 `json:"monthly_amount"`
	DueDate       int     `json:"due_date"` // day of month, 1-31
	UserID        string  `json:"userId,omitempty"`
}
