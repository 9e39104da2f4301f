package models

// Bill is a recurring monthly obligation with a fixed day-of-month due date.
type Bill struct {
	ID      string  `json:"id"`
	Company string  `json:"company"`
	Amount  float64 `json:"amount"`
	DueDate int     `json:"due_date"` // day of month, 1-31
	UserID  string  `json:"userId,omitempty"`
}
