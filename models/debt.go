package models

// Debt represents an interest-bearing balance with a recurring minimum payment.
// Only debts with a positive current balance participate in focus-debt
// extra payments.
type Debt struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	MinimumPayment float64 `json:"minimum_payment"`
	PaymentDay     int     `json:"payment_day"` // day of month, 1-31
	CurrentBalance float64 `json:"current_balance"`
	InterestRate   float64 `json:"interest_rate"`
	ExtraPayment   float64 `json:"extra_payment"`
	UserID         string  `json:"userId,omitempty"`
}

// Debt payoff strategies. Any other value disables the focus-debt overlay.
const (
	StrategyAvalanche = "avalanche"
	StrategySnowball  = "snowball"
)
