package models

import "time"

// PaymentType classifies a scheduled payment.
type PaymentType string

const (
	PaymentTypeBill      PaymentType = "bill"
	PaymentTypeDebt      PaymentType = "debt"
	PaymentTypeExtraDebt PaymentType = "extra-debt"
	PaymentTypeBudget    PaymentType = "budget"
)

// PaymentStatus describes how a paycheck's date relates to the payment's
// due date. Informational only, it never affects assignment.
type PaymentStatus string

const (
	PaymentStatusOnTime PaymentStatus = "on-time"
	PaymentStatusLate   PaymentStatus = "late"
	PaymentStatusEarly  PaymentStatus = "early"
)

// PaymentScheduleItem is one (possibly partial) payment placed into one
// paycheck period.
type PaymentScheduleItem struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Amount      float64       `json:"amount"`
	DueDate     time.Time     `json:"due_date"`
	Type        PaymentType   `json:"type"`
	Status      PaymentStatus `json:"status"`
	IsSplit     bool          `json:"isSplit,omitempty"`
	SplitPart   string        `json:"splitPart,omitempty"` // "k/N"
	IsFocusDebt bool          `json:"isFocusDebt,omitempty"`
	IsPaid      bool          `json:"isPaid,omitempty"`
}

// PaycheckPeriod accumulates the payments funded by a single paycheck.
// Invariant: Remaining = TotalIncome - TotalPayments.
type PaycheckPeriod struct {
	PaycheckID    string                `json:"paycheckId"`
	PaycheckName  string                `json:"paycheckName"`
	PaycheckDate  time.Time             `json:"paycheckDate"`
	TotalIncome   float64               `json:"totalIncome"`
	TotalPayments float64               `json:"totalPayments"`
	Remaining     float64               `json:"remaining"`
	Payments      []PaymentScheduleItem `json:"payments"`
}

// UnassignedPayment is an obligation, or the remainder of a split one,
// that no paycheck could cover.
type UnassignedPayment struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Amount  float64     `json:"amount"`
	DueDate time.Time   `json:"dueDate"`
	Type    PaymentType `json:"type"`
}

// ScheduleResult is the outcome of one scheduling run.
type ScheduleResult struct {
	Schedule   []PaycheckPeriod    `json:"schedule"`
	Unassigned []UnassignedPayment `json:"unassigned"`
}
