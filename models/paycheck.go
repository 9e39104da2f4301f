package models

import "time"

// Paycheck is a single expected income event.
type Paycheck struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
	UserID string    `json:"userId,omitempty"`
}
