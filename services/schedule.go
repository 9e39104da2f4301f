package services

import (
	"fmt"
	"time"

	"handleyourhouse/backend/database"
	"handleyourhouse/backend/models"
	"handleyourhouse/backend/scheduler"
)

// BuildPaycheckPeriods turns paychecks into freshly initialized period
// accumulators: Remaining equals TotalIncome and the payment list is empty.
func BuildPaycheckPeriods(paychecks []models.Paycheck) []models.PaycheckPeriod {
	periods := make([]models.PaycheckPeriod, 0, len(paychecks))
	for _, pc := range paychecks {
		periods = append(periods, models.PaycheckPeriod{
			PaycheckID:   pc.ID,
			PaycheckName: pc.Name,
			PaycheckDate: pc.Date,
			TotalIncome:  pc.Amount,
			Remaining:    pc.Amount,
			Payments:     []models.PaymentScheduleItem{},
		})
	}
	return periods
}

// GenerateSchedule loads a household member's obligations and upcoming
// paychecks and runs the allocation scheduler. Paychecks are loaded from
// one month before asOf, since a check issued mid-cycle can still fund
// the billing cycle it falls inside.
//
// When extraPayment is nil, the household extra payment defaults to the
// sum of the extra_payment amounts of debts still carrying a balance.
func GenerateSchedule(userID, strategy string, extraPayment *float64, asOf time.Time) (*models.ScheduleResult, error) {
	bills, err := fetchBills(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bills: %w", err)
	}
	debts, err := fetchDebts(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load debts: %w", err)
	}
	categories, err := fetchBudgetCategories(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget categories: %w", err)
	}
	paychecks, err := fetchPaychecks(userID, asOf.AddDate(0, -1, 0), asOf.AddDate(0, 3, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to load paychecks: %w", err)
	}

	extra := 0.0
	if extraPayment != nil {
		extra = *extraPayment
	} else {
		for _, d := range debts {
			if d.CurrentBalance > 0 {
				extra += d.ExtraPayment
			}
		}
	}

	periods := BuildPaycheckPeriods(paychecks)
	result := scheduler.Schedule(periods, bills, debts, categories, strategy, extra, asOf)
	return &result, nil
}

func fetchBills(userID string) ([]models.Bill, error) {
	rows, err := database.DB.Query(
		"SELECT id, company, amount, due_date FROM bills WHERE user_id = ? ORDER BY due_date",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(&b.ID, &b.Company, &b.Amount, &b.DueDate); err != nil {
			return nil, err
		}
		b.UserID = userID
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func fetchDebts(userID string) ([]models.Debt, error) {
	rows, err := database.DB.Query(
		`SELECT id, name, minimum_payment, payment_day, current_balance, interest_rate, extra_payment
		 FROM debts WHERE user_id = ? ORDER BY payment_day`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var debts []models.Debt
	for rows.Next() {
		var d models.Debt
		if err := rows.Scan(&d.ID, &d.Name, &d.MinimumPayment, &d.PaymentDay,
			&d.CurrentBalance, &d.InterestRate, &d.ExtraPayment); err != nil {
			return nil, err
		}
		d.UserID = userID
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

func fetchBudgetCategories(userID string) ([]models.BudgetCategory, error) {
	rows, err := database.DB.Query(
		"SELECT id, name, monthly_amount, due_date FROM budget_categories WHERE user_id = ? ORDER BY due_date",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.BudgetCategory
	for rows.Next() {
		var c models.BudgetCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.MonthlyAmount, &c.DueDate); err != nil {
			return nil, err
		}
		c.UserID = userID
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func fetchPaychecks(userID string, from, to time.Time) ([]models.Paycheck, error) {
	rows, err := database.DB.Query(
		"SELECT id, name, date, amount FROM paychecks WHERE user_id = ? AND date >= ? AND date < ? ORDER BY date",
		userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paychecks []models.Paycheck
	for rows.Next() {
		var pc models.Paycheck
		if err := rows.Scan(&pc.ID, &pc.Name, &pc.Date, &pc.Amount); err != nil {
			return nil, err
		}
		pc.UserID = userID
		paychecks = append(paychecks, pc)
	}
	return paychecks, rows.Err()
}
