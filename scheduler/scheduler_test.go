package scheduler

import (
	"math"
	"testing"
	"time"

	"handleyourhouse/backend/models"
)

const tolerance = 0.011

func approx(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func testPeriod(id string, d time.Time, income float64) models.PaycheckPeriod {
	return models.PaycheckPeriod{
		PaycheckID:   id,
		PaycheckName: id,
		PaycheckDate: d,
		TotalIncome:  income,
		Remaining:    income,
		Payments:     []models.PaymentScheduleItem{},
	}
}

func TestScheduleEmptyPaychecks(t *testing.T) {
	asOf := date(2026, time.January, 1)
	bills := []models.Bill{{ID: "b1", Company: "Electric", Amount: 120, DueDate: 15}}

	result := Schedule(nil, bills, nil, nil, models.StrategyAvalanche, 100, asOf)

	if result.Schedule == nil || len(result.Schedule) != 0 {
		t.Errorf("Expected empty schedule, got %v", result.Schedule)
	}
	if result.Unassigned == nil || len(result.Unassigned) != 0 {
		t.Errorf("Expected no unassigned entries, got %v", result.Unassigned)
	}
}

// A bill bigger than any paycheck's income splits, drains the only
// eligible paycheck, and reports the remainder as unassigned.
func TestScheduleOversizedBillSplits(t *testing.T) {
	asOf := date(2026, time.January, 1)
	periods := []models.PaycheckPeriod{
		testPeriod("pc1", date(2026, time.January, 1), 1000),
	}
	bills := []models.Bill{{ID: "b1", Company: "Mortgage", Amount: 1200, DueDate: 15}}

	result := Schedule(periods, bills, nil, nil, "", 0, asOf)

	period := result.Schedule[0]
	if len(period.Payments) != 1 {
		t.Fatalf("Expected 1 payment in period, got %d", len(period.Payments))
	}
	payment := period.Payments[0]
	if !approx(payment.Amount, 1000) {
		t.Errorf("Expected assigned amount 1000, got %f", payment.Amount)
	}
	if !payment.IsSplit {
		t.Error("Expected an oversized bill to be marked as split")
	}
	if !approx(period.Remaining, 0) {
		t.Errorf("Expected paycheck fully consumed, got remaining %f", period.Remaining)
	}

	// January remainder plus the fully unfunded February and March cycles.
	var januaryRemainder float64
	fullyUnfunded := 0
	for _, u := range result.Unassigned {
		if u.ID != "b1" {
			t.Errorf("Unexpected unassigned entry %q", u.ID)
		}
		if u.DueDate.Equal(date(2026, time.January, 15)) {
			januaryRemainder = u.Amount
		} else if approx(u.Amount, 1200) {
			fullyUnfunded++
		}
	}
	if !approx(januaryRemainder, 200) {
		t.Errorf("Expected January remainder 200, got %f", januaryRemainder)
	}
	if fullyUnfunded != 2 {
		t.Errorf("Expected 2 fully unfunded later cycles, got %d", fullyUnfunded)
	}
}

// Bills and debts claim capacity before budget categories even when the
// budget category is due earlier.
func TestSchedulePriorityOrdering(t *testing.T) {
	asOf := date(2026, time.January, 1)
	periods := []models.PaycheckPeriod{
		testPeriod("pc1", date(2026, time.January, 1), 100),
	}
	bills := []models.Bill{{ID: "b1", Company: "Internet", Amount: 80, DueDate: 10}}
	categories := []models.BudgetCategory{{ID: "c1", Name: "Groceries", MonthlyAmount: 80, DueDate: 5}}

	result := Schedule(periods, bills, nil, categories, "", 0, asOf)

	var billAmount, budgetAmount float64
	for _, p := range result.Schedule[0].Payments {
		switch p.Type {
		case models.PaymentTypeBill:
			billAmount += p.Amount
		case models.PaymentTypeBudget:
			budgetAmount += p.Amount
		}
	}
	if !approx(billAmount, 80) {
		t.Errorf("Expected the bill fully funded (80), got %f", billAmount)
	}
	if !approx(budgetAmount, 20) {
		t.Errorf("Expected the budget category to get the leftover 20, got %f", budgetAmount)
	}

	var budgetShortfall float64
	for _, u := range result.Unassigned {
		if u.Type == models.PaymentTypeBudget && u.DueDate.Equal(date(2026, time.January, 5)) {
			budgetShortfall = u.Amount
		}
	}
	if !approx(budgetShortfall, 60) {
		t.Errorf("Expected budget shortfall 60, got %f", budgetShortfall)
	}
}

// Budget categories never spread across more than two paychecks; bills
// use as many eligible paychecks as they need.
func TestScheduleSplitCap(t *testing.T) {
	asOf := date(2026, time.January, 1)
	newPeriods := func() []models.PaycheckPeriod {
		return []models.PaycheckPeriod{
			testPeriod("pc1", date(2026, time.January, 5), 100),
			testPeriod("pc2", date(2026, time.January, 10), 150),
			testPeriod("pc3", date(2026, time.January, 15), 120),
		}
	}

	categories := []models.BudgetCategory{{ID: "c1", Name: "Household", MonthlyAmount: 500, DueDate: 20}}
	result := Schedule(newPeriods(), nil, nil, categories, "", 0, asOf)

	var parts []models.PaymentScheduleItem
	for _, period := range result.Schedule {
		for _, p := range period.Payments {
			if p.DueDate.Equal(date(2026, time.January, 20)) {
				parts = append(parts, p)
			}
		}
	}
	if len(parts) != 2 {
		t.Fatalf("Expected a budget item capped at 2 parts, got %d", len(parts))
	}
	if !approx(parts[0].Amount+parts[1].Amount, 270) {
		t.Errorf("Expected 270 assigned across the two largest paychecks, got %f",
			parts[0].Amount+parts[1].Amount)
	}
	for _, p := range parts {
		if !p.IsSplit || p.SplitPart == "" {
			t.Errorf("Expected split metadata on part, got %+v", p)
		}
	}

	bills := []models.Bill{{ID: "b1", Company: "Roof repair", Amount: 500, DueDate: 20}}
	result = Schedule(newPeriods(), bills, nil, nil, "", 0, asOf)

	parts = nil
	for _, period := range result.Schedule {
		for _, p := range period.Payments {
			if p.DueDate.Equal(date(2026, time.January, 20)) {
				parts = append(parts, p)
			}
		}
	}
	if len(parts) != 3 {
		t.Fatalf("Expected an oversized bill to use all 3 paychecks, got %d parts", len(parts))
	}
	var total float64
	for _, p := range parts {
		total += p.Amount
	}
	if !approx(total, 370) {
		t.Errorf("Expected 370 assigned across all paychecks, got %f", total)
	}
}

// The sum of assigned parts plus the unassigned remainder equals the
// original obligation amount.
func TestScheduleNoDoubleFunding(t *testing.T) {
	asOf := date(2026, time.January, 1)
	periods := []models.PaycheckPeriod{
		testPeriod("pc1", date(2026, time.January, 5), 100),
		testPeriod("pc2", date(2026, time.January, 10), 150),
		testPeriod("pc3", date(2026, time.January, 15), 120),
	}
	bills := []models.Bill{{ID: "b1", Company: "Roof repair", Amount: 500, DueDate: 20}}

	result := Schedule(periods, bills, nil, nil, "", 0, asOf)

	due := date(2026, time.January, 20)
	var assigned, unassigned float64
	for _, period := range result.Schedule {
		for _, p := range period.Payments {
			if p.DueDate.Equal(due) {
				assigned += p.Amount
			}
		}
	}
	for _, u := range result.Unassigned {
		if u.DueDate.Equal(due) {
			unassigned += u.Amount
		}
	}
	if !approx(assigned+unassigned, 500) {
		t.Errorf("Expected assigned (%f) + unassigned (%f) to equal 500", assigned, unassigned)
	}
}

// A paycheck dated before the scheduling run still funds a cycle whose
// window it falls inside; the window is never clamped to "today".
func TestScheduleWindowNotClampedToToday(t *testing.T) {
	asOf := date(2026, time.January, 1)
	periods := []models.PaycheckPeriod{
		testPeriod("pc1", date(2025, time.December, 20), 2000),
	}
	bills := []models.Bill{{ID: "b1", Company: "Water", Amount: 100, DueDate: 15}}

	result := Schedule(periods, bills, nil, nil, "", 0, asOf)

	period := result.Schedule[0]
	if len(period.Payments) != 1 {
		t.Fatalf("Expected the December paycheck to fund the January cycle, got %d payments", len(period.Payments))
	}
	payment := period.Payments[0]
	if !payment.DueDate.Equal(date(2026, time.January, 15)) {
		t.Errorf("Expected due date 2026-01-15, got %v", payment.DueDate)
	}
	if payment.Status != models.PaymentStatusEarly {
		t.Errorf("Expected status early for a paycheck 26 days ahead, got %s", payment.Status)
	}

	// December 20 sits outside [Jan 15, Feb 15] and [Feb 15, Mar 15].
	for _, u := range result.Unassigned {
		if !approx(u.Amount, 100) {
			t.Errorf("Expected later cycles fully unassigned, got %f", u.Amount)
		}
	}
	if len(result.Unassigned) != 2 {
		t.Errorf("Expected 2 unassigned later cycles, got %d", len(result.Unassigned))
	}
}

func TestStatusBoundaries(t *testing.T) {
	due := date(2026, time.January, 10)
	testCases := []struct {
		name     string
		paycheck time.Time
		expected models.PaymentStatus
	}{
		{"Same day", date(2026, time.January, 10), models.PaymentStatusOnTime},
		{"One day after due", date(2026, time.January, 11), models.PaymentStatusLate},
		{"Five days before due", date(2026, time.January, 5), models.PaymentStatusOnTime},
		{"Six days before due", date(2026, time.January, 4), models.PaymentStatusEarly},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusFor(due, tc.paycheck); got != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestFocusDebtSelection(t *testing.T) {
	debts := []models.Debt{
		{ID: "A", Name: "Car loan", InterestRate: 5, CurrentBalance: 200},
		{ID: "B", Name: "Credit card", InterestRate: 9, CurrentBalance: 1000},
		{ID: "C", Name: "Paid off", InterestRate: 50, CurrentBalance: 0},
	}

	if focus := focusDebt(debts, models.StrategyAvalanche); focus == nil || focus.ID != "B" {
		t.Errorf("Avalanche should pick the highest rate with a balance, got %+v", focus)
	}
	if focus := focusDebt(debts, models.StrategySnowball); focus == nil || focus.ID != "A" {
		t.Errorf("Snowball should pick the lowest balance, got %+v", focus)
	}
	if focus := focusDebt(debts, "custom"); focus != nil {
		t.Errorf("Unknown strategy should have no focus debt, got %+v", focus)
	}
	if focus := focusDebt(nil, models.StrategyAvalanche); focus != nil {
		t.Errorf("No debts should mean no focus debt, got %+v", focus)
	}
}

// The focus debt gets both its minimum payment and a separate extra
// payment entry in the same cycle.
func TestScheduleExtraPaymentOverlay(t *testing.T) {
	asOf := date(2026, time.January, 1)
	periods := []models.PaycheckPeriod{
		testPeriod("pc1", date(2026, time.January, 5), 1000),
	}
	debts := []models.Debt{
		{ID: "d1", Name: "Credit card", MinimumPayment: 100, PaymentDay: 10, CurrentBalance: 5000, InterestRate: 22},
	}

	result := Schedule(periods, nil, debts, nil, models.StrategyAvalanche, 200, asOf)

	period := result.Schedule[0]
	var minimum, extra *models.PaymentScheduleItem
	for i := range period.Payments {
		p := &period.Payments[i]
		switch p.Type {
		case models.PaymentTypeDebt:
			minimum = p
		case models.PaymentTypeExtraDebt:
			extra = p
		}
	}
	if minimum == nil || !approx(minimum.Amount, 100) {
		t.Fatalf("Expected the minimum payment entry of 100, got %+v", minimum)
	}
	if extra == nil || !approx(extra.Amount, 200) {
		t.Fatalf("Expected the extra payment entry of 200, got %+v", extra)
	}
	if !extra.IsFocusDebt {
		t.Error("Expected the extra entry to be flagged as focus debt")
	}
	if extra.Status != models.PaymentStatusOnTime {
		t.Errorf("Expected on-time status for a paycheck 5 days ahead, got %s", extra.Status)
	}
	if !approx(period.Remaining, 700) {
		t.Errorf("Expected remaining 700, got %f", period.Remaining)
	}

	// Later extra occurrences have no eligible paycheck and disappear
	// silently; only the minimum-payment cycles show up as unassigned.
	for _, u := range result.Unassigned {
		if u.Type == models.PaymentTypeExtraDebt {
			t.Errorf("Extra payments must never appear in unassigned, got %+v", u)
		}
	}
}

// An extra payment too big for any single paycheck splits across all
// eligible paychecks and drops the rest without reporting it.
func TestScheduleExtraPaymentSilentDrop(t *testing.T) {
	asOf := date(2026, time.January, 1)
	periods := []models.PaycheckPeriod{
		testPeriod("pc1", date(2026, time.January, 3), 250),
		testPeriod("pc2", date(2026, time.January, 7), 200),
	}
	debts := []models.Debt{
		{ID: "d1", Name: "Credit card", MinimumPayment: 100, PaymentDay: 10, CurrentBalance: 1000, InterestRate: 5},
	}

	result := Schedule(periods, nil, debts, nil, models.StrategyAvalanche, 500, asOf)

	var extraTotal float64
	for _, period := range result.Schedule {
		for _, p := range period.Payments {
			if p.Type == models.PaymentTypeExtraDebt {
				extraTotal += p.Amount
				if !p.IsSplit {
					t.Errorf("Expected split extra parts, got %+v", p)
				}
			}
		}
		if period.Remaining < -tolerance {
			t.Errorf("Period %s overdrawn: %f", period.PaycheckID, period.Remaining)
		}
	}
	// 100 minimum leaves 150+200 of capacity; 350 of the 500 is placed.
	if !approx(extraTotal, 350) {
		t.Errorf("Expected 350 of extra payment placed, got %f", extraTotal)
	}
	for _, u := range result.Unassigned {
		if u.Type == models.PaymentTypeExtraDebt {
			t.Errorf("Dropped extra remainder must not be reported, got %+v", u)
		}
	}
}

// Conservation: every period keeps TotalIncome == TotalPayments + Remaining
// and TotalPayments equals the sum of its items.
func TestScheduleConservation(t *testing.T) {
	asOf := date(2026, time.January, 1)
	periods := []models.PaycheckPeriod{
		testPeriod("pc1", date(2026, time.January, 1), 1500),
		testPeriod("pc2", date(2026, time.January, 15), 1500),
		testPeriod("pc3", date(2026, time.February, 1), 1500),
	}
	bills := []models.Bill{
		{ID: "b1", Company: "Electric", Amount: 120, DueDate: 18},
		{ID: "b2", Company: "Mortgage", Amount: 1800, DueDate: 1},
	}
	debts := []models.Debt{
		{ID: "d1", Name: "Credit card", MinimumPayment: 75, PaymentDay: 25, CurrentBalance: 2400, InterestRate: 22},
		{ID: "d2", Name: "Car loan", MinimumPayment: 150, PaymentDay: 5, CurrentBalance: 8000, InterestRate: 6},
	}
	categories := []models.BudgetCategory{
		{ID: "c1", Name: "Groceries", MonthlyAmount: 400, DueDate: 10},
		{ID: "c2", Name: "Fun money", MonthlyAmount: 150, DueDate: 28},
	}

	result := Schedule(periods, bills, debts, categories, models.StrategySnowball, 250, asOf)

	for _, period := range result.Schedule {
		if !approx(period.TotalIncome, period.TotalPayments+period.Remaining) {
			t.Errorf("Period %s violates conservation: income %f, payments %f, remaining %f",
				period.PaycheckID, period.TotalIncome, period.TotalPayments, period.Remaining)
		}
		var sum float64
		for _, p := range period.Payments {
			if p.Amount <= 0 {
				t.Errorf("Period %s has non-positive payment %+v", period.PaycheckID, p)
			}
			sum += p.Amount
		}
		if !approx(sum, period.TotalPayments) {
			t.Errorf("Period %s: item sum %f != totalPayments %f", period.PaycheckID, sum, period.TotalPayments)
		}
		if period.Remaining < -tolerance {
			t.Errorf("Period %s overdrawn: %f", period.PaycheckID, period.Remaining)
		}
		for i := 1; i < len(period.Payments); i++ {
			if period.Payments[i].DueDate.Before(period.Payments[i-1].DueDate) {
				t.Errorf("Period %s payments not sorted by due date", period.PaycheckID)
			}
		}
	}
	for _, u := range result.Unassigned {
		if u.Amount <= 0 {
			t.Errorf("Non-positive unassigned amount %+v", u)
		}
		if u.DueDate.Before(asOf) {
			t.Errorf("Past-due unassigned entry should have been filtered: %+v", u)
		}
	}
}

// Schedule never touches the caller's periods and is reproducible.
func TestScheduleDoesNotMutateInputs(t *testing.T) {
	asOf := date(2026, time.January, 1)
	periods := []models.PaycheckPeriod{
		testPeriod("pc1", date(2026, time.January, 5), 1000),
		testPeriod("pc2", date(2026, time.January, 20), 800),
	}
	bills := []models.Bill{{ID: "b1", Company: "Electric", Amount: 120, DueDate: 18}}
	debts := []models.Debt{
		{ID: "d1", Name: "Credit card", MinimumPayment: 50, PaymentDay: 10, CurrentBalance: 900, InterestRate: 19},
	}

	first := Schedule(periods, bills, debts, nil, models.StrategyAvalanche, 100, asOf)

	for i, period := range periods {
		if period.TotalPayments != 0 || period.Remaining != period.TotalIncome {
			t.Errorf("Input period %d was mutated: %+v", i, period)
		}
		if len(period.Payments) != 0 {
			t.Errorf("Input period %d gained payments: %d", i, len(period.Payments))
		}
	}

	second := Schedule(periods, bills, debts, nil, models.StrategyAvalanche, 100, asOf)
	if len(first.Schedule) != len(second.Schedule) {
		t.Fatalf("Run lengths differ: %d vs %d", len(first.Schedule), len(second.Schedule))
	}
	for i := range first.Schedule {
		a, b := first.Schedule[i], second.Schedule[i]
		if !approx(a.TotalPayments, b.TotalPayments) || len(a.Payments) != len(b.Payments) {
			t.Errorf("Runs disagree on period %s: %f/%d vs %f/%d",
				a.PaycheckID, a.TotalPayments, len(a.Payments), b.TotalPayments, len(b.Payments))
		}
	}
	if len(first.Unassigned) != len(second.Unassigned) {
		t.Errorf("Runs disagree on unassigned count: %d vs %d",
			len(first.Unassigned), len(second.Unassigned))
	}
}

// Non-split payments land on paychecks inside the billing-cycle window.
func TestScheduleWindowCorrectness(t *testing.T) {
	asOf := date(2026, time.January, 1)
	periods := []models.PaycheckPeriod{
		testPeriod("pc1", date(2026, time.January, 2), 500),
		testPeriod("pc2", date(2026, time.January, 28), 500),
		testPeriod("pc3", date(2026, time.February, 12), 500),
	}
	bills := []models.Bill{{ID: "b1", Company: "Gym", Amount: 60, DueDate: 15}}

	result := Schedule(periods, bills, nil, nil, "", 0, asOf)

	for _, period := range result.Schedule {
		for _, p := range period.Payments {
			start := cycleStart(p.DueDate, 15)
			pcDate := dateOnly(period.PaycheckDate)
			if pcDate.Before(start) || pcDate.After(p.DueDate) {
				t.Errorf("Payment due %v assigned to paycheck %v outside window [%v, %v]",
					p.DueDate, pcDate, start, p.DueDate)
			}
		}
	}
	// Jan 15 cycle -> pc1; Feb 15 cycle -> pc2 or pc3 (both inside
	// [Jan 15, Feb 15]); Mar 15 cycle has no paycheck in [Feb 15, Mar 15].
	if len(result.Unassigned) != 1 {
		t.Fatalf("Expected exactly the March cycle unassigned, got %v", result.Unassigned)
	}
	if !result.Unassigned[0].DueDate.Equal(date(2026, time.March, 15)) {
		t.Errorf("Expected March 15 unassigned, got %v", result.Unassigned[0].DueDate)
	}
}
