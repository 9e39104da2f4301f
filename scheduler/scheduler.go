// Package scheduler assigns a household's recurring obligations to its
// upcoming paychecks. It is a pure in-memory computation: no storage, no
// clock, no goroutines. Callers pass "today" explicitly and receive fresh
// period values back; the input slice is never modified.
package scheduler

import (
	"fmt"
	"math"
	"sort"
	"time"

	"handleyourhouse/backend/models"
)

// epsilon treats near-zero remainders as fully paid so floating point
// noise cannot produce micro-splits or negative capacity.
const epsilon = 0.01

// horizonMonths bounds obligation expansion to the next three months.
const horizonMonths = 3

// budgetSplitCap limits discretionary items to at most two paychecks.
const budgetSplitCap = 2

// earlyThresholdDays: a paycheck arriving more than this many days before
// the due date is flagged "early".
const earlyThresholdDays = 5

// priority orders funding: fixed obligations (bills, debts) claim paycheck
// capacity before discretionary budget categories.
type priority int

const (
	priorityFixed priority = iota + 1
	priorityDiscretionary
)

// pendingPayment is one obligation instance for one monthly billing cycle.
type pendingPayment struct {
	id         string
	name       string
	amount     float64
	dueDate    time.Time
	cycleStart time.Time
	payType    models.PaymentType
	priority   priority
}

// splitPart is a planned partial payment against one period.
type splitPart struct {
	period *models.PaycheckPeriod
	amount float64
}

// Schedule produces a payment plan assigning bills, debt minimums, and
// budget categories to the paychecks able to fund them, then overlays the
// household extra payment onto the focus debt chosen by strategy.
//
// The input periods must be initialized with Remaining == TotalIncome and
// an empty Payments list. They are deep-copied before any assignment, so
// the caller's slice is left untouched and repeated calls with the same
// inputs yield the same result.
func Schedule(periods []models.PaycheckPeriod, bills []models.Bill, debts []models.Debt, categories []models.BudgetCategory, strategy string, extraPayment float64, asOf time.Time) models.ScheduleResult {
	result := models.ScheduleResult{
		Schedule:   []models.PaycheckPeriod{},
		Unassigned: []models.UnassignedPayment{},
	}
	if len(periods) == 0 {
		return result
	}

	today := dateOnly(asOf)
	horizon := today.AddDate(0, horizonMonths, 0)

	schedule := clonePeriods(periods)
	pending := expandObligations(bills, debts, categories, today, horizon)

	// Fixed obligations first, then by due date. This ordering decides who
	// gets first claim on scarce paycheck capacity.
	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].priority != pending[j].priority {
			return pending[i].priority < pending[j].priority
		}
		return pending[i].dueDate.Before(pending[j].dueDate)
	})

	var unassigned []models.UnassignedPayment
	for _, p := range pending {
		unassigned = assignPayment(schedule, p, unassigned)
	}

	if extraPayment > 0 {
		applyExtraPayments(schedule, debts, strategy, extraPayment, today, horizon)
	}

	for i := range schedule {
		payments := schedule[i].Payments
		sort.SliceStable(payments, func(a, b int) bool {
			return payments[a].DueDate.Before(payments[b].DueDate)
		})
	}

	for _, u := range unassigned {
		// An obligation whose cycle already lapsed by the time scheduling
		// ran is not surfaced.
		if u.DueDate.Before(today) {
			continue
		}
		result.Unassigned = append(result.Unassigned, u)
	}
	result.Schedule = schedule
	return result
}

// clonePeriods copies the caller's accumulators, including their payment
// lists, so the run cannot alias caller state.
func clonePeriods(periods []models.PaycheckPeriod) []models.PaycheckPeriod {
	out := make([]models.PaycheckPeriod, len(periods))
	copy(out, periods)
	for i := range out {
		out[i].Payments = append([]models.PaymentScheduleItem(nil), periods[i].Payments...)
	}
	return out
}

// expandObligations generates one pendingPayment per obligation per monthly
// occurrence inside the horizon, starting from the next occurrence of its
// day-of-month on or after asOf.
func expandObligations(bills []models.Bill, debts []models.Debt, categories []models.BudgetCategory, asOf, horizon time.Time) []pendingPayment {
	var pending []pendingPayment
	for _, b := range bills {
		for _, due := range occurrences(b.DueDate, asOf, horizon) {
			pending = append(pending, pendingPayment{
				id:         b.ID,
				name:       b.Company,
				amount:     b.Amount,
				dueDate:    due,
				cycleStart: cycleStart(due, b.DueDate),
				payType:    models.PaymentTypeBill,
				priority:   priorityFixed,
			})
		}
	}
	for _, d := range debts {
		for _, due := range occurrences(d.PaymentDay, asOf, horizon) {
			pending = append(pending, pendingPayment{
				id:         d.ID,
				name:       d.Name,
				amount:     d.MinimumPayment,
				dueDate:    due,
				cycleStart: cycleStart(due, d.PaymentDay),
				payType:    models.PaymentTypeDebt,
				priority:   priorityFixed,
			})
		}
	}
	for _, c := range categories {
		for _, due := range occurrences(c.DueDate, asOf, horizon) {
			pending = append(pending, pendingPayment{
				id:         c.ID,
				name:       c.Name,
				amount:     c.MonthlyAmount,
				dueDate:    due,
				cycleStart: cycleStart(due, c.DueDate),
				payType:    models.PaymentTypeBudget,
				priority:   priorityDiscretionary,
			})
		}
	}
	return pending
}

// assignPayment places one obligation instance into the paychecks whose
// dates fall inside its billing-cycle window, splitting when allowed, and
// records any unfunded remainder.
func assignPayment(schedule []models.PaycheckPeriod, p pendingPayment, unassigned []models.UnassignedPayment) []models.UnassignedPayment {
	eligible := eligiblePeriods(schedule, p.cycleStart, p.dueDate)
	if len(eligible) == 0 {
		return append(unassigned, unassignedFrom(p, p.amount))
	}

	maxSinglePaycheck := 0.0
	for _, per := range eligible {
		if per.TotalIncome > maxSinglePaycheck {
			maxSinglePaycheck = per.TotalIncome
		}
	}

	// Budget categories are always split-eligible; bills and debts split
	// only when no paycheck could ever cover them whole.
	needsSplit := p.payType == models.PaymentTypeBudget || p.amount > maxSinglePaycheck

	if !needsSplit {
		sort.SliceStable(eligible, func(i, j int) bool {
			coverI := eligible[i].Remaining >= p.amount-epsilon
			coverJ := eligible[j].Remaining >= p.amount-epsilon
			if coverI != coverJ {
				return coverI
			}
			return eligible[i].Remaining > eligible[j].Remaining
		})
		for _, per := range eligible {
			if per.Remaining >= p.amount-epsilon {
				applyPayment(per, models.PaymentScheduleItem{
					ID:      p.id,
					Name:    p.name,
					Amount:  p.amount,
					DueDate: p.dueDate,
					Type:    p.payType,
					Status:  statusFor(p.dueDate, per.PaycheckDate),
				})
				return unassigned
			}
		}
		return append(unassigned, unassignedFrom(p, p.amount))
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Remaining > eligible[j].Remaining
	})
	var candidates []*models.PaycheckPeriod
	for _, per := range eligible {
		if per.Remaining > epsilon {
			candidates = append(candidates, per)
		}
	}
	if p.payType == models.PaymentTypeBudget && len(candidates) > budgetSplitCap {
		candidates = candidates[:budgetSplitCap]
	}

	parts, needed := planSplit(candidates, p.amount)
	for i, part := range parts {
		applyPayment(part.period, models.PaymentScheduleItem{
			ID:        p.id,
			Name:      p.name,
			Amount:    part.amount,
			DueDate:   p.dueDate,
			Type:      p.payType,
			Status:    statusFor(p.dueDate, part.period.PaycheckDate),
			IsSplit:   true,
			SplitPart: fmt.Sprintf("%d/%d", i+1, len(parts)),
		})
	}
	if needed > epsilon {
		unassigned = append(unassigned, unassignedFrom(p, needed))
	}
	return unassigned
}

// applyExtraPayments overlays the household extra payment onto the focus
// debt, one entry per monthly occurrence, independent of the debt's
// regular minimum-payment instances. An occurrence that cannot be fully
// placed spills greedily across eligible paychecks and the uncovered
// remainder is dropped without an unassigned entry.
func applyExtraPayments(schedule []models.PaycheckPeriod, debts []models.Debt, strategy string, extraPayment float64, asOf, horizon time.Time) {
	focus := focusDebt(debts, strategy)
	if focus == nil {
		return
	}

	for _, due := range occurrences(focus.PaymentDay, asOf, horizon) {
		eligible := eligiblePeriods(schedule, cycleStart(due, focus.PaymentDay), due)
		if len(eligible) == 0 {
			continue
		}
		sort.SliceStable(eligible, func(i, j int) bool {
			return eligible[i].Remaining > eligible[j].Remaining
		})

		item := models.PaymentScheduleItem{
			ID:          focus.ID,
			Name:        fmt.Sprintf("%s (extra)", focus.Name),
			Amount:      extraPayment,
			DueDate:     due,
			Type:        models.PaymentTypeExtraDebt,
			IsFocusDebt: true,
		}

		placed := false
		for _, per := range eligible {
			if per.Remaining >= extraPayment-epsilon {
				item.Status = statusFor(due, per.PaycheckDate)
				applyPayment(per, item)
				placed = true
				break
			}
		}
		if placed {
			continue
		}

		var candidates []*models.PaycheckPeriod
		for _, per := range eligible {
			if per.Remaining > epsilon {
				candidates = append(candidates, per)
			}
		}
		parts, _ := planSplit(candidates, extraPayment)
		for i, part := range parts {
			split := item
			split.Amount = part.amount
			split.Status = statusFor(due, part.period.PaycheckDate)
			split.IsSplit = true
			split.SplitPart = fmt.Sprintf("%d/%d", i+1, len(parts))
			applyPayment(part.period, split)
		}
	}
}

// focusDebt picks the debt the extra payment targets: highest interest
// rate for avalanche, lowest balance for snowball, among debts still
// carrying a balance. Ties keep the earlier debt. Unknown strategies have
// no focus debt.
func focusDebt(debts []models.Debt, strategy string) *models.Debt {
	var focus *models.Debt
	for i := range debts {
		d := &debts[i]
		if d.CurrentBalance <= 0 {
			continue
		}
		switch strategy {
		case models.StrategyAvalanche:
			if focus == nil || d.InterestRate > focus.InterestRate {
				focus = d
			}
		case models.StrategySnowball:
			if focus == nil || d.CurrentBalance < focus.CurrentBalance {
				focus = d
			}
		default:
			return nil
		}
	}
	return focus
}

// eligiblePeriods returns pointers to the periods whose paycheck date lies
// inside [start, due], inclusive on both ends.
func eligiblePeriods(schedule []models.PaycheckPeriod, start, due time.Time) []*models.PaycheckPeriod {
	var out []*models.PaycheckPeriod
	for i := range schedule {
		date := dateOnly(schedule[i].PaycheckDate)
		if !date.Before(start) && !date.After(due) {
			out = append(out, &schedule[i])
		}
	}
	return out
}

// planSplit greedily consumes candidate capacity in order and returns the
// planned parts plus whatever amount could not be covered. Planning before
// applying lets split parts carry their true part count.
func planSplit(candidates []*models.PaycheckPeriod, amount float64) ([]splitPart, float64) {
	var parts []splitPart
	needed := amount
	for _, per := range candidates {
		if needed <= epsilon {
			break
		}
		pay := math.Min(needed, per.Remaining)
		if pay <= 0 {
			continue
		}
		parts = append(parts, splitPart{period: per, amount: pay})
		needed -= pay
	}
	return parts, needed
}

// applyPayment is the single mutation point for a period. It keeps the
// invariant Remaining == TotalIncome - TotalPayments.
func applyPayment(p *models.PaycheckPeriod, item models.PaymentScheduleItem) {
	p.TotalPayments += item.Amount
	p.Remaining = p.TotalIncome - p.TotalPayments
	p.Payments = append(p.Payments, item)
}

// statusFor classifies how the funding paycheck relates to the due date.
func statusFor(due, paycheckDate time.Time) models.PaymentStatus {
	days := int(due.Sub(dateOnly(paycheckDate)).Hours() / 24)
	switch {
	case days < 0:
		return models.PaymentStatusLate
	case days > earlyThresholdDays:
		return models.PaymentStatusEarly
	default:
		return models.PaymentStatusOnTime
	}
}

func unassignedFrom(p pendingPayment, amount float64) models.UnassignedPayment {
	return models.UnassignedPayment{
		ID:      p.id,
		Name:    p.name,
		Amount:  amount,
		DueDate: p.dueDate,
		Type:    p.payType,
	}
}
