package services

import (
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"handleyourhouse/backend/database"
	"handleyourhouse/backend/models"
)

// StartReminderScheduler kicks off the daily reminder job. The returned
// cron can be stopped on shutdown.
func StartReminderScheduler() (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc("0 6 * * *", RunPaymentReminders); err != nil {
		return nil, err
	}
	c.Start()
	logrus.Info("Reminder scheduler started (daily at 06:00)")
	return c, nil
}

// RunPaymentReminders recomputes every household member's payment schedule
// and logs what needs attention: payments whose funding paycheck arrives
// after the due date, and obligations no paycheck can cover.
func RunPaymentReminders() {
	userIDs, err := fetchUserIDs()
	if err != nil {
		logrus.Errorf("Failed to list users for reminders: %v", err)
		return
	}

	strategy := os.Getenv("DEBT_STRATEGY")
	if strategy == "" {
		strategy = models.StrategyAvalanche
	}

	now := time.Now()
	for _, userID := range userIDs {
		result, err := GenerateSchedule(userID, strategy, nil, now)
		if err != nil {
			logrus.Errorf("Failed to generate schedule for user %s: %v", userID, err)
			continue
		}

		late := 0
		for _, period := range result.Schedule {
			for _, p := range period.Payments {
				if p.Status == models.PaymentStatusLate {
					late++
				}
			}
		}
		if late > 0 || len(result.Unassigned) > 0 {
			logrus.Warnf("User %s: %d late payments, %d unfunded obligations over the next 3 months",
				userID, late, len(result.Unassigned))
		}
	}
}

func fetchUserIDs() ([]string, error) {
	rows, err := database.DB.Query("SELECT id FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
