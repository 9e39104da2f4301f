package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"handleyourhouse/backend/middleware"
	"handleyourhouse/backend/models"
	"handleyourhouse/backend/services"

	"github.com/sirupsen/logrus"
)

// GetSchedule builds the payment schedule for the authenticated user.
// Query params: strategy (avalanche or snowball, default avalanche),
// extraPayment (overrides the per-debt extra amounts), asOf (YYYY-MM-DD,
// defaults to today).
func GetSchedule(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	strategy := r.URL.Query().Get("strategy")
	if strategy == "" {
		strategy = models.StrategyAvalanche
	}

	var extraPayment *float64
	if raw := r.URL.Query().Get("extraPayment"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			http.Error(w, "extraPayment must be a non-negative number", http.StatusBadRequest)
			return
		}
		extraPayment = &v
	}

	asOf := time.Now()
	if raw := r.URL.Query().Get("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			http.Error(w, "asOf must be formatted as YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		asOf = parsed
	}

	result, err := services.GenerateSchedule(userID, strategy, extraPayment, asOf)
	if err != nil {
		logrus.Errorf("Error generating schedule for user %s: %v", userID, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
