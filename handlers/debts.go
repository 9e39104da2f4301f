package handlers

import (
	"encoding/json"
	"net/http"

	"handleyourhouse/backend/database"
	"handleyourhouse/backend/middleware"
	"handleyourhouse/backend/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func GetDebts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rows, err := database.DB.Query(
		`SELECT id, name, minimum_payment, payment_day, current_balance, interest_rate, extra_payment
		 FROM debts WHERE user_id = ? ORDER BY payment_day`,
		userID)
	if err != nil {
		logrus.Errorf("Error querying debts: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var debts []models.Debt
	for rows.Next() {
		var d models.Debt
		if err := rows.Scan(&d.ID, &d.Name, &d.MinimumPayment, &d.PaymentDay,
			&d.CurrentBalance, &d.InterestRate, &d.ExtraPayment); err != nil {
			logrus.Errorf("Error scanning debt: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		d.UserID = userID
		debts = append(debts, d)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(debts)
}

func AddDebt(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var d models.Debt
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if d.PaymentDay < 1 || d.PaymentDay > 31 {
		http.Error(w, "payment_day must be a day of month between 1 and 31", http.StatusBadRequest)
		return
	}

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.UserID = userID

	_, err := database.DB.Exec(
		`INSERT INTO debts (id, name, minimum_payment, payment_day, current_balance, interest_rate, extra_payment, user_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.MinimumPayment, d.PaymentDay, d.CurrentBalance, d.InterestRate, d.ExtraPayment, d.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

func UpdateDebt(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	var d models.Debt
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if d.PaymentDay < 1 || d.PaymentDay > 31 {
		http.Error(w, "payment_day must be a day of month between 1 and 31", http.StatusBadRequest)
		return
	}

	_, err := database.DB.Exec(
		`UPDATE debts SET name = ?, minimum_payment = ?, payment_day = ?, current_balance = ?,
		 interest_rate = ?, extra_payment = ? WHERE id = ? AND user_id = ?`,
		d.Name, d.MinimumPayment, d.PaymentDay, d.CurrentBalance, d.InterestRate, d.ExtraPayment, id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteDebt(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	_, err := database.DB.Exec("DELETE FROM debts WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
