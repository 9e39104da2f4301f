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

func GetPaychecks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rows, err := database.DB.Query(
		"SELECT id, name, date, amount FROM paychecks WHERE user_id = ? ORDER BY date",
		userID)
	if err != nil {
		logrus.Errorf("Error querying paychecks: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var paychecks []models.Paycheck
	for rows.Next() {
		var pc models.Paycheck
		if err := rows.Scan(&pc.ID, &pc.Name, &pc.Date, &pc.Amount); err != nil {
			logrus.Errorf("Error scanning paycheck: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		pc.UserID = userID
		paychecks = append(paychecks, pc)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(paychecks)
}

func AddPaycheck(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var pc models.Paycheck
	if err := json.NewDecoder(r.Body).Decode(&pc); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if pc.Date.IsZero() {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}

	if pc.ID == "" {
		pc.ID = uuid.NewString()
	}
	pc.UserID = userID

	_, err := database.DB.Exec(
		"INSERT INTO paychecks (id, name, date, amount, user_id) VALUES (?, ?, ?, ?, ?)",
		pc.ID, pc.Name, pc.Date, pc.Amount, pc.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pc)
}

func UpdatePaycheck(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	var pc models.Paycheck
	if err := json.NewDecoder(r.Body).Decode(&pc); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if pc.Date.IsZero() {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}

	_, err := database.DB.Exec(
		"UPDATE paychecks SET name = ?, date = ?, amount = ? WHERE id = ? AND user_id = ?",
		pc.Name, pc.Date, pc.Amount, id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeletePaycheck(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	_, err := database.DB.Exec("DELETE FROM paychecks WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
