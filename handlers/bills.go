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

func GetBills(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rows, err := database.DB.Query(
		"SELECT id, company, amount, due_date FROM bills WHERE user_id = ? ORDER BY due_date",
		userID)
	if err != nil {
		logrus.Errorf("Error querying bills: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(&b.ID, &b.Company, &b.Amount, &b.DueDate); err != nil {
			logrus.Errorf("Error scanning bill: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		b.UserID = userID
		bills = append(bills, b)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bills)
}

func AddBill(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var b models.Bill
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if b.DueDate < 1 || b.DueDate > 31 {
		http.Error(w, "due_date must be a day of month between 1 and 31", http.StatusBadRequest)
		return
	}

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.UserID = userID

	_, err := database.DB.Exec(
		"INSERT INTO bills (id, company, amount, due_date, user_id) VALUES (?, ?, ?, ?, ?)",
		b.ID, b.Company, b.Amount, b.DueDate, b.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

func UpdateBill(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	var b models.Bill
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if b.DueDate < 1 || b.DueDate > 31 {
		http.Error(w, "due_date must be a day of month between 1 and 31", http.StatusBadRequest)
		return
	}

	_, err := database.DB.Exec(
		"UPDATE bills SET company = ?, amount = ?, due_date = ? WHERE id = ? AND user_id = ?",
		b.Company, b.Amount, b.DueDate, id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteBill(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	_, err := database.DB.Exec("DELETE FROM bills WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
