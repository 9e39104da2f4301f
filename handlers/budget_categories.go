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

func GetBudgetCategories(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rows, err := database.DB.Query(
		"SELECT id, name, monthly_amount, due_date FROM budget_categories WHERE user_id = ? ORDER BY name",
		userID)
	if err != nil {
		logrus.Errorf("Error querying budget categories: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var categories []models.BudgetCategory
	for rows.Next() {
		var c models.BudgetCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.MonthlyAmount, &c.DueDate); err != nil {
			logrus.Errorf("Error scanning budget category: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		c.UserID = userID
		categories = append(categories, c)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(categories)
}

func AddBudgetCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var c models.BudgetCategory
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if c.DueDate < 1 || c.DueDate > 31 {
		http.Error(w, "due_date must be a day of month between 1 and 31", http.StatusBadRequest)
		return
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.UserID = userID

	_, err := database.DB.Exec(
		"INSERT INTO budget_categories (id, name, monthly_amount, due_date, user_id) VALUES (?, ?, ?, ?, ?)",
		c.ID, c.Name, c.MonthlyAmount, c.DueDate, c.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

func UpdateBudgetCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	var c models.BudgetCategory
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if c.DueDate < 1 || c.DueDate > 31 {
		http.Error(w, "due_date must be a day of month between 1 and 31", http.StatusBadRequest)
		return
	}

	_, err := database.DB.Exec(
		"UPDATE budget_categories SET name = ?, monthly_amount = ?, due_date = ? WHERE id = ? AND user_id = ?",
		c.Name, c.MonthlyAmount, c.DueDate, id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteBudgetCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	_, err := database.DB.Exec("DELETE FROM budget_categories WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
