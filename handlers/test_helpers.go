package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"

	"handleyourhouse/backend/database"
	"handleyourhouse/backend/middleware"

	_ "github.com/mattn/go-sqlite3"
)

// Define a constant for the test user ID that can be used across all tests
const TestUserID = "test-user-id"

// SetupTestAuth adds authentication context to the request
func SetupTestAuth(req *http.Request) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, TestUserID)
	return req.WithContext(ctx)
}

// SetupTestDB initializes an in-memory test database with the tables
// needed by handler tests and a seeded test user.
func SetupTestDB() {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		panic(err)
	}
	database.DB = db

	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bills (
			id TEXT PRIMARY KEY,
			company TEXT NOT NULL,
			amount REAL NOT NULL,
			due_date INTEGER NOT NULL,
			user_id TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS debts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			minimum_payment REAL NOT NULL,
			payment_day INTEGER NOT NULL,
			current_balance REAL NOT NULL,
			interest_rate REAL NOT NULL,
			extra_payment REAL NOT NULL DEFAULT 0,
			user_id TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS budget_categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			monthly_amount REAL NOT NULL,
			due_date INTEGER NOT NULL,
			user_id TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS paychecks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			date TIMESTAMP NOT NULL,
			amount REAL NOT NULL,
			user_id TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}

	_, err = db.Exec(
		"INSERT INTO users (id, username, name) VALUES (?, ?, ?)",
		TestUserID, "testuser", "Test User")
	if err != nil {
		panic(err)
	}
}

// CleanupTestDB closes the test database connection
func CleanupTestDB() {
	if database.DB != nil {
		database.DB.Close()
	}
}

// TestRequest creates a test request with auth context already set up
func TestRequest(method, url string, body *string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, strings.NewReader(*body))
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	return SetupTestAuth(req)
}
