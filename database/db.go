package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

func InitDB() error {
	var dbPath string
	if os.Getenv("FLY_APP_NAME") != "" {
		// We're running on Fly.io, use the mounted volume
		dbPath = filepath.Join("/data", "household.db")
	} else if os.Getenv("TEST_DB") == "1" {
		// We're running tests, use in-memory database
		dbPath = ":memory:"
	} else {
		// Local development
		dbPath = "./household.db"
	}

	var err error
	// Add connection parameters to better handle concurrency
	dsn := dbPath + "?_journal=WAL&_timeout=10000&_busy_timeout=10000"
	DB, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(5)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(time.Minute * 5)

	_, err = DB.Exec("PRAGMA journal_mode=WAL;")
	if err != nil {
		return err
	}

	_, err = DB.Exec("PRAGMA busy_timeout=5000;")
	if err != nil {
		return err
	}

	err = DB.Ping()
	if err != nil {
		return err
	}

	return createTables(DB)
}

// createTables creates the household schema. Amounts are stored as REAL;
// due days are plain day-of-month integers, the scheduler handles months
// shorter than the requested day.
func createTables(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS bills (
			id TEXT PRIMARY KEY,
			company TEXT NOT NULL,
			amount REAL NOT NULL,
			due_date INTEGER NOT NULL,
			user_id TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS debts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			minimum_payment REAL NOT NULL,
			payment_day INTEGER NOT NULL,
			current_balance REAL NOT NULL,
			interest_rate REAL NOT NULL,
			extra_payment REAL NOT NULL DEFAULT 0,
			user_id TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS budget_categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			monthly_amount REAL NOT NULL,
			due_date INTEGER NOT NULL,
			user_id TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS paychecks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			date DATETIME NOT NULL,
			amount REAL NOT NULL,
			user_id TEXT NOT NULL
		);`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func SeedDefaultUsers() error {
	// Check if users exist
	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return err
	}

	if count == 0 {
		defaultUsers := []struct {
			id       string
			username string
			name     string
		}{
			{id: "1", username: "jamie", name: "Jamie"},
			{id: "2", username: "morgan", name: "Morgan"},
		}

		for _, user := range defaultUsers {
			_, err := DB.Exec("INSERT INTO users (id, username, name) VALUES (?, ?, ?)",
				user.id, user.username, user.name)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
