package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"handleyourhouse/backend/database"
	"handleyourhouse/backend/handlers"
	"handleyourhouse/backend/middleware"
	"handleyourhouse/backend/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func main() {
	noReminders := flag.Bool("no-reminders", false, "Don't start the daily payment reminder job")
	flag.Parse()

	services.LoadEnvVariables()
	configureLogging()

	isDevelopment := os.Getenv("APP_ENV") != "production" &&
		os.Getenv("ENVIRONMENT") != "production" &&
		os.Getenv("ENV") != "production"
	if isDevelopment {
		logrus.Info("Running in development environment")
	}

	// Initialize database
	if err := database.InitDB(); err != nil {
		logrus.Fatal(err)
	}
	if err := database.SeedDefaultUsers(); err != nil {
		logrus.Warnf("Failed to seed default users: %v", err)
	}

	// Initialize Firebase Admin SDK
	logrus.Info("Initializing Firebase Admin SDK...")
	if err := middleware.InitializeFirebase(); err != nil {
		logrus.Warnf("Failed to initialize Firebase: %v", err)
		logrus.Warn("Auth token verification will be disabled!")
	} else {
		logrus.Info("Firebase Admin SDK initialized (or running in dev mode with auth checks disabled)")
	}

	// Daily reminder job for late payments
	if !*noReminders {
		if _, err := services.StartReminderScheduler(); err != nil {
			logrus.Warnf("Failed to start reminder scheduler: %v", err)
		}
	}

	// Create router
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.EnableCORS)

	// Register routes with both direct paths and /api prefix to maintain compatibility
	registerRoutes(r)
	apiRouter := r.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter)

	// Configure the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	// Start the server
	logrus.Infof("Starting server on port %s...", port)
	logrus.Fatal(srv.ListenAndServe())
}

func configureLogging() {
	if os.Getenv("LOG_FORMAT") == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(level)
	}
}

// registerRoutes sets up all API routes
func registerRoutes(r *mux.Router) {
	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	// Create a subrouter for authenticated routes
	protectedRouter := r.PathPrefix("").Subrouter()
	protectedRouter.Use(middleware.AuthMiddleware)

	// Protected bill routes
	protectedRouter.HandleFunc("/bills", handlers.GetBills).Methods("GET")
	protectedRouter.HandleFunc("/bills", handlers.AddBill).Methods("POST")
	protectedRouter.HandleFunc("/bills/{id}", handlers.UpdateBill).Methods("PUT")
	protectedRouter.HandleFunc("/bills/{id}", handlers.DeleteBill).Methods("DELETE")

	// Protected debt routes
	protectedRouter.HandleFunc("/debts", handlers.GetDebts).Methods("GET")
	protectedRouter.HandleFunc("/debts", handlers.AddDebt).Methods("POST")
	protectedRouter.HandleFunc("/debts/{id}", handlers.UpdateDebt).Methods("PUT")
	protectedRouter.HandleFunc("/debts/{id}", handlers.DeleteDebt).Methods("DELETE")

	// Protected budget category routes
	protectedRouter.HandleFunc("/budget-categories", handlers.GetBudgetCategories).Methods("GET")
	protectedRouter.HandleFunc("/budget-categories", handlers.AddBudgetCategory).Methods("POST")
	protectedRouter.HandleFunc("/budget-categories/{id}", handlers.UpdateBudgetCategory).Methods("PUT")
	protectedRouter.HandleFunc("/budget-categories/{id}", handlers.DeleteBudgetCategory).Methods("DELETE")

	// Protected paycheck routes
	protectedRouter.HandleFunc("/paychecks", handlers.GetPaychecks).Methods("GET")
	protectedRouter.HandleFunc("/paychecks", handlers.AddPaycheck).Methods("POST")
	protectedRouter.HandleFunc("/paychecks/{id}", handlers.UpdatePaycheck).Methods("PUT")
	protectedRouter.HandleFunc("/paychecks/{id}", handlers.DeletePaycheck).Methods("DELETE")

	// Schedule generation
	protectedRouter.HandleFunc("/schedule", handlers.GetSchedule).Methods("GET")
}
