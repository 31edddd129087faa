package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/trucred/score-service/internal/config"
	"github.com/trucred/score-service/internal/handler"
	"github.com/trucred/score-service/internal/middleware"
	"github.com/trucred/score-service/internal/repository"
	"github.com/trucred/score-service/internal/service"
	"github.com/trucred/score-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	sender := email.NewSender(cfg, logger)
	svc := service.NewService(repo, sender, logger, cfg)
	h := handler.NewHandler(svc)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/ledger/analyze", h.AnalyzeLedger).Methods("POST")
	r.HandleFunc("/score/calculate", h.CalculateScore).Methods("POST")
	r.HandleFunc("/assessments", h.SubmitAssessment).Methods("POST")
	r.HandleFunc("/assessments/status", h.CheckStatus).Methods("GET")
	r.HandleFunc("/admin/login", h.Login).Methods("POST")
	// Protected admin routes
	adminRouter := r.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.AuthMiddleware(cfg))
	adminRouter.HandleFunc("/assessments", h.ListAssessments).Methods("GET")
	adminRouter.HandleFunc("/assessments/status", h.UpdateStatus).Methods("POST")

	// Schedule pending-verification reminders
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ReminderSchedule, svc.SendPendingReminders); err != nil {
		logger.Fatalf("Failed to schedule reminder job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
