package main

import (
	"fmt"
	"net/http"

	"github.com/workhive-app/workhive-backend-go/internal/config"
	appHTTP "github.com/workhive-app/workhive-backend-go/internal/handler/http"
	"github.com/workhive-app/workhive-backend-go/internal/pkg/database"
	"github.com/workhive-app/workhive-backend-go/internal/pkg/jwt"
	"github.com/workhive-app/workhive-backend-go/internal/repository/postgresql"
	notificationService "github.com/workhive-app/workhive-backend-go/internal/service/notification"
	reportService "github.com/workhive-app/workhive-backend-go/internal/service/report"
	scheduleService "github.com/workhive-app/workhive-backend-go/internal/service/schedule"
	shiftService "github.com/workhive-app/workhive-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	shiftRepo := postgresql.NewShiftRepository(db)
	jobRepo := postgresql.NewJobRepository(db)
	workerRepo := postgresql.NewWorkerRepository(db)
	businessRepo := postgresql.NewBusinessRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	notifier := notificationService.NewNotificationService(notificationRepo, notificationService.Config{
		BatchSize:   cfg.Notification.BatchSize,
		WorkerCount: cfg.Notification.WorkerCount,
		QueueSize:   cfg.Notification.QueueSize,
	})
	defer notifier.Stop()

	shifts := shiftService.NewShiftService(shiftRepo, jobRepo, workerRepo, businessRepo, notifier, nil)
	schedules := scheduleService.NewScheduleService(shiftRepo, jobRepo, workerRepo, businessRepo, notifier, nil)
	reports := reportService.NewReportService(shiftRepo, nil)

	shiftHandler := appHTTP.NewShiftHandler(shifts, schedules)
	reportHandler := appHTTP.NewReportHandler(reports)

	router := appHTTP.NewRouter(JWTService, shiftHandler, reportHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
