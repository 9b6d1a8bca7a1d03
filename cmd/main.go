package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/viniciusmf/gym-management-backend/config"
	"github.com/viniciusmf/gym-management-backend/database"
	"github.com/viniciusmf/gym-management-backend/internal/agenda"
	"github.com/viniciusmf/gym-management-backend/internal/attendance"
	"github.com/viniciusmf/gym-management-backend/internal/auditlog"
	"github.com/viniciusmf/gym-management-backend/internal/auth"
	"github.com/viniciusmf/gym-management-backend/internal/member"
	"github.com/viniciusmf/gym-management-backend/internal/payment"
	"github.com/viniciusmf/gym-management-backend/internal/reports"
	"github.com/viniciusmf/gym-management-backend/internal/training"
	"github.com/viniciusmf/gym-management-backend/pkg/logger"
	"github.com/viniciusmf/gym-management-backend/routes"
	"github.com/viniciusmf/gym-management-backend/utils"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	db := database.Connect(cfg, log)

	// Init Redis
	if err := utils.InitRedis(cfg); err != nil {
		log.WithError(err).Warn("⚠️ Redis unavailable, caching disabled")
	}

	// Init Kafka
	utils.InitKafka(cfg, log)
	defer utils.CloseKafka()

	// Auto-migrate models
	log.Info("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auditlog.AuditLog{},
		&auth.Operator{},
		&agenda.Event{},
		&attendance.Attendance{},
		&member.Plan{},
		&member.Member{},
		&training.Sheet{},
		&payment.Payment{},
	); err != nil {
		log.WithError(err).Fatal("❌ DB AutoMigrate failed")
	}
	log.Info("✅ Database migrations completed")

	// The slot index is partial, which AutoMigrate cannot express
	if err := migrateAgendaSlotIndex(db); err != nil {
		log.WithError(err).Fatal("❌ Agenda slot index migration failed")
	}
	log.Info("✅ Agenda slot index verified")

	// Init repositories & services
	auditRepo := auditlog.NewRepository(db)
	auditSvc := auditlog.NewService(auditRepo, log)

	authRepo := auth.NewRepository(db)
	authSvc := auth.NewService(authRepo, cfg, auditSvc)

	agendaRepo := agenda.NewRepository(db)
	agendaSvc := agenda.NewService(agendaRepo, auditSvc)

	attendanceRepo := attendance.NewRepository(db)
	reconciler := attendance.NewReconciler(attendanceRepo, log)
	attendanceSvc := attendance.NewService(attendanceRepo, reconciler, auditSvc, log)

	memberRepo := member.NewRepository(db)
	memberSvc := member.NewService(memberRepo, auditSvc)

	trainingRepo := training.NewRepository(db)
	trainingSvc := training.NewService(trainingRepo, memberRepo, auditSvc)

	paymentRepo := payment.NewRepository(db)
	paymentSvc := payment.NewService(paymentRepo, memberRepo, cfg, auditSvc, log)

	reportsRepo := reports.NewRepository(db)
	reportsSvc := reports.NewService(reportsRepo, reports.NewReportExporter(), auditSvc)

	// Daily overdue sweep at midnight UTC
	scheduler := cron.New(cron.WithLocation(time.UTC))
	if _, err := scheduler.AddFunc("@daily", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		paymentSvc.SweepOverdue(ctx)
	}); err != nil {
		log.WithError(err).Fatal("❌ Could not schedule overdue sweep")
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg, routes.Handlers{
		Auth:       auth.NewHandler(authSvc),
		Agenda:     agenda.NewHandler(agendaSvc),
		Attendance: attendance.NewHandler(attendanceSvc),
		Member:     member.NewHandler(memberSvc),
		Training:   training.NewHandler(trainingSvc),
		Payment:    payment.NewHandler(paymentSvc),
		Reports:    reports.NewHandler(reportsSvc),
		AuditLog:   auditlog.NewHandler(auditSvc),
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("🚀 Server starting")
	if err := router.Run(":" + port); err != nil {
		log.WithError(err).Fatal("❌ Server exited")
	}
}

// migrateAgendaSlotIndex enforces one active event per (date, time) at the
// store level. Denied events keep their slot value but fall outside the
// index, so denying never blocks a later booking.
func migrateAgendaSlotIndex(db *gorm.DB) error {
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_agenda_active_slot
		ON agenda_events (event_date, event_time)
		WHERE status = 'active'
	`).Error
}
