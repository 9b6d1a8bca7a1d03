package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/viniciusmf/gym-management-backend/config"
	"github.com/viniciusmf/gym-management-backend/internal/agenda"
	"github.com/viniciusmf/gym-management-backend/internal/attendance"
	"github.com/viniciusmf/gym-management-backend/internal/auditlog"
	"github.com/viniciusmf/gym-management-backend/internal/auth"
	"github.com/viniciusmf/gym-management-backend/internal/member"
	"github.com/viniciusmf/gym-management-backend/internal/payment"
	"github.com/viniciusmf/gym-management-backend/internal/reports"
	"github.com/viniciusmf/gym-management-backend/internal/training"
	"github.com/viniciusmf/gym-management-backend/middleware"
)

// Handlers groups everything Setup needs to mount.
type Handlers struct {
	Auth       *auth.Handler
	Agenda     *agenda.Handler
	Attendance *attendance.Handler
	Member     *member.Handler
	Training   *training.Handler
	Payment    *payment.Handler
	Reports    *reports.Handler
	AuditLog   *auditlog.Handler
}

// Setup mounts all routes on the router.
func Setup(router *gin.Engine, cfg *config.Config, h Handlers) {
	// ======= OPERATIONAL ROUTES =======
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	// ======= PUBLIC ROUTES =======
	public := api.Group("/auth")
	{
		public.POST("/register", h.Auth.Register)
		public.POST("/login", h.Auth.Login)
	}

	// ======= PROTECTED ROUTES =======
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		protected.GET("/auth/me", h.Auth.Me)

		// 📅 Agenda
		agendaGroup := protected.Group("/agenda")
		{
			agendaGroup.GET("", h.Agenda.ListEvents)
			agendaGroup.POST("", h.Agenda.CreateEvent)
			agendaGroup.PUT("/:id", h.Agenda.UpdateEvent)
			agendaGroup.PATCH("/:id/slot", h.Agenda.MoveEvent)
			agendaGroup.PATCH("/:id/deny", h.Agenda.DenyEvent)
			agendaGroup.DELETE("/:id", h.Agenda.DeleteEvent)
		}

		// ✅ Attendance
		attendanceGroup := protected.Group("/attendance")
		{
			attendanceGroup.GET("", h.Attendance.LoadDay)
			attendanceGroup.POST("/toggle", h.Attendance.Toggle)
			attendanceGroup.POST("/save", h.Attendance.Save)
			attendanceGroup.GET("/summary/weekly", h.Attendance.WeeklySummary)
		}

		// 👤 Members & Plans
		memberGroup := protected.Group("/members")
		{
			memberGroup.GET("", h.Member.ListMembers)
			memberGroup.GET("/:id", h.Member.GetMember)
			memberGroup.POST("", h.Member.CreateMember)
			memberGroup.PUT("/:id", h.Member.UpdateMember)
			memberGroup.PATCH("/:id/status", h.Member.ToggleMemberStatus)
			memberGroup.DELETE("/:id", h.Member.DeleteMember)
		}
		planGroup := protected.Group("/plans")
		{
			planGroup.GET("", h.Member.ListPlans)
			planGroup.POST("", h.Member.CreatePlan)
			planGroup.PUT("/:id", h.Member.UpdatePlan)
			planGroup.DELETE("/:id", h.Member.DeletePlan)
		}

		// 🏋️ Training sheets
		trainingGroup := protected.Group("/trainings")
		{
			trainingGroup.GET("", h.Training.ListSheets)
			trainingGroup.GET("/:id", h.Training.GetSheet)
			trainingGroup.POST("", h.Training.CreateSheet)
			trainingGroup.DELETE("/:id", h.Training.DeleteSheet)
		}

		// 💳 Payments
		paymentGroup := protected.Group("/payments")
		{
			paymentGroup.GET("", h.Payment.ListPayments)
			paymentGroup.GET("/:id", h.Payment.GetPayment)
			paymentGroup.POST("", h.Payment.RecordPayment)
			paymentGroup.PUT("/:id", h.Payment.UpdatePayment)
			paymentGroup.DELETE("/:id", h.Payment.DeletePayment)
			paymentGroup.POST("/start", h.Payment.StartPayment)
			paymentGroup.POST("/verify", h.Payment.VerifyPayment)
			paymentGroup.GET("/:id/receipt", h.Payment.DownloadReceipt)
		}

		// 📊 Reports & Audit (admin only)
		admin := protected.Group("")
		admin.Use(middleware.RBACMiddleware("admin"))
		{
			admin.GET("/reports/:type", h.Reports.ExportReport)
			admin.GET("/audit-logs", h.AuditLog.GetAuditLogs)
			admin.GET("/audit-logs/:id", h.AuditLog.GetAuditLogByID)
		}
	}
}
