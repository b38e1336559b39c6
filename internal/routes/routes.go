package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/tenant"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/identity"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/retry"
	"github.com/BruksfildServices01/salon-scheduler/internal/stats"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucOperation "github.com/BruksfildServices01/salon-scheduler/internal/usecase/operation"
)

// Dependencies are the long-lived collaborators built in main.
type Dependencies struct {
	DB         *gorm.DB
	Config     *config.Config
	Logger     *slog.Logger
	Audit      audit.Sink
	Locker     lock.Locker
	Refresher  ucAppointment.StatsRefresher
	Aggregator *stats.Aggregator
	Photos     ucOperation.PhotoStore

	// EmailCheck overrides the registration email domain check.
	EmailCheck func(string) bool
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	db, cfg, logger := deps.DB, deps.Config, deps.Logger

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(logger),
		metrics.PrometheusMiddleware(),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		httpresp.OK(c, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	issuer := identity.NewIssuer(cfg.JWTSecret)
	resolver := tenant.NewResolver(infraRepo.NewTenantGormRepository(db))

	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	operationRepo := infraRepo.NewOperationGormRepository(db)
	uow := infraRepo.NewGormUnitOfWork(db)
	policy := retry.DefaultPolicy().WithMaxAttempts(cfg.RetryMaxAttempts)

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, deps.Audit)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	setStatusUC := ucAppointment.NewSetStatus(
		uow,
		ucOperation.NewDeriver(operationRepo, logger),
		deps.Locker,
		deps.Refresher,
		deps.Audit,
		policy,
		logger,
	)

	listOperationsUC := ucOperation.NewListOperations(operationRepo)
	attachPhotoUC := ucOperation.NewAttachPhoto(operationRepo, deps.Photos, deps.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, issuer, resolver)
	if deps.EmailCheck != nil {
		authHandler.WithEmailCheck(deps.EmailCheck)
	}
	meHandler := handlers.NewMeHandler(db, resolver)
	tenantHandler := handlers.NewTenantHandler(db)
	personnelHandler := handlers.NewPersonnelHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	categoryHandler := handlers.NewCategoryHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		appointmentRepo,
		createAppointmentUC,
		setStatusUC,
		listAppointmentsUC,
		availabilityUC,
	)
	operationHandler := handlers.NewOperationHandler(listOperationsUC, attachPhotoUC)
	statisticsHandler := handlers.NewStatisticsHandler(deps.Aggregator, cfg.StatsFunctionKey)
	publicHandler := handlers.NewPublicHandler(db, createAppointmentUC, availabilityUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public/:code")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/personnel", publicHandler.ListPersonnel)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// INTERNAL (function key)
		// ------------------------------
		api.POST("/internal/stats/refresh", statisticsHandler.Refresh)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		authed := api.Group("/")
		authed.Use(middleware.AuthMiddleware(issuer))
		authed.GET("/me", meHandler.GetMe)

		staff := authed.Group("/me")
		staff.Use(
			middleware.RequireRole(models.RoleAdmin, models.RoleStaff),
			middleware.TenantMiddleware(resolver),
		)
		{
			staff.GET("/tenant", tenantHandler.GetMeTenant)

			staff.GET("/personnel", personnelHandler.List)
			staff.GET("/personnel/:id/working-hours", workingHoursHandler.Get)

			staff.GET("/services", serviceHandler.List)
			staff.GET("/categories", categoryHandler.List)
			staff.GET("/customers", customerHandler.List)

			staff.POST("/appointments", appointmentHandler.Create)
			staff.GET("/appointments", appointmentHandler.ListByDate)
			staff.GET("/appointments/month", appointmentHandler.ListByMonth)
			staff.GET("/appointments/availability", appointmentHandler.Availability)
			staff.PATCH("/appointments/:id/status", appointmentHandler.SetStatus)

			staff.GET("/operations", operationHandler.List)
			staff.POST("/operations/:id/photos", operationHandler.UploadPhoto)

			staff.GET("/statistics", statisticsHandler.Get)
		}

		admin := staff.Group("/")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.PATCH("/tenant", tenantHandler.UpdateMeTenant)

			admin.POST("/personnel", personnelHandler.Create)
			admin.PATCH("/personnel/:id", personnelHandler.Update)
			admin.PUT("/personnel/:id/working-hours", workingHoursHandler.Update)

			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)
			admin.POST("/categories", categoryHandler.Create)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error_code": "route_not_found", "message": "Route not found."})
	})
}
