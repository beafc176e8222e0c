package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/voltworks/ev-service-api/internal/api/handler"
	"github.com/voltworks/ev-service-api/internal/api/middleware"
	"github.com/voltworks/ev-service-api/internal/auth"
	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/service"
	mongorepo "github.com/voltworks/ev-service-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/voltworks/ev-service-api/internal/infrastructure/db/redis"
)

// RouterConfig carries everything NewRouter needs beyond the datastores.
type RouterConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Queue     service.NotificationQueue
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("evservice"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	vehicleRepo := mongorepo.NewVehicleRepository(db)
	catalogRepo := mongorepo.NewCatalogRepository(db)
	appointmentRepo := mongorepo.NewAppointmentRepository(db)
	partRepo := mongorepo.NewPartRepository(db)
	messageRepo := mongorepo.NewMessageRepository(db)
	technicianRepo := mongorepo.NewTechnicianRepository(db)
	slotHold := redisinfra.NewSlotHold(rdb)

	// --- Services ---
	codec := auth.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, codec)
	userService := service.NewUserService(userRepo)
	vehicleService := service.NewVehicleService(vehicleRepo, cfg.Logger)
	catalogService := service.NewCatalogService(catalogRepo)
	appointmentService := service.NewAppointmentService(
		appointmentRepo, vehicleRepo, catalogRepo, partRepo, slotHold, cfg.Queue, cfg.Logger)
	inventoryService := service.NewInventoryService(partRepo, cfg.Logger)
	messageService := service.NewMessageService(messageRepo, userRepo)
	technicianService := service.NewTechnicianService(technicianRepo, userRepo)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	partHandler := handler.NewPartHandler(inventoryService)
	messageHandler := handler.NewMessageHandler(messageService)
	technicianHandler := handler.NewTechnicianHandler(technicianService)

	authenticated := middleware.Auth(codec, userRepo)
	optionalAuth := middleware.OptionalAuth(codec, userRepo)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	// Registration is public, but an authenticated admin may set a role.
	e.POST("/auth/register", authHandler.Register, optionalAuth)
	e.POST("/auth/login", authHandler.Login)

	v1 := e.Group("/v1")
	v1.GET("/me", authHandler.Me, authenticated)

	// --- Catalog browsing (any authenticated role) ---
	v1.GET("/services", catalogHandler.ListServices, authenticated)
	v1.GET("/services/:id", catalogHandler.GetService, authenticated)
	v1.GET("/packages", catalogHandler.ListPackages, authenticated)
	v1.GET("/packages/:id", catalogHandler.GetPackage, authenticated)

	// --- Account administration ---
	users := v1.Group("/users", authenticated)
	users.GET("", userHandler.List, middleware.RBAC(domain.RoleAdmin))
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	// --- Vehicles ---
	vehicles := v1.Group("/vehicles", authenticated)
	vehicles.POST("", vehicleHandler.Create)
	vehicles.GET("", vehicleHandler.List)
	vehicles.GET("/:id", vehicleHandler.Get)
	vehicles.PATCH("/:id", vehicleHandler.Update)
	vehicles.DELETE("/:id", vehicleHandler.Delete)

	// --- Catalog management (staff and up) ---
	staffOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleStaff)
	v1.POST("/services", catalogHandler.CreateService, authenticated, staffOnly)
	v1.PATCH("/services/:id", catalogHandler.UpdateService, authenticated, staffOnly)
	v1.DELETE("/services/:id", catalogHandler.DeleteService, authenticated, staffOnly)
	v1.POST("/packages", catalogHandler.CreatePackage, authenticated, staffOnly)
	v1.DELETE("/packages/:id", catalogHandler.DeletePackage, authenticated, staffOnly)

	// --- Appointments ---
	appointments := v1.Group("/appointments", authenticated)
	appointments.POST("", appointmentHandler.Book)
	appointments.GET("", appointmentHandler.List)
	appointments.GET("/:code", appointmentHandler.Get)
	appointments.POST("/:code/cancel", appointmentHandler.Cancel)
	// Lifecycle transitions are a workshop concern.
	appointments.POST("/:code/status", appointmentHandler.ChangeStatus,
		middleware.RBAC(domain.RoleAdmin, domain.RoleStaff, domain.RoleTechnician))

	// --- Parts inventory (workshop only) ---
	parts := v1.Group("/parts", authenticated,
		middleware.RBAC(domain.RoleAdmin, domain.RoleStaff, domain.RoleTechnician))
	parts.GET("", partHandler.List)
	parts.GET("/:sku", partHandler.Get)
	// Mutations need staff privileges.
	parts.POST("", partHandler.Create, staffOnly)
	parts.POST("/:sku/adjust", partHandler.AdjustStock, staffOnly)
	parts.DELETE("/:sku", partHandler.Delete, staffOnly)

	// --- Conversations ---
	conversations := v1.Group("/conversations", authenticated)
	conversations.POST("", messageHandler.Start)
	conversations.GET("", messageHandler.List)
	conversations.GET("/:id", messageHandler.Get)
	conversations.POST("/:id/messages", messageHandler.Post)
	conversations.POST("/:id/read", messageHandler.MarkRead)

	// --- Technician management ---
	v1.GET("/technicians", technicianHandler.List, authenticated, staffOnly)
	v1.POST("/technicians", technicianHandler.Create, authenticated, staffOnly)
	// Technicians may read their own profile; the service enforces it.
	v1.GET("/technicians/:id", technicianHandler.Get, authenticated)
	v1.POST("/technicians/:id/certificates", technicianHandler.AddCertificate, authenticated, staffOnly)
	v1.PATCH("/technicians/:id/active", technicianHandler.SetActive, authenticated, staffOnly)

	return e
}
