package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/paroquia-sj/crisma-system/internal/api/handler"
	"github.com/paroquia-sj/crisma-system/internal/api/middleware"
	"github.com/paroquia-sj/crisma-system/internal/core/domain"
	"github.com/paroquia-sj/crisma-system/internal/core/service"
	mongodb "github.com/paroquia-sj/crisma-system/internal/infrastructure/db/mongo"
	redisdb "github.com/paroquia-sj/crisma-system/internal/infrastructure/db/redis"
	"github.com/paroquia-sj/crisma-system/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("crisma"))

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	groups := mongodb.NewGroupRepository(db)
	memberships := mongodb.NewMembershipRepository(db)
	spots := mongodb.NewSpotRepository(db)
	enrollments := mongodb.NewEnrollmentRepository(db)

	// --- Services ---
	authService := service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL)
	resolver := service.NewPermissionService(users, groups, memberships, log)
	userService := service.NewUserService(users, groups, memberships, log)
	groupService := service.NewGroupService(groups, memberships, log)
	spotService := service.NewSpotService(spots)
	enrollmentService := service.NewEnrollmentService(enrollments)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Throttle.MaxLoginFailures)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, users, resolver, throttle)
	userHandler := handler.NewUserHandler(userService, resolver)
	groupHandler := handler.NewGroupHandler(groupService)
	spotHandler := handler.NewSpotHandler(spotService)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)

	// --- Middleware ---
	auth := middleware.Auth(authService)
	requireAny := func(perms ...domain.Permission) echo.MiddlewareFunc {
		return middleware.RequirePermission(resolver, perms...)
	}

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	api := e.Group("/api")

	// --- Auth ---
	api.POST("/login", authHandler.Login)
	api.GET("/verify-token", authHandler.VerifyToken, auth)

	// --- Users ---
	usuarios := api.Group("/usuarios")
	usuarios.POST("", userHandler.Create, middleware.SignupGate(userService, authService, resolver))
	usuarios.GET("", userHandler.List, auth, requireAny(domain.PermUsersList, domain.PermAdmin))
	usuarios.GET("/:id", userHandler.Get, auth, requireAny(domain.PermUsersList, domain.PermAdmin))
	usuarios.PUT("/:id", userHandler.Update, auth, requireAny(domain.PermUsersEdit, domain.PermAdmin))
	usuarios.DELETE("/:id", userHandler.Delete, auth, requireAny(domain.PermUsersDelete, domain.PermAdmin))

	// --- Access groups ---
	grupos := api.Group("/grupos", auth)
	grupos.POST("", groupHandler.Create, requireAny(domain.PermGroupsCreate, domain.PermAdmin))
	grupos.GET("", groupHandler.List, requireAny(domain.PermGroupsList, domain.PermAdmin))
	grupos.GET("/:id", groupHandler.Get, requireAny(domain.PermGroupsList, domain.PermAdmin))
	grupos.PUT("/:id", groupHandler.Update, requireAny(domain.PermGroupsEdit, domain.PermAdmin))
	grupos.DELETE("/:id", groupHandler.Delete, requireAny(domain.PermGroupsDelete, domain.PermAdmin))
	grupos.POST("/:id/usuarios", groupHandler.AssignUser, requireAny(domain.PermGroupsEdit, domain.PermAdmin))

	// --- Spots ---
	spotsGroup := api.Group("/spots")
	spotsGroup.GET("/publicos", spotHandler.ListPublic)
	spotsGroup.GET("/ativos", spotHandler.ListPublic)

	spotsAdmin := spotsGroup.Group("/admin", auth)
	spotsAdmin.GET("", spotHandler.ListAll, requireAny(domain.PermSpotsList, domain.PermAdmin))
	spotsAdmin.GET("/:id", spotHandler.Get, requireAny(domain.PermSpotsList, domain.PermAdmin))
	spotsAdmin.POST("", spotHandler.Create, requireAny(domain.PermSpotsCreate, domain.PermAdmin))
	spotsAdmin.PUT("/:id", spotHandler.Update, requireAny(domain.PermSpotsEdit, domain.PermAdmin))
	spotsAdmin.DELETE("/:id", spotHandler.Delete, requireAny(domain.PermSpotsDelete, domain.PermAdmin))
	spotsAdmin.PATCH("/:id/status", spotHandler.ToggleStatus, requireAny(domain.PermSpotsEdit, domain.PermAdmin))
	spotsAdmin.POST("/reordenar", spotHandler.Reorder, requireAny(domain.PermSpotsEdit, domain.PermAdmin))

	// --- Enrollments (form submission is public) ---
	inscricoes := api.Group("/inscricoes")
	inscricoes.POST("", enrollmentHandler.Create)
	inscricoes.GET("", enrollmentHandler.List, auth, requireAny(domain.PermEnrollmentsList, domain.PermAdmin))
	inscricoes.GET("/:id", enrollmentHandler.Get, auth, requireAny(domain.PermEnrollmentsList, domain.PermAdmin))
	inscricoes.PUT("/:id", enrollmentHandler.Update, auth, requireAny(domain.PermEnrollmentsEdit, domain.PermAdmin))
	inscricoes.DELETE("/:id", enrollmentHandler.Delete, auth, requireAny(domain.PermEnrollmentsDelete, domain.PermAdmin))
	inscricoes.POST("/:id/status", enrollmentHandler.UpdateStatus, auth, requireAny(domain.PermEnrollmentsEdit, domain.PermAdmin))
	inscricoes.GET("/:id/status/historico", enrollmentHandler.StatusHistory, auth, requireAny(domain.PermEnrollmentsList, domain.PermAdmin))

	return e
}
