package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"opensourcetogether/internal/config"
	applications_controllers "opensourcetogether/internal/features/applications/controllers"
	applications_services "opensourcetogether/internal/features/applications/services"
	"opensourcetogether/internal/features/audit_logs"
	"opensourcetogether/internal/features/categories"
	"opensourcetogether/internal/features/email"
	github_controllers "opensourcetogether/internal/features/github/controllers"
	github_services "opensourcetogether/internal/features/github/services"
	notifications_controllers "opensourcetogether/internal/features/notifications/controllers"
	notifications_realtime "opensourcetogether/internal/features/notifications/realtime"
	notifications_services "opensourcetogether/internal/features/notifications/services"
	"opensourcetogether/internal/features/profiles"
	projects_controllers "opensourcetogether/internal/features/projects/controllers"
	projects_services "opensourcetogether/internal/features/projects/services"
	system_healthcheck "opensourcetogether/internal/features/system/healthcheck"
	"opensourcetogether/internal/features/techstacks"
	users_controllers "opensourcetogether/internal/features/users/controllers"
	users_middleware "opensourcetogether/internal/features/users/middleware"
	users_services "opensourcetogether/internal/features/users/services"
	cache_utils "opensourcetogether/internal/util/cache"
	env_utils "opensourcetogether/internal/util/env"
	"opensourcetogether/internal/util/errs"
	"opensourcetogether/internal/util/logger"
	_ "opensourcetogether/swagger" // swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title OpenSource Together API
// @version 1.0
// @description API for matching open source projects with contributors
// @termsOfService http://swagger.io/terms/

// @host localhost:4005
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logger.GetLogger()
	config.StartListeningForShutdownSignal()
	setUpDependencies()

	errs.SetProductionMode(config.GetEnv().IsProduction())

	if err := cache_utils.TestCacheConnection(); err != nil {
		log.Error("Failed to connect to cache", "error", err)
		os.Exit(1)
	}

	runMigrations(log)
	seedReferenceData(log)

	go generateSwaggerDocs(log)

	gin.SetMode(gin.ReleaseMode)
	ginApp := gin.New()
	ginApp.Use(gin.Logger(), errs.RecoveryMiddleware())

	ginApp.Use(gzip.Gzip(
		gzip.DefaultCompression,
		// Don't compress already compressed files
		gzip.WithExcludedExtensions(
			[]string{".png", ".gif", ".jpeg", ".jpg", ".ico", ".svg", ".pdf", ".mp4"},
		),
		// gzip breaks the websocket upgrade
		gzip.WithExcludedPaths([]string{"/api/v1/notifications/ws"}),
	))

	enableCors(ginApp)
	setUpRoutes(ginApp)
	runBackgroundTasks(log)

	startServerWithGracefulShutdown(log, ginApp)
}

func startServerWithGracefulShutdown(log *slog.Logger, app *gin.Engine) {
	host := ""
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// for dev we use localhost to avoid firewall
		// requests on each run for Windows
		host = "127.0.0.1"
	}

	srv := &http.Server{
		Addr:    host + ":" + config.GetEnv().Port,
		Handler: app,
	}

	go func() {
		log.Info("Server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen:", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	stopBackgroundTasks(log)

	// The context is used to inform the server it has 10 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown:", "error", err)
	}

	log.Info("Server gracefully stopped")
}

func setUpRoutes(r *gin.Engine) {
	r.NoRoute(errs.NoRouteHandler)

	v1 := r.Group("/api/v1")

	// Mount Swagger UI
	v1.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	userController := users_controllers.GetUserController()
	githubController := github_controllers.GetGithubController()
	projectController := projects_controllers.GetProjectController()
	projectRoleController := projects_controllers.GetProjectRoleController()
	profileController := profiles.GetProfileController()
	notificationController := notifications_controllers.GetNotificationController()

	// Public routes
	userController.RegisterRoutes(v1)
	githubController.RegisterRoutes(v1)
	techstacks.GetTechStackController().RegisterRoutes(v1)
	categories.GetCategoryController().RegisterRoutes(v1)
	projectController.RegisterRoutes(v1)
	projectRoleController.RegisterRoutes(v1)
	profileController.RegisterRoutes(v1)
	notificationController.RegisterRoutes(v1)
	system_healthcheck.GetHealthcheckController().RegisterRoutes(v1)

	userService := users_services.GetUserService()
	authMiddleware := users_middleware.AuthMiddleware(userService)

	// Protected routes
	protected := v1.Group("")
	protected.Use(authMiddleware)

	userController.RegisterProtectedRoutes(protected)
	githubController.RegisterProtectedRoutes(protected)
	projectController.RegisterProtectedRoutes(protected)
	projectRoleController.RegisterProtectedRoutes(protected)
	applications_controllers.GetApplicationController().RegisterProtectedRoutes(protected)
	profileController.RegisterProtectedRoutes(protected)
	notificationController.RegisterProtectedRoutes(protected)
	audit_logs.GetAuditLogController().RegisterRoutes(protected)
}

func setUpDependencies() {
	audit_logs.SetupDependencies()
	github_services.SetupDependencies()
	applications_services.SetupDependencies()
}

func seedReferenceData(log *slog.Logger) {
	if err := techstacks.GetTechStackService().SeedIfEmpty(); err != nil {
		log.Error("Failed to seed tech stacks", "error", err)
		os.Exit(1)
	}

	if err := categories.GetCategoryService().SeedIfEmpty(); err != nil {
		log.Error("Failed to seed categories", "error", err)
		os.Exit(1)
	}
}

func runBackgroundTasks(log *slog.Logger) {
	log.Info("Preparing to run background tasks...")

	projects_services.GetGithubSyncBackgroundService().StartWorkers()
	email.GetEmailWorkerService().StartWorkers()
	notifications_realtime.GetHub().StartWorkers()

	log.Info("Background tasks started successfully")
}

func stopBackgroundTasks(log *slog.Logger) {
	projects_services.GetGithubSyncBackgroundService().Stop()
	email.GetEmailWorkerService().Stop()
	notifications_realtime.GetHub().Stop()

	if err := notifications_services.GetNotificationService().Close(); err != nil {
		log.Error("Failed to close notification publishers", "error", err)
	}

	log.Info("Background tasks stopped")
}

// Keep in mind: docs appear after second launch, because Swagger
// is generated into Go files. So if we changed files, we generate
// new docs, but still need to restart the server to see them.
func generateSwaggerDocs(log *slog.Logger) {
	if config.GetEnv().EnvMode == env_utils.EnvModeProduction {
		return
	}

	currentDir, err := os.Getwd()
	if err != nil {
		log.Error("Failed to get current directory", "error", err)
		return
	}

	cmd := exec.Command("swag", "init", "-d", currentDir, "-g", "cmd/main.go", "-o", "swagger")

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Failed to generate Swagger docs", "error", err, "output", string(output))
		return
	}

	log.Info("Swagger documentation generated successfully")
}

func runMigrations(log *slog.Logger) {
	log.Info("Running database migrations...")

	cmd := exec.Command("goose", "-dir", "migrations", "up")
	cmd.Env = append(
		os.Environ(),
		"GOOSE_DRIVER=postgres",
		"GOOSE_DBSTRING="+config.GetEnv().DatabaseDsn,
	)

	cmd.Dir = config.GetEnv().BackendRootPath

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Failed to run migrations", "error", err, "output", string(output))
		os.Exit(1)
	}

	log.Info("Database migrations completed successfully", "output", string(output))
}

func enableCors(ginApp *gin.Engine) {
	allowOrigins := []string{config.GetEnv().FrontendURL}
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		allowOrigins = append(allowOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	ginApp.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Length",
			"Content-Type",
			"Authorization",
			"Accept",
			"Accept-Language",
			"Accept-Encoding",
		},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
