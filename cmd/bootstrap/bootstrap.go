package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-health-companion/config"
	deliveryHttp "go-health-companion/internal/delivery/http"
	"go-health-companion/internal/delivery/http/handler"
	"go-health-companion/internal/delivery/http/middleware"
	"go-health-companion/internal/infrastructure/cache"
	"go-health-companion/internal/infrastructure/database"
	"go-health-companion/internal/intake"
	"go-health-companion/internal/observability/metrics"
	"go-health-companion/internal/repository"
	"go-health-companion/internal/service"
	"go-health-companion/internal/storage"
	"go-health-companion/internal/usecase"
	"go-health-companion/pkg/jwt"
	"go-health-companion/pkg/validator"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Registry    *intake.Registry
	Gemini      *service.GeminiClient
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.Log.Level)
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if err := database.RunMigrations(db); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// The health plan endpoint answers 503 without an API key.
	if cfg.Gemini.APIKey != "" {
		gemini, err := service.NewGeminiClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		app.Gemini = gemini
		logrus.Infof("Gemini client ready (model %s)", cfg.Gemini.Model)
	} else {
		logrus.Warn("GEMINI_API_KEY not set, health plan generation disabled")
	}

	// Initialize all layers
	app.initializeServer(cfg, db, redisClient)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	healthProfileRepo := repository.NewHealthProfileRepository()
	documentRepo := repository.NewDocumentRecordRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize state store
	kv := storage.NewRedisStore(redisClient, cfg.Intake.StateTTL)
	profileStore := storage.NewProfileStore(kv, log)

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	secret := saveSecret(cfg)
	profileSaver := service.NewProfileSaver(saveURL(cfg), secret, cfg.Intake.SaveTimeout, cfg.Intake.SaveRetries, log)

	// Untyped nil when Gemini is off; the services then report unavailable.
	var generator service.TextGenerator
	var analyzer service.ImageAnalyzer
	if app.Gemini != nil {
		generator = app.Gemini
		analyzer = app.Gemini
	}
	insightService := service.NewInsightService(generator, kv, log)
	chatService := service.NewChatService(generator, kv, log)
	medicineService := service.NewMedicineService(analyzer, log)

	// Intake sessions; the gauge reads the registry created right after it.
	var registry *intake.Registry
	intakeMetrics := metrics.NewIntakeMetrics(nil, func() int {
		if registry == nil {
			return 0
		}
		return registry.Len()
	})
	registry = intake.NewRegistry(profileStore, profileSaver, log, cfg.Intake.SessionIdle, intake.WithObserver(intakeMetrics))
	app.Registry = registry
	httpMetrics := metrics.NewHTTPMetrics(nil)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, jwtService, redisClient, registry)
	intakeUsecase := usecase.NewIntakeUsecase(db, log, registry, auditService, intakeMetrics)
	healthProfileUsecase := usecase.NewHealthProfileUsecase(db, log, healthProfileRepo, auditService)
	documentUsecase := usecase.NewDocumentUsecase(db, log, documentRepo, auditService)
	goalUsecase := usecase.NewGoalUsecase(log, kv, intakeMetrics)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, kv, auditService, intakeMetrics)
	insightUsecase := usecase.NewInsightUsecase(log, registry, insightService, medicineService)
	chatUsecase := usecase.NewChatUsecase(log, chatService)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, registry, kv, documentRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:          handler.NewAuthHandler(authUsecase),
		Intake:        handler.NewIntakeHandler(intakeUsecase, customValidator),
		HealthProfile: handler.NewHealthProfileHandler(healthProfileUsecase, customValidator),
		Document:      handler.NewDocumentHandler(documentUsecase, customValidator),
		Goal:          handler.NewGoalHandler(goalUsecase, customValidator),
		Appointment:   handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		Insight:       handler.NewInsightHandler(insightUsecase, customValidator),
		Chat:          handler.NewChatHandler(chatUsecase, customValidator),
		Dashboard:     handler.NewDashboardHandler(dashboardUsecase),
		AuditLog:      handler.NewAuditLogHandler(auditLogUsecase),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	serviceAuthMiddleware := middleware.NewServiceAuthMiddleware(secret)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, authMiddleware, serviceAuthMiddleware, corsMiddleware, httpMetrics)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	app.Server = &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// saveURL defaults to this service's own save endpoint.
func saveURL(cfg *config.Config) string {
	if cfg.Intake.SaveURL != "" {
		return cfg.Intake.SaveURL
	}
	return fmt.Sprintf("http://localhost:%s/api/save_data", cfg.App.Port)
}

// saveSecret returns the configured save_data secret. Without one a random
// secret is used, which only this process knows.
func saveSecret(cfg *config.Config) string {
	if cfg.Intake.SaveSecret != "" {
		return cfg.Intake.SaveSecret
	}
	if cfg.Intake.SaveURL != "" {
		logrus.Warn("INTAKE_SAVE_SECRET not set, the remote save endpoint will reject intake submissions")
	}
	return uuid.New().String()
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops background work and closes all connections
func (app *App) Close() {
	if app.Registry != nil {
		app.Registry.Stop()
	}

	if app.Gemini != nil {
		if err := app.Gemini.Close(); err != nil {
			logrus.Warnf("Failed to close Gemini client: %v", err)
		}
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
