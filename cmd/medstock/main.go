package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"gorm.io/gorm"

	adminhttp "github.com/medstock/medstock/internal/admin/delivery/http"
	admindomain "github.com/medstock/medstock/internal/admin/domain"
	adminrepo "github.com/medstock/medstock/internal/admin/repository"
	"github.com/medstock/medstock/internal/admin/session"
	"github.com/medstock/medstock/internal/admin/usecase/command"
	"github.com/medstock/medstock/internal/medicinal"
	medhttp "github.com/medstock/medstock/internal/medicinal/delivery/http"
	meddomain "github.com/medstock/medstock/internal/medicinal/domain"
	medcommand "github.com/medstock/medstock/internal/medicinal/usecase/command"
	"github.com/medstock/medstock/internal/notify"
	"github.com/medstock/medstock/internal/sms"
	"github.com/medstock/medstock/kafka"
	"github.com/medstock/medstock/pkg/database"
	"github.com/medstock/medstock/pkg/logger"
	"github.com/medstock/medstock/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "medstock")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting medstock service")

	// Initialize tracing
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
		}
	}()

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "medstockdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := db.AutoMigrate(&meddomain.Medicinal{}, &admindomain.Admin{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Connect to redis for session storage
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to redis")
	}
	defer redisClient.Close()

	// Optional Kafka publisher
	var publisher *kafka.Publisher
	var importEvents medcommand.ImportEventPublisher
	var alertEvents notify.EventPublisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
		}
		defer publisher.Close()
		importEvents = publisher
		alertEvents = publisher
	} else {
		logger.Logger.Info().Msg("KAFKA_BROKERS not set, event publishing disabled")
	}

	// Initialize medicinal handler with Wire DI
	medHandler, err := medicinal.InitializeHTTPHandler(db, importEvents)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize medicinal handler")
	}

	// Admin accounts and sessions
	adminRepo := adminrepo.NewGormAdminRepository(db)
	sessions := session.NewStore(redisClient)
	adminHandler := adminhttp.NewAdminHandler(adminRepo, sessions)

	bootstrapSysAdmin(adminRepo)

	// Expiry notification subsystem
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startNotify(ctx, db, alertEvents)

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8080")
	go startHTTPServer(medHandler, adminHandler, sqlDB, httpPort)

	<-ctx.Done()

	logger.Logger.Info().Msg("Shutting down server...")
}

// bootstrapSysAdmin seeds the system account when the admin table is empty,
// so a fresh deployment can log in.
func bootstrapSysAdmin(repo admindomain.AdminRepository) {
	count, err := repo.Count()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to count admin accounts")
	}
	if count > 0 {
		return
	}

	username := getEnv("ADMIN_USERNAME", "admin")
	password := getEnv("ADMIN_PASSWORD", "")
	if password == "" {
		logger.Logger.Warn().Msg("No admin accounts and ADMIN_PASSWORD not set, skipping bootstrap")
		return
	}

	handler := command.NewCreateAdminHandler(repo)
	admin, err := handler.Handle(command.CreateAdminCommand{
		Username: username,
		Password: password,
		IsSys:    true,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to bootstrap system admin")
	}

	logger.Logger.Info().
		Str("username", admin.Username).
		Msg("System admin bootstrapped")
}

// startNotify wires the expiry scan scheduler and the SMS delivery worker.
func startNotify(ctx context.Context, db *gorm.DB, events notify.EventPublisher) {
	cfg := notify.Config{
		Enabled:       getEnv("NOTIFY_ENABLED", "false") == "true",
		CheckInterval: time.Duration(getEnvInt("NOTIFY_CHECK_INTERVAL_SECONDS", 120)) * time.Second,
		ExpiredDays:   getEnvInt("NOTIFY_EXPIRED_DAYS", 30),
		Phones:        splitNonEmpty(getEnv("NOTIFY_PHONES", "")),
		TemplateCode:  getEnv("SMS_TEMPLATE_CODE", ""),
		SignName:      getEnv("SMS_SIGN_NAME", ""),
	}

	repo := medicinal.ProvideMedicinalRepository(db)

	queue := notify.NewQueue()
	client := sms.NewGatewayClient(sms.GatewayConfig{
		Endpoint:        getEnv("SMS_ENDPOINT", "http://localhost:9000/send"),
		AccessKeyID:     getEnv("SMS_ACCESS_KEY_ID", ""),
		AccessKeySecret: getEnv("SMS_ACCESS_KEY_SECRET", ""),
	})
	queue.StartWorker(ctx, client)

	scanner := notify.NewScanner(repo)
	dispatcher := notify.NewDispatcher(repo, queue, events, cfg)
	scheduler := notify.NewScheduler(cfg, scanner, dispatcher)

	go scheduler.Run(ctx)
}

func startHTTPServer(medHandler *medhttp.MedicinalHandler, adminHandler *adminhttp.AdminHandler, db *sql.DB, port string) {
	// Setup router
	router := mux.NewRouter()

	// Register routes, catalog routes behind auth
	adminHandler.RegisterRoutes(router)
	medHandler.RegisterRoutes(router, adminHandler.Middleware().Authenticate)

	// Health check endpoint
	medHandler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logger.Logger.Warn().
			Str("key", key).
			Str("value", value).
			Msg("Invalid integer env value, using default")
		return defaultValue
	}
	return n
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
