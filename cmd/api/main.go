// @title           Attendance Service API
// @version         1.0
// @description     Workforce attendance ledger, time metrics and absence alerts

// @BasePath  /api/admin

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"attendance-service/internal/client"
	"attendance-service/internal/config"
	"attendance-service/internal/database"
	"attendance-service/internal/job"
	"attendance-service/internal/metrics"
	"attendance-service/internal/repository"
	"attendance-service/internal/router"
	"attendance-service/internal/service"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc := cfg.Location()
	logger.Info("Starting Attendance Service",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("timezone", loc.String()),
	)
	if cfg.JWT.Secret == "" {
		logger.Warn("JWT secret is empty, admin routes will reject every token")
	}

	m := metrics.New(logger)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStartup()

	db, err := database.Connect(startupCtx, database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger, 10, 5*time.Second)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	if err := database.RegisterMetricsCallbacks(db, m); err != nil {
		logger.Warn("Failed to register database metrics callbacks", zap.Error(err))
	}
	if err := database.AutoMigrate(db, logger); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	stopDBStats := database.StartDBStatsCollector(db, m, 15*time.Second)

	redisClient, err := database.NewRedis(startupCtx, cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis unavailable, tick locks are process-local", zap.Error(err))
		redisClient = nil
	}
	tickLock := database.NewTickLock(redisClient, "attendance:lock:", logger)

	mailer := client.NewMailClient(cfg.SMTP, cfg.MailFrom(), logger, m)

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	overtimeRepo := repository.NewOvertimeRepository(db)

	ledgerService := service.NewLedgerService(eventRepo, m, logger, service.WithLocation(loc))
	metricsService := service.NewMetricsService(userRepo, eventRepo, overtimeRepo, logger, service.WithLocation(loc))
	userService := service.NewUserService(userRepo, eventRepo, logger, service.WithLocation(loc))

	scheduler := job.NewScheduler(loc, logger)
	if cfg.Jobs.AbsenceEnabled {
		absenceJob := job.NewAbsenceJob(userRepo, eventRepo, tickLock, m, logger, job.AbsenceJobConfig{
			Grace:    cfg.Jobs.AbsenceGrace(),
			Timeout:  cfg.Jobs.AbsenceTimeout,
			LockTTL:  cfg.Jobs.LockTTL,
			Location: loc,
		})
		if err := scheduler.Register(job.AbsenceJobName, cfg.Jobs.AbsenceInterval, absenceJob.Run); err != nil {
			logger.Fatal("Failed to register absence job", zap.Error(err))
		}
	}

	notificationJob := job.NewNotificationJob(ledgerService, mailer, tickLock, m, logger, job.NotificationJobConfig{
		Recipients:    cfg.Jobs.NotifyRecipients,
		SubjectPrefix: cfg.Jobs.NotifySubjectPrefix,
		Timeout:       cfg.Jobs.NotifyTimeout,
		LockTTL:       cfg.Jobs.LockTTL,
		Location:      loc,
	})
	if cfg.Jobs.NotifyEnabled && notificationJob.Enabled() {
		if err := scheduler.Register(job.NotificationJobName, cfg.Jobs.NotifyInterval, notificationJob.Run); err != nil {
			logger.Fatal("Failed to register notification job", zap.Error(err))
		}
	} else {
		logger.Warn("Notification job disabled",
			zap.Bool("enabled", cfg.Jobs.NotifyEnabled),
			zap.Bool("smtp_configured", mailer.IsConfigured()),
			zap.Int("recipients", len(cfg.Jobs.NotifyRecipients)),
		)
	}
	scheduler.Start()

	collector := metrics.NewBusinessMetricsCollector(userRepo, m, logger, time.Minute)
	collector.Start()

	r := router.Setup(router.Config{
		DB:             db,
		Redis:          redisClient,
		Logger:         logger,
		Metrics:        m,
		JWTSecret:      cfg.JWT.Secret,
		CookieName:     cfg.JWT.CookieName,
		BasePath:       cfg.Server.BasePath,
		CORSOrigins:    cfg.Server.CORSOrigins,
		LedgerService:  ledgerService,
		MetricsService: metricsService,
		UserService:    userService,
		Jobs:           scheduler.Jobs,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Attendance Service started successfully", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	// in-flight ticks finish before their connections go away
	if err := scheduler.Stop(ctx); err != nil {
		logger.Warn("Scheduler did not drain before timeout", zap.Error(err))
	}
	collector.Stop()
	close(stopDBStats)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Failed to close redis", zap.Error(err))
		}
	}
	if err := database.Close(db); err != nil {
		logger.Warn("Failed to close database", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
