package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendance-service/internal/handler"
	"attendance-service/internal/metrics"
	"attendance-service/internal/middleware"
	"attendance-service/internal/service"
)

// Config holds everything the HTTP surface needs
type Config struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer // nil serves the default registry
	JWTSecret   string
	CookieName  string
	BasePath    string
	CORSOrigins string

	LedgerService  service.LedgerService
	MetricsService service.MetricsService
	UserService    service.UserService

	Jobs func() []string
}

// Setup builds the gin engine with all routes registered
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	r.Use(middleware.CORS(cfg.CORSOrigins))

	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis, cfg.Jobs)
	attendanceHandler := handler.NewAttendanceHandler(cfg.LedgerService, cfg.MetricsService, cfg.Logger)
	userHandler := handler.NewUserHandler(cfg.UserService, cfg.Logger)

	metricsHandler := gin.WrapH(promhttp.Handler())
	if cfg.Gatherer != nil {
		metricsHandler = gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// probes and scrape endpoint stay outside auth
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", metricsHandler)

	base := r.Group(cfg.BasePath)
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		base.GET("/health", healthHandler.Health)
		base.GET("/ready", healthHandler.Ready)
		base.GET("/metrics", metricsHandler)
	}

	admin := base.Group("")
	admin.Use(middleware.RequireAdmin(cfg.JWTSecret, cfg.CookieName, cfg.Logger))
	{
		admin.GET("/dashboard/stats", attendanceHandler.DashboardStats)

		users := admin.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PATCH("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
			users.GET("/:id/history", userHandler.History)
			users.GET("/:id/overtime", attendanceHandler.GetOvertime)
			users.GET("/:id/metrics", attendanceHandler.GetMetrics)
			users.POST("/:id/status", attendanceHandler.RecordStatus)
		}

		events := admin.Group("/events")
		{
			events.GET("/unnotified/inactive", attendanceHandler.ListUnnotified)
			events.POST("/:id/mark-notified", attendanceHandler.MarkNotified)
		}
	}

	return r
}
