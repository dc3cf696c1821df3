package delivery

import (
	"roiengine/internal/delivery/middleware"
	"roiengine/internal/domain"
	"roiengine/pkg/config"
	"roiengine/pkg/logger"
	"roiengine/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type HTTPRouter struct {
	handlers *HTTPHandlers
	cfg      config.ServerConfig
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewHTTPRouter(handlers *HTTPHandlers, cfg config.ServerConfig, logger *logger.Logger, metrics *metrics.Metrics) *HTTPRouter {
	return &HTTPRouter{
		handlers: handlers,
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
	}
}

func (r *HTTPRouter) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	registerBindingRules()

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.Recovery(r.logger))
	router.Use(middleware.Metrics(r.metrics))
	router.Use(middleware.Timeout(r.cfg.RequestTimeout))
	router.Use(middleware.RateLimit(r.cfg.RateLimitRPS, r.cfg.RateLimitBurst))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Content-Type", "X-Request-ID"}
	config.ExposeHeaders = []string{"X-Request-ID"}

	router.Use(cors.New(config))

	// Health endpoint
	router.GET("/health", r.handlers.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// ROI calculation endpoints
		roi := v1.Group("/roi")
		{
			roi.POST("/calculate", r.handlers.ComputeROI)
			roi.GET("/calculations", r.handlers.ListCalculations)
			roi.GET("/calculations/:id", r.handlers.GetCalculation)
			roi.POST("/calculations/:id/status", r.handlers.TransitionCalculation)
			roi.POST("/calculations/:id/validation", r.handlers.AttachValidation)
		}

		// Business metric endpoints
		metricsGroup := v1.Group("/metrics")
		{
			metricsGroup.POST("", r.handlers.RecordMetric)
			metricsGroup.GET("/aggregate", r.handlers.AggregateMetrics)
		}

		// Dashboard endpoint
		v1.GET("/dashboard", r.handlers.GetDashboard)

		// Alert endpoints
		alerts := v1.Group("/alerts")
		{
			alerts.POST("/evaluate", r.handlers.EvaluateAlert)
			alerts.POST("/:id/acknowledge", r.handlers.AcknowledgeAlert)
			alerts.POST("/:id/resolve", r.handlers.ResolveAlert)
		}
	}

	// Prometheus metrics endpoint
	router.GET("/metrics", middleware.PrometheusHandler())

	return router
}

// registerBindingRules wires the closed enums into request binding so bad
// values fail at the edge with a field-level message.
func registerBindingRules() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("taskfreq", func(fl validator.FieldLevel) bool {
		return domain.TaskFrequency(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("metrictype", func(fl validator.FieldLevel) bool {
		return domain.BusinessMetricType(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("thresholdop", func(fl validator.FieldLevel) bool {
		return domain.ThresholdOperator(fl.Field().String()).IsValid()
	})
}
