package main

import (
	"fmt"
	"os"

	"roiengine/internal/delivery"
	"roiengine/internal/infrastructure"
	"roiengine/internal/usecase"
	"roiengine/pkg/config"
	"roiengine/pkg/logger"
	"roiengine/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info("Starting ROI engine")

	promMetrics := metrics.New()

	// Repositories
	calcRepo := infrastructure.NewCalculationRepository(log)
	metricRepo := infrastructure.NewMetricRepository(log)
	alertRepo := infrastructure.NewAlertRepository(log)

	benchmarkSource, err := infrastructure.NewBenchmarkSource(infrastructure.DefaultBenchmarks())
	if err != nil {
		log.WithError(err).Fatal("Invalid benchmark configuration")
	}

	// Engine components
	calculator := usecase.NewCalculator(cfg.Engine)
	sensitivity := usecase.NewSensitivityAnalyzer(calculator)
	risk := usecase.NewRiskAssessor(cfg.Engine.RiskWeights)
	benchmarks := usecase.NewBenchmarkComparator(benchmarkSource, cfg.Engine.BenchmarkMargin)
	aggregator := usecase.NewAggregator()
	builder := usecase.NewDashboardBuilder(cfg.Engine)

	// Services
	roiService := usecase.NewROIService(calcRepo, calculator, sensitivity, risk, benchmarks, log, promMetrics)
	metricService := usecase.NewMetricService(metricRepo, alertRepo, aggregator, builder, log, promMetrics)
	alertEvaluator := usecase.NewAlertEvaluator(alertRepo, log, promMetrics)

	// HTTP delivery
	handlers := delivery.NewHTTPHandlers(roiService, metricService, alertEvaluator, log, promMetrics)
	router := delivery.NewHTTPRouter(handlers, cfg.Server, log, promMetrics)

	engine := router.SetupRoutes()

	log.WithField("port", cfg.Server.Port).Info("HTTP server listening")
	if err := engine.Run(":" + cfg.Server.Port); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}
