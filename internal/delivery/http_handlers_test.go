package delivery

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"roiengine/internal/infrastructure"
	"roiengine/internal/usecase"
	"roiengine/pkg/config"
	"roiengine/pkg/logger"
	"roiengine/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testMetrics = metrics.New()
	testLogger  = logger.New("error")
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := config.EngineConfig{
		IRRMaxIterations: 100,
		IRRTolerance:     1e-6,
		IRRBracketLow:    -0.99,
		IRRBracketHigh:   10.0,
		BenchmarkMargin:  0.10,
		TrendUpPercent:   2.0,
		TrendDownPercent: -2.0,
		RiskWeights:      config.RiskWeightConfig{Technical: 1, Financial: 1, Operational: 1, Strategic: 1},
	}
	serverCfg := config.ServerConfig{
		Port:           "0",
		RequestTimeout: 5 * time.Second,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}

	source, err := infrastructure.NewBenchmarkSource(infrastructure.DefaultBenchmarks())
	require.NoError(t, err)

	calcRepo := infrastructure.NewCalculationRepository(testLogger)
	metricRepo := infrastructure.NewMetricRepository(testLogger)
	alertRepo := infrastructure.NewAlertRepository(testLogger)

	calculator := usecase.NewCalculator(cfg)
	roiService := usecase.NewROIService(
		calcRepo,
		calculator,
		usecase.NewSensitivityAnalyzer(calculator),
		usecase.NewRiskAssessor(cfg.RiskWeights),
		usecase.NewBenchmarkComparator(source, cfg.BenchmarkMargin),
		testLogger,
		testMetrics,
	)
	metricService := usecase.NewMetricService(
		metricRepo,
		alertRepo,
		usecase.NewAggregator(),
		usecase.NewDashboardBuilder(cfg),
		testLogger,
		testMetrics,
	)
	alerts := usecase.NewAlertEvaluator(alertRepo, testLogger, testMetrics)

	handlers := NewHTTPHandlers(roiService, metricService, alerts, testLogger, testMetrics)
	return NewHTTPRouter(handlers, serverCfg, testLogger, testMetrics).SetupRoutes()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var decoded map[string]any
	if resp.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &decoded))
	}
	return resp, decoded
}

func computeBody() string {
	return `{
		"workflow_id": "wf-1",
		"organization_id": "org-1",
		"user_id": "user-1",
		"inputs": {
			"manual_time_per_task": 60,
			"automated_time_per_task": 5,
			"task_frequency": "weekly",
			"tasks_per_period": 100,
			"employee_hourly_rate": 25,
			"implementation_hours": 40,
			"implementation_rate": 100
		},
		"assumptions": {
			"discount_rate": 0.08,
			"technology_lifespan": 3
		}
	}`
}

func TestComputeROIEndpoint(t *testing.T) {
	router := newTestRouter(t)

	t.Run("creates a calculation", func(t *testing.T) {
		resp, body := doJSON(t, router, http.MethodPost, "/api/v1/roi/calculate", computeBody())

		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
		assert.Equal(t, "draft", body["status"])
		assert.NotEmpty(t, body["id"])

		results, ok := body["results"].(map[string]any)
		require.True(t, ok)
		assert.InDelta(t, 9922.92, results["monthly_savings"].(float64), 0.5)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		resp, _ := doJSON(t, router, http.MethodPost, "/api/v1/roi/calculate", `{"workflow_id": "wf-1"`)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("unknown frequency fails binding", func(t *testing.T) {
		body := strings.Replace(computeBody(), `"weekly"`, `"hourly"`, 1)
		resp, _ := doJSON(t, router, http.MethodPost, "/api/v1/roi/calculate", body)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("semantic rejection is a 422", func(t *testing.T) {
		body := strings.Replace(computeBody(), `"employee_hourly_rate": 25`, `"employee_hourly_rate": 0`, 1)
		resp, decoded := doJSON(t, router, http.MethodPost, "/api/v1/roi/calculate", body)

		require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		assert.Equal(t, "employee_hourly_rate", decoded["field"])
	})
}

func TestCalculationLifecycleEndpoints(t *testing.T) {
	router := newTestRouter(t)

	_, created := doJSON(t, router, http.MethodPost, "/api/v1/roi/calculate", computeBody())
	id := created["id"].(string)

	t.Run("fetch by id", func(t *testing.T) {
		resp, body := doJSON(t, router, http.MethodGet, "/api/v1/roi/calculations/"+id, "")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, id, body["id"])
	})

	t.Run("list by organization", func(t *testing.T) {
		resp, body := doJSON(t, router, http.MethodGet, "/api/v1/roi/calculations?organization_id=org-1", "")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.EqualValues(t, 1, body["total"])
	})

	t.Run("missing organization is a 400", func(t *testing.T) {
		resp, _ := doJSON(t, router, http.MethodGet, "/api/v1/roi/calculations", "")
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("status transition", func(t *testing.T) {
		resp, body := doJSON(t, router, http.MethodPost, "/api/v1/roi/calculations/"+id+"/status", `{"status": "validated"}`)
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "validated", body["status"])
	})

	t.Run("illegal transition is a 409", func(t *testing.T) {
		resp, _ := doJSON(t, router, http.MethodPost, "/api/v1/roi/calculations/"+id+"/status", `{"status": "archived"}`)
		assert.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		resp, _ := doJSON(t, router, http.MethodGet, "/api/v1/roi/calculations/missing", "")
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("attach validation data", func(t *testing.T) {
		resp, body := doJSON(t, router, http.MethodPost, "/api/v1/roi/calculations/"+id+"/validation",
			`{"measured_monthly_savings": 9000, "measurement_period_days": 90}`)
		require.Equal(t, http.StatusOK, resp.Code)

		validation, ok := body["validation"].(map[string]any)
		require.True(t, ok)
		accuracy, ok := validation["accuracy_percent"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, true, accuracy["defined"])
	})
}

func TestMetricAndDashboardEndpoints(t *testing.T) {
	router := newTestRouter(t)

	metricBody := func(value float64) string {
		return fmt.Sprintf(`{
			"workflow_id": "wf-1",
			"organization_id": "org-1",
			"type": "time_saved",
			"value": %g,
			"unit": "hours",
			"confidence": 90
		}`, value)
	}

	t.Run("record metric", func(t *testing.T) {
		resp, body := doJSON(t, router, http.MethodPost, "/api/v1/metrics", metricBody(12))
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
		assert.NotEmpty(t, body["id"])
	})

	t.Run("unknown metric type fails binding", func(t *testing.T) {
		body := strings.Replace(metricBody(12), `"time_saved"`, `"latency"`, 1)
		resp, _ := doJSON(t, router, http.MethodPost, "/api/v1/metrics", body)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("aggregate", func(t *testing.T) {
		_, _ = doJSON(t, router, http.MethodPost, "/api/v1/metrics", metricBody(18))

		resp, body := doJSON(t, router, http.MethodGet, "/api/v1/metrics/aggregate?workflow_id=wf-1&type=time_saved", "")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.EqualValues(t, 2, body["count"])
		assert.InDelta(t, 30.0, body["sum"].(float64), 1e-9)
	})

	t.Run("bad window format is a 400", func(t *testing.T) {
		resp, _ := doJSON(t, router, http.MethodGet, "/api/v1/metrics/aggregate?workflow_id=wf-1&type=time_saved&from=March", "")
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("dashboard", func(t *testing.T) {
		resp, body := doJSON(t, router, http.MethodGet, "/api/v1/dashboard?organization_id=org-1", "")
		require.Equal(t, http.StatusOK, resp.Code)

		summary, ok := body["summary"].(map[string]any)
		require.True(t, ok)
		assert.EqualValues(t, 1, summary["total_workflows"])
		assert.InDelta(t, 30.0, summary["total_hours_saved"].(float64), 1e-9)
	})
}

func TestAlertEndpoints(t *testing.T) {
	router := newTestRouter(t)

	evaluateBody := func(current float64) string {
		return fmt.Sprintf(`{
			"organization_id": "org-1",
			"workflow_id": "wf-1",
			"current_value": %g,
			"threshold": {"metric": "error_reduction", "operator": "gt", "value": 5, "severity": "warning"}
		}`, current)
	}

	t.Run("condition not met", func(t *testing.T) {
		resp, body := doJSON(t, router, http.MethodPost, "/api/v1/alerts/evaluate", evaluateBody(3))
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, false, body["triggered"])
		assert.Nil(t, body["alert"])
	})

	t.Run("triggered, then acknowledged and resolved", func(t *testing.T) {
		resp, body := doJSON(t, router, http.MethodPost, "/api/v1/alerts/evaluate", evaluateBody(7))
		require.Equal(t, http.StatusOK, resp.Code)
		require.Equal(t, true, body["triggered"])

		alert := body["alert"].(map[string]any)
		id := alert["id"].(string)

		resp, body = doJSON(t, router, http.MethodPost, "/api/v1/alerts/"+id+"/acknowledge", "")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, true, body["acknowledged"])

		resp, _ = doJSON(t, router, http.MethodPost, "/api/v1/alerts/"+id+"/resolve", "")
		require.Equal(t, http.StatusOK, resp.Code)

		resp, _ = doJSON(t, router, http.MethodPost, "/api/v1/alerts/"+id+"/resolve", "")
		assert.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("invalid operator fails binding", func(t *testing.T) {
		body := strings.Replace(evaluateBody(7), `"gt"`, `"between"`, 1)
		resp, _ := doJSON(t, router, http.MethodPost, "/api/v1/alerts/evaluate", body)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	resp, body := doJSON(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ok", body["status"])
}
