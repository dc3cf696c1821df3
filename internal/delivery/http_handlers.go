package delivery

import (
	"errors"
	"net/http"
	"time"

	"roiengine/internal/domain"
	"roiengine/internal/usecase"
	"roiengine/pkg/logger"
	"roiengine/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// handles HTTP requests
type HTTPHandlers struct {
	roiService    *usecase.ROIService
	metricService *usecase.MetricService
	alerts        *usecase.AlertEvaluator
	logger        *logger.Logger
	metrics       *metrics.Metrics
}

// creates new HTTP handlers
func NewHTTPHandlers(
	roiService *usecase.ROIService,
	metricService *usecase.MetricService,
	alerts *usecase.AlertEvaluator,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *HTTPHandlers {
	return &HTTPHandlers{
		roiService:    roiService,
		metricService: metricService,
		alerts:        alerts,
		logger:        logger,
		metrics:       metrics,
	}
}

// ComputeROI runs the full calculation pipeline for one workflow
func (h *HTTPHandlers) ComputeROI(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	var req computeROIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	calc, err := h.roiService.ComputeROI(c.Request.Context(), req.toDomain())
	if err != nil {
		h.domainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, calc)
}

// GetCalculation returns one stored calculation
func (h *HTTPHandlers) GetCalculation(c *gin.Context) {
	calc, err := h.roiService.GetCalculation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, calc)
}

// ListCalculations returns an organization's calculations
func (h *HTTPHandlers) ListCalculations(c *gin.Context) {
	organizationID := c.Query("organization_id")
	if organizationID == "" {
		h.badRequest(c, errors.New("organization_id is required"))
		return
	}

	calcs, err := h.roiService.GetByOrganization(c.Request.Context(), organizationID)
	if err != nil {
		h.domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": calcs, "total": len(calcs)})
}

// TransitionCalculation advances the calculation lifecycle
func (h *HTTPHandlers) TransitionCalculation(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	calc, err := h.roiService.Transition(c.Request.Context(), c.Param("id"), domain.CalculationStatus(req.Status))
	if err != nil {
		h.domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, calc)
}

// AttachValidation stores measured outcomes against a calculation
func (h *HTTPHandlers) AttachValidation(c *gin.Context) {
	var req attachValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	calc, err := h.roiService.AttachValidation(c.Request.Context(), c.Param("id"), req.toDomain())
	if err != nil {
		h.domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, calc)
}

// RecordMetric stores one business metric sample
func (h *HTTPHandlers) RecordMetric(c *gin.Context) {
	var req recordMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	metric, err := h.metricService.RecordMetric(c.Request.Context(), req.toDomain())
	if err != nil {
		h.domainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, metric)
}

// AggregateMetrics summarizes a workflow's samples of one type
func (h *HTTPHandlers) AggregateMetrics(c *gin.Context) {
	workflowID := c.Query("workflow_id")
	metricType := c.Query("type")
	if workflowID == "" || metricType == "" {
		h.badRequest(c, errors.New("workflow_id and type are required"))
		return
	}

	from, to, err := parseWindow(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	aggregation, err := h.metricService.AggregateWorkflowMetrics(c.Request.Context(), workflowID, domain.BusinessMetricType(metricType), from, to)
	if err != nil {
		h.domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, aggregation)
}

// GetDashboard builds the organization dashboard snapshot
func (h *HTTPHandlers) GetDashboard(c *gin.Context) {
	organizationID := c.Query("organization_id")
	if organizationID == "" {
		h.badRequest(c, errors.New("organization_id is required"))
		return
	}

	from, to, err := parseWindow(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	dashboard, err := h.metricService.BuildDashboard(c.Request.Context(), organizationID, from, to)
	if err != nil {
		h.domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// EvaluateAlert applies a threshold rule to a current metric value
func (h *HTTPHandlers) EvaluateAlert(c *gin.Context) {
	var req evaluateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	alert, err := h.alerts.Evaluate(c.Request.Context(), req.OrganizationID, req.WorkflowID, req.CurrentValue, req.threshold())
	if err != nil {
		h.domainError(c, err)
		return
	}
	if alert == nil {
		c.JSON(http.StatusOK, gin.H{"alert": nil, "triggered": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alert": alert, "triggered": true})
}

// AcknowledgeAlert marks an alert as seen
func (h *HTTPHandlers) AcknowledgeAlert(c *gin.Context) {
	alert, err := h.alerts.Acknowledge(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

// ResolveAlert closes an alert
func (h *HTTPHandlers) ResolveAlert(c *gin.Context) {
	alert, err := h.alerts.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

// HealthCheck reports service liveness
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
}

func (h *HTTPHandlers) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":      "Invalid request",
		"message":    err.Error(),
		"request_id": c.GetString("request_id"),
	})
}

// domainError maps the engine's error taxonomy onto HTTP statuses.
func (h *HTTPHandlers) domainError(c *gin.Context, err error) {
	requestID := c.GetString("request_id")

	var verr *domain.ValidationError
	var cerr *domain.ConfigurationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "Validation failed",
			"field":      verr.Field,
			"value":      verr.Value,
			"message":    verr.Reason,
			"request_id": requestID,
		})
	case errors.As(err, &cerr):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Configuration error",
			"key":        cerr.Key,
			"message":    cerr.Reason,
			"request_id": requestID,
		})
	case errors.Is(err, domain.ErrCalculationNotFound), errors.Is(err, domain.ErrAlertNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":      "Not found",
			"message":    err.Error(),
			"request_id": requestID,
		})
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrAlertResolved):
		c.JSON(http.StatusConflict, gin.H{
			"error":      "Conflict",
			"message":    err.Error(),
			"request_id": requestID,
		})
	default:
		h.logger.WithContext(c.Request.Context()).WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Internal server error",
			"message":    err.Error(),
			"request_id": requestID,
		})
	}
}

func parseWindow(c *gin.Context) (time.Time, time.Time, error) {
	var from, to time.Time
	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return from, to, errors.New("from must be in YYYY-MM-DD format")
		}
		from = parsed
	}
	if toStr := c.Query("to"); toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return from, to, errors.New("to must be in YYYY-MM-DD format")
		}
		to = parsed
	}
	return from, to, nil
}
