package handlers

import (
	"net/http"
	"time"

	"spendtrack/internal/dto"
	"spendtrack/internal/errors"
	"spendtrack/internal/models"
	"spendtrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxLookbackDays = 3650

// AnalyticsHandler handles spending analytics HTTP requests
type AnalyticsHandler struct {
	sufficiencyService services.SufficiencyServiceInterface
	patternService     services.PatternServiceInterface
	anomalyService     services.AnomalyServiceInterface
	predictionService  services.PredictionServiceInterface
	metrics            services.MetricsRecorderInterface
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(
	sufficiencyService services.SufficiencyServiceInterface,
	patternService services.PatternServiceInterface,
	anomalyService services.AnomalyServiceInterface,
	predictionService services.PredictionServiceInterface,
	metrics services.MetricsRecorderInterface,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		sufficiencyService: sufficiencyService,
		patternService:     patternService,
		anomalyService:     anomalyService,
		predictionService:  predictionService,
		metrics:            metrics,
	}
}

// observe records request outcome and latency for one analytics operation
func (h *AnalyticsHandler) observe(operation string, start time.Time, status string) {
	h.metrics.RecordAnalyticsRequest(operation, status)
	h.metrics.RecordAnalyticsDuration(operation, time.Since(start))
}

// meta builds the confidence envelope attached to every analytics response
func (h *AnalyticsHandler) meta() (dto.AnalyticsMeta, error) {
	sufficiency, err := h.sufficiencyService.CheckDataSufficiency()
	if err != nil {
		return dto.AnalyticsMeta{}, err
	}
	return dto.NewAnalyticsMeta(sufficiency), nil
}

// GetDataSufficiency reports how much history the engine has to work with
// @Summary Data sufficiency check
// @Description Report months of data, record count, data quality score, and confidence level
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.SufficiencyResponse "Sufficiency report"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /analytics/sufficiency [get]
func (h *AnalyticsHandler) GetDataSufficiency(c echo.Context) error {
	start := time.Now()

	sufficiency, err := h.sufficiencyService.CheckDataSufficiency()
	if err != nil {
		h.observe("sufficiency", start, "error")
		return SendSystemError(c, err)
	}

	h.metrics.SetLedgerMonths(sufficiency.MonthsOfData)
	h.observe("sufficiency", start, "success")
	return c.JSON(http.StatusOK, dto.SufficiencyResponse{
		MonthsOfData:     sufficiency.MonthsOfData,
		RecordCount:      sufficiency.RecordCount,
		DataQualityScore: sufficiency.DataQualityScore,
		ConfidenceLevel:  models.ConfidenceForMonths(sufficiency.MonthsOfData),
	})
}

// GetDayOfWeekPatterns returns weekday spending buckets for a date range
// @Summary Day-of-week spending patterns
// @Description Bucket spending by weekday over an optional inclusive date range
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param startDate query string false "Inclusive range start (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive range end (YYYY-MM-DD)"
// @Success 200 {object} dto.DayOfWeekResponse "Weekday breakdown"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_005 - Invalid date format or range"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /analytics/patterns/day-of-week [get]
func (h *AnalyticsHandler) GetDayOfWeekPatterns(c echo.Context) error {
	start := time.Now()

	startDate, err := parseDateQuery(c, "startDate")
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("startDate must be YYYY-MM-DD"))
	}
	endDate, err := parseDateQuery(c, "endDate")
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("endDate must be YYYY-MM-DD"))
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("endDate must not be before startDate"))
	}

	report, err := h.patternService.GetDayOfWeekPatterns(startDate, endDate)
	if err != nil {
		h.observe("day_of_week", start, "error")
		return SendSystemError(c, err)
	}

	meta, err := h.meta()
	if err != nil {
		h.observe("day_of_week", start, "error")
		return SendSystemError(c, err)
	}

	h.observe("day_of_week", start, "success")
	return c.JSON(http.StatusOK, dto.DayOfWeekResponse{
		Days:          report.Days[:],
		WeeklyAverage: report.WeeklyAverage,
		Meta:          meta,
	})
}

// GetSeasonalAnalysis returns monthly and quarterly spending trends
// @Summary Seasonal spending analysis
// @Description Monthly and quarterly spending totals over a trailing window
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param monthsBack query int false "Trailing window in months" default(12)
// @Success 200 {object} dto.SeasonalResponse "Seasonal breakdown"
// @Failure 400 {object} errors.ErrorResponse "ANALYTICS_001 - Invalid period"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /analytics/patterns/seasonal [get]
func (h *AnalyticsHandler) GetSeasonalAnalysis(c echo.Context) error {
	start := time.Now()

	monthsBack, err := getIntParam(c, "monthsBack", services.DefaultSeasonalMonthsBack)
	if err != nil || monthsBack < 1 || monthsBack > 120 {
		return SendError(c, errors.AnalyticsInvalidPeriod, errors.WithDetails("monthsBack must be between 1 and 120"))
	}

	report, err := h.patternService.GetSeasonalAnalysis(monthsBack)
	if err != nil {
		h.observe("seasonal", start, "error")
		return SendSystemError(c, err)
	}

	meta, err := h.meta()
	if err != nil {
		h.observe("seasonal", start, "error")
		return SendSystemError(c, err)
	}

	h.observe("seasonal", start, "success")
	return c.JSON(http.StatusOK, dto.SeasonalResponse{
		MonthlyData:   report.MonthlyData,
		QuarterlyData: report.QuarterlyData,
		Meta:          meta,
	})
}

// GetRecurringPatterns returns detected recurring merchant charges
// @Summary Recurring spending patterns
// @Description Detect merchant and category pairs with stable repeated amounts
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.RecurringResponse "Recurring patterns"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /analytics/patterns/recurring [get]
func (h *AnalyticsHandler) GetRecurringPatterns(c echo.Context) error {
	start := time.Now()

	patterns, err := h.patternService.GetRecurringPatterns()
	if err != nil {
		h.observe("recurring", start, "error")
		return SendSystemError(c, err)
	}

	meta, err := h.meta()
	if err != nil {
		h.observe("recurring", start, "error")
		return SendSystemError(c, err)
	}

	h.observe("recurring", start, "success")
	return c.JSON(http.StatusOK, dto.RecurringResponse{
		Patterns: patterns,
		Meta:     meta,
	})
}

// GetCategoryBaseline returns the statistical baseline for one category
// @Summary Category spending baseline
// @Description Mean and standard deviation of amounts for a category over a lookback window
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param category path string true "Expense category"
// @Param lookbackDays query int false "Lookback window in days, 0 means full history" default(0)
// @Success 200 {object} dto.BaselineResponse "Category baseline"
// @Failure 400 {object} errors.ErrorResponse "EXPENSE_004 - Invalid category or ANALYTICS_002 - Invalid lookback"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /analytics/baseline/{category} [get]
func (h *AnalyticsHandler) GetCategoryBaseline(c echo.Context) error {
	start := time.Now()

	category := c.Param("category")
	if !models.IsValidCategory(category) {
		return SendError(c, errors.ExpenseInvalidCategory)
	}

	lookbackDays, ok := lookbackParam(c)
	if !ok {
		return SendError(c, errors.AnalyticsInvalidLookback)
	}

	baseline, err := h.anomalyService.CalculateCategoryBaseline(category, lookbackDays)
	if err != nil {
		h.observe("baseline", start, "error")
		return SendSystemError(c, err)
	}

	meta, err := h.meta()
	if err != nil {
		h.observe("baseline", start, "error")
		return SendSystemError(c, err)
	}

	h.observe("baseline", start, "success")
	return c.JSON(http.StatusOK, dto.BaselineResponse{
		Baseline: *baseline,
		Meta:     meta,
	})
}

// DetectAnomalies returns statistically unusual expenses in the lookback window
// @Summary Detect spending anomalies
// @Description Flag recent expenses deviating abnormally from their category baseline
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param lookbackDays query int false "Lookback window in days, 0 means the configured default" default(0)
// @Success 200 {object} dto.AnomalyResponse "Detected anomalies"
// @Failure 400 {object} errors.ErrorResponse "ANALYTICS_002 - Invalid lookback"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /analytics/anomalies [get]
func (h *AnalyticsHandler) DetectAnomalies(c echo.Context) error {
	start := time.Now()

	lookbackDays, ok := lookbackParam(c)
	if !ok {
		return SendError(c, errors.AnalyticsInvalidLookback)
	}

	anomalies, err := h.anomalyService.DetectAnomalies(lookbackDays)
	if err != nil {
		h.observe("anomalies", start, "error")
		return SendSystemError(c, err)
	}

	meta, err := h.meta()
	if err != nil {
		h.observe("anomalies", start, "error")
		return SendSystemError(c, err)
	}

	h.metrics.RecordAnomaliesDetected(len(anomalies))
	h.observe("anomalies", start, "success")
	return c.JSON(http.StatusOK, dto.AnomalyResponse{
		Anomalies: anomalies,
		Meta:      meta,
	})
}

// DismissAnomaly marks one expense as not anomalous for future scans
// @Summary Dismiss an anomaly
// @Description Exclude an expense from future anomaly reports
// @Tags Analytics
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.DismissAnomalyRequest true "Expense to dismiss"
// @Success 200 {object} SuccessResponse "Anomaly dismissed"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Router /analytics/anomalies/dismiss [post]
func (h *AnalyticsHandler) DismissAnomaly(c echo.Context) error {
	var req dto.DismissAnomalyRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	expenseID, err := uuid.Parse(req.ExpenseID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid expense ID"))
	}

	h.anomalyService.DismissAnomaly(expenseID)
	h.metrics.RecordAnomalyDismissed()

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Anomaly dismissed",
	})
}

// ClearDismissedAnomalies forgets every dismissal
// @Summary Clear dismissed anomalies
// @Description Remove all dismissals so future scans report every anomaly again
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse "Dismissals cleared"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Router /analytics/anomalies/dismissals [delete]
func (h *AnalyticsHandler) ClearDismissedAnomalies(c echo.Context) error {
	h.anomalyService.ClearDismissedAnomalies()
	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Dismissed anomalies cleared",
	})
}

// GetMonthEndPrediction projects total spending for a month
// @Summary Month-end spending prediction
// @Description Project total spending for a month from the days elapsed so far
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param year path int true "Target year"
// @Param month path int true "Target month (1-12)"
// @Success 200 {object} dto.PredictionResponse "Month-end prediction"
// @Failure 400 {object} errors.ErrorResponse "ANALYTICS_001 - Invalid period"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /analytics/predictions/{year}/{month} [get]
func (h *AnalyticsHandler) GetMonthEndPrediction(c echo.Context) error {
	start := time.Now()

	year, month, ok := periodParams(c)
	if !ok {
		return SendError(c, errors.AnalyticsInvalidPeriod)
	}

	prediction, err := h.predictionService.GetMonthEndPrediction(year, month)
	if err != nil {
		h.observe("prediction", start, "error")
		return SendSystemError(c, err)
	}

	meta, err := h.meta()
	if err != nil {
		h.observe("prediction", start, "error")
		return SendSystemError(c, err)
	}

	h.observe("prediction", start, "success")
	return c.JSON(http.StatusOK, dto.PredictionResponse{
		Prediction: *prediction,
		Meta:       meta,
	})
}

// GetHistoricalComparison compares a month against its preceding months
// @Summary Historical month comparison
// @Description Compare a month's spending against the preceding months and the same month last year
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param year path int true "Target year"
// @Param month path int true "Target month (1-12)"
// @Success 200 {object} dto.ComparisonResponse "Historical comparison"
// @Failure 400 {object} errors.ErrorResponse "ANALYTICS_001 - Invalid period"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /analytics/comparisons/{year}/{month} [get]
func (h *AnalyticsHandler) GetHistoricalComparison(c echo.Context) error {
	start := time.Now()

	year, month, ok := periodParams(c)
	if !ok {
		return SendError(c, errors.AnalyticsInvalidPeriod)
	}

	comparison, err := h.predictionService.GetHistoricalComparison(year, month)
	if err != nil {
		h.observe("comparison", start, "error")
		return SendSystemError(c, err)
	}

	meta, err := h.meta()
	if err != nil {
		h.observe("comparison", start, "error")
		return SendSystemError(c, err)
	}

	h.observe("comparison", start, "success")
	return c.JSON(http.StatusOK, dto.ComparisonResponse{
		Comparison: *comparison,
		Meta:       meta,
	})
}

// periodParams parses and bounds the :year/:month path parameters
func periodParams(c echo.Context) (year, month int, ok bool) {
	var p dto.PredictionParams
	if err := c.Bind(&p); err != nil {
		return 0, 0, false
	}
	if p.Year < 1970 || p.Year > 2100 || p.Month < 1 || p.Month > 12 {
		return 0, 0, false
	}
	return p.Year, p.Month, true
}

// lookbackParam parses the lookbackDays query parameter. Zero or absent
// means the caller-specific default.
func lookbackParam(c echo.Context) (int, bool) {
	lookbackDays, err := getIntParam(c, "lookbackDays", 0)
	if err != nil || lookbackDays < 0 || lookbackDays > maxLookbackDays {
		return 0, false
	}
	return lookbackDays, true
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter
func parseDateQuery(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
