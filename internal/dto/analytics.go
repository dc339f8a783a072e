package dto

import (
	"spendtrack/internal/models"
)

// Analytics Request DTOs

// AnomalyQueryParams contains query parameters for anomaly detection
type AnomalyQueryParams struct {
	LookbackDays int `query:"lookbackDays"`
}

// PredictionParams contains path/query parameters for monthly predictions
type PredictionParams struct {
	Year  int `param:"year"`
	Month int `param:"month"`
}

// DismissAnomalyRequest identifies the expense whose anomaly should be dismissed
type DismissAnomalyRequest struct {
	ExpenseID string `json:"expenseId" validate:"required,uuid"`
}

// Analytics Response DTOs

// AnalyticsMeta is attached to every analytics response so clients can judge
// how much to trust the numbers
type AnalyticsMeta struct {
	DataQuality     float64                `json:"dataQuality"`
	ConfidenceLevel models.ConfidenceLevel `json:"confidenceLevel"`
}

// NewAnalyticsMeta builds the metadata envelope from a sufficiency report
func NewAnalyticsMeta(sufficiency *models.DataSufficiency) AnalyticsMeta {
	return AnalyticsMeta{
		DataQuality:     sufficiency.DataQualityScore,
		ConfidenceLevel: models.ConfidenceForMonths(sufficiency.MonthsOfData),
	}
}

// SufficiencyResponse reports how much history the engine has to work with
type SufficiencyResponse struct {
	MonthsOfData     int                    `json:"monthsOfData"`
	RecordCount      int64                  `json:"recordCount"`
	DataQualityScore float64                `json:"dataQualityScore"`
	ConfidenceLevel  models.ConfidenceLevel `json:"confidenceLevel"`
}

// DayOfWeekResponse wraps the day-of-week spending report
type DayOfWeekResponse struct {
	Days          []models.DayOfWeekBucket `json:"days"`
	WeeklyAverage float64                  `json:"weeklyAverage"`
	Meta          AnalyticsMeta            `json:"meta"`
}

// SeasonalResponse wraps the monthly and quarterly seasonal breakdown
type SeasonalResponse struct {
	MonthlyData   []models.SeasonalEntry `json:"monthlyData"`
	QuarterlyData []models.SeasonalEntry `json:"quarterlyData"`
	Meta          AnalyticsMeta          `json:"meta"`
}

// RecurringResponse wraps detected recurring merchant patterns
type RecurringResponse struct {
	Patterns []models.RecurringPattern `json:"patterns"`
	Meta     AnalyticsMeta             `json:"meta"`
}

// BaselineResponse wraps the per-category statistical baseline
type BaselineResponse struct {
	Baseline models.CategoryBaseline `json:"baseline"`
	Meta     AnalyticsMeta           `json:"meta"`
}

// AnomalyResponse wraps detected spending anomalies
type AnomalyResponse struct {
	Anomalies []models.Anomaly `json:"anomalies"`
	Meta      AnalyticsMeta    `json:"meta"`
}

// PredictionResponse wraps the month-end spending prediction
type PredictionResponse struct {
	Prediction models.Prediction `json:"prediction"`
	Meta       AnalyticsMeta     `json:"meta"`
}

// ComparisonResponse wraps the historical month comparison
type ComparisonResponse struct {
	Comparison models.HistoricalComparison `json:"comparison"`
	Meta       AnalyticsMeta               `json:"meta"`
}
