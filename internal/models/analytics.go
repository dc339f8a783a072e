package models

import (
	"time"

	"github.com/google/uuid"
)

// ConfidenceLevel is a coarse label for how much historical evidence backs
// an analytics result. It is derived from months of data alone so that every
// endpoint reports the same level for the same ledger.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// ConfidenceForMonths maps months of historical data to a confidence level.
// Boundaries are inclusive: 6 months is medium, 12 months is high.
func ConfidenceForMonths(monthsOfData int) ConfidenceLevel {
	switch {
	case monthsOfData >= 12:
		return ConfidenceHigh
	case monthsOfData >= 6:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// DataSufficiency quantifies how much historical evidence exists in the
// ledger. Both fields are zero for an empty ledger.
type DataSufficiency struct {
	MonthsOfData     int     `json:"monthsOfData"`
	RecordCount      int64   `json:"recordCount"`
	DataQualityScore float64 `json:"dataQualityScore"`
}

// DayOfWeekBucket aggregates spending for one weekday (0 = Sunday).
type DayOfWeekBucket struct {
	Day                  int     `json:"day"`
	TransactionCount     int     `json:"transactionCount"`
	AverageSpend         float64 `json:"averageSpend"`
	PercentOfWeeklyTotal float64 `json:"percentOfWeeklyTotal"`
}

// DayOfWeekReport is the full weekday breakdown for a date range.
type DayOfWeekReport struct {
	Days          [7]DayOfWeekBucket `json:"days"`
	WeeklyAverage float64            `json:"weeklyAverage"`
}

// SeasonalEntry is the spending total for one period (month or quarter).
// PreviousPeriodChange is nil when no prior-period baseline exists, never
// merely because the prior total is small.
type SeasonalEntry struct {
	Period               string   `json:"period"`
	TotalSpent           float64  `json:"totalSpent"`
	PreviousPeriodChange *float64 `json:"previousPeriodChange"`
}

// SeasonalReport holds the monthly and quarterly trend series.
type SeasonalReport struct {
	MonthlyData   []SeasonalEntry `json:"monthlyData"`
	QuarterlyData []SeasonalEntry `json:"quarterlyData"`
}

// RecurringPattern describes a merchant/category combination that repeats
// across multiple calendar months at an approximately stable amount.
type RecurringPattern struct {
	Place         string    `json:"place"`
	Category      string    `json:"category"`
	AverageAmount float64   `json:"averageAmount"`
	Cadence       string    `json:"cadence"`
	ExpenseCount  int       `json:"expenseCount"`
	MonthsSeen    int       `json:"monthsSeen"`
	FirstSeen     time.Time `json:"firstSeen"`
	LastSeen      time.Time `json:"lastSeen"`
}

// Recurring pattern cadences
const (
	CadenceMonthly   = "monthly"
	CadenceQuarterly = "quarterly"
	CadenceIrregular = "irregular"
)

// CategoryBaseline is the historical mean/standard-deviation profile of one
// category, the reference distribution for anomaly scoring. When the sample
// count is below the minimum policy, HasValidBaseline is false and both
// statistics are zero.
type CategoryBaseline struct {
	Category         string  `json:"category"`
	Mean             float64 `json:"mean"`
	StdDev           float64 `json:"stdDev"`
	Count            int     `json:"count"`
	HasValidBaseline bool    `json:"hasValidBaseline"`
}

// Anomaly types
const (
	AnomalyTypeAmount = "amount"
)

// Anomaly flags an expense whose amount deviates abnormally from its
// category baseline.
type Anomaly struct {
	ExpenseID   uuid.UUID `json:"expenseId"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Place       string    `json:"place"`
	Amount      float64   `json:"amount"`
	ZScore      float64   `json:"zScore"`
	AnomalyType string    `json:"anomalyType"`
	Dismissed   bool      `json:"dismissed"`
}

// Prediction is a month-end spending projection from partial-month data.
// Every numeric field is finite; YearOverYearChange is nil exactly when no
// expense exists in the same calendar month one year prior.
type Prediction struct {
	Year               int             `json:"year"`
	Month              int             `json:"month"`
	CurrentSpent       float64         `json:"currentSpent"`
	PredictedTotal     float64         `json:"predictedTotal"`
	DailyAverage       float64         `json:"dailyAverage"`
	DaysElapsed        int             `json:"daysElapsed"`
	DaysRemaining      int             `json:"daysRemaining"`
	YearOverYearChange *float64        `json:"yearOverYearChange"`
	ConfidenceLevel    ConfidenceLevel `json:"confidenceLevel"`
}

// MonthComparison is one prior month inside a historical comparison window.
// ChangePercent is the target month's delta versus this month, nil when this
// month has no data to compare against.
type MonthComparison struct {
	Year          int      `json:"year"`
	Month         int      `json:"month"`
	TotalSpent    float64  `json:"totalSpent"`
	ChangePercent *float64 `json:"changePercent"`
}

// HistoricalComparison relates a target month to a trailing window of prior
// months and to the same month one year earlier.
type HistoricalComparison struct {
	Year              int               `json:"year"`
	Month             int               `json:"month"`
	TotalSpent        float64           `json:"totalSpent"`
	PriorMonths       []MonthComparison `json:"priorMonths"`
	SameMonthLastYear *MonthComparison  `json:"sameMonthLastYear"`
	AveragePriorSpend float64           `json:"averagePriorSpend"`
	VsAverageChange   *float64          `json:"vsAverageChange"`
}
