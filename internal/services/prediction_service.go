package services

import (
	"fmt"
	"log/slog"
	"time"

	"spendtrack/internal/models"
	"spendtrack/internal/repositories"
)

// ComparisonWindowMonths is how many immediately preceding months a
// historical comparison covers
const ComparisonWindowMonths = 6

// predictionService implements PredictionServiceInterface. Predictions are
// linear extrapolations of partial-month spending; every numeric output is
// finite regardless of how sparse the ledger is.
type predictionService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	sufficiency SufficiencyServiceInterface
	logger      *slog.Logger
	nowFn       func() time.Time
}

// NewPredictionService creates a predictor over the expense ledger. The
// confidence level on every prediction comes from the sufficiency checker,
// never computed independently.
func NewPredictionService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	sufficiency SufficiencyServiceInterface,
	logger *slog.Logger,
) PredictionServiceInterface {
	return &predictionService{
		expenseRepo: expenseRepo,
		sufficiency: sufficiency,
		logger:      logger,
		nowFn:       time.Now,
	}
}

// NewPredictionServiceWithClock creates a predictor with an injected clock,
// used by tests to pin "today"
func NewPredictionServiceWithClock(
	expenseRepo repositories.ExpenseRepositoryInterface,
	sufficiency SufficiencyServiceInterface,
	logger *slog.Logger,
	nowFn func() time.Time,
) PredictionServiceInterface {
	return &predictionService{
		expenseRepo: expenseRepo,
		sufficiency: sufficiency,
		logger:      logger,
		nowFn:       nowFn,
	}
}

// GetMonthEndPrediction projects total spending for the given month from the
// days elapsed so far. A fully past month reports its actual total; a fully
// future month reports zero elapsed days and a finite zero projection.
func (s *predictionService) GetMonthEndPrediction(year, month int) (*models.Prediction, error) {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	daysInMonth := monthEnd.Day()

	now := s.nowFn().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var daysElapsed, daysRemaining int
	var spentUntil time.Time
	switch {
	case monthEnd.Before(today):
		// Month entirely in the past.
		daysElapsed = daysInMonth
		daysRemaining = 0
		spentUntil = monthEnd
	case monthStart.After(today):
		// Month entirely in the future.
		daysElapsed = 0
		daysRemaining = daysInMonth
		spentUntil = monthEnd
	default:
		daysElapsed = today.Day()
		daysRemaining = daysInMonth - today.Day()
		spentUntil = today
	}

	currentSpent, _, err := s.monthTotal(monthStart, spentUntil)
	if err != nil {
		return nil, err
	}

	var dailyAverage, predictedTotal float64
	if daysElapsed > 0 {
		dailyAverage = currentSpent / float64(daysElapsed)
		predictedTotal = currentSpent + dailyAverage*float64(daysRemaining)
	}

	yearOverYear, err := s.yearOverYearChange(year, month, currentSpent)
	if err != nil {
		return nil, err
	}

	sufficiency, err := s.sufficiency.CheckDataSufficiency()
	if err != nil {
		return nil, err
	}

	return &models.Prediction{
		Year:               year,
		Month:              month,
		CurrentSpent:       currentSpent,
		PredictedTotal:     predictedTotal,
		DailyAverage:       dailyAverage,
		DaysElapsed:        daysElapsed,
		DaysRemaining:      daysRemaining,
		YearOverYearChange: yearOverYear,
		ConfidenceLevel:    models.ConfidenceForMonths(sufficiency.MonthsOfData),
	}, nil
}

// GetHistoricalComparison relates the target month to its trailing window of
// prior months and to the same month one year earlier, with the same
// finite-guarded delta logic as seasonal analysis.
func (s *predictionService) GetHistoricalComparison(year, month int) (*models.HistoricalComparison, error) {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	windowStart := monthStart.AddDate(0, -ComparisonWindowMonths, 0)

	expenses, err := s.expenseRepo.GetByDateRange(&windowStart, &monthEnd)
	if err != nil {
		s.logger.Error("failed to load expenses for historical comparison", "error", err)
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	totals := make(map[models.YearMonth]float64)
	counts := make(map[models.YearMonth]int)
	for i := range expenses {
		date := expenses[i].Date
		key := models.YearMonth{Year: date.Year(), Month: int(date.Month())}
		totals[key] += expenses[i].Amount.InexactFloat64()
		counts[key]++
	}

	targetKey := models.YearMonth{Year: year, Month: month}
	targetTotal := totals[targetKey]

	comparison := &models.HistoricalComparison{
		Year:        year,
		Month:       month,
		TotalSpent:  targetTotal,
		PriorMonths: make([]models.MonthComparison, 0, ComparisonWindowMonths),
	}

	var priorSum float64
	var priorMonthsWithData int
	cursor := windowStart
	for m := 0; m < ComparisonWindowMonths; m++ {
		key := models.YearMonth{Year: cursor.Year(), Month: int(cursor.Month())}
		entry := models.MonthComparison{
			Year:       key.Year,
			Month:      key.Month,
			TotalSpent: totals[key],
		}
		if counts[key] > 0 {
			entry.ChangePercent = percentChange(targetTotal, totals[key])
			priorMonthsWithData++
		}
		priorSum += totals[key]
		comparison.PriorMonths = append(comparison.PriorMonths, entry)
		cursor = cursor.AddDate(0, 1, 0)
	}

	comparison.AveragePriorSpend = priorSum / float64(ComparisonWindowMonths)
	if priorMonthsWithData > 0 {
		comparison.VsAverageChange = percentChange(targetTotal, comparison.AveragePriorSpend)
	}

	lastYearTotal, lastYearCount, err := s.sameMonthLastYear(year, month)
	if err != nil {
		return nil, err
	}
	if lastYearCount > 0 {
		comparison.SameMonthLastYear = &models.MonthComparison{
			Year:          year - 1,
			Month:         month,
			TotalSpent:    lastYearTotal,
			ChangePercent: percentChange(targetTotal, lastYearTotal),
		}
	}

	return comparison, nil
}

// monthTotal sums expenses dated inside [monthStart, until] inclusive
func (s *predictionService) monthTotal(monthStart, until time.Time) (float64, int, error) {
	expenses, err := s.expenseRepo.GetByDateRange(&monthStart, &until)
	if err != nil {
		s.logger.Error("failed to load expenses for prediction", "error", err)
		return 0, 0, fmt.Errorf("failed to load expenses: %w", err)
	}

	var total float64
	for i := range expenses {
		total += expenses[i].Amount.InexactFloat64()
	}
	return total, len(expenses), nil
}

// yearOverYearChange computes the percent delta versus the same calendar
// month one year prior. Nil exactly when no expense exists in that prior
// month; a zero prior total with data present yields a finite 0.
func (s *predictionService) yearOverYearChange(year, month int, currentSpent float64) (*float64, error) {
	priorTotal, priorCount, err := s.sameMonthLastYear(year, month)
	if err != nil {
		return nil, err
	}
	if priorCount == 0 {
		return nil, nil
	}
	return percentChange(currentSpent, priorTotal), nil
}

func (s *predictionService) sameMonthLastYear(year, month int) (float64, int, error) {
	priorStart := time.Date(year-1, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	priorEnd := priorStart.AddDate(0, 1, -1)
	return s.monthTotal(priorStart, priorEnd)
}
