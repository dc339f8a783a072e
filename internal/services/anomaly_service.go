package services

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"spendtrack/internal/config"
	"spendtrack/internal/models"
	"spendtrack/internal/repositories"

	"github.com/google/uuid"
)

// anomalyService implements AnomalyServiceInterface. Baselines are computed
// over the full ledger history; the lookback window only bounds which
// expenses are candidates for flagging.
type anomalyService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	dismissals  *DismissalStore
	cfg         config.AnalyticsConfig
	logger      *slog.Logger
	nowFn       func() time.Time
}

// NewAnomalyService creates an anomaly detector over the expense ledger.
// The dismissal store is shared process-wide and injected by the caller.
func NewAnomalyService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	dismissals *DismissalStore,
	cfg config.AnalyticsConfig,
	logger *slog.Logger,
) AnomalyServiceInterface {
	return &anomalyService{
		expenseRepo: expenseRepo,
		dismissals:  dismissals,
		cfg:         cfg,
		logger:      logger,
		nowFn:       time.Now,
	}
}

// NewAnomalyServiceWithClock creates an anomaly detector with an injected
// clock, used by tests to pin the lookback window
func NewAnomalyServiceWithClock(
	expenseRepo repositories.ExpenseRepositoryInterface,
	dismissals *DismissalStore,
	cfg config.AnalyticsConfig,
	logger *slog.Logger,
	nowFn func() time.Time,
) AnomalyServiceInterface {
	return &anomalyService{
		expenseRepo: expenseRepo,
		dismissals:  dismissals,
		cfg:         cfg,
		logger:      logger,
		nowFn:       nowFn,
	}
}

// CalculateCategoryBaseline computes the mean and standard deviation of
// amounts for one category. lookbackDays <= 0 means all history. A category
// with no records yields a zeroed, invalid baseline, never an error. A
// single record yields a finite zero standard deviation.
func (s *anomalyService) CalculateCategoryBaseline(category string, lookbackDays int) (*models.CategoryBaseline, error) {
	var since *time.Time
	if lookbackDays > 0 {
		cutoff := s.nowFn().UTC().AddDate(0, 0, -lookbackDays)
		since = &cutoff
	}

	expenses, err := s.expenseRepo.GetByCategory(category, since)
	if err != nil {
		s.logger.Error("failed to load category expenses for baseline", "category", category, "error", err)
		return nil, fmt.Errorf("failed to load expenses for category %q: %w", category, err)
	}

	amounts := make([]float64, 0, len(expenses))
	for i := range expenses {
		amounts = append(amounts, expenses[i].Amount.InexactFloat64())
	}

	baseline := baselineFromAmounts(category, amounts, s.cfg.MinBaselineSamples)
	return &baseline, nil
}

// DetectAnomalies scores every expense inside the lookback window against
// its category's full-history baseline and flags those whose deviation
// exceeds the configured z-score threshold. Zero-variance categories never
// produce anomalies; dismissed anomalies are excluded.
func (s *anomalyService) DetectAnomalies(lookbackDays int) ([]models.Anomaly, error) {
	if lookbackDays <= 0 {
		lookbackDays = s.cfg.DefaultLookbackDays
	}

	expenses, err := s.expenseRepo.GetByDateRange(nil, nil)
	if err != nil {
		s.logger.Error("failed to load expense history for anomaly detection", "error", err)
		return nil, fmt.Errorf("failed to load expense history: %w", err)
	}

	amountsByCategory := make(map[string][]float64)
	for i := range expenses {
		category := expenses[i].Category
		amountsByCategory[category] = append(amountsByCategory[category], expenses[i].Amount.InexactFloat64())
	}

	baselines := make(map[string]models.CategoryBaseline, len(amountsByCategory))
	for category, amounts := range amountsByCategory {
		baselines[category] = baselineFromAmounts(category, amounts, s.cfg.MinBaselineSamples)
	}

	cutoff := s.nowFn().UTC().AddDate(0, 0, -lookbackDays)
	anomalies := make([]models.Anomaly, 0)

	for i := range expenses {
		expense := &expenses[i]
		if expense.Date.Before(cutoff) {
			continue
		}

		baseline := baselines[expense.Category]
		if !baseline.HasValidBaseline {
			continue
		}
		// A zero-variance baseline cannot statistically indicate deviation.
		if baseline.StdDev == 0 {
			continue
		}

		amount := expense.Amount.InexactFloat64()
		zScore := (amount - baseline.Mean) / baseline.StdDev
		if math.Abs(zScore) <= s.cfg.AnomalyZScoreThreshold {
			continue
		}
		if s.dismissals.IsDismissed(expense.ID) {
			continue
		}

		anomalies = append(anomalies, models.Anomaly{
			ExpenseID:   expense.ID,
			Date:        expense.Date,
			Category:    expense.Category,
			Place:       expense.Place,
			Amount:      amount,
			ZScore:      zScore,
			AnomalyType: models.AnomalyTypeAmount,
			Dismissed:   false,
		})
	}

	sort.Slice(anomalies, func(i, j int) bool {
		return math.Abs(anomalies[i].ZScore) > math.Abs(anomalies[j].ZScore)
	})

	return anomalies, nil
}

// DismissAnomaly adds the expense ID to the process-wide dismissed set
func (s *anomalyService) DismissAnomaly(expenseID uuid.UUID) {
	s.dismissals.Dismiss(expenseID)
	s.logger.Info("anomaly dismissed", "expense_id", expenseID)
}

// ClearDismissedAnomalies empties the dismissed set
func (s *anomalyService) ClearDismissedAnomalies() {
	s.dismissals.Clear()
	s.logger.Info("dismissed anomalies cleared")
}

// baselineFromAmounts reduces a category's amounts to a baseline profile.
// Below the minimum sample count the baseline is invalid and zeroed.
func baselineFromAmounts(category string, amounts []float64, minSamples int) models.CategoryBaseline {
	baseline := models.CategoryBaseline{
		Category: category,
		Count:    len(amounts),
	}
	if len(amounts) == 0 || len(amounts) < minSamples {
		return baseline
	}

	var sum float64
	for _, amount := range amounts {
		sum += amount
	}
	mean := sum / float64(len(amounts))

	var sumSquares float64
	for _, amount := range amounts {
		delta := amount - mean
		sumSquares += delta * delta
	}
	stdDev := math.Sqrt(sumSquares / float64(len(amounts)))

	baseline.Mean = mean
	baseline.StdDev = stdDev
	baseline.HasValidBaseline = true
	return baseline
}
