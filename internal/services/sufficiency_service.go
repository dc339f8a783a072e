package services

import (
	"fmt"
	"log/slog"
	"math"

	"spendtrack/internal/models"
	"spendtrack/internal/repositories"
)

// sufficiencyService implements SufficiencyServiceInterface
type sufficiencyService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	logger      *slog.Logger
}

// NewSufficiencyService creates a data sufficiency checker backed by the
// expense ledger
func NewSufficiencyService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	logger *slog.Logger,
) SufficiencyServiceInterface {
	return &sufficiencyService{
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

// CheckDataSufficiency counts the distinct calendar months covered by the
// ledger and scores overall data quality. An empty ledger scores zero on
// every field and is not an error.
func (s *sufficiencyService) CheckDataSufficiency() (*models.DataSufficiency, error) {
	months, err := s.expenseRepo.GetDistinctMonths()
	if err != nil {
		s.logger.Error("failed to load ledger months for sufficiency check", "error", err)
		return nil, fmt.Errorf("failed to load ledger months: %w", err)
	}

	expenses, err := s.expenseRepo.GetByDateRange(nil, nil)
	if err != nil {
		s.logger.Error("failed to load expense history for sufficiency check", "error", err)
		return nil, fmt.Errorf("failed to load expense history: %w", err)
	}

	categories := make(map[string]struct{})
	for i := range expenses {
		categories[expenses[i].Category] = struct{}{}
	}

	return &models.DataSufficiency{
		MonthsOfData:     len(months),
		RecordCount:      int64(len(expenses)),
		DataQualityScore: dataQualityScore(len(months), len(expenses), len(categories)),
	}, nil
}

// dataQualityScore is monotonic non-decreasing in calendar span, record
// volume, and category diversity, clamped to [0,100]:
//
//	score = months*8 + min(records,200)/5 + categories*2
//
// A year of history alone reaches 96; volume and diversity fill the rest.
func dataQualityScore(months, records, categories int) float64 {
	score := float64(months)*8 + math.Min(float64(records), 200)/5 + float64(categories)*2
	if score > 100 {
		return 100
	}
	return score
}
