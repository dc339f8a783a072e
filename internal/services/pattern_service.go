package services

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"spendtrack/internal/config"
	"spendtrack/internal/models"
	"spendtrack/internal/repositories"
)

// DefaultSeasonalMonthsBack is the trailing window used by seasonal analysis
// when the caller does not supply one
const DefaultSeasonalMonthsBack = 12

// patternService implements PatternServiceInterface. All aggregation is pure
// and in-memory; the repository reads are the only suspension points.
type patternService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	cfg         config.AnalyticsConfig
	logger      *slog.Logger
	nowFn       func() time.Time
}

// NewPatternService creates a pattern analyzer over the expense ledger
func NewPatternService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	cfg config.AnalyticsConfig,
	logger *slog.Logger,
) PatternServiceInterface {
	return &patternService{
		expenseRepo: expenseRepo,
		cfg:         cfg,
		logger:      logger,
		nowFn:       time.Now,
	}
}

// NewPatternServiceWithClock creates a pattern analyzer with an injected
// clock, used by tests to pin the trailing seasonal window
func NewPatternServiceWithClock(
	expenseRepo repositories.ExpenseRepositoryInterface,
	cfg config.AnalyticsConfig,
	logger *slog.Logger,
	nowFn func() time.Time,
) PatternServiceInterface {
	return &patternService{
		expenseRepo: expenseRepo,
		cfg:         cfg,
		logger:      logger,
		nowFn:       nowFn,
	}
}

// GetDayOfWeekPatterns buckets expenses by weekday over an inclusive date
// range. Absent bounds mean unbounded on that side. An empty or fully
// filtered-out ledger yields all-zero buckets, never an error.
func (s *patternService) GetDayOfWeekPatterns(startDate, endDate *time.Time) (*models.DayOfWeekReport, error) {
	expenses, err := s.expenseRepo.GetByDateRange(startDate, endDate)
	if err != nil {
		s.logger.Error("failed to load expenses for day-of-week patterns", "error", err)
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	var sums [7]float64
	var counts [7]int
	var totalSum float64
	weeks := make(map[string]struct{})

	for i := range expenses {
		date := expenses[i].Date
		amount := expenses[i].Amount.InexactFloat64()
		day := int(date.Weekday())

		sums[day] += amount
		counts[day]++
		totalSum += amount

		isoYear, isoWeek := date.ISOWeek()
		weeks[fmt.Sprintf("%d-%02d", isoYear, isoWeek)] = struct{}{}
	}

	report := &models.DayOfWeekReport{}
	for day := 0; day < 7; day++ {
		bucket := models.DayOfWeekBucket{
			Day:              day,
			TransactionCount: counts[day],
		}
		if counts[day] > 0 {
			bucket.AverageSpend = sums[day] / float64(counts[day])
		}
		if totalSum > 0 {
			bucket.PercentOfWeeklyTotal = sums[day] / totalSum * 100
		}
		report.Days[day] = bucket
	}
	if len(weeks) > 0 {
		report.WeeklyAverage = totalSum / float64(len(weeks))
	}

	return report, nil
}

// GetSeasonalAnalysis aggregates the trailing monthsBack months, and their
// containing quarters, into totals with period-over-period deltas. Empty
// intervening periods contribute zero totals; a previous period with no
// expenses yields a nil change rather than a division by zero.
func (s *patternService) GetSeasonalAnalysis(monthsBack int) (*models.SeasonalReport, error) {
	if monthsBack <= 0 {
		monthsBack = DefaultSeasonalMonthsBack
	}

	now := s.nowFn().UTC()
	windowEnd := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
	windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(monthsBack - 1), 0)

	expenses, err := s.expenseRepo.GetByDateRange(&windowStart, &windowEnd)
	if err != nil {
		s.logger.Error("failed to load expenses for seasonal analysis", "error", err)
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	monthTotals := make(map[models.YearMonth]float64)
	monthCounts := make(map[models.YearMonth]int)
	for i := range expenses {
		date := expenses[i].Date
		key := models.YearMonth{Year: date.Year(), Month: int(date.Month())}
		monthTotals[key] += expenses[i].Amount.InexactFloat64()
		monthCounts[key]++
	}

	report := &models.SeasonalReport{
		MonthlyData:   make([]models.SeasonalEntry, 0, monthsBack),
		QuarterlyData: make([]models.SeasonalEntry, 0, monthsBack/3+1),
	}

	type quarterKey struct {
		year    int
		quarter int
	}
	quarterTotals := make(map[quarterKey]float64)
	quarterCounts := make(map[quarterKey]int)
	quarterOrder := make([]quarterKey, 0, monthsBack/3+1)

	var prevMonthTotal float64
	var prevMonthHasData bool
	first := true

	cursor := windowStart
	for m := 0; m < monthsBack; m++ {
		key := models.YearMonth{Year: cursor.Year(), Month: int(cursor.Month())}
		total := monthTotals[key]
		hasData := monthCounts[key] > 0

		entry := models.SeasonalEntry{
			Period:     fmt.Sprintf("%04d-%02d", key.Year, key.Month),
			TotalSpent: total,
		}
		if !first && prevMonthHasData {
			entry.PreviousPeriodChange = percentChange(total, prevMonthTotal)
		}
		report.MonthlyData = append(report.MonthlyData, entry)

		qk := quarterKey{year: key.Year, quarter: (key.Month-1)/3 + 1}
		if _, seen := quarterTotals[qk]; !seen {
			quarterOrder = append(quarterOrder, qk)
		}
		quarterTotals[qk] += total
		if hasData {
			quarterCounts[qk]++
		}

		prevMonthTotal = total
		prevMonthHasData = hasData
		first = false
		cursor = cursor.AddDate(0, 1, 0)
	}

	var prevQuarterTotal float64
	var prevQuarterHasData bool
	for i, qk := range quarterOrder {
		entry := models.SeasonalEntry{
			Period:     fmt.Sprintf("%04d-Q%d", qk.year, qk.quarter),
			TotalSpent: quarterTotals[qk],
		}
		if i > 0 && prevQuarterHasData {
			entry.PreviousPeriodChange = percentChange(quarterTotals[qk], prevQuarterTotal)
		}
		report.QuarterlyData = append(report.QuarterlyData, entry)

		prevQuarterTotal = quarterTotals[qk]
		prevQuarterHasData = quarterCounts[qk] > 0
	}

	return report, nil
}

// GetRecurringPatterns detects merchant/category pairs that repeat across
// multiple distinct calendar months at an approximately stable amount. An
// empty ledger yields an empty list.
func (s *patternService) GetRecurringPatterns() ([]models.RecurringPattern, error) {
	expenses, err := s.expenseRepo.GetByDateRange(nil, nil)
	if err != nil {
		s.logger.Error("failed to load expenses for recurring patterns", "error", err)
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	type groupKey struct {
		place    string
		category string
	}
	groups := make(map[groupKey][]*models.Expense)
	for i := range expenses {
		place := strings.TrimSpace(strings.ToLower(expenses[i].Place))
		if place == "" {
			continue
		}
		key := groupKey{place: place, category: expenses[i].Category}
		groups[key] = append(groups[key], &expenses[i])
	}

	patterns := make([]models.RecurringPattern, 0)
	for _, group := range groups {
		if pattern, ok := s.recurringPatternFor(group); ok {
			patterns = append(patterns, pattern)
		}
	}

	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].ExpenseCount != patterns[j].ExpenseCount {
			return patterns[i].ExpenseCount > patterns[j].ExpenseCount
		}
		return patterns[i].Place < patterns[j].Place
	})

	return patterns, nil
}

// recurringPatternFor decides whether one merchant/category group qualifies
// as recurring: at least MinBaselineSamples expenses, spread across at least
// three distinct months, with every amount within the configured tolerance
// of the group mean.
func (s *patternService) recurringPatternFor(group []*models.Expense) (models.RecurringPattern, bool) {
	const minDistinctMonths = 3

	if len(group) < s.cfg.MinBaselineSamples || len(group) < minDistinctMonths {
		return models.RecurringPattern{}, false
	}

	var sum float64
	months := make(map[models.YearMonth]struct{})
	firstSeen := group[0].Date
	lastSeen := group[0].Date
	for _, e := range group {
		sum += e.Amount.InexactFloat64()
		months[models.YearMonth{Year: e.Date.Year(), Month: int(e.Date.Month())}] = struct{}{}
		if e.Date.Before(firstSeen) {
			firstSeen = e.Date
		}
		if e.Date.After(lastSeen) {
			lastSeen = e.Date
		}
	}
	if len(months) < minDistinctMonths {
		return models.RecurringPattern{}, false
	}

	mean := sum / float64(len(group))
	for _, e := range group {
		amount := e.Amount.InexactFloat64()
		if mean == 0 {
			if amount != 0 {
				return models.RecurringPattern{}, false
			}
			continue
		}
		deviation := (amount - mean) / mean
		if deviation < 0 {
			deviation = -deviation
		}
		if deviation > s.cfg.RecurringAmountTolerance {
			return models.RecurringPattern{}, false
		}
	}

	return models.RecurringPattern{
		Place:         group[0].Place,
		Category:      group[0].Category,
		AverageAmount: mean,
		Cadence:       cadenceFor(months),
		ExpenseCount:  len(group),
		MonthsSeen:    len(months),
		FirstSeen:     firstSeen,
		LastSeen:      lastSeen,
	}, true
}

// cadenceFor labels the spacing of the observed months: roughly consecutive
// months are monthly, roughly every third month is quarterly, anything else
// is irregular.
func cadenceFor(months map[models.YearMonth]struct{}) string {
	ordered := make([]models.YearMonth, 0, len(months))
	for ym := range months {
		ordered = append(ordered, ym)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Before(ordered[j]) })

	if len(ordered) < 2 {
		return models.CadenceIrregular
	}

	firstIndex := ordered[0].Year*12 + ordered[0].Month
	lastIndex := ordered[len(ordered)-1].Year*12 + ordered[len(ordered)-1].Month
	averageGap := float64(lastIndex-firstIndex) / float64(len(ordered)-1)

	switch {
	case averageGap <= 1.5:
		return models.CadenceMonthly
	case averageGap >= 2.5 && averageGap <= 3.5:
		return models.CadenceQuarterly
	default:
		return models.CadenceIrregular
	}
}

// percentChange returns the percent delta from previous to current. The
// caller guarantees the previous period has data; a zero previous total
// still yields a finite 0 rather than a division by zero.
func percentChange(current, previous float64) *float64 {
	var change float64
	if previous != 0 {
		change = (current - previous) / previous * 100
	}
	return &change
}
