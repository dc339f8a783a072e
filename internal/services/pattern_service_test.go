package services

import (
	"errors"
	"testing"
	"time"

	"spendtrack/internal/models"
	"spendtrack/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// PatternServiceTestSuite defines the test suite for the pattern analyzer
type PatternServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockExpenseRepo *repository_mocks.MockExpenseRepositoryInterface
	now             time.Time
	service         PatternServiceInterface
}

// SetupTest runs before each test
func (s *PatternServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockExpenseRepo = repository_mocks.NewMockExpenseRepositoryInterface(s.ctrl)
	s.now = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)
	s.service = NewPatternServiceWithClock(
		s.mockExpenseRepo,
		testAnalyticsConfig(),
		testLogger(),
		func() time.Time { return s.now },
	)
}

// TearDownTest runs after each test
func (s *PatternServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestPatternServiceSuite runs the test suite
func TestPatternServiceSuite(t *testing.T) {
	suite.Run(t, new(PatternServiceTestSuite))
}

func (s *PatternServiceTestSuite) TestGetDayOfWeekPatterns_BucketsByWeekday() {
	// 2024-03-15 is a Friday; all four expenses fall in ISO week 11.
	expenses := []models.Expense{
		ledgerExpense("2024-03-15", "DINING", "30.00"),
		ledgerExpense("2024-03-16", "GROCERIES", "60.00"),
		ledgerExpense("2024-03-16", "DINING", "40.00"),
		ledgerExpense("2024-03-17", "GROCERIES", "20.00"),
	}
	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(expenses, nil)

	report, err := s.service.GetDayOfWeekPatterns(nil, nil)

	s.NoError(err)

	friday := report.Days[time.Friday]
	s.Equal(1, friday.TransactionCount)
	s.InDelta(30.0, friday.AverageSpend, 0.0001)
	s.InDelta(20.0, friday.PercentOfWeeklyTotal, 0.0001)

	saturday := report.Days[time.Saturday]
	s.Equal(2, saturday.TransactionCount)
	s.InDelta(50.0, saturday.AverageSpend, 0.0001)
	s.InDelta(66.6667, saturday.PercentOfWeeklyTotal, 0.001)

	sunday := report.Days[time.Sunday]
	s.Equal(1, sunday.TransactionCount)
	s.InDelta(13.3333, sunday.PercentOfWeeklyTotal, 0.001)

	monday := report.Days[time.Monday]
	s.Equal(0, monday.TransactionCount)
	s.Zero(monday.AverageSpend)

	s.InDelta(150.0, report.WeeklyAverage, 0.0001)
}

func (s *PatternServiceTestSuite) TestGetDayOfWeekPatterns_WeeklyAverageSpansISOWeeks() {
	// Week 11 holds 150.00, week 12 holds 50.00.
	expenses := []models.Expense{
		ledgerExpense("2024-03-15", "DINING", "30.00"),
		ledgerExpense("2024-03-16", "GROCERIES", "60.00"),
		ledgerExpense("2024-03-16", "DINING", "40.00"),
		ledgerExpense("2024-03-17", "GROCERIES", "20.00"),
		ledgerExpense("2024-03-18", "GROCERIES", "50.00"),
	}
	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(expenses, nil)

	report, err := s.service.GetDayOfWeekPatterns(nil, nil)

	s.NoError(err)
	s.InDelta(100.0, report.WeeklyAverage, 0.0001)
}

func (s *PatternServiceTestSuite) TestGetDayOfWeekPatterns_EmptyLedger() {
	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return([]models.Expense{}, nil)

	report, err := s.service.GetDayOfWeekPatterns(nil, nil)

	s.NoError(err)
	for day := 0; day < 7; day++ {
		s.Equal(day, report.Days[day].Day)
		s.Zero(report.Days[day].TransactionCount)
		s.Zero(report.Days[day].AverageSpend)
		s.Zero(report.Days[day].PercentOfWeeklyTotal)
	}
	s.Zero(report.WeeklyAverage)
}

func (s *PatternServiceTestSuite) TestGetDayOfWeekPatterns_PassesRangeThrough() {
	start := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	s.mockExpenseRepo.EXPECT().GetByDateRange(&start, &end).Return([]models.Expense{}, nil)

	_, err := s.service.GetDayOfWeekPatterns(&start, &end)

	s.NoError(err)
}

func (s *PatternServiceTestSuite) TestGetSeasonalAnalysis_MonthlyDeltas() {
	windowStart := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	expenses := []models.Expense{
		ledgerExpense("2024-04-10", "GROCERIES", "100.00"),
		ledgerExpense("2024-06-05", "GROCERIES", "150.00"),
	}
	s.mockExpenseRepo.EXPECT().GetByDateRange(&windowStart, &windowEnd).Return(expenses, nil)

	report, err := s.service.GetSeasonalAnalysis(3)

	s.NoError(err)
	s.Require().Len(report.MonthlyData, 3)

	april := report.MonthlyData[0]
	s.Equal("2024-04", april.Period)
	s.InDelta(100.0, april.TotalSpent, 0.0001)
	s.Nil(april.PreviousPeriodChange)

	may := report.MonthlyData[1]
	s.Equal("2024-05", may.Period)
	s.Zero(may.TotalSpent)
	s.Require().NotNil(may.PreviousPeriodChange)
	s.InDelta(-100.0, *may.PreviousPeriodChange, 0.0001)

	// May held no expenses, so June has no prior period to compare against.
	june := report.MonthlyData[2]
	s.Equal("2024-06", june.Period)
	s.InDelta(150.0, june.TotalSpent, 0.0001)
	s.Nil(june.PreviousPeriodChange)

	s.Require().Len(report.QuarterlyData, 1)
	s.Equal("2024-Q2", report.QuarterlyData[0].Period)
	s.InDelta(250.0, report.QuarterlyData[0].TotalSpent, 0.0001)
	s.Nil(report.QuarterlyData[0].PreviousPeriodChange)
}

func (s *PatternServiceTestSuite) TestGetSeasonalAnalysis_QuarterlyDeltas() {
	windowStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	expenses := []models.Expense{
		ledgerExpense("2024-01-10", "HOUSING", "100.00"),
		ledgerExpense("2024-02-10", "HOUSING", "100.00"),
		ledgerExpense("2024-03-10", "HOUSING", "100.00"),
		ledgerExpense("2024-04-10", "HOUSING", "90.00"),
		ledgerExpense("2024-05-10", "HOUSING", "60.00"),
	}
	s.mockExpenseRepo.EXPECT().GetByDateRange(&windowStart, &windowEnd).Return(expenses, nil)

	report, err := s.service.GetSeasonalAnalysis(6)

	s.NoError(err)
	s.Require().Len(report.QuarterlyData, 2)

	q1 := report.QuarterlyData[0]
	s.Equal("2024-Q1", q1.Period)
	s.InDelta(300.0, q1.TotalSpent, 0.0001)
	s.Nil(q1.PreviousPeriodChange)

	q2 := report.QuarterlyData[1]
	s.Equal("2024-Q2", q2.Period)
	s.InDelta(150.0, q2.TotalSpent, 0.0001)
	s.Require().NotNil(q2.PreviousPeriodChange)
	s.InDelta(-50.0, *q2.PreviousPeriodChange, 0.0001)
}

func (s *PatternServiceTestSuite) TestGetSeasonalAnalysis_DefaultsWindow() {
	windowStart := time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	s.mockExpenseRepo.EXPECT().GetByDateRange(&windowStart, &windowEnd).Return([]models.Expense{}, nil)

	report, err := s.service.GetSeasonalAnalysis(0)

	s.NoError(err)
	s.Len(report.MonthlyData, DefaultSeasonalMonthsBack)
	for _, entry := range report.MonthlyData {
		s.Zero(entry.TotalSpent)
		s.Nil(entry.PreviousPeriodChange)
	}
}

func (s *PatternServiceTestSuite) TestGetRecurringPatterns_DetectsMonthlySubscription() {
	expenses := []models.Expense{
		merchantExpense("2024-01-03", "Netflix", "ENTERTAINMENT", "15.49"),
		merchantExpense("2024-02-03", "Netflix", "ENTERTAINMENT", "15.49"),
		merchantExpense("2024-03-03", "Netflix", "ENTERTAINMENT", "15.49"),
		// One-off purchases never qualify.
		merchantExpense("2024-02-14", "Flower Shop", "SHOPPING", "45.00"),
	}
	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(expenses, nil)

	patterns, err := s.service.GetRecurringPatterns()

	s.NoError(err)
	s.Require().Len(patterns, 1)
	s.Equal("Netflix", patterns[0].Place)
	s.Equal("ENTERTAINMENT", patterns[0].Category)
	s.InDelta(15.49, patterns[0].AverageAmount, 0.0001)
	s.Equal(models.CadenceMonthly, patterns[0].Cadence)
	s.Equal(3, patterns[0].ExpenseCount)
	s.Equal(3, patterns[0].MonthsSeen)
}

func (s *PatternServiceTestSuite) TestGetRecurringPatterns_RejectsUnstableAmounts() {
	// 40.00 deviates 50% from the 26.67 mean, beyond the 15% tolerance.
	expenses := []models.Expense{
		merchantExpense("2024-01-05", "Gym", "HEALTHCARE", "20.00"),
		merchantExpense("2024-02-05", "Gym", "HEALTHCARE", "20.00"),
		merchantExpense("2024-03-05", "Gym", "HEALTHCARE", "40.00"),
	}
	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(expenses, nil)

	patterns, err := s.service.GetRecurringPatterns()

	s.NoError(err)
	s.Empty(patterns)
}

func (s *PatternServiceTestSuite) TestGetRecurringPatterns_RequiresThreeDistinctMonths() {
	expenses := []models.Expense{
		merchantExpense("2024-01-03", "Spotify", "ENTERTAINMENT", "10.99"),
		merchantExpense("2024-01-17", "Spotify", "ENTERTAINMENT", "10.99"),
		merchantExpense("2024-02-03", "Spotify", "ENTERTAINMENT", "10.99"),
	}
	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(expenses, nil)

	patterns, err := s.service.GetRecurringPatterns()

	s.NoError(err)
	s.Empty(patterns)
}

func (s *PatternServiceTestSuite) TestGetRecurringPatterns_QuarterlyCadence() {
	expenses := []models.Expense{
		merchantExpense("2024-01-15", "Water Utility", "BILLS_UTILITIES", "90.00"),
		merchantExpense("2024-04-15", "Water Utility", "BILLS_UTILITIES", "92.00"),
		merchantExpense("2024-07-15", "Water Utility", "BILLS_UTILITIES", "88.00"),
	}
	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(expenses, nil)

	patterns, err := s.service.GetRecurringPatterns()

	s.NoError(err)
	s.Require().Len(patterns, 1)
	s.Equal(models.CadenceQuarterly, patterns[0].Cadence)
	s.InDelta(90.0, patterns[0].AverageAmount, 0.0001)
}

func (s *PatternServiceTestSuite) TestGetRecurringPatterns_SkipsBlankPlaces() {
	expenses := []models.Expense{
		merchantExpense("2024-01-03", "", "OTHER", "5.00"),
		merchantExpense("2024-02-03", "  ", "OTHER", "5.00"),
		merchantExpense("2024-03-03", "", "OTHER", "5.00"),
	}
	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(expenses, nil)

	patterns, err := s.service.GetRecurringPatterns()

	s.NoError(err)
	s.Empty(patterns)
}

func (s *PatternServiceTestSuite) TestGetRecurringPatterns_SortsByCountThenPlace() {
	expenses := []models.Expense{
		merchantExpense("2024-01-03", "Netflix", "ENTERTAINMENT", "15.49"),
		merchantExpense("2024-02-03", "Netflix", "ENTERTAINMENT", "15.49"),
		merchantExpense("2024-03-03", "Netflix", "ENTERTAINMENT", "15.49"),
		merchantExpense("2024-01-07", "Spotify", "ENTERTAINMENT", "10.99"),
		merchantExpense("2024-02-07", "Spotify", "ENTERTAINMENT", "10.99"),
		merchantExpense("2024-03-07", "Spotify", "ENTERTAINMENT", "10.99"),
		merchantExpense("2024-04-07", "Spotify", "ENTERTAINMENT", "10.99"),
	}
	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(expenses, nil)

	patterns, err := s.service.GetRecurringPatterns()

	s.NoError(err)
	s.Require().Len(patterns, 2)
	s.Equal("Spotify", patterns[0].Place)
	s.Equal("Netflix", patterns[1].Place)
}

func (s *PatternServiceTestSuite) TestGetRecurringPatterns_RepositoryError() {
	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(nil, errors.New("database error"))

	patterns, err := s.service.GetRecurringPatterns()

	s.Error(err)
	s.Nil(patterns)
}

func TestPercentChange(t *testing.T) {
	change := percentChange(150, 100)
	if change == nil || *change != 50 {
		t.Fatalf("percentChange(150, 100) = %v, want 50", change)
	}

	// A zero previous total with data present yields a finite zero.
	change = percentChange(75, 0)
	if change == nil || *change != 0 {
		t.Fatalf("percentChange(75, 0) = %v, want 0", change)
	}

	change = percentChange(50, 100)
	if change == nil || *change != -50 {
		t.Fatalf("percentChange(50, 100) = %v, want -50", change)
	}
}

func TestCadenceFor(t *testing.T) {
	monthSet := func(pairs ...[2]int) map[models.YearMonth]struct{} {
		set := make(map[models.YearMonth]struct{}, len(pairs))
		for _, p := range pairs {
			set[models.YearMonth{Year: p[0], Month: p[1]}] = struct{}{}
		}
		return set
	}

	cases := []struct {
		name   string
		months map[models.YearMonth]struct{}
		want   string
	}{
		{"consecutive months", monthSet([2]int{2024, 1}, [2]int{2024, 2}, [2]int{2024, 3}), models.CadenceMonthly},
		{"every third month", monthSet([2]int{2024, 1}, [2]int{2024, 4}, [2]int{2024, 7}), models.CadenceQuarterly},
		{"sparse months", monthSet([2]int{2023, 1}, [2]int{2023, 6}, [2]int{2024, 3}), models.CadenceIrregular},
		{"single month", monthSet([2]int{2024, 1}), models.CadenceIrregular},
		{"year boundary", monthSet([2]int{2023, 11}, [2]int{2023, 12}, [2]int{2024, 1}), models.CadenceMonthly},
	}
	for _, tc := range cases {
		if got := cadenceFor(tc.months); got != tc.want {
			t.Errorf("%s: cadenceFor = %q, want %q", tc.name, got, tc.want)
		}
	}
}

// merchantExpense builds an expense at a named place for recurring pattern
// tests
func merchantExpense(date, place, category, amount string) models.Expense {
	parsed, _ := time.Parse("2006-01-02", date)
	value, _ := decimal.NewFromString(amount)
	return models.Expense{
		Date:     parsed,
		Place:    place,
		Category: category,
		Amount:   value,
	}
}
