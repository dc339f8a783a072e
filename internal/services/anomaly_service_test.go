package services

import (
	"errors"
	"math"
	"testing"
	"time"

	"spendtrack/internal/models"
	"spendtrack/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// AnomalyServiceTestSuite defines the test suite for the anomaly detector
type AnomalyServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockExpenseRepo *repository_mocks.MockExpenseRepositoryInterface
	dismissals      *DismissalStore
	now             time.Time
	service         AnomalyServiceInterface
}

// SetupTest runs before each test
func (s *AnomalyServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockExpenseRepo = repository_mocks.NewMockExpenseRepositoryInterface(s.ctrl)
	s.dismissals = NewDismissalStore()
	s.now = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	s.service = NewAnomalyServiceWithClock(
		s.mockExpenseRepo,
		s.dismissals,
		testAnalyticsConfig(),
		testLogger(),
		func() time.Time { return s.now },
	)
}

// TearDownTest runs after each test
func (s *AnomalyServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestAnomalyServiceSuite runs the test suite
func TestAnomalyServiceSuite(t *testing.T) {
	suite.Run(t, new(AnomalyServiceTestSuite))
}

func (s *AnomalyServiceTestSuite) TestCalculateCategoryBaseline_Math() {
	expenses := []models.Expense{
		categoryExpense("GROCERIES", "40.00", s.now.AddDate(0, 0, -10)),
		categoryExpense("GROCERIES", "50.00", s.now.AddDate(0, 0, -20)),
		categoryExpense("GROCERIES", "60.00", s.now.AddDate(0, 0, -30)),
	}
	s.mockExpenseRepo.EXPECT().GetByCategory("GROCERIES", nil).Return(expenses, nil)

	baseline, err := s.service.CalculateCategoryBaseline("GROCERIES", 0)

	s.NoError(err)
	s.True(baseline.HasValidBaseline)
	s.Equal(3, baseline.Count)
	s.InDelta(50.0, baseline.Mean, 0.0001)
	// Population standard deviation of {40, 50, 60}.
	s.InDelta(math.Sqrt(200.0/3.0), baseline.StdDev, 0.0001)
}

func (s *AnomalyServiceTestSuite) TestCalculateCategoryBaseline_BelowMinimumSamples() {
	expenses := []models.Expense{
		categoryExpense("TRAVEL", "900.00", s.now.AddDate(0, 0, -5)),
		categoryExpense("TRAVEL", "450.00", s.now.AddDate(0, 0, -40)),
	}
	s.mockExpenseRepo.EXPECT().GetByCategory("TRAVEL", nil).Return(expenses, nil)

	baseline, err := s.service.CalculateCategoryBaseline("TRAVEL", 0)

	s.NoError(err)
	s.False(baseline.HasValidBaseline)
	s.Equal(2, baseline.Count)
	s.Zero(baseline.Mean)
	s.Zero(baseline.StdDev)
}

func (s *AnomalyServiceTestSuite) TestCalculateCategoryBaseline_EmptyCategory() {
	s.mockExpenseRepo.EXPECT().GetByCategory("FEES", nil).Return([]models.Expense{}, nil)

	baseline, err := s.service.CalculateCategoryBaseline("FEES", 0)

	s.NoError(err)
	s.False(baseline.HasValidBaseline)
	s.Zero(baseline.Count)
}

func (s *AnomalyServiceTestSuite) TestCalculateCategoryBaseline_SingleSampleFiniteStdDev() {
	cfg := testAnalyticsConfig()
	cfg.MinBaselineSamples = 1
	service := NewAnomalyServiceWithClock(
		s.mockExpenseRepo, s.dismissals, cfg, testLogger(),
		func() time.Time { return s.now },
	)

	expenses := []models.Expense{
		categoryExpense("EDUCATION", "250.00", s.now.AddDate(0, 0, -3)),
	}
	s.mockExpenseRepo.EXPECT().GetByCategory("EDUCATION", nil).Return(expenses, nil)

	baseline, err := service.CalculateCategoryBaseline("EDUCATION", 0)

	s.NoError(err)
	s.True(baseline.HasValidBaseline)
	s.InDelta(250.0, baseline.Mean, 0.0001)
	s.Zero(baseline.StdDev)
	s.False(math.IsNaN(baseline.StdDev))
}

func (s *AnomalyServiceTestSuite) TestCalculateCategoryBaseline_LookbackCutoff() {
	cutoff := s.now.UTC().AddDate(0, 0, -30)
	s.mockExpenseRepo.EXPECT().GetByCategory("DINING", &cutoff).Return([]models.Expense{}, nil)

	_, err := s.service.CalculateCategoryBaseline("DINING", 30)

	s.NoError(err)
}

func (s *AnomalyServiceTestSuite) TestDetectAnomalies_FlagsOutlier() {
	expenses := groceryHistory(s.now, "50.00", 10)
	outlier := categoryExpense("GROCERIES", "500.00", s.now.AddDate(0, 0, -2))
	expenses = append(expenses, outlier)

	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(expenses, nil)

	anomalies, err := s.service.DetectAnomalies(90)

	s.NoError(err)
	s.Require().Len(anomalies, 1)
	s.Equal(outlier.ID, anomalies[0].ExpenseID)
	s.Equal("GROCERIES", anomalies[0].Category)
	s.Equal(models.AnomalyTypeAmount, anomalies[0].AnomalyType)
	s.InDelta(500.0, anomalies[0].Amount, 0.0001)
	// Eleven samples with one 500 outlier around a 50 base put z near 3.16.
	s.Greater(anomalies[0].ZScore, 2.5)
	s.False(anomalies[0].Dismissed)
}

func (s *AnomalyServiceTestSuite) TestDetectAnomalies_ZeroVarianceCategory() {
	expenses := groceryHistory(s.now, "50.00", 8)
	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(expenses, nil)

	anomalies, err := s.service.DetectAnomalies(90)

	s.NoError(err)
	s.Empty(anomalies)
}

func (s *AnomalyServiceTestSuite) TestDetectAnomalies_InvalidBaselineSkipped() {
	// Two samples stay below the three-sample minimum.
	expenses := []models.Expense{
		categoryExpense("TRAVEL", "100.00", s.now.AddDate(0, 0, -5)),
		categoryExpense("TRAVEL", "2000.00", s.now.AddDate(0, 0, -6)),
	}
	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(expenses, nil)

	anomalies, err := s.service.DetectAnomalies(90)

	s.NoError(err)
	s.Empty(anomalies)
}

func (s *AnomalyServiceTestSuite) TestDetectAnomalies_LookbackExcludesOldExpenses() {
	// The outlier predates the window; it still shapes the baseline but
	// is never a candidate itself.
	expenses := groceryHistory(s.now, "50.00", 10)
	old := categoryExpense("GROCERIES", "500.00", s.now.AddDate(0, 0, -200))
	expenses = append(expenses, old)

	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(expenses, nil)

	anomalies, err := s.service.DetectAnomalies(90)

	s.NoError(err)
	s.Empty(anomalies)
}

func (s *AnomalyServiceTestSuite) TestDetectAnomalies_DismissAndClear() {
	expenses := groceryHistory(s.now, "50.00", 10)
	outlier := categoryExpense("GROCERIES", "500.00", s.now.AddDate(0, 0, -2))
	expenses = append(expenses, outlier)

	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(expenses, nil).Times(3)

	anomalies, err := s.service.DetectAnomalies(90)
	s.NoError(err)
	s.Len(anomalies, 1)

	s.service.DismissAnomaly(outlier.ID)
	anomalies, err = s.service.DetectAnomalies(90)
	s.NoError(err)
	s.Empty(anomalies)

	s.service.ClearDismissedAnomalies()
	anomalies, err = s.service.DetectAnomalies(90)
	s.NoError(err)
	s.Len(anomalies, 1)
}

func (s *AnomalyServiceTestSuite) TestDetectAnomalies_SortedByDeviation() {
	// Two outliers widen the baseline, so a lower threshold keeps both
	// above it while the order under test stays meaningful.
	cfg := testAnalyticsConfig()
	cfg.AnomalyZScoreThreshold = 1.5
	service := NewAnomalyServiceWithClock(
		s.mockExpenseRepo, s.dismissals, cfg, testLogger(),
		func() time.Time { return s.now },
	)

	expenses := groceryHistory(s.now, "50.00", 20)
	moderate := categoryExpense("GROCERIES", "400.00", s.now.AddDate(0, 0, -4))
	extreme := categoryExpense("GROCERIES", "800.00", s.now.AddDate(0, 0, -3))
	expenses = append(expenses, moderate, extreme)

	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(expenses, nil)

	anomalies, err := service.DetectAnomalies(90)

	s.NoError(err)
	s.Require().Len(anomalies, 2)
	s.Equal(extreme.ID, anomalies[0].ExpenseID)
	s.Equal(moderate.ID, anomalies[1].ExpenseID)
}

func (s *AnomalyServiceTestSuite) TestDetectAnomalies_RepositoryError() {
	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(nil, errors.New("database error"))

	anomalies, err := s.service.DetectAnomalies(90)

	s.Error(err)
	s.Nil(anomalies)
}

// categoryExpense builds an expense with a fresh ID for anomaly tests
func categoryExpense(category, amount string, date time.Time) models.Expense {
	value, _ := decimal.NewFromString(amount)
	return models.Expense{
		ID:       uuid.New(),
		Date:     date,
		Category: category,
		Amount:   value,
	}
}

// groceryHistory builds count identical recent grocery expenses
func groceryHistory(now time.Time, amount string, count int) []models.Expense {
	expenses := make([]models.Expense, 0, count)
	for i := 0; i < count; i++ {
		expenses = append(expenses, categoryExpense("GROCERIES", amount, now.AddDate(0, 0, -(i+5))))
	}
	return expenses
}
