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

// SufficiencyServiceTestSuite defines the test suite for the data
// sufficiency checker
type SufficiencyServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockExpenseRepo *repository_mocks.MockExpenseRepositoryInterface
	service         SufficiencyServiceInterface
}

// SetupTest runs before each test
func (s *SufficiencyServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockExpenseRepo = repository_mocks.NewMockExpenseRepositoryInterface(s.ctrl)
	s.service = NewSufficiencyService(s.mockExpenseRepo, testLogger())
}

// TearDownTest runs after each test
func (s *SufficiencyServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestSufficiencyServiceSuite runs the test suite
func TestSufficiencyServiceSuite(t *testing.T) {
	suite.Run(t, new(SufficiencyServiceTestSuite))
}

func (s *SufficiencyServiceTestSuite) TestCheckDataSufficiency_EmptyLedger() {
	s.mockExpenseRepo.EXPECT().GetDistinctMonths().Return([]models.YearMonth{}, nil)
	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return([]models.Expense{}, nil)

	result, err := s.service.CheckDataSufficiency()

	s.NoError(err)
	s.Equal(0, result.MonthsOfData)
	s.Equal(int64(0), result.RecordCount)
	s.Equal(0.0, result.DataQualityScore)
}

func (s *SufficiencyServiceTestSuite) TestCheckDataSufficiency_CountsDistinctMonths() {
	months := []models.YearMonth{
		{Year: 2023, Month: 2},
		{Year: 2024, Month: 1},
		{Year: 2024, Month: 2},
		{Year: 2024, Month: 4},
	}
	expenses := []models.Expense{
		ledgerExpense("2024-01-05", "GROCERIES", "10.00"),
		ledgerExpense("2024-01-20", "GROCERIES", "20.00"),
		ledgerExpense("2024-02-11", "DINING", "30.00"),
		ledgerExpense("2024-04-01", "DINING", "40.00"),
		ledgerExpense("2023-02-11", "TRAVEL", "50.00"),
	}
	s.mockExpenseRepo.EXPECT().GetDistinctMonths().Return(months, nil)
	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(expenses, nil)

	result, err := s.service.CheckDataSufficiency()

	s.NoError(err)
	s.Equal(4, result.MonthsOfData)
	s.Equal(int64(5), result.RecordCount)
}

func (s *SufficiencyServiceTestSuite) TestCheckDataSufficiency_QualityScore() {
	// 2 months, 5 records, 3 categories: 2*8 + 5/5 + 3*2 = 23.
	months := []models.YearMonth{
		{Year: 2024, Month: 1},
		{Year: 2024, Month: 2},
	}
	expenses := []models.Expense{
		ledgerExpense("2024-01-05", "GROCERIES", "10.00"),
		ledgerExpense("2024-01-06", "GROCERIES", "10.00"),
		ledgerExpense("2024-01-07", "DINING", "10.00"),
		ledgerExpense("2024-02-05", "DINING", "10.00"),
		ledgerExpense("2024-02-06", "TRAVEL", "10.00"),
	}
	s.mockExpenseRepo.EXPECT().GetDistinctMonths().Return(months, nil)
	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(expenses, nil)

	result, err := s.service.CheckDataSufficiency()

	s.NoError(err)
	s.InDelta(23.0, result.DataQualityScore, 0.0001)
}

func (s *SufficiencyServiceTestSuite) TestCheckDataSufficiency_QualityScoreClamped() {
	// 14 distinct months alone exceed 100 before clamping.
	months := make([]models.YearMonth, 0, 14)
	cursor := time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC)
	for m := 0; m < 14; m++ {
		months = append(months, models.YearMonth{Year: cursor.Year(), Month: int(cursor.Month())})
		cursor = cursor.AddDate(0, 1, 0)
	}
	expenses := []models.Expense{
		{Date: time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), Category: "GROCERIES", Amount: decimal.NewFromInt(25)},
	}
	s.mockExpenseRepo.EXPECT().GetDistinctMonths().Return(months, nil)
	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(expenses, nil)

	result, err := s.service.CheckDataSufficiency()

	s.NoError(err)
	s.Equal(14, result.MonthsOfData)
	s.Equal(100.0, result.DataQualityScore)
}

func (s *SufficiencyServiceTestSuite) TestCheckDataSufficiency_MonthsQueryError() {
	s.mockExpenseRepo.EXPECT().GetDistinctMonths().Return(nil, errors.New("database error"))

	result, err := s.service.CheckDataSufficiency()

	s.Error(err)
	s.Nil(result)
}

func (s *SufficiencyServiceTestSuite) TestCheckDataSufficiency_HistoryQueryError() {
	s.mockExpenseRepo.EXPECT().GetDistinctMonths().Return([]models.YearMonth{{Year: 2024, Month: 1}}, nil)
	s.mockExpenseRepo.EXPECT().GetByDateRange(nil, nil).Return(nil, errors.New("database error"))

	result, err := s.service.CheckDataSufficiency()

	s.Error(err)
	s.Nil(result)
}

func TestConfidenceForMonths(t *testing.T) {
	cases := []struct {
		months int
		want   models.ConfidenceLevel
	}{
		{0, models.ConfidenceLow},
		{5, models.ConfidenceLow},
		{6, models.ConfidenceMedium},
		{11, models.ConfidenceMedium},
		{12, models.ConfidenceHigh},
		{36, models.ConfidenceHigh},
	}
	for _, tc := range cases {
		if got := models.ConfidenceForMonths(tc.months); got != tc.want {
			t.Errorf("ConfidenceForMonths(%d) = %q, want %q", tc.months, got, tc.want)
		}
	}
}

// ledgerExpense builds an expense on a given day for sufficiency and pattern
// tests
func ledgerExpense(date, category, amount string) models.Expense {
	parsed, _ := time.Parse("2006-01-02", date)
	value, _ := decimal.NewFromString(amount)
	return models.Expense{
		Date:     parsed,
		Category: category,
		Amount:   value,
	}
}
