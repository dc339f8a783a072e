package services

import (
	"testing"
	"time"

	"spendtrack/internal/dto"
	"spendtrack/internal/models"
	"spendtrack/internal/repositories"
	"spendtrack/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// BudgetServiceTestSuite defines the test suite for budget operations
type BudgetServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockBudgetRepo  *repository_mocks.MockBudgetRepositoryInterface
	mockExpenseRepo *repository_mocks.MockExpenseRepositoryInterface
	service         BudgetServiceInterface
}

// SetupTest runs before each test
func (s *BudgetServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockBudgetRepo = repository_mocks.NewMockBudgetRepositoryInterface(s.ctrl)
	s.mockExpenseRepo = repository_mocks.NewMockExpenseRepositoryInterface(s.ctrl)
	s.service = NewBudgetService(s.mockBudgetRepo, s.mockExpenseRepo, testLogger())
}

// TearDownTest runs after each test
func (s *BudgetServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestBudgetServiceSuite runs the test suite
func TestBudgetServiceSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}

func (s *BudgetServiceTestSuite) TestCreateBudget_Success() {
	req := &dto.CreateBudgetRequest{Category: "GROCERIES", MonthlyLimit: "400.00"}
	s.mockBudgetRepo.EXPECT().Create(gomock.Any()).Return(nil)

	budget, err := s.service.CreateBudget(req)

	s.NoError(err)
	s.Equal("GROCERIES", budget.Category)
	s.True(budget.MonthlyLimit.Equal(decimal.NewFromInt(400)))
}

func (s *BudgetServiceTestSuite) TestCreateBudget_InvalidCategory() {
	budget, err := s.service.CreateBudget(&dto.CreateBudgetRequest{Category: "SNACKS", MonthlyLimit: "100.00"})

	s.ErrorIs(err, ErrInvalidCategory)
	s.Nil(budget)
}

func (s *BudgetServiceTestSuite) TestCreateBudget_NonPositiveLimit() {
	budget, err := s.service.CreateBudget(&dto.CreateBudgetRequest{Category: "DINING", MonthlyLimit: "0"})

	s.ErrorIs(err, ErrInvalidBudgetLimit)
	s.Nil(budget)
}

func (s *BudgetServiceTestSuite) TestCreateBudget_DuplicateCategory() {
	req := &dto.CreateBudgetRequest{Category: "DINING", MonthlyLimit: "150.00"}
	s.mockBudgetRepo.EXPECT().Create(gomock.Any()).Return(repositories.ErrBudgetAlreadyExists)

	budget, err := s.service.CreateBudget(req)

	s.ErrorIs(err, ErrBudgetAlreadyExists)
	s.Nil(budget)
}

func (s *BudgetServiceTestSuite) TestUpdateBudget_ChangesLimit() {
	existing := &models.Budget{
		ID:           uuid.New(),
		Category:     "DINING",
		MonthlyLimit: decimal.NewFromInt(150),
	}
	s.mockBudgetRepo.EXPECT().GetByID(existing.ID).Return(existing, nil)
	s.mockBudgetRepo.EXPECT().Update(gomock.Any()).Return(nil)

	newLimit := "200.00"
	budget, err := s.service.UpdateBudget(existing.ID, &dto.UpdateBudgetRequest{MonthlyLimit: &newLimit})

	s.NoError(err)
	s.True(budget.MonthlyLimit.Equal(decimal.NewFromInt(200)))
	s.Equal("DINING", budget.Category)
}

func (s *BudgetServiceTestSuite) TestGetBudgetByID_NotFound() {
	id := uuid.New()
	s.mockBudgetRepo.EXPECT().GetByID(id).Return(nil, repositories.ErrBudgetNotFound)

	budget, err := s.service.GetBudgetByID(id)

	s.ErrorIs(err, ErrBudgetNotFound)
	s.Nil(budget)
}

func (s *BudgetServiceTestSuite) TestGetBudgetProgress_Math() {
	budgets := []models.Budget{
		{ID: uuid.New(), Category: "GROCERIES", MonthlyLimit: decimal.NewFromInt(400)},
		{ID: uuid.New(), Category: "DINING", MonthlyLimit: decimal.NewFromInt(100)},
		{ID: uuid.New(), Category: "TRAVEL", MonthlyLimit: decimal.NewFromInt(500)},
	}
	s.mockBudgetRepo.EXPECT().GetAll().Return(budgets, nil)

	monthStart := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	expenses := []models.Expense{
		ledgerExpense("2024-03-05", "GROCERIES", "100.00"),
		ledgerExpense("2024-03-18", "GROCERIES", "150.00"),
		ledgerExpense("2024-03-10", "DINING", "150.00"),
	}
	s.mockExpenseRepo.EXPECT().GetByDateRange(&monthStart, &monthEnd).Return(expenses, nil)

	progress, err := s.service.GetBudgetProgress(2024, 3)

	s.NoError(err)
	s.Require().Len(progress, 3)

	groceries := progress[0]
	s.Equal("GROCERIES", groceries.Category)
	s.True(groceries.Spent.Equal(decimal.NewFromInt(250)))
	s.True(groceries.Remaining.Equal(decimal.NewFromInt(150)))
	s.InDelta(62.5, groceries.PercentUsed, 0.0001)
	s.False(groceries.OverBudget)

	dining := progress[1]
	s.True(dining.Spent.Equal(decimal.NewFromInt(150)))
	s.True(dining.Remaining.Equal(decimal.NewFromInt(-50)))
	s.InDelta(150.0, dining.PercentUsed, 0.0001)
	s.True(dining.OverBudget)

	// No travel expenses this month.
	travel := progress[2]
	s.True(travel.Spent.IsZero())
	s.True(travel.Remaining.Equal(decimal.NewFromInt(500)))
	s.Zero(travel.PercentUsed)
	s.False(travel.OverBudget)
}

func (s *BudgetServiceTestSuite) TestGetBudgetProgress_NoBudgets() {
	s.mockBudgetRepo.EXPECT().GetAll().Return([]models.Budget{}, nil)
	s.mockExpenseRepo.EXPECT().GetByDateRange(gomock.Any(), gomock.Any()).Return([]models.Expense{}, nil)

	progress, err := s.service.GetBudgetProgress(2024, 3)

	s.NoError(err)
	s.Empty(progress)
}

func (s *BudgetServiceTestSuite) TestDeleteBudget_NotFound() {
	id := uuid.New()
	s.mockBudgetRepo.EXPECT().Delete(id).Return(repositories.ErrBudgetNotFound)

	s.ErrorIs(s.service.DeleteBudget(id), ErrBudgetNotFound)
}
