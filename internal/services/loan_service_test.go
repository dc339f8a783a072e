package services

import (
	"errors"
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

// LoanServiceTestSuite defines the test suite for loan operations
type LoanServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockLoanRepo *repository_mocks.MockLoanRepositoryInterface
	service      LoanServiceInterface
}

// SetupTest runs before each test
func (s *LoanServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockLoanRepo = repository_mocks.NewMockLoanRepositoryInterface(s.ctrl)
	s.service = NewLoanService(s.mockLoanRepo, testLogger())
}

// TearDownTest runs after each test
func (s *LoanServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestLoanServiceSuite runs the test suite
func TestLoanServiceSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}

func carLoan() *models.Loan {
	return &models.Loan{
		ID:                uuid.New(),
		Name:              "Car loan",
		Lender:            "First National",
		Principal:         decimal.NewFromInt(10000),
		AnnualRatePercent: decimal.NewFromInt(6),
		TermMonths:        12,
		StartDate:         time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
}

func (s *LoanServiceTestSuite) TestCreateLoan_Success() {
	req := &dto.CreateLoanRequest{
		Name:              "Car loan",
		Lender:            "First National",
		Principal:         "10000.00",
		AnnualRatePercent: "6",
		TermMonths:        12,
		StartDate:         "2024-01-15",
	}
	s.mockLoanRepo.EXPECT().Create(gomock.Any()).Return(nil)

	loan, err := s.service.CreateLoan(req)

	s.NoError(err)
	s.Equal("Car loan", loan.Name)
	s.True(loan.Principal.Equal(decimal.NewFromInt(10000)))
	s.Equal(12, loan.TermMonths)
	s.Equal(2024, loan.StartDate.Year())
}

func (s *LoanServiceTestSuite) TestCreateLoan_Validation() {
	cases := []struct {
		name string
		req  *dto.CreateLoanRequest
		want error
	}{
		{
			name: "non-positive principal",
			req:  &dto.CreateLoanRequest{Principal: "0", AnnualRatePercent: "5", TermMonths: 12, StartDate: "2024-01-15"},
			want: ErrInvalidLoanAmount,
		},
		{
			name: "unparseable principal",
			req:  &dto.CreateLoanRequest{Principal: "lots", AnnualRatePercent: "5", TermMonths: 12, StartDate: "2024-01-15"},
			want: ErrInvalidLoanAmount,
		},
		{
			name: "negative rate",
			req:  &dto.CreateLoanRequest{Principal: "1000", AnnualRatePercent: "-1", TermMonths: 12, StartDate: "2024-01-15"},
			want: ErrInvalidLoanRate,
		},
		{
			name: "zero term",
			req:  &dto.CreateLoanRequest{Principal: "1000", AnnualRatePercent: "5", TermMonths: 0, StartDate: "2024-01-15"},
			want: ErrInvalidLoanTerm,
		},
		{
			name: "bad start date",
			req:  &dto.CreateLoanRequest{Principal: "1000", AnnualRatePercent: "5", TermMonths: 12, StartDate: "January 15"},
			want: ErrInvalidLoanStart,
		},
	}
	for _, tc := range cases {
		loan, err := s.service.CreateLoan(tc.req)
		s.ErrorIs(err, tc.want, tc.name)
		s.Nil(loan, tc.name)
	}
}

func (s *LoanServiceTestSuite) TestGetLoanByID_NotFound() {
	id := uuid.New()
	s.mockLoanRepo.EXPECT().GetByID(id).Return(nil, repositories.ErrLoanNotFound)

	loan, err := s.service.GetLoanByID(id)

	s.ErrorIs(err, ErrLoanNotFound)
	s.Nil(loan)
}

func (s *LoanServiceTestSuite) TestDeleteLoan_NotFound() {
	id := uuid.New()
	s.mockLoanRepo.EXPECT().Delete(id).Return(repositories.ErrLoanNotFound)

	s.ErrorIs(s.service.DeleteLoan(id), ErrLoanNotFound)
}

func TestMonthlyPayment_Annuity(t *testing.T) {
	loan := carLoan()

	// 10000 at 6% over 12 months is the textbook 860.66 annuity payment.
	payment := MonthlyPayment(loan)
	if payment.StringFixed(2) != "860.66" {
		t.Fatalf("MonthlyPayment = %s, want 860.66", payment.StringFixed(2))
	}
}

func TestMonthlyPayment_ZeroRate(t *testing.T) {
	loan := carLoan()
	loan.Principal = decimal.NewFromInt(1200)
	loan.AnnualRatePercent = decimal.Zero

	payment := MonthlyPayment(loan)
	if payment.StringFixed(2) != "100.00" {
		t.Fatalf("MonthlyPayment = %s, want 100.00", payment.StringFixed(2))
	}
}

func TestAmortizationSchedule_BalancesToZero(t *testing.T) {
	loan := carLoan()

	schedule := AmortizationSchedule(loan)
	if len(schedule) != loan.TermMonths {
		t.Fatalf("schedule has %d rows, want %d", len(schedule), loan.TermMonths)
	}

	last := schedule[len(schedule)-1]
	if !last.RemainingBalance.IsZero() {
		t.Errorf("final balance = %s, want 0", last.RemainingBalance)
	}

	principalSum := decimal.Zero
	for _, row := range schedule {
		principalSum = principalSum.Add(row.PrincipalPortion)
	}
	if !principalSum.Equal(loan.Principal) {
		t.Errorf("principal portions sum to %s, want %s", principalSum, loan.Principal)
	}

	// Due dates advance monthly from the start date.
	firstDue := loan.StartDate.AddDate(0, 1, 0)
	if !schedule[0].DueDate.Equal(firstDue) {
		t.Errorf("first due date = %s, want %s", schedule[0].DueDate, firstDue)
	}
}

func (s *LoanServiceTestSuite) TestGetLoanBalance_BeforeFirstPayment() {
	loan := carLoan()
	s.mockLoanRepo.EXPECT().GetByID(loan.ID).Return(loan, nil)

	asOf := loan.StartDate.AddDate(0, 0, 10)
	balance, err := s.service.GetLoanBalance(loan.ID, asOf)

	s.NoError(err)
	s.Equal(0, balance.PaymentsMade)
	s.True(balance.RemainingBalance.Equal(loan.Principal))
	s.True(balance.TotalInterest.IsZero())
}

func (s *LoanServiceTestSuite) TestGetLoanBalance_AfterThreePayments() {
	loan := carLoan()
	s.mockLoanRepo.EXPECT().GetByID(loan.ID).Return(loan, nil)

	asOf := loan.StartDate.AddDate(0, 3, 5)
	balance, err := s.service.GetLoanBalance(loan.ID, asOf)

	s.NoError(err)
	s.Equal(3, balance.PaymentsMade)

	schedule := AmortizationSchedule(loan)
	s.True(balance.RemainingBalance.Equal(schedule[2].RemainingBalance))
	expectedInterest := schedule[0].InterestPortion.
		Add(schedule[1].InterestPortion).
		Add(schedule[2].InterestPortion)
	s.True(balance.TotalInterest.Equal(expectedInterest))
}

func (s *LoanServiceTestSuite) TestGetLoanBalance_AfterFinalPayment() {
	loan := carLoan()
	s.mockLoanRepo.EXPECT().GetByID(loan.ID).Return(loan, nil)

	asOf := loan.StartDate.AddDate(0, loan.TermMonths, 1)
	balance, err := s.service.GetLoanBalance(loan.ID, asOf)

	s.NoError(err)
	s.Equal(loan.TermMonths, balance.PaymentsMade)
	s.True(balance.RemainingBalance.IsZero())
}

func (s *LoanServiceTestSuite) TestGetAmortizationSchedule_LoanMissing() {
	id := uuid.New()
	s.mockLoanRepo.EXPECT().GetByID(id).Return(nil, repositories.ErrLoanNotFound)

	schedule, err := s.service.GetAmortizationSchedule(id)

	s.ErrorIs(err, ErrLoanNotFound)
	s.Nil(schedule)
}

func (s *LoanServiceTestSuite) TestCreateLoan_RepositoryError() {
	req := &dto.CreateLoanRequest{
		Name:              "Car loan",
		Principal:         "10000.00",
		AnnualRatePercent: "6",
		TermMonths:        12,
		StartDate:         "2024-01-15",
	}
	s.mockLoanRepo.EXPECT().Create(gomock.Any()).Return(errors.New("database error"))

	loan, err := s.service.CreateLoan(req)

	s.Error(err)
	s.Nil(loan)
}
