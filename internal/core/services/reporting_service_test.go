package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/core/ports"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingSvcFacade
	ctx      context.Context
	asOf     time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo, nil, time.Hour, 2*time.Hour)
	suite.ctx = context.Background()
	suite.asOf = time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Balanced() {
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1000", AccountType: domain.Asset, Debit: decimal.NewFromInt(500)},
		{AccountID: uuid.NewString(), AccountCode: "4000", AccountType: domain.Revenue, Credit: decimal.NewFromInt(500)},
	}
	suite.mockRepo.On("GetTrialBalanceRows", suite.ctx, suite.asOf).Return(rows, nil).Once()

	tb, err := suite.service.TrialBalance(suite.ctx, suite.asOf)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), decimal.NewFromInt(500).Equal(tb.TotalDebits))
	assert.True(suite.T(), decimal.NewFromInt(500).Equal(tb.TotalCredits))
	assert.True(suite.T(), tb.IsBalanced)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_ImbalanceDetected() {
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1000", AccountType: domain.Asset, Debit: decimal.NewFromInt(500)},
		{AccountID: uuid.NewString(), AccountCode: "4000", AccountType: domain.Revenue, Credit: decimal.NewFromFloat(499.90)},
	}
	suite.mockRepo.On("GetTrialBalanceRows", suite.ctx, suite.asOf).Return(rows, nil).Once()

	tb, err := suite.service.TrialBalance(suite.ctx, suite.asOf)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), tb.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_WithinTolerance() {
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1000", AccountType: domain.Asset, Debit: decimal.NewFromFloat(500.004)},
		{AccountID: uuid.NewString(), AccountCode: "4000", AccountType: domain.Revenue, Credit: decimal.NewFromInt(500)},
	}
	suite.mockRepo.On("GetTrialBalanceRows", suite.ctx, suite.asOf).Return(rows, nil).Once()

	tb, err := suite.service.TrialBalance(suite.ctx, suite.asOf)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), tb.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_NetIncome() {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	revenue := []domain.AccountAmount{
		{AccountID: uuid.NewString(), AccountCode: "4000", Amount: decimal.NewFromInt(9000)},
		{AccountID: uuid.NewString(), AccountCode: "4100", Amount: decimal.NewFromInt(1000)},
	}
	expenses := []domain.AccountAmount{
		{AccountID: uuid.NewString(), AccountCode: "5000", Amount: decimal.NewFromInt(4000)},
	}
	suite.mockRepo.On("GetProfitLossEntries", suite.ctx, from, to).Return(revenue, expenses, nil).Once()

	pl, err := suite.service.ProfitAndLoss(suite.ctx, from, to)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), decimal.NewFromInt(10000).Equal(pl.TotalRevenue))
	assert.True(suite.T(), decimal.NewFromInt(4000).Equal(pl.TotalExpenses))
	assert.True(suite.T(), decimal.NewFromInt(6000).Equal(pl.NetIncome))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_Totals() {
	assets := []domain.AccountAmount{{AccountID: uuid.NewString(), AccountCode: "1000", Amount: decimal.NewFromInt(7000)}}
	liabilities := []domain.AccountAmount{{AccountID: uuid.NewString(), AccountCode: "2000", Amount: decimal.NewFromInt(3000)}}
	equity := []domain.AccountAmount{{AccountID: uuid.NewString(), AccountCode: "3000", Amount: decimal.NewFromInt(4000)}}
	suite.mockRepo.On("GetBalanceSheetEntries", suite.ctx, suite.asOf).Return(assets, liabilities, equity, nil).Once()

	bs, err := suite.service.BalanceSheet(suite.ctx, suite.asOf)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), decimal.NewFromInt(7000).Equal(bs.TotalAssets))
	assert.True(suite.T(), bs.TotalAssets.Equal(bs.TotalLiabilities.Add(bs.TotalEquity)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestARAging_TotalsRows() {
	rows := []domain.AgingRow{
		{CustomerID: uuid.NewString(), CustomerName: "Acme", Current: decimal.NewFromInt(100), Days1To30: decimal.NewFromInt(50), Total: decimal.NewFromInt(150)},
		{CustomerID: uuid.NewString(), CustomerName: "Globex", Days91Plus: decimal.NewFromInt(75), Total: decimal.NewFromInt(75)},
	}
	suite.mockRepo.On("GetARAgingRows", suite.ctx, suite.asOf).Return(rows, nil).Once()

	report, err := suite.service.ARAging(suite.ctx, suite.asOf)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), decimal.NewFromInt(225).Equal(report.TotalOutstanding))
	assert.Len(suite.T(), report.Rows, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_CacheHitSkipsRepository() {
	cached := domain.TrialBalance{
		AsOfDate:     suite.asOf,
		TotalDebits:  decimal.NewFromInt(100),
		TotalCredits: decimal.NewFromInt(100),
		IsBalanced:   true,
	}
	mockCache := new(MockCache)
	mockCache.On("GetJSON", suite.ctx, "trial_balance:2026-01-31", mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(2).(*domain.TrialBalance) = cached
		}).Return(nil).Once()

	service := services.NewReportingService(suite.mockRepo, mockCache, time.Hour, 2*time.Hour)
	tb, err := service.TrialBalance(suite.ctx, suite.asOf)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), tb.IsBalanced)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetTrialBalanceRows", mock.Anything, mock.Anything)
	mockCache.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_CacheMissStoresResult() {
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1000", AccountType: domain.Asset, Debit: decimal.NewFromInt(10), Credit: decimal.Zero},
	}
	mockCache := new(MockCache)
	mockCache.On("GetJSON", suite.ctx, "trial_balance:2026-01-31", mock.Anything).Return(ports.ErrCacheMiss).Once()
	mockCache.On("SetJSON", suite.ctx, "trial_balance:2026-01-31", mock.Anything, time.Hour).Return(nil).Once()
	suite.mockRepo.On("GetTrialBalanceRows", suite.ctx, suite.asOf).Return(rows, nil).Once()

	service := services.NewReportingService(suite.mockRepo, mockCache, time.Hour, 2*time.Hour)
	tb, err := service.TrialBalance(suite.ctx, suite.asOf)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), tb.Rows, 1)
	mockCache.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
