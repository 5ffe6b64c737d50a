package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/core/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.TransactionSvcFacade
	ctx             context.Context
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountRepo)
	suite.ctx = context.Background()
}

func (suite *TransactionServiceTestSuite) activeAccounts(ids ...string) map[string]domain.Account {
	accounts := make(map[string]domain.Account, len(ids))
	for _, id := range ids {
		accounts[id] = domain.Account{AccountID: id, AccountType: domain.Asset, IsActive: true}
	}
	return accounts
}

func balancedRequest(debitAccount, creditAccount string) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		TransactionDate: "2026-01-15",
		Description:     "Office rent for January",
		LineItems: []dto.CreateTransactionLineItemRequest{
			{AccountID: debitAccount, DebitAmount: decimal.NewFromInt(1200)},
			{AccountID: creditAccount, CreditAmount: decimal.NewFromInt(1200)},
		},
	}
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	debitAcc := uuid.NewString()
	creditAcc := uuid.NewString()
	req := balancedRequest(debitAcc, creditAcc)

	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, []string{debitAcc, creditAcc}).
		Return(suite.activeAccounts(debitAcc, creditAcc), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), txn)
	assert.Equal(suite.T(), domain.TransactionDraft, txn.Status)
	assert.NotEmpty(suite.T(), txn.TransactionID)
	assert.Len(suite.T(), txn.LineItems, 2)
	assert.Equal(suite.T(), txn.TransactionID, txn.LineItems[0].TransactionID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Unbalanced() {
	req := dto.CreateTransactionRequest{
		TransactionDate: "2026-01-15",
		Description:     "Unbalanced entry",
		LineItems: []dto.CreateTransactionLineItemRequest{
			{AccountID: uuid.NewString(), DebitAmount: decimal.NewFromInt(100)},
			{AccountID: uuid.NewString(), CreditAmount: decimal.NewFromInt(90)},
		},
	}

	txn, err := suite.service.CreateTransaction(suite.ctx, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	assert.Nil(suite.T(), txn)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_BothSidesOnOneLine() {
	req := dto.CreateTransactionRequest{
		TransactionDate: "2026-01-15",
		Description:     "Line with debit and credit",
		LineItems: []dto.CreateTransactionLineItemRequest{
			{AccountID: uuid.NewString(), DebitAmount: decimal.NewFromInt(50), CreditAmount: decimal.NewFromInt(50)},
			{AccountID: uuid.NewString(), CreditAmount: decimal.Zero},
		},
	}

	_, err := suite.service.CreateTransaction(suite.ctx, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SingleLine() {
	req := dto.CreateTransactionRequest{
		TransactionDate: "2026-01-15",
		Description:     "Only one leg",
		LineItems: []dto.CreateTransactionLineItemRequest{
			{AccountID: uuid.NewString(), DebitAmount: decimal.NewFromInt(100)},
		},
	}

	_, err := suite.service.CreateTransaction(suite.ctx, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ZeroTotal() {
	req := dto.CreateTransactionRequest{
		TransactionDate: "2026-01-15",
		Description:     "Zero magnitude",
		LineItems: []dto.CreateTransactionLineItemRequest{
			{AccountID: uuid.NewString(), DebitAmount: decimal.Zero},
			{AccountID: uuid.NewString(), CreditAmount: decimal.Zero},
		},
	}

	_, err := suite.service.CreateTransaction(suite.ctx, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InactiveAccount() {
	debitAcc := uuid.NewString()
	creditAcc := uuid.NewString()
	req := balancedRequest(debitAcc, creditAcc)

	accounts := suite.activeAccounts(debitAcc)
	accounts[creditAcc] = domain.Account{AccountID: creditAcc, AccountType: domain.Revenue, IsActive: false}
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, []string{debitAcc, creditAcc}).
		Return(accounts, nil).Once()

	_, err := suite.service.CreateTransaction(suite.ctx, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownAccount() {
	debitAcc := uuid.NewString()
	creditAcc := uuid.NewString()
	req := balancedRequest(debitAcc, creditAcc)

	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, []string{debitAcc, creditAcc}).
		Return(suite.activeAccounts(debitAcc), nil).Once()

	_, err := suite.service.CreateTransaction(suite.ctx, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransactionStatus_DraftToPosted() {
	txnID := uuid.NewString()
	existing := &domain.Transaction{TransactionID: txnID, Status: domain.TransactionDraft}

	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, txnID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionStatus", suite.ctx, txnID, domain.TransactionPosted, mock.AnythingOfType("time.Time")).Return(nil).Once()

	txn, err := suite.service.UpdateTransactionStatus(suite.ctx, txnID, dto.UpdateTransactionStatusRequest{Status: "POSTED"})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.TransactionPosted, txn.Status)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransactionStatus_PostedToDraftRejected() {
	txnID := uuid.NewString()
	existing := &domain.Transaction{TransactionID: txnID, Status: domain.TransactionPosted}
	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, txnID).Return(existing, nil).Once()

	_, err := suite.service.UpdateTransactionStatus(suite.ctx, txnID, dto.UpdateTransactionStatusRequest{Status: "DRAFT"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidTransition)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransactionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransactionStatus_VoidIsTerminal() {
	txnID := uuid.NewString()
	existing := &domain.Transaction{TransactionID: txnID, Status: domain.TransactionVoid}
	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, txnID).Return(existing, nil).Once()

	_, err := suite.service.UpdateTransactionStatus(suite.ctx, txnID, dto.UpdateTransactionStatusRequest{Status: "POSTED"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidTransition)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_Draft() {
	txnID := uuid.NewString()
	existing := &domain.Transaction{TransactionID: txnID, Status: domain.TransactionDraft}
	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, txnID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", suite.ctx, txnID).Return(nil).Once()

	err := suite.service.DeleteTransaction(suite.ctx, txnID)

	assert.NoError(suite.T(), err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_PostedRejected() {
	txnID := uuid.NewString()
	existing := &domain.Transaction{TransactionID: txnID, Status: domain.TransactionPosted}
	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, txnID).Return(existing, nil).Once()

	err := suite.service.DeleteTransaction(suite.ctx, txnID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_AttachesLines() {
	txnID := uuid.NewString()
	header := &domain.Transaction{TransactionID: txnID, Status: domain.TransactionPosted}
	lines := []domain.TransactionLineItem{
		{LineItemID: uuid.NewString(), TransactionID: txnID, DebitAmount: decimal.NewFromInt(10)},
		{LineItemID: uuid.NewString(), TransactionID: txnID, CreditAmount: decimal.NewFromInt(10)},
	}
	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, txnID).Return(header, nil).Once()
	suite.mockTxnRepo.On("FindLineItemsByTransactionID", suite.ctx, txnID).Return(lines, nil).Once()

	txn, err := suite.service.GetTransactionByID(suite.ctx, txnID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), txn.LineItems, 2)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_FilterMapping() {
	status := "POSTED"
	from := "2026-01-01"
	params := dto.ListTransactionsParams{Status: &status, FromDate: &from, Limit: 10}

	txnID := uuid.NewString()
	headers := []domain.Transaction{{TransactionID: txnID, Status: domain.TransactionPosted}}
	lines := map[string][]domain.TransactionLineItem{
		txnID: {{LineItemID: uuid.NewString(), TransactionID: txnID}},
	}

	expectedFrom, _ := time.Parse("2006-01-02", from)
	suite.mockTxnRepo.On("ListTransactions", suite.ctx, mock.MatchedBy(func(f portsrepo.ListTransactionsFilter) bool {
		return f.Status != nil && *f.Status == domain.TransactionPosted &&
			f.FromDate != nil && f.FromDate.Equal(expectedFrom) &&
			f.Limit == 10
	})).Return(headers, nil).Once()
	suite.mockTxnRepo.On("FindLineItemsByTransactionIDs", suite.ctx, []string{txnID}).Return(lines, nil).Once()

	txns, err := suite.service.ListTransactions(suite.ctx, params)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), txns, 1)
	assert.Len(suite.T(), txns[0].LineItems, 1)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestGetAccountBalance_Success() {
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, AccountType: domain.Asset, IsActive: true}
	balance := decimal.NewFromFloat(1234.56)

	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, accountID).Return(account, nil).Once()
	suite.mockTxnRepo.On("GetAccountBalance", suite.ctx, accountID, (*time.Time)(nil)).Return(balance, nil).Once()

	got, err := suite.service.GetAccountBalance(suite.ctx, accountID, nil)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), balance.Equal(got))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestGetAccountBalance_UnknownAccount() {
	accountID := uuid.NewString()
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccountBalance(suite.ctx, accountID, nil)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "GetAccountBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
