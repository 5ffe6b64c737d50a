package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/core/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BillServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockBillRepository
	mockContactRepo *MockContactRepository
	service         portssvc.BillSvcFacade
	ctx             context.Context
}

func (suite *BillServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBillRepository)
	suite.mockContactRepo = new(MockContactRepository)
	suite.service = services.NewBillService(suite.mockRepo, suite.mockContactRepo, nil, time.Minute)
	suite.ctx = context.Background()
}

func (suite *BillServiceTestSuite) TestCreateBill_Success() {
	vendorID := uuid.NewString()
	expenseAcc := uuid.NewString()
	req := dto.CreateBillRequest{
		BillNumber: "BILL-2001",
		VendorID:   vendorID,
		BillDate:   "2026-02-10",
		DueDate:    "2026-03-12",
		LineItems: []dto.CreateBillLineItemRequest{
			{Description: "Server hosting", Amount: decimal.NewFromInt(300), ExpenseAccountID: expenseAcc},
			{Description: "Backups", Amount: decimal.NewFromInt(50), ExpenseAccountID: expenseAcc},
		},
	}

	suite.mockContactRepo.On("ContactExists", suite.ctx, vendorID, domain.ContactVendor).Return(true, nil).Once()
	suite.mockRepo.On("SaveBill", suite.ctx, mock.AnythingOfType("domain.Bill")).Return(nil).Once()

	bill, err := suite.service.CreateBill(suite.ctx, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.BillOpen, bill.Status)
	assert.True(suite.T(), decimal.NewFromInt(350).Equal(bill.TotalAmount))
	assert.True(suite.T(), bill.Balance.Equal(bill.TotalAmount))
	assert.Equal(suite.T(), 1, bill.LineItems[0].LineNumber)
	assert.Equal(suite.T(), 2, bill.LineItems[1].LineNumber)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockContactRepo.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestCreateBill_BillableLineWithoutCustomer() {
	vendorID := uuid.NewString()
	req := dto.CreateBillRequest{
		BillNumber: "BILL-2002",
		VendorID:   vendorID,
		BillDate:   "2026-02-10",
		DueDate:    "2026-03-12",
		LineItems: []dto.CreateBillLineItemRequest{
			{Description: "Reimbursable travel", Amount: decimal.NewFromInt(120), ExpenseAccountID: uuid.NewString(), Billable: true},
		},
	}
	suite.mockContactRepo.On("ContactExists", suite.ctx, vendorID, domain.ContactVendor).Return(true, nil).Once()

	_, err := suite.service.CreateBill(suite.ctx, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBill", mock.Anything, mock.Anything)
}

func (suite *BillServiceTestSuite) TestCreateBill_UnknownVendor() {
	vendorID := uuid.NewString()
	req := dto.CreateBillRequest{
		BillNumber: "BILL-2003",
		VendorID:   vendorID,
		BillDate:   "2026-02-10",
		DueDate:    "2026-03-12",
		LineItems: []dto.CreateBillLineItemRequest{
			{Description: "Hosting", Amount: decimal.NewFromInt(10), ExpenseAccountID: uuid.NewString()},
		},
	}
	suite.mockContactRepo.On("ContactExists", suite.ctx, vendorID, domain.ContactVendor).Return(false, nil).Once()

	_, err := suite.service.CreateBill(suite.ctx, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *BillServiceTestSuite) TestDeleteBill_WithApplicationsRejected() {
	billID := uuid.NewString()
	existing := &domain.Bill{BillID: billID, VendorID: uuid.NewString(), Status: domain.BillPartial}

	suite.mockRepo.On("FindBillByID", suite.ctx, billID).Return(existing, nil).Once()
	suite.mockRepo.On("CountBillApplications", suite.ctx, billID).Return(int64(2), nil).Once()

	err := suite.service.DeleteBill(suite.ctx, billID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteBill", mock.Anything, mock.Anything)
}

func (suite *BillServiceTestSuite) TestDeleteBill_WithoutApplications() {
	billID := uuid.NewString()
	existing := &domain.Bill{BillID: billID, VendorID: uuid.NewString(), Status: domain.BillOpen}

	suite.mockRepo.On("FindBillByID", suite.ctx, billID).Return(existing, nil).Once()
	suite.mockRepo.On("CountBillApplications", suite.ctx, billID).Return(int64(0), nil).Once()
	suite.mockRepo.On("DeleteBill", suite.ctx, billID).Return(nil).Once()

	err := suite.service.DeleteBill(suite.ctx, billID)

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestUpdateBillStatus_VoidIsTerminal() {
	billID := uuid.NewString()
	existing := &domain.Bill{BillID: billID, Status: domain.BillVoid}
	suite.mockRepo.On("FindBillByID", suite.ctx, billID).Return(existing, nil).Once()

	_, err := suite.service.UpdateBillStatus(suite.ctx, billID, dto.UpdateBillStatusRequest{Status: "OPEN"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidTransition)
}

func (suite *BillServiceTestSuite) TestUpdateBillStatus_OpenToVoid() {
	billID := uuid.NewString()
	existing := &domain.Bill{BillID: billID, VendorID: uuid.NewString(), Status: domain.BillOpen}

	suite.mockRepo.On("FindBillByID", suite.ctx, billID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateBillStatus", suite.ctx, billID, domain.BillVoid, mock.AnythingOfType("time.Time")).Return(nil).Once()

	bill, err := suite.service.UpdateBillStatus(suite.ctx, billID, dto.UpdateBillStatusRequest{Status: "VOID"})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.BillVoid, bill.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestBillServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BillServiceTestSuite))
}
