package services_test

import (
	"context"
	"testing"

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

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo     *MockPaymentRepository
	mockBillPaymentRepo *MockBillPaymentRepository
	mockContactRepo     *MockContactRepository
	service             portssvc.PaymentSvcFacade
	ctx                 context.Context
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockBillPaymentRepo = new(MockBillPaymentRepository)
	suite.mockContactRepo = new(MockContactRepository)
	suite.service = services.NewPaymentService(suite.mockPaymentRepo, suite.mockBillPaymentRepo, suite.mockContactRepo, nil)
	suite.ctx = context.Background()
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_UnappliedComputed() {
	customerID := uuid.NewString()
	invoiceID := uuid.NewString()
	req := dto.CreatePaymentRequest{
		PaymentNumber: "PMT-3001",
		CustomerID:    customerID,
		PaymentDate:   "2026-02-20",
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: "ACH",
		Applications: []dto.PaymentApplicationRequest{
			{InvoiceID: invoiceID, AmountApplied: decimal.NewFromInt(600)},
		},
	}

	suite.mockContactRepo.On("ContactExists", suite.ctx, customerID, domain.ContactCustomer).Return(true, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", suite.ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("[]domain.PaymentApplication")).
		Run(func(args mock.Arguments) {
			payment := args.Get(1).(domain.Payment)
			apps := args.Get(2).([]domain.PaymentApplication)
			// Conservation: amount == unapplied + sum of applications.
			assert.True(suite.T(), decimal.NewFromInt(400).Equal(payment.UnappliedAmount))
			assert.Len(suite.T(), apps, 1)
			assert.Equal(suite.T(), payment.PaymentID, apps[0].PaymentID)
			assert.Equal(suite.T(), invoiceID, apps[0].InvoiceID)
		}).Return(nil).Once()

	payment, err := suite.service.CreatePayment(suite.ctx, req)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), decimal.NewFromInt(400).Equal(payment.UnappliedAmount))
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_OverApplicationRejected() {
	customerID := uuid.NewString()
	req := dto.CreatePaymentRequest{
		PaymentNumber: "PMT-3002",
		CustomerID:    customerID,
		PaymentDate:   "2026-02-20",
		Amount:        decimal.NewFromInt(500),
		PaymentMethod: "CHECK",
		Applications: []dto.PaymentApplicationRequest{
			{InvoiceID: uuid.NewString(), AmountApplied: decimal.NewFromInt(300)},
			{InvoiceID: uuid.NewString(), AmountApplied: decimal.NewFromInt(300)},
		},
	}
	suite.mockContactRepo.On("ContactExists", suite.ctx, customerID, domain.ContactCustomer).Return(true, nil).Once()

	_, err := suite.service.CreatePayment(suite.ctx, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_NonPositiveAmount() {
	req := dto.CreatePaymentRequest{
		PaymentNumber: "PMT-3003",
		CustomerID:    uuid.NewString(),
		PaymentDate:   "2026-02-20",
		Amount:        decimal.Zero,
		PaymentMethod: "CASH",
	}

	_, err := suite.service.CreatePayment(suite.ctx, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_UnknownCustomer() {
	customerID := uuid.NewString()
	req := dto.CreatePaymentRequest{
		PaymentNumber: "PMT-3004",
		CustomerID:    customerID,
		PaymentDate:   "2026-02-20",
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "CASH",
	}
	suite.mockContactRepo.On("ContactExists", suite.ctx, customerID, domain.ContactCustomer).Return(false, nil).Once()

	_, err := suite.service.CreatePayment(suite.ctx, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_Success() {
	paymentID := uuid.NewString()
	invoiceID := uuid.NewString()
	req := dto.ApplyPaymentRequest{
		Applications: []dto.PaymentApplicationRequest{
			{InvoiceID: invoiceID, AmountApplied: decimal.NewFromInt(250)},
		},
	}
	updated := &domain.Payment{
		PaymentID:       paymentID,
		CustomerID:      uuid.NewString(),
		Amount:          decimal.NewFromInt(500),
		UnappliedAmount: decimal.NewFromInt(250),
	}

	suite.mockPaymentRepo.On("ApplyPayment", suite.ctx, paymentID, mock.MatchedBy(func(apps []domain.PaymentApplication) bool {
		return len(apps) == 1 && apps[0].InvoiceID == invoiceID && apps[0].PaymentID == paymentID
	})).Return(updated, nil).Once()

	payment, err := suite.service.ApplyPayment(suite.ctx, paymentID, req)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), decimal.NewFromInt(250).Equal(payment.UnappliedAmount))
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_NonPositiveApplication() {
	paymentID := uuid.NewString()
	req := dto.ApplyPaymentRequest{
		Applications: []dto.PaymentApplicationRequest{
			{InvoiceID: uuid.NewString(), AmountApplied: decimal.Zero},
		},
	}

	_, err := suite.service.ApplyPayment(suite.ctx, paymentID, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "ApplyPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_RepoOverApplication() {
	paymentID := uuid.NewString()
	req := dto.ApplyPaymentRequest{
		Applications: []dto.PaymentApplicationRequest{
			{InvoiceID: uuid.NewString(), AmountApplied: decimal.NewFromInt(9000)},
		},
	}
	suite.mockPaymentRepo.On("ApplyPayment", suite.ctx, paymentID, mock.Anything).
		Return(nil, apperrors.ErrValidation).Once()

	_, err := suite.service.ApplyPayment(suite.ctx, paymentID, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestGetPaymentByID_Success() {
	paymentID := uuid.NewString()
	payment := &domain.Payment{PaymentID: paymentID, Amount: decimal.NewFromInt(100)}
	apps := []domain.PaymentApplication{{ApplicationID: uuid.NewString(), PaymentID: paymentID}}

	suite.mockPaymentRepo.On("FindPaymentByID", suite.ctx, paymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("FindApplicationsByPaymentID", suite.ctx, paymentID).Return(apps, nil).Once()

	got, gotApps, err := suite.service.GetPaymentByID(suite.ctx, paymentID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), payment, got)
	assert.Len(suite.T(), gotApps, 1)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestListUnappliedPayments_PassesCustomerFilter() {
	customerID := uuid.NewString()
	payments := []domain.Payment{{PaymentID: uuid.NewString(), UnappliedAmount: decimal.NewFromInt(50)}}
	suite.mockPaymentRepo.On("ListUnappliedPayments", suite.ctx, &customerID).Return(payments, nil).Once()

	got, err := suite.service.ListUnappliedPayments(suite.ctx, &customerID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), got, 1)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreateBillPayment_UnappliedComputed() {
	vendorID := uuid.NewString()
	billID := uuid.NewString()
	req := dto.CreateBillPaymentRequest{
		PaymentNumber: "BPMT-4001",
		VendorID:      vendorID,
		PaymentDate:   "2026-02-25",
		Amount:        decimal.NewFromInt(800),
		PaymentMethod: "WIRE",
		Applications: []dto.BillPaymentApplicationRequest{
			{BillID: billID, AmountApplied: decimal.NewFromInt(800)},
		},
	}

	suite.mockContactRepo.On("ContactExists", suite.ctx, vendorID, domain.ContactVendor).Return(true, nil).Once()
	suite.mockBillPaymentRepo.On("SaveBillPayment", suite.ctx, mock.AnythingOfType("domain.BillPayment"), mock.AnythingOfType("[]domain.BillPaymentApplication")).Return(nil).Once()

	payment, err := suite.service.CreateBillPayment(suite.ctx, req)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), payment.UnappliedAmount.IsZero())
	suite.mockBillPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreateBillPayment_OverApplicationRejected() {
	vendorID := uuid.NewString()
	req := dto.CreateBillPaymentRequest{
		PaymentNumber: "BPMT-4002",
		VendorID:      vendorID,
		PaymentDate:   "2026-02-25",
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "WIRE",
		Applications: []dto.BillPaymentApplicationRequest{
			{BillID: uuid.NewString(), AmountApplied: decimal.NewFromInt(150)},
		},
	}
	suite.mockContactRepo.On("ContactExists", suite.ctx, vendorID, domain.ContactVendor).Return(true, nil).Once()

	_, err := suite.service.CreateBillPayment(suite.ctx, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockBillPaymentRepo.AssertNotCalled(suite.T(), "SaveBillPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
