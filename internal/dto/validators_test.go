package dto_test

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decimalPayload struct {
	Amount decimal.Decimal `binding:"dgt0"`
	Rate   decimal.Decimal `binding:"dgte0"`
}

func TestRegisterDecimalValidations(t *testing.T) {
	require.NoError(t, dto.RegisterDecimalValidations())

	valid := decimalPayload{Amount: decimal.NewFromInt(5), Rate: decimal.Zero}
	assert.NoError(t, binding.Validator.ValidateStruct(valid))

	zeroAmount := decimalPayload{Amount: decimal.Zero, Rate: decimal.Zero}
	assert.Error(t, binding.Validator.ValidateStruct(zeroAmount))

	negativeAmount := decimalPayload{Amount: decimal.NewFromInt(-1), Rate: decimal.Zero}
	assert.Error(t, binding.Validator.ValidateStruct(negativeAmount))

	negativeRate := decimalPayload{Amount: decimal.NewFromInt(1), Rate: decimal.NewFromInt(-1)}
	assert.Error(t, binding.Validator.ValidateStruct(negativeRate))
}

func TestDecimalValidations_OnRequestTypes(t *testing.T) {
	require.NoError(t, dto.RegisterDecimalValidations())

	req := dto.CreatePaymentRequest{
		PaymentNumber: "PMT-001",
		CustomerID:    "cust-1",
		PaymentDate:   "2026-01-15",
		Amount:        decimal.Zero,
		PaymentMethod: "CHECK",
	}
	assert.Error(t, binding.Validator.ValidateStruct(req), "zero payment amount must fail binding")

	req.Amount = decimal.NewFromInt(100)
	assert.NoError(t, binding.Validator.ValidateStruct(req))
}
