package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// paymentHandler handles HTTP requests related to payments on both sides of
// the ledger.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(paymentService portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: paymentService}
}

// createPayment godoc
// @Summary Record a customer payment
// @Description Records a payment, optionally applying part of it to invoices atomically
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.CreatePaymentRequest true "Payment and optional applications"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid request or over-application"
// @Router /payments [post]
func (h *paymentHandler) createPayment(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, "createPayment", err)
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create payment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment, nil))
}

// listPayments godoc
// @Summary List payments
// @Description Retrieves customer payments, newest first
// @Tags payments
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListPaymentsResponse
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ListPaymentsResponse{Payments: dto.ToPaymentResponses(payments)})
}

// listUnappliedPayments godoc
// @Summary List unapplied payments
// @Description Retrieves payments with funds left to apply, oldest payment date first
// @Tags payments
// @Produce json
// @Param customerID query string false "Restrict to one customer"
// @Success 200 {object} dto.ListPaymentsResponse
// @Router /payments/unapplied [get]
func (h *paymentHandler) listUnappliedPayments(c *gin.Context) {
	var customerID *string
	if v := c.Query("customerID"); v != "" {
		customerID = &v
	}

	payments, err := h.paymentService.ListUnappliedPayments(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, err, "Failed to list unapplied payments")
		return
	}
	c.JSON(http.StatusOK, dto.ListPaymentsResponse{Payments: dto.ToPaymentResponses(payments)})
}

// getPayment godoc
// @Summary Get a payment
// @Description Retrieves a payment and its applications by ID
// @Tags payments
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Router /payments/{paymentID} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	paymentID := c.Param("paymentID")

	payment, apps, err := h.paymentService.GetPaymentByID(c.Request.Context(), paymentID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment, apps))
}

// applyPayment godoc
// @Summary Apply a payment to invoices
// @Description Distributes a payment's unapplied funds to invoices atomically
// @Tags payments
// @Accept json
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Param applications body dto.ApplyPaymentRequest true "Applications"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Over-application or invalid invoice"
// @Failure 404 {object} map[string]string "Payment not found"
// @Router /payments/{paymentID}/apply [post]
func (h *paymentHandler) applyPayment(c *gin.Context) {
	paymentID := c.Param("paymentID")

	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, "applyPayment", err)
		return
	}

	payment, err := h.paymentService.ApplyPayment(c.Request.Context(), paymentID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to apply payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment, nil))
}

// createBillPayment godoc
// @Summary Record a vendor payment
// @Description Records a bill payment, optionally applying part of it to bills atomically
// @Tags bill-payments
// @Accept json
// @Produce json
// @Param payment body dto.CreateBillPaymentRequest true "Bill payment and optional applications"
// @Success 201 {object} dto.BillPaymentResponse
// @Failure 400 {object} map[string]string "Invalid request or over-application"
// @Router /bill-payments [post]
func (h *paymentHandler) createBillPayment(c *gin.Context) {
	var req dto.CreateBillPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, "createBillPayment", err)
		return
	}

	payment, err := h.paymentService.CreateBillPayment(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create bill payment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBillPaymentResponse(payment, nil))
}

// listBillPayments godoc
// @Summary List bill payments
// @Description Retrieves vendor payments, newest first
// @Tags bill-payments
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListBillPaymentsResponse
// @Router /bill-payments [get]
func (h *paymentHandler) listBillPayments(c *gin.Context) {
	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	payments, err := h.paymentService.ListBillPayments(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list bill payments")
		return
	}
	c.JSON(http.StatusOK, dto.ListBillPaymentsResponse{BillPayments: dto.ToBillPaymentResponses(payments)})
}

// getBillPayment godoc
// @Summary Get a bill payment
// @Description Retrieves a bill payment and its applications by ID
// @Tags bill-payments
// @Produce json
// @Param billPaymentID path string true "Bill payment ID"
// @Success 200 {object} dto.BillPaymentResponse
// @Failure 404 {object} map[string]string "Bill payment not found"
// @Router /bill-payments/{billPaymentID} [get]
func (h *paymentHandler) getBillPayment(c *gin.Context) {
	billPaymentID := c.Param("billPaymentID")

	payment, apps, err := h.paymentService.GetBillPaymentByID(c.Request.Context(), billPaymentID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve bill payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillPaymentResponse(payment, apps))
}

// registerPaymentRoutes registers payment and bill payment specific routes
func registerPaymentRoutes(group *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := group.Group("/payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("", h.listPayments)
		payments.GET("/unapplied", h.listUnappliedPayments)
		payments.GET("/:paymentID", h.getPayment)
		payments.POST("/:paymentID/apply", h.applyPayment)
	}

	billPayments := group.Group("/bill-payments")
	{
		billPayments.POST("", h.createBillPayment)
		billPayments.GET("", h.listBillPayments)
		billPayments.GET("/:billPaymentID", h.getBillPayment)
	}
}
