package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// invoiceHandler handles HTTP requests related to customer invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
	paymentService portssvc.PaymentSvcFacade
}

func newInvoiceHandler(invoiceService portssvc.InvoiceSvcFacade, paymentService portssvc.PaymentSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: invoiceService,
		paymentService: paymentService,
	}
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Creates an invoice in draft status; line amounts and the total are computed server side
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice and line items"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, "createInvoice", err)
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Description Retrieves invoices matching the filters, newest first
// @Tags invoices
// @Produce json
// @Param customerID query string false "Filter by customer"
// @Param status query string false "Filter by status" Enums(DRAFT, SENT, PAID, PARTIAL, OVERDUE, VOID)
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListInvoicesResponse
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ListInvoicesResponse{Invoices: dto.ToInvoiceResponses(invoices)})
}

// getOverdueInvoices godoc
// @Summary List overdue invoices
// @Description Retrieves invoices past their due date that still carry a balance
// @Tags invoices
// @Produce json
// @Success 200 {object} dto.ListInvoicesResponse
// @Router /invoices/overdue [get]
func (h *invoiceHandler) getOverdueInvoices(c *gin.Context) {
	invoices, err := h.invoiceService.GetOverdueInvoices(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list overdue invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ListInvoicesResponse{Invoices: dto.ToInvoiceResponses(invoices)})
}

// getInvoice godoc
// @Summary Get an invoice
// @Description Retrieves an invoice and its line items by ID
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	invoiceID := c.Param("invoiceID")

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateInvoiceStatus godoc
// @Summary Update an invoice's status
// @Description Moves an invoice through its lifecycle, rejecting illegal transitions
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param status body dto.UpdateInvoiceStatusRequest true "Target status"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Illegal status transition"
// @Router /invoices/{invoiceID}/status [put]
func (h *invoiceHandler) updateInvoiceStatus(c *gin.Context) {
	invoiceID := c.Param("invoiceID")

	var req dto.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, "updateInvoiceStatus", err)
		return
	}

	invoice, err := h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), invoiceID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update invoice status")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// getInvoicePayments godoc
// @Summary List payments applied to an invoice
// @Description Retrieves every payment with at least one application against the invoice
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.ListPaymentsResponse
// @Router /invoices/{invoiceID}/payments [get]
func (h *invoiceHandler) getInvoicePayments(c *gin.Context) {
	invoiceID := c.Param("invoiceID")

	payments, err := h.paymentService.GetInvoicePayments(c.Request.Context(), invoiceID)
	if err != nil {
		respondServiceError(c, err, "Failed to list invoice payments")
		return
	}
	c.JSON(http.StatusOK, dto.ListPaymentsResponse{Payments: dto.ToPaymentResponses(payments)})
}

// getCustomerInvoices godoc
// @Summary List a customer's invoices
// @Description Retrieves all invoices of one customer, newest first
// @Tags customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.ListInvoicesResponse
// @Router /customers/{customerID}/invoices [get]
func (h *invoiceHandler) getCustomerInvoices(c *gin.Context) {
	customerID := c.Param("customerID")

	invoices, err := h.invoiceService.GetCustomerInvoices(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, err, "Failed to list customer invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ListInvoicesResponse{Invoices: dto.ToInvoiceResponses(invoices)})
}

// getCustomerPayments godoc
// @Summary List a customer's payments
// @Description Retrieves all payments of one customer, newest first
// @Tags customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.ListPaymentsResponse
// @Router /customers/{customerID}/payments [get]
func (h *invoiceHandler) getCustomerPayments(c *gin.Context) {
	customerID := c.Param("customerID")

	payments, err := h.paymentService.ListCustomerPayments(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, err, "Failed to list customer payments")
		return
	}
	c.JSON(http.StatusOK, dto.ListPaymentsResponse{Payments: dto.ToPaymentResponses(payments)})
}

// registerInvoiceRoutes registers invoice and customer specific routes
func registerInvoiceRoutes(group *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade, paymentService portssvc.PaymentSvcFacade) {
	h := newInvoiceHandler(invoiceService, paymentService)

	invoices := group.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/overdue", h.getOverdueInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.PUT("/:invoiceID/status", h.updateInvoiceStatus)
		invoices.GET("/:invoiceID/payments", h.getInvoicePayments)
	}

	customers := group.Group("/customers")
	{
		customers.GET("/:customerID/invoices", h.getCustomerInvoices)
		customers.GET("/:customerID/payments", h.getCustomerPayments)
	}
}
