package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// billHandler handles HTTP requests related to vendor bills.
type billHandler struct {
	billService portssvc.BillSvcFacade
}

func newBillHandler(billService portssvc.BillSvcFacade) *billHandler {
	return &billHandler{billService: billService}
}

// createBill godoc
// @Summary Create a bill
// @Description Creates a vendor bill in open status; the total is the sum of line amounts
// @Tags bills
// @Accept json
// @Produce json
// @Param bill body dto.CreateBillRequest true "Bill and line items"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /bills [post]
func (h *billHandler) createBill(c *gin.Context) {
	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, "createBill", err)
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create bill")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBillResponse(bill))
}

// listBills godoc
// @Summary List bills
// @Description Retrieves bills matching the filters, newest first
// @Tags bills
// @Produce json
// @Param vendorID query string false "Filter by vendor"
// @Param status query string false "Filter by status" Enums(OPEN, PARTIAL, PAID, VOID)
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListBillsResponse
// @Router /bills [get]
func (h *billHandler) listBills(c *gin.Context) {
	var params dto.ListBillsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	bills, err := h.billService.ListBills(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list bills")
		return
	}
	c.JSON(http.StatusOK, dto.ListBillsResponse{Bills: dto.ToBillResponses(bills)})
}

// getOverdueBills godoc
// @Summary List overdue bills
// @Description Retrieves bills past their due date that still carry a balance
// @Tags bills
// @Produce json
// @Success 200 {object} dto.ListBillsResponse
// @Router /bills/overdue [get]
func (h *billHandler) getOverdueBills(c *gin.Context) {
	bills, err := h.billService.GetOverdueBills(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list overdue bills")
		return
	}
	c.JSON(http.StatusOK, dto.ListBillsResponse{Bills: dto.ToBillResponses(bills)})
}

// getBill godoc
// @Summary Get a bill
// @Description Retrieves a bill and its line items by ID
// @Tags bills
// @Produce json
// @Param billID path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 404 {object} map[string]string "Bill not found"
// @Router /bills/{billID} [get]
func (h *billHandler) getBill(c *gin.Context) {
	billID := c.Param("billID")

	bill, err := h.billService.GetBillByID(c.Request.Context(), billID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve bill")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// updateBillStatus godoc
// @Summary Update a bill's status
// @Description Moves a bill through its lifecycle, rejecting illegal transitions
// @Tags bills
// @Accept json
// @Produce json
// @Param billID path string true "Bill ID"
// @Param status body dto.UpdateBillStatusRequest true "Target status"
// @Success 200 {object} dto.BillResponse
// @Failure 404 {object} map[string]string "Bill not found"
// @Failure 409 {object} map[string]string "Illegal status transition"
// @Router /bills/{billID}/status [put]
func (h *billHandler) updateBillStatus(c *gin.Context) {
	billID := c.Param("billID")

	var req dto.UpdateBillStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, "updateBillStatus", err)
		return
	}

	bill, err := h.billService.UpdateBillStatus(c.Request.Context(), billID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update bill status")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// deleteBill godoc
// @Summary Delete a bill
// @Description Removes a bill that has no payment applications
// @Tags bills
// @Produce json
// @Param billID path string true "Bill ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Bill not found"
// @Failure 409 {object} map[string]string "Bill has payment applications"
// @Router /bills/{billID} [delete]
func (h *billHandler) deleteBill(c *gin.Context) {
	billID := c.Param("billID")

	if err := h.billService.DeleteBill(c.Request.Context(), billID); err != nil {
		respondServiceError(c, err, "Failed to delete bill")
		return
	}
	c.Status(http.StatusNoContent)
}

// getVendorBills godoc
// @Summary List a vendor's bills
// @Description Retrieves all bills of one vendor, newest first
// @Tags vendors
// @Produce json
// @Param vendorID path string true "Vendor ID"
// @Success 200 {object} dto.ListBillsResponse
// @Router /vendors/{vendorID}/bills [get]
func (h *billHandler) getVendorBills(c *gin.Context) {
	vendorID := c.Param("vendorID")

	bills, err := h.billService.GetVendorBills(c.Request.Context(), vendorID)
	if err != nil {
		respondServiceError(c, err, "Failed to list vendor bills")
		return
	}
	c.JSON(http.StatusOK, dto.ListBillsResponse{Bills: dto.ToBillResponses(bills)})
}

// registerBillRoutes registers bill and vendor specific routes
func registerBillRoutes(group *gin.RouterGroup, billService portssvc.BillSvcFacade) {
	h := newBillHandler(billService)

	bills := group.Group("/bills")
	{
		bills.POST("", h.createBill)
		bills.GET("", h.listBills)
		bills.GET("/overdue", h.getOverdueBills)
		bills.GET("/:billID", h.getBill)
		bills.PUT("/:billID/status", h.updateBillStatus)
		bills.DELETE("/:billID", h.deleteBill)
	}

	vendors := group.Group("/vendors")
	{
		vendors.GET("/:vendorID/bills", h.getVendorBills)
	}
}
