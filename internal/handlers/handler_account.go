package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/ledgerkeep/ledgerkeep/internal/middleware"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	txnService     portssvc.TransactionSvcFacade
}

func newAccountHandler(accountService portssvc.AccountSvcFacade, txnService portssvc.TransactionSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: accountService,
		txnService:     txnService,
	}
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves chart-of-accounts entries ordered by account code
// @Tags accounts
// @Produce json
// @Param activeOnly query bool false "Only include active accounts"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params.ActiveOnly)
	if err != nil {
		respondServiceError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccountHierarchy godoc
// @Summary Get the account hierarchy
// @Description Retrieves active accounts arranged as a parent/child tree
// @Tags accounts
// @Produce json
// @Success 200 {array} dto.AccountNodeResponse
// @Failure 500 {object} map[string]string "Failed to build account hierarchy"
// @Router /accounts/hierarchy [get]
func (h *accountHandler) getAccountHierarchy(c *gin.Context) {
	tree, err := h.accountService.GetAccountHierarchy(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to build account hierarchy")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountNodeResponses(tree))
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves a single account by its ID
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	accountID := c.Param("accountID")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getAccountBalance godoc
// @Summary Get an account balance
// @Description Computes the signed balance of an account over posted transactions
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Param asOf query string false "Balance as of date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID}/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var params dto.ReportAsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date"})
		return
	}
	var asOf *time.Time
	if params.AsOf != nil {
		parsed, err := dto.ParseDate(*params.AsOf)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date"})
			return
		}
		asOf = &parsed
	}

	balance, err := h.txnService.GetAccountBalance(c.Request.Context(), accountID, asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to compute account balance")
		return
	}

	logger.Debug("Account balance computed", slog.String("account_id", accountID))
	c.JSON(http.StatusOK, dto.AccountBalanceResponse{
		AccountID: accountID,
		AsOf:      params.AsOf,
		Balance:   balance,
	})
}

// registerAccountRoutes registers account specific routes
func registerAccountRoutes(group *gin.RouterGroup, accountService portssvc.AccountSvcFacade, txnService portssvc.TransactionSvcFacade) {
	h := newAccountHandler(accountService, txnService)

	accounts := group.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/hierarchy", h.getAccountHierarchy)
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/balance", h.getAccountBalance)
	}
}
