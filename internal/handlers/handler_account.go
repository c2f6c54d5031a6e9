package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/milk_supply_chain/internal/core/ports/services"
	"github.com/SscSPs/milk_supply_chain/internal/dto"
	"github.com/SscSPs/milk_supply_chain/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests for the account registry and balances.
type accountHandler struct {
	registryService portssvc.RegistrySvcFacade
	balanceService  portssvc.BalanceSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(rs portssvc.RegistrySvcFacade, bs portssvc.BalanceSvcFacade) *accountHandler {
	return &accountHandler{
		registryService: rs,
		balanceService:  bs,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, registryService portssvc.RegistrySvcFacade, balanceService portssvc.BalanceSvcFacade) {
	registerValidators()
	h := newAccountHandler(registryService, balanceService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/role", h.roleOf)
		accounts.GET("/:accountID/balance", h.stockBalance)
		accounts.GET("/:accountID/holdings", h.listHoldings)
		accounts.PUT("/:accountID/producer", h.setProducer)
		accounts.PUT("/:accountID/reseller", h.setReseller)
	}
}

// setProducer godoc
// @Summary Grant the producer role
// @Description Admin only. Idempotent; switching a reseller to producer clears its cap.
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 204 "Role set"
// @Failure 400 {object} map[string]string "Invalid account or admin target"
// @Failure 401 {object} map[string]string "Unauthenticated"
// @Failure 403 {object} map[string]string "Caller is not the admin"
// @Failure 500 {object} map[string]string "Failed to set role"
// @Security BearerAuth
// @Router /accounts/{accountID}/producer [put]
func (h *accountHandler) setProducer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	callerID, ok := middleware.GetCallerIDFromContext(c)
	if !ok {
		logger.Error("Caller ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	accountID := c.Param("accountID")
	logger = logger.With(slog.String("target_account_id", accountID))

	if err := h.registryService.SetProducer(c.Request.Context(), callerID, accountID); err != nil {
		respondError(c, logger, err, "Failed to set producer role")
		return
	}

	logger.Info("Producer role granted")
	c.Status(http.StatusNoContent)
}

// setReseller godoc
// @Summary Grant the reseller role with a quantity cap
// @Description Admin only. The cap may be lowered below the current balance; it only blocks further receipts.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   request body dto.SetResellerRequest true "Reseller cap"
// @Success 204 "Role set"
// @Failure 400 {object} map[string]string "Invalid cap or admin target"
// @Failure 401 {object} map[string]string "Unauthenticated"
// @Failure 403 {object} map[string]string "Caller is not the admin"
// @Failure 500 {object} map[string]string "Failed to set role"
// @Security BearerAuth
// @Router /accounts/{accountID}/reseller [put]
func (h *accountHandler) setReseller(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	callerID, ok := middleware.GetCallerIDFromContext(c)
	if !ok {
		logger.Error("Caller ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	accountID := c.Param("accountID")
	logger = logger.With(slog.String("target_account_id", accountID))

	var req dto.SetResellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetReseller", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error(), "kind": "invalid_argument"})
		return
	}

	if err := h.registryService.SetReseller(c.Request.Context(), callerID, accountID, *req.MaxQuantity); err != nil {
		respondError(c, logger, err, "Failed to set reseller role")
		return
	}

	logger.Info("Reseller role granted", slog.String("max_quantity", req.MaxQuantity.String()))
	c.Status(http.StatusNoContent)
}

// getAccount godoc
// @Summary Get an account
// @Description Returns role, cap and balance. Accounts never written read back as role NONE with zero balance.
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthenticated"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	account, err := h.registryService.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// roleOf godoc
// @Summary Get the role of an account
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.RoleResponse
// @Failure 401 {object} map[string]string "Unauthenticated"
// @Failure 500 {object} map[string]string "Failed to retrieve role"
// @Security BearerAuth
// @Router /accounts/{accountID}/role [get]
func (h *accountHandler) roleOf(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	role, err := h.registryService.RoleOf(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve role")
		return
	}
	c.JSON(http.StatusOK, dto.RoleResponse{AccountID: accountID, Role: role})
}

// stockBalance godoc
// @Summary Get the stock balance of an account
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} map[string]string "Unauthenticated"
// @Failure 500 {object} map[string]string "Failed to retrieve balance"
// @Security BearerAuth
// @Router /accounts/{accountID}/balance [get]
func (h *accountHandler) stockBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	balance, err := h.balanceService.StockBalance(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve balance")
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{AccountID: accountID, Balance: balance})
}

// listHoldings godoc
// @Summary List per-batch holdings of an account
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.ListHoldingsResponse
// @Failure 401 {object} map[string]string "Unauthenticated"
// @Failure 500 {object} map[string]string "Failed to list holdings"
// @Security BearerAuth
// @Router /accounts/{accountID}/holdings [get]
func (h *accountHandler) listHoldings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	holdings, err := h.balanceService.ListHoldings(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to list holdings")
		return
	}
	c.JSON(http.StatusOK, dto.ToListHoldingsResponse(accountID, holdings))
}
