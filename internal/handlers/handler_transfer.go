package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/milk_supply_chain/internal/core/ports/services"
	"github.com/SscSPs/milk_supply_chain/internal/dto"
	"github.com/SscSPs/milk_supply_chain/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transferHandler handles HTTP requests for stock movements and the audit log.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

// newTransferHandler creates a new transferHandler.
func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: ts}
}

// RegisterTransferRoutes registers routes related to transfers.
func RegisterTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	registerValidators()
	h := newTransferHandler(transferService)

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.transferStock)
		transfers.GET("", h.listTransfers)
	}
}

// transferStock godoc
// @Summary Transfer stock of a batch
// @Description Moves quantity of a batch from the caller to another account. The caller must hold enough of that batch and the receiver must stay within its cap.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   request body dto.TransferStockRequest true "Transfer details"
// @Success 204 "Transferred"
// @Failure 400 {object} map[string]string "Invalid quantity, receiver or batch"
// @Failure 401 {object} map[string]string "Unauthenticated"
// @Failure 403 {object} map[string]string "Caller does not hold the batch"
// @Failure 409 {object} map[string]string "Insufficient stock or receiver quota exceeded"
// @Failure 500 {object} map[string]string "Failed to transfer stock"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) transferStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	callerID, ok := middleware.GetCallerIDFromContext(c)
	if !ok {
		logger.Error("Caller ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.TransferStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransferStock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error(), "kind": "invalid_argument"})
		return
	}

	logger = logger.With(slog.String("to", req.To), slog.Int64("batch_id", *req.BatchID))
	if err := h.transferService.TransferStock(c.Request.Context(), callerID, req.To, req.Quantity, *req.BatchID); err != nil {
		respondError(c, logger, err, "Failed to transfer stock")
		return
	}

	logger.Info("Stock transferred", slog.String("quantity", req.Quantity.String()))
	c.Status(http.StatusNoContent)
}

// listTransfers godoc
// @Summary List transfer records
// @Description Audit log in commit order, optionally filtered by account (either side) or batch.
// @Tags transfers
// @Produce  json
// @Param   account query string false "Account ID on either side"
// @Param   batchID query int false "Batch ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransfersResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthenticated"
// @Failure 500 {object} map[string]string "Failed to list transfers"
// @Security BearerAuth
// @Router /transfers [get]
func (h *transferHandler) listTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransfersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransfers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error(), "kind": "invalid_argument"})
		return
	}

	resp, err := h.transferService.ListTransfers(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transfers")
		return
	}
	c.JSON(http.StatusOK, resp)
}
