package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/milk_supply_chain/internal/core/ports/services"
	"github.com/SscSPs/milk_supply_chain/internal/dto"
	"github.com/SscSPs/milk_supply_chain/internal/middleware"
	"github.com/gin-gonic/gin"
)

// batchHandler handles HTTP requests for the batch ledger.
type batchHandler struct {
	batchService portssvc.BatchSvcFacade
}

// newBatchHandler creates a new batchHandler.
func newBatchHandler(bs portssvc.BatchSvcFacade) *batchHandler {
	return &batchHandler{batchService: bs}
}

// RegisterBatchRoutes registers routes related to batches.
func RegisterBatchRoutes(rg *gin.RouterGroup, batchService portssvc.BatchSvcFacade) {
	registerValidators()
	h := newBatchHandler(batchService)

	batches := rg.Group("/batches")
	{
		batches.POST("", h.produce)
		batches.GET("", h.listBatches)
		batches.GET("/:batchID", h.getBatch)
	}
}

// produce godoc
// @Summary Produce a new batch
// @Description Producer only. Credits the caller with the full quantity and returns the new batch id.
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   request body dto.ProduceRequest true "Quantity produced"
// @Success 201 {object} dto.ProduceResponse
// @Failure 400 {object} map[string]string "Quantity must be positive"
// @Failure 401 {object} map[string]string "Unauthenticated"
// @Failure 403 {object} map[string]string "Caller is not a producer"
// @Failure 500 {object} map[string]string "Failed to produce batch"
// @Security BearerAuth
// @Router /batches [post]
func (h *batchHandler) produce(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	callerID, ok := middleware.GetCallerIDFromContext(c)
	if !ok {
		logger.Error("Caller ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ProduceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Produce", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error(), "kind": "invalid_argument"})
		return
	}

	batchID, err := h.batchService.Produce(c.Request.Context(), callerID, req.Quantity)
	if err != nil {
		respondError(c, logger, err, "Failed to produce batch")
		return
	}

	logger.Info("Batch produced", slog.Int64("batch_id", batchID))
	c.JSON(http.StatusCreated, dto.ProduceResponse{BatchID: batchID})
}

// getBatch godoc
// @Summary Get a batch
// @Tags batches
// @Produce  json
// @Param   batchID path int true "Batch ID"
// @Success 200 {object} dto.BatchResponse
// @Failure 400 {object} map[string]string "Invalid batch id"
// @Failure 401 {object} map[string]string "Unauthenticated"
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 500 {object} map[string]string "Failed to retrieve batch"
// @Security BearerAuth
// @Router /batches/{batchID} [get]
func (h *batchHandler) getBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID, err := strconv.ParseInt(c.Param("batchID"), 10, 64)
	if err != nil || batchID < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "batchID must be a non-negative integer", "kind": "invalid_argument"})
		return
	}

	batch, err := h.batchService.GetBatch(c.Request.Context(), batchID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve batch")
		return
	}
	c.JSON(http.StatusOK, dto.ToBatchResponse(batch))
}

// listBatches godoc
// @Summary List batches
// @Description Batches in id order, optionally for one producer, with token pagination.
// @Tags batches
// @Produce  json
// @Param   producer query string false "Producer account ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListBatchesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthenticated"
// @Failure 500 {object} map[string]string "Failed to list batches"
// @Security BearerAuth
// @Router /batches [get]
func (h *batchHandler) listBatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListBatchesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListBatches", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error(), "kind": "invalid_argument"})
		return
	}

	resp, err := h.batchService.ListBatches(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list batches")
		return
	}
	c.JSON(http.StatusOK, resp)
}
