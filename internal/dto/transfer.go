package dto

import (
	"time"

	"github.com/SscSPs/milk_supply_chain/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferStockRequest defines the body of a transferStock call. The sender is the authenticated caller.
type TransferStockRequest struct {
	To       string          `json:"to" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"qty_positive"`
	BatchID  *int64          `json:"batchID" binding:"required,min=0"`
}

// TransferResponse defines the data returned for an audit record.
type TransferResponse struct {
	Sequence   int64           `json:"sequence"`
	TransferID string          `json:"transferID"`
	BatchID    int64           `json:"batchID"`
	From       string          `json:"from"`
	To         string          `json:"to"`
	Quantity   decimal.Decimal `json:"quantity"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ListTransfersParams defines query parameters for listing transfers.
type ListTransfersParams struct {
	AccountID string  `form:"account"`
	BatchID   *int64  `form:"batchID" binding:"omitempty,min=0"`
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransfersResponse wraps a page of transfer records.
type ListTransfersResponse struct {
	Transfers []TransferResponse `json:"transfers"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToTransferResponse converts a domain.Transfer to TransferResponse DTO
func ToTransferResponse(t domain.Transfer) TransferResponse {
	return TransferResponse{
		Sequence:   t.Sequence,
		TransferID: t.TransferID,
		BatchID:    t.BatchID,
		From:       t.FromID,
		To:         t.ToID,
		Quantity:   t.Quantity,
		CreatedAt:  t.CreatedAt,
	}
}
