package dto

import (
	"time"

	"github.com/SscSPs/milk_supply_chain/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProduceRequest defines the body of a produce call. The quantity is checked
// by the batch service after the caller's role.
type ProduceRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// ProduceResponse returns the id allocated to the new batch.
type ProduceResponse struct {
	BatchID int64 `json:"batchID"`
}

// BatchResponse defines the data returned for a batch.
type BatchResponse struct {
	BatchID    int64             `json:"batchID"`
	ProducerID string            `json:"producerID"`
	Quantity   decimal.Decimal   `json:"quantity"`
	Remaining  decimal.Decimal   `json:"remaining"`
	State      domain.BatchState `json:"state"`
	Sequence   int64             `json:"sequence"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// ListBatchesParams defines query parameters for listing batches.
type ListBatchesParams struct {
	ProducerID string  `form:"producer"`
	Limit      int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken  *string `form:"nextToken"`
}

// ListBatchesResponse wraps a page of batches.
type ListBatchesResponse struct {
	Batches   []BatchResponse `json:"batches"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToBatchResponse converts a domain.Batch to BatchResponse DTO
func ToBatchResponse(b *domain.Batch) BatchResponse {
	return BatchResponse{
		BatchID:    b.BatchID,
		ProducerID: b.ProducerID,
		Quantity:   b.Quantity,
		Remaining:  b.Remaining,
		State:      b.State(),
		Sequence:   b.Sequence,
		CreatedAt:  b.CreatedAt,
	}
}

// ToBatchResponses converts a slice of domain.Batch
func ToBatchResponses(batches []domain.Batch) []BatchResponse {
	res := make([]BatchResponse, len(batches))
	for i := range batches {
		res[i] = ToBatchResponse(&batches[i])
	}
	return res
}
