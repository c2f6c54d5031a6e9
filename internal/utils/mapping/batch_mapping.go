package mapping

import (
	"github.com/SscSPs/milk_supply_chain/internal/core/domain"
	"github.com/SscSPs/milk_supply_chain/internal/models"
)

// ToModelBatch converts a domain Batch to a model Batch
func ToModelBatch(d domain.Batch) models.Batch {
	return models.Batch{
		BatchID:     d.BatchID,
		ProducerID:  d.ProducerID,
		Quantity:    d.Quantity,
		Remaining:   d.Remaining,
		Sequence:    d.Sequence,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBatch converts a model Batch to a domain Batch
func ToDomainBatch(m models.Batch) domain.Batch {
	return domain.Batch{
		BatchID:     m.BatchID,
		ProducerID:  m.ProducerID,
		Quantity:    m.Quantity,
		Remaining:   m.Remaining,
		Sequence:    m.Sequence,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBatchSlice converts a slice of model Batches to a slice of domain Batches
func ToDomainBatchSlice(ms []models.Batch) []domain.Batch {
	ds := make([]domain.Batch, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBatch(m)
	}
	return ds
}

// ToModelHolding converts a domain Holding to a model Holding
func ToModelHolding(d domain.Holding) models.Holding {
	return models.Holding{BatchID: d.BatchID, HolderID: d.HolderID, Quantity: d.Quantity}
}

// ToDomainHolding converts a model Holding to a domain Holding
func ToDomainHolding(m models.Holding) domain.Holding {
	return domain.Holding{BatchID: m.BatchID, HolderID: m.HolderID, Quantity: m.Quantity}
}

// ToDomainHoldingSlice converts a slice of model Holdings to a slice of domain Holdings
func ToDomainHoldingSlice(ms []models.Holding) []domain.Holding {
	ds := make([]domain.Holding, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainHolding(m)
	}
	return ds
}
