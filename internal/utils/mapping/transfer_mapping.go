package mapping

import (
	"github.com/SscSPs/milk_supply_chain/internal/core/domain"
	"github.com/SscSPs/milk_supply_chain/internal/models"
)

// ToModelTransfer converts a domain Transfer to a model Transfer
func ToModelTransfer(d domain.Transfer) models.Transfer {
	return models.Transfer{
		Sequence:      d.Sequence,
		TransferID:    d.TransferID,
		BatchID:       d.BatchID,
		FromAccountID: d.FromID,
		ToAccountID:   d.ToID,
		Quantity:      d.Quantity,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainTransfer converts a model Transfer to a domain Transfer
func ToDomainTransfer(m models.Transfer) domain.Transfer {
	return domain.Transfer{
		Sequence:   m.Sequence,
		TransferID: m.TransferID,
		BatchID:    m.BatchID,
		FromID:     m.FromAccountID,
		ToID:       m.ToAccountID,
		Quantity:   m.Quantity,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

// ToDomainTransferSlice converts a slice of model Transfers to a slice of domain Transfers
func ToDomainTransferSlice(ms []models.Transfer) []domain.Transfer {
	ds := make([]domain.Transfer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransfer(m)
	}
	return ds
}
