package mapping

import (
	"github.com/SscSPs/milk_supply_chain/internal/core/domain"
	"github.com/SscSPs/milk_supply_chain/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Role:        string(d.Role),
		MaxQuantity: d.MaxQuantity,
		Balance:     d.Balance,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Role:        domain.Role(m.Role),
		MaxQuantity: m.MaxQuantity,
		Balance:     m.Balance,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
