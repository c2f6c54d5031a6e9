package services

import (
	"context"

	"github.com/SscSPs/milk_supply_chain/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegistryReaderSvc defines read operations for account roles
type RegistryReaderSvc interface {
	// RoleOf returns the role of accountID, RoleNone for unknown accounts.
	RoleOf(ctx context.Context, accountID string) (domain.Role, error)

	// GetAccount returns role, cap and balance of accountID; unknown ids yield a zero-value account.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
}

// RegistryWriterSvc defines the admin-only role assignments
type RegistryWriterSvc interface {
	// SetProducer grants the Producer role. Idempotent.
	SetProducer(ctx context.Context, callerID, accountID string) error

	// SetReseller grants the Reseller role with the given cap.
	SetReseller(ctx context.Context, callerID, accountID string, maxQuantity decimal.Decimal) error
}

// RegistryBootstrapSvc installs the single admin at system creation
type RegistryBootstrapSvc interface {
	// Bootstrap creates the admin account if none exists and fails if a different admin is recorded.
	Bootstrap(ctx context.Context, adminID string) error
}

// RegistrySvcFacade combines all registry-related service interfaces
type RegistrySvcFacade interface {
	RegistryReaderSvc
	RegistryWriterSvc
	RegistryBootstrapSvc
}
