package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/milk_supply_chain/internal/apperrors"
	"github.com/SscSPs/milk_supply_chain/internal/core/domain"
	portsrepo "github.com/SscSPs/milk_supply_chain/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/milk_supply_chain/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// registryService implements the account registry
type registryService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewRegistryService creates a new registry service
func NewRegistryService(ledgerRepo portsrepo.LedgerRepositoryFacade, options ...ServiceOption) portssvc.RegistrySvcFacade {
	return &registryService{
		BaseService: newBaseService(options...),
		ledgerRepo:  ledgerRepo,
	}
}

// Ensure registryService implements the RegistrySvcFacade interface
var _ portssvc.RegistrySvcFacade = (*registryService)(nil)

// Bootstrap installs adminID as the single admin. Calling it again with the
// same id is a no-op; a different id is rejected.
func (s *registryService) Bootstrap(ctx context.Context, adminID string) error {
	if adminID == "" {
		return fmt.Errorf("%w: admin account id is required", apperrors.ErrInvalidArgument)
	}

	err := s.ledgerRepo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		existing, err := tx.FindAdmin(ctx)
		if err == nil {
			if existing.AccountID == adminID {
				return nil
			}
			return fmt.Errorf("%w: ledger is already administered by %s", apperrors.ErrInvalidArgument, existing.AccountID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		admin, err := loadAccount(ctx, tx, adminID)
		if err != nil {
			return err
		}
		if _, err := tx.NextSequence(ctx); err != nil {
			return err
		}
		admin.Role = domain.RoleAdmin
		admin.MaxQuantity = decimal.Zero
		touch(&admin, adminID, s.now())
		return tx.SaveAccount(ctx, admin)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to bootstrap admin", slog.String("admin_id", adminID))
		return err
	}

	s.LogInfo(ctx, "Ledger admin ready", slog.String("admin_id", adminID))
	return nil
}

// SetProducer grants the Producer role to accountID
func (s *registryService) SetProducer(ctx context.Context, callerID, accountID string) (err error) {
	defer func() { s.Metrics.ObserveOperation("set_producer", err) }()

	seq, err := s.assignRole(ctx, callerID, accountID, domain.RoleProducer, decimal.Zero)
	if err != nil {
		s.logFailure(ctx, err, "SetProducer rejected",
			slog.String("caller_id", callerID),
			slog.String("account_id", accountID))
		return err
	}

	s.observeRoleCommit(seq)
	s.LogInfo(ctx, "Producer role set", slog.String("account_id", accountID))
	return nil
}

// SetReseller grants the Reseller role to accountID with the given cap
func (s *registryService) SetReseller(ctx context.Context, callerID, accountID string, maxQuantity decimal.Decimal) (err error) {
	defer func() { s.Metrics.ObserveOperation("set_reseller", err) }()

	seq, err := s.assignRole(ctx, callerID, accountID, domain.RoleReseller, maxQuantity)
	if err != nil {
		s.logFailure(ctx, err, "SetReseller rejected",
			slog.String("caller_id", callerID),
			slog.String("account_id", accountID),
			slog.String("max_quantity", maxQuantity.String()))
		return err
	}

	s.observeRoleCommit(seq)
	s.LogInfo(ctx, "Reseller role set",
		slog.String("account_id", accountID),
		slog.String("max_quantity", maxQuantity.String()))
	return nil
}

// assignRole returns the sequence taken by the change, or -1 when the account
// already had the requested role and cap.
func (s *registryService) assignRole(ctx context.Context, callerID, accountID string, role domain.Role, maxQuantity decimal.Decimal) (int64, error) {
	committedSeq := int64(-1)
	err := s.ledgerRepo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if _, err := authorizeCaller(ctx, tx, callerID, domain.RoleAdmin, "caller is not the admin"); err != nil {
			return err
		}

		if accountID == "" {
			return fmt.Errorf("%w: account id is required", apperrors.ErrInvalidArgument)
		}
		if maxQuantity.IsNegative() {
			return fmt.Errorf("%w: maxQuantity must not be negative, got %s", apperrors.ErrInvalidArgument, maxQuantity)
		}

		target, err := loadAccount(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if target.Role == domain.RoleAdmin {
			return fmt.Errorf("%w: the admin role cannot be reassigned", apperrors.ErrInvalidArgument)
		}
		if target.Role == role && target.MaxQuantity.Equal(maxQuantity) {
			return nil
		}

		seq, err := tx.NextSequence(ctx)
		if err != nil {
			return err
		}
		target.Role = role
		target.MaxQuantity = maxQuantity
		touch(&target, callerID, s.now())
		if err := tx.SaveAccount(ctx, target); err != nil {
			return err
		}
		committedSeq = seq
		return nil
	})
	if err != nil {
		return -1, err
	}
	return committedSeq, nil
}

func (s *registryService) observeRoleCommit(seq int64) {
	if seq >= 0 {
		s.Metrics.ObserveCommit("set_role", decimal.Zero, seq)
	}
}

// RoleOf returns the role of accountID
func (s *registryService) RoleOf(ctx context.Context, accountID string) (domain.Role, error) {
	acc, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return domain.RoleNone, err
	}
	return acc.Role, nil
}

// GetAccount returns the account, or the implicit NONE account for unknown ids
func (s *registryService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", apperrors.ErrInvalidArgument)
	}
	acc, err := loadAccount(ctx, s.ledgerRepo, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account", slog.String("account_id", accountID))
		return nil, err
	}
	return &acc, nil
}
