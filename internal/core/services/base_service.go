package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/milk_supply_chain/internal/apperrors"
	"github.com/SscSPs/milk_supply_chain/internal/core/domain"
	portsrepo "github.com/SscSPs/milk_supply_chain/internal/core/ports/repositories"
	"github.com/SscSPs/milk_supply_chain/internal/middleware"
	"github.com/SscSPs/milk_supply_chain/internal/platform/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Metrics *metrics.Metrics
	Clock   func() time.Time
}

// ServiceOption is a functional option shared by all ledger services
type ServiceOption func(*BaseService)

// WithMetrics records operation outcomes on m
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *BaseService) {
		s.Metrics = m
	}
}

// WithClock overrides the time source used for audit fields
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{}
	for _, option := range options {
		option(&base)
	}
	return base
}

func (s *BaseService) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs an expected, caller-correctable failure
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()), slog.String("kind", apperrors.Kind(err)))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// logFailure picks the level by error kind: domain rejections are warnings,
// everything else is an error.
func (s *BaseService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if apperrors.Kind(err) == "internal" {
		s.LogError(ctx, err, msg, keyvals...)
		return
	}
	s.LogWarn(ctx, err, msg, keyvals...)
}

// loadAccount returns the stored account or the implicit NONE account for ids never written.
func loadAccount(ctx context.Context, reader portsrepo.AccountReader, accountID string) (domain.Account, error) {
	acc, err := reader.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewAccount(accountID), nil
		}
		return domain.Account{}, err
	}
	return *acc, nil
}

// authorizeCaller loads the caller and checks it holds exactly the required role.
func authorizeCaller(ctx context.Context, reader portsrepo.AccountReader, callerID string, requiredRole domain.Role, denial string) (domain.Account, error) {
	if callerID == "" {
		return domain.Account{}, fmt.Errorf("%w: missing caller identity", apperrors.ErrUnauthorized)
	}
	caller, err := loadAccount(ctx, reader, callerID)
	if err != nil {
		return domain.Account{}, err
	}
	if !hasRequiredRole(caller.Role, requiredRole) {
		return caller, fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, denial)
	}
	return caller, nil
}

// hasRequiredRole checks the caller's role against the role an operation demands.
// Roles are not hierarchical: the admin cannot produce and producers cannot assign roles.
func hasRequiredRole(callerRole, requiredRole domain.Role) bool {
	switch requiredRole {
	case domain.RoleAdmin, domain.RoleProducer, domain.RoleReseller:
		return callerRole == requiredRole
	default:
		return false
	}
}

// touch stamps audit fields on an account that is about to be written.
func touch(acc *domain.Account, by string, now time.Time) {
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = now
		acc.CreatedBy = by
	}
	acc.LastUpdatedAt = now
	acc.LastUpdatedBy = by
}
