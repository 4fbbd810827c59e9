package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	portsrepo "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/repositories"
	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService manages a church's chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithChurchAuthorizer sets the church authorizer for the account service.
func WithChurchAuthorizer(authorizer portssvc.ChurchAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.ChurchAuthorizer = authorizer
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account in the church's chart.
func (s *accountService) CreateAccount(ctx context.Context, churchID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleTreasurer); err != nil {
		return nil, err
	}

	if !req.AccountType.IsClassified() {
		return nil, fmt.Errorf("%w: unknown account type %s", apperrors.ErrValidation, req.AccountType)
	}

	existing, err := s.accountRepo.FindAccountByCode(ctx, req.Code, churchID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing account code", slog.String("church_id", churchID), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, req.Code)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		ChurchID:    churchID,
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		Description: req.Description,
		IsActive:    true,
		Balance:     decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("church_id", churchID))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("church_id", churchID))
	return &account, nil
}

// GetAccountByID retrieves an account, confirming it belongs to the church.
func (s *accountService) GetAccountByID(ctx context.Context, churchID string, accountID string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.ChurchID != churchID {
		return nil, apperrors.ErrNotFound // Obscure existence
	}
	return account, nil
}

// GetAccountByCode retrieves an account by its chart code.
func (s *accountService) GetAccountByCode(ctx context.Context, churchID string, code string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, code, churchID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code", slog.String("code", code), slog.String("church_id", churchID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts, all of which must belong to the church.
func (s *accountService) GetAccountsByIDs(ctx context.Context, churchID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs", slog.String("church_id", churchID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves a paginated list of accounts for a church.
func (s *accountService) ListAccounts(ctx context.Context, churchID string, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, churchID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("church_id", churchID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount updates name, description or active flag of an account.
func (s *accountService) UpdateAccount(ctx context.Context, churchID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleTreasurer); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.ChurchID != churchID {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// DeactivateAccount marks an account inactive; existing lines are untouched.
func (s *accountService) DeactivateAccount(ctx context.Context, churchID string, accountID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleTreasurer); err != nil {
		return err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.ChurchID != churchID {
		return apperrors.ErrNotFound
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID), slog.String("church_id", churchID))
	return nil
}
