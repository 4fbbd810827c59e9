package services

import (
	"context"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, churchID string, accountID string, userID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its chart code and church ID.
	GetAccountByCode(ctx context.Context, churchID string, code string, userID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts by their IDs.
	GetAccountsByIDs(ctx context.Context, churchID string, accountIDs []string, userID string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a given church.
	ListAccounts(ctx context.Context, churchID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, churchID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, churchID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, churchID string, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
