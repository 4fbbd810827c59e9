package repositories

import (
	"context"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByChurch retrieves a paginated list of transactions for a church using token-based pagination.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactionsByChurch(ctx context.Context, churchID string, limit int, nextToken *string, includeVoided bool) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a transaction and its lines, updating account balances atomically.
	// balanceChanges is keyed by account ID and is empty for non-posting statuses.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// UpdateTransactionStatus moves a transaction to a new status and applies
	// the accompanying balance changes in the same database transaction.
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, balanceChanges map[string]decimal.Decimal, updatedByUserID string, updatedAt time.Time) error

	// UpdateTransaction updates header fields of a pending transaction (date, description).
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
}

// LineReader defines read operations for transaction line data
type LineReader interface {
	// FindLinesByTransactionID retrieves all lines belonging to a single transaction.
	FindLinesByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionLine, error)

	// FindLinesByTransactionIDs retrieves lines for multiple transactions, grouped by transaction ID.
	FindLinesByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string][]domain.TransactionLine, error)

	// ListLinesByAccountID retrieves a paginated list of lines for a specific account using token-based pagination.
	ListLinesByAccountID(ctx context.Context, churchID, accountID string, limit int, nextToken *string) ([]domain.TransactionLine, *string, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
// This is a facade for clients that need access to all operations
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	LineReader
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
