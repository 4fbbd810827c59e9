package services

import (
	"context"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction with its lines.
	GetTransactionByID(ctx context.Context, churchID string, transactionID string, requestingUserID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of transactions in a church.
	ListTransactions(ctx context.Context, churchID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListLinesByAccount retrieves the lines touching a specific account.
	ListLinesByAccount(ctx context.Context, churchID string, accountID string, userID string, params dto.ListAccountLinesParams) (*dto.ListAccountLinesResponse, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction persists a new transaction with its lines, validating
	// the double-entry balance rule before any write.
	CreateTransaction(ctx context.Context, churchID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// UpdateTransaction updates header fields of a pending transaction.
	UpdateTransaction(ctx context.Context, churchID string, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error)

	// PostTransaction moves a pending transaction to posted, applying its
	// lines to account balances.
	PostTransaction(ctx context.Context, churchID string, transactionID string, requestingUserID string) (*domain.Transaction, error)

	// VoidTransaction voids a transaction, reversing its balance effects if it
	// was posted or reconciled.
	VoidTransaction(ctx context.Context, churchID string, transactionID string, requestingUserID string) (*domain.Transaction, error)

	// ReconcileTransaction marks a posted transaction as reconciled.
	ReconcileTransaction(ctx context.Context, churchID string, transactionID string, requestingUserID string) (*domain.Transaction, error)
}

// TransactionValidatorSvc defines validation operations usable without persisting
type TransactionValidatorSvc interface {
	// CheckBalance validates a set of candidate lines against the double-entry
	// balance rule without writing anything.
	CheckBalance(ctx context.Context, lines []dto.CreateTransactionLineRequest) (*domain.BalanceCheck, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
// This is a facade for clients that need access to all operations
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	TransactionValidatorSvc
}
