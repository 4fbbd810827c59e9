package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	portsrepo "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/repositories"
	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
	"github.com/ecclesiahq/ecclesia-backend/internal/utils/ledger"
)

var (
	ErrTransactionUnbalanced  = errors.New("transaction lines do not balance: debits must equal credits")
	ErrTransactionMinLines    = errors.New("transaction must have at least two lines")
	ErrTransactionMinAccounts = errors.New("transaction must affect at least two different accounts")
	ErrAccountNotFound        = errors.New("account not found")
	ErrNotPending             = errors.New("only pending transactions can be edited")
	ErrInvalidTransition      = errors.New("status transition not allowed")
	ErrDescriptionMissing     = errors.New("transaction description is required")
)

// transactionService provides double-entry transaction operations.
type transactionService struct {
	BaseService
	accountSvc      portssvc.AccountSvcFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, accountSvc portssvc.AccountSvcFacade, authorizer portssvc.ChurchAuthorizerSvc) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		accountSvc:      accountSvc,
		transactionRepo: transactionRepo,
	}
	svc.ChurchAuthorizer = authorizer
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// signedAmount folds a line into an account balance change under the
// double-entry sign convention.
func signedAmount(accountType domain.AccountType, debit, credit decimal.Decimal) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// balanceChangesForLines aggregates per-account signed deltas for a set of lines.
func balanceChangesForLines(lines []domain.TransactionLine, accountTypes map[string]domain.AccountType) map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal)
	for _, line := range lines {
		delta := signedAmount(accountTypes[line.AccountID], line.Debit, line.Credit)
		changes[line.AccountID] = changes[line.AccountID].Add(delta)
	}
	return changes
}

func negate(changes map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(changes))
	for id, d := range changes {
		out[id] = d.Neg()
	}
	return out
}

// CreateTransaction validates and persists a new transaction. Status defaults
// to PENDING; POSTED applies account balance changes atomically with the save.
func (s *transactionService) CreateTransaction(ctx context.Context, churchID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, churchID, domain.RoleTreasurer); err != nil {
		s.LogDebug(ctx, "Authorization failed for CreateTransaction", slog.String("user_id", creatorUserID), slog.String("church_id", churchID))
		return nil, err
	}

	if len(req.Lines) < 2 {
		return nil, ErrTransactionMinLines
	}
	if req.Description == "" {
		return nil, ErrDescriptionMissing
	}

	status := req.Status
	if status == "" {
		status = domain.Pending
	}
	if status != domain.Pending && status != domain.Posted {
		return nil, fmt.Errorf("%w: new transactions start as PENDING or POSTED", apperrors.ErrValidation)
	}

	accountSet := make(map[string]bool)
	for _, l := range req.Lines {
		accountSet[l.AccountID] = true
	}
	if len(accountSet) < 2 {
		return nil, ErrTransactionMinAccounts
	}

	now := time.Now().UTC()
	transactionID := uuid.NewString()

	domainLines := make([]domain.TransactionLine, len(req.Lines))
	accountIDs := make([]string, 0, len(accountSet))
	for id := range accountSet {
		accountIDs = append(accountIDs, id)
	}
	for i, lineReq := range req.Lines {
		domainLines[i] = domain.TransactionLine{
			LineID:        uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     lineReq.AccountID,
			Debit:         lineReq.Debit,
			Credit:        lineReq.Credit,
			Memo:          lineReq.Memo,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		if err := domainLines[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	if check := ledger.ValidateLines(domainLines); !check.Balanced {
		return nil, fmt.Errorf("%w: debits %s, credits %s", ErrTransactionUnbalanced,
			check.TotalDebits.String(), check.TotalCredits.String())
	}

	accountTypes, err := s.fetchAndValidateAccounts(ctx, churchID, accountIDs, creatorUserID)
	if err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID: transactionID,
		ChurchID:      churchID,
		Date:          req.Date,
		Description:   req.Description,
		Status:        status,
		Lines:         domainLines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	var balanceChanges map[string]decimal.Decimal
	if status == domain.Posted {
		balanceChanges = balanceChangesForLines(domainLines, accountTypes)
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("church_id", churchID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created", slog.String("transaction_id", transactionID), slog.String("church_id", churchID), slog.String("status", string(status)))
	return &txn, nil
}

// fetchAndValidateAccounts confirms every account exists, belongs to the
// church and is active, returning the type map used for balance changes.
func (s *transactionService) fetchAndValidateAccounts(ctx context.Context, churchID string, accountIDs []string, userID string) (map[string]domain.AccountType, error) {
	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, churchID, accountIDs, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for transaction", slog.String("church_id", churchID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	accountTypes := make(map[string]domain.AccountType, len(accountIDs))
	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if acc.ChurchID != churchID {
			return nil, fmt.Errorf("%w: account %s does not belong to church %s", ErrAccountNotFound, id, churchID)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		accountTypes[id] = acc.AccountType
	}
	return accountTypes, nil
}

// GetTransactionByID retrieves a transaction with its lines.
func (s *transactionService) GetTransactionByID(ctx context.Context, churchID string, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, churchID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if txn.ChurchID != churchID {
		return nil, apperrors.ErrNotFound // Obscure existence
	}

	lines, err := s.transactionRepo.FindLinesByTransactionID(ctx, transactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to retrieve lines for transaction %s: %w", transactionID, apperrors.ErrInternal)
	}
	txn.Lines = lines

	return txn, nil
}

// ListTransactions retrieves a paginated list of transactions with their lines.
func (s *transactionService) ListTransactions(ctx context.Context, churchID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	txns, nextToken, err := s.transactionRepo.ListTransactionsByChurch(ctx, churchID, params.Limit, params.NextToken, params.IncludeVoided)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("church_id", churchID))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	txnIDs := make([]string, len(txns))
	for i, t := range txns {
		txnIDs[i] = t.TransactionID
	}
	linesByTxn, err := s.transactionRepo.FindLinesByTransactionIDs(ctx, txnIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for transaction list", slog.String("church_id", churchID))
		return nil, fmt.Errorf("failed to retrieve transaction lines: %w", err)
	}

	responses := make([]dto.TransactionResponse, len(txns))
	for i := range txns {
		txns[i].Lines = linesByTxn[txns[i].TransactionID]
		responses[i] = dto.ToTransactionResponse(&txns[i])
	}

	return &dto.ListTransactionsResponse{
		Transactions: responses,
		NextToken:    nextToken,
	}, nil
}

// ListLinesByAccount retrieves the lines touching one account.
func (s *transactionService) ListLinesByAccount(ctx context.Context, churchID string, accountID string, userID string, params dto.ListAccountLinesParams) (*dto.ListAccountLinesResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	// Confirms the account belongs to this church.
	if _, err := s.accountSvc.GetAccountByID(ctx, churchID, accountID, userID); err != nil {
		return nil, err
	}

	lines, nextToken, err := s.transactionRepo.ListLinesByAccountID(ctx, churchID, accountID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list lines for account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve account lines: %w", err)
	}

	return &dto.ListAccountLinesResponse{
		Lines:     dto.ToTransactionLineResponses(lines),
		NextToken: nextToken,
	}, nil
}

// UpdateTransaction edits header fields of a pending transaction. Lines are
// immutable; corrections go through void and recreate.
func (s *transactionService) UpdateTransaction(ctx context.Context, churchID string, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, churchID, domain.RoleTreasurer); err != nil {
		return nil, err
	}

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.ChurchID != churchID {
		return nil, apperrors.ErrNotFound
	}
	if txn.Status != domain.Pending {
		return nil, fmt.Errorf("%w: status is %s", ErrNotPending, txn.Status)
	}

	if req.Date != nil {
		txn.Date = *req.Date
	}
	if req.Description != nil {
		if *req.Description == "" {
			return nil, ErrDescriptionMissing
		}
		txn.Description = *req.Description
	}
	txn.LastUpdatedAt = time.Now().UTC()
	txn.LastUpdatedBy = requestingUserID

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

// PostTransaction moves a pending transaction to POSTED, re-validating the
// balance rule and applying account balance changes atomically.
func (s *transactionService) PostTransaction(ctx context.Context, churchID string, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	return s.transition(ctx, churchID, transactionID, requestingUserID, domain.Posted)
}

// VoidTransaction voids a transaction, reversing balance effects when it was
// posted or reconciled.
func (s *transactionService) VoidTransaction(ctx context.Context, churchID string, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	return s.transition(ctx, churchID, transactionID, requestingUserID, domain.Voided)
}

// ReconcileTransaction marks a posted transaction as reconciled.
func (s *transactionService) ReconcileTransaction(ctx context.Context, churchID string, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	return s.transition(ctx, churchID, transactionID, requestingUserID, domain.Reconciled)
}

func (s *transactionService) transition(ctx context.Context, churchID, transactionID, requestingUserID string, next domain.TransactionStatus) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, churchID, domain.RoleTreasurer); err != nil {
		return nil, err
	}

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.ChurchID != churchID {
		return nil, apperrors.ErrNotFound
	}

	if !txn.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, txn.Status, next)
	}

	lines, err := s.transactionRepo.FindLinesByTransactionID(ctx, transactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for status transition", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to retrieve lines: %w", err)
	}

	var balanceChanges map[string]decimal.Decimal
	switch {
	case next == domain.Posted:
		// Posting applies the line effects; re-check the balance rule first.
		if check := ledger.ValidateLines(lines); !check.Balanced {
			return nil, fmt.Errorf("%w: debits %s, credits %s", ErrTransactionUnbalanced,
				check.TotalDebits.String(), check.TotalCredits.String())
		}
		accountTypes, err := s.accountTypesForLines(ctx, churchID, lines, requestingUserID)
		if err != nil {
			return nil, err
		}
		balanceChanges = balanceChangesForLines(lines, accountTypes)

	case next == domain.Voided && txn.Status != domain.Pending:
		// Voiding a posted or reconciled transaction reverses its effects.
		accountTypes, err := s.accountTypesForLines(ctx, churchID, lines, requestingUserID)
		if err != nil {
			return nil, err
		}
		balanceChanges = negate(balanceChangesForLines(lines, accountTypes))
	}

	now := time.Now().UTC()
	if err := s.transactionRepo.UpdateTransactionStatus(ctx, transactionID, next, balanceChanges, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to update transaction status", slog.String("transaction_id", transactionID), slog.String("next_status", string(next)))
		return nil, fmt.Errorf("failed to update transaction status: %w", err)
	}

	s.LogInfo(ctx, "Transaction status updated", slog.String("transaction_id", transactionID), slog.String("from", string(txn.Status)), slog.String("to", string(next)))
	txn.Status = next
	txn.Lines = lines
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = requestingUserID
	return txn, nil
}

func (s *transactionService) accountTypesForLines(ctx context.Context, churchID string, lines []domain.TransactionLine, userID string) (map[string]domain.AccountType, error) {
	idSet := make(map[string]bool)
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if !idSet[l.AccountID] {
			idSet[l.AccountID] = true
			ids = append(ids, l.AccountID)
		}
	}

	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, churchID, ids, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	accountTypes := make(map[string]domain.AccountType, len(ids))
	for _, id := range ids {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		accountTypes[id] = acc.AccountType
	}
	return accountTypes, nil
}

// CheckBalance runs the balance rule over candidate lines without persisting.
func (s *transactionService) CheckBalance(ctx context.Context, lines []dto.CreateTransactionLineRequest) (*domain.BalanceCheck, error) {
	domainLines := make([]domain.TransactionLine, len(lines))
	for i, l := range lines {
		domainLines[i] = domain.TransactionLine{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
		}
		if err := domainLines[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}
	check := ledger.ValidateLines(domainLines)
	return &check, nil
}
