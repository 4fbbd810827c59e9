package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	portsrepo "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/repositories"
	"github.com/ecclesiahq/ecclesia-backend/internal/models"
	"github.com/ecclesiahq/ecclesia-backend/internal/utils/mapping"
	"github.com/ecclesiahq/ecclesia-backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for transaction and line data.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, church_id, date, description, status, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, transaction_id, account_id, debit, credit, memo, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.ChurchID,
		&m.Date,
		&m.Description,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row pgx.Row) (models.TransactionLine, error) {
	var m models.TransactionLine
	err := row.Scan(
		&m.LineID,
		&m.TransactionID,
		&m.AccountID,
		&m.Debit,
		&m.Credit,
		&m.Memo,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTransaction saves a transaction with its lines and applies account
// balance changes within a single database transaction. balanceChanges is
// empty when the transaction is saved as PENDING.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once committed

	modelTxn := mapping.ToModelTransaction(txn)
	txnQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, txnQuery,
		modelTxn.TransactionID,
		modelTxn.ChurchID,
		modelTxn.Date,
		modelTxn.Description,
		modelTxn.Status,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, err)
	}

	if err := r.applyBalanceChanges(ctx, tx, balanceChanges, txn.CreatedBy, txn.CreatedAt); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO transaction_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, line := range txn.Lines {
		modelLine := mapping.ToModelTransactionLine(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.TransactionID,
			modelLine.AccountID,
			modelLine.Debit,
			modelLine.Credit,
			modelLine.Memo,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for transaction "+modelTxn.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// applyBalanceChanges locks the affected accounts and applies the deltas.
func (r *PgxTransactionRepository) applyBalanceChanges(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	return nil
}

// FindTransactionByID retrieves a transaction by its ID, without lines.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1;
	`
	modelTxn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	return &domainTxn, nil
}

// ListTransactionsByChurch retrieves a paginated list of transactions for a
// church using token-based pagination, newest first.
func (r *PgxTransactionRepository) ListTransactionsByChurch(ctx context.Context, churchID string, limit int, nextToken *string, includeVoided bool) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether there is a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
	`
	filterClause := `WHERE church_id = $1`
	if !includeVoided {
		filterClause += ` AND status != 'VOIDED'`
	}

	// Ordering must be stable for keyset pagination to hold.
	orderByClause := `ORDER BY date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{churchID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for church "+churchID, err)
	}
	defer rows.Close()

	modelTxns := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for church "+churchID, scanErr)
		}
		modelTxns = append(modelTxns, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for church "+churchID, err)
	}

	var nextTokenVal *string
	results := modelTxns
	if len(modelTxns) > limit {
		last := modelTxns[limit-1] // Last item actually included in this page
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
		results = modelTxns[:limit]
	}

	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}

// UpdateTransactionStatus moves a transaction to a new status and applies the
// accompanying balance changes atomically.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, balanceChanges map[string]decimal.Decimal, updatedByUserID string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, transactionID, status, updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction status for "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + transactionID + " not found for status update")
	}

	if err := r.applyBalanceChanges(ctx, tx, balanceChanges, updatedByUserID, updatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction updates header fields of a transaction (date, description).
// Status changes go through UpdateTransactionStatus.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	modelTxn := mapping.ToModelTransaction(txn)

	query := `
		UPDATE transactions
		SET date = $2,
		    description = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE transaction_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.Date,
		modelTxn.Description,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)

	if err != nil {
		return apperrors.NewAppError(500, "failed to execute update transaction "+modelTxn.TransactionID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + modelTxn.TransactionID + " not found for update")
	}

	return nil
}

// FindLinesByTransactionID retrieves all lines associated with a transaction.
func (r *PgxTransactionRepository) FindLinesByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM transaction_lines
		WHERE transaction_id = $1
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for transaction "+transactionID, err)
	}
	defer rows.Close()

	lines := []models.TransactionLine{}
	for rows.Next() {
		m, scanErr := scanLine(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for transaction "+transactionID, scanErr)
		}
		lines = append(lines, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for transaction "+transactionID, err)
	}

	return mapping.ToDomainTransactionLineSlice(lines), nil
}

// FindLinesByTransactionIDs retrieves all lines for a given list of
// transaction IDs, grouped by transaction ID.
func (r *PgxTransactionRepository) FindLinesByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string][]domain.TransactionLine, error) {
	if len(transactionIDs) == 0 {
		return map[string][]domain.TransactionLine{}, nil
	}

	query := `
		SELECT ` + lineColumns + `
		FROM transaction_lines
		WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, created_at, line_id;
	`

	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for transaction IDs", err)
	}
	defer rows.Close()

	linesMap := make(map[string][]domain.TransactionLine)
	for rows.Next() {
		m, scanErr := scanLine(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row during batch fetch", scanErr)
		}
		domainLine := mapping.ToDomainTransactionLine(m)
		linesMap[domainLine.TransactionID] = append(linesMap[domainLine.TransactionID], domainLine)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows during batch fetch", err)
	}

	// Ensure even transactions with no lines have an entry (empty slice)
	for _, tid := range transactionIDs {
		if _, exists := linesMap[tid]; !exists {
			linesMap[tid] = []domain.TransactionLine{}
		}
	}

	return linesMap, nil
}

// ListLinesByAccountID retrieves a paginated list of posted lines for a
// specific account using token-based pagination.
func (r *PgxTransactionRepository) ListLinesByAccountID(ctx context.Context, churchID, accountID string, limit int, nextToken *string) ([]domain.TransactionLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT l.line_id, l.transaction_id, l.account_id, l.debit, l.credit, l.memo,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by, t.date
		FROM transaction_lines l
		JOIN transactions t ON l.transaction_id = t.transaction_id
		WHERE l.account_id = $1 AND t.church_id = $2 AND t.status IN ('POSTED', 'RECONCILED')
	`
	orderByClause := `ORDER BY t.date DESC, l.created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID, churchID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (t.date, l.created_at) < ($3, $4)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query lines for account "+accountID+" in church "+churchID, err)
	}
	defer rows.Close()

	type lineWithDate struct {
		line models.TransactionLine
		date time.Time
	}
	scanned := make([]lineWithDate, 0, fetchLimit)

	for rows.Next() {
		var m models.TransactionLine
		var txnDate time.Time
		scanErr := rows.Scan(
			&m.LineID,
			&m.TransactionID,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.Memo,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&txnDate,
		)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan line row for account "+accountID, scanErr)
		}
		scanned = append(scanned, lineWithDate{line: m, date: txnDate})
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating line rows for account "+accountID, err)
	}

	var nextTokenVal *string
	count := len(scanned)
	if count > limit {
		last := scanned[limit-1]
		token := pagination.EncodeToken(last.date, last.line.CreatedAt)
		nextTokenVal = &token
		count = limit
	}

	results := make([]models.TransactionLine, count)
	for i := 0; i < count; i++ {
		results[i] = scanned[i].line
	}

	return mapping.ToDomainTransactionLineSlice(results), nextTokenVal, nil
}
