package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	portsrepo "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/repositories"
	"github.com/ecclesiahq/ecclesia-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetPostedLines retrieves posted and reconciled lines for a church joined
// with their account types, limited to transactions dated within [from, to].
// Zero times mean unbounded on that side.
func (r *reportingRepository) GetPostedLines(ctx context.Context, churchID string, from, to time.Time) ([]domain.LineWithContext, error) {
	query := `
		SELECT l.account_id, a.account_type, l.debit, l.credit, t.status
		FROM transaction_lines l
		JOIN transactions t ON l.transaction_id = t.transaction_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE t.church_id = $1
			AND t.status IN ('POSTED', 'RECONCILED')
			AND ($2::timestamptz IS NULL OR t.date >= $2)
			AND ($3::timestamptz IS NULL OR t.date <= $3)
	`

	var fromArg, toArg interface{}
	if !from.IsZero() {
		fromArg = from
	}
	if !to.IsZero() {
		toArg = to
	}

	rows, err := r.Pool.Query(ctx, query, churchID, fromArg, toArg)
	if err != nil {
		return nil, fmt.Errorf("error querying report lines: %w", err)
	}
	defer rows.Close()

	result := []domain.LineWithContext{}
	for rows.Next() {
		var line domain.LineWithContext
		var accountType, status string

		if err := rows.Scan(&line.AccountID, &accountType, &line.Debit, &line.Credit, &status); err != nil {
			return nil, fmt.Errorf("error scanning report line row: %w", err)
		}

		line.AccountType = domain.AccountType(accountType)
		line.TransactionStatus = domain.TransactionStatus(status)
		result = append(result, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report line rows: %w", err)
	}

	return result, nil
}

// GetReportAccounts retrieves the active accounts of a church in code order.
func (r *reportingRepository) GetReportAccounts(ctx context.Context, churchID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE church_id = $1 AND is_active = TRUE
		ORDER BY code;
	`

	rows, err := r.Pool.Query(ctx, query, churchID)
	if err != nil {
		return nil, fmt.Errorf("error querying report accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		modelAcc, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("error scanning report account row: %w", scanErr)
		}
		accounts = append(accounts, mapping.ToDomainAccount(modelAcc))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report account rows: %w", err)
	}

	return accounts, nil
}

// GetTrialBalanceData retrieves trial balance data as of a specific date
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, churchID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name AS account_name,
			a.account_type,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM transaction_lines l
		JOIN transactions t ON l.transaction_id = t.transaction_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE t.date <= $1
			AND t.church_id = $2
			AND t.status IN ('POSTED', 'RECONCILED')
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code
	`

	rows, err := r.Pool.Query(ctx, query, asOf, churchID)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string

		if err := rows.Scan(
			&row.AccountID,
			&row.Code,
			&row.AccountName,
			&accountType,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	if len(result) == 0 {
		// Return empty slice instead of nil
		return []domain.TrialBalanceRow{}, nil
	}

	return result, nil
}
