package repositories

import (
	"context"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetPostedLines retrieves every transaction line for a church joined with
	// its account type and transaction status, limited to transactions dated
	// within [from, to]. Zero times mean unbounded on that side.
	GetPostedLines(ctx context.Context, churchID string, from, to time.Time) ([]domain.LineWithContext, error)

	// GetReportAccounts retrieves the active accounts of a church in code order.
	GetReportAccounts(ctx context.Context, churchID string) ([]domain.Account, error)

	// GetTrialBalanceData retrieves per-account debit and credit totals as of a specific date.
	GetTrialBalanceData(ctx context.Context, churchID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
