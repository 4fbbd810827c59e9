package services

import (
	"context"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// AccountBalances derives signed per-account balances over posted lines
	// dated within [from, to].
	AccountBalances(ctx context.Context, churchID string, from, to time.Time, userID string) ([]domain.AccountBalance, error)

	// IncomeStatement generates an income statement for a specific period.
	IncomeStatement(ctx context.Context, churchID string, from, to time.Time, userID string) (*domain.IncomeStatement, error)

	// BalanceSheet generates a balance sheet report as of a specific date.
	BalanceSheet(ctx context.Context, churchID string, asOf time.Time, userID string) (*domain.BalanceSheet, error)

	// TrialBalance generates a trial balance report as of a specific date.
	TrialBalance(ctx context.Context, churchID string, asOf time.Time, userID string) ([]domain.TrialBalanceRow, error)
}
