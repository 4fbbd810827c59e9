package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	portsrepo "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/repositories"
	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/utils/ledger"
)

// reportingService derives financial statements from posted transaction lines.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingChurchAuthorizer sets the church authorizer for the reporting service.
func WithReportingChurchAuthorizer(authorizer portssvc.ChurchAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.ChurchAuthorizer = authorizer
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// deriveBalances fetches the church's accounts and lines and folds them into
// signed balances. All statement endpoints share this path.
func (s *reportingService) deriveBalances(ctx context.Context, churchID string, from, to time.Time) ([]domain.AccountBalance, error) {
	accounts, err := s.reportingRepo.GetReportAccounts(ctx, churchID)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve accounts for report", slog.String("church_id", churchID))
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}

	lines, err := s.reportingRepo.GetPostedLines(ctx, churchID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve lines for report", slog.String("church_id", churchID))
		return nil, fmt.Errorf("failed to retrieve transaction lines: %w", err)
	}

	return ledger.DeriveBalances(accounts, lines), nil
}

// AccountBalances derives signed per-account balances over a period.
func (s *reportingService) AccountBalances(ctx context.Context, churchID string, from, to time.Time, userID string) ([]domain.AccountBalance, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to view account balances",
			slog.String("user_id", userID),
			slog.String("church_id", churchID))
		return nil, err
	}

	balances, err := s.deriveBalances(ctx, churchID, from, to)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Account balances derived",
		slog.String("church_id", churchID),
		slog.Int("account_count", len(balances)))
	return balances, nil
}

// IncomeStatement generates an income statement for a period.
func (s *reportingService) IncomeStatement(ctx context.Context, churchID string, from, to time.Time, userID string) (*domain.IncomeStatement, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to view income statement",
			slog.String("user_id", userID),
			slog.String("church_id", churchID))
		return nil, err
	}

	balances, err := s.deriveBalances(ctx, churchID, from, to)
	if err != nil {
		return nil, err
	}

	stmt := ledger.DeriveIncomeStatement(balances)

	s.LogInfo(ctx, "Income statement generated",
		slog.String("church_id", churchID),
		slog.String("from", from.Format(time.RFC3339)),
		slog.String("to", to.Format(time.RFC3339)),
		slog.Int("revenue_accounts", len(stmt.Revenue)),
		slog.Int("expense_accounts", len(stmt.Expenses)))
	return &stmt, nil
}

// BalanceSheet generates a balance sheet as of a specific date. An unbalanced
// sheet is returned with its difference, not rejected.
func (s *reportingService) BalanceSheet(ctx context.Context, churchID string, asOf time.Time, userID string) (*domain.BalanceSheet, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to view balance sheet",
			slog.String("user_id", userID),
			slog.String("church_id", churchID))
		return nil, err
	}

	balances, err := s.deriveBalances(ctx, churchID, time.Time{}, asOf)
	if err != nil {
		return nil, err
	}

	sheet := ledger.DeriveBalanceSheet(balances)
	if !sheet.Balanced {
		s.LogInfo(ctx, "Balance sheet does not balance",
			slog.String("church_id", churchID),
			slog.String("difference", sheet.Difference.String()))
	}

	s.LogInfo(ctx, "Balance sheet generated",
		slog.String("church_id", churchID),
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Bool("balanced", sheet.Balanced))
	return &sheet, nil
}

// TrialBalance generates a trial balance report as of a specific date.
func (s *reportingService) TrialBalance(ctx context.Context, churchID string, asOf time.Time, userID string) ([]domain.TrialBalanceRow, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to view trial balance report",
			slog.String("user_id", userID),
			slog.String("church_id", churchID))
		return nil, err
	}

	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, churchID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("church_id", churchID),
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	s.LogInfo(ctx, "Trial balance report generated",
		slog.String("church_id", churchID),
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("row_count", len(rows)))
	return rows, nil
}
