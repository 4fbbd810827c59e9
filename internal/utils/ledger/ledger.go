// Package ledger holds the pure double-entry rules: line-set validation and
// financial statement derivation. Everything here is a synchronous function of
// its inputs; callers fetch rows and render results.
package ledger

import (
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// tolerance is the minor-unit tolerance applied to statement-level identity
// checks. Line sums use decimal arithmetic and are exact; the tolerance only
// guards against rounded values entering through data entry.
var tolerance = decimal.New(1, -2) // 0.01

// ValidateLines checks the ledger balance rule over a set of transaction
// lines: the sum of debits must equal the sum of credits. It never fails; an
// empty line set is vacuously balanced and must be rejected at a higher
// policy level. Callers must refuse to post a transaction whose lines do not
// balance.
func ValidateLines(lines []domain.TransactionLine) domain.BalanceCheck {
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, line := range lines {
		totalDebits = totalDebits.Add(line.Debit)
		totalCredits = totalCredits.Add(line.Credit)
	}
	difference := totalDebits.Sub(totalCredits).Abs()
	return domain.BalanceCheck{
		Balanced:     difference.LessThanOrEqual(tolerance),
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
		Difference:   difference,
	}
}

// signedAmount folds one line into an account balance using the standard
// double-entry convention:
//
//	ASSET / EXPENSE:             balance += debit - credit
//	LIABILITY / EQUITY / REVENUE: balance += credit - debit
func signedAmount(accountType domain.AccountType, debit, credit decimal.Decimal) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// DeriveBalances computes each account's signed balance over the lines of
// posted transactions. Pending, voided and reconciled-from-void states are
// handled by status: only POSTED and RECONCILED lines count (reconciliation
// marks a posted transaction as verified, it does not remove it from the
// books). Accounts with an unclassified type get a zero balance and are
// excluded from the statement buckets downstream.
func DeriveBalances(accounts []domain.Account, lines []domain.LineWithContext) []domain.AccountBalance {
	balances := make(map[string]decimal.Decimal, len(accounts))
	typeByAccount := make(map[string]domain.AccountType, len(accounts))
	for _, acc := range accounts {
		balances[acc.AccountID] = decimal.Zero
		typeByAccount[acc.AccountID] = acc.AccountType
	}

	for _, line := range lines {
		if line.TransactionStatus != domain.Posted && line.TransactionStatus != domain.Reconciled {
			continue
		}
		accountType, ok := typeByAccount[line.AccountID]
		if !ok || !accountType.IsClassified() {
			continue
		}
		balances[line.AccountID] = balances[line.AccountID].Add(signedAmount(accountType, line.Debit, line.Credit))
	}

	result := make([]domain.AccountBalance, 0, len(accounts))
	for _, acc := range accounts {
		result = append(result, domain.AccountBalance{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			Name:        acc.Name,
			AccountType: acc.AccountType,
			Balance:     balances[acc.AccountID],
		})
	}
	return result
}

// DeriveIncomeStatement aggregates revenue and expense balances.
// NetIncome may be negative; the surplus/deficit label is a display concern.
func DeriveIncomeStatement(balances []domain.AccountBalance) domain.IncomeStatement {
	stmt := domain.IncomeStatement{
		Revenue:       []domain.AccountBalance{},
		Expenses:      []domain.AccountBalance{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, b := range balances {
		switch b.AccountType {
		case domain.Revenue:
			stmt.Revenue = append(stmt.Revenue, b)
			stmt.TotalRevenue = stmt.TotalRevenue.Add(b.Balance)
		case domain.Expense:
			stmt.Expenses = append(stmt.Expenses, b)
			stmt.TotalExpenses = stmt.TotalExpenses.Add(b.Balance)
		}
	}
	stmt.NetIncome = stmt.TotalRevenue.Sub(stmt.TotalExpenses)
	return stmt
}

// DeriveBalanceSheet aggregates asset, liability and equity balances and
// verifies the accounting identity Assets = Liabilities + Equity + NetIncome.
// An imbalance is reported, never raised: it signals unposted data or an
// upstream entry bug and is surfaced to the user as a warning.
func DeriveBalanceSheet(balances []domain.AccountBalance) domain.BalanceSheet {
	sheet := domain.BalanceSheet{
		Assets:           []domain.AccountBalance{},
		Liabilities:      []domain.AccountBalance{},
		Equity:           []domain.AccountBalance{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for _, b := range balances {
		switch b.AccountType {
		case domain.Asset:
			sheet.Assets = append(sheet.Assets, b)
			sheet.TotalAssets = sheet.TotalAssets.Add(b.Balance)
		case domain.Liability:
			sheet.Liabilities = append(sheet.Liabilities, b)
			sheet.TotalLiabilities = sheet.TotalLiabilities.Add(b.Balance)
		case domain.Equity:
			sheet.Equity = append(sheet.Equity, b)
			sheet.TotalEquity = sheet.TotalEquity.Add(b.Balance)
		}
	}

	sheet.NetIncome = DeriveIncomeStatement(balances).NetIncome
	// Current-period net income rolls into equity until formally closed.
	sheet.TotalEquity = sheet.TotalEquity.Add(sheet.NetIncome)
	sheet.Difference = sheet.TotalAssets.Sub(sheet.TotalLiabilities.Add(sheet.TotalEquity)).Abs()
	sheet.Balanced = sheet.Difference.LessThanOrEqual(tolerance)
	return sheet
}
