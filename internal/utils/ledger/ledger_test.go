package ledger_test

import (
	"testing"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	"github.com/ecclesiahq/ecclesia-backend/internal/utils/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func line(accountID, debit, credit string) domain.TransactionLine {
	return domain.TransactionLine{
		AccountID: accountID,
		Debit:     d(debit),
		Credit:    d(credit),
	}
}

func TestValidateLines(t *testing.T) {
	tests := []struct {
		name           string
		lines          []domain.TransactionLine
		wantBalanced   bool
		wantDifference string
	}{
		{
			name: "balanced pair",
			lines: []domain.TransactionLine{
				line("cash", "100", "0"),
				line("revenue", "0", "100"),
			},
			wantBalanced:   true,
			wantDifference: "0",
		},
		{
			name: "unbalanced by 50",
			lines: []domain.TransactionLine{
				line("cash", "150", "0"),
				line("revenue", "0", "100"),
			},
			wantBalanced:   false,
			wantDifference: "50",
		},
		{
			name: "split across multiple lines",
			lines: []domain.TransactionLine{
				line("cash", "70.25", "0"),
				line("cash", "29.75", "0"),
				line("tithes", "0", "60"),
				line("offerings", "0", "40"),
			},
			wantBalanced:   true,
			wantDifference: "0",
		},
		{
			name: "cent-level imbalance is rejected",
			lines: []domain.TransactionLine{
				line("cash", "100.02", "0"),
				line("revenue", "0", "100"),
			},
			wantBalanced:   false,
			wantDifference: "0.02",
		},
		{
			name:           "empty input is vacuously balanced",
			lines:          nil,
			wantBalanced:   true,
			wantDifference: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := ledger.ValidateLines(tt.lines)
			assert.Equal(t, tt.wantBalanced, check.Balanced)
			assert.True(t, check.Difference.Equal(d(tt.wantDifference)),
				"difference: got %s want %s", check.Difference, tt.wantDifference)
		})
	}
}

func TestValidateLines_Totals(t *testing.T) {
	check := ledger.ValidateLines([]domain.TransactionLine{
		line("a", "10.10", "0"),
		line("b", "0", "4.05"),
		line("c", "0", "6.05"),
	})
	assert.True(t, check.TotalDebits.Equal(d("10.10")))
	assert.True(t, check.TotalCredits.Equal(d("10.10")))
	assert.True(t, check.Balanced)
}

func TestValidateLines_Idempotent(t *testing.T) {
	lines := []domain.TransactionLine{
		line("a", "33.33", "0"),
		line("b", "0", "33.33"),
	}
	first := ledger.ValidateLines(lines)
	second := ledger.ValidateLines(lines)
	assert.Equal(t, first, second)
}

func account(id string, accountType domain.AccountType) domain.Account {
	return domain.Account{AccountID: id, Code: id, Name: id, AccountType: accountType}
}

func postedLine(accountID string, accountType domain.AccountType, debit, credit string) domain.LineWithContext {
	return domain.LineWithContext{
		AccountID:         accountID,
		AccountType:       accountType,
		Debit:             d(debit),
		Credit:            d(credit),
		TransactionStatus: domain.Posted,
	}
}

func TestDeriveBalances_SignConvention(t *testing.T) {
	accounts := []domain.Account{
		account("bank", domain.Asset),
		account("tithes", domain.Revenue),
	}
	lines := []domain.LineWithContext{
		postedLine("bank", domain.Asset, "500", "200"),
		postedLine("tithes", domain.Revenue, "50", "400"),
	}

	balances := ledger.DeriveBalances(accounts, lines)
	require.Len(t, balances, 2)

	byID := map[string]domain.AccountBalance{}
	for _, b := range balances {
		byID[b.AccountID] = b
	}

	// Asset: debit - credit = 500 - 200
	assert.True(t, byID["bank"].Balance.Equal(d("300")), "asset balance: %s", byID["bank"].Balance)
	// Revenue: credit - debit = 400 - 50
	assert.True(t, byID["tithes"].Balance.Equal(d("350")), "revenue balance: %s", byID["tithes"].Balance)
}

func TestDeriveBalances_IgnoresPendingAndVoided(t *testing.T) {
	accounts := []domain.Account{account("bank", domain.Asset)}
	lines := []domain.LineWithContext{
		postedLine("bank", domain.Asset, "100", "0"),
		{AccountID: "bank", AccountType: domain.Asset, Debit: d("999"), TransactionStatus: domain.Pending},
		{AccountID: "bank", AccountType: domain.Asset, Debit: d("999"), TransactionStatus: domain.Voided},
	}

	balances := ledger.DeriveBalances(accounts, lines)
	require.Len(t, balances, 1)
	assert.True(t, balances[0].Balance.Equal(d("100")))
}

func TestDeriveBalances_ReconciledCounts(t *testing.T) {
	accounts := []domain.Account{account("bank", domain.Asset)}
	lines := []domain.LineWithContext{
		{AccountID: "bank", AccountType: domain.Asset, Debit: d("40"), Credit: decimal.Zero, TransactionStatus: domain.Reconciled},
	}

	balances := ledger.DeriveBalances(accounts, lines)
	require.Len(t, balances, 1)
	assert.True(t, balances[0].Balance.Equal(d("40")))
}

func TestDeriveBalances_UnclassifiedTypeExcluded(t *testing.T) {
	accounts := []domain.Account{
		account("mystery", domain.AccountType("")),
		account("bank", domain.Asset),
	}
	lines := []domain.LineWithContext{
		{AccountID: "mystery", AccountType: domain.AccountType(""), Debit: d("10"), TransactionStatus: domain.Posted},
		postedLine("bank", domain.Asset, "10", "0"),
	}

	balances := ledger.DeriveBalances(accounts, lines)
	require.Len(t, balances, 2)

	sheet := ledger.DeriveBalanceSheet(balances)
	// The unclassified account must not land in any bucket.
	assert.Len(t, sheet.Assets, 1)
	assert.Empty(t, sheet.Liabilities)
	assert.Empty(t, sheet.Equity)
}

func TestDeriveIncomeStatement(t *testing.T) {
	balances := []domain.AccountBalance{
		{AccountID: "tithes", AccountType: domain.Revenue, Balance: d("1200")},
		{AccountID: "offerings", AccountType: domain.Revenue, Balance: d("300")},
		{AccountID: "rent", AccountType: domain.Expense, Balance: d("900")},
		{AccountID: "bank", AccountType: domain.Asset, Balance: d("600")},
	}

	stmt := ledger.DeriveIncomeStatement(balances)
	assert.True(t, stmt.TotalRevenue.Equal(d("1500")))
	assert.True(t, stmt.TotalExpenses.Equal(d("900")))
	assert.True(t, stmt.NetIncome.Equal(d("600")))
	assert.Len(t, stmt.Revenue, 2)
	assert.Len(t, stmt.Expenses, 1)
}

func TestDeriveIncomeStatement_Deficit(t *testing.T) {
	stmt := ledger.DeriveIncomeStatement([]domain.AccountBalance{
		{AccountID: "tithes", AccountType: domain.Revenue, Balance: d("100")},
		{AccountID: "rent", AccountType: domain.Expense, Balance: d("250")},
	})
	assert.True(t, stmt.NetIncome.Equal(d("-150")))
}

// The balance sheet identity follows from the ledger invariant: when every
// posted transaction balances, assets always equal liabilities plus equity
// plus current-period net income.
func TestBalanceSheetIdentity(t *testing.T) {
	accounts := []domain.Account{
		account("bank", domain.Asset),
		account("building", domain.Asset),
		account("loan", domain.Liability),
		account("fund", domain.Equity),
		account("tithes", domain.Revenue),
		account("rent", domain.Expense),
	}

	// Three balanced transactions: opening funding, income, an expense.
	lines := []domain.LineWithContext{
		postedLine("bank", domain.Asset, "10000", "0"),
		postedLine("fund", domain.Equity, "0", "10000"),

		postedLine("bank", domain.Asset, "1500", "0"),
		postedLine("tithes", domain.Revenue, "0", "1500"),

		postedLine("rent", domain.Expense, "400", "0"),
		postedLine("bank", domain.Asset, "0", "400"),
	}

	balances := ledger.DeriveBalances(accounts, lines)
	sheet := ledger.DeriveBalanceSheet(balances)

	assert.True(t, sheet.Balanced, "difference: %s", sheet.Difference)
	assert.True(t, sheet.TotalAssets.Equal(d("11100")))
	assert.True(t, sheet.TotalLiabilities.Equal(d("0")))
	assert.True(t, sheet.NetIncome.Equal(d("1100")))
	assert.True(t, sheet.TotalEquity.Equal(d("11100")))
}

func TestBalanceSheet_ReportsImbalanceWithoutFailing(t *testing.T) {
	// A one-sided line set: data-quality condition, not an exception.
	balances := []domain.AccountBalance{
		{AccountID: "bank", AccountType: domain.Asset, Balance: d("500")},
	}
	sheet := ledger.DeriveBalanceSheet(balances)
	assert.False(t, sheet.Balanced)
	assert.True(t, sheet.Difference.Equal(d("500")))
}
