package domain

import (
	"github.com/shopspring/decimal"
)

// BalanceCheck is the result of validating a set of transaction lines against
// the double-entry balance rule.
type BalanceCheck struct {
	Balanced     bool            `json:"balanced"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	Difference   decimal.Decimal `json:"difference"` // |debits - credits|
}

// AccountBalance pairs an account with its signed balance derived over posted
// transaction lines.
type AccountBalance struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
}

// IncomeStatement aggregates revenue and expense balances for a period.
type IncomeStatement struct {
	Revenue       []AccountBalance `json:"revenue"`
	Expenses      []AccountBalance `json:"expenses"`
	TotalRevenue  decimal.Decimal  `json:"totalRevenue"`
	TotalExpenses decimal.Decimal  `json:"totalExpenses"`
	NetIncome     decimal.Decimal  `json:"netIncome"` // Negative means a deficit
}

// BalanceSheet aggregates asset, liability and equity balances. Current-period
// net income rolls into equity until formally closed (period closing is not
// modelled). An unbalanced sheet is a reportable data-quality condition, not
// an error.
type BalanceSheet struct {
	Assets           []AccountBalance `json:"assets"`
	Liabilities      []AccountBalance `json:"liabilities"`
	Equity           []AccountBalance `json:"equity"`
	TotalAssets      decimal.Decimal  `json:"totalAssets"`
	TotalLiabilities decimal.Decimal  `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal  `json:"totalEquity"` // Includes NetIncome
	NetIncome        decimal.Decimal  `json:"netIncome"`
	Balanced         bool             `json:"balanced"`
	Difference       decimal.Decimal  `json:"difference"` // |assets - (liabilities + equity)|
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
