package dto

import (
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	"github.com/ecclesiahq/ecclesia-backend/internal/utils"
	"github.com/shopspring/decimal"
)

// AccountBalanceResponse represents an account with its signed balance.
// BalanceDisplay is the balance rounded to minor units for rendering.
type AccountBalanceResponse struct {
	AccountID      string          `json:"accountID"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	AccountType    string          `json:"accountType"`
	Balance        decimal.Decimal `json:"balance"`
	BalanceDisplay string          `json:"balanceDisplay"`
}

// AccountBalancesResponse wraps derived per-account balances for a period.
type AccountBalancesResponse struct {
	FromDate string                   `json:"fromDate,omitempty"`
	ToDate   string                   `json:"toDate,omitempty"`
	Balances []AccountBalanceResponse `json:"balances"`
}

// IncomeStatementResponse represents the income statement report response.
type IncomeStatementResponse struct {
	FromDate string                   `json:"fromDate"`
	ToDate   string                   `json:"toDate"`
	Revenue  []AccountBalanceResponse `json:"revenue"`
	Expenses []AccountBalanceResponse `json:"expenses"`
	Summary  struct {
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetIncome     decimal.Decimal `json:"netIncome"`
	} `json:"summary"`
}

// BalanceSheetResponse represents the balance sheet report response.
type BalanceSheetResponse struct {
	AsOf        string                   `json:"asOf"`
	Assets      []AccountBalanceResponse `json:"assets"`
	Liabilities []AccountBalanceResponse `json:"liabilities"`
	Equity      []AccountBalanceResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
		NetIncome        decimal.Decimal `json:"netIncome"`
		Balanced         bool            `json:"balanced"`
		Difference       decimal.Decimal `json:"difference"`
	} `json:"summary"`
}

// TrialBalanceRowResponse represents a row in the trial balance report response.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response.
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

func toAccountBalanceResponses(balances []domain.AccountBalance) []AccountBalanceResponse {
	out := make([]AccountBalanceResponse, len(balances))
	for i, b := range balances {
		out[i] = AccountBalanceResponse{
			AccountID:      b.AccountID,
			Code:           b.Code,
			Name:           b.Name,
			AccountType:    string(b.AccountType),
			Balance:        b.Balance,
			BalanceDisplay: utils.FormatAmount(b.Balance),
		}
	}
	return out
}

// ToAccountBalancesResponse converts derived balances to a DTO response.
func ToAccountBalancesResponse(balances []domain.AccountBalance, from, to time.Time) AccountBalancesResponse {
	resp := AccountBalancesResponse{Balances: toAccountBalanceResponses(balances)}
	if !from.IsZero() {
		resp.FromDate = from.Format("2006-01-02")
	}
	if !to.IsZero() {
		resp.ToDate = to.Format("2006-01-02")
	}
	return resp
}

// ToIncomeStatementResponse converts a domain income statement to a DTO response.
func ToIncomeStatementResponse(report *domain.IncomeStatement, from, to time.Time) IncomeStatementResponse {
	response := IncomeStatementResponse{
		FromDate: from.Format("2006-01-02"),
		ToDate:   to.Format("2006-01-02"),
		Revenue:  toAccountBalanceResponses(report.Revenue),
		Expenses: toAccountBalanceResponses(report.Expenses),
	}
	response.Summary.TotalRevenue = report.TotalRevenue
	response.Summary.TotalExpenses = report.TotalExpenses
	response.Summary.NetIncome = report.NetIncome
	return response
}

// ToBalanceSheetResponse converts a domain balance sheet to a DTO response.
func ToBalanceSheetResponse(report *domain.BalanceSheet, asOf time.Time) BalanceSheetResponse {
	response := BalanceSheetResponse{
		AsOf:        asOf.Format("2006-01-02"),
		Assets:      toAccountBalanceResponses(report.Assets),
		Liabilities: toAccountBalanceResponses(report.Liabilities),
		Equity:      toAccountBalanceResponses(report.Equity),
	}
	response.Summary.TotalAssets = report.TotalAssets
	response.Summary.TotalLiabilities = report.TotalLiabilities
	response.Summary.TotalEquity = report.TotalEquity
	response.Summary.NetIncome = report.NetIncome
	response.Summary.Balanced = report.Balanced
	response.Summary.Difference = report.Difference
	return response
}

// ToTrialBalanceResponse converts domain trial balance rows to a DTO response.
func ToTrialBalanceResponse(rows []domain.TrialBalanceRow, asOf time.Time) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf: asOf.Format("2006-01-02"),
		Rows: make([]TrialBalanceRowResponse, len(rows)),
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for i, row := range rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			Code:        row.Code,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
		}

		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	response.Totals.Debit = totalDebit
	response.Totals.Credit = totalCredit

	return response
}
