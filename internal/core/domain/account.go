package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
// It determines the sign convention used when folding transaction lines
// into a balance.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents one entry in a church's chart of accounts.
type Account struct {
	AccountID   string          `json:"accountID"` // Primary Key (e.g., UUID)
	ChurchID    string          `json:"churchID"`  // FK -> churches.church_id (NON-NULL)
	Code        string          `json:"code"`      // Short sortable code, e.g. "1000"
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Description string          `json:"description"`
	IsActive    bool            `json:"isActive"` // Deactivated accounts reject new lines
	Balance     decimal.Decimal `json:"balance"`  // Persisted balance over posted transactions
	AuditFields
}

// IsDebitNormal reports whether debits increase this account's balance.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// IsClassified reports whether the type is one of the five statement buckets.
// Unclassified accounts are excluded from derived statements rather than
// treated as an error.
func (t AccountType) IsClassified() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}
