package models

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents one row in a church's chart of accounts.
type Account struct {
	AccountID   string      `db:"account_id"`
	ChurchID    string      `db:"church_id"`
	Code        string      `db:"code"` // User-facing sortable code, unique per church
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	Description string      `db:"description"`
	IsActive    bool        `db:"is_active"`
	AuditFields
	Balance decimal.Decimal `db:"balance"` // Persisted balance over posted transactions
}
