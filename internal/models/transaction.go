package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the lifecycle state of a transaction row.
type TransactionStatus string

const (
	Pending    TransactionStatus = "PENDING"
	Posted     TransactionStatus = "POSTED"
	Reconciled TransactionStatus = "RECONCILED"
	Voided     TransactionStatus = "VOIDED"
)

// Transaction represents one balanced financial event. Lines live in their
// own table and are loaded separately.
type Transaction struct {
	TransactionID string            `db:"transaction_id"`
	ChurchID      string            `db:"church_id"`
	Date          time.Time         `db:"date"`
	Description   string            `db:"description"`
	Status        TransactionStatus `db:"status"`
	AuditFields
}

// TransactionLine is one row within a transaction, affecting one account.
type TransactionLine struct {
	LineID        string          `db:"line_id"`
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	Memo          string          `db:"memo"`
	AuditFields
}
