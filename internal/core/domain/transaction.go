package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the lifecycle state of a transaction.
type TransactionStatus string

const (
	Pending    TransactionStatus = "PENDING"
	Posted     TransactionStatus = "POSTED"
	Reconciled TransactionStatus = "RECONCILED"
	Voided     TransactionStatus = "VOIDED"
)

// Transaction is an atomic financial event composed of two or more lines.
// Once posted its lines are immutable; corrections require voiding and
// recreating the transaction.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (e.g., UUID)
	ChurchID      string            `json:"churchID"`      // FK -> churches.church_id (Not Null)
	Date          time.Time         `json:"date"`          // Date the event occurred
	Description   string            `json:"description"`
	Status        TransactionStatus `json:"status"`
	Lines         []TransactionLine `json:"lines,omitempty"` // Insertion order preserved for display
	AuditFields
}

// TransactionLine is one row within a transaction, affecting one account.
// In well-formed input at most one of Debit/Credit is non-zero.
type TransactionLine struct {
	LineID        string          `json:"lineID"`        // Primary Key (e.g., UUID)
	TransactionID string          `json:"transactionID"` // FK -> transactions.transaction_id
	AccountID     string          `json:"accountID"`     // FK -> accounts.account_id (Not Null)
	Debit         decimal.Decimal `json:"debit"`         // Non-negative
	Credit        decimal.Decimal `json:"credit"`        // Non-negative
	Memo          string          `json:"memo"`
	AuditFields
}

// LineWithContext is a transaction line joined with the owning account's type
// and the transaction's status, the shape statement derivation consumes.
type LineWithContext struct {
	AccountID         string
	AccountType       AccountType
	Debit             decimal.Decimal
	Credit            decimal.Decimal
	TransactionStatus TransactionStatus
}

// Validate checks structural well-formedness of a single line.
func (l TransactionLine) Validate() error {
	if l.AccountID == "" {
		return fmt.Errorf("line %s: account ID is required", l.LineID)
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return fmt.Errorf("line %s: debit and credit must be non-negative", l.LineID)
	}
	if l.Debit.IsPositive() && l.Credit.IsPositive() {
		return fmt.Errorf("line %s: a line may carry a debit or a credit, not both", l.LineID)
	}
	return nil
}

// CanTransitionTo reports whether a status change is allowed.
// Posted transactions are never edited, only voided or reconciled.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	switch s {
	case Pending:
		return next == Posted || next == Voided
	case Posted:
		return next == Voided || next == Reconciled
	case Reconciled:
		return next == Voided
	}
	return false
}
