package dto

import (
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionLineRequest is one line of a new transaction. Exactly one
// of debit or credit should be positive; both non-negative.
type CreateTransactionLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo"`
}

// CreateTransactionRequest defines the data needed to create a new transaction.
// Status defaults to PENDING; POSTED applies balances immediately.
type CreateTransactionRequest struct {
	Date        time.Time                      `json:"date" binding:"required"`
	Description string                         `json:"description" binding:"required"`
	Status      domain.TransactionStatus       `json:"status" binding:"omitempty,oneof=PENDING POSTED"`
	Lines       []CreateTransactionLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateTransactionRequest defines the header fields editable while pending.
type UpdateTransactionRequest struct {
	Date        *time.Time `json:"date"`
	Description *string    `json:"description"`
}

// CheckBalanceRequest carries candidate lines for a dry-run balance check.
type CheckBalanceRequest struct {
	Lines []CreateTransactionLineRequest `json:"lines" binding:"required,dive"`
}

// TransactionLineResponse defines the data returned for a transaction line.
type TransactionLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                    `json:"transactionID"`
	ChurchID      string                    `json:"churchID"`
	Date          time.Time                 `json:"date"`
	Description   string                    `json:"description"`
	Status        domain.TransactionStatus  `json:"status"`
	Lines         []TransactionLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time                 `json:"createdAt"`
	CreatedBy     string                    `json:"createdBy"`
	LastUpdatedAt time.Time                 `json:"lastUpdatedAt"`
	LastUpdatedBy string                    `json:"lastUpdatedBy"`
}

// BalanceCheckResponse reports the outcome of the double-entry balance rule.
type BalanceCheckResponse struct {
	Balanced     bool            `json:"balanced"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	Difference   decimal.Decimal `json:"difference"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit         int     `form:"limit,default=20"`
	NextToken     *string `form:"nextToken"`
	IncludeVoided bool    `form:"includeVoided,default=false"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ListAccountLinesParams defines query parameters for listing an account's lines.
type ListAccountLinesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListAccountLinesResponse wraps a page of transaction lines for one account.
type ListAccountLinesResponse struct {
	Lines     []TransactionLineResponse `json:"lines"`
	NextToken *string                   `json:"nextToken,omitempty"`
}

// ToTransactionLineResponse converts a domain.TransactionLine to its DTO.
func ToTransactionLineResponse(l *domain.TransactionLine) TransactionLineResponse {
	return TransactionLineResponse{
		LineID:    l.LineID,
		AccountID: l.AccountID,
		Debit:     l.Debit,
		Credit:    l.Credit,
		Memo:      l.Memo,
	}
}

// ToTransactionLineResponses converts a slice of domain lines to DTOs.
func ToTransactionLineResponses(lines []domain.TransactionLine) []TransactionLineResponse {
	responses := make([]TransactionLineResponse, len(lines))
	for i, l := range lines {
		responses[i] = ToTransactionLineResponse(&l)
	}
	return responses
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		ChurchID:      txn.ChurchID,
		Date:          txn.Date,
		Description:   txn.Description,
		Status:        txn.Status,
		Lines:         ToTransactionLineResponses(txn.Lines),
		CreatedAt:     txn.CreatedAt,
		CreatedBy:     txn.CreatedBy,
		LastUpdatedAt: txn.LastUpdatedAt,
		LastUpdatedBy: txn.LastUpdatedBy,
	}
}

// ToBalanceCheckResponse converts a domain.BalanceCheck to its DTO.
func ToBalanceCheckResponse(c *domain.BalanceCheck) BalanceCheckResponse {
	return BalanceCheckResponse{
		Balanced:     c.Balanced,
		TotalDebits:  c.TotalDebits,
		TotalCredits: c.TotalCredits,
		Difference:   c.Difference,
	}
}
