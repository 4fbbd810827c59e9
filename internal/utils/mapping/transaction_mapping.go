package mapping

import (
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	"github.com/ecclesiahq/ecclesia-backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Lines are mapped separately; they live in their own table.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		ChurchID:      d.ChurchID,
		Date:          d.Date,
		Description:   d.Description,
		Status:        models.TransactionStatus(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		ChurchID:      m.ChurchID,
		Date:          m.Date,
		Description:   m.Description,
		Status:        domain.TransactionStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToModelTransactionLine converts a domain TransactionLine to a model TransactionLine
func ToModelTransactionLine(d domain.TransactionLine) models.TransactionLine {
	return models.TransactionLine{
		LineID:        d.LineID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Debit:         d.Debit,
		Credit:        d.Credit,
		Memo:          d.Memo,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransactionLine converts a model TransactionLine to a domain TransactionLine
func ToDomainTransactionLine(m models.TransactionLine) domain.TransactionLine {
	return domain.TransactionLine{
		LineID:        m.LineID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Debit:         m.Debit,
		Credit:        m.Credit,
		Memo:          m.Memo,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionLineSlice converts a slice of model TransactionLines to domain TransactionLines
func ToDomainTransactionLineSlice(ms []models.TransactionLine) []domain.TransactionLine {
	ds := make([]domain.TransactionLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransactionLine(m)
	}
	return ds
}
