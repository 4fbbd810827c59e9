package mapping

import (
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	"github.com/ecclesiahq/ecclesia-backend/internal/models"
)

// ToModelChurch converts a domain Church to a model Church
func ToModelChurch(d domain.Church) models.Church {
	return models.Church{
		ChurchID:            d.ChurchID,
		Name:                d.Name,
		Description:         d.Description,
		DefaultCurrencyCode: d.DefaultCurrencyCode,
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainChurch converts a model Church to a domain Church
func ToDomainChurch(m models.Church) domain.Church {
	return domain.Church{
		ChurchID:            m.ChurchID,
		Name:                m.Name,
		Description:         m.Description,
		DefaultCurrencyCode: m.DefaultCurrencyCode,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainChurchSlice converts a slice of model Churches to a slice of domain Churches
func ToDomainChurchSlice(ms []models.Church) []domain.Church {
	ds := make([]domain.Church, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainChurch(m)
	}
	return ds
}

// ToModelUserChurch converts a domain UserChurch to a model UserChurch
func ToModelUserChurch(d domain.UserChurch) models.UserChurch {
	return models.UserChurch{
		UserID:   d.UserID,
		UserName: d.UserName,
		ChurchID: d.ChurchID,
		Role:     models.UserChurchRole(d.Role),
		JoinedAt: d.JoinedAt,
	}
}

// ToDomainUserChurch converts a model UserChurch to a domain UserChurch
func ToDomainUserChurch(m models.UserChurch) domain.UserChurch {
	return domain.UserChurch{
		UserID:   m.UserID,
		UserName: m.UserName,
		ChurchID: m.ChurchID,
		Role:     domain.UserChurchRole(m.Role),
		JoinedAt: m.JoinedAt,
	}
}

// ToDomainUserChurchSlice converts a slice of model UserChurches to domain UserChurches
func ToDomainUserChurchSlice(ms []models.UserChurch) []domain.UserChurch {
	ds := make([]domain.UserChurch, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUserChurch(m)
	}
	return ds
}
