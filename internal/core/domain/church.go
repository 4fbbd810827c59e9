package domain

import "time"

// Church represents a single congregation: the isolation boundary for accounts,
// transactions, presentations and everything else tenant-scoped.
type Church struct {
	ChurchID            string  `json:"churchID"` // Primary Key (e.g., UUID)
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode"` // e.g. "BRL", "USD"
	IsActive            bool    `json:"isActive"`
	AuditFields
}

// UserChurchRole defines the possible roles a user can have within a church.
type UserChurchRole string

const (
	RoleAdmin     UserChurchRole = "ADMIN"
	RoleTreasurer UserChurchRole = "TREASURER" // Can post to the ledger
	RoleMember    UserChurchRole = "MEMBER"
	RoleReadOnly  UserChurchRole = "READONLY"
	RoleRemoved   UserChurchRole = "REMOVED"
)

// UserChurch represents the membership of a User in a Church.
type UserChurch struct {
	UserID   string         `json:"userID"`
	UserName string         `json:"userName"`
	ChurchID string         `json:"churchID"`
	Role     UserChurchRole `json:"role"`
	JoinedAt time.Time      `json:"joinedAt"`
}

// CanWriteLedger reports whether the role may create or transition transactions.
func (r UserChurchRole) CanWriteLedger() bool {
	return r == RoleAdmin || r == RoleTreasurer
}
