package models

import "time"

// Church represents a congregation, the tenant boundary of the application.
type Church struct {
	ChurchID            string  `db:"church_id"`
	Name                string  `db:"name"`
	Description         string  `db:"description"`
	DefaultCurrencyCode *string `db:"default_currency_code"`
	IsActive            bool    `db:"is_active"`
	AuditFields
}

// UserChurchRole defines the role a user holds within a church.
type UserChurchRole string

// UserChurch represents the membership of a user in a church. UserName is
// populated from a join when listing members and never written back.
type UserChurch struct {
	UserID   string         `db:"user_id"`
	UserName string         `db:"user_name"`
	ChurchID string         `db:"church_id"`
	Role     UserChurchRole `db:"role"`
	JoinedAt time.Time      `db:"joined_at"`
}
