package services

import (
	"context"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
)

// ChurchReaderSvc defines read operations for church data
type ChurchReaderSvc interface {
	// FindChurchByID retrieves a specific church by its ID.
	FindChurchByID(ctx context.Context, churchID string) (*domain.Church, error)

	// ListUserChurches retrieves churches a user belongs to.
	// If includeDisabled is true, it includes inactive churches.
	ListUserChurches(ctx context.Context, userID string, includeDisabled bool) ([]domain.Church, error)

	// ListChurchUsers retrieves all users and their roles for a specific church.
	// Only members of the church can access this data.
	ListChurchUsers(ctx context.Context, churchID string, requestingUserID string) ([]domain.UserChurch, error)
}

// ChurchWriterSvc defines write operations for church data
type ChurchWriterSvc interface {
	// CreateChurch persists a new church with the creator as its admin.
	CreateChurch(ctx context.Context, name, description, defaultCurrencyCode, creatorUserID string) (*domain.Church, error)

	// UpdateChurch updates a church's name and description.
	UpdateChurch(ctx context.Context, churchID string, name, description string, requestingUserID string) (*domain.Church, error)

	// DeactivateChurch marks a church as inactive.
	DeactivateChurch(ctx context.Context, churchID string, requestingUserID string) error

	// ActivateChurch marks a church as active.
	ActivateChurch(ctx context.Context, churchID string, requestingUserID string) error
}

// ChurchMembershipSvc defines operations for managing church membership
type ChurchMembershipSvc interface {
	// AddUserToChurch adds a user to a church with a specific role.
	AddUserToChurch(ctx context.Context, addingUserID, targetUserID, churchID string, role domain.UserChurchRole) error

	// RemoveUserFromChurch removes a user from a church.
	// Only church admins can remove users.
	RemoveUserFromChurch(ctx context.Context, requestingUserID, targetUserID, churchID string) error

	// UpdateUserChurchRole updates a user's role in a church.
	// Only church admins can update roles.
	UpdateUserChurchRole(ctx context.Context, requestingUserID, targetUserID, churchID string, newRole domain.UserChurchRole) error
}

// ChurchAuthorizerSvc defines operations for church authorization
type ChurchAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has required permissions for a church.
	AuthorizeUserAction(ctx context.Context, userID, churchID string, requiredRole domain.UserChurchRole) error
}

// ChurchSvcFacade combines all church-related service interfaces
// This is a facade for clients that need access to all operations
type ChurchSvcFacade interface {
	ChurchReaderSvc
	ChurchWriterSvc
	ChurchMembershipSvc
	ChurchAuthorizerSvc
}
