package repositories

import (
	"context"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
)

// ChurchReader defines read operations for church data
type ChurchReader interface {
	// FindChurchByID retrieves a specific church by its ID.
	FindChurchByID(ctx context.Context, churchID string) (*domain.Church, error)

	// ListChurchesByUserID retrieves all churches a user belongs to.
	ListChurchesByUserID(ctx context.Context, userID string) ([]domain.Church, error)
}

// ChurchWriter defines write operations for church data
type ChurchWriter interface {
	// SaveChurch persists a new church.
	SaveChurch(ctx context.Context, church domain.Church) error

	// UpdateChurch updates an existing church's details.
	UpdateChurch(ctx context.Context, church domain.Church) error
}

// ChurchMembershipManager defines operations for managing church memberships
type ChurchMembershipManager interface {
	// AddUserToChurch adds a user to a church with a specific role.
	AddUserToChurch(ctx context.Context, membership domain.UserChurch) error

	// FindUserChurchRole retrieves the role of a user in a church.
	FindUserChurchRole(ctx context.Context, userID, churchID string) (*domain.UserChurch, error)

	// ListChurchUsers retrieves all memberships for a church.
	ListChurchUsers(ctx context.Context, churchID string) ([]domain.UserChurch, error)

	// UpdateUserChurchRole changes the role of an existing membership.
	UpdateUserChurchRole(ctx context.Context, userID, churchID string, role domain.UserChurchRole) error
}

// ChurchRepositoryFacade combines all church-related repository interfaces
// This is a facade for clients that need access to all operations
type ChurchRepositoryFacade interface {
	ChurchReader
	ChurchWriter
	ChurchMembershipManager
}

// ChurchRepositoryWithTx extends ChurchRepositoryFacade with transaction capabilities
type ChurchRepositoryWithTx interface {
	ChurchRepositoryFacade
	TransactionManager
}
