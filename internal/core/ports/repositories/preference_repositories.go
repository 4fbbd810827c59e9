package repositories

import (
	"context"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
)

// PreferenceRepositoryFacade defines operations for persisted user preferences
type PreferenceRepositoryFacade interface {
	// FindPreferenceByUserID retrieves a user's preference record.
	FindPreferenceByUserID(ctx context.Context, userID string) (*domain.UserPreference, error)

	// UpsertPreference inserts or fully replaces a user's preference record.
	UpsertPreference(ctx context.Context, pref domain.UserPreference) error
}
