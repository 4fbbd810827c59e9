package services

import (
	"context"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
)

// PreferenceSvcFacade defines operations for per-user preferences
type PreferenceSvcFacade interface {
	// GetPreferences retrieves a user's preferences, returning defaults when
	// none are stored yet.
	GetPreferences(ctx context.Context, userID string) (*domain.UserPreference, error)

	// UpdatePreferences applies a partial update to a user's preferences.
	UpdatePreferences(ctx context.Context, userID string, req dto.UpdatePreferencesRequest) (*domain.UserPreference, error)
}
