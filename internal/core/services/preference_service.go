package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	portsrepo "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/repositories"
	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
)

const (
	defaultPreferredLanguage = "en"
)

// preferenceService manages per-user preference records.
type preferenceService struct {
	BaseService
	preferenceRepo portsrepo.PreferenceRepositoryFacade
}

// NewPreferenceService creates a new preference service.
func NewPreferenceService(repo portsrepo.PreferenceRepositoryFacade) portssvc.PreferenceSvcFacade {
	return &preferenceService{preferenceRepo: repo}
}

var _ portssvc.PreferenceSvcFacade = (*preferenceService)(nil)

func defaultPreferences(userID string) domain.UserPreference {
	return domain.UserPreference{
		UserID:            userID,
		PreferredLanguage: defaultPreferredLanguage,
		AutoplayAudio:     true,
	}
}

// GetPreferences retrieves a user's preferences, returning defaults when none
// are stored yet.
func (s *preferenceService) GetPreferences(ctx context.Context, userID string) (*domain.UserPreference, error) {
	pref, err := s.preferenceRepo.FindPreferenceByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			defaults := defaultPreferences(userID)
			return &defaults, nil
		}
		s.LogError(ctx, err, "Failed to load preferences", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return pref, nil
}

// UpdatePreferences applies a partial update; omitted fields keep their
// current (or default) value.
func (s *preferenceService) UpdatePreferences(ctx context.Context, userID string, req dto.UpdatePreferencesRequest) (*domain.UserPreference, error) {
	pref, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.OnboardingCompleted != nil {
		pref.OnboardingCompleted = *req.OnboardingCompleted
	}
	if req.PreferredLanguage != nil {
		pref.PreferredLanguage = *req.PreferredLanguage
	}
	if req.PreferredVoiceID != nil {
		pref.PreferredVoiceID = *req.PreferredVoiceID
	}
	if req.AutoplayAudio != nil {
		pref.AutoplayAudio = *req.AutoplayAudio
	}
	if req.Timezone != nil {
		if *req.Timezone != "" {
			if _, err := time.LoadLocation(*req.Timezone); err != nil {
				return nil, fmt.Errorf("%w: unknown timezone %q", apperrors.ErrValidation, *req.Timezone)
			}
		}
		pref.Timezone = *req.Timezone
	}
	pref.LastUpdatedAt = time.Now().UTC()

	if err := s.preferenceRepo.UpsertPreference(ctx, *pref); err != nil {
		s.LogError(ctx, err, "Failed to save preferences", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}

	return pref, nil
}
