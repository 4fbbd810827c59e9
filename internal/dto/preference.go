package dto

import (
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
)

// UpdatePreferencesRequest applies a partial update; nil fields are untouched.
type UpdatePreferencesRequest struct {
	OnboardingCompleted *bool   `json:"onboardingCompleted"`
	PreferredLanguage   *string `json:"preferredLanguage" binding:"omitempty,bcp47_language_tag"`
	PreferredVoiceID    *string `json:"preferredVoiceID"`
	AutoplayAudio       *bool   `json:"autoplayAudio"`
	Timezone            *string `json:"timezone" binding:"omitempty,timezone"`
}

// PreferenceResponse defines the data returned for user preferences.
type PreferenceResponse struct {
	OnboardingCompleted bool      `json:"onboardingCompleted"`
	PreferredLanguage   string    `json:"preferredLanguage"`
	PreferredVoiceID    string    `json:"preferredVoiceID"`
	AutoplayAudio       bool      `json:"autoplayAudio"`
	Timezone            string    `json:"timezone"`
	LastUpdatedAt       time.Time `json:"lastUpdatedAt"`
}

// ToPreferenceResponse converts a domain.UserPreference to its DTO.
func ToPreferenceResponse(p *domain.UserPreference) PreferenceResponse {
	return PreferenceResponse{
		OnboardingCompleted: p.OnboardingCompleted,
		PreferredLanguage:   p.PreferredLanguage,
		PreferredVoiceID:    p.PreferredVoiceID,
		AutoplayAudio:       p.AutoplayAudio,
		Timezone:            p.Timezone,
		LastUpdatedAt:       p.LastUpdatedAt,
	}
}
