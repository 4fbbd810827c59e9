package domain

import "time"

// UserPreference is the persisted per-user preference record. It replaces the
// process-local flags the web client used to keep: every field is explicit
// and keyed by user id.
type UserPreference struct {
	UserID              string    `json:"userID"`
	OnboardingCompleted bool      `json:"onboardingCompleted"`
	PreferredLanguage   string    `json:"preferredLanguage"` // BCP 47 tag, e.g. "pt-BR"
	PreferredVoiceID    string    `json:"preferredVoiceID"`  // Voice-synthesis vendor voice
	Timezone            string    `json:"timezone"`          // IANA zone name, e.g. "America/Sao_Paulo"; empty means UTC
	AutoplayAudio       bool      `json:"autoplayAudio"`
	LastUpdatedAt       time.Time `json:"lastUpdatedAt"`
}
