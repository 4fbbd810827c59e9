package dto

import (
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
)

// RecordSessionRequest defines the data needed to record a completed session.
type RecordSessionRequest struct {
	Emotion         domain.Emotion `json:"emotion" binding:"required,emotion"`
	DurationSeconds *int           `json:"durationSeconds" binding:"omitempty,min=1"`
}

// SessionFeedbackRequest carries the user's rating for a session.
type SessionFeedbackRequest struct {
	Feedback        int  `json:"feedback" binding:"required,min=1,max=5"`
	DurationSeconds *int `json:"durationSeconds" binding:"omitempty,min=1"`
}

// GenerateMeditationRequest defines the input for AI meditation generation.
type GenerateMeditationRequest struct {
	Emotion      domain.Emotion `json:"emotion" binding:"required,emotion"`
	Context      string         `json:"context" binding:"max=500"` // Optional free text from the user
	Language     string         `json:"language"`                  // BCP 47 tag; defaults to the user's preference
	IncludeAudio bool           `json:"includeAudio"`
	VoiceID      string         `json:"voiceID"` // Overrides the preferred voice when set
}

// SessionResponse defines the data returned for a meditation session.
type SessionResponse struct {
	SessionID       string         `json:"sessionID"`
	Emotion         domain.Emotion `json:"emotion"`
	UserFeedback    *int           `json:"userFeedback,omitempty"`
	DurationSeconds *int           `json:"durationSeconds,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// ToSessionResponse converts a domain.MeditationSession to its DTO.
func ToSessionResponse(s *domain.MeditationSession) SessionResponse {
	return SessionResponse{
		SessionID:       s.SessionID,
		Emotion:         s.Emotion,
		UserFeedback:    s.UserFeedback,
		DurationSeconds: s.DurationSeconds,
		CreatedAt:       s.CreatedAt,
	}
}

// ListSessionsParams defines query parameters for listing sessions.
type ListSessionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListSessionsResponse wraps a page of sessions.
type ListSessionsResponse struct {
	Sessions  []SessionResponse `json:"sessions"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListSessionsResponse converts domain sessions plus a pagination token to a DTO.
func ToListSessionsResponse(sessions []domain.MeditationSession, nextToken *string) ListSessionsResponse {
	list := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		list[i] = ToSessionResponse(&s)
	}
	return ListSessionsResponse{Sessions: list, NextToken: nextToken}
}

// StreakResponse reports the user's derived streak state plus a display tier.
type StreakResponse struct {
	CurrentStreak      int    `json:"currentStreak"`
	LongestStreak      int    `json:"longestStreak"`
	TotalMeditations   int    `json:"totalMeditations"`
	LastMeditationDate string `json:"lastMeditationDate,omitempty"` // YYYY-MM-DD
	Tier               string `json:"tier"`
}

// ToStreakResponse converts a domain.StreakState plus its tier label to a DTO.
func ToStreakResponse(s *domain.StreakState, tier string) StreakResponse {
	resp := StreakResponse{
		CurrentStreak:    s.CurrentStreak,
		LongestStreak:    s.LongestStreak,
		TotalMeditations: s.TotalMeditations,
		Tier:             tier,
	}
	if s.LastMeditationDate != nil {
		resp.LastMeditationDate = s.LastMeditationDate.Format("2006-01-02")
	}
	return resp
}

// RecommendationResponse is one suggested emotion with its reason.
type RecommendationResponse struct {
	Emotion domain.Emotion `json:"emotion"`
	Reason  string         `json:"reason"`
}

// RecommendationsResponse wraps the ordered recommendation list.
type RecommendationsResponse struct {
	Recommendations []RecommendationResponse `json:"recommendations"`
}

// ToRecommendationsResponse converts domain recommendations to a DTO.
func ToRecommendationsResponse(recs []domain.Recommendation) RecommendationsResponse {
	list := make([]RecommendationResponse, len(recs))
	for i, r := range recs {
		list[i] = RecommendationResponse{Emotion: r.Emotion, Reason: r.Reason}
	}
	return RecommendationsResponse{Recommendations: list}
}

// GeneratedMeditationResponse defines the AI-generated meditation payload.
type GeneratedMeditationResponse struct {
	Reference       string `json:"reference"`
	Text            string `json:"text"`
	MeditationGuide string `json:"meditationGuide"`
	Version         string `json:"version"`
	AudioURL        string `json:"audioUrl,omitempty"`
	AudioSeconds    int    `json:"audioSeconds,omitempty"`
	FromFallback    bool   `json:"fromFallback"`
}

// ToGeneratedMeditationResponse converts a domain.GeneratedMeditation to its DTO.
func ToGeneratedMeditationResponse(m *domain.GeneratedMeditation) GeneratedMeditationResponse {
	return GeneratedMeditationResponse{
		Reference:       m.Reference,
		Text:            m.Text,
		MeditationGuide: m.MeditationGuide,
		Version:         m.Version,
		AudioURL:        m.AudioURL,
		AudioSeconds:    m.AudioSeconds,
		FromFallback:    m.FromFallback,
	}
}
