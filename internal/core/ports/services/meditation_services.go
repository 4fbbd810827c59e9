package services

import (
	"context"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
)

// MeditationSessionSvc defines operations on a user's meditation history.
// Every operation is scoped to the requesting user; sessions are never
// visible across users.
type MeditationSessionSvc interface {
	// RecordSession persists a completed meditation session for the user.
	RecordSession(ctx context.Context, userID string, req dto.RecordSessionRequest) (*domain.MeditationSession, error)

	// SubmitFeedback records the user's rating for one of their own sessions.
	SubmitFeedback(ctx context.Context, userID string, sessionID string, req dto.SessionFeedbackRequest) error

	// ListSessions retrieves a paginated list of the user's sessions, newest first.
	ListSessions(ctx context.Context, userID string, params dto.ListSessionsParams) (*dto.ListSessionsResponse, error)
}

// MeditationInsightSvc defines derived read operations over session history
type MeditationInsightSvc interface {
	// GetStreak derives the user's current and longest daily streaks.
	GetStreak(ctx context.Context, userID string) (*domain.StreakState, error)

	// GetRecommendations returns three suggested emotions for the user.
	GetRecommendations(ctx context.Context, userID string) ([]domain.Recommendation, error)
}

// MeditationGeneratorSvc defines AI-backed content generation
type MeditationGeneratorSvc interface {
	// GenerateMeditation produces guided meditation content for an emotion,
	// serving static fallback content when the vendor is unavailable.
	GenerateMeditation(ctx context.Context, userID string, req dto.GenerateMeditationRequest) (*domain.GeneratedMeditation, error)
}

// MeditationSvcFacade combines all meditation-related service interfaces
type MeditationSvcFacade interface {
	MeditationSessionSvc
	MeditationInsightSvc
	MeditationGeneratorSvc
}
