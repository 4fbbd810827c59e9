package repositories

import (
	"context"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
)

// MeditationSessionReader defines read operations for meditation session data
type MeditationSessionReader interface {
	// FindSessionByID retrieves a specific session by its unique identifier.
	FindSessionByID(ctx context.Context, sessionID string) (*domain.MeditationSession, error)

	// ListSessionsByUserID retrieves a paginated list of a user's sessions,
	// newest first, using token-based pagination.
	ListSessionsByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.MeditationSession, *string, error)

	// FindSessionTimesByUserID retrieves the creation timestamps of every
	// session a user owns, the input for streak derivation.
	FindSessionTimesByUserID(ctx context.Context, userID string) ([]time.Time, error)

	// GetEmotionFrequencies aggregates session counts and last-used times per
	// emotion for a user.
	GetEmotionFrequencies(ctx context.Context, userID string) ([]domain.EmotionFrequency, error)
}

// MeditationSessionWriter defines write operations for meditation session data
type MeditationSessionWriter interface {
	// SaveSession persists a new meditation session.
	SaveSession(ctx context.Context, session domain.MeditationSession) error

	// UpdateSessionFeedback records the user's rating and duration for a session.
	UpdateSessionFeedback(ctx context.Context, sessionID string, feedback *int, durationSeconds *int) error
}

// MeditationRepositoryFacade combines all meditation-related repository interfaces
type MeditationRepositoryFacade interface {
	MeditationSessionReader
	MeditationSessionWriter
}
