package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	portsrepo "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/repositories"
	"github.com/ecclesiahq/ecclesia-backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMeditationRepository struct {
	BaseRepository
}

// newPgxMeditationRepository creates a new repository for meditation session data.
func newPgxMeditationRepository(pool *pgxpool.Pool) portsrepo.MeditationRepositoryFacade {
	return &PgxMeditationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxMeditationRepository implements portsrepo.MeditationRepositoryFacade
var _ portsrepo.MeditationRepositoryFacade = (*PgxMeditationRepository)(nil)

const sessionColumns = `session_id, user_id, emotion, user_feedback, duration_seconds, created_at`

func scanSession(row pgx.Row) (domain.MeditationSession, error) {
	var s domain.MeditationSession
	err := row.Scan(
		&s.SessionID,
		&s.UserID,
		&s.Emotion,
		&s.UserFeedback,
		&s.DurationSeconds,
		&s.CreatedAt,
	)
	return s, err
}

// SaveSession persists a new meditation session.
func (r *PgxMeditationRepository) SaveSession(ctx context.Context, session domain.MeditationSession) error {
	query := `
		INSERT INTO meditation_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		session.SessionID,
		session.UserID,
		session.Emotion,
		session.UserFeedback,
		session.DurationSeconds,
		session.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save meditation session "+session.SessionID, err)
	}
	return nil
}

// FindSessionByID retrieves a session by its ID.
func (r *PgxMeditationRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.MeditationSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM meditation_sessions
		WHERE session_id = $1;
	`
	session, err := scanSession(r.Pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find meditation session "+sessionID, err)
	}
	return &session, nil
}

// ListSessionsByUserID retrieves a paginated list of a user's sessions,
// newest first, using token-based pagination on creation time.
func (r *PgxMeditationRepository) ListSessionsByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.MeditationSession, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	var rows pgx.Rows
	var err error

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		query := `
			SELECT ` + sessionColumns + `
			FROM meditation_sessions
			WHERE user_id = $1 AND created_at < $2
			ORDER BY created_at DESC
			LIMIT $3;
		`
		rows, err = r.Pool.Query(ctx, query, userID, lastCreatedAt, fetchLimit)
	} else {
		query := `
			SELECT ` + sessionColumns + `
			FROM meditation_sessions
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2;
		`
		rows, err = r.Pool.Query(ctx, query, userID, fetchLimit)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query meditation sessions for user "+userID, err)
	}
	defer rows.Close()

	sessions := make([]domain.MeditationSession, 0, fetchLimit)
	for rows.Next() {
		s, scanErr := scanSession(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan meditation session row", scanErr)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating meditation session rows", err)
	}

	var nextTokenVal *string
	if len(sessions) > limit {
		last := sessions[limit-1]
		token := pagination.EncodeDateBasedToken(last.CreatedAt)
		nextTokenVal = &token
		sessions = sessions[:limit]
	}

	return sessions, nextTokenVal, nil
}

// FindSessionTimesByUserID retrieves the creation timestamps of every session
// a user owns, oldest first.
func (r *PgxMeditationRepository) FindSessionTimesByUserID(ctx context.Context, userID string) ([]time.Time, error) {
	query := `
		SELECT created_at
		FROM meditation_sessions
		WHERE user_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query session times for user "+userID, err)
	}
	defer rows.Close()

	times := []time.Time{}
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan session time row", err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating session time rows", err)
	}

	return times, nil
}

// GetEmotionFrequencies aggregates session counts and last-used times per
// emotion for a user.
func (r *PgxMeditationRepository) GetEmotionFrequencies(ctx context.Context, userID string) ([]domain.EmotionFrequency, error) {
	query := `
		SELECT emotion, COUNT(*) AS session_count, MAX(created_at) AS last_used
		FROM meditation_sessions
		WHERE user_id = $1
		GROUP BY emotion
		ORDER BY session_count DESC, last_used DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query emotion frequencies for user "+userID, err)
	}
	defer rows.Close()

	frequencies := []domain.EmotionFrequency{}
	for rows.Next() {
		var f domain.EmotionFrequency
		if err := rows.Scan(&f.Emotion, &f.Count, &f.LastUsed); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan emotion frequency row", err)
		}
		frequencies = append(frequencies, f)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating emotion frequency rows", err)
	}

	return frequencies, nil
}

// UpdateSessionFeedback records the user's rating and optionally a corrected
// duration for a session.
func (r *PgxMeditationRepository) UpdateSessionFeedback(ctx context.Context, sessionID string, feedback *int, durationSeconds *int) error {
	query := `
		UPDATE meditation_sessions
		SET user_feedback = $2,
		    duration_seconds = COALESCE($3, duration_seconds)
		WHERE session_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, sessionID, feedback, durationSeconds)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update feedback for session "+sessionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("meditation session " + sessionID + " not found for update")
	}
	return nil
}
