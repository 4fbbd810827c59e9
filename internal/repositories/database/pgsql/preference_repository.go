package pgsql

import (
	"context"
	"errors"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	portsrepo "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPreferenceRepository struct {
	db *pgxpool.Pool
}

// newPgxPreferenceRepository creates a new repository for user preference data.
func newPgxPreferenceRepository(db *pgxpool.Pool) portsrepo.PreferenceRepositoryFacade {
	return &PgxPreferenceRepository{db: db}
}

// Ensure PgxPreferenceRepository implements portsrepo.PreferenceRepositoryFacade
var _ portsrepo.PreferenceRepositoryFacade = (*PgxPreferenceRepository)(nil)

// FindPreferenceByUserID retrieves a user's preference record.
func (r *PgxPreferenceRepository) FindPreferenceByUserID(ctx context.Context, userID string) (*domain.UserPreference, error) {
	query := `
		SELECT user_id, onboarding_completed, preferred_language, preferred_voice_id, autoplay_audio, timezone, last_updated_at
		FROM user_preferences
		WHERE user_id = $1;
	`
	var pref domain.UserPreference
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&pref.UserID,
		&pref.OnboardingCompleted,
		&pref.PreferredLanguage,
		&pref.PreferredVoiceID,
		&pref.AutoplayAudio,
		&pref.Timezone,
		&pref.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find preferences for user "+userID, err)
	}
	return &pref, nil
}

// UpsertPreference inserts or fully replaces a user's preference record.
func (r *PgxPreferenceRepository) UpsertPreference(ctx context.Context, pref domain.UserPreference) error {
	query := `
		INSERT INTO user_preferences (user_id, onboarding_completed, preferred_language, preferred_voice_id, autoplay_audio, timezone, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			onboarding_completed = EXCLUDED.onboarding_completed,
			preferred_language = EXCLUDED.preferred_language,
			preferred_voice_id = EXCLUDED.preferred_voice_id,
			autoplay_audio = EXCLUDED.autoplay_audio,
			timezone = EXCLUDED.timezone,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	_, err := r.db.Exec(ctx, query,
		pref.UserID,
		pref.OnboardingCompleted,
		pref.PreferredLanguage,
		pref.PreferredVoiceID,
		pref.AutoplayAudio,
		pref.Timezone,
		pref.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert preferences for user "+pref.UserID, err)
	}
	return nil
}
