package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	"github.com/ecclesiahq/ecclesia-backend/internal/clients/ai"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	portsrepo "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/repositories"
	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
	"github.com/ecclesiahq/ecclesia-backend/internal/utils/meditation"
)

const defaultMeditationLanguage = "en"

// MeditationVendor is the slice of the AI client the meditation service needs.
type MeditationVendor interface {
	Generate(ctx context.Context, req ai.GenerateRequest) (ai.GenerateResponse, error)
	Synthesize(ctx context.Context, req ai.SynthesizeRequest) (ai.SynthesizeResponse, error)
}

// meditationService manages a user's meditation history and AI generation.
// All operations are scoped to the requesting user.
type meditationService struct {
	BaseService
	meditationRepo portsrepo.MeditationRepositoryFacade
	preferenceSvc  portssvc.PreferenceSvcFacade
	vendor         MeditationVendor
	loc            *time.Location
	now            func() time.Time
}

// MeditationServiceOption is a functional option for configuring the meditation service
type MeditationServiceOption func(*meditationService)

// WithMeditationLocation sets the fallback timezone for calendar-day streak
// math, used when the user has no stored timezone preference.
func WithMeditationLocation(loc *time.Location) MeditationServiceOption {
	return func(s *meditationService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithMeditationClock overrides the wall clock, for tests.
func WithMeditationClock(now func() time.Time) MeditationServiceOption {
	return func(s *meditationService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMeditationService creates a new meditation service. vendor may be nil,
// in which case generation always serves fallback content.
func NewMeditationService(repo portsrepo.MeditationRepositoryFacade, preferenceSvc portssvc.PreferenceSvcFacade, vendor MeditationVendor, options ...MeditationServiceOption) portssvc.MeditationSvcFacade {
	svc := &meditationService{
		meditationRepo: repo,
		preferenceSvc:  preferenceSvc,
		vendor:         vendor,
		loc:            time.UTC,
		now:            time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.MeditationSvcFacade = (*meditationService)(nil)

// RecordSession persists a completed meditation session for the user.
func (s *meditationService) RecordSession(ctx context.Context, userID string, req dto.RecordSessionRequest) (*domain.MeditationSession, error) {
	if !req.Emotion.IsValid() {
		return nil, fmt.Errorf("%w: unknown emotion %q", apperrors.ErrValidation, req.Emotion)
	}

	session := domain.MeditationSession{
		SessionID:       uuid.NewString(),
		UserID:          userID,
		Emotion:         req.Emotion,
		DurationSeconds: req.DurationSeconds,
		CreatedAt:       s.now().UTC(),
	}

	if err := s.meditationRepo.SaveSession(ctx, session); err != nil {
		s.LogError(ctx, err, "Failed to save meditation session", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	s.LogInfo(ctx, "Meditation session recorded", slog.String("session_id", session.SessionID), slog.String("emotion", string(req.Emotion)))
	return &session, nil
}

// SubmitFeedback records the user's rating for one of their own sessions.
func (s *meditationService) SubmitFeedback(ctx context.Context, userID string, sessionID string, req dto.SessionFeedbackRequest) error {
	session, err := s.meditationRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find session for feedback", slog.String("session_id", sessionID))
		}
		return err
	}
	if session.UserID != userID {
		return apperrors.ErrNotFound // Obscure existence
	}

	if req.Feedback < 1 || req.Feedback > 5 {
		return fmt.Errorf("%w: feedback must be between 1 and 5", apperrors.ErrValidation)
	}

	feedback := req.Feedback
	if err := s.meditationRepo.UpdateSessionFeedback(ctx, sessionID, &feedback, req.DurationSeconds); err != nil {
		s.LogError(ctx, err, "Failed to update session feedback", slog.String("session_id", sessionID))
		return fmt.Errorf("failed to record feedback: %w", err)
	}
	return nil
}

// ListSessions retrieves a paginated list of the user's sessions, newest first.
func (s *meditationService) ListSessions(ctx context.Context, userID string, params dto.ListSessionsParams) (*dto.ListSessionsResponse, error) {
	sessions, nextToken, err := s.meditationRepo.ListSessionsByUserID(ctx, userID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list meditation sessions", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	resp := dto.ToListSessionsResponse(sessions, nextToken)
	return &resp, nil
}

// userLocation resolves the zone for calendar-day math: the user's stored
// timezone preference when set and loadable, the service default otherwise.
func (s *meditationService) userLocation(ctx context.Context, userID string) *time.Location {
	pref, err := s.preferenceSvc.GetPreferences(ctx, userID)
	if err != nil || pref.Timezone == "" {
		return s.loc
	}
	loc, err := time.LoadLocation(pref.Timezone)
	if err != nil {
		s.GetLogger(ctx).Warn("Stored timezone is not loadable, using default zone",
			slog.String("user_id", userID),
			slog.String("timezone", pref.Timezone))
		return s.loc
	}
	return loc
}

// GetStreak derives the user's streak state from their session history,
// bucketed into calendar days in the user's own timezone. Never stored:
// always recomputed so clock or timezone fixes self-heal.
func (s *meditationService) GetStreak(ctx context.Context, userID string) (*domain.StreakState, error) {
	times, err := s.meditationRepo.FindSessionTimesByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch session times for streak", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to derive streak: %w", err)
	}

	state := meditation.ComputeStreak(times, s.now(), s.userLocation(ctx, userID))
	return &state, nil
}

// GetRecommendations returns three suggested emotions based on the hour of
// day and the user's history.
func (s *meditationService) GetRecommendations(ctx context.Context, userID string) ([]domain.Recommendation, error) {
	history, err := s.meditationRepo.GetEmotionFrequencies(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch emotion frequencies", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to derive recommendations: %w", err)
	}

	hour := s.now().In(s.userLocation(ctx, userID)).Hour()
	return meditation.Recommend(hour, history), nil
}

// GenerateMeditation produces guided meditation content for an emotion. Vendor
// failures after retries degrade to static fallback content rather than an
// error; audio synthesis failures degrade to text-only output.
func (s *meditationService) GenerateMeditation(ctx context.Context, userID string, req dto.GenerateMeditationRequest) (*domain.GeneratedMeditation, error) {
	if !req.Emotion.IsValid() {
		return nil, fmt.Errorf("%w: unknown emotion %q", apperrors.ErrValidation, req.Emotion)
	}

	language := req.Language
	voiceID := req.VoiceID
	if language == "" || (req.IncludeAudio && voiceID == "") {
		if pref, err := s.preferenceSvc.GetPreferences(ctx, userID); err == nil {
			if language == "" {
				language = pref.PreferredLanguage
			}
			if voiceID == "" {
				voiceID = pref.PreferredVoiceID
			}
		}
	}
	if language == "" {
		language = defaultMeditationLanguage
	}

	result := s.generateText(ctx, req, language)

	if req.IncludeAudio && s.vendor != nil {
		audio, err := s.vendor.Synthesize(ctx, ai.SynthesizeRequest{Text: result.Text, VoiceID: voiceID})
		if err != nil {
			s.LogError(ctx, err, "Voice synthesis failed, returning text only",
				slog.String("user_id", userID),
				slog.String("emotion", string(req.Emotion)))
		} else {
			result.AudioURL = audio.AudioURL
			result.AudioSeconds = audio.DurationSeconds
		}
	}

	return &result, nil
}

func (s *meditationService) generateText(ctx context.Context, req dto.GenerateMeditationRequest, language string) domain.GeneratedMeditation {
	if s.vendor != nil {
		resp, err := s.vendor.Generate(ctx, ai.GenerateRequest{
			Emotion:  string(req.Emotion),
			Context:  req.Context,
			Language: language,
		})
		if err == nil {
			return domain.GeneratedMeditation{
				Reference:       resp.Reference,
				Text:            resp.Text,
				MeditationGuide: resp.MeditationGuide,
				Version:         resp.Version,
			}
		}
		s.LogError(ctx, err, "Meditation generation failed, serving fallback content",
			slog.String("emotion", string(req.Emotion)))
	}

	fb := ai.Lookup(string(req.Emotion))
	return domain.GeneratedMeditation{
		Reference:       fb.Reference,
		Text:            fb.Text,
		MeditationGuide: fb.MeditationGuide,
		Version:         fb.Version,
		FromFallback:    true,
	}
}
