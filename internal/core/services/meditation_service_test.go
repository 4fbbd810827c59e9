package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	"github.com/ecclesiahq/ecclesia-backend/internal/clients/ai"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	portsrepo "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/repositories"
	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock MeditationRepository ---
type MockMeditationRepository struct {
	mock.Mock
}

var _ portsrepo.MeditationRepositoryFacade = (*MockMeditationRepository)(nil)

func (m *MockMeditationRepository) SaveSession(ctx context.Context, session domain.MeditationSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockMeditationRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.MeditationSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MeditationSession), args.Error(1)
}

func (m *MockMeditationRepository) ListSessionsByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.MeditationSession, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.MeditationSession), returnedNextToken, args.Error(2)
}

func (m *MockMeditationRepository) FindSessionTimesByUserID(ctx context.Context, userID string) ([]time.Time, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockMeditationRepository) GetEmotionFrequencies(ctx context.Context, userID string) ([]domain.EmotionFrequency, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmotionFrequency), args.Error(1)
}

func (m *MockMeditationRepository) UpdateSessionFeedback(ctx context.Context, sessionID string, feedback *int, durationSeconds *int) error {
	args := m.Called(ctx, sessionID, feedback, durationSeconds)
	return args.Error(0)
}

// --- Mock PreferenceService ---
type MockPreferenceService struct {
	mock.Mock
}

var _ portssvc.PreferenceSvcFacade = (*MockPreferenceService)(nil)

func (m *MockPreferenceService) GetPreferences(ctx context.Context, userID string) (*domain.UserPreference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPreference), args.Error(1)
}

func (m *MockPreferenceService) UpdatePreferences(ctx context.Context, userID string, req dto.UpdatePreferencesRequest) (*domain.UserPreference, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPreference), args.Error(1)
}

// --- Mock MeditationVendor ---
type MockMeditationVendor struct {
	mock.Mock
}

var _ services.MeditationVendor = (*MockMeditationVendor)(nil)

func (m *MockMeditationVendor) Generate(ctx context.Context, req ai.GenerateRequest) (ai.GenerateResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ai.GenerateResponse), args.Error(1)
}

func (m *MockMeditationVendor) Synthesize(ctx context.Context, req ai.SynthesizeRequest) (ai.SynthesizeResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ai.SynthesizeResponse), args.Error(1)
}

// --- Test Suite Setup ---
type MeditationServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockMeditationRepository
	mockPrefSvc *MockPreferenceService
	mockVendor  *MockMeditationVendor
	service     portssvc.MeditationSvcFacade
	userID      string
	fixedNow    time.Time
}

func (suite *MeditationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockMeditationRepository)
	suite.mockPrefSvc = new(MockPreferenceService)
	suite.mockVendor = new(MockMeditationVendor)
	suite.userID = uuid.NewString()
	suite.fixedNow = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

	suite.service = services.NewMeditationService(
		suite.mockRepo,
		suite.mockPrefSvc,
		suite.mockVendor,
		services.WithMeditationClock(func() time.Time { return suite.fixedNow }),
	)
}

// --- Test Cases ---

func (suite *MeditationServiceTestSuite) TestRecordSession_Success() {
	ctx := context.Background()
	duration := 300
	req := dto.RecordSessionRequest{Emotion: domain.EmotionGratitude, DurationSeconds: &duration}

	suite.mockRepo.On("SaveSession", ctx, mock.MatchedBy(func(s domain.MeditationSession) bool {
		return s.UserID == suite.userID && s.Emotion == domain.EmotionGratitude && s.CreatedAt.Equal(suite.fixedNow)
	})).Return(nil).Once()

	session, err := suite.service.RecordSession(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(session)
	suite.NotEmpty(session.SessionID)
	suite.Equal(domain.EmotionGratitude, session.Emotion)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MeditationServiceTestSuite) TestRecordSession_UnknownEmotion() {
	ctx := context.Background()
	req := dto.RecordSessionRequest{Emotion: domain.Emotion("ennui")}

	_, err := suite.service.RecordSession(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSession", mock.Anything, mock.Anything)
}

func (suite *MeditationServiceTestSuite) TestSubmitFeedback_NotOwner() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	otherUsersSession := &domain.MeditationSession{
		SessionID: sessionID,
		UserID:    uuid.NewString(),
		Emotion:   domain.EmotionPeace,
	}

	suite.mockRepo.On("FindSessionByID", ctx, sessionID).Return(otherUsersSession, nil).Once()

	err := suite.service.SubmitFeedback(ctx, suite.userID, sessionID, dto.SessionFeedbackRequest{Feedback: 4})

	suite.Require().Error(err)
	// Existence is obscured: not-owner reads as not-found.
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateSessionFeedback", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MeditationServiceTestSuite) TestSubmitFeedback_Success() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	ownSession := &domain.MeditationSession{
		SessionID: sessionID,
		UserID:    suite.userID,
		Emotion:   domain.EmotionHope,
	}
	feedback := 5

	suite.mockRepo.On("FindSessionByID", ctx, sessionID).Return(ownSession, nil).Once()
	suite.mockRepo.On("UpdateSessionFeedback", ctx, sessionID, &feedback, (*int)(nil)).Return(nil).Once()

	err := suite.service.SubmitFeedback(ctx, suite.userID, sessionID, dto.SessionFeedbackRequest{Feedback: feedback})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MeditationServiceTestSuite) TestGetStreak_ConsecutiveDays() {
	ctx := context.Background()
	times := []time.Time{
		suite.fixedNow.Add(-1 * time.Hour),       // today
		suite.fixedNow.Add(-26 * time.Hour),      // yesterday
		suite.fixedNow.Add(-4 * 24 * time.Hour),  // gap before these
		suite.fixedNow.Add(-5 * 24 * time.Hour),
	}

	suite.mockRepo.On("FindSessionTimesByUserID", ctx, suite.userID).Return(times, nil).Once()
	suite.mockPrefSvc.On("GetPreferences", ctx, suite.userID).Return(&domain.UserPreference{UserID: suite.userID}, nil).Once()

	streak, err := suite.service.GetStreak(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, streak.CurrentStreak)
	suite.Equal(2, streak.LongestStreak)
	suite.Equal(4, streak.TotalMeditations)
}

func (suite *MeditationServiceTestSuite) TestGetStreak_UsesPreferredTimezone() {
	ctx := context.Background()
	// 02:00 UTC on Jan 2 is still the evening of Jan 1 in Sao Paulo (UTC-3).
	times := []time.Time{time.Date(2025, time.January, 2, 2, 0, 0, 0, time.UTC)}
	suite.fixedNow = time.Date(2025, time.January, 3, 4, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindSessionTimesByUserID", ctx, suite.userID).Return(times, nil).Twice()

	// Without a stored timezone the session reads as Jan 2 and the streak is
	// alive on Jan 3.
	suite.mockPrefSvc.On("GetPreferences", ctx, suite.userID).Return(&domain.UserPreference{UserID: suite.userID}, nil).Once()
	streak, err := suite.service.GetStreak(ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(1, streak.CurrentStreak)

	// On the user's own calendar the session was Jan 1 and Jan 2 was skipped
	// entirely, so the streak is broken.
	suite.mockPrefSvc.On("GetPreferences", ctx, suite.userID).Return(&domain.UserPreference{
		UserID:   suite.userID,
		Timezone: "America/Sao_Paulo",
	}, nil).Once()
	streak, err = suite.service.GetStreak(ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(0, streak.CurrentStreak)
	suite.Equal(1, streak.LongestStreak)
	suite.mockPrefSvc.AssertExpectations(suite.T())
}

func (suite *MeditationServiceTestSuite) TestGetStreak_UnloadableTimezoneFallsBack() {
	ctx := context.Background()
	times := []time.Time{suite.fixedNow.Add(-1 * time.Hour)}

	suite.mockRepo.On("FindSessionTimesByUserID", ctx, suite.userID).Return(times, nil).Once()
	suite.mockPrefSvc.On("GetPreferences", ctx, suite.userID).Return(&domain.UserPreference{
		UserID:   suite.userID,
		Timezone: "Atlantis/Sunken_City",
	}, nil).Once()

	streak, err := suite.service.GetStreak(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, streak.CurrentStreak)
}

func (suite *MeditationServiceTestSuite) TestGetRecommendations() {
	ctx := context.Background()
	history := []domain.EmotionFrequency{
		{Emotion: domain.EmotionAnxiety, Count: 7, LastUsed: suite.fixedNow.Add(-24 * time.Hour)},
	}

	suite.mockRepo.On("GetEmotionFrequencies", ctx, suite.userID).Return(history, nil).Once()
	suite.mockPrefSvc.On("GetPreferences", ctx, suite.userID).Return(&domain.UserPreference{UserID: suite.userID}, nil).Once()

	recs, err := suite.service.GetRecommendations(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Len(recs, 3)
	for _, rec := range recs {
		suite.True(rec.Emotion.IsValid())
		suite.NotEmpty(rec.Reason)
	}
}

func (suite *MeditationServiceTestSuite) TestGenerateMeditation_VendorSuccess() {
	ctx := context.Background()
	req := dto.GenerateMeditationRequest{Emotion: domain.EmotionAnxiety, Language: "en"}

	suite.mockVendor.On("Generate", ctx, ai.GenerateRequest{
		Emotion:  string(domain.EmotionAnxiety),
		Language: "en",
	}).Return(ai.GenerateResponse{
		Reference:       "Philippians 4:6-7",
		Text:            "Do not be anxious about anything...",
		MeditationGuide: "Breathe slowly and hand each worry over.",
		Version:         "NIV",
	}, nil).Once()

	result, err := suite.service.GenerateMeditation(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal("Philippians 4:6-7", result.Reference)
	suite.False(result.FromFallback)
	suite.Empty(result.AudioURL)
	suite.mockVendor.AssertExpectations(suite.T())
}

func (suite *MeditationServiceTestSuite) TestGenerateMeditation_VendorFailureFallsBack() {
	ctx := context.Background()
	req := dto.GenerateMeditationRequest{Emotion: domain.EmotionFear, Language: "en"}

	suite.mockVendor.On("Generate", ctx, mock.AnythingOfType("ai.GenerateRequest")).Return(ai.GenerateResponse{}, assert.AnError).Once()

	result, err := suite.service.GenerateMeditation(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.True(result.FromFallback)
	suite.NotEmpty(result.Reference)
	suite.NotEmpty(result.Text)
}

func (suite *MeditationServiceTestSuite) TestGenerateMeditation_AudioFailureReturnsTextOnly() {
	ctx := context.Background()
	req := dto.GenerateMeditationRequest{Emotion: domain.EmotionJoy, Language: "en", IncludeAudio: true, VoiceID: "voice-1"}

	suite.mockVendor.On("Generate", ctx, mock.AnythingOfType("ai.GenerateRequest")).Return(ai.GenerateResponse{
		Reference: "Psalm 16:11",
		Text:      "You make known to me the path of life...",
		Version:   "ESV",
	}, nil).Once()
	suite.mockVendor.On("Synthesize", ctx, mock.AnythingOfType("ai.SynthesizeRequest")).Return(ai.SynthesizeResponse{}, assert.AnError).Once()

	result, err := suite.service.GenerateMeditation(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal("Psalm 16:11", result.Reference)
	suite.Empty(result.AudioURL)
	suite.mockVendor.AssertExpectations(suite.T())
}

func (suite *MeditationServiceTestSuite) TestGenerateMeditation_FillsLanguageFromPreferences() {
	ctx := context.Background()
	req := dto.GenerateMeditationRequest{Emotion: domain.EmotionPeace}

	suite.mockPrefSvc.On("GetPreferences", ctx, suite.userID).Return(&domain.UserPreference{
		UserID:            suite.userID,
		PreferredLanguage: "pt",
	}, nil).Once()
	suite.mockVendor.On("Generate", ctx, mock.MatchedBy(func(r ai.GenerateRequest) bool {
		return r.Language == "pt"
	})).Return(ai.GenerateResponse{Reference: "Salmos 23:1"}, nil).Once()

	_, err := suite.service.GenerateMeditation(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.mockPrefSvc.AssertExpectations(suite.T())
	suite.mockVendor.AssertExpectations(suite.T())
}

func (suite *MeditationServiceTestSuite) TestGenerateMeditation_NilVendorServesFallback() {
	ctx := context.Background()
	svc := services.NewMeditationService(suite.mockRepo, suite.mockPrefSvc, nil)

	result, err := svc.GenerateMeditation(ctx, suite.userID, dto.GenerateMeditationRequest{Emotion: domain.EmotionSadness, Language: "en"})

	suite.Require().NoError(err)
	suite.True(result.FromFallback)
	suite.NotEmpty(result.Text)
}

func (suite *MeditationServiceTestSuite) TestGenerateMeditation_UnknownEmotion() {
	ctx := context.Background()

	_, err := suite.service.GenerateMeditation(ctx, suite.userID, dto.GenerateMeditationRequest{Emotion: domain.Emotion("nostalgia")})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestMeditationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MeditationServiceTestSuite))
}
