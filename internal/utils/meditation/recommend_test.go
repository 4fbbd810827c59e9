package meditation_test

import (
	"testing"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	"github.com/ecclesiahq/ecclesia-backend/internal/utils/meditation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emotions(recs []domain.Recommendation) []domain.Emotion {
	out := make([]domain.Emotion, len(recs))
	for i, r := range recs {
		out[i] = r.Emotion
	}
	return out
}

func TestRecommend_MorningFallback(t *testing.T) {
	recs := meditation.Recommend(9, nil)
	require.Len(t, recs, 3)
	assert.Equal(t, []domain.Emotion{domain.EmotionPeace, domain.EmotionHope, domain.EmotionSeeking}, emotions(recs))
	assert.Equal(t, domain.EmotionPeace, recs[0].Emotion, "peace is always first in the fallback")
}

func TestRecommend_AfternoonFallback(t *testing.T) {
	recs := meditation.Recommend(14, []domain.EmotionFrequency{})
	require.Len(t, recs, 3)
	assert.Equal(t, []domain.Emotion{domain.EmotionPeace, domain.EmotionSeeking, domain.EmotionGratitude}, emotions(recs))
}

func TestRecommend_EveningFallback(t *testing.T) {
	recs := meditation.Recommend(20, nil)
	require.Len(t, recs, 3)
	got := emotions(recs)
	assert.Equal(t, domain.EmotionPeace, got[0])
	assert.Contains(t, got, domain.EmotionGratitude)
	assert.Contains(t, got, domain.EmotionLove)
}

func TestRecommend_HistoryRankedByFrequency(t *testing.T) {
	now := time.Now()
	history := []domain.EmotionFrequency{
		{Emotion: domain.EmotionAnxiety, Count: 5, LastUsed: now.Add(-time.Hour)},
		{Emotion: domain.EmotionGratitude, Count: 9, LastUsed: now.Add(-48 * time.Hour)},
		{Emotion: domain.EmotionFear, Count: 2, LastUsed: now},
	}

	recs := meditation.Recommend(9, history)
	require.Len(t, recs, 3)
	assert.Equal(t, []domain.Emotion{domain.EmotionGratitude, domain.EmotionAnxiety, domain.EmotionFear}, emotions(recs))
}

func TestRecommend_TieBrokenByRecency(t *testing.T) {
	now := time.Now()
	history := []domain.EmotionFrequency{
		{Emotion: domain.EmotionHope, Count: 4, LastUsed: now.Add(-72 * time.Hour)},
		{Emotion: domain.EmotionJoy, Count: 4, LastUsed: now},
	}

	recs := meditation.Recommend(9, history)
	require.Len(t, recs, 3)
	assert.Equal(t, domain.EmotionJoy, recs[0].Emotion)
	assert.Equal(t, domain.EmotionHope, recs[1].Emotion)
}

func TestRecommend_PartialHistoryFilledFromFallback(t *testing.T) {
	history := []domain.EmotionFrequency{
		{Emotion: domain.EmotionPeace, Count: 7, LastUsed: time.Now()},
	}

	recs := meditation.Recommend(9, history)
	require.Len(t, recs, 3)
	got := emotions(recs)
	assert.Equal(t, domain.EmotionPeace, got[0])
	// Morning fallback fills the rest without duplicating peace.
	assert.Equal(t, domain.EmotionHope, got[1])
	assert.Equal(t, domain.EmotionSeeking, got[2])
}

func TestRecommend_NoDuplicates(t *testing.T) {
	history := []domain.EmotionFrequency{
		{Emotion: domain.EmotionPeace, Count: 3, LastUsed: time.Now()},
		{Emotion: domain.EmotionPeace, Count: 2, LastUsed: time.Now()},
	}
	recs := meditation.Recommend(20, history)
	require.Len(t, recs, 3)
	seen := map[domain.Emotion]bool{}
	for _, r := range recs {
		assert.False(t, seen[r.Emotion], "duplicate emotion %s", r.Emotion)
		seen[r.Emotion] = true
	}
}

func TestRecommend_IgnoresInvalidAndZeroCountHistory(t *testing.T) {
	history := []domain.EmotionFrequency{
		{Emotion: domain.Emotion("rage-quit"), Count: 99, LastUsed: time.Now()},
		{Emotion: domain.EmotionLove, Count: 0, LastUsed: time.Now()},
	}
	recs := meditation.Recommend(9, history)
	require.Len(t, recs, 3)
	assert.Equal(t, []domain.Emotion{domain.EmotionPeace, domain.EmotionHope, domain.EmotionSeeking}, emotions(recs))
}

func TestRecommend_Idempotent(t *testing.T) {
	history := []domain.EmotionFrequency{
		{Emotion: domain.EmotionGuilt, Count: 2, LastUsed: time.Unix(1700000000, 0)},
	}
	first := meditation.Recommend(15, history)
	second := meditation.Recommend(15, history)
	assert.Equal(t, first, second)
}
