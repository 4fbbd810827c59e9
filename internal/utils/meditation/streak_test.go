package meditation_test

import (
	"testing"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	"github.com/ecclesiahq/ecclesia-backend/internal/utils/meditation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loc = time.UTC

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, loc)
}

func at(year int, month time.Month, d, hour int) time.Time {
	return time.Date(year, month, d, hour, 0, 0, 0, loc)
}

func TestComputeStreak_GraceWindow(t *testing.T) {
	sessions := []time.Time{
		at(2025, time.January, 1, 7),
		at(2025, time.January, 2, 21),
		at(2025, time.January, 3, 6),
	}

	tests := []struct {
		name        string
		today       time.Time
		wantCurrent int
	}{
		{"last session today", day(2025, time.January, 3), 3},
		{"last session yesterday still counts", day(2025, time.January, 4), 3},
		{"full day skipped breaks the streak", day(2025, time.January, 5), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := meditation.ComputeStreak(sessions, tt.today, loc)
			assert.Equal(t, tt.wantCurrent, state.CurrentStreak)
			assert.Equal(t, 3, state.LongestStreak)
			assert.Equal(t, 3, state.TotalMeditations)
			require.NotNil(t, state.LastMeditationDate)
			assert.Equal(t, day(2025, time.January, 3), *state.LastMeditationDate)
		})
	}
}

func TestComputeStreak_SameDayDeduplication(t *testing.T) {
	sessions := []time.Time{
		at(2025, time.January, 1, 6),
		at(2025, time.January, 1, 22),
		at(2025, time.January, 2, 8),
	}

	state := meditation.ComputeStreak(sessions, day(2025, time.January, 2), loc)
	assert.Equal(t, 3, state.TotalMeditations)
	assert.Equal(t, 2, state.CurrentStreak, "two same-day sessions count as one day")
	assert.Equal(t, 2, state.LongestStreak)
}

func TestComputeStreak_LongestSurvivesGap(t *testing.T) {
	sessions := []time.Time{
		// A five-day run, a gap, then a two-day run ending today.
		at(2025, time.March, 1, 9),
		at(2025, time.March, 2, 9),
		at(2025, time.March, 3, 9),
		at(2025, time.March, 4, 9),
		at(2025, time.March, 5, 9),
		at(2025, time.March, 10, 9),
		at(2025, time.March, 11, 9),
	}

	state := meditation.ComputeStreak(sessions, day(2025, time.March, 11), loc)
	assert.Equal(t, 5, state.LongestStreak)
	assert.Equal(t, 2, state.CurrentStreak)
}

func TestComputeStreak_Empty(t *testing.T) {
	state := meditation.ComputeStreak(nil, day(2025, time.January, 1), loc)
	assert.Equal(t, domain.StreakState{}, state)
	assert.Nil(t, state.LastMeditationDate)
}

func TestComputeStreak_UnsortedInput(t *testing.T) {
	sessions := []time.Time{
		at(2025, time.June, 3, 9),
		at(2025, time.June, 1, 9),
		at(2025, time.June, 2, 9),
	}
	state := meditation.ComputeStreak(sessions, day(2025, time.June, 3), loc)
	assert.Equal(t, 3, state.CurrentStreak)
}

func TestComputeStreak_LocalZoneBoundary(t *testing.T) {
	sp, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 2025-01-02 01:00 UTC is still the evening of Jan 1 in Sao Paulo
	// (UTC-3), so both sessions fall on the same local day.
	sessions := []time.Time{
		time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2025, time.January, 2, 1, 0, 0, 0, time.UTC),
	}

	today := time.Date(2025, time.January, 1, 23, 0, 0, 0, sp)
	state := meditation.ComputeStreak(sessions, today, sp)
	assert.Equal(t, 1, state.CurrentStreak)
	assert.Equal(t, 2, state.TotalMeditations)
}

func TestComputeStreak_Idempotent(t *testing.T) {
	sessions := []time.Time{at(2025, time.May, 1, 8), at(2025, time.May, 2, 8)}
	today := day(2025, time.May, 2)
	first := meditation.ComputeStreak(sessions, today, loc)
	second := meditation.ComputeStreak(sessions, today, loc)
	assert.Equal(t, first, second)
}

func TestStreakTier(t *testing.T) {
	tests := []struct {
		streak int
		want   string
	}{
		{0, "Begin your journey"},
		{1, "First step"},
		{2, "Cultivating the habit"},
		{6, "Cultivating the habit"},
		{7, "A week in communion"},
		{13, "A week in communion"},
		{14, "Growing in discipline"},
		{29, "Growing in discipline"},
		{30, "A month of constant seeking"},
		{59, "A month of constant seeking"},
		{60, "Deepening in His presence"},
		{99, "Deepening in His presence"},
		{100, "A faithful and constant walk"},
		{364, "A faithful and constant walk"},
		{365, "A year walking with Him"},
		{1000, "A year walking with Him"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, meditation.StreakTier(tt.streak), "streak %d", tt.streak)
	}
}
