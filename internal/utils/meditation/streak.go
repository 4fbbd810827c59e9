// Package meditation holds the pure progress-tracking rules for the guided
// meditation feature: streak computation and emotion recommendation. "Today"
// and the hour of day are always explicit parameters; nothing here reads the
// wall clock.
package meditation

import (
	"sort"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
)

// localDate truncates t to a calendar date in loc.
func localDate(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// ComputeStreak derives a user's streak state from raw session timestamps.
// Multiple sessions on the same local calendar day count once toward streak
// continuity but each adds to TotalMeditations. The current streak is the run
// ending at the most recent date, valid only while that date is today or
// yesterday: a streak is not broken until a full day has been skipped.
func ComputeStreak(sessionTimes []time.Time, today time.Time, loc *time.Location) domain.StreakState {
	state := domain.StreakState{TotalMeditations: len(sessionTimes)}
	if len(sessionTimes) == 0 {
		return state
	}

	seen := make(map[time.Time]struct{}, len(sessionTimes))
	days := make([]time.Time, 0, len(sessionTimes))
	for _, ts := range sessionTimes {
		day := localDate(ts, loc)
		if _, ok := seen[day]; !ok {
			seen[day] = struct{}{}
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest := 1
	run := 1
	for i := 1; i < len(days); i++ {
		// AddDate rather than a 24h delta: local days differ by 23 or 25
		// hours across DST transitions.
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	state.LongestStreak = longest

	last := days[len(days)-1]
	state.LastMeditationDate = &last

	// Grace window: the run ending at the last date stays current while that
	// date is today or yesterday in the user's zone.
	todayDate := localDate(today, loc)
	if todayDate.Equal(last) || todayDate.Equal(last.AddDate(0, 0, 1)) {
		state.CurrentStreak = run
	}

	return state
}

// StreakTier maps a current streak length to its spiritual-language display
// tier. Lower bounds are inclusive, upper bounds exclusive.
func StreakTier(currentStreak int) string {
	switch {
	case currentStreak <= 0:
		return "Begin your journey"
	case currentStreak == 1:
		return "First step"
	case currentStreak < 7:
		return "Cultivating the habit"
	case currentStreak < 14:
		return "A week in communion"
	case currentStreak < 30:
		return "Growing in discipline"
	case currentStreak < 60:
		return "A month of constant seeking"
	case currentStreak < 100:
		return "Deepening in His presence"
	case currentStreak < 365:
		return "A faithful and constant walk"
	default:
		return "A year walking with Him"
	}
}
