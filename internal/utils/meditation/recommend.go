package meditation

import (
	"sort"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
)

// RecommendationCount is the fixed size of every recommendation set.
const RecommendationCount = 3

// Time-of-day fallback tables. "peace" leads every slot: it is the evergreen
// default the product always offers first when no history is available.
var (
	morningFallback   = []domain.Emotion{domain.EmotionPeace, domain.EmotionHope, domain.EmotionSeeking}
	afternoonFallback = []domain.Emotion{domain.EmotionPeace, domain.EmotionSeeking, domain.EmotionGratitude}
	eveningFallback   = []domain.Emotion{domain.EmotionPeace, domain.EmotionGratitude, domain.EmotionLove}
)

func fallbackForHour(hourOfDay int) []domain.Emotion {
	switch {
	case hourOfDay < 12:
		return morningFallback
	case hourOfDay < 18:
		return afternoonFallback
	default:
		return eveningFallback
	}
}

const (
	reasonTimeOfDay = "suggested for this time of day"
	reasonFrequent  = "you often seek this"
)

// Recommend selects exactly RecommendationCount emotional states to present.
// With no history the static time-of-day table applies. With history, entries
// are ranked by frequency, ties broken by most recent use and then by name
// for determinism; remaining slots are filled from the time table without
// duplicating an already selected emotion. Total function: any input yields a
// valid, non-empty set.
func Recommend(hourOfDay int, history []domain.EmotionFrequency) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, RecommendationCount)
	selected := make(map[domain.Emotion]struct{}, RecommendationCount)

	ranked := make([]domain.EmotionFrequency, 0, len(history))
	for _, h := range history {
		if h.Count > 0 && h.Emotion.IsValid() {
			ranked = append(ranked, h)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		if !ranked[i].LastUsed.Equal(ranked[j].LastUsed) {
			return ranked[i].LastUsed.After(ranked[j].LastUsed)
		}
		return ranked[i].Emotion < ranked[j].Emotion
	})

	for _, h := range ranked {
		if len(recs) == RecommendationCount {
			break
		}
		if _, dup := selected[h.Emotion]; dup {
			continue
		}
		selected[h.Emotion] = struct{}{}
		recs = append(recs, domain.Recommendation{Emotion: h.Emotion, Reason: reasonFrequent})
	}

	for _, e := range fallbackForHour(hourOfDay) {
		if len(recs) == RecommendationCount {
			break
		}
		if _, dup := selected[e]; dup {
			continue
		}
		selected[e] = struct{}{}
		recs = append(recs, domain.Recommendation{Emotion: e, Reason: reasonTimeOfDay})
	}

	// The three fallback emotions can all collide with history picks when
	// fewer than three history entries exist; top up from the full emotion
	// list so the set is always complete.
	for _, e := range domain.Emotions {
		if len(recs) == RecommendationCount {
			break
		}
		if _, dup := selected[e]; dup {
			continue
		}
		selected[e] = struct{}{}
		recs = append(recs, domain.Recommendation{Emotion: e, Reason: reasonTimeOfDay})
	}

	return recs
}
