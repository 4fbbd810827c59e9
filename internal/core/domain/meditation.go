package domain

import "time"

// Emotion is the emotional state a user brings into a meditation session.
// The set is fixed; the AI vendor prompt and the recommendation selector both
// key off these values.
type Emotion string

const (
	EmotionPeace      Emotion = "peace"
	EmotionGratitude  Emotion = "gratitude"
	EmotionHope       Emotion = "hope"
	EmotionLove       Emotion = "love"
	EmotionJoy        Emotion = "joy"
	EmotionSeeking    Emotion = "seeking"
	EmotionAnxiety    Emotion = "anxiety"
	EmotionSadness    Emotion = "sadness"
	EmotionAnger      Emotion = "anger"
	EmotionFear       Emotion = "fear"
	EmotionLoneliness Emotion = "loneliness"
	EmotionGuilt      Emotion = "guilt"
	EmotionWeariness  Emotion = "weariness"
	EmotionConfusion  Emotion = "confusion"
	EmotionDoubt      Emotion = "doubt"
)

// Emotions lists every valid emotion value.
var Emotions = []Emotion{
	EmotionPeace, EmotionGratitude, EmotionHope, EmotionLove, EmotionJoy,
	EmotionSeeking, EmotionAnxiety, EmotionSadness, EmotionAnger, EmotionFear,
	EmotionLoneliness, EmotionGuilt, EmotionWeariness, EmotionConfusion,
	EmotionDoubt,
}

// IsValid reports whether e is one of the fixed emotion values.
func (e Emotion) IsValid() bool {
	for _, known := range Emotions {
		if e == known {
			return true
		}
	}
	return false
}

// MeditationSession is one completed meditation event, owned exclusively by
// the user who created it.
type MeditationSession struct {
	SessionID       string    `json:"sessionID"` // Primary Key (e.g., UUID)
	UserID          string    `json:"userID"`
	Emotion         Emotion   `json:"emotion"`
	UserFeedback    *int      `json:"userFeedback,omitempty"`    // Optional 1-5 rating
	DurationSeconds *int      `json:"durationSeconds,omitempty"` // Optional
	CreatedAt       time.Time `json:"createdAt"`
}

// StreakState is derived from a user's session history, never stored
// authoritatively.
type StreakState struct {
	CurrentStreak      int        `json:"currentStreak"`
	LongestStreak      int        `json:"longestStreak"`
	TotalMeditations   int        `json:"totalMeditations"`
	LastMeditationDate *time.Time `json:"lastMeditationDate,omitempty"`
}

// EmotionFrequency summarises how often a user has meditated on an emotion,
// used to rank recommendations.
type EmotionFrequency struct {
	Emotion  Emotion   `json:"emotion"`
	Count    int       `json:"count"`
	LastUsed time.Time `json:"lastUsed"`
}

// Recommendation is one suggested emotional state with a display reason.
type Recommendation struct {
	Emotion Emotion `json:"emotion"`
	Reason  string  `json:"reason"`
}

// GeneratedMeditation is the AI vendor output for a guided meditation.
type GeneratedMeditation struct {
	Reference       string `json:"reference"` // Scripture reference, e.g. "Psalm 23:1-3"
	Text            string `json:"text"`
	MeditationGuide string `json:"meditationGuide"`
	Version         string `json:"version"` // Bible translation
	AudioURL        string `json:"audioUrl,omitempty"`
	AudioSeconds    int    `json:"audioSeconds,omitempty"`
	FromFallback    bool   `json:"fromFallback"` // True when static content was served
}
