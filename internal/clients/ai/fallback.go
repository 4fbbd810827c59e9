package ai

// Static fallback meditations served when the text vendor is unreachable
// after all retries. One entry per emotion; Lookup falls back to the peace
// entry for anything unmapped so the caller never hits a dead end.

// FallbackMeditation is pre-written meditation content.
type FallbackMeditation struct {
	Reference       string
	Text            string
	Version         string
	MeditationGuide string
}

var fallbacks = map[string]FallbackMeditation{
	"peace": {
		Reference:       "John 14:27",
		Text:            "Peace I leave with you; my peace I give you. I do not give to you as the world gives. Do not let your hearts be troubled and do not be afraid.",
		Version:         "NIV",
		MeditationGuide: "Breathe slowly. Read the verse twice, resting on the words 'my peace I give you'. Let each exhale release what troubles you.",
	},
	"gratitude": {
		Reference:       "Psalm 136:1",
		Text:            "Give thanks to the Lord, for he is good. His love endures forever.",
		Version:         "NIV",
		MeditationGuide: "Name three things from today, however small, and give thanks for each one before reading the verse again.",
	},
	"hope": {
		Reference:       "Jeremiah 29:11",
		Text:            "For I know the plans I have for you, declares the Lord, plans to prosper you and not to harm you, plans to give you hope and a future.",
		Version:         "NIV",
		MeditationGuide: "Hold one worry about the future in mind. Read the verse slowly and place that worry inside the words 'plans to give you hope'.",
	},
	"love": {
		Reference:       "1 John 4:19",
		Text:            "We love because he first loved us.",
		Version:         "NIV",
		MeditationGuide: "Sit quietly with the shortness of this verse. Repeat it until the order of the words sinks in: His love comes first.",
	},
	"joy": {
		Reference:       "Psalm 118:24",
		Text:            "This is the day the Lord has made; let us rejoice and be glad in it.",
		Version:         "NIV",
		MeditationGuide: "Recall one moment of gladness from this week. Read the verse and receive this day, as it is, as something made.",
	},
	"seeking": {
		Reference:       "Matthew 7:7",
		Text:            "Ask and it will be given to you; seek and you will find; knock and the door will be opened to you.",
		Version:         "NIV",
		MeditationGuide: "Put your question into a single sentence. Read the verse three times, once for ask, once for seek, once for knock.",
	},
	"anxiety": {
		Reference:       "Philippians 4:6-7",
		Text:            "Do not be anxious about anything, but in every situation, by prayer and petition, with thanksgiving, present your requests to God. And the peace of God, which transcends all understanding, will guard your hearts and your minds in Christ Jesus.",
		Version:         "NIV",
		MeditationGuide: "Write down, or say aloud, the thing making you anxious. Present it as a request, then read the promise of the second sentence slowly.",
	},
	"sadness": {
		Reference:       "Psalm 34:18",
		Text:            "The Lord is close to the brokenhearted and saves those who are crushed in spirit.",
		Version:         "NIV",
		MeditationGuide: "Do not rush past your sadness. Read the verse and rest in the word 'close'. You are not asked to feel better, only to be accompanied.",
	},
	"anger": {
		Reference:       "James 1:19-20",
		Text:            "Everyone should be quick to listen, slow to speak and slow to become angry, because human anger does not produce the righteousness that God desires.",
		Version:         "NIV",
		MeditationGuide: "Breathe in for four counts, out for six. Name what angered you without justifying it, then read the verse once more.",
	},
	"fear": {
		Reference:       "Isaiah 41:10",
		Text:            "So do not fear, for I am with you; do not be dismayed, for I am your God. I will strengthen you and help you; I will uphold you with my righteous right hand.",
		Version:         "NIV",
		MeditationGuide: "Read the verse and count the promises in it. Hold each one for a full breath.",
	},
	"loneliness": {
		Reference:       "Deuteronomy 31:6",
		Text:            "Be strong and courageous. Do not be afraid or terrified because of them, for the Lord your God goes with you; he will never leave you nor forsake you.",
		Version:         "NIV",
		MeditationGuide: "Picture the place where you feel most alone. Read the verse and place the words 'goes with you' into that place.",
	},
	"guilt": {
		Reference:       "1 John 1:9",
		Text:            "If we confess our sins, he is faithful and just and will forgive us our sins and purify us from all unrighteousness.",
		Version:         "NIV",
		MeditationGuide: "Name what weighs on you honestly, without excuse. Then read the verse and accept that the sentence ends in purification, not condemnation.",
	},
	"weariness": {
		Reference:       "Matthew 11:28",
		Text:            "Come to me, all you who are weary and burdened, and I will give you rest.",
		Version:         "NIV",
		MeditationGuide: "Let your shoulders drop. Read the verse as a personal invitation addressed to you by name.",
	},
	"confusion": {
		Reference:       "Proverbs 3:5-6",
		Text:            "Trust in the Lord with all your heart and lean not on your own understanding; in all your ways submit to him, and he will make your paths straight.",
		Version:         "NIV",
		MeditationGuide: "Hold the decision confusing you loosely in mind. Read the verse and notice it does not promise clarity first, but a straight path.",
	},
	"doubt": {
		Reference:       "Mark 9:24",
		Text:            "Immediately the boy's father exclaimed, 'I do believe; help me overcome my unbelief!'",
		Version:         "NIV",
		MeditationGuide: "Make the father's prayer your own, exactly as written. Doubt spoken honestly is already a form of faith.",
	},
}

// Lookup returns the fallback meditation for an emotion, defaulting to the
// peace entry when the emotion has no dedicated content.
func Lookup(emotion string) FallbackMeditation {
	if m, ok := fallbacks[emotion]; ok {
		return m
	}
	return fallbacks["peace"]
}
