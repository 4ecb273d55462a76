package nlp

type Language string

const (
	English    Language = "english"
	Spanish    Language = "spanish"
	French     Language = "french"
	German     Language = "german"
	Italian    Language = "italian"
	Portuguese Language = "portuguese"
	Russian    Language = "russian"
	Chinese    Language = "chinese"
	Japanese   Language = "japanese"
	Arabic     Language = "arabic"
	Hindi      Language = "hindi"
)

type Intent string

const (
	IntentQuestion     Intent = "question"
	IntentRequest      Intent = "request"
	IntentCommand      Intent = "command"
	IntentExplanation  Intent = "explanation"
	IntentComparison   Intent = "comparison"
	IntentTutorial     Intent = "tutorial"
	IntentTroubleshoot Intent = "troubleshoot"
	IntentCode         Intent = "code"
	IntentGeneral      Intent = "general"
)

type EntityType string

const (
	EntitySoftware    EntityType = "software"
	EntityProgramming EntityType = "programming"
	EntityFileTypes   EntityType = "file_types"
	EntityNumbers     EntityType = "numbers"
	EntityURLs        EntityType = "urls"
	EntityEmails      EntityType = "emails"
)

type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

type Complexity string

const (
	Low    Complexity = "low"
	Medium Complexity = "medium"
	High   Complexity = "high"
)

// SoftwareMatch is one platform guess with its keyword hit ratio.
type SoftwareMatch struct {
	Software   string  `json:"software"`
	Confidence float64 `json:"confidence"`
	Response   string  `json:"response"`
}

// Analysis is the full classifier output for one utterance.
type Analysis struct {
	Language        Language                `json:"language"`
	LanguageTag     string                  `json:"languageTag"`
	Intents         []Intent                `json:"intents"`
	Entities        map[EntityType][]string `json:"entities"`
	Contexts        []string                `json:"contexts"`
	SoftwareContext []SoftwareMatch         `json:"softwareContext"`
	Sentiment       Sentiment               `json:"sentiment"`
	Complexity      Complexity              `json:"complexity"`
	Suggestions     []string                `json:"suggestions"`
}

// HasIntent reports whether in is among the detected intents.
func (a Analysis) HasIntent(in Intent) bool {
	for _, i := range a.Intents {
		if i == in {
			return true
		}
	}
	return false
}

// HasContext reports whether the topical context tag was detected.
func (a Analysis) HasContext(c string) bool {
	for _, x := range a.Contexts {
		if x == c {
			return true
		}
	}
	return false
}

// TopSoftware returns the highest confidence software match, if any.
func (a Analysis) TopSoftware() (SoftwareMatch, bool) {
	if len(a.SoftwareContext) == 0 {
		return SoftwareMatch{}, false
	}
	return a.SoftwareContext[0], true
}
