// Package nlp implements the heuristic text classifier: intent, entities,
// language, sentiment, complexity and software platform context.
//
// Every function here is pure and the rule tables are read-only after init,
// so a single Classifier may be shared across goroutines.
package nlp

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

type Classifier struct{}

func New() *Classifier {
	return &Classifier{}
}

// Process runs every analysis over text.
func (c *Classifier) Process(text string) Analysis {
	lang := c.DetectLanguage(text)
	a := Analysis{
		Language:        lang,
		LanguageTag:     languageTag(lang),
		Intents:         c.ClassifyIntent(text),
		Entities:        c.ExtractEntities(text),
		Contexts:        c.AnalyzeContext(text),
		SoftwareContext: c.DetectSoftwareContext(text),
		Sentiment:       c.AnalyzeSentiment(text),
		Complexity:      c.AssessComplexity(text),
	}
	a.Suggestions = c.GenerateSuggestions(a)
	return a
}

// DetectLanguage returns the language with the highest marker count.
// English is returned when nothing scores or when English ties for the top.
func (c *Classifier) DetectLanguage(text string) Language {
	folded := cases.Fold().String(text)
	tokens := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	scores := make([]int, len(languageRules))
	for i, rule := range languageRules {
		if rule.script != nil {
			for _, r := range text {
				if rule.script(r) {
					scores[i]++
				}
			}
			continue
		}
		for _, tok := range tokens {
			if _, ok := rule.stopWords[tok]; ok {
				scores[i]++
			}
		}
	}

	best := 0
	for i := range scores {
		if scores[i] > scores[best] {
			best = i
		}
	}
	// languageRules[0] is English, so a tie with it already resolves to English.
	if scores[best] == 0 {
		return English
	}
	return languageRules[best].language
}

func languageTag(l Language) string {
	for _, rule := range languageRules {
		if rule.language == l {
			return rule.tag.String()
		}
	}
	return "en"
}

// ClassifyIntent returns every intent whose prefix pattern matches, in
// table order, or just IntentGeneral when none does.
func (c *Classifier) ClassifyIntent(text string) []Intent {
	var intents []Intent
	for _, rule := range intentRules {
		if rule.pattern.MatchString(text) {
			intents = append(intents, rule.intent)
		}
	}
	if len(intents) == 0 {
		return []Intent{IntentGeneral}
	}
	return intents
}

// ExtractEntities collects unique matches per entity type in order of
// first occurrence. Types with no match are omitted.
func (c *Classifier) ExtractEntities(text string) map[EntityType][]string {
	entities := make(map[EntityType][]string)
	for _, rule := range entityRules {
		matches := rule.pattern.FindAllString(text, -1)
		if len(matches) == 0 {
			continue
		}
		seen := make(map[string]struct{}, len(matches))
		unique := make([]string, 0, len(matches))
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			unique = append(unique, m)
		}
		entities[rule.entity] = unique
	}
	return entities
}

// AnalyzeContext returns the topical tags with at least one keyword present.
func (c *Classifier) AnalyzeContext(text string) []string {
	lower := strings.ToLower(text)
	contexts := []string{}
	for _, rule := range contextRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				contexts = append(contexts, rule.name)
				break
			}
		}
	}
	return contexts
}

// DetectSoftwareContext scores each platform by the fraction of its keywords
// present and returns the non-zero ones, highest first.
func (c *Classifier) DetectSoftwareContext(text string) []SoftwareMatch {
	lower := strings.ToLower(text)
	matches := []SoftwareMatch{}
	for _, rule := range softwareRules {
		hits := 0
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		matches = append(matches, SoftwareMatch{
			Software:   rule.software,
			Confidence: float64(hits) / float64(len(rule.keywords)),
			Response:   rule.response,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	return matches
}

func (c *Classifier) AnalyzeSentiment(text string) Sentiment {
	pos, neg := 0, 0
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if _, ok := positiveWords[w]; ok {
			pos++
		}
		if _, ok := negativeWords[w]; ok {
			neg++
		}
	}
	switch {
	case pos > neg:
		return Positive
	case neg > pos:
		return Negative
	default:
		return Neutral
	}
}

func (c *Classifier) AssessComplexity(text string) Complexity {
	fields := strings.Fields(text)
	wordCount := len(fields)
	if wordCount == 0 {
		wordCount = 1
	}
	chars := 0
	for _, f := range fields {
		chars += utf8.RuneCountInString(f)
	}
	avgWordLength := float64(chars) / float64(wordCount)
	technical := len(technicalTerms.FindAllString(text, -1))

	score := 0
	if wordCount > 50 {
		score += 2
	}
	if avgWordLength > 6 {
		score += 2
	}
	if technical > 2 {
		score += 3
	}

	switch {
	case score >= 5:
		return High
	case score >= 3:
		return Medium
	default:
		return Low
	}
}

// GenerateSuggestions derives up to five hint strings from an analysis.
func (c *Classifier) GenerateSuggestions(a Analysis) []string {
	suggestions := []string{}
	if top, ok := a.TopSoftware(); ok {
		suggestions = append(suggestions, fmt.Sprintf("I can provide %s-specific guidance", top.Software))
	}
	if a.HasIntent(IntentTutorial) {
		suggestions = append(suggestions, "I can provide step-by-step instructions")
	}
	if a.HasIntent(IntentTroubleshoot) {
		suggestions = append(suggestions, "I can help debug and solve the issue")
	}
	if a.HasIntent(IntentCode) {
		suggestions = append(suggestions, "I can provide code examples and explanations")
	}
	if a.HasContext("installation") {
		suggestions = append(suggestions, "I can guide you through the installation process")
	}
	if a.HasContext("performance") {
		suggestions = append(suggestions, "I can suggest optimization techniques")
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
