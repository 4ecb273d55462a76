package nlp

import (
	"regexp"
	"unicode"

	"golang.org/x/text/language"
)

type intentRule struct {
	intent  Intent
	pattern *regexp.Regexp
}

// Intent rules are anchored at the start of the text and evaluated in order.
var intentRules = []intentRule{
	{IntentQuestion, regexp.MustCompile(`(?i)^(what|how|why|when|where|who|which|can|could|would|should|is|are|do|does|did)`)},
	{IntentRequest, regexp.MustCompile(`(?i)^(please|can you|could you|would you|help me|i need|i want)`)},
	{IntentCommand, regexp.MustCompile(`(?i)^(open|close|start|stop|run|execute|launch|install|download|create|delete|show|hide)`)},
	{IntentExplanation, regexp.MustCompile(`(?i)^(explain|describe|tell me about|what is|define|meaning of)`)},
	{IntentComparison, regexp.MustCompile(`(?i)^(compare|difference|versus|vs|better|worse|which is)`)},
	{IntentTutorial, regexp.MustCompile(`(?i)^(how to|tutorial|guide|step by step|teach me|learn)`)},
	{IntentTroubleshoot, regexp.MustCompile(`(?i)^(error|problem|issue|fix|solve|debug|not working|broken)`)},
	{IntentCode, regexp.MustCompile(`(?i)^(code|program|script|function|class|method|algorithm)`)},
}

type entityRule struct {
	entity  EntityType
	pattern *regexp.Regexp
}

var entityRules = []entityRule{
	{EntitySoftware, regexp.MustCompile(`(?i)\b(windows|linux|macos|android|ios|chrome|firefox|safari|edge|vscode|photoshop|office|excel|word|powerpoint|outlook|teams|zoom|discord|slack|github|docker|kubernetes|aws|azure|gcp)\b`)},
	{EntityProgramming, regexp.MustCompile(`(?i)\b(python|javascript|java|c\+\+|c#|php|ruby|go|rust|swift|kotlin|typescript|html|css|sql|react|vue|angular|node|django|flask|spring|laravel)\b`)},
	{EntityFileTypes, regexp.MustCompile(`(?i)\b(\.txt|\.pdf|\.doc|\.docx|\.xls|\.xlsx|\.ppt|\.pptx|\.jpg|\.png|\.gif|\.mp4|\.mp3|\.zip|\.rar|\.exe|\.dmg|\.deb|\.rpm)\b`)},
	{EntityNumbers, regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)},
	{EntityURLs, regexp.MustCompile(`https?://[^\s]+`)},
	{EntityEmails, regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)},
}

type keywordRule struct {
	name     string
	keywords []string
}

var contextRules = []keywordRule{
	{"installation", []string{"install", "setup", "download", "configure", "deploy"}},
	{"troubleshooting", []string{"error", "bug", "issue", "problem", "fix", "solve", "debug"}},
	{"tutorial", []string{"how to", "guide", "tutorial", "step", "learn", "teach"}},
	{"comparison", []string{"vs", "versus", "compare", "difference", "better", "best"}},
	{"performance", []string{"slow", "fast", "optimize", "speed", "performance", "memory"}},
	{"security", []string{"secure", "password", "encrypt", "vulnerability", "hack", "safe"}},
}

type softwareRule struct {
	software string
	keywords []string
	response string
}

var softwareRules = []softwareRule{
	{"windows", []string{"windows", "microsoft", "cmd", "powershell", "registry", "control panel"}, "Windows-specific guidance available"},
	{"linux", []string{"linux", "ubuntu", "debian", "centos", "bash", "terminal", "sudo"}, "Linux/Unix guidance available"},
	{"macos", []string{"mac", "macos", "osx", "homebrew", "xcode", "finder"}, "macOS guidance available"},
	{"mobile", []string{"android", "ios", "mobile", "app", "smartphone", "tablet"}, "Mobile development guidance available"},
	{"web", []string{"html", "css", "javascript", "react", "vue", "angular", "web"}, "Web development guidance available"},
	{"database", []string{"sql", "mysql", "postgresql", "mongodb", "database", "query"}, "Database guidance available"},
	{"cloud", []string{"aws", "azure", "gcp", "cloud", "docker", "kubernetes"}, "Cloud computing guidance available"},
}

// languageRule scores a language either by stop-word tokens or by runes
// falling in a script range. Exactly one of stopWords and script is set.
type languageRule struct {
	language  Language
	tag       language.Tag
	stopWords map[string]struct{}
	script    func(rune) bool
}

func words(ws ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(ws))
	for _, w := range ws {
		m[w] = struct{}{}
	}
	return m
}

func inRanges(tables ...*unicode.RangeTable) func(rune) bool {
	return func(r rune) bool {
		return unicode.In(r, tables...)
	}
}

var (
	cjkIdeographs = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x4e00, Hi: 0x9fff, Stride: 1}}}
	kana          = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x3040, Hi: 0x309f, Stride: 1}, {Lo: 0x30a0, Hi: 0x30ff, Stride: 1}}}
	arabicBlock   = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x0600, Hi: 0x06ff, Stride: 1}}}
	devanagari    = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x0900, Hi: 0x097f, Stride: 1}}}
)

// Order matters: ties between non-English languages go to the earlier entry.
var languageRules = []languageRule{
	{language: English, tag: language.English, stopWords: words("the", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by")},
	{language: Spanish, tag: language.Spanish, stopWords: words("el", "la", "los", "las", "y", "o", "pero", "en", "con", "de", "para", "por")},
	{language: French, tag: language.French, stopWords: words("le", "la", "les", "et", "ou", "mais", "dans", "avec", "de", "pour", "par")},
	{language: German, tag: language.German, stopWords: words("der", "die", "das", "und", "oder", "aber", "in", "mit", "von", "für", "durch")},
	{language: Italian, tag: language.Italian, stopWords: words("il", "la", "gli", "le", "e", "o", "ma", "in", "con", "di", "per", "da")},
	{language: Portuguese, tag: language.Portuguese, stopWords: words("o", "a", "os", "as", "e", "ou", "mas", "em", "com", "de", "para", "por")},
	{language: Russian, tag: language.Russian, stopWords: words("и", "или", "но", "в", "на", "с", "от", "для", "по", "за")},
	{language: Chinese, tag: language.Chinese, script: inRanges(cjkIdeographs)},
	{language: Japanese, tag: language.Japanese, script: inRanges(kana, cjkIdeographs)},
	{language: Arabic, tag: language.Arabic, script: inRanges(arabicBlock)},
	{language: Hindi, tag: language.Hindi, script: inRanges(devanagari)},
}

var (
	positiveWords = words("good", "great", "excellent", "amazing", "perfect", "love", "like", "best", "awesome", "fantastic")
	negativeWords = words("bad", "terrible", "awful", "hate", "worst", "problem", "error", "issue", "broken", "failed")

	technicalTerms = regexp.MustCompile(`(?i)\b(algorithm|implementation|architecture|framework|optimization|configuration)\b`)
)

const maxSuggestions = 5
