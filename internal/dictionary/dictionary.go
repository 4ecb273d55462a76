// Package dictionary looks words up on dictionaryapi.dev and renders the
// first entry as markdown.
package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/quanty-ai/quanty/internal/config"
)

var ErrNotFound = errors.New("dictionary: word not found")

const (
	maxMeanings    = 3
	maxDefinitions = 2
)

type Entry struct {
	Word      string     `json:"word"`
	Phonetic  string     `json:"phonetic,omitempty"`
	Phonetics []Phonetic `json:"phonetics"`
	Meanings  []Meaning  `json:"meanings"`
}

type Phonetic struct {
	Text  string `json:"text,omitempty"`
	Audio string `json:"audio,omitempty"`
}

type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
	Synonyms     []string     `json:"synonyms,omitempty"`
}

type Definition struct {
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(cfg config.DictionaryConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	endpoint := cfg.Endpoint
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Lookup returns the first dictionary entry for word.
func (c *Client) Lookup(ctx context.Context, word string) (*Entry, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, ErrNotFound
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+url.PathEscape(word), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build dictionary request: %w", err)
	}

	slog.Debug("Looking up word", "word", word)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dictionary request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("dictionary returned status %d", resp.StatusCode)
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary response: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return &entries[0], nil
}

// Format renders an entry: headword, first phonetic with text, then up to
// three meanings with two definitions each.
func Format(e *Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n", e.Word)

	for _, p := range e.Phonetics {
		if p.Text != "" {
			fmt.Fprintf(&b, "*%s*\n\n", p.Text)
			break
		}
	}

	for i, m := range e.Meanings {
		if i >= maxMeanings {
			break
		}
		fmt.Fprintf(&b, "**%s**\n", m.PartOfSpeech)
		for j, d := range m.Definitions {
			if j >= maxDefinitions {
				break
			}
			fmt.Fprintf(&b, "%d. %s\n", j+1, d.Definition)
			if d.Example != "" {
				fmt.Fprintf(&b, "   *Example: %s*\n", d.Example)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

var queryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^what (?:does|is) (.+) mean$`),
	regexp.MustCompile(`^define (.+)$`),
	regexp.MustCompile(`^meaning of (.+)$`),
	regexp.MustCompile(`^definition of (.+)$`),
	regexp.MustCompile(`^synonyms? (?:for|of) (.+)$`),
}

// IsQuery reports whether input looks like a dictionary request: at most
// three words, and either a single word or a "define X" style phrase.
func IsQuery(input string) bool {
	_, ok := Term(input)
	return ok
}

// Term extracts the word to look up from a dictionary-style request.
func Term(input string) (string, bool) {
	text := strings.ToLower(strings.TrimSpace(input))
	words := strings.Fields(text)
	if len(words) == 0 || len(words) > 3 {
		return "", false
	}
	for _, p := range queryPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	if len(words) == 1 {
		return words[0], true
	}
	return "", false
}
