package dictionary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quanty-ai/quanty/internal/config"
)

const serendipity = `[{
  "word": "serendipity",
  "phonetics": [{"audio": "x.mp3"}, {"text": "/ˌsɛɹənˈdɪpɪti/"}],
  "meanings": [
    {"partOfSpeech": "noun", "definitions": [
      {"definition": "A combination of events which have come together by chance.", "example": "a fortunate stroke of serendipity"},
      {"definition": "A propensity for finding valuable things not sought for."},
      {"definition": "A third definition that is dropped."}
    ]},
    {"partOfSpeech": "verb", "definitions": [{"definition": "one"}]},
    {"partOfSpeech": "adjective", "definitions": [{"definition": "two"}]},
    {"partOfSpeech": "adverb", "definitions": [{"definition": "dropped"}]}
  ]
}]`

func TestLookupAndFormat(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/entries/en/serendipity" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"title": "No Definitions Found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(serendipity))
	}))
	defer ts.Close()

	c := NewClient(config.DictionaryConfig{Endpoint: ts.URL + "/api/v2/entries/en"})

	entry, err := c.Lookup(context.Background(), "  serendipity ")
	require.NoError(t, err)

	want := "**serendipity**\n\n" +
		"*/ˌsɛɹənˈdɪpɪti/*\n\n" +
		"**noun**\n" +
		"1. A combination of events which have come together by chance.\n" +
		"   *Example: a fortunate stroke of serendipity*\n" +
		"2. A propensity for finding valuable things not sought for.\n" +
		"\n" +
		"**verb**\n1. one\n\n" +
		"**adjective**\n1. two\n\n"
	assert.Equal(t, want, Format(entry))

	_, err = c.Lookup(context.Background(), "qwertyuiop")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Lookup(context.Background(), " ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := NewClient(config.DictionaryConfig{Endpoint: ts.URL})
	_, err := c.Lookup(context.Background(), "word")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestTerm(t *testing.T) {
	tests := []struct {
		input string
		term  string
		ok    bool
	}{
		{"Serendipity", "serendipity", true},
		{"define ephemeral", "ephemeral", true},
		{"meaning of life", "life", true},
		{"synonym for happy", "happy", true},
		{"what is love mean", "", false},
		{"two words", "", false},
		{"how do I install docker", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			term, ok := Term(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.term, term)
			assert.Equal(t, tt.ok, IsQuery(tt.input))
		})
	}
}
