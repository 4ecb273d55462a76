package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quanty-ai/quanty/internal/app"
	"github.com/quanty-ai/quanty/internal/config"
	"github.com/quanty-ai/quanty/internal/history"
	"github.com/quanty-ai/quanty/internal/llm"
	"github.com/quanty-ai/quanty/internal/nlp"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCalcCommand(t *testing.T) {
	out, err := execute(t, "calc", "geometry:", "rectangle", "length=10", "width=5")
	require.NoError(t, err)
	assert.Contains(t, out, "= 50 square units")

	_, err = execute(t, "calc", "2+2")
	assert.Error(t, err)
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := execute(t, "analyze", "What", "is", "Go?")
	require.NoError(t, err)

	var a nlp.Analysis
	require.NoError(t, json.Unmarshal([]byte(out), &a))
	assert.Equal(t, nlp.English, a.Language)
	assert.True(t, a.HasIntent(nlp.IntentQuestion))
}

func TestDefineCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/ephemeral") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`[{"word":"ephemeral","phonetics":[{"text":"/əˈfem(ə)rəl/"}],"meanings":[{"partOfSpeech":"adjective","definitions":[{"definition":"Lasting for a very short time."}]}]}]`))
	}))
	defer srv.Close()
	t.Setenv("DICTIONARY_ENDPOINT", srv.URL+"/")

	out, err := execute(t, "define", "ephemeral")
	require.NoError(t, err)
	assert.Contains(t, out, "**ephemeral**")
	assert.Contains(t, out, "1. Lasting for a very short time.")

	_, err = execute(t, "define", "qwzx")
	assert.Error(t, err)
}

type replyProvider struct{}

func (replyProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (*llm.Response, error) {
	o := &llm.Options{}
	for _, opt := range opts {
		opt(o)
	}
	return &llm.Response{Content: "A goroutine is a lightweight thread.", Model: o.Model}, nil
}

func TestREPL(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "test-key")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	cfg.History.Path = filepath.Join(t.TempDir(), "quanty.db")

	a, err := app.New(cfg, replyProvider{})
	require.NoError(t, err)
	defer a.Close()

	var out bytes.Buffer
	input := strings.Join([]string{
		"trig: sin 30",
		"what is a goroutine in go",
		"/clear",
		"/exit",
	}, "\n")
	require.NoError(t, newREPL(a, &out).run(context.Background(), strings.NewReader(input)))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, history.Greeting))
	assert.Contains(t, text, "A goroutine is a lightweight thread.")
	assert.Contains(t, text, "Conversation cleared.")

	chats, err := a.Chats.List(context.Background())
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Len(t, chats[0].Messages, 5)
	assert.Equal(t, "trig: sin 30", chats[0].Title)
}
