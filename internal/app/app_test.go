package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quanty-ai/quanty/internal/assistant"
	"github.com/quanty-ai/quanty/internal/config"
	"github.com/quanty-ai/quanty/internal/history"
	"github.com/quanty-ai/quanty/internal/llm"
	"github.com/quanty-ai/quanty/internal/memory"
	"github.com/quanty-ai/quanty/internal/platform"
)

type cannedProvider struct{ models []string }

func (c *cannedProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (*llm.Response, error) {
	o := &llm.Options{}
	for _, opt := range opts {
		opt(o)
	}
	c.models = append(c.models, o.Model)
	return &llm.Response{Content: "Go is a compiled language.", Model: o.Model}, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Setenv("OPENROUTER_API_KEY", "test-key")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	cfg.History.Path = filepath.Join(t.TempDir(), "quanty.db")
	return cfg
}

func TestNewWiresComponents(t *testing.T) {
	provider := &cannedProvider{}
	a, err := New(testConfig(t), provider)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, a.Config.Assistant.Models, a.Assistant.Models())

	var reply *assistant.Reply
	err = a.Sessions.Session("s1").Do(func(m *memory.Memory) error {
		reply, err = a.Assistant.Respond(context.Background(), m, assistant.Input{Text: "What is Go?", Platform: platform.Linux})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, assistant.SourceModel, reply.Source)
	assert.Equal(t, []string{"deepseek/deepseek-r1-distill-qwen-7b"}, provider.models)
}

func TestNewPersistsChatsInSQLite(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(cfg, &cannedProvider{})
	require.NoError(t, err)
	chat, err := a.Chats.Create(context.Background(), "kept", "")
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b, err := New(cfg, &cannedProvider{})
	require.NoError(t, err)
	defer b.Close()
	got, err := b.Chats.Get(context.Background(), chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Title)
}

func TestNewFallsBackToMemoryHistory(t *testing.T) {
	cfg := testConfig(t)
	cfg.History.Path = filepath.Join(t.TempDir(), "missing", "quanty.db")

	a, err := New(cfg, &cannedProvider{})
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Chats.Create(context.Background(), "", "")
	require.NoError(t, err)
	chats, err := a.Chats.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, chats, 1)
	assert.Equal(t, history.DefaultTitle, chats[0].Title)
}

func TestNewRejectsBadBirthDate(t *testing.T) {
	cfg := testConfig(t)
	cfg.Identity.BirthDate = "July 2011"

	_, err := New(cfg, &cannedProvider{})
	assert.Error(t, err)
}

func TestNewBuildsOpenAIProvider(t *testing.T) {
	a, err := New(testConfig(t), nil)
	require.NoError(t, err)
	defer a.Close()
	assert.IsType(t, &llm.OpenAI{}, a.LLM)
}

func TestNewCapsSessions(t *testing.T) {
	cfg := testConfig(t)
	cfg.Assistant.MaxSessions = 2

	a, err := New(cfg, &cannedProvider{})
	require.NoError(t, err)
	defer a.Close()

	for _, id := range []string{"a", "b", "c", "d"} {
		a.Sessions.Session(id)
	}
	assert.Equal(t, 2, a.Sessions.Len())
}

func TestSweeperDropsIdleSessions(t *testing.T) {
	sessions := memory.NewStore()
	sessions.Session("a")
	sessions.Session("b")

	keep, err := NewSweeper(sessions, time.Hour, time.Minute)
	require.NoError(t, err)
	keep.Sweep()
	assert.Equal(t, 2, sessions.Len())

	time.Sleep(5 * time.Millisecond)
	drop, err := NewSweeper(sessions, time.Millisecond, time.Minute)
	require.NoError(t, err)
	drop.Sweep()
	assert.Equal(t, 0, sessions.Len())
}

func TestSweeperRejectsBadInterval(t *testing.T) {
	_, err := NewSweeper(memory.NewStore(), time.Hour, 0)
	assert.Error(t, err)
}
