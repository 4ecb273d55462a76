// Package assistant runs one chat turn: identity short-circuit, query
// enhancement, ordered model fallback and the search fallback.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/quanty-ai/quanty/internal/config"
	"github.com/quanty-ai/quanty/internal/enhancer"
	"github.com/quanty-ai/quanty/internal/llm"
	"github.com/quanty-ai/quanty/internal/memory"
	"github.com/quanty-ai/quanty/internal/metrics"
	"github.com/quanty-ai/quanty/internal/platform"
	"github.com/quanty-ai/quanty/internal/search"
)

var ErrCodeRouteFailed = errors.New("code assistant failed")

const (
	SystemPrompt = "You are Quanty, an advanced AI assistant with perfect memory. Remember our conversation context and provide helpful, detailed responses. If asked to summarize or give brief answers, refer to our previous discussion."

	CodeSystemPrompt = "You are Quanty, an expert coding assistant. Provide detailed, accurate code solutions with explanations."

	greetingMaxLength = 50
)

var greetings = []string{
	"hi", "hello", "hey", "yo", "sup", "what's up", "whats up", "how are you", "good morning", "good evening",
}

type Source string

const (
	SourceIdentity Source = "identity"
	SourceCode     Source = "code"
	SourceModel    Source = "model"
	SourceSearch   Source = "search"
	SourceApology  Source = "apology"
)

type Searcher interface {
	Search(ctx context.Context, query string) (*search.Result, error)
}

type QueryEnhancer interface {
	EnhanceFor(text string, os platform.OS) (enhancer.Result, error)
}

type IdentityResponder interface {
	Respond(text string) (string, bool)
}

type Input struct {
	Text     string
	Platform platform.OS
}

// Attempt records one backend call made during a turn.
type Attempt struct {
	Model    string        `json:"model"`
	OK       bool          `json:"ok"`
	Reason   string        `json:"reason,omitempty"`
	Duration time.Duration `json:"duration"`
}

type Reply struct {
	Text     string    `json:"reply"`
	Source   Source    `json:"source"`
	Model    string    `json:"model,omitempty"`
	Enhanced string    `json:"enhanced,omitempty"`
	Attempts []Attempt `json:"attempts"`
	Usage    llm.Usage `json:"usage"`
}

type Settings struct {
	Models           []string
	CodeModel        string
	CodePrefix       string
	ModelTimeout     time.Duration
	MinReplyLength   int
	SystemPrompt     string
	CodeSystemPrompt string
}

func SettingsFromConfig(cfg config.AssistantConfig) Settings {
	return Settings{
		Models:           cfg.Models,
		CodeModel:        cfg.CodeModel,
		CodePrefix:       cfg.CodePrefix,
		ModelTimeout:     cfg.ModelTimeout,
		MinReplyLength:   cfg.MinReplyLength,
		SystemPrompt:     SystemPrompt,
		CodeSystemPrompt: CodeSystemPrompt,
	}
}

type Assistant struct {
	llm      llm.Provider
	search   Searcher
	enhancer QueryEnhancer
	identity IdentityResponder
	settings Settings
}

func New(provider llm.Provider, searcher Searcher, enh QueryEnhancer, identity IdentityResponder, settings Settings) *Assistant {
	if settings.SystemPrompt == "" {
		settings.SystemPrompt = SystemPrompt
	}
	if settings.CodeSystemPrompt == "" {
		settings.CodeSystemPrompt = CodeSystemPrompt
	}
	if settings.CodePrefix == "" {
		settings.CodePrefix = "code:"
	}
	if settings.MinReplyLength <= 0 {
		settings.MinReplyLength = 5
	}
	return &Assistant{
		llm:      provider,
		search:   searcher,
		enhancer: enh,
		identity: identity,
		settings: settings,
	}
}

// Models returns the configured fallback order.
func (a *Assistant) Models() []string {
	return append([]string(nil), a.settings.Models...)
}

// Respond answers one user message against mem. Memory is only written when
// the turn produces a reply; a cancelled or failed turn leaves it untouched.
func (a *Assistant) Respond(ctx context.Context, mem *memory.Memory, in Input) (*Reply, error) {
	slog.Info("Starting turn", "length", len(in.Text), "platform", in.Platform)

	if answer, ok := a.identity.Respond(in.Text); ok {
		mem.Begin(in.Text).Commit(answer)
		metrics.TurnOutcomes.WithLabelValues(string(SourceIdentity)).Inc()
		return &Reply{Text: answer, Source: SourceIdentity, Attempts: []Attempt{}}, nil
	}

	turn := mem.Begin(in.Text)

	if code, ok := a.codeRequest(in.Text); ok {
		reply, err := a.respondCode(ctx, turn, code)
		if err != nil {
			return nil, err
		}
		turn.Commit(reply.Text)
		metrics.TurnOutcomes.WithLabelValues(string(SourceCode)).Inc()
		return reply, nil
	}

	query := a.enhance(in)
	reply, err := a.fallback(ctx, turn, in.Text, query)
	if err != nil {
		return nil, err
	}
	if query != in.Text {
		reply.Enhanced = query
	}

	turn.Commit(reply.Text)
	metrics.TurnOutcomes.WithLabelValues(string(reply.Source)).Inc()
	return reply, nil
}

// IsGreeting reports a short message containing a greeting phrase.
func IsGreeting(text string) bool {
	if utf8.RuneCountInString(text) >= greetingMaxLength {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, g := range greetings {
		if strings.Contains(lower, g) {
			return true
		}
	}
	return false
}

func (a *Assistant) enhance(in Input) string {
	if IsGreeting(in.Text) {
		return in.Text
	}
	res, err := a.enhancer.EnhanceFor(in.Text, in.Platform)
	if err != nil {
		slog.Warn("Query enhancement failed, using original message", "error", err)
		return in.Text
	}
	return res.Enhanced
}

func (a *Assistant) codeRequest(text string) (string, bool) {
	prefix := a.settings.CodePrefix
	if len(text) < len(prefix) || !strings.EqualFold(text[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(text[len(prefix):]), true
}

func (a *Assistant) respondCode(ctx context.Context, turn *memory.Turn, code string) (*Reply, error) {
	model := a.settings.CodeModel
	slog.Info("Routing to code assistant", "model", model)

	messages := buildMessages(a.settings.CodeSystemPrompt, turn.Context(), code)
	resp, attempt := a.call(ctx, model, messages)
	if !attempt.OK {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrCodeRouteFailed, model, attempt.Reason)
	}

	return &Reply{
		Text:     resp.Content,
		Source:   SourceCode,
		Model:    model,
		Attempts: []Attempt{attempt},
		Usage:    resp.Usage,
	}, nil
}

// fallback walks the model list in order and falls back to web search when
// every model fails.
func (a *Assistant) fallback(ctx context.Context, turn *memory.Turn, original, query string) (*Reply, error) {
	messages := buildMessages(a.settings.SystemPrompt, turn.Context(), query)
	attempts := make([]Attempt, 0, len(a.settings.Models))

	for _, model := range a.settings.Models {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, attempt := a.call(ctx, model, messages)
		if attempt.OK && utf8.RuneCountInString(strings.TrimSpace(resp.Content)) <= a.settings.MinReplyLength {
			attempt.OK = false
			attempt.Reason = "response too short"
			metrics.ModelAttempts.WithLabelValues(model, "short").Inc()
		}
		attempts = append(attempts, attempt)

		if attempt.OK {
			slog.Info("Model answered", "model", model, "attempt", len(attempts))
			return &Reply{
				Text:     resp.Content,
				Source:   SourceModel,
				Model:    model,
				Attempts: attempts,
				Usage:    resp.Usage,
			}, nil
		}
		slog.Warn("Model failed", "model", model, "reason", attempt.Reason)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slog.Info("All models failed, falling back to search", "attempts", len(attempts))
	text, source, err := a.searchAnswer(ctx, original)
	if err != nil {
		return nil, err
	}
	return &Reply{Text: text, Source: source, Attempts: attempts}, nil
}

// call makes one bounded backend request and tags the outcome.
func (a *Assistant) call(ctx context.Context, model string, messages []llm.Message) (*llm.Response, Attempt) {
	callCtx := ctx
	if a.settings.ModelTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.settings.ModelTimeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := a.llm.Chat(callCtx, messages, llm.WithModel(model))
	attempt := Attempt{Model: model, Duration: time.Since(start)}
	metrics.ModelLatency.WithLabelValues(model).Observe(attempt.Duration.Seconds())

	switch {
	case err != nil:
		attempt.Reason = err.Error()
		metrics.ModelAttempts.WithLabelValues(model, "error").Inc()
		return nil, attempt
	case resp == nil || resp.Content == "":
		attempt.Reason = llm.ErrEmptyResponse.Error()
		metrics.ModelAttempts.WithLabelValues(model, "empty").Inc()
		return nil, attempt
	}

	attempt.OK = true
	metrics.ModelAttempts.WithLabelValues(model, "ok").Inc()
	return resp, attempt
}

func (a *Assistant) searchAnswer(ctx context.Context, query string) (string, Source, error) {
	res, err := a.search.Search(ctx, query)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", "", ctxErr
		}
		slog.Error("Search fallback failed", "error", err)
		return fmt.Sprintf("I'm having trouble processing your request about \"%s\". Please try again.", query), SourceApology, nil
	}

	switch {
	case res.AbstractText != "":
		return "🔍 **Search Result:**\n\n" + res.AbstractText, SourceSearch, nil
	case res.Answer != "":
		return "🔍 **Answer:**\n\n" + string(res.Answer), SourceSearch, nil
	case res.Definition != "":
		return "📚 **Definition:**\n\n" + res.Definition, SourceSearch, nil
	}
	return fmt.Sprintf("I searched for \"%s\" but couldn't find specific information. Please try rephrasing your question.", query), SourceApology, nil
}

// buildMessages lays out system prompt, context window and the current
// message. The current message is skipped if the window already holds the
// same text.
func buildMessages(system string, window []memory.Entry, current string) []llm.Message {
	messages := make([]llm.Message, 0, len(window)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system})

	seen := false
	for _, e := range window {
		role := llm.RoleUser
		if e.Role == memory.RoleAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: e.Content})
		if e.Content == current {
			seen = true
		}
	}
	if !seen {
		messages = append(messages, llm.Message{Role: llm.RoleUser, Content: current})
	}
	return messages
}
