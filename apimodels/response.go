package apimodels

import (
	"github.com/quanty-ai/quanty/internal/assistant"
	"github.com/quanty-ai/quanty/internal/dictionary"
	"github.com/quanty-ai/quanty/internal/memory"
	"github.com/quanty-ai/quanty/internal/platform"
)

type ChatResponse struct {
	// The assistant reply text
	Reply string `json:"reply"`

	// Which stage produced the reply
	Source assistant.Source `json:"source"`

	// Model that answered, when one did
	Model string `json:"model,omitempty"`

	// Enhanced query sent to the models, when it differs from the message
	Enhanced string `json:"enhanced,omitempty"`

	SessionID string              `json:"sessionId"`
	Attempts  []assistant.Attempt `json:"attempts"`
	Metadata  ChatMetadata        `json:"metadata"`
}

type ChatMetadata struct {
	// Time taken for the turn
	Duration string `json:"duration"`

	// Tokens used by the answering model
	TokensUsed int64 `json:"tokensUsed"`

	// Platform detected from the User-Agent
	Platform platform.Info `json:"platform"`
}

type MemoryResponse struct {
	SessionID string         `json:"sessionId"`
	Messages  []memory.Entry `json:"messages"`
}

type CompletionChoice struct {
	Index   int               `json:"index"`
	Message CompletionMessage `json:"message"`
}

type CompletionUsage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// CompletionResponse mirrors the OpenAI chat completion shape.
type CompletionResponse struct {
	Model   string             `json:"model"`
	Choices []CompletionChoice `json:"choices"`
	Usage   CompletionUsage    `json:"usage"`
}

type DictionaryResponse struct {
	Entry     *dictionary.Entry `json:"entry"`
	Formatted string            `json:"formatted"`
}

type CalculateResponse struct {
	Result string `json:"result"`
}

type SoftwareHelpResponse struct {
	Software     string          `json:"software"`
	Action       platform.Action `json:"action"`
	Platform     platform.Info   `json:"platform"`
	Instructions string          `json:"instructions"`
	Compatible   []string        `json:"compatible,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
