package apimodels

type ChatRequest struct {
	// Message is the user's utterance
	Message string `json:"message"`

	// SessionID selects the conversation memory; empty starts a new one
	SessionID string `json:"sessionId,omitempty"`

	// ChatID appends both turns to a persisted chat when set
	ChatID string `json:"chatId,omitempty"`
}

type TextRequest struct {
	Text string `json:"text"`
}

type CompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the raw model proxy contract.
type CompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []CompletionMessage `json:"messages"`
	Temperature *float64            `json:"temperature,omitempty"`
	MaxTokens   *int64              `json:"max_tokens,omitempty"`
}

type CalculateRequest struct {
	Problem string `json:"problem"`
}

type CreateChatRequest struct {
	Title string `json:"title,omitempty"`
	Model string `json:"model,omitempty"`
}
