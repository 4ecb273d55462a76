package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quanty-ai/quanty/apimodels"
	"github.com/quanty-ai/quanty/internal/assistant"
	"github.com/quanty-ai/quanty/internal/calculator"
	"github.com/quanty-ai/quanty/internal/dictionary"
	"github.com/quanty-ai/quanty/internal/enhancer"
	"github.com/quanty-ai/quanty/internal/history"
	"github.com/quanty-ai/quanty/internal/llm"
	"github.com/quanty-ai/quanty/internal/memory"
	"github.com/quanty-ai/quanty/internal/metrics"
	"github.com/quanty-ai/quanty/internal/platform"
)

const (
	codeRouteApology = "Sorry, the code assistant could not answer right now. Please try again in a moment."
	modelApology     = "The model could not answer this request. Please try again."
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req apimodels.ChatRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	start := time.Now()
	info := platform.Detect(r.UserAgent())
	session := s.deps.Sessions.Session(req.SessionID)
	metrics.ActiveSessions.Set(float64(s.deps.Sessions.Len()))

	slog.Debug("Received chat request", "session", session.ID, "platform", info.OS)

	var reply *assistant.Reply
	err := session.Do(func(m *memory.Memory) error {
		var err error
		reply, err = s.deps.Assistant.Respond(r.Context(), m, assistant.Input{Text: req.Message, Platform: info.OS})
		return err
	})
	switch {
	case errors.Is(err, assistant.ErrCodeRouteFailed):
		slog.Error("Code route failed", "session", session.ID, "error", err)
		writeError(w, http.StatusBadGateway, codeRouteApology)
		return
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		slog.Warn("Chat turn abandoned", "session", session.ID, "error", err)
		writeError(w, http.StatusGatewayTimeout, "request timed out")
		return
	case err != nil:
		slog.Error("Chat turn failed", "session", session.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "chat turn failed")
		return
	}

	if req.ChatID != "" && s.deps.Chats != nil {
		now := time.Now()
		err := s.deps.Chats.Append(r.Context(), req.ChatID,
			history.Message{Role: string(memory.RoleUser), Content: req.Message, Timestamp: now},
			history.Message{Role: string(memory.RoleAssistant), Content: reply.Text, Timestamp: now, Model: reply.Model},
		)
		if err != nil {
			slog.Warn("Failed to append to chat log", "chat", req.ChatID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, apimodels.ChatResponse{
		Reply:     reply.Text,
		Source:    reply.Source,
		Model:     reply.Model,
		Enhanced:  reply.Enhanced,
		SessionID: session.ID,
		Attempts:  reply.Attempts,
		Metadata: apimodels.ChatMetadata{
			Duration:   time.Since(start).String(),
			TokensUsed: reply.Usage.TotalTokens,
			Platform:   info,
		},
	})
}

func (s *Server) handleGetMemory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, ok := s.deps.Sessions.Lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var entries []memory.Entry
	_ = session.Do(func(m *memory.Memory) error {
		entries = m.Messages()
		return nil
	})
	writeJSON(w, http.StatusOK, apimodels.MemoryResponse{SessionID: id, Messages: entries})
}

func (s *Server) handleClearMemory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, ok := s.deps.Sessions.Lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	_ = session.Do(func(m *memory.Memory) error {
		m.Clear()
		return nil
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req apimodels.TextRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Classifier.Process(req.Text))
}

func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	var req apimodels.TextRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := s.deps.Enhancer.EnhanceFor(req.Text, platform.Detect(r.UserAgent()).OS)
	if err != nil {
		if errors.Is(err, enhancer.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "enhancement failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCompletions(w http.ResponseWriter, r *http.Request) {
	var req apimodels.CompletionRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Model == "" || len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "model and messages are required")
		return
	}

	messages := make([]llm.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := llm.Role(m.Role)
		switch role {
		case llm.RoleSystem, llm.RoleUser, llm.RoleAssistant:
		default:
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported role %q", m.Role))
			return
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}

	opts := []llm.Option{llm.WithModel(req.Model)}
	if req.Temperature != nil {
		opts = append(opts, llm.WithTemperature(*req.Temperature))
	}
	if req.MaxTokens != nil {
		opts = append(opts, llm.WithMaxTokens(*req.MaxTokens))
	}

	resp, err := s.deps.LLM.Chat(r.Context(), messages, opts...)
	if err != nil {
		slog.Error("Completion proxy failed", "model", req.Model, "error", err)
		writeError(w, http.StatusBadGateway, modelApology)
		return
	}

	model := resp.Model
	if model == "" {
		model = req.Model
	}
	writeJSON(w, http.StatusOK, apimodels.CompletionResponse{
		Model: model,
		Choices: []apimodels.CompletionChoice{{
			Message: apimodels.CompletionMessage{Role: string(llm.RoleAssistant), Content: resp.Content},
		}},
		Usage: apimodels.CompletionUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	res, err := s.deps.Search.Search(r.Context(), q)
	if err != nil {
		slog.Error("Search failed", "error", err)
		writeError(w, http.StatusBadGateway, "search is unavailable")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDictionary(w http.ResponseWriter, r *http.Request) {
	word := chi.URLParam(r, "word")
	entry, err := s.deps.Dictionary.Lookup(r.Context(), word)
	switch {
	case errors.Is(err, dictionary.ErrNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("no definition found for %q", word))
		return
	case err != nil:
		slog.Error("Dictionary lookup failed", "word", word, "error", err)
		writeError(w, http.StatusBadGateway, "dictionary is unavailable")
		return
	}
	writeJSON(w, http.StatusOK, apimodels.DictionaryResponse{Entry: entry, Formatted: dictionary.Format(entry)})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req apimodels.CalculateRequest
	if !decode(w, r, &req) {
		return
	}
	result, err := calculator.Calculate(req.Problem)
	switch {
	case errors.Is(err, calculator.ErrUnknownCalculator):
		writeError(w, http.StatusUnprocessableEntity, "problem must start with geometry:, trig:, physics:, chemistry:, biology: or solve:")
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, apimodels.CalculateResponse{Result: result})
}

func (s *Server) handleSoftwareHelp(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	software := strings.TrimSpace(q.Get("software"))
	if software == "" {
		writeError(w, http.StatusBadRequest, "software is required")
		return
	}

	action := platform.Install
	if a := q.Get("action"); a != "" {
		action = platform.Action(strings.ToLower(a))
	}
	switch action {
	case platform.Install, platform.Uninstall, platform.Update:
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported action %q", action))
		return
	}

	info := platform.Detect(r.UserAgent())
	if os := q.Get("os"); os != "" {
		info.OS = platform.OS(strings.ToLower(os))
	}

	writeJSON(w, http.StatusOK, apimodels.SoftwareHelpResponse{
		Software:     software,
		Action:       action,
		Platform:     info,
		Instructions: platform.Instructions(software, action, info.OS),
		Compatible:   platform.Compatible(info.OS, "packageManagers"),
	})
}

func (s *Server) handleListChats(w http.ResponseWriter, r *http.Request) {
	chats, err := s.deps.Chats.List(r.Context())
	if err != nil {
		slog.Error("Failed to list chats", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load chats")
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

func (s *Server) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	var req apimodels.CreateChatRequest
	// the body is optional
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	chat, err := s.deps.Chats.Create(r.Context(), req.Title, req.Model)
	if err != nil {
		slog.Error("Failed to create chat", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create chat")
		return
	}
	writeJSON(w, http.StatusCreated, chat)
}

func (s *Server) handleGetChat(w http.ResponseWriter, r *http.Request) {
	chat, err := s.deps.Chats.Get(r.Context(), chi.URLParam(r, "id"))
	if !s.chatError(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

func (s *Server) handleDeleteChat(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Chats.Delete(r.Context(), chi.URLParam(r, "id"))
	if !s.chatError(w, err) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// chatError writes the response for a chat log error and reports whether
// the handler may continue.
func (s *Server) chatError(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, history.ErrChatNotFound):
		writeError(w, http.StatusNotFound, "chat not found")
	default:
		slog.Error("Chat log failed", "error", err)
		writeError(w, http.StatusInternalServerError, "chat log failed")
	}
	return false
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apimodels.ErrorResponse{Error: message})
}
