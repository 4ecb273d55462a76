package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrChatNotFound = errors.New("history: chat not found")

const (
	DefaultTitle = "Untitled Chat"
	Greeting     = "Hello! I'm Quanty, your advanced AI assistant. How can I help you today?"
)

type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Model     string    `json:"model,omitempty"`
}

type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"createdAt"`
}

// Log is the chat list. Every mutation rewrites the whole document.
type Log struct {
	mu    sync.Mutex
	store Store
	now   func() time.Time
}

func NewLog(store Store) *Log {
	return &Log{store: store, now: time.Now}
}

func (l *Log) load(ctx context.Context) ([]Chat, error) {
	raw, err := l.store.Load(ctx, StorageKey)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []Chat{}, nil
	}
	var chats []Chat
	if err := json.Unmarshal(raw, &chats); err != nil {
		return nil, fmt.Errorf("history: decode chats: %w", err)
	}
	return chats, nil
}

func (l *Log) save(ctx context.Context, chats []Chat) error {
	raw, err := json.Marshal(chats)
	if err != nil {
		return fmt.Errorf("history: encode chats: %w", err)
	}
	return l.store.Save(ctx, StorageKey, raw)
}

// List returns all chats, newest first.
func (l *Log) List(ctx context.Context) ([]Chat, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

func (l *Log) Get(ctx context.Context, id string) (*Chat, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	chats, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range chats {
		if chats[i].ID == id {
			return &chats[i], nil
		}
	}
	return nil, ErrChatNotFound
}

// Create prepends a new chat seeded with the assistant greeting.
func (l *Log) Create(ctx context.Context, title, model string) (*Chat, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	chats, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = DefaultTitle
	}
	now := l.now()
	chat := Chat{
		ID:        uuid.NewString(),
		Title:     title,
		Model:     model,
		CreatedAt: now,
		Messages: []Message{
			{Role: "assistant", Content: Greeting, Timestamp: now},
		},
	}
	chats = append([]Chat{chat}, chats...)
	if err := l.save(ctx, chats); err != nil {
		return nil, err
	}
	return &chat, nil
}

// Append adds messages to a chat. An untitled chat takes its title from the
// first user message.
func (l *Log) Append(ctx context.Context, id string, msgs ...Message) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	chats, err := l.load(ctx)
	if err != nil {
		return err
	}
	for i := range chats {
		if chats[i].ID != id {
			continue
		}
		for _, m := range msgs {
			if m.Timestamp.IsZero() {
				m.Timestamp = l.now()
			}
			if chats[i].Title == DefaultTitle && m.Role == "user" && m.Content != "" {
				chats[i].Title = titleFrom(m.Content)
			}
			chats[i].Messages = append(chats[i].Messages, m)
		}
		return l.save(ctx, chats)
	}
	return ErrChatNotFound
}

func (l *Log) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	chats, err := l.load(ctx)
	if err != nil {
		return err
	}
	for i := range chats {
		if chats[i].ID == id {
			chats = append(chats[:i], chats[i+1:]...)
			return l.save(ctx, chats)
		}
	}
	return ErrChatNotFound
}

const maxTitleRunes = 30

func titleFrom(content string) string {
	r := []rune(content)
	if len(r) <= maxTitleRunes {
		return content
	}
	return string(r[:maxTitleRunes]) + "..."
}
