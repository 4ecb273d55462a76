// Package app wires every component from configuration.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/quanty-ai/quanty/internal/assistant"
	"github.com/quanty-ai/quanty/internal/config"
	"github.com/quanty-ai/quanty/internal/dictionary"
	"github.com/quanty-ai/quanty/internal/enhancer"
	"github.com/quanty-ai/quanty/internal/history"
	"github.com/quanty-ai/quanty/internal/identity"
	"github.com/quanty-ai/quanty/internal/llm"
	"github.com/quanty-ai/quanty/internal/memory"
	"github.com/quanty-ai/quanty/internal/nlp"
	"github.com/quanty-ai/quanty/internal/search"
	"github.com/quanty-ai/quanty/internal/server"
)

type App struct {
	Config     *config.Config
	Classifier *nlp.Classifier
	Enhancer   *enhancer.Enhancer
	LLM        llm.Provider
	Search     *search.Client
	Dictionary *dictionary.Client
	Assistant  *assistant.Assistant
	Sessions   *memory.Store
	Chats      *history.Log

	closers []func() error
}

// New builds the component graph. The LLM provider is passed in so callers
// can substitute it; nil builds the OpenAI-compatible client from cfg.
func New(cfg *config.Config, provider llm.Provider) (*App, error) {
	a := &App{Config: cfg}

	if provider == nil {
		p, err := llm.NewOpenAI(&cfg.LLM)
		if err != nil {
			return nil, err
		}
		provider = p
	}
	a.LLM = provider

	profile, err := profileFromConfig(cfg.Identity)
	if err != nil {
		return nil, err
	}

	a.Classifier = nlp.New()
	a.Enhancer = enhancer.New(a.Classifier)
	a.Search = search.NewClient(cfg.Search)
	a.Dictionary = dictionary.NewClient(cfg.Dictionary)
	a.Assistant = assistant.New(a.LLM, a.Search, a.Enhancer, identity.New(profile, nil), assistant.SettingsFromConfig(cfg.Assistant))
	a.Sessions = memory.NewStore(
		memory.WithCapacity(cfg.Assistant.MemoryCapacity),
		memory.WithContextWindow(cfg.Assistant.ContextWindow),
	)
	a.Sessions.SetLimit(cfg.Assistant.MaxSessions)
	a.Chats = history.NewLog(a.openHistory(cfg.History))

	slog.Info("Components ready", "models", len(a.Assistant.Models()), "history", cfg.History.Path)
	return a, nil
}

// openHistory prefers SQLite and keeps an in-memory store behind it. A
// database that cannot be opened leaves only the in-memory store.
func (a *App) openHistory(cfg config.HistoryConfig) history.Store {
	mem := history.NewMemoryStore()
	if cfg.Path == "" {
		return mem
	}
	db, err := history.OpenSQLite(cfg.Path)
	if err != nil {
		slog.Warn("Chat history database unavailable, keeping chats in memory", "path", cfg.Path, "error", err)
		return mem
	}
	a.closers = append(a.closers, db.Close)
	return history.NewFallbackStore(db, mem)
}

func profileFromConfig(cfg config.IdentityConfig) (identity.Profile, error) {
	p := identity.DefaultProfile()
	if cfg.CreatorName != "" {
		p.Name = cfg.CreatorName
	}
	if cfg.Hometown != "" {
		p.Hometown = cfg.Hometown
	}
	if cfg.Country != "" {
		p.Country = cfg.Country
	}
	if cfg.AgeAtCreation != "" {
		p.AgeAtCreation = cfg.AgeAtCreation
	}
	if cfg.BirthDate != "" {
		birth, err := time.Parse(time.DateOnly, cfg.BirthDate)
		if err != nil {
			return identity.Profile{}, errors.New("CREATOR_BIRTH_DATE must be YYYY-MM-DD")
		}
		p.BirthDate = birth
	}
	return p, nil
}

func (a *App) Server() *server.Server {
	return server.New(a.Config.Server, server.Deps{
		Assistant:  a.Assistant,
		Sessions:   a.Sessions,
		Classifier: a.Classifier,
		Enhancer:   a.Enhancer,
		LLM:        a.LLM,
		Search:     a.Search,
		Dictionary: a.Dictionary,
		Chats:      a.Chats,
	})
}

// Serve runs the HTTP server with the session sweeper until shutdown.
func (a *App) Serve(ctx context.Context) error {
	sweeper, err := NewSweeper(a.Sessions, a.Config.Assistant.SessionTTL, a.Config.Assistant.SessionSweepEvery)
	if err != nil {
		return err
	}
	sweeper.Start()
	defer sweeper.Stop()

	return a.Server().Run(ctx)
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
