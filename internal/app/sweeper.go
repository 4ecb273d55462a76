package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/quanty-ai/quanty/internal/memory"
	"github.com/quanty-ai/quanty/internal/metrics"
)

// Sweeper drops idle conversation sessions on a cron schedule.
type Sweeper struct {
	cron     *cron.Cron
	sessions *memory.Store
	ttl      time.Duration
}

func NewSweeper(sessions *memory.Store, ttl, every time.Duration) (*Sweeper, error) {
	if every <= 0 {
		return nil, fmt.Errorf("session sweep interval must be positive, got %s", every)
	}
	s := &Sweeper{
		cron:     cron.New(),
		sessions: sessions,
		ttl:      ttl,
	}
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", every), s.Sweep); err != nil {
		return nil, fmt.Errorf("failed to schedule session sweep: %w", err)
	}
	return s, nil
}

// Sweep runs one pass and refreshes the session gauge.
func (s *Sweeper) Sweep() {
	removed := s.sessions.Sweep(s.ttl)
	remaining := s.sessions.Len()
	metrics.ActiveSessions.Set(float64(remaining))
	if removed > 0 {
		slog.Info("Swept idle sessions", "removed", removed, "remaining", remaining)
	}
}

func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
