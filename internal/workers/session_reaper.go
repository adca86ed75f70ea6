// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"time"

	"github.com/opsboard/credvault/internal/config"
	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/internal/service"
)

// Fallback session policy when the config leaves the vault section empty.
const (
	defaultSessionTTL   = 15 * time.Minute
	defaultReapInterval = time.Minute
)

// SessionReaper periodically relocks vault sessions that have been idle for
// longer than the configured TTL. Without it a user who walks away from an
// unlocked dashboard would leave their DEK in server memory indefinitely.
type SessionReaper struct {
	vaultService service.VaultService
	maxIdle      time.Duration
	interval     time.Duration

	stop chan struct{}

	logger *logger.Logger
}

// NewSessionReaper builds a reaper from the vault session policy in cfg,
// falling back to 15m TTL / 1m interval for unset values.
func NewSessionReaper(vaultService service.VaultService, cfg config.Vault, logger *logger.Logger) *SessionReaper {
	maxIdle := cfg.SessionTTL
	if maxIdle <= 0 {
		maxIdle = defaultSessionTTL
	}
	interval := cfg.ReapInterval
	if interval <= 0 {
		interval = defaultReapInterval
	}

	return &SessionReaper{
		vaultService: vaultService,
		maxIdle:      maxIdle,
		interval:     interval,
		stop:         make(chan struct{}),
		logger:       logger,
	}
}

// Run implements [Worker]. It starts the reap loop in a goroutine and
// returns immediately.
func (r *SessionReaper) Run() {
	r.logger.Info().
		Dur("session_ttl", r.maxIdle).
		Dur("interval", r.interval).
		Msg("vault session reaper started")

	go r.loop()
}

// Stop terminates the reap loop. Safe to call once.
func (r *SessionReaper) Stop() {
	close(r.stop)
}

func (r *SessionReaper) loop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if reaped := r.vaultService.ReapIdleSessions(r.maxIdle); reaped > 0 {
				r.logger.Info().Int("sessions", reaped).Msg("relocked idle vault sessions")
			}
		case <-r.stop:
			r.logger.Info().Msg("vault session reaper stopped")
			return
		}
	}
}
