package hub

import (
	"context"
	"time"
)

// SetPollInterval overrides the tracking poll period (for testing and the
// watch surface). Must be called before RunPoller.
func (h *Hub) SetPollInterval(d time.Duration) {
	if d > 0 {
		h.pollInterval = d
	}
}

// RunPoller polls the active time-tracking session until ctx is canceled,
// caching the latest snapshot for surfaces that do not poll themselves.
// A failed cycle is logged, degrades the cache to "no active tracking", and
// never stops subsequent cycles.
func (h *Hub) RunPoller(ctx context.Context) {
	log := h.log.With().Str("cmp", "poller").Logger()
	log.Debug().Dur("interval", h.pollInterval).Msg("tracking poller started")

	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("tracking poller stopped")
			return
		case <-ticker.C:
			h.pollOnce(ctx)
		}
	}
}

func (h *Hub) pollOnce(ctx context.Context) {
	backend, err := h.ensureReady(ctx)
	if err != nil {
		h.log.Debug().Err(err).Msg("tracking poll skipped")
		h.setTracking(nil)
		return
	}

	session, err := backend.GetActiveTimeTracking(ctx)
	if err != nil {
		h.log.Debug().Err(err).Msg("tracking poll failed")
		h.setTracking(nil)
		return
	}
	if session == nil {
		h.setTracking(nil)
		return
	}
	h.setTracking(flattenSession(session))
}

// CurrentTracking returns the poller's cached snapshot, or nil when no
// session is active. Readers get eventually-consistent state, bounded by
// the poll interval.
func (h *Hub) CurrentTracking() *TimeTracking {
	h.trackMu.RLock()
	defer h.trackMu.RUnlock()
	return h.tracking
}

func (h *Hub) setTracking(t *TimeTracking) {
	h.trackMu.Lock()
	h.tracking = t
	h.trackMu.Unlock()
}
