// Package hub is the dispatch mediator: the single point through which every
// UI surface creates tasks and queries the API, and the single point where
// errors become uniform results.
package hub

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"taskclip/internal/backend/tasknotes"
	"taskclip/internal/capture"
	"taskclip/internal/config"
	"taskclip/internal/logging"
	"taskclip/internal/service"
)

// BackendFactory builds a backend from settings. Injected in tests.
type BackendFactory func(config.Settings) service.Backend

// hub lifecycle states.
const (
	stateUninitialized = iota
	stateInitializing
	stateReady
)

// Hub routes typed requests to the normalizer and backend and converts every
// failure into the uniform Result shape. It lazily constructs and caches the
// backend on first use, and re-reads settings before each task creation so a
// just-saved change takes effect on the very next action.
type Hub struct {
	cfg     *config.Config
	factory BackendFactory
	log     zerolog.Logger

	mu       sync.Mutex
	state    int
	initDone chan struct{}
	settings config.Settings
	backend  service.Backend

	trackMu  sync.RWMutex
	tracking *TimeTracking

	pollInterval time.Duration
}

// New creates a hub. A nil factory uses the real HTTP client.
func New(cfg *config.Config, factory BackendFactory) *Hub {
	if factory == nil {
		factory = func(s config.Settings) service.Backend {
			return tasknotes.New(s)
		}
	}
	return &Hub{
		cfg:          cfg,
		factory:      factory,
		log:          logging.Component("hub"),
		pollInterval: 5 * time.Second,
	}
}

// ensureReady drives the Uninitialized → Initializing → Ready transition.
// Requests arriving during an in-flight initialization wait for it instead
// of being rejected.
func (h *Hub) ensureReady(ctx context.Context) (service.Backend, error) {
	for {
		h.mu.Lock()
		switch h.state {
		case stateReady:
			backend := h.backend
			h.mu.Unlock()
			return backend, nil

		case stateInitializing:
			done := h.initDone
			h.mu.Unlock()
			select {
			case <-done:
				// Re-check: initialization may have failed.
			case <-ctx.Done():
				return nil, ctx.Err()
			}

		default:
			h.state = stateInitializing
			h.initDone = make(chan struct{})
			done := h.initDone
			h.mu.Unlock()

			settings, err := h.cfg.LoadSettings()

			h.mu.Lock()
			if err != nil {
				h.state = stateUninitialized
			} else {
				h.settings = settings
				h.backend = h.factory(settings)
				h.state = stateReady
			}
			h.mu.Unlock()
			close(done)

			if err != nil {
				return nil, err
			}
		}
	}
}

// refreshForCreate re-reads settings and rebuilds the backend when they
// changed, so a saved settings change applies without restart.
func (h *Hub) refreshForCreate(ctx context.Context) (service.Backend, config.Settings, error) {
	if _, err := h.ensureReady(ctx); err != nil {
		return nil, config.Settings{}, err
	}

	settings, err := h.cfg.LoadSettings()
	if err != nil {
		return nil, config.Settings{}, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if settings != h.settings {
		h.settings = settings
		h.backend = h.factory(settings)
	}
	return h.backend, settings, nil
}

// Dispatch handles one request and returns exactly one result. It never
// panics on unrecognized actions and never lets a raw error cross to a
// surface.
func (h *Hub) Dispatch(ctx context.Context, req Request) Result {
	reqID := ulid.Make().String()
	log := h.log.With().Str("req_id", reqID).Str("action", req.Action).Logger()
	log.Debug().Msg("dispatch")

	result := h.route(ctx, req)
	if !result.Success {
		log.Warn().Str("kind", string(result.Kind)).Str("error", result.Error).Msg("dispatch failed")
	}
	return result
}

func (h *Hub) route(ctx context.Context, req Request) Result {
	switch req.Action {
	case ActionCreateTask:
		return h.createTask(ctx, req)

	case ActionTestConnection:
		return h.call(ctx, func(ctx context.Context, b service.Backend) (any, error) {
			return b.TestConnection(ctx)
		})

	case ActionGetTasks:
		return h.call(ctx, func(ctx context.Context, b service.Backend) (any, error) {
			return b.GetTasks(ctx, req.Filters)
		})

	case ActionGetStats:
		return h.call(ctx, func(ctx context.Context, b service.Backend) (any, error) {
			return b.GetStats(ctx)
		})

	case ActionGetFilterOptions:
		return h.call(ctx, func(ctx context.Context, b service.Backend) (any, error) {
			return b.GetFilterOptions(ctx)
		})

	case ActionGetCurrentTimeTracking:
		return h.currentTimeTracking(ctx)

	case ActionUpdateTask:
		return h.call(ctx, func(ctx context.Context, b service.Backend) (any, error) {
			return b.UpdateTask(ctx, req.TaskID, req.Updates)
		})

	case ActionDeleteTask:
		return h.call(ctx, func(ctx context.Context, b service.Backend) (any, error) {
			return nil, b.DeleteTask(ctx, req.TaskID)
		})

	case ActionStartTimeTracking:
		return h.call(ctx, func(ctx context.Context, b service.Backend) (any, error) {
			return nil, b.StartTimeTracking(ctx, req.TaskID)
		})

	case ActionStopTimeTracking:
		return h.call(ctx, func(ctx context.Context, b service.Backend) (any, error) {
			return nil, b.StopTimeTracking(ctx, req.TaskID)
		})

	case ActionGetTimeSummary:
		return h.call(ctx, func(ctx context.Context, b service.Backend) (any, error) {
			return b.GetTimeSummary(ctx, req.Period)
		})

	default:
		return fail(KindUser, "Unknown action")
	}
}

// createTask is the core pipeline: settings refresh → normalize → create.
func (h *Hub) createTask(ctx context.Context, req Request) Result {
	if req.Capture == nil {
		return fail(KindUser, "capture required")
	}

	backend, settings, err := h.refreshForCreate(ctx)
	if err != nil {
		return fail(KindConfig, err.Error())
	}

	taskReq, err := capture.Normalize(*req.Capture, settings)
	if err != nil {
		return h.failure(err)
	}

	record, err := backend.CreateTask(ctx, taskReq)
	if err != nil {
		return h.failure(err)
	}
	return ok(record)
}

func (h *Hub) currentTimeTracking(ctx context.Context) Result {
	return h.call(ctx, func(ctx context.Context, b service.Backend) (any, error) {
		session, err := b.GetActiveTimeTracking(ctx)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, nil
		}
		return flattenSession(session), nil
	})
}

// call runs one backend operation with the lazily initialized backend,
// converting any error independently of other in-flight actions.
func (h *Hub) call(ctx context.Context, op func(context.Context, service.Backend) (any, error)) Result {
	backend, err := h.ensureReady(ctx)
	if err != nil {
		return fail(KindConfig, err.Error())
	}
	data, err := op(ctx, backend)
	if err != nil {
		return h.failure(err)
	}
	return ok(data)
}

// failure maps the error taxonomy onto the uniform result shape.
func (h *Hub) failure(err error) Result {
	var validation *capture.ValidationError
	if errors.As(err, &validation) {
		return fail(KindUser, validation.Error())
	}
	if errors.Is(err, tasknotes.ErrNotAccessible) {
		return fail(KindBackend, tasknotes.ErrNotAccessible.Error())
	}
	var apiErr *tasknotes.APIError
	if errors.As(err, &apiErr) {
		return fail(KindBackend, apiErr.Message)
	}
	return fail(KindBackend, err.Error())
}

func flattenSession(session *service.ActiveSession) *TimeTracking {
	return &TimeTracking{
		TaskID:      session.Task.ID,
		TaskTitle:   session.Task.Title,
		StartTime:   session.Session.StartTime,
		ElapsedTime: int64(session.ElapsedMinutes) * 60000,
	}
}
