// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Backend defines the interface for the task API. All HTTP calls to the
// local task service go through this interface; commands never construct
// requests directly.
type Backend interface {
	// CreateTask submits a normalized task payload.
	CreateTask(ctx context.Context, req TaskRequest) (TaskRecord, error)

	// TestConnection probes the API health endpoint.
	TestConnection(ctx context.Context) (HealthStatus, error)

	// GetTasks returns tasks, with filters applied client-side.
	GetTasks(ctx context.Context, filters *TaskFilters) (TaskPage, error)

	// GetStats returns task counts.
	GetStats(ctx context.Context) (Stats, error)

	// GetFilterOptions returns the statuses, priorities, contexts,
	// projects, and tags the service knows about.
	GetFilterOptions(ctx context.Context) (FilterOptions, error)

	// GetActiveTimeTracking returns the current session, or nil when none
	// is running.
	GetActiveTimeTracking(ctx context.Context) (*ActiveSession, error)

	// UpdateTask applies a partial update to a task.
	UpdateTask(ctx context.Context, id string, updates TaskUpdates) (TaskRecord, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) error

	// StartTimeTracking begins a session on the task.
	StartTimeTracking(ctx context.Context, id string) error

	// StopTimeTracking ends the session on the task.
	StopTimeTracking(ctx context.Context, id string) error

	// GetTimeSummary returns aggregated tracked time for a period.
	GetTimeSummary(ctx context.Context, period string) (TimeSummary, error)
}
