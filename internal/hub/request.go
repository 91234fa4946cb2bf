package hub

import (
	"taskclip/internal/capture"
	"taskclip/internal/service"
)

// Action names recognized by the hub. These mirror the message protocol the
// UI surfaces speak: anything else resolves to an "Unknown action" failure.
const (
	ActionCreateTask             = "createTask"
	ActionTestConnection         = "testConnection"
	ActionGetTasks               = "getTasks"
	ActionGetStats               = "getStats"
	ActionGetFilterOptions       = "getFilterOptions"
	ActionGetCurrentTimeTracking = "getCurrentTimeTracking"
	ActionUpdateTask             = "updateTask"
	ActionDeleteTask             = "deleteTask"
	ActionStartTimeTracking      = "startTimeTracking"
	ActionStopTimeTracking       = "stopTimeTracking"
	ActionGetTimeSummary         = "getTimeSummary"
)

// Request is a typed message from a UI surface. Only the fields relevant to
// the action need to be set.
type Request struct {
	Action  string
	Capture *capture.RawCapture
	Filters *service.TaskFilters
	TaskID  string
	Updates service.TaskUpdates
	Period  string
}

// ErrorKind classifies a failure for exit-code mapping. It is part of the
// uniform result shape; surfaces branch on nothing else.
type ErrorKind string

const (
	KindNone    ErrorKind = ""
	KindUser    ErrorKind = "user"
	KindConfig  ErrorKind = "config"
	KindBackend ErrorKind = "backend"
)

// Result is the uniform envelope every UI surface consumes.
type Result struct {
	Success bool
	Data    any
	Error   string
	Kind    ErrorKind
}

// TimeTracking is the flattened active-session shape surfaces receive for
// getCurrentTimeTracking. ElapsedTime is in milliseconds.
type TimeTracking struct {
	TaskID      string `json:"taskId"`
	TaskTitle   string `json:"taskTitle"`
	StartTime   string `json:"startTime"`
	ElapsedTime int64  `json:"elapsedTime"`
}

func ok(data any) Result {
	return Result{Success: true, Data: data}
}

func fail(kind ErrorKind, msg string) Result {
	return Result{Success: false, Error: msg, Kind: kind}
}
