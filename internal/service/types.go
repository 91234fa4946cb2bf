// Package service defines the backend-agnostic interface for task operations.
package service

import "sort"

// TaskRequest is the normalized, API-ready task payload. Optional fields
// carry omitempty so that unset fields are absent from the outgoing JSON
// entirely, letting the API apply its own defaults.
type TaskRequest struct {
	Title           string   `json:"title"`
	Status          string   `json:"status"`
	Priority        string   `json:"priority"`
	Tags            []string `json:"tags"`
	Contexts        []string `json:"contexts,omitempty"`
	Projects        []string `json:"projects,omitempty"`
	Details         string   `json:"details,omitempty"`
	Due             string   `json:"due,omitempty"`
	Scheduled       string   `json:"scheduled,omitempty"`
	TimeEstimate    *int     `json:"timeEstimate,omitempty"`
	CreationContext string   `json:"creationContext"`
}

// TaskRecord is a task as returned by the API.
type TaskRecord struct {
	ID        string   `json:"id"`
	Path      string   `json:"path"`
	Title     string   `json:"title"`
	Status    string   `json:"status"`
	Priority  string   `json:"priority"`
	Tags      []string `json:"tags"`
	Contexts  []string `json:"contexts"`
	Projects  []string `json:"projects"`
	Due       string   `json:"due"`
	Scheduled string   `json:"scheduled"`
	Details   string   `json:"details"`
}

// Ref returns the best available identifier for the record.
func (t TaskRecord) Ref() string {
	if t.ID != "" {
		return t.ID
	}
	return t.Path
}

// TaskPage is a page of tasks with totals.
type TaskPage struct {
	Tasks    []TaskRecord `json:"tasks"`
	Total    int          `json:"total"`
	Filtered int          `json:"filtered,omitempty"`
}

// TaskFilters narrows a GetTasks call. Filtering happens client-side.
type TaskFilters struct {
	// Status is a comma-separated list of statuses to keep.
	Status string

	// Limit truncates the filtered result when positive.
	Limit int
}

// TaskUpdates is a partial task update for UpdateTask.
type TaskUpdates map[string]any

// Stats holds task counts from the API.
type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// OptionItem is a single status or priority choice.
type OptionItem struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Order       int    `json:"order"`
	Weight      int    `json:"weight"`
	Color       string `json:"color"`
	IsCompleted bool   `json:"isCompleted"`
}

// FilterOptions holds the choices the API exposes for pickers.
type FilterOptions struct {
	Statuses   []OptionItem `json:"statuses"`
	Priorities []OptionItem `json:"priorities"`
	Contexts   []string     `json:"contexts"`
	Projects   []string     `json:"projects"`
	Tags       []string     `json:"tags"`
}

// CreationStatuses returns statuses sorted by order, excluding the "none"
// pseudo-value, which is valid only in queries and never on a task.
func (f FilterOptions) CreationStatuses() []OptionItem {
	return creationOptions(f.Statuses, func(o OptionItem) int { return o.Order })
}

// CreationPriorities returns priorities sorted by weight, excluding "none".
func (f FilterOptions) CreationPriorities() []OptionItem {
	return creationOptions(f.Priorities, func(o OptionItem) int { return o.Weight })
}

func creationOptions(items []OptionItem, key func(OptionItem) int) []OptionItem {
	out := make([]OptionItem, 0, len(items))
	for _, item := range items {
		if item.Value == "none" {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) < key(out[j]) })
	return out
}

// ActiveSession is an in-progress time-tracking session as the API reports it.
type ActiveSession struct {
	Task struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"task"`
	Session struct {
		StartTime string `json:"startTime"`
	} `json:"session"`
	ElapsedMinutes int `json:"elapsedMinutes"`
}

// HealthStatus is the connectivity probe response, forwarded as-is.
type HealthStatus map[string]any

// TimeSummary is the aggregated time-tracking report, forwarded as-is.
type TimeSummary map[string]any
