// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"taskclip/internal/hub"
	"taskclip/internal/service"
)

// FormatCreated formats the confirmation line after a task is created.
func FormatCreated(w io.Writer, record service.TaskRecord) {
	title := normalizeTitle(record.Title)
	if ref := record.Ref(); ref != "" {
		fmt.Fprintf(w, "task created: %s (%s)\n", title, ref)
		return
	}
	fmt.Fprintf(w, "task created: %s\n", title)
}

// FormatTask formats a task line for the list command.
// Format: "{N:>4}  {STATUS:<12}  {TITLE}\n"
func FormatTask(w io.Writer, num int, task service.TaskRecord) {
	fmt.Fprintf(w, "%4d  %-12s  %s\n", num, task.Status, normalizeTitle(task.Title))
}

// FormatTaskPage formats a page of tasks with a trailing count line.
func FormatTaskPage(w io.Writer, page service.TaskPage) {
	for i, task := range page.Tasks {
		FormatTask(w, i+1, task)
	}
	if page.Filtered > 0 && page.Filtered != page.Total {
		fmt.Fprintf(w, "%d of %d tasks\n", page.Filtered, page.Total)
		return
	}
	fmt.Fprintf(w, "%d tasks\n", page.Total)
}

// FormatStats formats the task counters.
func FormatStats(w io.Writer, stats service.Stats) {
	fmt.Fprintf(w, "total:     %d\n", stats.Total)
	fmt.Fprintf(w, "active:    %d\n", stats.Active)
	fmt.Fprintf(w, "completed: %d\n", stats.Completed)
	fmt.Fprintf(w, "overdue:   %d\n", stats.Overdue)
}

// FormatOptions formats the creation-time picker choices. Statuses and
// priorities arrive already sorted and stripped of the "none" pseudo-value.
func FormatOptions(w io.Writer, options service.FilterOptions) {
	fmt.Fprintln(w, "statuses:")
	for _, item := range options.CreationStatuses() {
		fmt.Fprintf(w, "  %s  %s\n", item.Value, item.Label)
	}
	fmt.Fprintln(w, "priorities:")
	for _, item := range options.CreationPriorities() {
		fmt.Fprintf(w, "  %s  %s\n", item.Value, item.Label)
	}
	formatNames(w, "contexts", options.Contexts)
	formatNames(w, "projects", options.Projects)
	formatNames(w, "tags", options.Tags)
}

func formatNames(w io.Writer, header string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", header)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", name)
	}
}

// FormatTracking formats the current time-tracking session.
func FormatTracking(w io.Writer, tracking *hub.TimeTracking) {
	if tracking == nil {
		fmt.Fprintln(w, "no active time tracking")
		return
	}
	fmt.Fprintf(w, "tracking: %s (%s)\n", normalizeTitle(tracking.TaskTitle), tracking.TaskID)
	if tracking.StartTime != "" {
		fmt.Fprintf(w, "  started: %s\n", tracking.StartTime)
	}
	fmt.Fprintf(w, "  elapsed: %dm\n", tracking.ElapsedTime/60000)
}

// FormatHealth formats the connectivity probe result, sorted by key.
func FormatHealth(w io.Writer, status service.HealthStatus) {
	fmt.Fprintln(w, "ok")
	keys := make([]string, 0, len(status))
	for key := range status {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "  %s: %v\n", key, status[key])
	}
}

// FormatSummary formats a time summary, sorted by key.
func FormatSummary(w io.Writer, summary service.TimeSummary) {
	if len(summary) == 0 {
		fmt.Fprintln(w, "no time tracked")
		return
	}
	keys := make([]string, 0, len(summary))
	for key := range summary {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "%s: %v\n", key, summary[key])
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
