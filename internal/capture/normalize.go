package capture

import (
	"strings"

	"taskclip/internal/config"
	"taskclip/internal/service"
)

// Fallback values applied when both the capture and settings are empty.
const (
	fallbackTag      = "web"
	fallbackStatus   = "open"
	fallbackPriority = "normal"
)

// ValidationError indicates a capture too incomplete to build a request.
// It is surfaced to the originating UI without reaching the network.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Normalize transforms a raw capture into a canonical task request, applying
// settings defaults and dropping empty fields. It is a pure function: no
// I/O, no mutation of its inputs.
//
// Only a missing title (after the surface-supplied fallback) is a hard
// failure; every other field is optional.
func Normalize(raw RawCapture, settings config.Settings) (service.TaskRequest, error) {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = strings.TrimSpace(raw.FallbackTitle)
	}
	if title == "" {
		return service.TaskRequest{}, &ValidationError{Msg: "title required"}
	}

	tags := raw.Tags.Values()
	if len(tags) == 0 {
		tags = parseListField([]string{settings.DefaultTags})
	}
	if len(tags) == 0 {
		tags = []string{fallbackTag}
	}

	status := strings.TrimSpace(raw.Status)
	if status == "" {
		status = strings.TrimSpace(settings.DefaultStatus)
	}
	if status == "" {
		status = fallbackStatus
	}

	priority := strings.TrimSpace(raw.Priority)
	if priority == "" {
		priority = strings.TrimSpace(settings.DefaultPriority)
	}
	if priority == "" {
		priority = fallbackPriority
	}

	req := service.TaskRequest{
		Title:           title,
		Status:          status,
		Priority:        priority,
		Tags:            tags,
		Contexts:        raw.Contexts.Values(),
		Projects:        raw.Projects.Values(),
		Details:         normalizeDetails(raw),
		Due:             strings.TrimSpace(raw.Due),
		Scheduled:       strings.TrimSpace(raw.Scheduled),
		CreationContext: "api",
	}

	if raw.TimeEstimate != nil && *raw.TimeEstimate >= 0 {
		estimate := *raw.TimeEstimate
		req.TimeEstimate = &estimate
	}

	return req, nil
}

// normalizeDetails prefers details over its notes synonym and appends the
// provenance line unless the source URL already appears in the text.
func normalizeDetails(raw RawCapture) string {
	details := strings.TrimSpace(raw.Details)
	if details == "" {
		details = strings.TrimSpace(raw.Notes)
	}

	url := strings.TrimSpace(raw.SourceURL)
	if url == "" || strings.Contains(details, url) {
		return details
	}

	line := "Created from: " + url
	if details == "" {
		return line
	}
	return details + "\n\n" + line
}
