// Package capture defines raw page captures and their normalization into
// API-ready task requests.
package capture

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// StringList accepts either an array of strings or a single comma-separated
// string when decoded from JSON or YAML. Scraped captures use both shapes.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("expected string or list of strings")
	}
	*l = []string{one}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	var many []string
	if err := node.Decode(&many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := node.Decode(&one); err != nil {
		return fmt.Errorf("line %d: expected string or list of strings", node.Line)
	}
	*l = []string{one}
	return nil
}

// Values splits comma-separated entries, trims each, and drops empties.
func (l StringList) Values() []string {
	return parseListField(l)
}

// parseListField flattens a loosely-typed list into trimmed, non-empty
// entries. Every list-valued capture field passes through here so the
// array-or-comma-string ambiguity never leaks past this package.
func parseListField(entries []string) []string {
	var out []string
	for _, entry := range entries {
		for _, part := range strings.Split(entry, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// RawCapture holds unvalidated, partially-populated task fields harvested
// from some UI surface. All fields are optional; unknown keys in decoded
// documents are ignored.
type RawCapture struct {
	Title     string     `json:"title" yaml:"title"`
	Details   string     `json:"details" yaml:"details"`
	Notes     string     `json:"notes" yaml:"notes"`
	Tags      StringList `json:"tags" yaml:"tags"`
	Contexts  StringList `json:"contexts" yaml:"contexts"`
	Projects  StringList `json:"projects" yaml:"projects"`
	Status    string     `json:"status" yaml:"status"`
	Priority  string     `json:"priority" yaml:"priority"`
	Due       string     `json:"due" yaml:"due"`
	Scheduled string     `json:"scheduled" yaml:"scheduled"`

	// TimeEstimate is in minutes. Nil means unset.
	TimeEstimate *int `json:"timeEstimate" yaml:"timeEstimate"`

	// SourceURL is the provenance of the capture, attached by the
	// originating surface.
	SourceURL string `json:"sourceUrl" yaml:"sourceUrl"`

	// FallbackTitle is used when Title is empty. Each surface supplies
	// its own, e.g. "Review: <page title>" or "Email: <subject>".
	FallbackTitle string `json:"fallbackTitle" yaml:"fallbackTitle"`
}

// Decode parses a capture document. YAML is the default; data starting
// with '{' is treated as JSON.
func Decode(data []byte) (RawCapture, error) {
	var raw RawCapture
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
			return RawCapture{}, fmt.Errorf("decode capture: %w", err)
		}
		return raw, nil
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return RawCapture{}, fmt.Errorf("decode capture: %w", err)
	}
	return raw, nil
}
