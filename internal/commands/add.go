package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskclip/internal/capture"
	"taskclip/internal/config"
	"taskclip/internal/exitcode"
	"taskclip/internal/hub"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command: the full capture form. A capture can
// also be supplied as a YAML or JSON document via --file or --stdin, the
// way scraped page data arrives.
type AddCmd struct {
	notes     string
	tags      string
	contexts  string
	projects  string
	status    string
	priority  string
	due       string
	scheduled string
	estimate  int
	url       string
	file      string
	stdin     bool
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task from a capture" }
func (c *AddCmd) Usage() string {
	return "taskclip add [--notes <text>] [--tags a,b] [--contexts a,b] [--projects a,b] [--status <s>] [--priority <p>] [--due <date>] [--scheduled <date>] [--estimate <minutes>] [--url <url>] [--file <path> | --stdin] [title...]"
}
func (c *AddCmd) NeedsHub() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.notes, "notes", "", "")
	fs.StringVar(&c.tags, "tags", "", "")
	fs.StringVar(&c.contexts, "contexts", "", "")
	fs.StringVar(&c.projects, "projects", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.scheduled, "scheduled", "", "")
	fs.IntVar(&c.estimate, "estimate", -1, "")
	fs.StringVar(&c.url, "url", "", "")
	fs.StringVar(&c.url, "u", "", "")
	fs.StringVar(&c.file, "file", "", "")
	fs.StringVar(&c.file, "f", "", "")
	fs.BoolVar(&c.stdin, "stdin", false, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	raw, code := c.buildCapture(args, errOut)
	if code != exitcode.Success {
		return code
	}
	return submitCapture(ctx, cfg, h, raw, out, errOut)
}

func (c *AddCmd) buildCapture(args []string, errOut io.Writer) (capture.RawCapture, int) {
	var raw capture.RawCapture

	switch {
	case c.file != "":
		data, err := os.ReadFile(c.file)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return raw, exitcode.UserError
		}
		raw, err = capture.Decode(data)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return raw, exitcode.UserError
		}
	case c.stdin:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return raw, exitcode.UserError
		}
		raw, err = capture.Decode(data)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return raw, exitcode.UserError
		}
	}

	// Flags and positional title override the document.
	if title := strings.TrimSpace(strings.Join(args, " ")); title != "" {
		raw.Title = title
	}
	if c.notes != "" {
		raw.Notes = c.notes
	}
	if c.tags != "" {
		raw.Tags = capture.StringList{c.tags}
	}
	if c.contexts != "" {
		raw.Contexts = capture.StringList{c.contexts}
	}
	if c.projects != "" {
		raw.Projects = capture.StringList{c.projects}
	}
	if c.status != "" {
		raw.Status = c.status
	}
	if c.priority != "" {
		raw.Priority = c.priority
	}
	if c.due != "" {
		raw.Due = c.due
	}
	if c.scheduled != "" {
		raw.Scheduled = c.scheduled
	}
	if c.estimate >= 0 {
		estimate := c.estimate
		raw.TimeEstimate = &estimate
	}
	if c.url != "" {
		raw.SourceURL = c.url
	}

	return raw, exitcode.Success
}
