package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskclip/internal/capture"
	"taskclip/internal/config"
	"taskclip/internal/exitcode"
	"taskclip/internal/hub"
)

func init() {
	Register(&IssueCmd{})
}

// IssueCmd implements the issue command: capture a GitHub issue or pull
// request. Mirrors the GitHub content-script button.
type IssueCmd struct {
	repo   string
	number int
	pr     bool
	url    string
}

func (c *IssueCmd) Name() string      { return "issue" }
func (c *IssueCmd) Aliases() []string { return nil }
func (c *IssueCmd) Synopsis() string  { return "Capture a GitHub issue or PR" }
func (c *IssueCmd) Usage() string {
	return "taskclip issue [--repo <owner/name>] [--number <n>] [--pr] [--url <url>] <title...>"
}
func (c *IssueCmd) NeedsHub() bool { return true }

func (c *IssueCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.repo, "repo", "", "")
	fs.IntVar(&c.number, "number", 0, "")
	fs.BoolVar(&c.pr, "pr", false, "")
	fs.StringVar(&c.url, "url", "", "")
	fs.StringVar(&c.url, "u", "", "")
}

func (c *IssueCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: issue title required")
		return exitcode.UserError
	}

	kind := "Issue"
	kindTag := "issue"
	if c.pr {
		kind = "PR"
		kindTag = "pr"
	}

	var lines []string
	if c.repo != "" {
		lines = append(lines, "Repo: "+c.repo)
	}
	if c.number > 0 {
		lines = append(lines, fmt.Sprintf("Number: #%d", c.number))
	}

	raw := capture.RawCapture{
		FallbackTitle: kind + ": " + title,
		Details:       strings.Join(lines, "\n"),
		Tags:          capture.StringList{"github", kindTag},
		SourceURL:     c.url,
	}
	return submitCapture(ctx, cfg, h, raw, out, errOut)
}
