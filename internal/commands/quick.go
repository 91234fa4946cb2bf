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
	Register(&QuickCmd{})
}

// QuickCmd implements the quick command: title plus settings defaults,
// nothing else. Mirrors the popup's one-click add.
type QuickCmd struct {
	url string
}

func (c *QuickCmd) Name() string      { return "quick" }
func (c *QuickCmd) Aliases() []string { return []string{"q"} }
func (c *QuickCmd) Synopsis() string  { return "Create a task with defaults only" }
func (c *QuickCmd) Usage() string     { return "taskclip quick [--url <url>] <title...>" }
func (c *QuickCmd) NeedsHub() bool    { return true }

func (c *QuickCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.url, "url", "", "")
	fs.StringVar(&c.url, "u", "", "")
}

func (c *QuickCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	raw := capture.RawCapture{
		Title:     title,
		SourceURL: c.url,
	}
	return submitCapture(ctx, cfg, h, raw, out, errOut)
}
