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
	Register(&PageCmd{})
}

// PageCmd implements the page command: capture a web page for review.
// Mirrors the "add page" context-menu entry.
type PageCmd struct {
	url string
}

func (c *PageCmd) Name() string      { return "page" }
func (c *PageCmd) Aliases() []string { return nil }
func (c *PageCmd) Synopsis() string  { return "Capture a page for review" }
func (c *PageCmd) Usage() string     { return "taskclip page --url <url> <page-title...>" }
func (c *PageCmd) NeedsHub() bool    { return true }

func (c *PageCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.url, "url", "", "")
	fs.StringVar(&c.url, "u", "", "")
}

func (c *PageCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	pageTitle := strings.TrimSpace(strings.Join(args, " "))
	if pageTitle == "" && c.url == "" {
		fmt.Fprintln(errOut, "error: page title or --url required")
		return exitcode.UserError
	}

	fallback := "Review: " + pageTitle
	if pageTitle == "" {
		fallback = "Review: " + c.url
	}

	raw := capture.RawCapture{
		FallbackTitle: fallback,
		Tags:          capture.StringList{"web", "review"},
		SourceURL:     c.url,
	}
	return submitCapture(ctx, cfg, h, raw, out, errOut)
}
