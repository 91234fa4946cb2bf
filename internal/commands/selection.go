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
	Register(&SelectionCmd{})
	Register(&LinkCmd{})
}

// selectionTitleLimit bounds how much of the selected text lands in the title.
const selectionTitleLimit = 50

// SelectionCmd implements the selection command: follow up on a piece of
// selected text. Mirrors the "add selection" context-menu entry.
type SelectionCmd struct {
	url string
}

func (c *SelectionCmd) Name() string      { return "selection" }
func (c *SelectionCmd) Aliases() []string { return []string{"sel"} }
func (c *SelectionCmd) Synopsis() string  { return "Capture selected text for follow-up" }
func (c *SelectionCmd) Usage() string     { return "taskclip selection [--url <url>] <text...>" }
func (c *SelectionCmd) NeedsHub() bool    { return true }

func (c *SelectionCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.url, "url", "", "")
	fs.StringVar(&c.url, "u", "", "")
}

func (c *SelectionCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		fmt.Fprintln(errOut, "error: selection text required")
		return exitcode.UserError
	}

	title := text
	if len(title) > selectionTitleLimit {
		title = title[:selectionTitleLimit] + "..."
	}

	raw := capture.RawCapture{
		FallbackTitle: "Follow up: " + title,
		Details:       fmt.Sprintf("Selected text: %q", text),
		Tags:          capture.StringList{"web", "follow-up"},
		SourceURL:     c.url,
	}
	return submitCapture(ctx, cfg, h, raw, out, errOut)
}

// LinkCmd implements the link command: check out a link found on a page.
// Mirrors the "add link" context-menu entry.
type LinkCmd struct {
	foundOn string
}

func (c *LinkCmd) Name() string      { return "link" }
func (c *LinkCmd) Aliases() []string { return nil }
func (c *LinkCmd) Synopsis() string  { return "Capture a link to check" }
func (c *LinkCmd) Usage() string     { return "taskclip link [--found-on <url>] <link-url>" }
func (c *LinkCmd) NeedsHub() bool    { return true }

func (c *LinkCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.foundOn, "found-on", "", "")
}

func (c *LinkCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: link url required")
		return exitcode.UserError
	}
	linkURL := strings.TrimSpace(args[0])
	if linkURL == "" {
		fmt.Fprintln(errOut, "error: link url required")
		return exitcode.UserError
	}

	details := "Link: " + linkURL
	if c.foundOn != "" {
		details += "\nFound on: " + c.foundOn
	}

	raw := capture.RawCapture{
		FallbackTitle: "Check link: " + linkURL,
		Details:       details,
		Tags:          capture.StringList{"web", "link"},
		SourceURL:     c.foundOn,
	}
	return submitCapture(ctx, cfg, h, raw, out, errOut)
}
