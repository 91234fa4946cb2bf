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
	Register(&EmailCmd{})
}

// EmailCmd implements the email command: capture a mail message as a task.
// Mirrors the Gmail and Outlook content-script buttons.
type EmailCmd struct {
	from    string
	url     string
	outlook bool
}

func (c *EmailCmd) Name() string      { return "email" }
func (c *EmailCmd) Aliases() []string { return []string{"mail"} }
func (c *EmailCmd) Synopsis() string  { return "Capture an email message" }
func (c *EmailCmd) Usage() string {
	return "taskclip email [--from <sender>] [--url <url>] [--outlook] <subject...>"
}
func (c *EmailCmd) NeedsHub() bool { return true }

func (c *EmailCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.from, "from", "", "")
	fs.StringVar(&c.url, "url", "", "")
	fs.StringVar(&c.url, "u", "", "")
	fs.BoolVar(&c.outlook, "outlook", false, "")
}

func (c *EmailCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	subject := strings.TrimSpace(strings.Join(args, " "))
	if subject == "" {
		fmt.Fprintln(errOut, "error: email subject required")
		return exitcode.UserError
	}

	providerTag := "gmail"
	if c.outlook {
		providerTag = "outlook"
	}

	lines := []string{}
	if c.from != "" {
		lines = append(lines, "From: "+c.from)
	}
	lines = append(lines, "Subject: "+subject)

	raw := capture.RawCapture{
		FallbackTitle: "Email: " + subject,
		Details:       strings.Join(lines, "\n"),
		Tags:          capture.StringList{"email", providerTag},
		SourceURL:     c.url,
	}
	return submitCapture(ctx, cfg, h, raw, out, errOut)
}
