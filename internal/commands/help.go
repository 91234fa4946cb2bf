package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskclip/internal/config"
	"taskclip/internal/exitcode"
	"taskclip/internal/hub"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskclip help" }
func (c *HelpCmd) NeedsHub() bool    { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskclip                                           List tasks
  taskclip quick [common flags] [--url <url>] <title...>
  taskclip add [common flags] [flags] [<title...>]   Create a task with full control
  taskclip page [common flags] --url <url> [<title...>]
  taskclip selection [common flags] [--url <url>] <text...>
  taskclip link [common flags] [--found-on <url>] <url> [<text...>]
  taskclip issue [common flags] [--repo <r>] [--number <n>] [--pr] <title...>
  taskclip email [common flags] [--from <sender>] [--outlook] <subject...>
  taskclip list [common flags] [--status <s,...>] [--limit <n>]
  taskclip stats [common flags]
  taskclip options [common flags]
  taskclip health [common flags]
  taskclip tracking [common flags] [--watch] [--interval <dur>]
  taskclip start [common flags] <task-id>
  taskclip stop [common flags] <task-id>
  taskclip done [common flags] [--status <s>] <task-id>
  taskclip rm [common flags] <task-id>
  taskclip summary [common flags] [--period <p>]
  taskclip config [set <key> <value>]
  taskclip help
  taskclip version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
