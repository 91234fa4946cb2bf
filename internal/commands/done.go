package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskclip/internal/config"
	"taskclip/internal/exitcode"
	"taskclip/internal/hub"
	"taskclip/internal/service"
)

func init() {
	Register(&DoneCmd{})
	Register(&RmCmd{})
}

// DoneCmd implements the done command: mark a task completed via a partial
// update.
type DoneCmd struct {
	status string
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "taskclip done [--status <s>] <task-id>" }
func (c *DoneCmd) NeedsHub() bool    { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "done", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task id required")
		return exitcode.UserError
	}

	result := h.Dispatch(ctx, hub.Request{
		Action:  hub.ActionUpdateTask,
		TaskID:  args[0],
		Updates: service.TaskUpdates{"status": c.status},
	})
	if !result.Success {
		return renderFailure(result, errOut)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "taskclip rm <task-id>" }
func (c *RmCmd) NeedsHub() bool    { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task id required")
		return exitcode.UserError
	}

	result := h.Dispatch(ctx, hub.Request{Action: hub.ActionDeleteTask, TaskID: args[0]})
	if !result.Success {
		return renderFailure(result, errOut)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
