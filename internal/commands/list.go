package commands

import (
	"context"
	"flag"
	"io"

	"taskclip/internal/config"
	"taskclip/internal/exitcode"
	"taskclip/internal/hub"
	"taskclip/internal/output"
	"taskclip/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. Status filtering and the limit are
// applied client-side by the backend; see service.TaskFilters.
type ListCmd struct {
	status string
	limit  int
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "taskclip list [--status a,b] [--limit <n>]" }
func (c *ListCmd) NeedsHub() bool    { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "", "")
	fs.IntVar(&c.limit, "limit", 0, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	var filters *service.TaskFilters
	if c.status != "" || c.limit > 0 {
		filters = &service.TaskFilters{Status: c.status, Limit: c.limit}
	}

	result := h.Dispatch(ctx, hub.Request{
		Action:  hub.ActionGetTasks,
		Filters: filters,
	})
	if !result.Success {
		return renderFailure(result, errOut)
	}

	page, _ := result.Data.(service.TaskPage)
	output.FormatTaskPage(out, page)
	return exitcode.Success
}
