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
	Register(&StatsCmd{})
	Register(&OptionsCmd{})
	Register(&HealthCmd{})
}

// StatsCmd implements the stats command.
type StatsCmd struct{}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return nil }
func (c *StatsCmd) Synopsis() string  { return "Show task statistics" }
func (c *StatsCmd) Usage() string     { return "taskclip stats" }
func (c *StatsCmd) NeedsHub() bool    { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	result := h.Dispatch(ctx, hub.Request{Action: hub.ActionGetStats})
	if !result.Success {
		return renderFailure(result, errOut)
	}
	stats, _ := result.Data.(service.Stats)
	output.FormatStats(out, stats)
	return exitcode.Success
}

// OptionsCmd implements the options command: the choices available when
// creating a task.
type OptionsCmd struct{}

func (c *OptionsCmd) Name() string      { return "options" }
func (c *OptionsCmd) Aliases() []string { return nil }
func (c *OptionsCmd) Synopsis() string  { return "Show statuses, priorities, contexts, projects, tags" }
func (c *OptionsCmd) Usage() string     { return "taskclip options" }
func (c *OptionsCmd) NeedsHub() bool    { return true }

func (c *OptionsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *OptionsCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	result := h.Dispatch(ctx, hub.Request{Action: hub.ActionGetFilterOptions})
	if !result.Success {
		return renderFailure(result, errOut)
	}
	options, _ := result.Data.(service.FilterOptions)
	output.FormatOptions(out, options)
	return exitcode.Success
}

// HealthCmd implements the health command: the connectivity probe.
type HealthCmd struct{}

func (c *HealthCmd) Name() string      { return "health" }
func (c *HealthCmd) Aliases() []string { return []string{"ping"} }
func (c *HealthCmd) Synopsis() string  { return "Test the API connection" }
func (c *HealthCmd) Usage() string     { return "taskclip health" }
func (c *HealthCmd) NeedsHub() bool    { return true }

func (c *HealthCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HealthCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	result := h.Dispatch(ctx, hub.Request{Action: hub.ActionTestConnection})
	if !result.Success {
		return renderFailure(result, errOut)
	}
	status, _ := result.Data.(service.HealthStatus)
	output.FormatHealth(out, status)
	return exitcode.Success
}
