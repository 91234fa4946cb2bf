package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"taskclip/internal/config"
	"taskclip/internal/exitcode"
	"taskclip/internal/hub"
	"taskclip/internal/output"
	"taskclip/internal/service"
)

func init() {
	Register(&TrackingCmd{})
	Register(&StartCmd{})
	Register(&StopCmd{})
	Register(&SummaryCmd{})
}

// TrackingCmd implements the tracking command: show the active
// time-tracking session. With --watch it keeps the hub's poller running
// and prints the cached snapshot each cycle.
type TrackingCmd struct {
	watch    bool
	interval time.Duration
}

func (c *TrackingCmd) Name() string      { return "tracking" }
func (c *TrackingCmd) Aliases() []string { return nil }
func (c *TrackingCmd) Synopsis() string  { return "Show active time tracking" }
func (c *TrackingCmd) Usage() string     { return "taskclip tracking [--watch] [--interval <dur>]" }
func (c *TrackingCmd) NeedsHub() bool    { return true }

func (c *TrackingCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.watch, "watch", false, "")
	fs.DurationVar(&c.interval, "interval", 5*time.Second, "")
}

func (c *TrackingCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	if !c.watch {
		result := h.Dispatch(ctx, hub.Request{Action: hub.ActionGetCurrentTimeTracking})
		if !result.Success {
			return renderFailure(result, errOut)
		}
		tracking, _ := result.Data.(*hub.TimeTracking)
		output.FormatTracking(out, tracking)
		return exitcode.Success
	}

	h.SetPollInterval(c.interval)
	go h.RunPoller(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return exitcode.Success
		case <-ticker.C:
			output.FormatTracking(out, h.CurrentTracking())
		}
	}
}

// StartCmd implements the start command: begin time tracking on a task.
type StartCmd struct{}

func (c *StartCmd) Name() string      { return "start" }
func (c *StartCmd) Aliases() []string { return nil }
func (c *StartCmd) Synopsis() string  { return "Start time tracking on a task" }
func (c *StartCmd) Usage() string     { return "taskclip start <task-id>" }
func (c *StartCmd) NeedsHub() bool    { return true }

func (c *StartCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StartCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	return runTrackingAction(ctx, cfg, h, hub.ActionStartTimeTracking, args, out, errOut)
}

// StopCmd implements the stop command: end time tracking on a task.
type StopCmd struct{}

func (c *StopCmd) Name() string      { return "stop" }
func (c *StopCmd) Aliases() []string { return nil }
func (c *StopCmd) Synopsis() string  { return "Stop time tracking on a task" }
func (c *StopCmd) Usage() string     { return "taskclip stop <task-id>" }
func (c *StopCmd) NeedsHub() bool    { return true }

func (c *StopCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StopCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	return runTrackingAction(ctx, cfg, h, hub.ActionStopTimeTracking, args, out, errOut)
}

func runTrackingAction(ctx context.Context, cfg *config.Config, h *hub.Hub, action string, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task id required")
		return exitcode.UserError
	}

	result := h.Dispatch(ctx, hub.Request{Action: action, TaskID: args[0]})
	if !result.Success {
		return renderFailure(result, errOut)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// SummaryCmd implements the summary command: tracked time for a period.
type SummaryCmd struct {
	period string
}

func (c *SummaryCmd) Name() string      { return "summary" }
func (c *SummaryCmd) Aliases() []string { return nil }
func (c *SummaryCmd) Synopsis() string  { return "Show tracked time for a period" }
func (c *SummaryCmd) Usage() string     { return "taskclip summary [--period today|week|month]" }
func (c *SummaryCmd) NeedsHub() bool    { return true }

func (c *SummaryCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.period, "period", "today", "")
}

func (c *SummaryCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	result := h.Dispatch(ctx, hub.Request{Action: hub.ActionGetTimeSummary, Period: c.period})
	if !result.Success {
		return renderFailure(result, errOut)
	}
	summary, _ := result.Data.(service.TimeSummary)
	output.FormatSummary(out, summary)
	return exitcode.Success
}
