package commands

import (
	"context"
	"fmt"
	"io"

	"taskclip/internal/capture"
	"taskclip/internal/config"
	"taskclip/internal/exitcode"
	"taskclip/internal/hub"
	"taskclip/internal/output"
	"taskclip/internal/service"
)

// submitCapture is the shared create path for every capture surface: send
// the raw capture through the hub and render the uniform result.
func submitCapture(ctx context.Context, cfg *config.Config, h *hub.Hub, raw capture.RawCapture, out, errOut io.Writer) int {
	result := h.Dispatch(ctx, hub.Request{
		Action:  hub.ActionCreateTask,
		Capture: &raw,
	})
	if !result.Success {
		return renderFailure(result, errOut)
	}

	if !cfg.Quiet {
		record, _ := result.Data.(service.TaskRecord)
		output.FormatCreated(out, record)
	}
	return exitcode.Success
}

// renderFailure prints the uniform failure shape and maps its kind to an
// exit code. Commands branch on nothing else.
func renderFailure(result hub.Result, errOut io.Writer) int {
	fmt.Fprintf(errOut, "error: %s\n", result.Error)
	switch result.Kind {
	case hub.KindConfig:
		return exitcode.ConfigError
	case hub.KindBackend:
		return exitcode.BackendError
	default:
		return exitcode.UserError
	}
}
