// Package commands provides the command interface and implementations.
// Each command is one capture surface: it collects a raw capture or query,
// sends it through the hub, and renders the uniform result its own way.
package commands

import (
	"context"
	"flag"
	"io"

	"taskclip/internal/config"
	"taskclip/internal/hub"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsHub returns true if the command dispatches through the hub.
	// Commands like help, version, config return false.
	NeedsHub() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, flags).
	// h is nil if NeedsHub() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int
}
