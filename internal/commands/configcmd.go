package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"taskclip/internal/config"
	"taskclip/internal/exitcode"
	"taskclip/internal/hub"
)

func init() {
	Register(&ConfigCmd{})
}

// ConfigCmd implements the config command: show or change persisted
// settings. This is the only write path for the settings file; the
// dispatch pipeline only ever reads it.
type ConfigCmd struct{}

func (c *ConfigCmd) Name() string      { return "config" }
func (c *ConfigCmd) Aliases() []string { return nil }
func (c *ConfigCmd) Synopsis() string  { return "Show or change settings" }
func (c *ConfigCmd) Usage() string     { return "taskclip config [set <key> <value>]" }
func (c *ConfigCmd) NeedsHub() bool    { return false }

func (c *ConfigCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ConfigCmd) Run(ctx context.Context, cfg *config.Config, h *hub.Hub, args []string, out, errOut io.Writer) int {
	settings, err := cfg.LoadSettings()
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to load settings: %v\n", err)
		return exitcode.ConfigError
	}

	if len(args) == 0 {
		printSettings(out, cfg, settings)
		return exitcode.Success
	}

	if args[0] != "set" || len(args) != 3 {
		fmt.Fprintf(errOut, "usage: %s\n", c.Usage())
		return exitcode.UserError
	}

	key, value := args[1], args[2]
	if err := applySetting(&settings, key, value); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := cfg.SaveSettings(settings); err != nil {
		fmt.Fprintf(errOut, "error: failed to save settings: %v\n", err)
		return exitcode.ConfigError
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func printSettings(out io.Writer, cfg *config.Config, s config.Settings) {
	fmt.Fprintf(out, "config file:      %s\n", cfg.SettingsPath())
	fmt.Fprintf(out, "api_port:         %d\n", s.APIPort)
	fmt.Fprintf(out, "api_auth_token:   %s\n", maskToken(s.APIAuthToken))
	fmt.Fprintf(out, "default_tags:     %s\n", s.DefaultTags)
	fmt.Fprintf(out, "default_status:   %s\n", s.DefaultStatus)
	fmt.Fprintf(out, "default_priority: %s\n", s.DefaultPriority)
	fmt.Fprintf(out, "timeout_seconds:  %d\n", s.TimeoutSeconds)
}

func applySetting(s *config.Settings, key, value string) error {
	switch key {
	case "api_port":
		port, err := strconv.Atoi(value)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid port: %q", value)
		}
		s.APIPort = port
	case "api_auth_token":
		s.APIAuthToken = value
	case "default_tags":
		s.DefaultTags = value
	case "default_status":
		s.DefaultStatus = value
	case "default_priority":
		s.DefaultPriority = value
	case "timeout_seconds":
		secs, err := strconv.Atoi(value)
		if err != nil || secs <= 0 {
			return fmt.Errorf("invalid timeout: %q", value)
		}
		s.TimeoutSeconds = secs
	default:
		return fmt.Errorf("unknown setting: %q", key)
	}
	return nil
}

// maskToken hides all but the last four characters of the auth token.
func maskToken(token string) string {
	if token == "" {
		return "(unset)"
	}
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
