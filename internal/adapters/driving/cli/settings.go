package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage client settings",
	Long: `View and configure the triage endpoint, request timeout and UI options.

Settings are stored in ~/.minairva/config.toml. The MINAIRVA_API_URL and
REACT_APP_API_URL environment variables and the --api-url flag override
the stored endpoint.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsAPIURLCmd = &cobra.Command{
	Use:   "api-url [url]",
	Short: "Set the triage service endpoint",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsAPIURL,
}

var settingsTimeoutCmd = &cobra.Command{
	Use:   "timeout [duration]",
	Short: "Set the request timeout, e.g. 45s",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsTimeout,
}

var settingsReducedMotionCmd = &cobra.Command{
	Use:       "reduced-motion [on|off]",
	Short:     "Turn the UI animations off or on",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runSettingsReducedMotion,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsAPIURLCmd)
	settingsCmd.AddCommand(settingsTimeoutCmd)
	settingsCmd.AddCommand(settingsReducedMotionCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings := settingsService.Get()
	if opts, err := parseOptions(); err == nil {
		settings = opts.Apply(settings)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Printf("API URL:         %s\n", settings.APIURL)
	cmd.Printf("Timeout:         %s\n", settings.Timeout)
	cmd.Printf("Rate limit:      %.1f/s (burst %d)\n", settings.RatePerSecond, settings.RateBurst)
	cmd.Printf("Circuit breaker: %s (opens after %d failures, %s cooldown)\n",
		onOff(settings.Breaker), settings.BreakerFailures, settings.BreakerCooldown)
	cmd.Printf("Text clean-up:   %s\n", processorList(settings.Processors))
	cmd.Printf("Reduced motion:  %s\n", onOff(settings.ReducedMotion))
	cmd.Printf("Preferences:     %s\n", settings.PrefsBackend)
	if themeService != nil {
		cmd.Printf("Theme:           %s\n", themeService.Get())
	}
	return nil
}

func runSettingsAPIURL(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	if err := settingsService.SetAPIURL(args[0]); err != nil {
		return fmt.Errorf("failed to save API URL: %w", err)
	}
	cmd.Printf("API URL set to %s\n", args[0])
	return nil
}

func runSettingsTimeout(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	if err := settingsService.SetTimeout(args[0]); err != nil {
		return fmt.Errorf("failed to save timeout: %w", err)
	}
	cmd.Printf("Timeout set to %s\n", settingsService.Get().Timeout)
	return nil
}

func runSettingsReducedMotion(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	reduced, err := parseOnOff(args[0])
	if err != nil {
		return err
	}
	if err := settingsService.SetReducedMotion(reduced); err != nil {
		return fmt.Errorf("failed to save reduced motion: %w", err)
	}
	cmd.Printf("Reduced motion %s\n", onOff(reduced))
	return nil
}

func processorList(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid value %q: want on or off", s)
	}
	return v, nil
}
