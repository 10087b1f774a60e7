// Package cli provides the command-line interface for minairva.
// Commands are registered on a package-level root command in init()
// and reach the core through driving ports set by main.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
	"github.com/custodia-labs/minairva-cli/internal/core/ports/driving"
	"github.com/custodia-labs/minairva-cli/internal/logger"
)

// version is the build version, set by main.
var version = "dev"

// Driving ports used by the commands. Nil until main bootstraps them.
var (
	triageService   driving.TriageOrchestrator
	themeService    driving.ThemeService
	settingsService driving.SettingsService
	tuiLogPath      string
	closeServices   func() error
)

// Persistent flag values.
var (
	verboseFlag      bool
	apiURLFlag       string
	timeoutFlag      string
	configDirFlag    string
	prefsBackendFlag string
)

// skipBootstrap marks commands that run without services.
const skipBootstrap = "minairva/skip-bootstrap"

// Options carries the persistent flags to the bootstrap function.
type Options struct {
	Verbose      bool
	APIURL       string
	Timeout      time.Duration
	ConfigDir    string
	PrefsBackend domain.PrefsBackend
}

// Apply layers the flag overrides on top of stored settings.
func (o Options) Apply(settings domain.ClientSettings) domain.ClientSettings {
	if o.APIURL != "" {
		settings.APIURL = o.APIURL
	}
	if o.Timeout > 0 {
		settings.Timeout = o.Timeout
	}
	if o.PrefsBackend != "" {
		settings.PrefsBackend = o.PrefsBackend
	}
	return settings
}

// Services is what the bootstrap function wires up.
type Services struct {
	Triage   driving.TriageOrchestrator
	Theme    driving.ThemeService
	Settings driving.SettingsService

	// LogPath receives log output while the TUI owns the terminal.
	LogPath string

	// Close releases stores opened during bootstrap. Optional.
	Close func() error
}

// Bootstrap builds the services once flags are parsed.
type Bootstrap func(opts Options) (*Services, error)

var bootstrap Bootstrap

// isInteractive reports whether both stdin and stdout are terminals.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

var rootCmd = &cobra.Command{
	Use:   "minairva",
	Short: "Legal document triage from the terminal",
	Long: `minairva sends a contract to the triage service and shows what came back:
the document type, the key clauses and any flagged risks.

Run without arguments in a terminal to open the interactive UI.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runRoot,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&apiURLFlag, "api-url", "", "triage service endpoint")
	flags.StringVar(&timeoutFlag, "timeout", "", "request timeout, e.g. 30s")
	flags.StringVar(&configDirFlag, "config-dir", "", "configuration directory (default ~/.minairva)")
	flags.StringVar(&prefsBackendFlag, "prefs-backend", "", "preference store: file, sqlite or memory")

	// cmd.Print* default to stderr; results belong on stdout.
	rootCmd.SetOut(os.Stdout)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that builds services from flags.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs services directly, bypassing bootstrap.
func SetServices(s *Services) {
	if s == nil {
		triageService, themeService, settingsService = nil, nil, nil
		tuiLogPath, closeServices = "", nil
		return
	}
	triageService = s.Triage
	themeService = s.Theme
	settingsService = s.Settings
	tuiLogPath = s.LogPath
	closeServices = s.Close
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, typically cancelled on SIGINT.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// parseOptions validates the persistent flags.
func parseOptions() (Options, error) {
	opts := Options{
		Verbose:   verboseFlag,
		APIURL:    apiURLFlag,
		ConfigDir: configDirFlag,
	}

	if timeoutFlag != "" {
		d, err := time.ParseDuration(timeoutFlag)
		if err != nil || d <= 0 {
			return opts, fmt.Errorf("invalid --timeout %q: want a positive duration such as 30s", timeoutFlag)
		}
		opts.Timeout = d
	}

	if prefsBackendFlag != "" {
		backend := domain.PrefsBackend(prefsBackendFlag)
		if !backend.IsValid() {
			return opts, fmt.Errorf("invalid --prefs-backend %q: want file, sqlite or memory", prefsBackendFlag)
		}
		opts.PrefsBackend = backend
	}

	return opts, nil
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	opts, err := parseOptions()
	if err != nil {
		return err
	}

	if cmd.Annotations[skipBootstrap] == "true" || bootstrap == nil || triageService != nil {
		return nil
	}

	logger.Section("bootstrap")
	svc, err := bootstrap(opts)
	if err != nil {
		return fmt.Errorf("starting minairva: %w", err)
	}
	SetServices(svc)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeServices == nil {
		return nil
	}
	closer := closeServices
	closeServices = nil
	return closer()
}

func runRoot(cmd *cobra.Command, args []string) error {
	if !isInteractive() {
		return cmd.Help()
	}
	return runTUI(cmd, args)
}

// errNotConfigured is returned by commands whose service was never set.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
