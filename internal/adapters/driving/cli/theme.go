package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the colour theme",
	Long: `Shows the current light/dark theme. Use the subcommands to change it.
The choice is remembered between runs.`,
	RunE: runThemeGet,
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current theme",
	Args:  cobra.NoArgs,
	RunE:  runThemeGet,
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between light and dark",
	Args:  cobra.NoArgs,
	RunE:  runThemeToggle,
}

var themeSetCmd = &cobra.Command{
	Use:       "set [light|dark]",
	Short:     "Set the theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(domain.ThemeLight), string(domain.ThemeDark)},
	RunE:      runThemeSet,
}

func init() {
	themeCmd.AddCommand(themeGetCmd)
	themeCmd.AddCommand(themeToggleCmd)
	themeCmd.AddCommand(themeSetCmd)
	rootCmd.AddCommand(themeCmd)
}

func runThemeGet(cmd *cobra.Command, _ []string) error {
	if themeService == nil {
		return errNotConfigured("theme")
	}
	cmd.Println(themeService.Get())
	return nil
}

func runThemeToggle(cmd *cobra.Command, _ []string) error {
	if themeService == nil {
		return errNotConfigured("theme")
	}
	cmd.Printf("Theme set to %s\n", themeService.Toggle())
	return nil
}

func runThemeSet(cmd *cobra.Command, args []string) error {
	if themeService == nil {
		return errNotConfigured("theme")
	}
	mode, ok := domain.ParseThemeMode(strings.ToLower(strings.TrimSpace(args[0])))
	if !ok {
		return fmt.Errorf("invalid theme %q: want light or dark", args[0])
	}
	cmd.Printf("Theme set to %s\n", themeService.Set(mode))
	return nil
}
