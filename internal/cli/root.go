// Package cli wires the config loader, script finder, parser, and
// executor together behind a cobra command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configPaths []string
	logFormat   string
	logLevel    string
	noColor     bool
	environment string
)

// RootCmd is the taskshell entry point: `taskshell <script-name> [params…]`.
var RootCmd = &cobra.Command{
	Use:           "taskshell <script-name> [params...]",
	Short:         "Run declaratively configured shell scripts",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.MinimumNArgs(1),
	RunE:          runScript,
}

func init() {
	RootCmd.PersistentFlags().StringArrayVar(&configPaths, "config", []string{"taskshell.yaml"}, "configuration file (repeatable; later files override earlier)")
	RootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log output format: console|json")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")
	RootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored console output")
	RootCmd.PersistentFlags().StringVar(&environment, "environment", "", "named environment to run in (defaults to the config's default environment)")

	cobra.CheckErr(viper.BindPFlag("log-format", RootCmd.PersistentFlags().Lookup("log-format")))
	cobra.CheckErr(viper.BindPFlag("log-level", RootCmd.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("no-color", RootCmd.PersistentFlags().Lookup("no-color")))
	cobra.CheckErr(viper.BindPFlag("environment", RootCmd.PersistentFlags().Lookup("environment")))
	viper.SetEnvPrefix("taskshell")
	viper.AutomaticEnv()

	RootCmd.AddCommand(listCmd)
}

// Execute runs the root command and returns a process exit code.
func Execute() int {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, RootCmd.Use+":", err)
		return ExitCodeFor(err)
	}
	return 0
}
