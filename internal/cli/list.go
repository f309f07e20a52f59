package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-go-golems/taskshell/internal/scriptfinder"
)

var listCmd = &cobra.Command{
	Use:   "list [name-selector...]",
	Short: "List the visible scripts in the current environment",
	Long:  "List the visible scripts in the current environment. With one or more name-selectors, only scripts whose name or namespace exactly matches a selector are shown.",
	Args:  cobra.ArbitraryArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigs(configPaths, nil)
	if err != nil {
		return err
	}

	envName := viper.GetString("environment")
	env, ok := cfg.Environment(envName)
	if !ok {
		return fmt.Errorf("environment %q is not defined", envName)
	}

	logger := newLogger()
	scripts, err := scriptfinder.GetAllVisibleScripts(env.ScriptsPaths, logger.Warn)
	if err != nil {
		return err
	}

	scripts = scriptfinder.FilterScriptsBySelectors(scripts, args)

	names := make([]string, 0, len(scripts))
	for _, s := range scripts {
		names = append(names, s.Name())
	}
	sort.Strings(names)

	if cfg.Header != "" {
		fmt.Println(cfg.Header)
	}
	for _, name := range names {
		fmt.Println("  " + name)
	}
	return nil
}
