package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-go-golems/taskshell/internal/config"
	"github.com/go-go-golems/taskshell/internal/executor"
	"github.com/go-go-golems/taskshell/internal/logx"
	"github.com/go-go-golems/taskshell/internal/procenv"
	"github.com/go-go-golems/taskshell/internal/scriptfinder"
	"github.com/go-go-golems/taskshell/internal/scriptparser"
	"github.com/go-go-golems/taskshell/internal/taskerr"
	"github.com/go-go-golems/taskshell/internal/valueprovider"
)

// runScript resolves args[0] to a script via the merged configuration's
// scripts paths, parses it, and executes it. Remaining args are split into
// KEY=VALUE pairs (stored in Config.Params and exposed as constants of the
// lowest precedence) and bare positional values (exposed as "1", "2", ...).
func runScript(cmd *cobra.Command, args []string) error {
	scriptName := args[0]
	params := splitParams(args[1:])

	cfg, err := loadConfigs(configPaths, params)
	if err != nil {
		return err
	}

	envName := viper.GetString("environment")
	env, ok := cfg.Environment(envName)
	if !ok {
		return &taskerr.ConfigError{Err: fmt.Errorf("environment %q is not defined", envName)}
	}

	logger := newLogger()

	scripts, err := scriptfinder.GetAllScripts(env.ScriptsPaths, logger.Warn)
	if err != nil {
		return err
	}

	script, err := scriptfinder.FindScriptByName(scripts, scriptName)
	if err != nil {
		return err
	}

	return runResolvedScript(cmd.Context(), env, scripts, script, params, logger)
}

func runResolvedScript(ctx context.Context, env *config.ConfigEnvironment, scripts []scriptfinder.Script, script scriptfinder.Script, params map[string]string, logger logx.Logger) error {
	raw, err := readScriptFile(script.Path())
	if err != nil {
		return err
	}

	loader := &finderLoader{scripts: scripts}
	commands, err := scriptparser.Parse(raw, script.Directory, script.Path(), loader)
	if err != nil {
		return err
	}

	constants := valueprovider.ResolveConstants(env.Constants.AsMap())
	for key, value := range params {
		if _, exists := constants[key]; exists {
			continue
		}
		constants[key] = valueprovider.NewSimple(value)
	}
	variables := valueprovider.ResolveVariables(env.DynamicVariables.AsMap())
	dotenv, err := valueprovider.ResolveDotenvVariables(env.DotenvPaths)
	if err != nil {
		return err
	}
	templates := valueprovider.ResolveTemplates(env.Templates)

	appDir := filepath.Dir(script.Path())
	processEnv := procenv.New(constants, variables, dotenv, templates, appDir)

	ex := executor.New(processEnv, logger)
	return ex.Execute(ctx, script.Name(), commands)
}

// splitParams partitions trailing CLI arguments into KEY=VALUE pairs and
// positional values, keyed "1", "2", ... in the order they appear.
func splitParams(args []string) map[string]string {
	out := map[string]string{}
	position := 0
	for _, a := range args {
		if key, value, ok := strings.Cut(a, "="); ok && key != "" {
			out[key] = value
			continue
		}
		position++
		out[fmt.Sprintf("%d", position)] = a
	}
	return out
}

func newLogger() logx.Logger {
	if strings.EqualFold(viper.GetString("log-format"), "json") {
		return logx.NewZerologLogger(viper.GetString("log-level"))
	}
	return logx.NewConsoleLogger(viper.GetBool("no-color"))
}
