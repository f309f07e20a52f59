// Package procenv builds the flat name/value space and exec.Cmd factory a
// running script draws from: constants, dynamic variables, and dotenv
// files merged by precedence, plus the environment's template list.
package procenv

import (
	"context"
	"os"
	"os/exec"

	"github.com/go-go-golems/taskshell/internal/valueprovider"
)

// ProcessEnvironment holds the resolved value-provider sets for one script
// run, plus the application directory new child processes are rooted in.
type ProcessEnvironment struct {
	Constants map[string]valueprovider.ValueProvider
	Variables map[string]valueprovider.ValueProvider
	Dotenv    map[string]valueprovider.ValueProvider
	Templates []valueprovider.Template

	AppDir string
}

// New constructs a ProcessEnvironment from the three resolved provider
// sets, the environment's template list, and the application directory.
func New(constants, variables, dotenv map[string]valueprovider.ValueProvider, templates []valueprovider.Template, appDir string) *ProcessEnvironment {
	return &ProcessEnvironment{
		Constants: constants,
		Variables: variables,
		Dotenv:    dotenv,
		Templates: templates,
		AppDir:    appDir,
	}
}

// GetAllValues merges the three provider sets by precedence, highest last:
// dotenv < constants < variables. A host environment variable of the same
// name as a dotenv entry overrides that dotenv value, but never a constant
// or dynamic variable.
func (p *ProcessEnvironment) GetAllValues() map[string]valueprovider.ValueProvider {
	out := map[string]valueprovider.ValueProvider{}

	for name, provider := range p.Dotenv {
		if hostValue, ok := os.LookupEnv(name); ok {
			out[name] = valueprovider.NewSimple(hostValue)
			continue
		}
		out[name] = provider
	}
	for name, provider := range p.Constants {
		out[name] = provider
	}
	for name, provider := range p.Variables {
		out[name] = provider
	}
	return out
}

// GetTemplates returns the environment-level template declarations.
func (p *ProcessEnvironment) GetTemplates() []valueprovider.Template {
	return p.Templates
}

// CreateProcess builds an *exec.Cmd for commandLine, run through the host
// shell, rooted at the application directory, with no context timeout
// (the executor is responsible for cancellation on signal, not on a
// deadline). When tty is set, the child inherits the controlling
// terminal's stdin instead of running detached from it.
func (p *ProcessEnvironment) CreateProcess(ctx context.Context, commandLine string, tty bool) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "sh", "-c", commandLine)
	cmd.Dir = p.AppDir
	if tty {
		cmd.Stdin = os.Stdin
	}
	return cmd
}
