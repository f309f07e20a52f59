package valueprovider

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/go-go-golems/taskshell/internal/taskerr"
)

// ResolveConstants wraps each constant value as a Simple provider.
func ResolveConstants(constants map[string]string) map[string]ValueProvider {
	out := make(map[string]ValueProvider, len(constants))
	for name, value := range constants {
		out[name] = NewSimple(value)
	}
	return out
}

// ResolveVariables wraps each dynamic variable's shell expression as a
// Deferred provider: on first GetValue, the expression runs under "sh -c"
// and its trimmed stdout becomes the value.
func ResolveVariables(variables map[string]string) map[string]ValueProvider {
	out := make(map[string]ValueProvider, len(variables))
	for name, expr := range variables {
		name, expr := name, expr
		out[name] = NewDeferred(func(ctx context.Context) (string, error) {
			cmd := exec.CommandContext(ctx, "sh", "-c", expr)
			var stdout bytes.Buffer
			cmd.Stdout = &stdout
			if err := cmd.Run(); err != nil {
				return "", &taskerr.ResolutionError{Name: name, Err: err}
			}
			return strings.TrimSpace(stdout.String()), nil
		})
	}
	return out
}
