package executor

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/go-go-golems/taskshell/internal/taskerr"
	"github.com/go-go-golems/taskshell/internal/templateengine"
)

// renderTemplate reads source, renders __NAME__ placeholders against the
// process environment's values, and writes the result to destination.
func (e *Executor) renderTemplate(ctx context.Context, source, destination string) error {
	raw, err := os.ReadFile(source)
	if err != nil {
		return &taskerr.ConfigError{Path: source, Err: err}
	}

	rendered, err := templateengine.Render(ctx, string(raw), e.Env.GetAllValues())
	if err != nil {
		return err
	}

	if dir := filepath.Dir(destination); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &taskerr.ConfigError{Path: destination, Err: err}
		}
	}
	if err := os.WriteFile(destination, []byte(rendered), 0o644); err != nil {
		return &taskerr.ConfigError{Path: destination, Err: err}
	}
	return nil
}

// runBash renders the script at path into a 0700 temp file, executes it,
// and removes the temp file on every exit path, including a panic
// unwinding through this call.
func (e *Executor) runBash(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return &taskerr.ConfigError{Path: path, Err: err}
	}

	rendered, err := templateengine.Render(ctx, string(raw), e.Env.GetAllValues())
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp("", "taskshell-bash-*.sh")
	if err != nil {
		return &taskerr.ConfigError{Path: path, Err: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(0o700); err != nil {
		tmp.Close()
		return &taskerr.ConfigError{Path: tmpPath, Err: err}
	}
	if _, err := tmp.WriteString(rendered); err != nil {
		tmp.Close()
		return &taskerr.ConfigError{Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &taskerr.ConfigError{Path: tmpPath, Err: err}
	}

	e.Logger.LogStart(path, false)
	cmd := exec.CommandContext(ctx, tmpPath)
	cmd.Dir = e.Env.AppDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if runErr := cmd.Run(); runErr != nil {
		execErr := &taskerr.ExecutionError{Line: path, ExitCode: exitCodeOf(runErr), Deferred: false}
		e.Logger.LogFailure(path, false, execErr)
		return execErr
	}
	e.Logger.LogSuccess(path, false)
	return nil
}

// exitCodeOf extracts the child process's exit code from a *exec.ExitError,
// or -1 when the process could not be started at all.
func exitCodeOf(err error) int {
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}
