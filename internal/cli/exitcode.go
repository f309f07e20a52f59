package cli

import (
	"errors"

	"github.com/go-go-golems/taskshell/internal/taskerr"
)

// ExitCodeFor maps an error from the taskerr taxonomy to a process exit
// code: 2 for configuration, parse, path and script-not-found errors, 1
// for every other error (resolution and execution failures included), 0
// when err is nil.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	var configErr *taskerr.ConfigError
	var pathErr *taskerr.PathError
	var notFoundErr *taskerr.ScriptNotFoundError
	var parseErr *taskerr.ParseError
	if errors.As(err, &configErr) || errors.As(err, &pathErr) || errors.As(err, &notFoundErr) || errors.As(err, &parseErr) {
		return 2
	}
	return 1
}
