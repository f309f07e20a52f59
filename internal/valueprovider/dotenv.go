package valueprovider

import (
	"os"

	"github.com/go-go-golems/taskshell/internal/config"
	"github.com/go-go-golems/taskshell/internal/taskerr"
	"github.com/subosito/gotenv"
)

// ResolveDotenvVariables parses each dotenv file in order and returns a
// name->Simple map. Later files overwrite earlier ones on collision; within
// a file, gotenv already applies last-wins for duplicate keys.
func ResolveDotenvVariables(files []config.DotenvFile) (map[string]ValueProvider, error) {
	out := map[string]ValueProvider{}
	for _, f := range files {
		fh, err := os.Open(f.Path)
		if err != nil {
			return nil, &taskerr.ConfigError{Path: f.Path, Err: err}
		}
		env, err := gotenv.StrictParse(fh)
		closeErr := fh.Close()
		if err != nil {
			return nil, &taskerr.ConfigError{Path: f.Path, Err: err}
		}
		if closeErr != nil {
			return nil, &taskerr.ConfigError{Path: f.Path, Err: closeErr}
		}
		for k, v := range env {
			out[k] = NewSimple(v)
		}
	}
	return out, nil
}
