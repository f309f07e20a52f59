package cli

import (
	"os"

	"github.com/go-go-golems/taskshell/internal/config"
	"github.com/go-go-golems/taskshell/internal/taskerr"
)

// loadConfigs loads each path in paths and overrides them onto each other
// in order, so a later --config flag wins over an earlier one, matching
// the CLI convention of "last flag wins".
func loadConfigs(paths []string, params map[string]string) (*config.Config, error) {
	var merged *config.Config
	for _, p := range paths {
		cfg, err := config.Load(p, params)
		if err != nil {
			return nil, err
		}
		if merged == nil {
			merged = cfg
			continue
		}
		merged = config.Override(merged, cfg)
	}
	if merged == nil {
		merged = config.NewConfig()
	}
	return merged, nil
}

func readScriptFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &taskerr.PathError{Path: path, Err: err}
	}
	return string(data), nil
}
