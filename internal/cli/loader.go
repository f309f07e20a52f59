package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-go-golems/taskshell/internal/scriptfinder"
	"github.com/go-go-golems/taskshell/internal/scriptparser"
	"github.com/go-go-golems/taskshell/internal/taskerr"
)

// finderLoader implements scriptparser.Loader over a fixed set of scripts
// discovered ahead of time, for ACTION:, and plain filesystem reads for
// INCLUDE:.
type finderLoader struct {
	scripts []scriptfinder.Script
}

func (l *finderLoader) LoadByName(name string) (content, dir, path string, err error) {
	s, err := scriptfinder.FindScriptByName(l.scripts, name)
	if err != nil {
		return "", "", "", err
	}
	raw, err := os.ReadFile(s.Path())
	if err != nil {
		return "", "", "", &taskerr.PathError{Path: s.Path(), Err: err}
	}
	return string(raw), s.Directory, s.Path(), nil
}

func (l *finderLoader) LoadByPath(raw, dir string) (content, resolvedDir, resolvedPath string, err error) {
	path := raw
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", "", &taskerr.ParseError{Msg: fmt.Sprintf("INCLUDE: %q: %v", raw, err)}
	}
	return string(data), filepath.Dir(path), path, nil
}

var _ scriptparser.Loader = (*finderLoader)(nil)
