// Package scriptfinder enumerates executable scripts under a config's
// configured scripts paths, and resolves a name to a Script.
package scriptfinder

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/go-go-golems/taskshell/internal/config"
	"github.com/go-go-golems/taskshell/internal/taskerr"
)

// scriptExtensions are the recognised script file extensions, in no
// particular priority order.
var scriptExtensions = map[string]bool{
	".sh":  true,
	".psh": true,
}

// Script is one executable script file discovered under a ScriptsPath.
type Script struct {
	Directory string
	Filename  string
	Hidden    bool
	Namespace string
}

// Name is the script's logical name: its filename without extension,
// prefixed with "<namespace>:" when namespaced.
func (s Script) Name() string {
	base := strings.TrimSuffix(s.Filename, filepath.Ext(s.Filename))
	if s.Namespace == "" {
		return base
	}
	return s.Namespace + ":" + base
}

// Path is the script's full filesystem path.
func (s Script) Path() string {
	return filepath.Join(s.Directory, s.Filename)
}

// GetAllScripts reads every configured scripts path, in order, and returns
// one Script per recognised file. A later path's script overwrites an
// earlier one of the same name; warn, if non-nil, is called with a message
// describing the collision (used to surface merge-time namespace clashes
// through the Logger).
func GetAllScripts(paths []config.ScriptsPath, warn ...func(format string, args ...interface{})) ([]Script, error) {
	var warnf func(format string, args ...interface{})
	if len(warn) > 0 {
		warnf = warn[0]
	}

	byName := map[string]Script{}
	var order []string

	for _, p := range paths {
		info, err := os.Stat(p.Path)
		if err != nil || !info.IsDir() {
			return nil, &taskerr.PathError{Path: p.Path, Err: err}
		}
		entries, err := os.ReadDir(p.Path)
		if err != nil {
			return nil, &taskerr.PathError{Path: p.Path, Err: err}
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		sort.Strings(names)

		for _, name := range names {
			if !scriptExtensions[strings.ToLower(filepath.Ext(name))] {
				continue
			}
			s := Script{
				Directory: p.Path,
				Filename:  name,
				Hidden:    p.Hidden,
				Namespace: p.Namespace,
			}
			key := s.Name()
			if existing, exists := byName[key]; !exists {
				order = append(order, key)
			} else if existing.Directory != s.Directory && warnf != nil {
				warnf("script %q found in both %q and %q; the latter wins", key, existing.Directory, s.Directory)
			}
			byName[key] = s
		}
	}

	out := make([]Script, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name])
	}
	return out, nil
}

// GetAllVisibleScripts is GetAllScripts filtered to scripts whose owning
// path is not hidden.
func GetAllVisibleScripts(paths []config.ScriptsPath, warn ...func(format string, args ...interface{})) ([]Script, error) {
	all, err := GetAllScripts(paths, warn...)
	if err != nil {
		return nil, err
	}
	out := make([]Script, 0, len(all))
	for _, s := range all {
		if !s.Hidden {
			out = append(out, s)
		}
	}
	return out, nil
}

// FindScriptByName returns the script whose Name matches name exactly.
func FindScriptByName(scripts []Script, name string) (Script, error) {
	for _, s := range scripts {
		if s.Name() == name {
			return s, nil
		}
	}
	return Script{}, &taskerr.ScriptNotFoundError{
		Name:        name,
		Suggestions: suggestionNames(FindScriptsByPartialName(scripts, name)),
	}
}

// FindScriptsByPartialName returns scripts whose name contains query, or
// whose Levenshtein edit distance from query is less than 3.
func FindScriptsByPartialName(scripts []Script, query string) []Script {
	var out []Script
	for _, s := range scripts {
		name := s.Name()
		if strings.Contains(name, query) || levenshtein.Distance(name, query, nil) < 3 {
			out = append(out, s)
		}
	}
	return out
}

// FilterScriptsBySelectors returns the scripts whose Name or Namespace
// exactly matches one of selectors. Blank selectors are ignored; if no
// non-blank selector remains, scripts is returned unfiltered.
func FilterScriptsBySelectors(scripts []Script, selectors []string) []Script {
	set := make(map[string]struct{}, len(selectors))
	for _, s := range selectors {
		if s != "" {
			set[s] = struct{}{}
		}
	}
	if len(set) == 0 {
		return scripts
	}

	out := make([]Script, 0, len(scripts))
	for _, s := range scripts {
		if _, ok := set[s.Name()]; ok {
			out = append(out, s)
			continue
		}
		if _, ok := set[s.Namespace]; ok && s.Namespace != "" {
			out = append(out, s)
		}
	}
	return out
}

func suggestionNames(scripts []Script) []string {
	out := make([]string, 0, len(scripts))
	for _, s := range scripts {
		out = append(out, s.Name())
	}
	return out
}
