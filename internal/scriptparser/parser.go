// Package scriptparser turns script text into a Command stream: a
// line-based tokeniser recognising ACTION:, INCLUDE:, TEMPLATE:, WAIT:, and
// the I:/TTY:/D: modifiers, with re-entrant loading for ACTION and INCLUDE.
package scriptparser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-go-golems/taskshell/internal/taskerr"
)

// Loader resolves the two forms of re-entrant script reference the parser
// supports. LoadByName resolves name through the script finder (ACTION:);
// LoadByPath reads a file directly, resolving relative paths against dir
// (INCLUDE:). Both return the loaded content and the directory it should
// be considered to live in, for its own relative TEMPLATE:/INCLUDE: lines.
type Loader interface {
	LoadByName(name string) (content string, dir string, path string, err error)
	LoadByPath(path string, dir string) (content string, resolvedDir string, resolvedPath string, err error)
}

// builder accumulates modifier state for the line currently being
// dispatched. It is reset after every terminal emission (a shell command,
// TEMPLATE, or WAIT).
type builder struct {
	ignoreError bool
	tty         bool
	deferred    bool
}

func (b *builder) reset() {
	*b = builder{}
}

// Parse tokenises content (the body of script, whose own directory is
// scriptDir and whose canonical path is scriptPath) into a Command stream,
// resolving ACTION:/INCLUDE: lines via loader.
func Parse(content, scriptDir, scriptPath string, loader Loader) ([]Command, error) {
	return parse(content, scriptDir, scriptPath, loader, map[string]bool{})
}

func parse(content, scriptDir, scriptPath string, loader Loader, visited map[string]bool) ([]Command, error) {
	norm := filepath.Clean(scriptPath)
	if visited[norm] {
		return nil, &taskerr.ParseError{Script: scriptPath, Msg: fmt.Sprintf("cycle detected loading %q", scriptPath)}
	}
	visited[norm] = true

	lines := preprocess(content)

	var commands []Command
	for i, raw := range lines {
		lineNo := i + 1
		var b builder
		replaced, err := dispatch(raw, scriptDir, scriptPath, lineNo, loader, visited, &b, &commands)
		if err != nil {
			return nil, err
		}
		if replaced {
			// ACTION:/INCLUDE: replaces the entire stream so far; nothing
			// further to do for this line.
			continue
		}
	}
	return commands, nil
}

// preprocess splits content into logical lines: trailing whitespace
// stripped, blank and comment lines dropped, continuation lines (three or
// more leading spaces) joined onto the previous logical line with a single
// space.
func preprocess(content string) []string {
	var out []string
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		if line == "" {
			continue
		}
		trimmed := strings.TrimLeft(line, " ")
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(line, "   ") && len(out) > 0 {
			out[len(out)-1] = out[len(out)-1] + " " + strings.TrimSpace(line)
			continue
		}
		out = append(out, strings.TrimSpace(line))
	}
	return out
}

// dispatch recognises one prefix token on line and acts on it, recursing
// on the remainder for modifiers. It returns replaced=true when the whole
// command stream built so far (commands) was replaced by a re-entrant
// load (ACTION:/INCLUDE:).
func dispatch(line, scriptDir, scriptPath string, lineNo int, loader Loader, visited map[string]bool, b *builder, commands *[]Command) (bool, error) {
	switch {
	case hasToken(line, "ACTION:"):
		name := strings.TrimSpace(strings.TrimPrefix(line, tokenPrefix(line, "ACTION:")))
		content, dir, path, err := loader.LoadByName(name)
		if err != nil {
			return false, err
		}
		loaded, err := parse(content, dir, path, loader, visited)
		if err != nil {
			return false, err
		}
		*commands = loaded
		return true, nil

	case hasToken(line, "INCLUDE:"):
		raw := strings.TrimSpace(strings.TrimPrefix(line, tokenPrefix(line, "INCLUDE:")))
		content, dir, path, err := loader.LoadByPath(raw, scriptDir)
		if err != nil {
			return false, err
		}
		loaded, err := parse(content, dir, path, loader, visited)
		if err != nil {
			return false, err
		}
		*commands = loaded
		return true, nil

	case hasToken(line, "TEMPLATE:"):
		rest := strings.TrimSpace(strings.TrimPrefix(line, tokenPrefix(line, "TEMPLATE:")))
		src, dst, ok := strings.Cut(rest, ":")
		if !ok {
			return false, &taskerr.ParseError{Script: scriptPath, Line: lineNo, Msg: "TEMPLATE: requires <src>:<dst>"}
		}
		spec := TemplateSpec{
			Source:      filepath.Join(scriptDir, strings.TrimSpace(src)),
			Destination: filepath.Join(scriptDir, strings.TrimSpace(dst)),
		}
		*commands = append(*commands, templateCommand(spec))
		return false, nil

	case hasToken(line, "WAIT:"):
		*commands = append(*commands, waitCommand())
		return false, nil

	case hasToken(line, "BASH:"):
		rest := strings.TrimSpace(strings.TrimPrefix(line, tokenPrefix(line, "BASH:")))
		if rest == "" {
			return false, &taskerr.ParseError{Script: scriptPath, Line: lineNo, Msg: "BASH: requires a script path"}
		}
		path := rest
		if !filepath.IsAbs(path) {
			path = filepath.Join(scriptDir, path)
		}
		*commands = append(*commands, bashCommand(BashSpec{Path: path}))
		return false, nil

	case hasToken(line, "I:"):
		if b.ignoreError {
			return false, &taskerr.ParseError{Script: scriptPath, Line: lineNo, Msg: "repeated I: modifier"}
		}
		b.ignoreError = true
		return dispatch(strings.TrimSpace(strings.TrimPrefix(line, tokenPrefix(line, "I:"))), scriptDir, scriptPath, lineNo, loader, visited, b, commands)

	case hasToken(line, "TTY:"):
		if b.tty {
			return false, &taskerr.ParseError{Script: scriptPath, Line: lineNo, Msg: "repeated TTY: modifier"}
		}
		b.tty = true
		return dispatch(strings.TrimSpace(strings.TrimPrefix(line, tokenPrefix(line, "TTY:"))), scriptDir, scriptPath, lineNo, loader, visited, b, commands)

	case hasToken(line, "D:"):
		if b.deferred {
			return false, &taskerr.ParseError{Script: scriptPath, Line: lineNo, Msg: "repeated D: modifier"}
		}
		b.deferred = true
		return dispatch(strings.TrimSpace(strings.TrimPrefix(line, tokenPrefix(line, "D:"))), scriptDir, scriptPath, lineNo, loader, visited, b, commands)

	default:
		if line == "" {
			return false, &taskerr.ParseError{Script: scriptPath, Line: lineNo, Msg: "modifier with no terminal command"}
		}
		spec := RunSpec{Line: line, IgnoreError: b.ignoreError, TTY: b.tty}
		if b.deferred {
			*commands = append(*commands, deferredCommand(spec))
		} else {
			*commands = append(*commands, syncCommand(spec))
		}
		b.reset()
		return false, nil
	}
}

// hasToken reports whether line begins with token, followed by a space or
// end of string.
func hasToken(line, token string) bool {
	if !strings.HasPrefix(line, token) {
		return false
	}
	rest := line[len(token):]
	return rest == "" || strings.HasPrefix(rest, " ")
}

// tokenPrefix returns token itself, used for symmetry with TrimPrefix
// calls above (kept as a function so the matching rule lives in one
// place alongside hasToken).
func tokenPrefix(line, token string) string {
	return token
}
