package scriptparser

import (
	"fmt"
	"testing"

	"github.com/go-go-golems/taskshell/internal/taskerr"
)

// stubLoader supplies fixed content for ACTION:/INCLUDE: without touching
// the filesystem.
type stubLoader struct {
	byName map[string]string
	byPath map[string]string
}

func (s *stubLoader) LoadByName(name string) (string, string, string, error) {
	content, ok := s.byName[name]
	if !ok {
		return "", "", "", fmt.Errorf("no such action: %s", name)
	}
	return content, ".", name + ".sh", nil
}

func (s *stubLoader) LoadByPath(path, dir string) (string, string, string, error) {
	content, ok := s.byPath[path]
	if !ok {
		return "", "", "", fmt.Errorf("no such include: %s", path)
	}
	return content, ".", path, nil
}

func TestParseSingleShellCommand(t *testing.T) {
	commands, err := Parse("echo hi", ".", "script.sh", &stubLoader{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(commands) != 1 || commands[0].Kind != KindSynchronousProcess || commands[0].Sync.Line != "echo hi" {
		t.Fatalf("commands = %+v, want one synchronous 'echo hi'", commands)
	}
}

func TestParseSkipsBlankAndCommentLines(t *testing.T) {
	commands, err := Parse("# a comment\n\necho hi\n", ".", "script.sh", &stubLoader{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(commands) != 1 {
		t.Fatalf("commands = %+v, want exactly one command", commands)
	}
}

func TestParseJoinsContinuationLines(t *testing.T) {
	commands, err := Parse("echo hi \\\n   world", ".", "script.sh", &stubLoader{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(commands) != 1 || commands[0].Sync.Line != "echo hi \\ world" {
		t.Fatalf("commands = %+v, want a single joined line", commands)
	}
}

func TestParseComposesModifiersInAnyOrder(t *testing.T) {
	commands, err := Parse("I: TTY: echo hi", ".", "script.sh", &stubLoader{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(commands) != 1 {
		t.Fatalf("commands = %+v, want one command", commands)
	}
	sync := commands[0].Sync
	if sync == nil || !sync.IgnoreError || !sync.TTY {
		t.Fatalf("Sync = %+v, want IgnoreError and TTY both set", sync)
	}
}

func TestParseModifiersResetAfterEachCommand(t *testing.T) {
	commands, err := Parse("I: echo one\necho two", ".", "script.sh", &stubLoader{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(commands) != 2 {
		t.Fatalf("commands = %+v, want two commands", commands)
	}
	if !commands[0].Sync.IgnoreError {
		t.Fatalf("first command should carry IgnoreError")
	}
	if commands[1].Sync.IgnoreError {
		t.Fatalf("second command should not inherit IgnoreError from the first")
	}
}

func TestParseDeferredMarksCommandDeferred(t *testing.T) {
	commands, err := Parse("D: sleep 1", ".", "script.sh", &stubLoader{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(commands) != 1 || commands[0].Kind != KindDeferredProcess {
		t.Fatalf("commands = %+v, want a single deferred command", commands)
	}
}

func TestParseWaitEmitsWaitCommand(t *testing.T) {
	commands, err := Parse("WAIT:", ".", "script.sh", &stubLoader{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(commands) != 1 || commands[0].Kind != KindWait {
		t.Fatalf("commands = %+v, want a single wait command", commands)
	}
}

func TestParseTemplateSplitsSourceAndDestination(t *testing.T) {
	commands, err := Parse("TEMPLATE: src.tmpl:dst.txt", ".", "script.sh", &stubLoader{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(commands) != 1 || commands[0].Kind != KindTemplate {
		t.Fatalf("commands = %+v, want a single template command", commands)
	}
	tmpl := commands[0].Template
	if tmpl.Source != "src.tmpl" || tmpl.Destination != "dst.txt" {
		t.Fatalf("Template = %+v, want src.tmpl -> dst.txt", tmpl)
	}
}

func TestParseRejectsRepeatedIdenticalModifier(t *testing.T) {
	_, err := Parse("I: I: echo hi", ".", "script.sh", &stubLoader{})
	if err == nil {
		t.Fatal("expected an error for a repeated I: modifier")
	}
	var parseErr *taskerr.ParseError
	if _, ok := err.(*taskerr.ParseError); !ok {
		_ = parseErr
		t.Fatalf("err = %v (%T), want *taskerr.ParseError", err, err)
	}
}

func TestParseActionReplacesEntireStream(t *testing.T) {
	loader := &stubLoader{byName: map[string]string{"other": "echo from-other"}}
	commands, err := Parse("echo before\nACTION: other", ".", "script.sh", loader)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(commands) != 1 || commands[0].Sync.Line != "echo from-other" {
		t.Fatalf("commands = %+v, want the invoked script's single command", commands)
	}
}

func TestParseIncludeSplicesCommands(t *testing.T) {
	loader := &stubLoader{byPath: map[string]string{"lib.sh": "echo from-lib"}}
	commands, err := Parse("INCLUDE: lib.sh", ".", "script.sh", loader)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(commands) != 1 || commands[0].Sync.Line != "echo from-lib" {
		t.Fatalf("commands = %+v, want the included script's command", commands)
	}
}

func TestParseDetectsActionCycle(t *testing.T) {
	loader := &stubLoader{byName: map[string]string{}}
	loader.byName["self"] = "ACTION: self"
	_, err := Parse("ACTION: self", ".", "self.sh", loader)
	if err == nil {
		t.Fatal("expected a cycle error")
	}
}

func TestParseBashResolvesRelativePath(t *testing.T) {
	commands, err := Parse("BASH: sub/run.sh", "/scripts", "script.sh", &stubLoader{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(commands) != 1 || commands[0].Kind != KindBash {
		t.Fatalf("commands = %+v, want a single bash command", commands)
	}
	if commands[0].Bash.Path != "/scripts/sub/run.sh" {
		t.Fatalf("Bash.Path = %q, want %q", commands[0].Bash.Path, "/scripts/sub/run.sh")
	}
}
