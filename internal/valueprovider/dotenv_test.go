package valueprovider

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-go-golems/taskshell/internal/config"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestResolveDotenvVariablesParsesKeyValuePairs(t *testing.T) {
	path := writeTempFile(t, "# comment\nFOO=bar\n\nBAZ=\"quux\"\n")
	providers, err := ResolveDotenvVariables([]config.DotenvFile{{Path: path}})
	if err != nil {
		t.Fatalf("ResolveDotenvVariables: %v", err)
	}
	foo, _ := providers["FOO"].GetValue(context.Background())
	baz, _ := providers["BAZ"].GetValue(context.Background())
	if foo != "bar" || baz != "quux" {
		t.Fatalf("FOO=%q BAZ=%q, want bar/quux", foo, baz)
	}
}

func TestResolveDotenvVariablesLaterFileWins(t *testing.T) {
	first := writeTempFile(t, "FOO=first\n")
	second := writeTempFile(t, "FOO=second\n")

	providers, err := ResolveDotenvVariables([]config.DotenvFile{{Path: first}, {Path: second}})
	if err != nil {
		t.Fatalf("ResolveDotenvVariables: %v", err)
	}
	v, _ := providers["FOO"].GetValue(context.Background())
	if v != "second" {
		t.Fatalf("FOO = %q, want %q (later file should win)", v, "second")
	}
}
