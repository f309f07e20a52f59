package config

import "testing"

func envWithPath(path string) *ConfigEnvironment {
	env := NewConfigEnvironment()
	env.ScriptsPaths = []ScriptsPath{{Path: path}}
	return env
}

func TestOverrideReplacesScriptsPathsWholesale(t *testing.T) {
	base := NewConfig()
	base.Environments["default"] = envWithPath("./a")

	override := NewConfig()
	override.Environments["default"] = envWithPath("./b")

	merged := Override(base, override)
	got := merged.Environments["default"].ScriptsPaths
	if len(got) != 1 || got[0].Path != "./b" {
		t.Fatalf("ScriptsPaths = %v, want override's path only", got)
	}
}

func TestOverrideKeepsBaseScriptsPathsWhenOverrideHasNone(t *testing.T) {
	base := NewConfig()
	base.Environments["default"] = envWithPath("./a")

	override := NewConfig()
	override.Environments["default"] = NewConfigEnvironment()

	merged := Override(base, override)
	got := merged.Environments["default"].ScriptsPaths
	if len(got) != 1 || got[0].Path != "./a" {
		t.Fatalf("ScriptsPaths = %v, want base's path preserved", got)
	}
}

func TestOverrideIsIdempotentOnItself(t *testing.T) {
	base := NewConfig()
	base.Environments["default"].Constants.Set("k", "v")

	once := Override(base, base)
	twice := Override(once, base)

	v1, _ := once.Environments["default"].Constants.Get("k")
	v2, _ := twice.Environments["default"].Constants.Get("k")
	if v1 != v2 || v1 != "v" {
		t.Fatalf("Override(x, base) not idempotent: %q vs %q", v1, v2)
	}
}

func TestImportConcatenatesScriptsPaths(t *testing.T) {
	base := NewConfig()
	base.Environments["default"] = envWithPath("./a")

	imported := NewConfig()
	imported.Environments["default"] = envWithPath("./b")

	merged := Import(base, imported)
	got := merged.Environments["default"].ScriptsPaths
	if len(got) != 2 || got[0].Path != "./a" || got[1].Path != "./b" {
		t.Fatalf("ScriptsPaths = %v, want [./a ./b]", got)
	}
}

func TestOverrideMergesDotenvPathsInsteadOfReplacing(t *testing.T) {
	base := NewConfig()
	base.Environments["default"].DotenvPaths = []DotenvFile{{Path: "a.env"}}

	override := NewConfig()
	override.Environments["default"].DotenvPaths = []DotenvFile{{Path: "b.env"}}

	merged := Override(base, override)
	got := merged.Environments["default"].DotenvPaths
	if len(got) != 2 || got[0].Path != "a.env" || got[1].Path != "b.env" {
		t.Fatalf("DotenvPaths = %v, want [a.env b.env] (merged, base first)", got)
	}
}

func TestOverrideDotenvPathsDedupOnIdenticalPathForIdempotence(t *testing.T) {
	base := NewConfig()
	base.Environments["default"].DotenvPaths = []DotenvFile{{Path: "a.env"}}

	merged := Override(base, base)
	got := merged.Environments["default"].DotenvPaths
	if len(got) != 1 || got[0].Path != "a.env" {
		t.Fatalf("Override(c, c) DotenvPaths = %v, want [a.env] (deduplicated)", got)
	}
}

func TestOverrideHeaderWinsWhenNonEmpty(t *testing.T) {
	base := NewConfig()
	base.Header = "base header"
	override := NewConfig()
	override.Header = "override header"

	merged := Override(base, override)
	if merged.Header != "override header" {
		t.Fatalf("Header = %q, want override's header", merged.Header)
	}
}

func TestOverrideHeaderKeepsBaseWhenOverrideEmpty(t *testing.T) {
	base := NewConfig()
	base.Header = "base header"
	override := NewConfig()

	merged := Override(base, override)
	if merged.Header != "base header" {
		t.Fatalf("Header = %q, want base's header preserved", merged.Header)
	}
}

func TestOverrideDefaultEnvironmentCanBeExplicitlySetToDefault(t *testing.T) {
	base := NewConfig()
	base.DefaultEnvironment = "staging"
	base.DefaultEnvironmentSet = true

	override := NewConfig()
	override.DefaultEnvironment = "default"
	override.DefaultEnvironmentSet = true

	merged := Override(base, override)
	if merged.DefaultEnvironment != "default" {
		t.Fatalf("DefaultEnvironment = %q, want override to be able to explicitly set it back to %q", merged.DefaultEnvironment, "default")
	}
}

func TestOverrideDefaultEnvironmentUnsetKeepsBase(t *testing.T) {
	base := NewConfig()
	base.DefaultEnvironment = "staging"
	base.DefaultEnvironmentSet = true

	override := NewConfig()

	merged := Override(base, override)
	if merged.DefaultEnvironment != "staging" {
		t.Fatalf("DefaultEnvironment = %q, want base's value preserved when override never set it", merged.DefaultEnvironment)
	}
}

func TestImportWithEmptyLeavesBaseUnchanged(t *testing.T) {
	base := NewConfig()
	base.Environments["default"] = envWithPath("./a")
	base.Environments["default"].Constants.Set("k", "v")

	empty := NewConfig()

	merged := Import(base, empty)
	got := merged.Environments["default"]
	if len(got.ScriptsPaths) != 1 || got.ScriptsPaths[0].Path != "./a" {
		t.Fatalf("ScriptsPaths = %v, want [./a]", got.ScriptsPaths)
	}
	if v, _ := got.Constants.Get("k"); v != "v" {
		t.Fatalf("Constants[k] = %q, want %q", v, "v")
	}
}
