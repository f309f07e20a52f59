package config

// Override merges override on top of base: where override names an
// environment also present in base, override's scripts paths and templates
// replace base's wholesale if override has any (never concatenated), while
// dynamicVariables/constants/dotenvPaths are merged with base's entries
// first, then override's (key-merged for the first two, deduplicated for
// the third). Environments present only in one side pass through
// unchanged.
func Override(base, override *Config) *Config {
	out := NewConfig()
	out.Header = base.Header
	if override.Header != "" {
		out.Header = override.Header
	}
	out.DefaultEnvironment = base.DefaultEnvironment
	out.DefaultEnvironmentSet = base.DefaultEnvironmentSet
	if override.DefaultEnvironmentSet {
		out.DefaultEnvironment = override.DefaultEnvironment
		out.DefaultEnvironmentSet = true
	}
	out.Params = base.Params
	if override.Params != nil {
		out.Params = override.Params
	}

	out.Environments = map[string]*ConfigEnvironment{}
	for name, env := range base.Environments {
		out.Environments[name] = env
	}
	for name, overrideEnv := range override.Environments {
		baseEnv, ok := out.Environments[name]
		if !ok {
			out.Environments[name] = overrideEnv
			continue
		}
		out.Environments[name] = mergeEnvironment(baseEnv, overrideEnv, true)
	}
	return out
}

// Import merges imported into base: unlike Override, scripts paths and
// templates are concatenated (base's entries first) rather than replaced;
// dynamicVariables, constants, and dotenvPaths follow the same merge rule
// as Override.
func Import(base, imported *Config) *Config {
	out := NewConfig()
	out.Header = base.Header
	out.DefaultEnvironment = base.DefaultEnvironment
	out.DefaultEnvironmentSet = base.DefaultEnvironmentSet
	out.Params = base.Params

	out.Environments = map[string]*ConfigEnvironment{}
	for name, env := range base.Environments {
		out.Environments[name] = env
	}
	for name, importedEnv := range imported.Environments {
		baseEnv, ok := out.Environments[name]
		if !ok {
			out.Environments[name] = importedEnv
			continue
		}
		out.Environments[name] = mergeEnvironment(baseEnv, importedEnv, false)
	}
	return out
}

// mergeEnvironment applies one of the two merge strategies to a single
// environment. When replaceLists is true (Override), other's scripts
// paths/templates replace base's entirely if other has any; dotenvPaths is
// in the merged group in both modes (base entries first, then other's,
// deduplicated by path so override(c, c) stays idempotent). When
// replaceLists is false (Import), scripts paths and templates are
// concatenated instead of replaced.
func mergeEnvironment(base, other *ConfigEnvironment, replaceLists bool) *ConfigEnvironment {
	out := NewConfigEnvironment()
	out.Hidden = base.Hidden
	out.Description = base.Description
	if other.Description != "" {
		out.Description = other.Description
	}
	if other.Hidden {
		out.Hidden = true
	}

	out.DynamicVariables = Merge(base.DynamicVariables, other.DynamicVariables)
	out.Constants = Merge(base.Constants, other.Constants)
	out.DotenvPaths = mergeDotenvPaths(base.DotenvPaths, other.DotenvPaths)

	if replaceLists {
		if len(other.ScriptsPaths) > 0 {
			out.ScriptsPaths = other.ScriptsPaths
		} else {
			out.ScriptsPaths = base.ScriptsPaths
		}
		if len(other.Templates) > 0 {
			out.Templates = other.Templates
		} else {
			out.Templates = base.Templates
		}
		return out
	}

	out.ScriptsPaths = append(append([]ScriptsPath(nil), base.ScriptsPaths...), other.ScriptsPaths...)
	out.Templates = append(append([]TemplateDecl(nil), base.Templates...), other.Templates...)
	return out
}

// mergeDotenvPaths concatenates base and other, base's entries first, and
// drops any entry from other whose Path already appears (so re-merging the
// same config onto itself does not duplicate a dotenv path).
func mergeDotenvPaths(base, other []DotenvFile) []DotenvFile {
	seen := make(map[string]bool, len(base)+len(other))
	out := make([]DotenvFile, 0, len(base)+len(other))
	for _, d := range base {
		if !seen[d.Path] {
			seen[d.Path] = true
			out = append(out, d)
		}
	}
	for _, d := range other {
		if !seen[d.Path] {
			seen[d.Path] = true
			out = append(out, d)
		}
	}
	return out
}
