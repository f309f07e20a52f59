// Package config holds the format-agnostic shape of a merged taskshell
// configuration: environments, scripts paths, variables, templates, and
// dotenv files.
package config

// ScriptsPath is one directory of scripts, optionally namespaced and hidden
// from listing.
type ScriptsPath struct {
	Path      string
	Namespace string
	Hidden    bool
}

// DotenvFile is a path to a KEY=VALUE file to be parsed in order.
type DotenvFile struct {
	Path string
}

// TemplateDecl is a source/destination pair resolved to absolute paths by
// the loader.
type TemplateDecl struct {
	Source      string
	Destination string
}

// ConfigEnvironment is a named slice of configuration: paths, variables,
// constants, templates, and dotenv files.
type ConfigEnvironment struct {
	Hidden      bool
	Description string

	ScriptsPaths []ScriptsPath

	// DynamicVariables and Constants preserve insertion order via Keys,
	// mirroring the ordered-map discipline the spec requires for merges.
	DynamicVariables *OrderedMap
	Constants        *OrderedMap

	Templates   []TemplateDecl
	DotenvPaths []DotenvFile
}

// NewConfigEnvironment returns an environment with initialised ordered maps.
func NewConfigEnvironment() *ConfigEnvironment {
	return &ConfigEnvironment{
		DynamicVariables: NewOrderedMap(),
		Constants:        NewOrderedMap(),
	}
}

// Config is the top-level merged configuration.
type Config struct {
	Header             string
	DefaultEnvironment string
	// DefaultEnvironmentSet is true when default_environment was explicitly
	// present in a loaded file, distinguishing that from the zero value so
	// an override can tell "not set" apart from "set to the literal value
	// already in place".
	DefaultEnvironmentSet bool
	Environments          map[string]*ConfigEnvironment
	Params                map[string]string
}

// NewConfig returns an empty Config with a default environment already
// present, satisfying the invariant that Environments[DefaultEnvironment]
// always exists.
func NewConfig() *Config {
	c := &Config{
		DefaultEnvironment: "default",
		Environments:       map[string]*ConfigEnvironment{},
		Params:             map[string]string{},
	}
	c.Environments[c.DefaultEnvironment] = NewConfigEnvironment()
	return c
}

// Environment returns the named environment, or the default environment if
// name is empty.
func (c *Config) Environment(name string) (*ConfigEnvironment, bool) {
	if name == "" {
		name = c.DefaultEnvironment
	}
	env, ok := c.Environments[name]
	return env, ok
}
