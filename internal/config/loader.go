package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-go-golems/taskshell/internal/taskerr"
	"gopkg.in/yaml.v3"
)

// supportedSuffix matches the recognised YAML suffix family, including the
// optional .dist/.override infix (e.g. taskshell.dist.yaml).
var supportedSuffix = regexp.MustCompile(`(?:\.(?:dist|override))?\.ya?ml$`)

// IsSupported reports whether filename has a recognised configuration
// suffix.
func IsSupported(filename string) bool {
	return supportedSuffix.MatchString(filename)
}

// rawTemplate mirrors the YAML shape of a templates entry.
type rawTemplate struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
}

// rawEnvironment mirrors the YAML shape shared by the top level and each
// entry under `environments`. Dynamic and Const are decoded as raw nodes,
// not map[string]string, because Go map iteration order is randomized and
// would silently discard the document order the ordered-map merge rules
// depend on; orderedStringPairs walks the node's Content in document order
// instead.
type rawEnvironment struct {
	Paths       []string      `yaml:"paths"`
	Dynamic     yaml.Node     `yaml:"dynamic"`
	Const       yaml.Node     `yaml:"const"`
	Dotenv      []string      `yaml:"dotenv"`
	Templates   []rawTemplate `yaml:"templates"`
	Hidden      bool          `yaml:"hidden"`
	Description string        `yaml:"description"`
}

// rawConfig mirrors the YAML shape of an entire configuration file, before
// translation into the format-agnostic Config model.
type rawConfig struct {
	Header             string                    `yaml:"header"`
	DefaultEnvironment string                    `yaml:"default_environment"`
	Import             []string                  `yaml:"import"`
	rawEnvironment     `yaml:",inline"`
	Environments       map[string]rawEnvironment `yaml:"environments"`
}

// Load reads filepath, parses it as YAML, and builds a Config. Script paths
// and template paths are resolved relative to filepath's directory. Import
// targets named in the file are loaded recursively and merged onto this
// file's own content in import mode (concatenating scripts paths,
// templates, and dotenv paths; merging variables and constants by key).
func Load(path string, params map[string]string) (*Config, error) {
	return load(path, params, map[string]bool{})
}

func load(path string, params map[string]string, seen map[string]bool) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &taskerr.ConfigError{Path: path, Err: err}
	}
	if seen[abs] {
		return nil, &taskerr.ConfigError{Path: path, Err: fmt.Errorf("import cycle detected")}
	}
	seen[abs] = true

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &taskerr.ConfigError{Path: path, Err: err}
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &taskerr.ConfigError{Path: path, Err: err}
	}

	cfg, err := build(&raw, path)
	if err != nil {
		return nil, err
	}
	cfg.Params = params

	baseDir := filepath.Dir(path)
	result := cfg

	for _, importPath := range raw.Import {
		resolved := fixPath(importPath, baseDir, true)
		if resolved == "" {
			return nil, &taskerr.ConfigError{Path: path, Err: fmt.Errorf("import path %q does not resolve to an existing file", importPath)}
		}
		imported, err := load(resolved, params, seen)
		if err != nil {
			return nil, err
		}
		result = Import(result, imported)
	}

	return result, nil
}

// build translates a rawConfig (with paths already relative to baseFile)
// into the format-agnostic Config model.
func build(raw *rawConfig, baseFile string) (*Config, error) {
	cfg := NewConfig()
	cfg.Header = raw.Header
	if raw.DefaultEnvironment != "" {
		cfg.DefaultEnvironment = raw.DefaultEnvironment
		cfg.DefaultEnvironmentSet = true
	}
	cfg.Environments = map[string]*ConfigEnvironment{}

	baseDir := filepath.Dir(baseFile)

	defaultEnv, err := buildEnvironment(raw.rawEnvironment, baseDir, "", baseFile)
	if err != nil {
		return nil, err
	}
	cfg.Environments[cfg.DefaultEnvironment] = defaultEnv

	for name, rawEnv := range raw.Environments {
		env, err := buildEnvironment(rawEnv, baseDir, name, baseFile)
		if err != nil {
			return nil, err
		}
		cfg.Environments[name] = env
	}

	if _, ok := cfg.Environments[cfg.DefaultEnvironment]; !ok {
		cfg.Environments[cfg.DefaultEnvironment] = NewConfigEnvironment()
	}

	return cfg, nil
}

func buildEnvironment(raw rawEnvironment, baseDir, namespace, baseFile string) (*ConfigEnvironment, error) {
	env := NewConfigEnvironment()
	env.Hidden = raw.Hidden
	env.Description = raw.Description

	for _, p := range raw.Paths {
		env.ScriptsPaths = append(env.ScriptsPaths, ScriptsPath{
			Path:      resolveRelative(p, baseDir),
			Namespace: namespace,
		})
	}

	dynamic, err := orderedStringPairs(&raw.Dynamic)
	if err != nil {
		return nil, &taskerr.ConfigError{Path: baseFile, Err: fmt.Errorf("dynamic: %w", err)}
	}
	for _, p := range dynamic {
		env.DynamicVariables.Set(p.key, p.value)
	}

	constants, err := orderedStringPairs(&raw.Const)
	if err != nil {
		return nil, &taskerr.ConfigError{Path: baseFile, Err: fmt.Errorf("const: %w", err)}
	}
	for _, p := range constants {
		env.Constants.Set(p.key, p.value)
	}

	for _, d := range raw.Dotenv {
		env.DotenvPaths = append(env.DotenvPaths, DotenvFile{Path: resolveRelative(d, baseDir)})
	}

	for _, t := range raw.Templates {
		src := fixPath(t.Source, baseDir, true)
		if src == "" {
			return nil, &taskerr.ConfigError{Path: baseFile, Err: fmt.Errorf("template source %q does not exist", t.Source)}
		}
		dst := fixPath(t.Destination, baseDir, false)
		env.Templates = append(env.Templates, TemplateDecl{Source: src, Destination: dst})
	}

	return env, nil
}

// orderedPair is one key/value entry recovered from a YAML mapping node in
// its original document order.
type orderedPair struct {
	key   string
	value string
}

// orderedStringPairs walks a YAML mapping node's Content (alternating key
// and value nodes) and returns its entries in document order. A node left
// at its zero value (the YAML key was absent from the document) yields no
// pairs.
func orderedStringPairs(node *yaml.Node) ([]orderedPair, error) {
	if node == nil || node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping, got %v", node.Tag)
	}
	pairs := make([]orderedPair, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key, value string
		if err := node.Content[i].Decode(&key); err != nil {
			return nil, err
		}
		if err := node.Content[i+1].Decode(&value); err != nil {
			return nil, err
		}
		pairs = append(pairs, orderedPair{key: key, value: value})
	}
	return pairs, nil
}

// resolveRelative joins a raw path with baseDir unless it is already
// absolute or carries a platform drive prefix, without checking existence
// (scripts paths are validated lazily, per the spec's ScriptsPath
// invariant).
func resolveRelative(raw, baseDir string) string {
	if isAbsoluteLike(raw) {
		return raw
	}
	return filepath.Join(baseDir, raw)
}

// fixPath resolves raw relative to baseDir. When mustExist is true, it
// returns "" if the resolved path does not exist, used for the required
// files (template sources, import targets) the spec calls out explicitly.
func fixPath(raw, baseDir string, mustExist bool) string {
	var resolved string
	if isAbsoluteLike(raw) {
		resolved = raw
	} else {
		resolved = filepath.Join(baseDir, raw)
	}
	if !mustExist {
		return resolved
	}
	if _, err := os.Stat(resolved); err != nil {
		return ""
	}
	return resolved
}

// isAbsoluteLike reports whether raw is an absolute POSIX path or carries a
// Windows-style drive prefix ("C:\...", "C:/...").
func isAbsoluteLike(raw string) bool {
	if filepath.IsAbs(raw) {
		return true
	}
	if len(raw) >= 3 && raw[1] == ':' && (raw[2] == '\\' || raw[2] == '/') {
		drive := raw[0]
		return (drive >= 'a' && drive <= 'z') || (drive >= 'A' && drive <= 'Z')
	}
	return strings.HasPrefix(raw, "/")
}
