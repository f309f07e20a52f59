package valueprovider

import "github.com/go-go-golems/taskshell/internal/config"

// Template is a resolved source/destination pair ready for rendering.
type Template struct {
	Source      string
	Destination string
}

// ResolveTemplates copies a config's template declarations into the
// Template shape the executor renders from. It does no I/O; existence of
// Source was already checked by the config loader.
func ResolveTemplates(decls []config.TemplateDecl) []Template {
	out := make([]Template, 0, len(decls))
	for _, d := range decls {
		out = append(out, Template{Source: d.Source, Destination: d.Destination})
	}
	return out
}
