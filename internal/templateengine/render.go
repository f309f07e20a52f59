// Package templateengine implements __NAME__ substitution against a set of
// value providers.
package templateengine

import (
	"context"
	"regexp"

	"github.com/go-go-golems/taskshell/internal/valueprovider"
)

var placeholder = regexp.MustCompile(`__[A-Za-z0-9_]+__`)

// Render replaces every __NAME__ occurrence in text with the resolved
// value of values[NAME]. Lookup is case-sensitive and exact; a name absent
// from values is left verbatim. A provider's resolution failure aborts the
// whole render and is returned as-is (already a *taskerr.ResolutionError).
func Render(ctx context.Context, text string, values map[string]valueprovider.ValueProvider) (string, error) {
	var firstErr error
	out := placeholder.ReplaceAllStringFunc(text, func(match string) string {
		if firstErr != nil {
			return match
		}
		name := match[2 : len(match)-2]
		provider, ok := values[name]
		if !ok {
			return match
		}
		v, err := provider.GetValue(ctx)
		if err != nil {
			firstErr = err
			return match
		}
		return v
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}
