package web

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns a named template and its values into a page.
type Renderer interface {
	Render(name string, ctx map[string]string) (string, error)
}

// PlaceholderRenderer replaces "{{ key }}" occurrences with the matching
// value. Values are inserted verbatim; unknown placeholders are left as is.
type PlaceholderRenderer struct {
	fsys fs.FS
}

// NewPlaceholderRenderer creates a renderer reading templates from fsys.
// A nil fsys uses the embedded templates.
func NewPlaceholderRenderer(fsys fs.FS) *PlaceholderRenderer {
	if fsys == nil {
		sub, err := fs.Sub(templateFS, "templates")
		if err != nil {
			panic(err)
		}
		fsys = sub
	}
	return &PlaceholderRenderer{fsys: fsys}
}

func (r *PlaceholderRenderer) Render(name string, ctx map[string]string) (string, error) {
	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return "", fmt.Errorf("failed to load template %s: %w", name, err)
	}

	pairs := make([]string, 0, len(ctx)*2)
	for key, value := range ctx {
		pairs = append(pairs, "{{ "+key+" }}", value)
	}
	// Single pass, so a value containing a placeholder is never expanded.
	return strings.NewReplacer(pairs...).Replace(string(data)), nil
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"{", "&#123;",
	"}", "&#125;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes text for insertion into the page. Braces are escaped
// too so inserted text can never form a placeholder.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}
